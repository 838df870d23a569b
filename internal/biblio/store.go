// Package biblio holds the bibliography a document cites from: a store of
// citation records addressed by key, the registration calls that fill it
// and the YAML/JSON forms those calls take in files and documents.
package biblio

import (
	"errors"
)

// ErrInvalidArgument indicates a registration call of unsupported shape.
var ErrInvalidArgument = errors.New("unknown parameters given")

// Record is one bibliography entry. Every field is optional.
type Record struct {
	Author string `yaml:"author"`
	Desc   string `yaml:"desc"`
	Href   string `yaml:"href"`
}

// Entry pairs a key with its record, for order-preserving bulk registration.
type Entry struct {
	Key    string
	Record Record
}

// Lookuper is the read side of a Store.
type Lookuper interface {
	Lookup(key string) (Record, bool)
}

// Store maps citation keys to records. The zero value is not usable; create
// with NewStore. A Store is not safe for concurrent mutation: it is owned by
// a single document conversion (see Clone).
type Store struct {
	records map[string]Record
	order   []string
}

var _ Lookuper = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]Record)}
}

// Register stores rec under key, replacing any previous record.
func (s *Store) Register(key string, rec Record) {
	if _, ok := s.records[key]; !ok {
		s.order = append(s.order, key)
	}
	s.records[key] = rec
}

// RegisterDesc registers a bare description, normalized to Record{Desc: desc}.
func (s *Store) RegisterDesc(key, desc string) {
	s.Register(key, Record{Desc: desc})
}

// RegisterBulk registers every entry in order. Later entries with the same
// key overwrite earlier ones.
func (s *Store) RegisterBulk(entries []Entry) {
	for _, e := range entries {
		s.Register(e.Key, e.Record)
	}
}

// Lookup returns the record for key.
func (s *Store) Lookup(key string) (Record, bool) {
	rec, ok := s.records[key]
	return rec, ok
}

// Len returns the number of registered keys.
func (s *Store) Len() int {
	return len(s.records)
}

// Keys returns the registered keys in first-registration order.
func (s *Store) Keys() []string {
	keys := make([]string, len(s.order))
	copy(keys, s.order)
	return keys
}

// Clone returns an independent copy. Registrations on the copy never reach s.
func (s *Store) Clone() *Store {
	c := &Store{
		records: make(map[string]Record, len(s.records)),
		order:   make([]string, len(s.order)),
	}
	for k, v := range s.records {
		c.records[k] = v
	}
	copy(c.order, s.order)
	return c
}
