package biblio

import (
	"fmt"
	"sort"

	"github.com/alnah/go-paper/internal/yamlutil"
)

// Call is a validated registration request: SingleEntry or BulkEntries.
type Call interface {
	apply(s *Store)
}

// SingleEntry registers one record under Key.
type SingleEntry struct {
	Key    string
	Record Record
}

// BulkEntries registers every entry, in order.
type BulkEntries struct {
	Entries []Entry
}

func (c SingleEntry) apply(s *Store) { s.Register(c.Key, c.Record) }
func (c BulkEntries) apply(s *Store) { s.RegisterBulk(c.Entries) }

// Apply performs a validated call.
func (s *Store) Apply(c Call) {
	if c != nil {
		c.apply(s)
	}
}

// Library is the dynamic registration entry point. It accepts
//
//	Library(key, record)  // record: string, Record, *Record, map or ordered pairs
//	Library(mapping)      // mapping: []Entry, map[string]Record, map[string]string,
//	                      // map[string]any or ordered pairs
//
// Any other shape fails with ErrInvalidArgument and leaves s unchanged.
func (s *Store) Library(args ...any) error {
	call, err := ParseCall(args...)
	if err != nil {
		return err
	}
	s.Apply(call)
	return nil
}

// ParseCall validates args and builds the matching Call.
func ParseCall(args ...any) (Call, error) {
	switch len(args) {
	case 1:
		entries, err := toEntries(args[0])
		if err != nil {
			return nil, err
		}
		return BulkEntries{Entries: entries}, nil
	case 2:
		key, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: key must be a string, got %T", ErrInvalidArgument, args[0])
		}
		rec, err := toRecord(args[1])
		if err != nil {
			return nil, fmt.Errorf("record for %q: %w", key, err)
		}
		return SingleEntry{Key: key, Record: rec}, nil
	default:
		return nil, fmt.Errorf("%w: %d arguments", ErrInvalidArgument, len(args))
	}
}

// toEntries converts every supported mapping shape. The whole mapping is
// converted before anything is registered.
func toEntries(v any) ([]Entry, error) {
	switch m := v.(type) {
	case []Entry:
		return append([]Entry(nil), m...), nil
	case []yamlutil.Pair:
		entries := make([]Entry, 0, len(m))
		for _, p := range m {
			rec, err := toRecord(p.Value)
			if err != nil {
				return nil, fmt.Errorf("record for %q: %w", p.Key, err)
			}
			entries = append(entries, Entry{Key: p.Key, Record: rec})
		}
		return entries, nil
	case map[string]Record:
		entries := make([]Entry, 0, len(m))
		for _, k := range sortedKeys(m) {
			entries = append(entries, Entry{Key: k, Record: m[k]})
		}
		return entries, nil
	case map[string]string:
		entries := make([]Entry, 0, len(m))
		for _, k := range sortedKeys(m) {
			entries = append(entries, Entry{Key: k, Record: Record{Desc: m[k]}})
		}
		return entries, nil
	case map[string]any:
		entries := make([]Entry, 0, len(m))
		for _, k := range sortedKeys(m) {
			rec, err := toRecord(m[k])
			if err != nil {
				return nil, fmt.Errorf("record for %q: %w", k, err)
			}
			entries = append(entries, Entry{Key: k, Record: rec})
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("%w: expected a mapping, got %T", ErrInvalidArgument, v)
	}
}

// toRecord normalizes a record argument. A bare string is a description.
func toRecord(v any) (Record, error) {
	switch r := v.(type) {
	case string:
		return Record{Desc: r}, nil
	case Record:
		return r, nil
	case *Record:
		if r == nil {
			return Record{}, fmt.Errorf("%w: nil record", ErrInvalidArgument)
		}
		return *r, nil
	case map[string]string:
		return Record{Author: r["author"], Desc: r["desc"], Href: r["href"]}, nil
	case map[string]any:
		var rec Record
		for k, val := range r {
			setField(&rec, k, val)
		}
		return rec, nil
	case []yamlutil.Pair:
		var rec Record
		for _, p := range r {
			setField(&rec, p.Key, p.Value)
		}
		return rec, nil
	case nil:
		// `key:` with no value in YAML: a record with nothing to show.
		return Record{}, nil
	default:
		return Record{}, fmt.Errorf("%w: unsupported record type %T", ErrInvalidArgument, v)
	}
}

// setField assigns a known record field; unknown fields are ignored, scalars
// other than strings are rendered with their default formatting.
func setField(rec *Record, key string, val any) {
	var s string
	switch v := val.(type) {
	case nil:
		return
	case string:
		s = v
	default:
		s = fmt.Sprint(v)
	}
	switch key {
	case "author":
		rec.Author = s
	case "desc":
		rec.Desc = s
	case "href":
		rec.Href = s
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
