package biblio

// Notes:
// - Library is tested through every accepted call shape and the rejected ones;
//   rejected calls must leave previously registered records untouched.
// - Go maps have no declaration order, so map-shaped bulk calls register in
//   sorted key order; ordered input ([]Entry, decoded YAML) keeps its order.

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/alnah/go-paper/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// TestStore - Register, Lookup, Clone
// ---------------------------------------------------------------------------

func TestStore_RegisterAndLookup(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Register("nap", Record{Author: "Bonaparte, ", Desc: "Diary", Href: "http://www.napoleon.org"})

	rec, ok := s.Lookup("nap")
	if !ok {
		t.Fatal("Lookup(nap) not found")
	}
	if rec.Author != "Bonaparte, " || rec.Desc != "Diary" || rec.Href != "http://www.napoleon.org" {
		t.Errorf("Lookup(nap) = %+v", rec)
	}

	if _, ok := s.Lookup("ghost"); ok {
		t.Error("Lookup(ghost) found, want not found")
	}
}

func TestStore_LastWriteWins(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.RegisterDesc("a", "first")
	s.RegisterDesc("b", "other")
	s.RegisterDesc("a", "second")

	rec, _ := s.Lookup("a")
	if rec.Desc != "second" {
		t.Errorf("Desc = %q, want %q", rec.Desc, "second")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if got := s.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v, want first-registration order [a b]", got)
	}
}

func TestStore_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	base := NewStore()
	base.RegisterDesc("a", "base")

	c := base.Clone()
	c.RegisterDesc("a", "changed")
	c.RegisterDesc("b", "new")

	if rec, _ := base.Lookup("a"); rec.Desc != "base" {
		t.Errorf("base record changed to %q", rec.Desc)
	}
	if _, ok := base.Lookup("b"); ok {
		t.Error("clone registration leaked into base")
	}
	if c.Len() != 2 {
		t.Errorf("clone Len() = %d, want 2", c.Len())
	}
}

// ---------------------------------------------------------------------------
// TestLibrary - Dynamic call shapes
// ---------------------------------------------------------------------------

func TestLibrary_AcceptedShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []any
		want map[string]Record
	}{
		{
			name: "key and description string",
			args: []any{"nap", "Diary"},
			want: map[string]Record{"nap": {Desc: "Diary"}},
		},
		{
			name: "key and record",
			args: []any{"nap", Record{Desc: "Diary", Href: "http://x"}},
			want: map[string]Record{"nap": {Desc: "Diary", Href: "http://x"}},
		},
		{
			name: "key and record pointer",
			args: []any{"nap", &Record{Author: "N. "}},
			want: map[string]Record{"nap": {Author: "N. "}},
		},
		{
			name: "key and string map",
			args: []any{"nap", map[string]string{"desc": "Diary", "unknown": "x"}},
			want: map[string]Record{"nap": {Desc: "Diary"}},
		},
		{
			name: "bulk string map",
			args: []any{map[string]string{"a": "X", "b": "Y"}},
			want: map[string]Record{"a": {Desc: "X"}, "b": {Desc: "Y"}},
		},
		{
			name: "bulk record map",
			args: []any{map[string]Record{"a": {Href: "h"}}},
			want: map[string]Record{"a": {Href: "h"}},
		},
		{
			name: "bulk any map with nested maps",
			args: []any{map[string]any{"a": "X", "b": map[string]any{"author": "A", "desc": 42}}},
			want: map[string]Record{"a": {Desc: "X"}, "b": {Author: "A", Desc: "42"}},
		},
		{
			name: "bulk entries",
			args: []any{[]Entry{{Key: "a", Record: Record{Desc: "X"}}}},
			want: map[string]Record{"a": {Desc: "X"}},
		},
		{
			name: "bulk ordered pairs",
			args: []any{[]yamlutil.Pair{{Key: "a", Value: "X"}, {Key: "b", Value: []yamlutil.Pair{{Key: "href", Value: "h"}}}}},
			want: map[string]Record{"a": {Desc: "X"}, "b": {Href: "h"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewStore()
			if err := s.Library(tt.args...); err != nil {
				t.Fatalf("Library() error: %v", err)
			}
			if s.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", s.Len(), len(tt.want))
			}
			for k, want := range tt.want {
				got, ok := s.Lookup(k)
				if !ok {
					t.Errorf("Lookup(%q) not found", k)
					continue
				}
				if got != want {
					t.Errorf("Lookup(%q) = %+v, want %+v", k, got, want)
				}
			}
		})
	}
}

func TestLibrary_RejectedShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []any
	}{
		{name: "zero arguments", args: nil},
		{name: "three arguments", args: []any{"a", "b", "c"}},
		{name: "single number", args: []any{42}},
		{name: "single string", args: []any{"nap"}},
		{name: "single nil", args: []any{nil}},
		{name: "non-string key", args: []any{1, "Diary"}},
		{name: "unsupported record", args: []any{"nap", 3.14}},
		{name: "nil record pointer", args: []any{"nap", (*Record)(nil)}},
		{name: "bulk with bad record", args: []any{map[string]any{"a": "ok", "b": []int{1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewStore()
			s.RegisterDesc("keep", "existing")

			err := s.Library(tt.args...)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("Library() error = %v, want ErrInvalidArgument", err)
			}
			if s.Len() != 1 {
				t.Errorf("store changed by rejected call: Len() = %d", s.Len())
			}
			if rec, _ := s.Lookup("keep"); rec.Desc != "existing" {
				t.Errorf("existing record corrupted: %+v", rec)
			}
		})
	}
}

func TestLibrary_BulkThenReRegister(t *testing.T) {
	t.Parallel()

	s := NewStore()
	if err := s.Library([]Entry{{Key: "a", Record: Record{Desc: "X"}}, {Key: "b", Record: Record{Desc: "Y"}}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Library("a", "X2"); err != nil {
		t.Fatal(err)
	}

	if rec, _ := s.Lookup("a"); rec.Desc != "X2" {
		t.Errorf("a = %q, want X2", rec.Desc)
	}
	if got := s.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v", got)
	}
}

// ---------------------------------------------------------------------------
// TestDecode - YAML/JSON snippets
// ---------------------------------------------------------------------------

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		wantKeys []string
		wantErr  bool
	}{
		{
			name:     "yaml mapping keeps order",
			data:     "zeta: Z\nalpha:\n  desc: A\n  href: http://a\n",
			wantKeys: []string{"zeta", "alpha"},
		},
		{
			name:     "json mapping",
			data:     `{"b": "Y", "a": {"desc": "X"}}`,
			wantKeys: []string{"b", "a"},
		},
		{
			name:     "single entry sequence",
			data:     `["nap", {"desc": "Diary"}]`,
			wantKeys: []string{"nap"},
		},
		{
			name:     "single entry with string record",
			data:     "- nap\n- Diary\n",
			wantKeys: []string{"nap"},
		},
		{name: "empty", data: "", wantErr: true},
		{name: "scalar", data: "just text", wantErr: true},
		{name: "three element sequence", data: `["a", "b", "c"]`, wantErr: true},
		{name: "syntax error", data: "a: [unclosed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			call, err := Decode([]byte(tt.data))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("Decode() error = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}

			s := NewStore()
			s.Apply(call)
			if got := s.Keys(); !reflect.DeepEqual(got, tt.wantKeys) {
				t.Errorf("keys = %v, want %v", got, tt.wantKeys)
			}
		})
	}
}

func TestDecode_RecordFields(t *testing.T) {
	t.Parallel()

	call, err := Decode([]byte("nap:\n  author: 'Bonaparte, N. '\n  desc: Diary\n  href: http://www.napoleon.org\n"))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	s := NewStore()
	s.Apply(call)

	want := Record{Author: "Bonaparte, N. ", Desc: "Diary", Href: "http://www.napoleon.org"}
	if got, _ := s.Lookup("nap"); got != want {
		t.Errorf("nap = %+v, want %+v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestLoadFile - Bibliography files
// ---------------------------------------------------------------------------

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "refs.yaml")
	if err := os.WriteFile(path, []byte("b: Second\na: First\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	want := []Entry{{Key: "b", Record: Record{Desc: "Second"}}, {Key: "a", Record: Record{Desc: "First"}}}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("LoadFile() = %+v, want %+v", entries, want)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrBibliographyRead) {
		t.Errorf("missing file error = %v, want ErrBibliographyRead", err)
	}

	single := filepath.Join(dir, "single.yaml")
	if err := os.WriteFile(single, []byte(`["nap", "Diary"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(single); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("sequence file error = %v, want ErrInvalidArgument", err)
	}
}
