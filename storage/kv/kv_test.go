package kv

import (
	"path/filepath"
	"testing"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func testStoreRoundTrip(t *testing.T, s Store) {
	t.Helper()

	ok, err := s.Get("missing", &record{})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get(missing) ok = true")
	}

	want := record{Name: "a", Count: 2}
	if err = s.Set("k", want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got record
	ok, err = s.Get("k", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok || got != want {
		t.Errorf("Get() = %+v, %v; want %+v, true", got, ok, want)
	}

	if has, _ := s.Has("k"); !has {
		t.Error("Has(k) = false after Set")
	}
	if err = s.Remove("k"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if has, _ := s.Has("k"); has {
		t.Error("Has(k) = true after Remove")
	}
	if err = s.Remove("k"); err != nil { // idempotent
		t.Fatalf("Remove() again error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStoreRoundTrip(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	testStoreRoundTrip(t, s)
}

func TestFileStoreReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if err = s.Set("token", "abc"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err = s.Set("kept", record{Name: "x"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err = s.Remove("token"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	// a fresh store over the same file sees the flushed state
	reloaded, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() reload error = %v", err)
	}
	if has, _ := reloaded.Has("token"); has {
		t.Error("removed key survived reload")
	}
	var got record
	ok, err := reloaded.Get("kept", &got)
	if err != nil || !ok {
		t.Fatalf("Get(kept) = %v, %v", ok, err)
	}
	if got.Name != "x" {
		t.Errorf("kept.Name = %q, want %q", got.Name, "x")
	}
}

func TestTableSeedsOnce(t *testing.T) {
	seeds := 0
	s := NewMemory()
	tbl := NewTable(s, "rows", func() []record {
		seeds++
		return []record{{Name: "seeded"}}
	})

	rows, err := tbl.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "seeded" {
		t.Fatalf("All() = %+v", rows)
	}

	if _, err = tbl.All(); err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if seeds != 1 {
		t.Errorf("seed ran %d times, want 1", seeds)
	}
}

func TestTableEmptiedStaysEmpty(t *testing.T) {
	s := NewMemory()
	tbl := NewTable(s, "rows", func() []record {
		return []record{{Name: "seeded"}}
	})

	if _, err := tbl.All(); err != nil {
		t.Fatalf("All() error = %v", err)
	}
	// deleting every row is not the same as never having been seeded
	if err := tbl.Save(nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rows, err := tbl.All()
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("emptied table reseeded: %+v", rows)
	}
}
