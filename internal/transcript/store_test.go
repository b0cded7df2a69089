package transcript

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/rphilander/minilisp"
)

func openTestStore(t *testing.T, path, session string) *Store {
	t.Helper()
	s, err := Open(path, session)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRecordAndList(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "run.db"), "s1")
	traces := []minilisp.Trace{
		{Seq: 1, Form: "(add 1 2)", Result: minilisp.IntVal(3), Timestamp: "2026-02-27T20:00:00Z"},
		{Seq: 2, Form: "(car nil)", Result: minilisp.VoidVal(), Error: "car: empty list", Timestamp: "2026-02-27T20:00:01Z"},
		{Seq: 3, Form: `(quote "s")`, Result: minilisp.StringVal("s"), Timestamp: "2026-02-27T20:00:02Z"},
	}
	for _, tr := range traces {
		if err := s.Record(tr); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.List("s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Result != "3" || entries[0].Error != "" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if entries[1].Result != "" || entries[1].Error != "car: empty list" {
		t.Fatalf("unexpected entry: %+v", entries[1])
	}
	if entries[2].Result != "s" || entries[2].Form != `(quote "s")` {
		t.Fatalf("unexpected entry: %+v", entries[2])
	}
}

func TestStoreSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.db")
	a := openTestStore(t, path, "a")
	if err := a.Record(minilisp.Trace{Seq: 1, Form: "1", Result: minilisp.IntVal(1)}); err != nil {
		t.Fatal(err)
	}
	b := openTestStore(t, path, "b")
	if err := b.Record(minilisp.Trace{Seq: 1, Form: "2", Result: minilisp.IntVal(2)}); err != nil {
		t.Fatal(err)
	}

	sessions, err := b.Sessions()
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 || sessions[0] != "a" || sessions[1] != "b" {
		t.Fatalf("unexpected sessions: %v", sessions)
	}
	entries, err := a.List("b")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Form != "2" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestStoreAsRecorder(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "run.db"), NewSessionID())
	ip := minilisp.New(minilisp.WithRecorder(s), minilisp.WithOutput(io.Discard))
	_ = ip.Run(`(write-line "x") (div 1 0)`)

	entries, err := s.List(s.Session())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Error != "div: division by zero" {
		t.Fatalf("unexpected entry: %+v", entries[1])
	}
}

func TestOpenMissingPath(t *testing.T) {
	if _, err := Open("", "s"); err == nil {
		t.Fatal("expected error for empty path")
	}
}
