package state

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestStatusTransitions(t *testing.T) {
	s := NewState()
	if got := s.Status("cart.html", "h0"); got != StatusPending {
		t.Fatalf("expected pending for unknown file, got %s", got)
	}

	s.Record("cart.html", FileState{SourceHash: "h0", OutputHash: "h1", Extractor: "regex"})
	if got := s.Status("cart.html", "h1"); got != StatusConverted {
		t.Fatalf("expected converted, got %s", got)
	}
	if got := s.Status("cart.html", "h2"); got != StatusModified {
		t.Fatalf("expected modified after edit, got %s", got)
	}

	s.Forget("cart.html")
	if got := s.Status("cart.html", "h1"); got != StatusPending {
		t.Fatalf("expected pending after forget, got %s", got)
	}
}

func TestSaveLoadRoundTripCreatesWorkDir(t *testing.T) {
	workDir := filepath.Join(t.TempDir(), WorkDir)
	s := NewState()
	s.Record("a.html", FileState{SourceHash: "s", OutputHash: "o", Backup: "backup/a.html"})
	if err := s.Save(workDir); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(workDir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	fs, ok := loaded.Get("a.html")
	if !ok || fs.OutputHash != "o" || fs.Backup != "backup/a.html" {
		t.Fatalf("unexpected loaded state: %+v", loaded.Files)
	}
	if fs.ConvertedAt.IsZero() {
		t.Fatalf("expected Record to stamp converted_at")
	}
}

func TestLoadMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	st, err := Load(dir)
	if err != nil || len(st.Files) != 0 {
		t.Fatalf("expected empty state for missing file, got %+v, %v", st, err)
	}

	if err := os.WriteFile(filepath.Join(dir, StateFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected corrupt state error")
	}
}

func TestMissingFiles(t *testing.T) {
	s := NewState()
	s.Record("b.html", FileState{})
	s.Record("a.html", FileState{})
	s.Record("c.html", FileState{})

	got := s.MissingFiles(map[string]bool{"b.html": true})
	want := []string{"a.html", "c.html"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
