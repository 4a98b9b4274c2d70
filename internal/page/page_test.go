package page

import (
	"errors"
	"strings"
	"testing"
)

type stubExtractor struct {
	name string
}

func (s stubExtractor) Name() string {
	return s.name
}

func (s stubExtractor) Extract(content []byte) (*Page, error) {
	if !strings.Contains(string(content), "<main") {
		return nil, ErrNoMain
	}
	return &Page{Content: "stub"}, nil
}

func TestRegistryGetIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(stubExtractor{name: "Stub"})

	e, err := r.Get(" STUB ")
	if err != nil {
		t.Fatalf("expected extractor, got error: %v", err)
	}
	if e.Name() != "Stub" {
		t.Fatalf("expected Stub extractor, got %s", e.Name())
	}
}

func TestRegistryGetUnknownListsSupported(t *testing.T) {
	r := NewRegistry()
	r.Register(stubExtractor{name: "b"})
	r.Register(stubExtractor{name: "a"})

	_, err := r.Get("c")
	if err == nil {
		t.Fatalf("expected error for unknown extractor")
	}
	if !strings.Contains(err.Error(), "supported: a, b") {
		t.Fatalf("expected sorted supported list in error, got %v", err)
	}
}

func TestStubReportsNoMain(t *testing.T) {
	_, err := stubExtractor{name: "s"}.Extract([]byte("<html></html>"))
	if !errors.Is(err, ErrNoMain) {
		t.Fatalf("expected ErrNoMain, got %v", err)
	}
}

func TestIsLocalAsset(t *testing.T) {
	cases := []struct {
		value string
		ext   string
		local bool
	}{
		{value: "../assets/css/cart.css", ext: ".css", local: true},
		{value: "https://cdn.example.com/bootstrap.css", ext: ".css", local: false},
		{value: "HTTP://cdn.example.com/x.css", ext: ".css", local: false},
		{value: "//cdn.example.com/x.js", ext: ".js", local: false},
		{value: "/assets/js/cart.js", ext: ".js", local: true},
		{value: "/assets/js/cart.js?v=2", ext: ".js", local: false},
		{value: "/assets/css/cart.css", ext: ".js", local: false},
	}
	for _, tc := range cases {
		if got := IsLocalAsset(tc.value, tc.ext); got != tc.local {
			t.Fatalf("IsLocalAsset(%q, %q) = %v, want %v", tc.value, tc.ext, got, tc.local)
		}
	}
}
