package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopx-dev/templatize/internal/cli"
)

func TestConvertThenRestoreThroughRootCommand(t *testing.T) {
	root := t.TempDir()
	original := `<html><head><title>Liên hệ</title>
<link rel="stylesheet" href="../assets/css/contact.css">
</head><body><main>
<form id="contact"></form>
</main>
<script src="../assets/js/contact.js"></script></body></html>
`
	mustWriteFile(t, filepath.Join(root, "contact.html"), original)
	mustWriteFile(t, filepath.Join(root, "base.html"), "<html>{% block content %}{% endblock %}</html>")

	convert := cli.NewRootCommand("test")
	convert.SetArgs([]string{"convert", root})
	if err := convert.Execute(); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	converted := mustReadFile(t, filepath.Join(root, "contact.html"))
	for _, expected := range []string{
		`{% extends "base.html" %}`,
		"{% block title %}Liên hệ{% endblock %}",
		`<link rel="stylesheet" href="../assets/css/contact.css">`,
		`<form id="contact"></form>`,
		`<script src="../assets/js/contact.js"></script>`,
	} {
		if !strings.Contains(converted, expected) {
			t.Fatalf("expected converted page to contain %q, got:\n%s", expected, converted)
		}
	}
	if base := mustReadFile(t, filepath.Join(root, "base.html")); strings.Contains(base, "extends") {
		t.Fatalf("expected base.html to be left alone, got:\n%s", base)
	}

	restore := cli.NewRootCommand("test")
	restore.SetArgs([]string{"restore", "--dir", root})
	if err := restore.Execute(); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if got := mustReadFile(t, filepath.Join(root, "contact.html")); got != original {
		t.Fatalf("expected original page after restore, got:\n%s", got)
	}
}

func TestConvertRejectsUnknownExtractor(t *testing.T) {
	root := t.TempDir()
	cmd := cli.NewRootCommand("test")
	cmd.SetArgs([]string{"convert", "--extractor", "soup", root})
	cmd.SetErr(new(strings.Builder))
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected unknown extractor to fail")
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

func mustReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
