package ignore

import "testing"

func TestMatcher_DefaultAndUserOverrides(t *testing.T) {
	m := NewMatcher([]string{
		"drafts/",
		"!drafts/keep.html",
		"*.bak.html",
		"# comment",
	})

	cases := []struct {
		path    string
		isDir   bool
		ignored bool
	}{
		{path: "login.html", isDir: false, ignored: true},
		{path: "base.html", isDir: false, ignored: true},
		{path: "cms_config.json", isDir: false, ignored: true},
		{path: "admin/header.html", isDir: false, ignored: true},
		{path: ".templatize", isDir: true, ignored: true},
		{path: ".templatize/backup/cart.html", isDir: false, ignored: true},
		{path: "drafts/old.html", isDir: false, ignored: true},
		{path: "drafts/keep.html", isDir: false, ignored: false},
		{path: "cart.bak.html", isDir: false, ignored: true},
		{path: "cart.html", isDir: false, ignored: false},
		{path: "baseline.html", isDir: false, ignored: false},
	}

	for _, tc := range cases {
		got := m.ShouldIgnore(tc.path, tc.isDir)
		if got != tc.ignored {
			t.Fatalf("path %s: expected ignored=%v, got %v", tc.path, tc.ignored, got)
		}
	}
}

func TestMatcher_NegatedDefaultRule(t *testing.T) {
	m := NewMatcher([]string{"!login.html"})

	if m.ShouldIgnore("login.html", false) {
		t.Fatalf("expected login.html to be included after negation")
	}
	if !m.ShouldIgnore("footer.html", false) {
		t.Fatalf("expected footer.html to stay ignored")
	}
}

func TestMatcher_RootIsNeverIgnored(t *testing.T) {
	m := NewMatcher([]string{"*"})
	if m.ShouldIgnore(".", true) {
		t.Fatalf("expected root directory to be walkable")
	}
}
