package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopx-dev/templatize/internal/extract"
	"github.com/shopx-dev/templatize/internal/fileutil"
	"github.com/shopx-dev/templatize/internal/ignore"
	"github.com/shopx-dev/templatize/internal/migrate"
	"github.com/shopx-dev/templatize/internal/render"
	"github.com/shopx-dev/templatize/internal/state"
	"go.uber.org/zap"
)

func BenchmarkExtract_MediumPage(b *testing.B) {
	content := []byte(syntheticPage(0, 200))
	registry := extract.NewDefaultRegistry()

	for _, name := range registry.Names() {
		extractor, err := registry.Get(name)
		if err != nil {
			b.Fatalf("unknown extractor %s: %v", name, err)
		}
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(content)))
			for i := 0; i < b.N; i++ {
				if _, err := extractor.Extract(content); err != nil {
					b.Fatalf("extract failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkConvert_MediumSite(b *testing.B) {
	extractor, err := extract.NewDefaultRegistry().Get(extract.DefaultExtractor)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		root := b.TempDir()
		createSyntheticSite(b, root, 100)
		files, err := fileutil.ScanTemplates(root, ignore.NewMatcher(nil), false)
		if err != nil {
			b.Fatalf("scan failed: %v", err)
		}
		runner := migrate.NewRunner(migrate.Options{
			Root:      root,
			Extractor: extractor,
			Jobs:      4,
			Logger:    zap.NewNop(),
		}, state.NewState())
		b.StartTimer()

		results, err := runner.Run(context.Background(), files)
		if err != nil {
			b.Fatalf("convert failed: %v", err)
		}
		if counts := migrate.Counts(results); counts[migrate.OutcomeUpdated] != len(files) {
			b.Fatalf("expected %d updated pages, got %v", len(files), counts)
		}
	}
}

// Byte-preserving strategies must render identical fragments for well-formed
// pages.
func TestRegexAndSyntaxAgreeOnSyntheticSite(t *testing.T) {
	registry := extract.NewDefaultRegistry()
	regex, err := registry.Get("regex")
	if err != nil {
		t.Fatal(err)
	}
	syntax, err := registry.Get("syntax")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 25; i++ {
		content := []byte(syntheticPage(i, 5+i))
		fromRegex, err := regex.Extract(content)
		if err != nil {
			t.Fatalf("page %d: regex extract failed: %v", i, err)
		}
		fromSyntax, err := syntax.Extract(content)
		if err != nil {
			t.Fatalf("page %d: syntax extract failed: %v", i, err)
		}

		want := render.Fragment(fromRegex, render.Options{})
		got := render.Fragment(fromSyntax, render.Options{})
		if want != got {
			t.Fatalf("page %d: fragments differ\nregex:\n%s\nsyntax:\n%s", i, want, got)
		}
	}
}

func createSyntheticSite(tb testing.TB, root string, pages int) {
	tb.Helper()

	for i := 0; i < pages; i++ {
		path := filepath.Join(root, fmt.Sprintf("page_%03d.html", i))
		if err := os.WriteFile(path, []byte(syntheticPage(i, 20)), 0644); err != nil {
			tb.Fatalf("write failed: %v", err)
		}
	}
}

func syntheticPage(id, products int) string {
	items := ""
	for j := 0; j < products; j++ {
		items += fmt.Sprintf(`
            <div class="product-card" data-id="%d">
                <img src="../assets/img/p%d.jpg" alt="Sản phẩm %d">
                <h3>Sản phẩm %d</h3>
                <span class="price">%d.000đ</span>
            </div>`, j, j, j, j, (j+1)*10)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="vi">
<head>
    <meta charset="UTF-8">
    <title>ShopX - Danh mục %d</title>
    <link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.0.0/css/all.min.css">
    <link rel="stylesheet" href="../assets/css/category-%d.css">
</head>
<body>
    <div id="header"></div>
    <main class="category">
        <section class="grid">%s
        </section>
    </main>
    <div id="footer"></div>
    <script src="https://cdn.jsdelivr.net/npm/bootstrap@5.3.0/dist/js/bootstrap.bundle.min.js"></script>
    <script src="../assets/js/category-%d.js"></script>
</body>
</html>
`, id, id, items, id)
}
