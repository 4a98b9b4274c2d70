package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopx-dev/templatize/internal/ignore"
)

// PageExtension is the suffix of files considered for conversion.
const PageExtension = ".html"

func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil))[:16], nil
}

func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}

// ScanTemplates returns the sorted, slash-separated paths of candidate pages
// under rootPath. Subdirectories are only entered when recursive is set.
func ScanTemplates(rootPath string, matcher *ignore.Matcher, recursive bool) ([]string, error) {
	pages := make([]string, 0)

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		if info.IsDir() {
			if !recursive || matcher.ShouldIgnore(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if matcher.ShouldIgnore(relPath, false) {
			return nil
		}
		if !info.Mode().IsRegular() || !strings.HasSuffix(info.Name(), PageExtension) {
			return nil
		}

		pages = append(pages, filepath.ToSlash(relPath))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(pages)
	return pages, nil
}
