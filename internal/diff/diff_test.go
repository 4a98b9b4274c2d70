package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinesClassifiesChanges(t *testing.T) {
	lines := Lines("a\nb\nc\n", "a\nB\nc\n")

	var added, removed, context int
	for _, line := range lines {
		switch line.Type {
		case LineAdded:
			added++
			assert.Equal(t, "B", line.Text)
		case LineRemoved:
			removed++
			assert.Equal(t, "b", line.Text)
		case LineContext:
			context++
		}
	}
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, context)
}

func TestUnifiedElidesDistantContext(t *testing.T) {
	before := "1\n2\n3\n4\n5\n6\n7\n8\n"
	after := "1\n2\n3\n4\n5\n6\n7\nX\n"

	out, truncated := Unified("cart.html", before, after, 1, 0)
	assert.False(t, truncated)
	assert.True(t, strings.HasPrefix(out, "--- a/cart.html\n+++ b/cart.html\n"))
	assert.Contains(t, out, "@@\n 7\n-8\n+X\n")
	assert.NotContains(t, out, " 1\n")
}

func TestUnifiedTruncatesLargeInput(t *testing.T) {
	big := strings.Repeat("line\n", 50)
	out, truncated := Unified("big.html", big, "x", 3, 10)
	assert.True(t, truncated)
	assert.Contains(t, out, "diff too large")
}

func TestLinesKeepsManyDistinctLinesAligned(t *testing.T) {
	before := `<!DOCTYPE html>
<html lang="vi">
<head>
    <meta charset="UTF-8">
    <title>Giỏ hàng</title>
    <link rel="stylesheet" href="../assets/css/cart.css">
</head>
<body>
    <main>
        <h1>Giỏ hàng</h1>
        <div id="cart-items"></div>
    </main>
</body>
</html>
`
	after := `<!DOCTYPE html>
<html lang="vi">
<head>
    <meta charset="UTF-8">
    <title>Giỏ hàng - ShopX</title>
    <link rel="stylesheet" href="../assets/css/cart.css">
</head>
<body>
    <main>
        <h1>Giỏ hàng</h1>
        <div id="cart-items"></div>
        <div id="cart-total"></div>
    </main>
</body>
</html>
`
	var added, removed []string
	context := 0
	for _, line := range Lines(before, after) {
		switch line.Type {
		case LineAdded:
			added = append(added, line.Text)
		case LineRemoved:
			removed = append(removed, line.Text)
		case LineContext:
			context++
		}
	}
	assert.Equal(t, []string{"    <title>Giỏ hàng - ShopX</title>", `        <div id="cart-total"></div>`}, added)
	assert.Equal(t, []string{"    <title>Giỏ hàng</title>"}, removed)
	assert.Equal(t, 13, context)
}

func TestUnifiedShowsFragmentRewrite(t *testing.T) {
	before := "<!DOCTYPE html>\n<html>\n<head>\n<title>Liên hệ</title>\n</head>\n<body>\n<main>\n<form></form>\n</main>\n</body>\n</html>\n"
	after := "{% extends \"base.html\" %}\n\n{% block title %}Liên hệ{% endblock %}\n\n{% block content %}\n\n<form></form>\n\n{% endblock %}\n"

	out, truncated := Unified("contact.html", before, after, 3, 0)
	assert.False(t, truncated)
	assert.Contains(t, out, "+{% block content %}\n")
	assert.Contains(t, out, "-<!DOCTYPE html>\n")
	assert.Equal(t, 1, strings.Count(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, " <form></form>\n")
}
