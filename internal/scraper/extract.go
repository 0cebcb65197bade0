package scraper

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Anchor element and attribute names.
const (
	anchorTag  = "a"
	hrefAttr   = "href"
	imageIndex = 2
)

// imageExtensions are the file extensions accepted as wallpaper images.
// Matching is case-sensitive.
var imageExtensions = []string{".jpg", ".gif", ".png"}

// ExtractImagePath returns the href of the second anchor in r.
//
// Start tags and self-closing tags are both counted. Attribute values come
// back with character references decoded, so "a&amp;b" yields "a&b".
// ok is false when the markup has fewer than two anchors, when the second
// anchor has no href, or when the input ends or breaks before that point.
// Malformed markup never produces an error.
func ExtractImagePath(r io.Reader) (path string, ok bool) {
	return nthAnchorHref(r, imageIndex)
}

// nthAnchorHref streams tokens from r and returns the href of the n-th anchor.
func nthAnchorHref(r io.Reader, n int) (string, bool) {
	z := html.NewTokenizer(r)
	seen := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a read error; either way there is no n-th anchor.
			return "", false

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != anchorTag {
				continue
			}
			seen++
			if seen < n {
				continue
			}
			if !hasAttr {
				return "", false
			}
			return tagAttr(z, hrefAttr)
		}
	}
}

// tagAttr scans the remaining attributes of the current tag for key.
func tagAttr(z *html.Tokenizer, key string) (string, bool) {
	for {
		k, v, more := z.TagAttr()
		if string(k) == key {
			return string(v), true
		}
		if !more {
			return "", false
		}
	}
}

// IsImagePath reports whether p ends in one of the accepted image
// extensions. Only the extension is checked; the content type is never
// verified.
func IsImagePath(p string) bool {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}
