package scraper

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// TestExtractImagePath tests ordinal anchor extraction.
func TestExtractImagePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markup   string
		wantPath string
		wantOK   bool
	}{
		{
			name:   "empty input",
			markup: "",
		},
		{
			name:   "no anchors",
			markup: `<html><body><p>Nothing here</p><img src="x.jpg"></body></html>`,
		},
		{
			name:   "one anchor",
			markup: `<html><body><a href="archivepix.html">Archive</a></body></html>`,
		},
		{
			name:     "two anchors",
			markup:   `<a href="x.html">a</a><a href="image/ap250101.jpg">b</a>`,
			wantPath: "image/ap250101.jpg",
			wantOK:   true,
		},
		{
			name:     "more than two anchors returns the second",
			markup:   `<a href="one.html">1</a><a href="two.png">2</a><a href="three.gif">3</a>`,
			wantPath: "two.png",
			wantOK:   true,
		},
		{
			name:     "decodes entities",
			markup:   `<a href="x.html">a</a><a href="image/pic.jpg?a=1&amp;b=2">b</a>`,
			wantPath: "image/pic.jpg?a=1&b=2",
			wantOK:   true,
		},
		{
			name:     "uppercase tags and attributes",
			markup:   `<A HREF="x.html">a</A><A HREF="image/big.gif">b</A>`,
			wantPath: "image/big.gif",
			wantOK:   true,
		},
		{
			name:     "href after other attributes",
			markup:   `<a href="x.html">a</a><a target="_blank" title="full size" href="image/full.png">b</a>`,
			wantPath: "image/full.png",
			wantOK:   true,
		},
		{
			name:     "self-closing anchors count",
			markup:   `<a name="top"/><a href="image/self.jpg"/>`,
			wantPath: "image/self.jpg",
			wantOK:   true,
		},
		{
			name:   "second anchor without attributes",
			markup: `<a href="x.html">a</a><a>b</a>`,
		},
		{
			name:   "second anchor without href",
			markup: `<a href="x.html">a</a><a name="pic">b</a>`,
		},
		{
			name:     "end tags and other elements are ignored",
			markup:   `<abbr>x</abbr></a><area href="m.html"><a href="nav.html"></a><p><a href="image/p.jpg">`,
			wantPath: "image/p.jpg",
			wantOK:   true,
		},
		{
			name:   "truncated markup",
			markup: `<html><body><a href="x.html">a</a><a hre`,
		},
		{
			name:     "malformed but recoverable",
			markup:   `<html><body><a href="nav.html"><p><b>unclosed<a href="image/m.jpg">`,
			wantPath: "image/m.jpg",
			wantOK:   true,
		},
		{
			name:   "anchors inside script are text",
			markup: `<script>var s = '<a href="x"><a href="y.jpg">';</script><a href="only.html">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path, ok := ExtractImagePath(strings.NewReader(tt.markup))
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got ok=%v (path %q)", tt.wantOK, ok, path)
			}
			if path != tt.wantPath {
				t.Errorf("expected path %q, got %q", tt.wantPath, path)
			}
		})
	}
}

// errReader fails after returning its prefix.
type errReader struct {
	r io.Reader
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if errors.Is(err, io.EOF) {
		return n, errors.New("connection reset")
	}
	return n, err
}

// TestExtractImagePathReadError tests that read errors resolve to none.
func TestExtractImagePathReadError(t *testing.T) {
	t.Parallel()

	t.Run("error before second anchor", func(t *testing.T) {
		t.Parallel()

		r := &errReader{r: strings.NewReader(`<a href="x.html">a</a>`)}
		if path, ok := ExtractImagePath(r); ok {
			t.Errorf("expected no path, got %q", path)
		}
	})

	t.Run("second anchor read before error", func(t *testing.T) {
		t.Parallel()

		r := &errReader{r: strings.NewReader(`<a href="x.html">a</a><a href="image/y.jpg">b</a>`)}
		path, ok := ExtractImagePath(r)
		if !ok || path != "image/y.jpg" {
			t.Errorf("expected image/y.jpg, got %q (ok=%v)", path, ok)
		}
	})
}

// TestIsImagePath tests the extension classifier.
func TestIsImagePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"image/2501/pic.jpg", true},
		{"image/2501/pic.gif", true},
		{"image/2501/pic.png", true},
		{"https://apod.nasa.gov/apod/image/2501/pic.jpg", true},
		{".jpg", true},
		{"", false},
		{"image/2501/pic.jpeg", false},
		{"image/2501/pic.JPG", false},
		{"image/2501/pic.Png", false},
		{"image/2501/pic.webp", false},
		{"https://www.youtube.com/embed/abc", false},
		{"image/2501/pic.jpg?size=large", false},
		{"ap250101.html", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := IsImagePath(tt.path); got != tt.want {
				t.Errorf("IsImagePath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
