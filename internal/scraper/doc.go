// Package scraper pulls the picture link out of an archive page.
//
// Archive pages have a fixed layout: the first anchor is a navigation link
// and the second anchor wraps the full-size picture. The extractor relies on
// that position and nothing else. It is not a general content classifier,
// and a layout change on the remote side will break it.
//
// The page is scanned with the golang.org/x/net/html tokenizer rather than
// parsed into a DOM, so only the prefix up to the second anchor is read.
package scraper
