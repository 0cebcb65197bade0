package archive

import "fmt"

// TodayPage is the page that always holds the current picture.
const TodayPage = "astropix.html"

// PageName returns the archive page name for d, e.g. ap250101.html.
//
// The year is truncated to its last two digits because that is how the
// archive names its pages; 1999 and 2099 map to the same name.
func PageName(d Date) string {
	return fmt.Sprintf("ap%02d%02d%02d.html", d.Year%100, int(d.Month), d.Day)
}
