// Package imageinfo reads basic facts about a stored picture: its format,
// its pixel dimensions, and the camera and credit fields of its EXIF block
// when it has one.
package imageinfo

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
	"github.com/spf13/afero"
)

// exifScanLimit bounds how much of a JPEG is read when looking for EXIF.
// The APP1 segment sits right after the start-of-image marker.
const exifScanLimit = 256 * 1024

// Info is what Inspect learns about a picture.
type Info struct {
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// Camera is "Make Model" from EXIF.
	Camera string `json:"camera,omitempty"`

	// Taken is DateTimeOriginal (or DateTime) from EXIF.
	Taken string `json:"taken,omitempty"`

	// Artist and Copyright are the EXIF credit fields.
	Artist    string `json:"artist,omitempty"`
	Copyright string `json:"copyright,omitempty"`
}

// String returns a one-line summary such as "jpeg 1920x1080".
func (i *Info) String() string {
	s := fmt.Sprintf("%s %dx%d", i.Format, i.Width, i.Height)
	if i.Camera != "" {
		s += ", " + i.Camera
	}
	return s
}

// InspectFile opens path on fs and inspects it.
func InspectFile(fs afero.Fs, path string) (*Info, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Inspect(f)
}

// Inspect decodes the image header from r. EXIF is only read for JPEG;
// a missing or unreadable EXIF block is not an error.
func Inspect(r io.ReadSeeker) (*Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}

	info := &Info{Format: format, Width: cfg.Width, Height: cfg.Height}
	if format != "jpeg" {
		return info, nil
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return info, nil
	}
	head, err := io.ReadAll(io.LimitReader(r, exifScanLimit))
	if err != nil {
		return info, nil
	}
	readEXIF(head, info)
	return info, nil
}

// readEXIF fills the EXIF fields of info from data, if it carries EXIF.
func readEXIF(data []byte, info *Info) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return
	}

	var vendor, model, dateTime string
	for _, entry := range entries {
		value := strings.TrimSpace(strings.Trim(entry.Formatted, "\x00"))
		switch entry.TagName {
		case "Make":
			vendor = value
		case "Model":
			model = value
		case "DateTimeOriginal":
			info.Taken = value
		case "DateTime":
			dateTime = value
		case "Artist":
			info.Artist = value
		case "Copyright":
			info.Copyright = value
		}
	}

	if info.Taken == "" {
		info.Taken = dateTime
	}
	info.Camera = strings.TrimSpace(strings.Join([]string{vendor, model}, " "))
}
