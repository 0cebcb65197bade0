// Package pipeline runs one wallpaper update as an ordered list of steps.
//
// The default pipeline is:
//
//  1. locate: resolve the page for the requested mode, fetch it and pull the
//     picture path out of it (drawing again in random mode until a page
//     with a picture turns up)
//  2. download: fetch the picture and store it as apod-YYYY-MM-DD<ext>
//  3. inspect: read its dimensions and EXIF summary (never fatal)
//  4. wallpaper: apply the stored file as the desktop background
//
// Each step receives the shared *model.Run and records what it did. The first
// failing step stops the run. Steps that implement Skipper are left out when
// they have nothing to do, which is how a page without a picture ends the run
// quietly after the locate step.
package pipeline
