// Package main provides the entry point for the apod-wallpaper CLI.
//
// apod-wallpaper downloads a picture from the Astronomy Picture of the Day
// archive and sets it as the desktop wallpaper.
//
// Usage:
//
//	apod-wallpaper              # today's picture
//	apod-wallpaper random       # a random day from the archive
//	apod-wallpaper yesterday    # yesterday's picture
//	apod-wallpaper 7            # the picture from seven days ago
//
// See --help for all available options.
package main

func main() {
	Execute()
}
