// Package config holds the settings of one apod-wallpaper invocation.
// They are populated from command line flags; there is no config file.
package config
