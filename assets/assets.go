// Package assets holds the files compiled into the binary
package assets

import _ "embed"

// GalleryTemplate is the pug template of the static gallery page
//
//go:embed templates/gallery.pug
var GalleryTemplate string
