// Package web embeds the static pages served at the site root.
package web

import "embed"

//go:embed public
var Public embed.FS
