// Package web embeds the catalog page templates and static assets into the
// server binary.
package web

import "embed"

// TemplatesFS holds base.html and catalog.html under "templates/".
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS holds the stylesheet under "static/".
//
//go:embed static
var StaticFS embed.FS
