package main

import "embed"

// templatesFS holds the page layout, its partials and the HTMX fragments.
//
//go:embed templates
var templatesFS embed.FS

// staticFS holds the stylesheet and the client script.
//
//go:embed static
var staticFS embed.FS
