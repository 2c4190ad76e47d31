// Package assets embeds the files the server ships with: SQL migrations for
// the catalog database and the HTML page templates.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql pages/*.html
var FS embed.FS

func sub(dir string) fs.FS {
	f, err := fs.Sub(FS, dir)
	if err != nil {
		panic("assets: " + err.Error())
	}
	return f
}

// Migrations returns the migration scripts, rooted at migrations/.
func Migrations() fs.FS { return sub("migrations") }

// Pages returns the page templates, rooted at pages/.
func Pages() fs.FS { return sub("pages") }
