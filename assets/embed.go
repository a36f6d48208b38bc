package assets

import (
	"embed"
	"io/fs"
)

//go:embed taunts.txt migrations/*.sql web/index.html
var FS embed.FS

// Taunts opens the default message pools.
func Taunts() (fs.File, error) {
	return FS.Open("taunts.txt")
}

// Migrations is the SQL migration directory, rooted so entries are plain file names.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Web holds the static page served at "/".
func Web() fs.FS {
	sub, err := fs.Sub(FS, "web")
	if err != nil {
		panic(err)
	}
	return sub
}
