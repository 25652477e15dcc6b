// Package web bundles the console's static assets
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Static returns the asset tree served under /static/
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
