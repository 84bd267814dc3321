// Package web holds the presentation page served by the monitor.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

//go:embed dist/*
var staticAssets embed.FS

// DevModeEnv names the environment variable that switches GetAssets to
// files on disk. "1" or "true" serves this package's dist directory; a
// directory path serves that directory.
const DevModeEnv = "SHOWCASE_MONITOR_DEV"

// GetAssets returns the page and its assets.
func GetAssets() http.FileSystem {
	if dir, ok := devDir(); ok {
		fmt.Fprintf(os.Stderr,
			"In monitor development mode, serving assets from %s\n", dir)

		return http.Dir(dir)
	}

	dist, err := fs.Sub(staticAssets, "dist")
	if err != nil {
		panic(err)
	}

	return http.FS(dist)
}

func devDir() (string, bool) {
	value := strings.TrimSpace(os.Getenv(DevModeEnv))

	switch strings.ToLower(value) {
	case "", "0", "false":
		return "", false
	case "1", "true":
		_, self, _, ok := runtime.Caller(0)
		if !ok {
			panic("web: cannot locate package source")
		}

		return filepath.Join(filepath.Dir(self), "dist"), true
	}

	if info, err := os.Stat(value); err == nil && info.IsDir() {
		return value, true
	}

	return "", false
}
