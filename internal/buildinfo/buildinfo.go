// Package buildinfo exposes build metadata injected at link time.
//
// The values are meant to be set via -ldflags, e.g.:
//
//	go build -ldflags "-X github.com/drawlabs/luckyadmin/internal/buildinfo.buildVersion=v1.2.0 \
//	  -X 'github.com/drawlabs/luckyadmin/internal/buildinfo.buildDate=2026-08-01' \
//	  -X github.com/drawlabs/luckyadmin/internal/buildinfo.buildCommit=abc1234"
//
// Unset values print as "N/A".
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// Version returns the linked build version string.
func Version() string {
	return buildVersion
}

// PrintBuildData writes the standard three-line build banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
