package main

import (
	"github.com/devlogdev/devlog/cmd"
	"github.com/devlogdev/devlog/pkg/http"
)

// Set by goreleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	http.SetUserAgent(http.BuildUserAgent(version))
	cmd.Execute()
}
