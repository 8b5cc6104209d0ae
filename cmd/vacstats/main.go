package main

import "github.com/dmitrijs2005/vacstats/internal/client/cli"

// Populated via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Execute(version, commit, date)
}
