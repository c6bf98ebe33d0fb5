package main

import (
	"os"

	"github.com/auctionpost/auctionpost/cmd/commands"
)

// Version is set during build with -ldflags
var version = "dev"

func main() {
	if err := commands.NewRootCommand(version).Execute(); err != nil {
		os.Exit(1)
	}
}
