package main

import (
	"os"

	"github.com/bizclock/bizclock/cmd"
	"github.com/bizclock/bizclock/utils/log"
)

// This is the launcher for all bizclock services.
func main() {
	if err := cmd.Execute(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
