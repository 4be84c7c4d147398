package main

import (
	"os"

	"github.com/tmorel/finsight/backend/cmd/finsight/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
