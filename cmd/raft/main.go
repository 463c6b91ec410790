package main

import (
	"os"

	"github.com/msto63/raft/cmd/raft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
