package main

import (
	"os"

	"github.com/bjaus/action/cmd/actiond/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
