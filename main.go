package main

import (
	"os"

	"github.com/akozlenkov/resumatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
