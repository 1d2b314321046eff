package main

import (
	"fmt"
	"os"

	"github.com/btcq-org/bounty/cmd/bountyd/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
