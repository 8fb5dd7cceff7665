package main

import (
	"os"

	"gitup.dev/gitup/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError(err)
		os.Exit(cli.ExitCode(err))
	}
}
