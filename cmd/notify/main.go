package main

import (
	"fmt"
	"os"

	"github.com/onimusic/notifications-helper/internal/cli"
	"github.com/onimusic/notifications-helper/internal/relay/adapters/credentials"
)

func main() {
	cmd := cli.NewRootCmd(cli.Options{
		Tokens: credentials.NewStore(),
		Out:    os.Stdout,
		Err:    os.Stderr,
	})

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitError)
	}
	os.Exit(cli.ExitSuccess)
}
