package main

import (
	"os"

	"github.com/osdpack/osdpack/internal/pkg/cli"
	"github.com/osdpack/osdpack/internal/pkg/env"
	"github.com/osdpack/osdpack/internal/pkg/filesystem/aferofs"
)

func main() {
	// ENVs from the OS
	envs, err := env.FromOs()
	if err != nil {
		panic(err)
	}

	// Run command
	cmd := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, envs, aferofs.NewLocalFs)
	os.Exit(cmd.Execute())
}
