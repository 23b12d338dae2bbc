package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"groundhog/internal/errors"
	"groundhog/internal/log"
)

// Entry point for the application
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	log.Configure(log.WithOutput(stderr))
	defer func() { log.Default().Close() }()

	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	a.finish(err)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", errors.UserMessage(err))
		return errors.ExitCode(err)
	}
	return errors.ExitOK
}
