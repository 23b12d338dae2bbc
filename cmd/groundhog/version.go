package main

import (
	"fmt"
	"runtime"

	"groundhog/internal/config"

	"github.com/spf13/cobra"
)

// newVersionCmd creates the version command
func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        noArgs,
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "groundhog version %s (%s/%s, %s)\n",
				config.Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
		},
	}
}
