package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ytget/playlist-packager/internal/platform"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that the external tools are installed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return printDependencies(cmd.OutOrStdout(), checkDependencies(cfg))
		},
	}
}

var errMissingDependency = errors.New("required dependency missing")

func printDependencies(w io.Writer, statuses []platform.Status) error {
	var missing bool
	for _, s := range statuses {
		switch {
		case s.Available:
			fmt.Fprintf(w, "ok       %-8s %s\n", s.Name, s.Path)
		case s.Optional:
			fmt.Fprintf(w, "optional %-8s %s (%s)\n", s.Name, s.Description, s.Detail)
		default:
			missing = true
			fmt.Fprintf(w, "missing  %-8s %s (%s)\n", s.Name, s.Description, s.Detail)
		}
	}
	if missing {
		return errMissingDependency
	}
	return nil
}
