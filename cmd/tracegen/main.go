// Command tracegen writes traced decorators for the interfaces of a package.
//
// It is meant to be run through go:generate from the package declaring the
// interfaces:
//
//	//go:generate go run github.com/Aleph-Alpha/calltrace/cmd/tracegen --type Repository,Service
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/calltrace/internal/tracegen"
)

func newRootCmd() *cobra.Command {
	var opts tracegen.Options

	cmd := &cobra.Command{
		Use:   "tracegen",
		Short: "Generate traced decorators for interfaces.",
		Long: "tracegen parses the package in --dir and writes a decorator for each " +
			"interface named by --type. Every method of the decorator runs the " +
			"wrapped call inside a calltrace span.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := tracegen.Generate(opts)
			if err != nil {
				return err
			}

			out := opts.OutputPath()
			if err := os.WriteFile(out, src, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Interfaces, "type", "t", nil, "comma separated interface names")
	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", ".", "package directory")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", tracegen.DefaultOutput, "output file name inside --dir")
	cmd.Flags().StringVar(&opts.CalltraceImport, "calltrace-import", tracegen.DefaultCalltraceImport, "import path of the calltrace package")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
