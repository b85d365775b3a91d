package main

import (
	"github.com/spf13/cobra"
)

func (a *app) reverseCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "reverse IN",
		Short: "Swap obfuscated and de-obfuscated names",
		Long: `Reverse a mapping file: A->B becomes B->A.

Parameter names are dropped, as they have no obfuscated counterpart.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := a.loadSet(args[0])
			if err != nil {
				return err
			}

			return a.saveSet(output, set.Reverse())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// convertArgCount is the number of arguments expected by the convert command.
const convertArgCount = 2

func (a *app) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a mapping file between formats",
		Long: `Convert a mapping file. Formats follow the file extensions:
.tsrg for TSRG, .yaml or .yml for YAML.

TSRG carries no field types or parameter names; converting to TSRG drops them.`,
		Args: cobra.ExactArgs(convertArgCount),
		RunE: func(_ *cobra.Command, args []string) error {
			set, err := a.loadSet(args[0])
			if err != nil {
				return err
			}

			return a.saveSet(args[1], set)
		},
	}
}
