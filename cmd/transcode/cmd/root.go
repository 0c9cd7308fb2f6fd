// Package cmd implements the transcode command line.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// GlobalFlags holds flags shared by every subcommand.
type GlobalFlags struct {
	Verbose bool
}

type app struct {
	flags GlobalFlags
	log   *zap.Logger
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "transcode",
		Short: "Base64, UTF-8 and digest tooling",
		Long: `transcode converts between bytes, Base64 text and Unicode code points.

Input is read from the arguments, joined by spaces, or from stdin when no
arguments are given.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !a.flags.Verbose {
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			a.log = l
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.flags.Verbose, "verbose", "v", false, "Log to stderr")

	root.AddCommand(
		a.newBase64Cmd(),
		a.newUTF8Cmd(),
		a.newHashCmd(),
		a.newUUIDCmd(),
	)

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// readInput returns the joined arguments, or all of stdin when there are none.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 {
		return []byte(strings.Join(args, " ")), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
