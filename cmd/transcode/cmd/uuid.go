package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoobzio/transcode"
	"go.uber.org/zap"
)

func (a *app) newUUIDCmd() *cobra.Command {
	var (
		count   int
		compact bool
	)

	c := &cobra.Command{
		Use:   "uuid",
		Short: "Generate version 4 UUIDs",
		Long: `Generate version 4 UUIDs, one per line.

With --compact each identifier is printed as 24 characters of Base64.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			w := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				u, err := transcode.NewUUID()
				if err != nil {
					return err
				}

				s := u.String()
				if compact {
					s = transcode.UUIDBase64(u)
				}
				if _, err := fmt.Fprintln(w, s); err != nil {
					return err
				}
			}
			a.log.Debug("generated uuids", zap.Int("count", count), zap.Bool("compact", compact))
			return nil
		},
	}

	c.Flags().IntVarP(&count, "count", "n", 1, "Number of identifiers")
	c.Flags().BoolVar(&compact, "compact", false, "Print Base64 instead of the canonical form")
	return c
}
