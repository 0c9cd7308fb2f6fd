package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoobzio/transcode"
	"go.uber.org/zap"
)

func (a *app) newHashCmd() *cobra.Command {
	var (
		algo   string
		base64 bool
	)

	c := &cobra.Command{
		Use:   "hash [text]",
		Short: "Print the digest of input",
		Long: `Print the digest of input in hex, or Base64 with --base64.

Algorithms: md5, sha1, sha256, sha512, blake2b, crc32, fnv32, fnv64.

Example:
  transcode hash --algo fnv32 "Test 12!"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := transcode.DigestHex
			if base64 {
				enc = transcode.DigestBase64
			}

			h, err := transcode.Digest(transcode.HashAlgo(algo), enc)
			if err != nil {
				return err
			}

			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			sum, err := h.Hash(in)
			if err != nil {
				return err
			}
			a.log.Debug("hashed input", zap.String("algo", algo), zap.String("encoding", string(enc)), zap.Int("bytes", len(in)))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), sum)
			return err
		},
	}

	c.Flags().StringVarP(&algo, "algo", "a", string(transcode.HashFNV64), "Digest algorithm")
	c.Flags().BoolVar(&base64, "base64", false, "Print the digest as Base64 instead of hex")
	return c
}
