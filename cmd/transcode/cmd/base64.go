package cmd

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zoobzio/transcode"
	"go.uber.org/zap"
)

func (a *app) newBase64Cmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "base64",
		Short: "Encode or decode standard padded Base64",
	}
	c.AddCommand(a.newBase64EncodeCmd(), a.newBase64DecodeCmd())
	return c
}

func (a *app) newBase64EncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode input as Base64",
		Long: `Encode input as Base64.

Example:
  transcode base64 encode "Test 12!"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			out := transcode.EncodeBase64(in)
			a.log.Debug("encoded base64", zap.Int("in", len(in)), zap.Int("out", len(out)))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func (a *app) newBase64DecodeCmd() *cobra.Command {
	var (
		strict  bool
		maxSize int
	)

	c := &cobra.Command{
		Use:   "decode [text]",
		Short: "Decode Base64 input and write the raw bytes",
		Long: `Decode Base64 input and write the raw bytes.

Surrounding whitespace is ignored. Without --strict, characters outside the
alphabet decode as 'A' and decoding stops at the first '='.

Example:
  transcode base64 decode VGVzdCAxMiE=`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			policy := transcode.SubstituteInvalid
			if strict {
				policy = transcode.RejectInvalid
			}
			codec := transcode.NewBase64Codec(
				transcode.WithAlphabetPolicy(policy),
				transcode.WithMaxDecodeSize(maxSize),
			)

			out, err := codec.Decode(string(bytes.TrimSpace(in)))
			if err != nil {
				a.log.Debug("base64 decode failed", zap.Error(err))
				return err
			}
			a.log.Debug("decoded base64", zap.Stringer("policy", policy), zap.Int("out", len(out)))

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	c.Flags().BoolVar(&strict, "strict", false, "Reject characters outside the Base64 alphabet")
	c.Flags().IntVar(&maxSize, "max-size", 0, "Reject input longer than this many characters (0 disables)")
	return c
}
