package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zoobzio/transcode"
	"go.uber.org/zap"
)

func (a *app) newUTF8Cmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "utf8",
		Short: "Convert between UTF-8 and code points",
	}
	c.AddCommand(a.newUTF8DecodeCmd(), a.newUTF8EncodeCmd())
	return c
}

func (a *app) newUTF8DecodeCmd() *cobra.Command {
	var lenient, validate bool

	c := &cobra.Command{
		Use:   "decode [text]",
		Short: "Print the code points of UTF-8 input",
		Long: `Print the code points of UTF-8 input as U+XXXX, one per line.

Example:
  transcode utf8 decode "€😀"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			u := unicodeCodec(lenient, validate)
			cps, err := u.ToCodePoints(in)
			if err != nil {
				a.log.Debug("utf8 decode failed", zap.Error(err))
				return err
			}
			a.log.Debug("decoded utf8", zap.Int("bytes", len(in)), zap.Int("code_points", len(cps)))

			var b strings.Builder
			for _, cp := range cps {
				fmt.Fprintf(&b, "U+%04X\n", cp)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), b.String())
			return err
		},
	}

	c.Flags().BoolVar(&lenient, "lenient", false, "Drop a truncated final sequence instead of failing")
	c.Flags().BoolVar(&validate, "validate", false, "Reject malformed UTF-8 and non-scalar values")
	return c
}

func (a *app) newUTF8EncodeCmd() *cobra.Command {
	var validate bool

	c := &cobra.Command{
		Use:   "encode <U+XXXX|decimal>...",
		Short: "Write code points as UTF-8",
		Long: `Write code points as UTF-8 followed by a newline.

Example:
  transcode utf8 encode U+20AC 128512`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cps := make([]uint32, 0, len(args))
			for _, arg := range args {
				cp, err := parseCodePoint(arg)
				if err != nil {
					return err
				}
				cps = append(cps, cp)
			}

			out, err := unicodeCodec(false, validate).FromCodePoints(cps)
			if err != nil {
				return err
			}
			a.log.Debug("encoded utf8", zap.Int("code_points", len(cps)), zap.Int("bytes", len(out)))

			w := cmd.OutOrStdout()
			if _, err := w.Write(out); err != nil {
				return err
			}
			_, err = fmt.Fprintln(w)
			return err
		},
	}

	c.Flags().BoolVar(&validate, "validate", false, "Reject surrogates and values above U+10FFFF")
	return c
}

func unicodeCodec(lenient, validate bool) *transcode.UnicodeCodec {
	truncation := transcode.FailOnTruncation
	if lenient {
		truncation = transcode.TruncateSilently
	}
	scalars := transcode.PermitAnyValue
	if validate {
		scalars = transcode.RejectInvalidScalar
	}
	return transcode.NewUnicodeCodec(
		transcode.WithTruncationPolicy(truncation),
		transcode.WithScalarPolicy(scalars),
	)
}

// parseCodePoint accepts U+XXXX, 0xXXXX or a decimal value.
func parseCodePoint(s string) (uint32, error) {
	base := 10
	digits := s
	switch {
	case strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	}

	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid code point %q: %w", s, err)
	}
	return uint32(v), nil
}
