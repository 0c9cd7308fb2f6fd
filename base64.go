package transcode

import (
	"errors"
	"fmt"
)

const (
	base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	base64Pad      = '='
	base64Invalid  = 0xFF
)

var errDangling = errors.New("dangling character")

// CodecBase64 names the Base64 codec in errors and signals.
const CodecBase64 = "base64"

// AlphabetPolicy controls how the decoder treats characters outside the alphabet.
type AlphabetPolicy int

const (
	// SubstituteInvalid maps unknown characters to index 0 and keeps going.
	SubstituteInvalid AlphabetPolicy = iota

	// RejectInvalid fails decoding on the first unknown character.
	RejectInvalid
)

func (p AlphabetPolicy) String() string {
	switch p {
	case SubstituteInvalid:
		return "substitute"
	case RejectInvalid:
		return "reject"
	default:
		return fmt.Sprintf("AlphabetPolicy(%d)", int(p))
	}
}

var b64Encode, b64Decode = func() ([64]byte, [256]byte) {
	var enc [64]byte
	var dec [256]byte

	for i := range dec {
		dec[i] = base64Invalid
	}
	for i := 0; i < len(base64Alphabet); i++ {
		enc[i] = base64Alphabet[i]
		dec[base64Alphabet[i]] = byte(i)
	}

	return enc, dec
}()

// Base64Codec converts bytes to and from standard padded Base64 text.
// A Base64Codec is immutable after construction and safe for concurrent use.
type Base64Codec struct {
	policy    AlphabetPolicy
	maxDecode int
}

// Base64Option configures a Base64Codec.
type Base64Option func(*Base64Codec)

// WithAlphabetPolicy selects how Decode handles characters outside the alphabet.
func WithAlphabetPolicy(p AlphabetPolicy) Base64Option {
	return func(c *Base64Codec) {
		c.policy = p
	}
}

// WithMaxDecodeSize rejects Decode input longer than n characters.
// If n <= 0, size limiting is disabled.
func WithMaxDecodeSize(n int) Base64Option {
	return func(c *Base64Codec) {
		c.maxDecode = n
	}
}

// NewBase64Codec returns a Base64 codec. Without options it decodes leniently.
func NewBase64Codec(opts ...Base64Option) *Base64Codec {
	c := &Base64Codec{policy: SubstituteInvalid}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultBase64 = NewBase64Codec()

// EncodeBase64 returns the padded Base64 text of src.
func EncodeBase64(src []byte) string {
	return defaultBase64.Encode(src)
}

// DecodeBase64 decodes s with the lenient default codec. It never fails:
// unknown characters decode as 'A' and the first '=' ends the data.
func DecodeBase64(s string) []byte {
	out, _ := defaultBase64.Decode(s)
	return out
}

// EncodedLen returns the Base64 length of n input bytes.
func EncodedLen(n int) int {
	return (n + 2) / 3 * 4
}

// Policy reports the codec's alphabet policy.
func (c *Base64Codec) Policy() AlphabetPolicy {
	return c.policy
}

// Encode returns the padded Base64 text of src. Empty input yields "".
func (c *Base64Codec) Encode(src []byte) string {
	if len(src) == 0 {
		return ""
	}

	dst := make([]byte, EncodedLen(len(src)))
	di, si := 0, 0
	full := len(src) / 3 * 3

	for si < full {
		v := uint(src[si])<<16 | uint(src[si+1])<<8 | uint(src[si+2])
		dst[di+0] = b64Encode[v>>18&0x3F]
		dst[di+1] = b64Encode[v>>12&0x3F]
		dst[di+2] = b64Encode[v>>6&0x3F]
		dst[di+3] = b64Encode[v&0x3F]
		si += 3
		di += 4
	}

	// Zero-pad the partial block, emit only the groups that carry data.
	switch len(src) - si {
	case 1:
		v := uint(src[si]) << 16
		dst[di+0] = b64Encode[v>>18&0x3F]
		dst[di+1] = b64Encode[v>>12&0x3F]
		dst[di+2] = base64Pad
		dst[di+3] = base64Pad
	case 2:
		v := uint(src[si])<<16 | uint(src[si+1])<<8
		dst[di+0] = b64Encode[v>>18&0x3F]
		dst[di+1] = b64Encode[v>>12&0x3F]
		dst[di+2] = b64Encode[v>>6&0x3F]
		dst[di+3] = base64Pad
	}

	return string(dst)
}

// Decode converts Base64 text back to bytes. Decoding stops at the first '='
// or at the end of s; the padding position is not checked.
//
// Under SubstituteInvalid the only possible error is ErrPayloadTooLarge. Under
// RejectInvalid, unknown characters and a lone final character fail with a
// *SequenceError wrapping ErrInvalidBase64.
func (c *Base64Codec) Decode(s string) ([]byte, error) {
	if c.maxDecode > 0 && len(s) > c.maxDecode {
		// The first character past the limit is the offending one.
		firstOver := c.maxDecode
		return nil, newSequenceError(ErrPayloadTooLarge, CodecBase64, firstOver,
			fmt.Errorf("%d characters, limit %d", len(s), c.maxDecode))
	}

	out := make([]byte, 0, len(s)/4*3+2)

	var quad [4]byte
	n := 0
	i := 0
	for ; i < len(s) && s[i] != base64Pad; i++ {
		idx := b64Decode[s[i]]
		if idx == base64Invalid {
			if c.policy == RejectInvalid {
				return nil, newSequenceError(ErrInvalidBase64, CodecBase64, i,
					fmt.Errorf("character %q", s[i]))
			}
			idx = 0
		}

		quad[n] = idx
		n++
		if n == 4 {
			out = append(out,
				quad[0]<<2|quad[1]>>4,
				quad[1]<<4|quad[2]>>2,
				quad[2]<<6|quad[3],
			)
			n = 0
		}
	}

	if n == 0 {
		return out, nil
	}
	if n == 1 && c.policy == RejectInvalid {
		return nil, newSequenceError(ErrInvalidBase64, CodecBase64, i-1,
			errDangling)
	}

	// A partial group of k characters carries k-1 bytes.
	for j := n; j < 4; j++ {
		quad[j] = 0
	}
	tail := [3]byte{
		quad[0]<<2 | quad[1]>>4,
		quad[1]<<4 | quad[2]>>2,
		quad[2]<<6 | quad[3],
	}
	return append(out, tail[:n-1]...), nil
}
