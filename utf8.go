package transcode

import "fmt"

// Codec names used in SequenceError.
const (
	CodecUTF8  = "utf8"
	CodecUTF32 = "utf32"
)

// MaxScalar is the largest Unicode scalar value.
const MaxScalar = 0x10FFFF

// TruncationPolicy decides what happens when input ends inside a multi-byte sequence.
type TruncationPolicy int

const (
	// FailOnTruncation reports ErrTruncated.
	FailOnTruncation TruncationPolicy = iota

	// TruncateSilently drops the partial sequence and returns what was decoded.
	TruncateSilently
)

func (p TruncationPolicy) String() string {
	switch p {
	case FailOnTruncation:
		return "fail"
	case TruncateSilently:
		return "truncate"
	default:
		return fmt.Sprintf("TruncationPolicy(%d)", int(p))
	}
}

// ScalarPolicy decides whether code points are checked against the Unicode scalar range.
type ScalarPolicy int

const (
	// PermitAnyValue accepts overlong forms, surrogates, out-of-range values and
	// stray bytes, decoding each stray byte as a code point equal to its value.
	PermitAnyValue ScalarPolicy = iota

	// RejectInvalidScalar fails on anything that is not well-formed UTF-8 or not
	// a Unicode scalar value.
	RejectInvalidScalar
)

func (p ScalarPolicy) String() string {
	switch p {
	case PermitAnyValue:
		return "permit"
	case RejectInvalidScalar:
		return "reject"
	default:
		return fmt.Sprintf("ScalarPolicy(%d)", int(p))
	}
}

// leadMask keeps the data bits of a leading byte, indexed by sequence length.
var leadMask = [5]byte{0, 0x7F, 0x1F, 0x0F, 0x07}

// minScalar is the smallest value that needs a sequence of the given length.
var minScalar = [5]uint32{0, 0, 0x80, 0x800, 0x10000}

// UnicodeCodec transcodes between UTF-8 bytes and code points.
// A UnicodeCodec is immutable after construction and safe for concurrent use.
type UnicodeCodec struct {
	truncation TruncationPolicy
	scalars    ScalarPolicy
}

// UnicodeOption configures a UnicodeCodec.
type UnicodeOption func(*UnicodeCodec)

// WithTruncationPolicy selects the behaviour for input ending mid-sequence.
func WithTruncationPolicy(p TruncationPolicy) UnicodeOption {
	return func(c *UnicodeCodec) {
		c.truncation = p
	}
}

// WithScalarPolicy selects whether values are validated.
func WithScalarPolicy(p ScalarPolicy) UnicodeOption {
	return func(c *UnicodeCodec) {
		c.scalars = p
	}
}

// NewUnicodeCodec returns a codec that fails on truncation and permits any value.
func NewUnicodeCodec(opts ...UnicodeOption) *UnicodeCodec {
	c := &UnicodeCodec{
		truncation: FailOnTruncation,
		scalars:    PermitAnyValue,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	strictUnicode  = NewUnicodeCodec(WithTruncationPolicy(FailOnTruncation))
	lenientUnicode = NewUnicodeCodec(WithTruncationPolicy(TruncateSilently))
)

// ToCodePoints decodes UTF-8 under the given truncation policy, permitting any value.
func ToCodePoints(src []byte, policy TruncationPolicy) ([]uint32, error) {
	if policy == TruncateSilently {
		return lenientUnicode.ToCodePoints(src)
	}
	return strictUnicode.ToCodePoints(src)
}

// FromCodePoints encodes code points as UTF-8. It never fails; values above
// 0x1FFFFF lose their high bits.
func FromCodePoints(cps []uint32) []byte {
	dst := make([]byte, 0, encodedLen32(cps))
	for _, cp := range cps {
		dst = AppendCodePoint(dst, cp)
	}
	return dst
}

// SequenceLength returns the UTF-8 sequence length declared by a leading byte,
// or 0 if b cannot start a sequence.
func SequenceLength(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b>>5 == 0x06:
		return 2
	case b>>4 == 0x0E:
		return 3
	case b>>3 == 0x1E:
		return 4
	default:
		return 0
	}
}

// EncodedLen32 returns the number of UTF-8 bytes AppendCodePoint writes for cp.
func EncodedLen32(cp uint32) int {
	switch {
	case cp <= 0x7F:
		return 1
	case cp <= 0x7FF:
		return 2
	case cp <= 0xFFFF:
		return 3
	default:
		return 4
	}
}

// AppendCodePoint appends the UTF-8 form of cp to dst.
func AppendCodePoint(dst []byte, cp uint32) []byte {
	switch EncodedLen32(cp) {
	case 1:
		return append(dst, byte(cp))
	case 2:
		return append(dst,
			0xC0|byte(cp>>6&0x1F),
			0x80|byte(cp&0x3F),
		)
	case 3:
		return append(dst,
			0xE0|byte(cp>>12&0x0F),
			0x80|byte(cp>>6&0x3F),
			0x80|byte(cp&0x3F),
		)
	default:
		return append(dst,
			0xF0|byte(cp>>18&0x07),
			0x80|byte(cp>>12&0x3F),
			0x80|byte(cp>>6&0x3F),
			0x80|byte(cp&0x3F),
		)
	}
}

// Policies reports the codec's truncation and scalar policies.
func (c *UnicodeCodec) Policies() (TruncationPolicy, ScalarPolicy) {
	return c.truncation, c.scalars
}

// ToCodePoints decodes src one leading byte at a time. The output never has
// more elements than src has bytes.
func (c *UnicodeCodec) ToCodePoints(src []byte) ([]uint32, error) {
	strict := c.scalars == RejectInvalidScalar
	out := make([]uint32, 0, len(src))

	for i := 0; i < len(src); {
		lead := src[i]
		n := SequenceLength(lead)

		if n == 0 {
			if strict {
				return nil, newSequenceError(ErrMalformed, CodecUTF8, i,
					fmt.Errorf("byte 0x%02X cannot lead a sequence", lead))
			}
			out = append(out, uint32(lead))
			i++
			continue
		}

		if n > len(src)-i {
			if c.truncation == TruncateSilently {
				return out, nil
			}
			return nil, newSequenceError(ErrTruncated, CodecUTF8, i,
				fmt.Errorf("need %d bytes, have %d", n, len(src)-i))
		}

		cp := uint32(lead & leadMask[n])
		for j := i + 1; j < i+n; j++ {
			if strict && src[j]&0xC0 != 0x80 {
				return nil, newSequenceError(ErrMalformed, CodecUTF8, j,
					fmt.Errorf("byte 0x%02X is not a continuation byte", src[j]))
			}
			cp = cp<<6 | uint32(src[j]&0x3F)
		}

		if strict {
			if err := checkScalar(cp); err != nil {
				return nil, newSequenceError(ErrInvalidScalar, CodecUTF8, i, err)
			}
			if cp < minScalar[n] {
				return nil, newSequenceError(ErrInvalidScalar, CodecUTF8, i,
					fmt.Errorf("overlong %d-byte form of U+%04X", n, cp))
			}
		}

		out = append(out, cp)
		i += n
	}

	return out, nil
}

// FromCodePoints encodes cps as UTF-8. Under RejectInvalidScalar, surrogates and
// values above MaxScalar fail with ErrInvalidScalar; otherwise it never fails.
func (c *UnicodeCodec) FromCodePoints(cps []uint32) ([]byte, error) {
	if c.scalars == RejectInvalidScalar {
		for i, cp := range cps {
			if err := checkScalar(cp); err != nil {
				return nil, newSequenceError(ErrInvalidScalar, CodecUTF32, i, err)
			}
		}
	}
	return FromCodePoints(cps), nil
}

// Valid reports whether src decodes cleanly under c.
func (c *UnicodeCodec) Valid(src []byte) bool {
	_, err := c.ToCodePoints(src)
	return err == nil
}

func checkScalar(cp uint32) error {
	switch {
	case cp > MaxScalar:
		return fmt.Errorf("U+%X exceeds U+10FFFF", cp)
	case cp >= 0xD800 && cp <= 0xDFFF:
		return fmt.Errorf("U+%04X is a surrogate", cp)
	}
	return nil
}

func encodedLen32(cps []uint32) int {
	n := 0
	for _, cp := range cps {
		n += EncodedLen32(cp)
	}
	return n
}
