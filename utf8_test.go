package transcode

import (
	"bytes"
	"errors"
	"slices"
	"testing"
	"unicode/utf8"
)

func TestToCodePoints_Vectors(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []uint32
	}{
		{"empty", []byte{}, []uint32{}},
		{"ascii", []byte("Test 12!"), []uint32{84, 101, 115, 116, 32, 49, 50, 33}},
		{"latin", []byte("ÀÁÂÃÄÅÆ"), []uint32{192, 193, 194, 195, 196, 197, 198}},
		{"three and four byte", []byte{0xE2, 0x82, 0xAC, 0xF0, 0x9F, 0x98, 0x80}, []uint32{8364, 128512}},
		{"nul", []byte{0x00}, []uint32{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCodePoints(tt.in, FailOnTruncation)
			if err != nil {
				t.Fatalf("ToCodePoints() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ToCodePoints(%x) = %v, want %v", tt.in, got, tt.want)
			}
			if back := FromCodePoints(got); !bytes.Equal(back, tt.in) {
				t.Errorf("FromCodePoints(%v) = %x, want %x", got, back, tt.in)
			}
		})
	}
}

func TestToCodePoints_LatinBytes(t *testing.T) {
	in := []byte("ÀÁÂÃÄÅÆ")
	want := []byte{195, 128, 195, 129, 195, 130, 195, 131, 195, 132, 195, 133, 195, 134}
	if !bytes.Equal(in, want) {
		t.Fatalf("literal bytes = %v, want %v", in, want)
	}
	if got := FromCodePoints([]uint32{192, 193, 194, 195, 196, 197, 198}); !bytes.Equal(got, want) {
		t.Errorf("FromCodePoints() = %v, want %v", got, want)
	}
}

func TestToCodePoints_Truncation(t *testing.T) {
	tests := []struct {
		name    string
		in      []byte
		partial []uint32
		offset  int
	}{
		{"lone three byte lead", []byte{0xE0}, []uint32{}, 0},
		{"two of three", []byte{'A', 0xE2, 0x82}, []uint32{65}, 1},
		{"three of four", []byte{'h', 'i', 0xF0, 0x9F, 0x98}, []uint32{104, 105}, 2},
		{"lone two byte lead", []byte{0xC3}, []uint32{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToCodePoints(tt.in, FailOnTruncation)
			if !errors.Is(err, ErrTruncated) {
				t.Fatalf("FailOnTruncation error = %v, want ErrTruncated", err)
			}
			var seqErr *SequenceError
			if !errors.As(err, &seqErr) {
				t.Fatalf("error = %T, want *SequenceError", err)
			}
			if seqErr.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", seqErr.Offset, tt.offset)
			}

			got, err := ToCodePoints(tt.in, TruncateSilently)
			if err != nil {
				t.Fatalf("TruncateSilently error: %v", err)
			}
			if !slices.Equal(got, tt.partial) {
				t.Errorf("TruncateSilently = %v, want %v", got, tt.partial)
			}
		})
	}
}

func TestToCodePoints_PermissiveValues(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []uint32
	}{
		{"stray continuation", []byte{0x80, 'a'}, []uint32{0x80, 'a'}},
		{"invalid lead", []byte{0xFF}, []uint32{0xFF}},
		{"overlong nul", []byte{0xC0, 0x80}, []uint32{0}},
		{"surrogate", []byte{0xED, 0xA0, 0x80}, []uint32{0xD800}},
		{"above max scalar", []byte{0xF4, 0x90, 0x80, 0x80}, []uint32{0x110000}},
		{"bad continuation", []byte{0xE2, 0x41, 0x82}, []uint32{0x2042}},
	}

	u := NewUnicodeCodec()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := u.ToCodePoints(tt.in)
			if err != nil {
				t.Fatalf("ToCodePoints() error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ToCodePoints(%x) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnicodeCodec_RejectInvalidScalar(t *testing.T) {
	tests := []struct {
		name   string
		in     []byte
		err    error
		offset int
	}{
		{"stray continuation", []byte{'a', 0x80}, ErrMalformed, 1},
		{"invalid lead", []byte{0xFF}, ErrMalformed, 0},
		{"overlong nul", []byte{0xC0, 0x80}, ErrInvalidScalar, 0},
		{"overlong slash", []byte{0xE0, 0x80, 0xAF}, ErrInvalidScalar, 0},
		{"surrogate", []byte{0xED, 0xA0, 0x80}, ErrInvalidScalar, 0},
		{"above max scalar", []byte{0xF4, 0x90, 0x80, 0x80}, ErrInvalidScalar, 0},
		{"bad continuation", []byte{0xE2, 0x41, 0x82}, ErrMalformed, 1},
	}

	u := NewUnicodeCodec(WithScalarPolicy(RejectInvalidScalar))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := u.ToCodePoints(tt.in)
			if !errors.Is(err, tt.err) {
				t.Fatalf("ToCodePoints(%x) error = %v, want %v", tt.in, err, tt.err)
			}
			var seqErr *SequenceError
			if !errors.As(err, &seqErr) {
				t.Fatalf("error = %T, want *SequenceError", err)
			}
			if seqErr.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d", seqErr.Offset, tt.offset)
			}
		})
	}
}

func TestUnicodeCodec_RejectInvalidScalar_MatchesStdlib(t *testing.T) {
	u := NewUnicodeCodec(WithScalarPolicy(RejectInvalidScalar))

	inputs := [][]byte{
		[]byte("plain"),
		[]byte("€😀ÀÁ"),
		{0xC0, 0x80},
		{0xED, 0xBF, 0xBF},
		{0xF4, 0x8F, 0xBF, 0xBF},
		{0xF5, 0x80, 0x80, 0x80},
		{0xE2, 0x28, 0xA1},
	}
	for _, in := range inputs {
		if got, want := u.Valid(in), utf8.Valid(in); got != want {
			t.Errorf("Valid(%x) = %v, utf8.Valid = %v", in, got, want)
		}
	}
}

func TestFromCodePoints_MatchesStdlib(t *testing.T) {
	for cp := uint32(0); cp <= MaxScalar; cp += 97 {
		if cp >= 0xD800 && cp <= 0xDFFF {
			continue
		}
		got := AppendCodePoint(nil, cp)
		want := utf8.AppendRune(nil, rune(cp))
		if !bytes.Equal(got, want) {
			t.Fatalf("AppendCodePoint(%#x) = %x, want %x", cp, got, want)
		}
		if len(got) != EncodedLen32(cp) {
			t.Fatalf("EncodedLen32(%#x) = %d, want %d", cp, EncodedLen32(cp), len(got))
		}
	}
}

func TestCodePoints_RoundTrip(t *testing.T) {
	var cps []uint32
	for cp := uint32(0); cp <= MaxScalar; cp += 251 {
		cps = append(cps, cp)
	}
	// Four-byte sequences carry 21 bits, past the scalar range.
	cps = append(cps, 0x110000, 0x1ABCDE, 0x1FFFFF)

	got, err := ToCodePoints(FromCodePoints(cps), FailOnTruncation)
	if err != nil {
		t.Fatalf("ToCodePoints() error: %v", err)
	}
	if !slices.Equal(got, cps) {
		t.Errorf("round-trip lost values: %d in, %d out", len(cps), len(got))
	}
}

func TestCodePoints_RoundTrip_BeyondScalarRange(t *testing.T) {
	cps := []uint32{0x110000, 0x1ABCDE, 0x1FFFFF}

	encoded := FromCodePoints(cps)
	if len(encoded) != 12 {
		t.Fatalf("FromCodePoints() = %x, want three 4-byte sequences", encoded)
	}

	got, err := ToCodePoints(encoded, FailOnTruncation)
	if err != nil {
		t.Fatalf("ToCodePoints() error: %v", err)
	}
	if !slices.Equal(got, cps) {
		t.Errorf("ToCodePoints() = %#x, want %#x", got, cps)
	}
}

func TestToCodePoints_NeverLongerThanInput(t *testing.T) {
	inputs := [][]byte{
		[]byte("ÀÁÂÃÄÅÆ"),
		{0x80, 0x80, 0x80},
		{0xFF, 0xFE, 'a'},
		{0xF0, 0x9F, 0x98, 0x80, 0xE0},
	}
	for _, in := range inputs {
		got, _ := ToCodePoints(in, TruncateSilently)
		if len(got) > len(in) {
			t.Errorf("ToCodePoints(%x) produced %d values from %d bytes", in, len(got), len(in))
		}
	}
}

func TestUnicodeCodec_FromCodePoints(t *testing.T) {
	cps := []uint32{'a', 0xD800}

	out, err := NewUnicodeCodec().FromCodePoints(cps)
	if err != nil {
		t.Fatalf("FromCodePoints() error: %v", err)
	}
	if !bytes.Equal(out, []byte{'a', 0xED, 0xA0, 0x80}) {
		t.Errorf("FromCodePoints() = %x", out)
	}

	strict := NewUnicodeCodec(WithScalarPolicy(RejectInvalidScalar))
	_, err = strict.FromCodePoints(cps)
	if !errors.Is(err, ErrInvalidScalar) {
		t.Fatalf("FromCodePoints() error = %v, want ErrInvalidScalar", err)
	}
	var seqErr *SequenceError
	if errors.As(err, &seqErr) && (seqErr.Offset != 1 || seqErr.Codec != CodecUTF32) {
		t.Errorf("SequenceError = %+v, want offset 1 codec utf32", seqErr)
	}

	if _, err := strict.FromCodePoints([]uint32{0x110000}); !errors.Is(err, ErrInvalidScalar) {
		t.Errorf("FromCodePoints(0x110000) error = %v, want ErrInvalidScalar", err)
	}
}

func TestFromCodePoints_LosesHighBits(t *testing.T) {
	got := FromCodePoints([]uint32{0x200000})
	want := []byte{0xF0, 0x80, 0x80, 0x80}
	if !bytes.Equal(got, want) {
		t.Errorf("FromCodePoints(0x200000) = %x, want %x", got, want)
	}
}

func TestSequenceLength(t *testing.T) {
	tests := map[byte]int{
		0x00: 1, 0x41: 1, 0x7F: 1,
		0x80: 0, 0xBF: 0,
		0xC0: 2, 0xDF: 2,
		0xE0: 3, 0xEF: 3,
		0xF0: 4, 0xF7: 4,
		0xF8: 0, 0xFF: 0,
	}
	for b, want := range tests {
		if got := SequenceLength(b); got != want {
			t.Errorf("SequenceLength(%#x) = %d, want %d", b, got, want)
		}
	}
}

func TestUnicodeCodec_Policies(t *testing.T) {
	tr, sc := NewUnicodeCodec().Policies()
	if tr != FailOnTruncation || sc != PermitAnyValue {
		t.Errorf("default Policies() = %v, %v", tr, sc)
	}

	tr, sc = NewUnicodeCodec(
		WithTruncationPolicy(TruncateSilently),
		WithScalarPolicy(RejectInvalidScalar),
	).Policies()
	if tr != TruncateSilently || sc != RejectInvalidScalar {
		t.Errorf("Policies() = %v, %v", tr, sc)
	}
}

func TestPolicy_String(t *testing.T) {
	if s := FailOnTruncation.String(); s == "" {
		t.Error("FailOnTruncation.String() is empty")
	}
	if TruncateSilently.String() == FailOnTruncation.String() {
		t.Error("truncation policies share a name")
	}
	if PermitAnyValue.String() == RejectInvalidScalar.String() {
		t.Error("scalar policies share a name")
	}
}
