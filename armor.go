package transcode

import (
	"context"
	"time"
)

// Armor wraps a Codec so its output is Base64 text, safe for text-only
// transports (headers, query strings, line-oriented logs).
type Armor struct {
	inner Codec
	b64   *Base64Codec
}

var _ Codec = (*Armor)(nil)

// NewArmor wraps inner. Options configure the Base64 codec used on both sides;
// without options, decoding is lenient.
func NewArmor(inner Codec, opts ...Base64Option) *Armor {
	return &Armor{
		inner: inner,
		b64:   NewBase64Codec(opts...),
	}
}

// Inner returns the wrapped codec.
func (a *Armor) Inner() Codec {
	return a.inner
}

// ContentType returns the inner content type with a "+base64" suffix.
func (a *Armor) ContentType() string {
	return a.inner.ContentType() + "+base64"
}

// Marshal encodes v with the inner codec and Base64-encodes the result.
func (a *Armor) Marshal(v any) ([]byte, error) {
	start := time.Now()

	raw, err := a.inner.Marshal(v)
	if err != nil {
		err = newCodecError(ErrMarshal, err)
		emitArmorMarshal(context.Background(), a.ContentType(), 0, time.Since(start), err)
		return nil, err
	}

	out := []byte(a.b64.Encode(raw))
	emitArmorMarshal(context.Background(), a.ContentType(), len(out), time.Since(start), nil)
	return out, nil
}

// Unmarshal Base64-decodes data and decodes the result into v with the inner codec.
func (a *Armor) Unmarshal(data []byte, v any) error {
	start := time.Now()

	raw, err := a.b64.Decode(string(data))
	if err == nil {
		if uerr := a.inner.Unmarshal(raw, v); uerr != nil {
			err = uerr
		}
	}
	if err != nil {
		err = newCodecError(ErrUnmarshal, err)
	}

	emitArmorUnmarshal(context.Background(), a.ContentType(), len(data), time.Since(start), err)
	return err
}
