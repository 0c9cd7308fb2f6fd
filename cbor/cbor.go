// Package cbor provides a CBOR codec for transcode.
//
// Output uses RFC 8949 Core Deterministic encoding, so equal values always
// produce identical bytes. That makes CBOR output suitable as digest input.
package cbor

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/zoobzio/transcode"
)

// ContentType is the MIME type reported by the CBOR codec.
const ContentType = "application/cbor"

// cborCodec implements transcode.Codec for CBOR.
type cborCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// New returns a deterministic CBOR codec.
func New() (transcode.Codec, error) {
	eo := cbor.CoreDetEncOptions()
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return nil, err
	}
	dm, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		return nil, err
	}
	return &cborCodec{enc: em, dec: dm}, nil
}

// Must is like New but panics on error.
func Must() transcode.Codec {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

// NewArmored returns a CBOR codec whose whole output is Base64 text.
func NewArmored(opts ...transcode.Base64Option) (*transcode.Armor, error) {
	c, err := New()
	if err != nil {
		return nil, err
	}
	return transcode.NewArmor(c, opts...), nil
}

// ContentType returns the MIME type for CBOR.
func (c *cborCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as CBOR.
func (c *cborCodec) Marshal(v any) ([]byte, error) {
	return c.enc.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func (c *cborCodec) Unmarshal(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}
