// Package json provides a JSON codec for transcode.
package json

import (
	"encoding/json"

	"github.com/zoobzio/transcode"
)

// ContentType is the MIME type reported by the JSON codec.
const ContentType = "application/json"

// jsonCodec implements transcode.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec. []byte fields are carried as Base64 strings.
func New() transcode.Codec {
	return jsonCodec{}
}

// NewArmored returns a JSON codec whose whole output is Base64 text.
func NewArmored(opts ...transcode.Base64Option) *transcode.Armor {
	return transcode.NewArmor(New(), opts...)
}

// ContentType returns the MIME type for JSON.
func (jsonCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as JSON.
func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
