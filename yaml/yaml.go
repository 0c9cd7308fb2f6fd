// Package yaml provides a YAML codec for transcode.
package yaml

import (
	"github.com/zoobzio/transcode"
	"gopkg.in/yaml.v3"
)

// ContentType is the MIME type reported by the YAML codec.
const ContentType = "application/yaml"

// yamlCodec implements transcode.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() transcode.Codec {
	return yamlCodec{}
}

// NewArmored returns a YAML codec whose whole output is Base64 text.
func NewArmored(opts ...transcode.Base64Option) *transcode.Armor {
	return transcode.NewArmor(New(), opts...)
}

// ContentType returns the MIME type for YAML.
func (yamlCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as YAML.
func (yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes YAML data into v.
func (yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
