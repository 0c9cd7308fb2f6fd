// Package xml provides an XML codec for transcode.
package xml

import (
	"encoding/xml"

	"github.com/zoobzio/transcode"
)

// ContentType is the MIME type reported by the XML codec.
const ContentType = "application/xml"

// xmlCodec implements transcode.Codec for XML.
type xmlCodec struct {
	header bool
}

// Option configures the XML codec.
type Option func(*xmlCodec)

// WithHeader prefixes marshaled documents with the standard XML header.
func WithHeader() Option {
	return func(c *xmlCodec) {
		c.header = true
	}
}

// New returns an XML codec.
func New(opts ...Option) transcode.Codec {
	c := &xmlCodec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewArmored returns an XML codec whose whole output is Base64 text.
func NewArmored(opts ...transcode.Base64Option) *transcode.Armor {
	return transcode.NewArmor(New(), opts...)
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as XML.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil || !c.header || len(data) == 0 {
		return data, err
	}
	return append([]byte(xml.Header), data...), nil
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}
