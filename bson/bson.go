// Package bson provides a BSON codec for transcode.
//
// BSON only represents documents: Marshal accepts structs and maps, not bare
// scalars or nil.
package bson

import (
	"github.com/zoobzio/transcode"
	"go.mongodb.org/mongo-driver/bson"
)

// ContentType is the MIME type reported by the BSON codec.
const ContentType = "application/bson"

// bsonCodec implements transcode.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() transcode.Codec {
	return bsonCodec{}
}

// NewArmored returns a BSON codec whose whole output is Base64 text.
func NewArmored(opts ...transcode.Base64Option) *transcode.Armor {
	return transcode.NewArmor(New(), opts...)
}

// ContentType returns the MIME type for BSON.
func (bsonCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as BSON.
func (bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
