// Package msgpack provides a MessagePack codec for transcode.
//
// Struct fields are keyed by their json tags so the same record types can
// move between the JSON and MessagePack providers unchanged.
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/transcode"
)

// ContentType is the MIME type reported by the MessagePack codec.
const ContentType = "application/msgpack"

const structTag = "json"

// msgpackCodec implements transcode.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() transcode.Codec {
	return msgpackCodec{}
}

// NewArmored returns a MessagePack codec whose whole output is Base64 text.
func NewArmored(opts ...transcode.Base64Option) *transcode.Armor {
	return transcode.NewArmor(New(), opts...)
}

// ContentType returns the MIME type for MessagePack.
func (msgpackCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as MessagePack.
func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(structTag)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into v.
func (msgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(structTag)
	return dec.Decode(v)
}
