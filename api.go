// Package transcode provides standalone binary/text encoding primitives and a
// tag-driven processor that applies them to struct fields around a Codec.
//
// # Primitives
//
// Each primitive is a pure, stateless transformation, safe for concurrent use:
//
//   - Base64Codec: bytes <-> padded standard Base64 text
//   - UnicodeCodec: UTF-8 bytes <-> code points (UTF-32)
//   - FNV32, FNV64: FNV-1 hashing
//   - NewUUID: version 4 identifiers
//
// The package-level helpers use permissive defaults:
//
//	text := transcode.EncodeBase64([]byte("Test 12!")) // "VGVzdCAxMiE="
//	raw := transcode.DecodeBase64(text)                 // never fails
//
//	cps, err := transcode.ToCodePoints(utf8Bytes, transcode.FailOnTruncation)
//	utf8Bytes = transcode.FromCodePoints(cps)
//
// Stricter behaviour is opt-in through options:
//
//	b64 := transcode.NewBase64Codec(transcode.WithAlphabetPolicy(transcode.RejectInvalid))
//	u := transcode.NewUnicodeCodec(
//	    transcode.WithTruncationPolicy(transcode.TruncateSilently),
//	    transcode.WithScalarPolicy(transcode.RejectInvalidScalar),
//	)
//
// # Tag Syntax
//
// Field behavior is declared via struct tags:
//
//	{direction}.{action}:"{capability}"
//
// Valid combinations:
//
//	write.digest:"sha256"   - Replace with digest text on write
//	write.encode:"base64"   - Replace with Base64 text on write
//	read.decode:"base64"    - Replace Base64 text with its content on read
//	read.validate:"utf8"    - Reject fields that are not decodable UTF-8 on read
//
// # Basic Usage
//
//	type Envelope struct {
//	    ID       string `json:"id"`
//	    Body     []byte `json:"body" write.encode:"base64" read.decode:"base64"`
//	    Checksum string `json:"checksum" write.digest:"fnv64"`
//	    Title    string `json:"title" read.validate:"utf8"`
//	}
//
//	func (e Envelope) Clone() Envelope { ... }
//
//	proc, _ := transcode.NewProcessor[Envelope](json.New())
//	data, _ := proc.Write(ctx, &env)
//	env2, _ := proc.Read(ctx, data)
//
// # Codec Providers
//
// The following codec implementations are available as subpackages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//   - cbor - CBOR encoding (application/cbor)
//
// Any provider can be wrapped in an Armor to produce Base64 text.
package transcode

// Cloner allows types to provide deep copy logic.
// Implementing this interface is required for use with Processor.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. For types containing pointers, slices, or maps,
// ensure these are also copied to achieve true isolation.
//
// For simple value types with no pointers, slices, or maps, Clone can simply return
// the receiver value:
//
//	func (u User) Clone() User { return u }
type Cloner[T any] interface {
	Clone() T
}

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Override interfaces allow types to bypass reflection-based processing.
// When a type implements one of these interfaces, the Processor calls the
// interface method instead of using reflection to transform fields.

// Digestable bypasses reflection for write.digest actions.
type Digestable interface {
	// Digest transforms the receiver's fields that require hashing.
	// The receiver is a clone, so mutations are safe.
	Digest(hashers map[HashAlgo]Hasher) error
}

// Encodable bypasses reflection for write.encode actions.
type Encodable interface {
	// Encode transforms the receiver's fields that require encoding.
	// The receiver is a clone, so mutations are safe.
	Encode(b64 *Base64Codec) error
}

// Decodable bypasses reflection for read.decode actions.
type Decodable interface {
	// Decode transforms the receiver's fields that hold encoded text.
	// Called on freshly unmarshaled data.
	Decode(b64 *Base64Codec) error
}

// Validatable bypasses reflection for read.validate actions.
type Validatable interface {
	// ValidateText checks the receiver's text fields.
	// Called on freshly unmarshaled data, after Decode.
	ValidateText(u *UnicodeCodec) error
}
