// Package testing provides fixtures shared by the transcode test suites.
package testing

import (
	"math/rand"

	"github.com/zoobzio/transcode"
)

// Base64Vector pairs raw bytes with their padded Base64 text.
type Base64Vector struct {
	Raw  []byte
	Text string
}

// Base64Vectors returns the RFC 4648 vectors plus a few binary cases.
func Base64Vectors() []Base64Vector {
	return []Base64Vector{
		{[]byte(""), ""},
		{[]byte("f"), "Zg=="},
		{[]byte("fo"), "Zm8="},
		{[]byte("foo"), "Zm9v"},
		{[]byte("foob"), "Zm9vYg=="},
		{[]byte("fooba"), "Zm9vYmE="},
		{[]byte("foobar"), "Zm9vYmFy"},
		{[]byte("Test 12!"), "VGVzdCAxMiE="},
		{[]byte{0xFF, 0xFE, 0xFD}, "//79"},
		{[]byte{0x00}, "AA=="},
	}
}

// UnicodeVector pairs a UTF-8 byte sequence with its code points.
type UnicodeVector struct {
	Name       string
	UTF8       []byte
	CodePoints []uint32
}

// UnicodeVectors returns well-formed UTF-8 cases covering every sequence length.
func UnicodeVectors() []UnicodeVector {
	return []UnicodeVector{
		{"ascii", []byte("Test 12!"), []uint32{84, 101, 115, 116, 32, 49, 50, 33}},
		{"latin", []byte("ÀÁÂÃÄÅÆ"), []uint32{192, 193, 194, 195, 196, 197, 198}},
		{"euro and emoji", []byte{0xE2, 0x82, 0xAC, 0xF0, 0x9F, 0x98, 0x80}, []uint32{8364, 128512}},
		{"max scalar", []byte{0xF4, 0x8F, 0xBF, 0xBF}, []uint32{transcode.MaxScalar}},
	}
}

// RandomBytes returns n pseudo-random bytes from a fixed seed.
func RandomBytes(seed int64, n int) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(b)
	return b
}

// RandomCodePoints returns n pseudo-random Unicode scalar values from a fixed seed.
func RandomCodePoints(seed int64, n int) []uint32 {
	rng := rand.New(rand.NewSource(seed))
	cps := make([]uint32, 0, n)
	for len(cps) < n {
		cp := uint32(rng.Int31n(transcode.MaxScalar + 1))
		if cp >= 0xD800 && cp <= 0xDFFF {
			continue
		}
		cps = append(cps, cp)
	}
	return cps
}

// SimpleRecord is a test type with no transcoding tags.
type SimpleRecord struct {
	ID   string `json:"id" yaml:"id" bson:"id" cbor:"id"`
	Name string `json:"name" yaml:"name" bson:"name" cbor:"name"`
}

// Clone implements Cloner[SimpleRecord].
func (r SimpleRecord) Clone() SimpleRecord { return r }

// Document exercises every transcoding tag across field shapes.
type Document struct {
	ID       string            `json:"id" yaml:"id" bson:"id" cbor:"id"`
	Title    string            `json:"title" yaml:"title" bson:"title" cbor:"title" read.validate:"utf8"`
	Body     []byte            `json:"body" yaml:"body" bson:"body" cbor:"body" write.encode:"base64" read.decode:"base64"`
	Note     string            `json:"note" yaml:"note" bson:"note" cbor:"note" write.encode:"base64" read.decode:"base64"`
	Checksum string            `json:"checksum" yaml:"checksum" bson:"checksum" cbor:"checksum" write.digest:"sha256"`
	Labels   []string          `json:"labels" yaml:"labels" bson:"labels" cbor:"labels" write.encode:"base64" read.decode:"base64"`
	Meta     map[string]string `json:"meta" yaml:"meta" bson:"meta" cbor:"meta" write.encode:"base64" read.decode:"base64"`
}

// Clone implements Cloner[Document].
func (d Document) Clone() Document {
	c := d
	if d.Body != nil {
		c.Body = append([]byte(nil), d.Body...)
	}
	if d.Labels != nil {
		c.Labels = append([]string(nil), d.Labels...)
	}
	if d.Meta != nil {
		c.Meta = make(map[string]string, len(d.Meta))
		for k, v := range d.Meta {
			c.Meta[k] = v
		}
	}
	return c
}

// XMLDocument is Document without the map field encoding/xml cannot carry.
type XMLDocument struct {
	ID       string   `xml:"id,attr"`
	Title    string   `xml:"title" read.validate:"utf8"`
	Note     string   `xml:"note" write.encode:"base64" read.decode:"base64"`
	Checksum string   `xml:"checksum" write.digest:"fnv64"`
	Labels   []string `xml:"label" write.encode:"base64" read.decode:"base64"`
}

// Clone implements Cloner[XMLDocument].
func (d XMLDocument) Clone() XMLDocument {
	c := d
	if d.Labels != nil {
		c.Labels = append([]string(nil), d.Labels...)
	}
	return c
}

// SampleDocument returns a Document populated with multi-byte text and binary data.
func SampleDocument() *Document {
	return &Document{
		ID:       "doc-1",
		Title:    "€😀 ÀÁÂ",
		Body:     []byte{0x00, 0xFF, 0xFE, 0xFD, 'h', 'i'},
		Note:     "Test 12!",
		Checksum: "hello",
		Labels:   []string{"alpha", "héllo"},
		Meta:     map[string]string{"k": "v", "empty": ""},
	}
}
