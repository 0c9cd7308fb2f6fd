package transcode_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/zoobzio/transcode"
)

// testCodec is a simple JSON codec for testing without importing transcode/json.
type testCodec struct{}

func (c *testCodec) ContentType() string { return "application/json" }

func (c *testCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *testCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// --- Cloner interface tests ---

type clonerTestStruct struct {
	Value   string
	Pointer *string
	Bytes   []byte
	Map     map[string]string
}

func (c clonerTestStruct) Clone() clonerTestStruct {
	clone := clonerTestStruct{Value: c.Value}
	if c.Pointer != nil {
		p := *c.Pointer
		clone.Pointer = &p
	}
	if c.Bytes != nil {
		clone.Bytes = append([]byte(nil), c.Bytes...)
	}
	if c.Map != nil {
		clone.Map = make(map[string]string, len(c.Map))
		for k, v := range c.Map {
			clone.Map[k] = v
		}
	}
	return clone
}

func TestCloner_DeepCopy(t *testing.T) {
	ptr := "pointer-value"
	original := clonerTestStruct{
		Value:   "test",
		Pointer: &ptr,
		Bytes:   []byte("abc"),
		Map:     map[string]string{"key": "value"},
	}

	clone := original.Clone()
	*clone.Pointer = "modified-pointer"
	clone.Bytes[0] = 'z'
	clone.Map["key"] = "modified"

	if *original.Pointer == "modified-pointer" {
		t.Error("Clone() did not create independent Pointer")
	}
	if original.Bytes[0] == 'z' {
		t.Error("Clone() did not create independent Bytes")
	}
	if original.Map["key"] == "modified" {
		t.Error("Clone() did not create independent Map")
	}
}

// --- Override interface tests ---

type digestOverride struct {
	Sum string `json:"sum" write.digest:"sha256"`
}

func (d digestOverride) Clone() digestOverride { return d }

func (d *digestOverride) Digest(hashers map[transcode.HashAlgo]transcode.Hasher) error {
	h, ok := hashers[transcode.HashCRC32]
	if !ok {
		return errors.New("no crc32")
	}
	sum, err := h.Hash([]byte(d.Sum))
	if err != nil {
		return err
	}
	d.Sum = "crc32:" + sum
	return nil
}

type encodeOverride struct {
	Body string `json:"body" write.encode:"base64" read.decode:"base64"`
}

func (e encodeOverride) Clone() encodeOverride { return e }

func (e *encodeOverride) Encode(b64 *transcode.Base64Codec) error {
	e.Body = "b64:" + b64.Encode([]byte(e.Body))
	return nil
}

func (e *encodeOverride) Decode(b64 *transcode.Base64Codec) error {
	raw, err := b64.Decode(strings.TrimPrefix(e.Body, "b64:"))
	if err != nil {
		return err
	}
	e.Body = string(raw)
	return nil
}

type validateOverride struct {
	Title string `json:"title" read.validate:"utf8"`
}

func (v validateOverride) Clone() validateOverride { return v }

func (v *validateOverride) ValidateText(_ *transcode.UnicodeCodec) error {
	if v.Title == "" {
		return errors.New("title required")
	}
	return nil
}

var (
	_ transcode.Digestable  = (*digestOverride)(nil)
	_ transcode.Encodable   = (*encodeOverride)(nil)
	_ transcode.Decodable   = (*encodeOverride)(nil)
	_ transcode.Validatable = (*validateOverride)(nil)
)

func TestDigestable_Override(t *testing.T) {
	proc, err := transcode.NewProcessor[digestOverride](&testCodec{})
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	data, err := proc.Write(t.Context(), &digestOverride{Sum: "Test 12!"})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if want := `{"sum":"crc32:c8a61cc1"}`; string(data) != want {
		t.Errorf("Write() = %s, want %s", data, want)
	}
}

func TestDigestable_SkipsHasherValidation(t *testing.T) {
	proc, _ := transcode.NewProcessor[digestOverride](&testCodec{})
	proc.RemoveHasher(transcode.HashSHA256)

	if err := proc.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestEncodable_Decodable_Override(t *testing.T) {
	proc, _ := transcode.NewProcessor[encodeOverride](&testCodec{})

	data, err := proc.Write(t.Context(), &encodeOverride{Body: "foobar"})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if want := `{"body":"b64:Zm9vYmFy"}`; string(data) != want {
		t.Errorf("Write() = %s, want %s", data, want)
	}

	got, err := proc.Read(t.Context(), data)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got.Body != "foobar" {
		t.Errorf("Body = %q, want %q", got.Body, "foobar")
	}
}

func TestValidatable_Override(t *testing.T) {
	proc, _ := transcode.NewProcessor[validateOverride](&testCodec{})

	if _, err := proc.Read(t.Context(), []byte(`{"title":"ok"}`)); err != nil {
		t.Errorf("Read() error: %v", err)
	}

	_, err := proc.Read(t.Context(), []byte(`{}`))
	if !errors.Is(err, transcode.ErrValidate) {
		t.Fatalf("Read() error = %v, want ErrValidate", err)
	}
	if !strings.HasSuffix(err.Error(), ": title required") {
		t.Errorf("Read() error = %q", err.Error())
	}
}

// --- Interface error propagation ---

type digestErrorRecord struct {
	Sum string `json:"sum"`
}

func (r digestErrorRecord) Clone() digestErrorRecord { return r }

func (r *digestErrorRecord) Digest(_ map[transcode.HashAlgo]transcode.Hasher) error {
	return errors.New("custom digest error")
}

type decodeErrorRecord struct {
	Body string `json:"body"`
}

func (r decodeErrorRecord) Clone() decodeErrorRecord { return r }

func (r *decodeErrorRecord) Decode(_ *transcode.Base64Codec) error {
	return errors.New("custom decode error")
}

func TestDigestable_ErrorPropagation(t *testing.T) {
	proc, _ := transcode.NewProcessor[digestErrorRecord](&testCodec{})

	_, err := proc.Write(t.Context(), &digestErrorRecord{Sum: "x"})
	if !errors.Is(err, transcode.ErrDigest) {
		t.Fatalf("Write() error = %v, want ErrDigest", err)
	}
	if !strings.HasSuffix(err.Error(), ": custom digest error") {
		t.Errorf("Write() error = %q", err.Error())
	}
}

func TestDecodable_ErrorPropagation(t *testing.T) {
	proc, _ := transcode.NewProcessor[decodeErrorRecord](&testCodec{})

	_, err := proc.Read(t.Context(), []byte(`{"body":"Zg=="}`))
	if !errors.Is(err, transcode.ErrDecode) {
		t.Fatalf("Read() error = %v, want ErrDecode", err)
	}
	if !strings.HasSuffix(err.Error(), ": custom decode error") {
		t.Errorf("Read() error = %q", err.Error())
	}
}
