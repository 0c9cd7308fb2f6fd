package transcode

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// NewUUID returns a random (version 4, RFC 4122 variant) UUID.
func NewUUID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

// NewUUIDFromReader returns a version 4 UUID built from 16 bytes of r.
func NewUUIDFromReader(r io.Reader) (uuid.UUID, error) {
	return uuid.NewRandomFromReader(r)
}

// IsRandomUUID reports whether u carries the version 4 nibble and the 10xx variant bits.
func IsRandomUUID(u uuid.UUID) bool {
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}

// ParseRandomUUID parses s and rejects anything that is not a version 4 UUID.
func ParseRandomUUID(s string) (uuid.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, err
	}
	if !IsRandomUUID(u) {
		return uuid.Nil, fmt.Errorf("%w: %s has version %d variant %s", ErrNotRandomUUID, s, u.Version(), u.Variant())
	}
	return u, nil
}

// UUIDBase64 formats u as 24 characters of padded Base64.
func UUIDBase64(u uuid.UUID) string {
	return EncodeBase64(u[:])
}
