package transcode

import (
	"crypto/md5"  //nolint:gosec // checksum use only
	"crypto/rand"
	"crypto/sha1" //nolint:gosec // checksum use only
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"hash/fnv"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/blake2b"
)

// Hasher performs one-way hashing.
type Hasher interface {
	// Hash returns the hash of plaintext as a string.
	// For password hashers (argon2, bcrypt), the result includes salt and parameters.
	// For digest hashers, the result is the digest in the hasher's DigestEncoding.
	Hash(plaintext []byte) (string, error)
}

// digestHasher renders a hash.Hash sum as hex or Base64 text.
type digestHasher struct {
	newHash  func() hash.Hash
	encoding DigestEncoding
}

func (h *digestHasher) Hash(plaintext []byte) (string, error) {
	d := h.newHash()
	if _, err := d.Write(plaintext); err != nil {
		return "", fmt.Errorf("digest write failed: %w", err)
	}
	sum := d.Sum(nil)

	if h.encoding == DigestBase64 {
		return EncodeBase64(sum), nil
	}
	return hex.EncodeToString(sum), nil
}

func newBLAKE2b() hash.Hash {
	// New256 only fails for keys longer than 64 bytes.
	d, _ := blake2b.New256(nil)
	return d
}

var digestConstructors = map[HashAlgo]func() hash.Hash{
	HashMD5:     md5.New,
	HashSHA1:    sha1.New,
	HashSHA256:  sha256.New,
	HashSHA512:  sha512.New,
	HashBLAKE2b: newBLAKE2b,
	HashCRC32:   func() hash.Hash { return crc32.NewIEEE() },
	HashFNV32:   func() hash.Hash { return fnv.New32() },
	HashFNV64:   func() hash.Hash { return fnv.New64() },
}

// Digest returns a deterministic hasher for algo rendering sums with enc.
// Password algorithms (argon2, bcrypt) are not digests and are rejected.
func Digest(algo HashAlgo, enc DigestEncoding) (Hasher, error) {
	ctor, ok := digestConstructors[algo]
	if !ok {
		return nil, newConfigError(ErrMissingHasher, string(algo), "")
	}
	if !IsValidDigestEncoding(enc) {
		return nil, newConfigError(ErrInvalidTag, string(enc), "")
	}
	return &digestHasher{newHash: ctor, encoding: enc}, nil
}

func mustDigest(algo HashAlgo) Hasher {
	h, err := Digest(algo, DigestHex)
	if err != nil {
		panic(err)
	}
	return h
}

// MD5Hasher returns a hex MD5 hasher. Use for checksums, NOT for security.
func MD5Hasher() Hasher { return mustDigest(HashMD5) }

// SHA1Hasher returns a hex SHA-1 hasher. Use for checksums, NOT for security.
func SHA1Hasher() Hasher { return mustDigest(HashSHA1) }

// SHA256Hasher returns a SHA-256 hasher.
// The result is a hex-encoded 64-character string.
// Use for fingerprinting/identification, NOT for passwords.
func SHA256Hasher() Hasher { return mustDigest(HashSHA256) }

// SHA512Hasher returns a SHA-512 hasher.
// The result is a hex-encoded 128-character string.
// Use for fingerprinting/identification, NOT for passwords.
func SHA512Hasher() Hasher { return mustDigest(HashSHA512) }

// BLAKE2bHasher returns a hex BLAKE2b-256 hasher.
func BLAKE2bHasher() Hasher { return mustDigest(HashBLAKE2b) }

// CRC32Hasher returns a hex IEEE CRC-32 hasher.
func CRC32Hasher() Hasher { return mustDigest(HashCRC32) }

// FNV32Hasher returns a hex 32-bit FNV-1 hasher.
func FNV32Hasher() Hasher { return mustDigest(HashFNV32) }

// FNV64Hasher returns a hex 64-bit FNV-1 hasher.
func FNV64Hasher() Hasher { return mustDigest(HashFNV64) }

// Argon2Params configures Argon2id hashing.
type Argon2Params struct {
	Time    uint32 // Number of iterations
	Memory  uint32 // Memory usage in KiB
	Threads uint8  // Parallelism factor
	KeyLen  uint32 // Output key length
	SaltLen uint32 // Salt length
}

// DefaultArgon2Params returns recommended Argon2id parameters.
// Based on OWASP recommendations for password hashing.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024, // 64 MiB
		Threads: 4,
		KeyLen:  32,
		SaltLen: 16,
	}
}

// argon2Hasher implements Argon2id password hashing.
type argon2Hasher struct {
	params Argon2Params
}

// Argon2 returns an Argon2id hasher with default parameters.
func Argon2() Hasher {
	return Argon2WithParams(DefaultArgon2Params())
}

// Argon2WithParams returns an Argon2id hasher with custom parameters.
func Argon2WithParams(params Argon2Params) Hasher {
	return &argon2Hasher{params: params}
}

func (h *argon2Hasher) Hash(plaintext []byte) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey(plaintext, salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	// PHC string: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>, unpadded Base64.
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		rawBase64(salt),
		rawBase64(key),
	), nil
}

func rawBase64(b []byte) string {
	return strings.TrimRight(EncodeBase64(b), "=")
}

// BcryptCost represents the bcrypt cost factor.
type BcryptCost int

// Bcrypt cost constants.
const (
	BcryptMinCost     BcryptCost = BcryptCost(bcrypt.MinCost)
	BcryptDefaultCost BcryptCost = BcryptCost(bcrypt.DefaultCost)
	BcryptMaxCost     BcryptCost = BcryptCost(bcrypt.MaxCost)
)

// bcryptHasher implements bcrypt password hashing.
type bcryptHasher struct {
	cost int
}

// Bcrypt returns a bcrypt hasher with default cost.
func Bcrypt() Hasher {
	return BcryptWithCost(BcryptDefaultCost)
}

// BcryptWithCost returns a bcrypt hasher with a specific cost factor.
func BcryptWithCost(cost BcryptCost) Hasher {
	return &bcryptHasher{cost: int(cost)}
}

func (h *bcryptHasher) Hash(plaintext []byte) (string, error) {
	out, err := bcrypt.GenerateFromPassword(plaintext, h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash failed: %w", err)
	}
	return string(out), nil
}

// builtinHashers returns the default hasher registry.
func builtinHashers() map[HashAlgo]Hasher {
	return map[HashAlgo]Hasher{
		HashArgon2:  Argon2(),
		HashBcrypt:  Bcrypt(),
		HashMD5:     MD5Hasher(),
		HashSHA1:    SHA1Hasher(),
		HashSHA256:  SHA256Hasher(),
		HashSHA512:  SHA512Hasher(),
		HashBLAKE2b: BLAKE2bHasher(),
		HashCRC32:   CRC32Hasher(),
		HashFNV32:   FNV32Hasher(),
		HashFNV64:   FNV64Hasher(),
	}
}
