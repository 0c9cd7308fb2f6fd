package transcode

// HashAlgo represents a supported hashing algorithm.
// Use these constants in struct tags: `write.digest:"sha256"`
type HashAlgo string

const (
	// HashArgon2 uses Argon2id for password hashing (salted, slow).
	HashArgon2 HashAlgo = "argon2"

	// HashBcrypt uses bcrypt for password hashing (salted, slow).
	HashBcrypt HashAlgo = "bcrypt"

	// HashMD5 uses MD5. Use for checksums only.
	HashMD5 HashAlgo = "md5"

	// HashSHA1 uses SHA-1. Use for checksums only.
	HashSHA1 HashAlgo = "sha1"

	// HashSHA256 uses SHA-256 for deterministic hashing (fast, no salt).
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512 for deterministic hashing (fast, no salt).
	HashSHA512 HashAlgo = "sha512"

	// HashBLAKE2b uses BLAKE2b-256 for deterministic hashing.
	HashBLAKE2b HashAlgo = "blake2b"

	// HashCRC32 uses the IEEE CRC-32 checksum.
	HashCRC32 HashAlgo = "crc32"

	// HashFNV32 uses 32-bit FNV-1. Non-cryptographic.
	HashFNV32 HashAlgo = "fnv32"

	// HashFNV64 uses 64-bit FNV-1. Non-cryptographic.
	HashFNV64 HashAlgo = "fnv64"
)

// DigestEncoding selects the text form of a digest.
type DigestEncoding string

const (
	// DigestHex renders digests as lowercase hexadecimal.
	DigestHex DigestEncoding = "hex"

	// DigestBase64 renders digests as padded Base64.
	DigestBase64 DigestEncoding = "base64"
)

// TextEncoding represents a supported field encoding.
// Use these constants in struct tags: `write.encode:"base64"`
type TextEncoding string

const (
	// EncodingBase64 is standard padded Base64.
	EncodingBase64 TextEncoding = "base64"
)

// TextForm represents a text form a field can be validated against.
// Use these constants in struct tags: `read.validate:"utf8"`
type TextForm string

const (
	// FormUTF8 requires the field to decode as UTF-8 under the processor's UnicodeCodec.
	FormUTF8 TextForm = "utf8"
)

// validHashAlgos contains all valid hash algorithms for tag validation.
var validHashAlgos = map[HashAlgo]bool{
	HashArgon2:  true,
	HashBcrypt:  true,
	HashMD5:     true,
	HashSHA1:    true,
	HashSHA256:  true,
	HashSHA512:  true,
	HashBLAKE2b: true,
	HashCRC32:   true,
	HashFNV32:   true,
	HashFNV64:   true,
}

var validDigestEncodings = map[DigestEncoding]bool{
	DigestHex:    true,
	DigestBase64: true,
}

var validTextEncodings = map[TextEncoding]bool{
	EncodingBase64: true,
}

var validTextForms = map[TextForm]bool{
	FormUTF8: true,
}

// IsValidHashAlgo returns true if the algorithm is a known hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	return validHashAlgos[algo]
}

// IsValidDigestEncoding returns true if the encoding is a known digest encoding.
func IsValidDigestEncoding(enc DigestEncoding) bool {
	return validDigestEncodings[enc]
}

// IsValidTextEncoding returns true if the encoding is a known field encoding.
func IsValidTextEncoding(enc TextEncoding) bool {
	return validTextEncodings[enc]
}

// IsValidTextForm returns true if the form is a known validation form.
func IsValidTextForm(form TextForm) bool {
	return validTextForms[form]
}
