package transcode

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrTruncated indicates a multi-byte UTF-8 sequence ran past the end of input.
	ErrTruncated = errors.New("truncated sequence")

	// ErrMalformed indicates a byte that cannot start or continue a UTF-8 sequence.
	ErrMalformed = errors.New("malformed sequence")

	// ErrInvalidScalar indicates a code point outside the Unicode scalar range,
	// a surrogate, or an overlong encoding.
	ErrInvalidScalar = errors.New("invalid unicode scalar")

	// ErrInvalidBase64 indicates a character outside the Base64 alphabet or a
	// dangling final character.
	ErrInvalidBase64 = errors.New("invalid base64")

	// ErrPayloadTooLarge indicates input exceeding a configured decode limit.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrMissingHasher indicates a required hasher was not registered.
	ErrMissingHasher = errors.New("missing hasher")

	// ErrInvalidTag indicates a struct tag has an invalid format or value.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrDigest indicates hashing of a field failed.
	ErrDigest = errors.New("digest failed")

	// ErrEncode indicates encoding of a field failed.
	ErrEncode = errors.New("encode failed")

	// ErrDecode indicates decoding of a field failed.
	ErrDecode = errors.New("decode failed")

	// ErrValidate indicates a field failed text validation.
	ErrValidate = errors.New("validate failed")

	// ErrNotRandomUUID indicates a well-formed UUID that is not version 4.
	ErrNotRandomUUID = errors.New("not a version 4 uuid")
)

// SequenceError reports where in an input sequence a codec gave up.
type SequenceError struct {
	Err    error  // Underlying sentinel error (ErrTruncated, ErrInvalidBase64, etc.)
	Codec  string // Codec name: "base64", "utf8" or "utf32"
	Offset int    // Offset of the offending element; for ErrPayloadTooLarge, the first one past the limit
	Cause  error  // Optional detail
}

func (e *SequenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s at offset %d: %v", e.Codec, e.Err.Error(), e.Offset, e.Cause)
	}
	return fmt.Sprintf("%s: %s at offset %d", e.Codec, e.Err.Error(), e.Offset)
}

func (e *SequenceError) Unwrap() error {
	return e.Err
}

// ConfigError represents a processor configuration error.
// It wraps a sentinel error with additional context about the field and algorithm.
type ConfigError struct {
	Err       error  // Underlying sentinel error (ErrMissingHasher, ErrInvalidTag)
	Field     string // Field name that triggered the error
	Algorithm string // Algorithm or capability that was missing/invalid
}

func (e *ConfigError) Error() string {
	if e.Field != "" && e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q (field %s)", e.Err.Error(), e.Algorithm, e.Field)
	}
	if e.Algorithm != "" {
		return fmt.Sprintf("%s for algorithm %q", e.Err.Error(), e.Algorithm)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s (field %s)", e.Err.Error(), e.Field)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransformError represents an error during field transformation.
// It wraps a sentinel error with context about which field and operation failed.
type TransformError struct {
	Err       error  // Underlying sentinel error (ErrDigest, ErrDecode, etc.)
	Field     string // Field name that failed
	Operation string // Operation that failed (digest, encode, decode, validate)
	Cause     error  // Original error from the underlying operation
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s field %s: %v", e.Operation, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s field %s", e.Operation, e.Field)
}

// Unwrap exposes both the sentinel and the cause to errors.Is and errors.As.
func (e *TransformError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func newSequenceError(sentinel error, codec string, offset int, cause error) error {
	return &SequenceError{
		Err:    sentinel,
		Codec:  codec,
		Offset: offset,
		Cause:  cause,
	}
}

// newConfigError creates a ConfigError for missing handler scenarios.
func newConfigError(sentinel error, algorithm, field string) error {
	return &ConfigError{
		Err:       sentinel,
		Algorithm: algorithm,
		Field:     field,
	}
}

// newTransformError creates a TransformError for field transformation failures.
func newTransformError(sentinel error, operation, field string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Field:     field,
		Operation: operation,
		Cause:     cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
