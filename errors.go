package lbf

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for filter construction.
const (
	ErrCodeInvalidSize     errors.ErrorCode = "LBF_INVALID_SIZE"
	ErrCodeInvalidHashes   errors.ErrorCode = "LBF_INVALID_HASHES"
	ErrCodeNilClassifier   errors.ErrorCode = "LBF_NIL_CLASSIFIER"
	ErrCodeInvalidSandwich errors.ErrorCode = "LBF_INVALID_SANDWICH"
)

const (
	msgInvalidSize     = "invalid filter size: must be greater than 0"
	msgInvalidHashes   = "invalid number of hash functions: must be greater than 0"
	msgNilClassifier   = "classifier cannot be nil"
	msgInvalidSandwich = "invalid sandwich layer"
)

// NewErrInvalidSize creates an error for a zero-length bit array.
func NewErrInvalidSize(size uint64) error {
	return errors.NewWithContext(ErrCodeInvalidSize, msgInvalidSize, map[string]interface{}{
		"provided_size":    size,
		"minimum_required": 1,
	})
}

// NewErrInvalidHashes creates an error for a filter with no hash functions.
func NewErrInvalidHashes(k uint32) error {
	return errors.NewWithContext(ErrCodeInvalidHashes, msgInvalidHashes, map[string]interface{}{
		"provided_hashes":  k,
		"minimum_required": 1,
	})
}

// NewErrNilClassifier creates an error for a sandwich built without an oracle.
func NewErrNilClassifier() error {
	return errors.NewWithField(ErrCodeNilClassifier, msgNilClassifier, "layer", "oracle")
}

// newErrInvalidLayer wraps a layer construction error with the layer name.
func newErrInvalidLayer(layer string, cause error) error {
	return errors.Wrap(cause, ErrCodeInvalidSandwich, msgInvalidSandwich).
		WithContext("layer", layer)
}

// IsConfigError reports whether err was caused by degenerate construction
// parameters, including errors wrapped by a sandwich layer.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	return errors.HasCode(err, ErrCodeInvalidSize) ||
		errors.HasCode(err, ErrCodeInvalidHashes) ||
		errors.HasCode(err, ErrCodeNilClassifier) ||
		errors.HasCode(err, ErrCodeInvalidSandwich)
}

// GetErrorCode extracts the outermost error code from an error.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts the structured context attached to an error.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var lbfErr *errors.Error
	if goerrors.As(err, &lbfErr) {
		return lbfErr.Context
	}
	return nil
}
