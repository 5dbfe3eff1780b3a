package lbf

import (
	goerrors "errors"
	"testing"

	"github.com/agilira/go-errors"
)

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode errors.ErrorCode
		contextKey   string
	}{
		{"InvalidSize", NewErrInvalidSize(0), ErrCodeInvalidSize, "provided_size"},
		{"InvalidHashes", NewErrInvalidHashes(0), ErrCodeInvalidHashes, "provided_hashes"},
		{"NilClassifier", NewErrNilClassifier(), ErrCodeNilClassifier, "layer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasCode(tt.err, tt.expectedCode) {
				t.Errorf("expected code %s", tt.expectedCode)
			}
			if got := GetErrorCode(tt.err); got != tt.expectedCode {
				t.Errorf("GetErrorCode() = %s, want %s", got, tt.expectedCode)
			}
			if _, ok := GetErrorContext(tt.err)[tt.contextKey]; !ok {
				t.Errorf("expected context key %q", tt.contextKey)
			}
			if !IsConfigError(tt.err) {
				t.Error("expected config error")
			}
		})
	}
}

func TestNewReturnsCodedErrors(t *testing.T) {
	if _, err := New(0, 1); GetErrorCode(err) != ErrCodeInvalidSize {
		t.Errorf("expected %s, got %v", ErrCodeInvalidSize, err)
	}
	if _, err := New(1, 0); GetErrorCode(err) != ErrCodeInvalidHashes {
		t.Errorf("expected %s, got %v", ErrCodeInvalidHashes, err)
	}
}

func TestLayerErrorWrapsCause(t *testing.T) {
	_, err := NewSandwich(1000, 2, 0, 2, constOracle(true))
	if GetErrorCode(err) != ErrCodeInvalidSandwich {
		t.Fatalf("expected %s, got %v", ErrCodeInvalidSandwich, err)
	}

	cause := goerrors.Unwrap(err)
	if cause == nil {
		t.Fatal("expected a wrapped cause")
	}
	if GetErrorCode(cause) != ErrCodeInvalidSize {
		t.Errorf("expected cause %s, got %v", ErrCodeInvalidSize, cause)
	}
}

func TestErrorHelpersOnNil(t *testing.T) {
	if IsConfigError(nil) {
		t.Error("nil is not a config error")
	}
	if GetErrorCode(nil) != "" {
		t.Error("expected empty code for nil")
	}
	if GetErrorContext(nil) != nil {
		t.Error("expected nil context for nil")
	}

	plain := goerrors.New("plain")
	if GetErrorCode(plain) != "" || IsConfigError(plain) {
		t.Error("expected plain errors to carry no code")
	}
}
