package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"order not found", ErrOrderNotFound},
		{"duplicate order", ErrDuplicateOrder},
		{"invalid amount", ErrInvalidAmount},
		{"missing field", ErrMissingField},
		{"verification failed", ErrVerificationFailed},
		{"already settled", ErrAlreadySettled},
		{"store unavailable", ErrStoreUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
			wrapped := fmt.Errorf("context: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match sentinel: %v", wrapped)
			}
		})
	}
}
