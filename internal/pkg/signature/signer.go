package signature

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyCredentials means the signer was constructed without a key or
	// salt. Signing with empty credentials would be trivially forgeable.
	ErrEmptyCredentials = errors.New("merchant key and salt must not be empty")
	// ErrMissingField means a required transaction field was left empty.
	ErrMissingField = errors.New("missing required signing field")
)

// Fields is the ordered tuple of transaction fields bound by a digest.
// Only the udf values are optional; empty strings are hashed as-is.
type Fields struct {
	TxnID       string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	UDF         [5]string
}

// Signer produces and verifies the gateway's SHA-512 transaction digests.
// Both layouts are fixed by the provider: the outbound one runs
// key..fields..salt, the inbound one mirrors it as salt..status..fields..key,
// each padded with a fixed run of empty placeholders.
type Signer struct {
	key  string
	salt string
}

// NewSigner builds a Signer for the given merchant credentials.
func NewSigner(key, salt string) (*Signer, error) {
	if key == "" || salt == "" {
		return nil, ErrEmptyCredentials
	}
	return &Signer{key: key, salt: salt}, nil
}

// Key returns the merchant key the signer was built with.
func (s *Signer) Key() string {
	return s.key
}

// PaymentHash signs an outgoing payment request:
// sha512(key|txnid|amount|productinfo|firstname|email|udf1|udf2|udf3|udf4|udf5||||||salt).
func (s *Signer) PaymentHash(f Fields) (string, error) {
	if err := f.validate(); err != nil {
		return "", err
	}
	parts := make([]string, 0, 17)
	parts = append(parts, s.key, f.TxnID, f.Amount, f.ProductInfo, f.FirstName, f.Email)
	parts = append(parts, f.UDF[0], f.UDF[1], f.UDF[2], f.UDF[3], f.UDF[4])
	parts = append(parts, "", "", "", "", "")
	parts = append(parts, s.salt)
	return digest(parts), nil
}

// CallbackHash computes the digest the provider attaches to a result callback:
// sha512(salt|status|||||udf5|udf4|udf3|udf2|udf1|email|firstname|productinfo|amount|txnid|key).
func (s *Signer) CallbackHash(status string, f Fields) (string, error) {
	if err := f.validate(); err != nil {
		return "", err
	}
	parts := make([]string, 0, 17)
	parts = append(parts, s.salt, status)
	parts = append(parts, "", "", "", "", "")
	parts = append(parts, f.UDF[4], f.UDF[3], f.UDF[2], f.UDF[1], f.UDF[0])
	parts = append(parts, f.Email, f.FirstName, f.ProductInfo, f.Amount, f.TxnID, s.key)
	return digest(parts), nil
}

// VerifyCallback recomputes the inbound digest from the payload's own values
// and compares it to the provided one in constant time. The comparison is
// case-sensitive over the lowercase hex form.
func (s *Signer) VerifyCallback(provided, status string, f Fields) (bool, error) {
	expected, err := s.CallbackHash(status, f)
	if err != nil {
		return false, err
	}
	return hmac.Equal([]byte(expected), []byte(provided)), nil
}

// CommandHash signs a merchant API command: sha512(key|command|var1|salt).
func (s *Signer) CommandHash(command, var1 string) string {
	return digest([]string{s.key, command, var1, s.salt})
}

func (f Fields) validate() error {
	if f.TxnID == "" {
		return fmt.Errorf("%w: txnid", ErrMissingField)
	}
	if f.Amount == "" {
		return fmt.Errorf("%w: amount", ErrMissingField)
	}
	return nil
}

func digest(parts []string) string {
	sum := sha512.Sum512([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
