package booking

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Booking codes and transaction ids are minted from crypto/rand and
// made unique by database constraints, not by coordination: a PNR is
// 10 uppercase hex characters (40 bits), a transaction id is "TXN"
// plus 16 uppercase hex characters (64 bits).  At those sizes a
// collision is a freak event, handled by regenerating when the insert
// trips the unique index.

// codeAttempts bounds the regenerate-and-retry loop for both kinds of
// code before the facade gives up with ErrCodeGenerationExhausted.
const codeAttempts = 5

// NewBookingCode returns a fresh candidate PNR.
func NewBookingCode() (string, error) {
	return randomUpperHex(5)
}

// NewTransactionID returns a fresh candidate payment transaction id.
func NewTransactionID() (string, error) {
	s, err := randomUpperHex(8)
	if err != nil {
		return "", err
	}
	return "TXN" + s, nil
}

// randomUpperHex returns n bytes of cryptographically secure random
// data encoded as 2n uppercase hex characters.
func randomUpperHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
