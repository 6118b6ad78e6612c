package utils

import (
	"crypto/rand"   // Random bytes for fabricated hashes
	"encoding/hex"  // Hex encoding
	"fmt"           // String formatting
	"strings"       // String manipulation
	"time"          // Timestamps and claim expiry

	"github.com/golang-jwt/jwt/v5" // Signed QR claim tokens
	"github.com/google/uuid"       // Random token suffixes
)

// GenerateTokenID produces a unique gift card token identifier
// of the form GFC-<unix-millis>-<suffix>.
func GenerateTokenID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6] // Short random suffix
	return fmt.Sprintf("GFC-%d-%s", time.Now().UnixMilli(), suffix)
}

// GenerateTBAAddress derives a mock Token Bound Account address from a token
// identifier: the byte sum of the identifier, zero-padded to 40 hex digits.
func GenerateTBAAddress(tokenID string) string {
	sum := 0 // Accumulated byte sum
	for _, b := range []byte(tokenID) {
		sum += int(b) // Add each byte value
	}
	return fmt.Sprintf("0x%040x", sum) // 40 hex digit address
}

// RandomHex returns n random bytes as a hex string
func RandomHex(n int) string {
	b := make([]byte, n)                // Buffer for random bytes
	_, _ = rand.Read(b)                 // crypto/rand never fails on supported platforms
	return hex.EncodeToString(b)        // Hex encode
}

// QRClaims is the signed payload embedded in a gift card QR code.
// A merchant POS verifies the signature offline before hitting the API.
type QRClaims struct {
	TokenID              string `json:"token_id"`    // Gift card token identifier
	TBAAddress           string `json:"tba_address"` // Custody account address
	jwt.RegisteredClaims        // Standard claims
}

// GenerateQRClaim signs a QR claim for a gift card, valid until the card expires
func GenerateQRClaim(tokenID, tbaAddress string, expiresAt time.Time, secret string) (string, error) {
	claims := QRClaims{
		TokenID:    tokenID,    // Gift card token identifier
		TBAAddress: tbaAddress, // Custody account address
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),  // QR stops verifying when the card expires
			IssuedAt:  jwt.NewNumericDate(time.Now()), // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseQRClaim parses and validates a signed QR claim string
func ParseQRClaim(tokenStr, secret string) (*QRClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &QRClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors
	if err != nil {
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*QRClaims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
