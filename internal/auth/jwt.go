package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenTTL is how long an issued session token stays valid
	TokenTTL = 24 * time.Hour
	// TokenIssuer is stamped on every session token and required on validation
	TokenIssuer = "grants-governance"
	// MinSecretLength is the shortest HS256 key accepted, matching the SHA-256 digest size
	MinSecretLength = 32
)

// Session token errors
var (
	ErrSecretTooShort = fmt.Errorf("JWT secret must be at least %d bytes", MinSecretLength)
	ErrSecretNotSet   = errors.New("JWT secret not initialized")
	ErrInvalidToken   = errors.New("invalid session token")
	ErrInvalidSubject = errors.New("session subject is not a wallet address")
)

var (
	jwtSecret []byte

	// only HS256 tokens from this service with an expiry are accepted
	sessionTokenParser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
)

// InitJWT installs the signing key for session tokens
func InitJWT(secret string) error {
	if len(secret) < MinSecretLength {
		return ErrSecretTooShort
	}
	jwtSecret = []byte(secret)
	return nil
}

// Claims carries the session's user id; the wallet travels as the token subject
// and is mirrored in WalletAddress so both must agree on validation.
type Claims struct {
	UserID        uint   `json:"user_id"`
	WalletAddress string `json:"wallet_address"`
	jwt.RegisteredClaims
}

// GenerateToken signs a TokenTTL session for walletAddress
func GenerateToken(userID uint, walletAddress string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", ErrSecretNotSet
	}
	if !common.IsHexAddress(walletAddress) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSubject, walletAddress)
	}

	now := time.Now()
	claims := &Claims{
		UserID:        userID,
		WalletAddress: walletAddress,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   walletAddress,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature, algorithm, issuer and expiry, then that the
// subject is the wallet the claims name
func ValidateToken(tokenString string) (*Claims, error) {
	if len(jwtSecret) == 0 {
		return nil, ErrSecretNotSet
	}

	claims := &Claims{}
	if _, err := sessionTokenParser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !common.IsHexAddress(claims.Subject) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSubject, claims.Subject)
	}
	if !strings.EqualFold(claims.Subject, claims.WalletAddress) {
		return nil, fmt.Errorf("%w: subject %s does not match wallet %s", ErrInvalidToken, claims.Subject, claims.WalletAddress)
	}
	return claims, nil
}
