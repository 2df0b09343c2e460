package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"grants-governance/internal/auth"
	"grants-governance/internal/blockchain"
	"grants-governance/internal/models"
	"grants-governance/internal/repository"
)

const loginMessagePrefix = "Sign this message to authenticate with grants portal: "

// ErrSignatureMismatch means the signature was valid but made by another wallet
var ErrSignatureMismatch = errors.New("signature does not match wallet")

// LoginMessage is the text a wallet signs with personal_sign to answer a nonce
func LoginMessage(nonce string) string {
	return loginMessagePrefix + nonce
}

// AuthService handles wallet authentication
type AuthService struct {
	repo   *repository.Repository
	nonces auth.NonceStore
	logger *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(repo *repository.Repository, nonces auth.NonceStore, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{repo: repo, nonces: nonces, logger: logger}
}

// IssueNonce stores a fresh challenge for wallet and returns it with the message to sign
func (s *AuthService) IssueNonce(ctx context.Context, wallet string) (nonce, message string, err error) {
	addr, err := blockchain.ParseAddress(wallet)
	if err != nil {
		return "", "", err
	}

	nonce, err = generateNonce(16)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	if err := s.nonces.SetNonce(ctx, addr.Hex(), nonce); err != nil {
		return "", "", fmt.Errorf("failed to store nonce: %w", err)
	}
	return nonce, LoginMessage(nonce), nil
}

// ProcessWalletLogin consumes the wallet's pending nonce, checks the signature over it,
// finds or creates the user and returns a session token
func (s *AuthService) ProcessWalletLogin(ctx context.Context, wallet, signature string) (*models.User, string, error) {
	addr, err := blockchain.ParseAddress(wallet)
	if err != nil {
		return nil, "", err
	}

	nonce, err := s.nonces.TakeNonce(ctx, addr.Hex())
	if err != nil {
		return nil, "", err
	}

	signer, err := blockchain.RecoverPersonalSign([]byte(LoginMessage(nonce)), signature)
	if err != nil {
		return nil, "", err
	}
	if signer != addr {
		s.logger.Warn("Login signature from another wallet",
			zap.String("wallet", addr.Hex()),
			zap.String("signer", signer.Hex()))
		return nil, "", ErrSignatureMismatch
	}

	user, created, err := s.repo.FindOrCreateUser(ctx, addr.Hex())
	if err != nil {
		return nil, "", fmt.Errorf("database error: %w", err)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.repo.TouchUserLogin(ctx, user); err != nil {
		s.logger.Warn("Failed to record login time", zap.Uint("user", user.ID), zap.Error(err))
	}

	token, err := auth.GenerateToken(user.ID, user.WalletAddress)
	if err != nil {
		return nil, "", err
	}

	if created {
		s.logger.Info("New user created", zap.String("wallet", user.WalletAddress), zap.Uint("user", user.ID))
	} else {
		s.logger.Info("User logged in", zap.String("wallet", user.WalletAddress), zap.Uint("user", user.ID))
	}
	return user, token, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func generateNonce(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
