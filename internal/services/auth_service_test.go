package services

import (
	"context"
	"crypto/ecdsa"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grants-governance/internal/auth"
	"grants-governance/internal/blockchain"
	"grants-governance/internal/repository"
)

type memoryNonceStore struct {
	mu     sync.Mutex
	nonces map[string]string
}

func newMemoryNonceStore() *memoryNonceStore {
	return &memoryNonceStore{nonces: make(map[string]string)}
}

func (m *memoryNonceStore) SetNonce(_ context.Context, wallet, nonce string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nonces[wallet] = nonce
	return nil
}

func (m *memoryNonceStore) TakeNonce(_ context.Context, wallet string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	nonce, ok := m.nonces[wallet]
	if !ok {
		return "", auth.ErrNonceNotFound
	}
	delete(m.nonces, wallet)
	return nonce, nil
}

func sign(t *testing.T, key *ecdsa.PrivateKey, message string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig)
}

func newAuthService(t *testing.T) *AuthService {
	require.NoError(t, auth.InitJWT("services-test-secret-0123456789abcdef"))
	return NewAuthService(repository.NewRepository(setupTestDB(t)), newMemoryNonceStore(), nil)
}

func TestWalletLoginCreatesThenFindsUser(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()

	nonce, message, err := s.IssueNonce(ctx, strings.ToLower(wallet))
	require.NoError(t, err)
	assert.Len(t, nonce, 32)
	assert.Equal(t, "Sign this message to authenticate with grants portal: "+nonce, message)

	user, token, err := s.ProcessWalletLogin(ctx, wallet, sign(t, key, message))
	require.NoError(t, err)
	assert.Equal(t, wallet, user.WalletAddress)
	require.NotNil(t, user.LastLoginAt)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, wallet, claims.WalletAddress)

	// second login reuses the account
	_, message, err = s.IssueNonce(ctx, wallet)
	require.NoError(t, err)
	again, _, err := s.ProcessWalletLogin(ctx, wallet, sign(t, key, message))
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	got, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, wallet, got.WalletAddress)
}

func TestWalletLoginNonceIsSingleUse(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()

	_, message, err := s.IssueNonce(ctx, wallet)
	require.NoError(t, err)
	sig := sign(t, key, message)

	_, _, err = s.ProcessWalletLogin(ctx, wallet, sig)
	require.NoError(t, err)

	_, _, err = s.ProcessWalletLogin(ctx, wallet, sig)
	assert.ErrorIs(t, err, auth.ErrNonceNotFound)
}

func TestWalletLoginRejectsOtherSigner(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	impostor, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()

	_, message, err := s.IssueNonce(ctx, wallet)
	require.NoError(t, err)

	_, _, err = s.ProcessWalletLogin(ctx, wallet, sign(t, impostor, message))
	assert.ErrorIs(t, err, ErrSignatureMismatch)

	// a signature over a stale message fails the same way
	_, _, err = s.IssueNonce(ctx, wallet)
	require.NoError(t, err)
	_, _, err = s.ProcessWalletLogin(ctx, wallet, sign(t, key, LoginMessage("stale")))
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestWalletLoginInputValidation(t *testing.T) {
	s := newAuthService(t)
	ctx := context.Background()

	_, _, err := s.IssueNonce(ctx, "not-an-address")
	assert.ErrorIs(t, err, blockchain.ErrInvalidAddress)

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()
	_, _, err = s.IssueNonce(ctx, wallet)
	require.NoError(t, err)

	_, _, err = s.ProcessWalletLogin(ctx, wallet, "0x1234")
	assert.ErrorIs(t, err, blockchain.ErrInvalidSignature)
}
