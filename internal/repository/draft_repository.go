package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grants-governance/internal/models"
)

// Repository persists users and application drafts
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new Repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateDraft creates a new application draft
func (r *Repository) CreateDraft(ctx context.Context, draft *models.ApplicationDraft) error {
	return r.db.WithContext(ctx).Create(draft).Error
}

// GetDraftByID retrieves a draft by ID
func (r *Repository) GetDraftByID(ctx context.Context, id uuid.UUID) (*models.ApplicationDraft, error) {
	var draft models.ApplicationDraft
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&draft).Error
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// GetDraftsByOwner retrieves a wallet's drafts, newest first
func (r *Repository) GetDraftsByOwner(ctx context.Context, owner string, limit, offset int) ([]*models.ApplicationDraft, error) {
	var drafts []*models.ApplicationDraft
	err := r.db.WithContext(ctx).
		Where("owner_address = ?", owner).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&drafts).Error
	if err != nil {
		return nil, err
	}
	return drafts, nil
}

// UpdateDraft saves every field of a draft
func (r *Repository) UpdateDraft(ctx context.Context, draft *models.ApplicationDraft) error {
	return r.db.WithContext(ctx).Save(draft).Error
}

// FindOrCreateUser returns the user for a wallet, creating it on first login
func (r *Repository) FindOrCreateUser(ctx context.Context, walletAddress string) (*models.User, bool, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("wallet_address = ?", walletAddress).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user = models.User{WalletAddress: walletAddress}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

// TouchUserLogin records a login time
func (r *Repository) TouchUserLogin(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Model(user).Update("last_login_at", user.LastLoginAt).Error
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
