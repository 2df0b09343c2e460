package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"grants-governance/internal/models"
	"grants-governance/internal/repository"
	"grants-governance/internal/wizard"
)

const (
	ownerWallet = "0xaBcDeF0000000000000000000000000000000001"
	otherWallet = "0x2222222222222222222222222222222222222222"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// each pooled connection would otherwise get its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.ApplicationDraft{}))
	return db
}

func newApplicationService(t *testing.T) *ApplicationService {
	return NewApplicationService(repository.NewRepository(setupTestDB(t)), nil)
}

func completePatch() map[string]interface{} {
	return map[string]interface{}{
		"organizationName": "  Clean Water Fund ",
		"ethereumAddress":  "0x3333333333333333333333333333333333333333",
		"missionStatement": "Wells for everyone",
		"proofOfOwnership": "ipfs://proof",
		"profileImage":     "ipfs://profile",
		"headerImage":      "ipfs://header",
		"additionalImages": []interface{}{"ipfs://a", "ipfs://b"},
		"links.website":    "https://water.example.org",
	}
}

func advanceTo(t *testing.T, s *ApplicationService, id uuid.UUID, step wizard.Step) *ApplicationState {
	t.Helper()
	var state *ApplicationState
	for i := 0; i < int(step); i++ {
		var err error
		state, err = s.Next(context.Background(), id, ownerWallet)
		require.NoError(t, err)
	}
	return state
}

func TestApplicationCreateStartsAtIntro(t *testing.T) {
	s := newApplicationService(t)
	ctx := context.Background()

	state, err := s.Create(ctx, ownerWallet)
	require.NoError(t, err)
	assert.Equal(t, "intro", state.Step)
	assert.True(t, state.CanContinue)
	assert.Nil(t, state.Notice)
	assert.Equal(t, models.DraftStatusDraft, state.Draft.Status)
	assert.NotEqual(t, uuid.Nil, state.Draft.ID)

	got, err := s.Get(ctx, state.Draft.ID, ownerWallet)
	require.NoError(t, err)
	assert.Equal(t, state.Draft.ID, got.Draft.ID)
}

func TestApplicationIsOwnerScoped(t *testing.T) {
	s := newApplicationService(t)
	ctx := context.Background()

	state, err := s.Create(ctx, ownerWallet)
	require.NoError(t, err)

	_, err = s.Get(ctx, state.Draft.ID, otherWallet)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	_, err = s.UpdateFields(ctx, state.Draft.ID, otherWallet, map[string]interface{}{"organizationName": "x"})
	assert.ErrorIs(t, err, ErrDraftNotFound)

	_, err = s.Get(ctx, uuid.New(), ownerWallet)
	assert.ErrorIs(t, err, ErrDraftNotFound)

	// owner matching ignores address case
	_, err = s.Get(ctx, state.Draft.ID, "0xABCDEF0000000000000000000000000000000001")
	assert.NoError(t, err)

	list, err := s.List(ctx, otherWallet, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = s.List(ctx, ownerWallet, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestApplicationNextRequiresStepInput(t *testing.T) {
	s := newApplicationService(t)
	ctx := context.Background()

	state, err := s.Create(ctx, ownerWallet)
	require.NoError(t, err)
	id := state.Draft.ID

	state, err = s.Next(ctx, id, ownerWallet)
	require.NoError(t, err)
	assert.Equal(t, "organization-name", state.Step)
	assert.False(t, state.CanContinue)

	_, err = s.Next(ctx, id, ownerWallet)
	assert.ErrorIs(t, err, wizard.ErrStepIncomplete)

	state, err = s.UpdateFields(ctx, id, ownerWallet, map[string]interface{}{"organizationName": "Clean Water Fund"})
	require.NoError(t, err)
	assert.True(t, state.CanContinue)

	state, err = s.Next(ctx, id, ownerWallet)
	require.NoError(t, err)
	assert.Equal(t, "ethereum-address", state.Step)

	state, err = s.Back(ctx, id, ownerWallet)
	require.NoError(t, err)
	assert.Equal(t, "organization-name", state.Step)
	assert.Equal(t, "Clean Water Fund", state.Draft.Form.OrganizationName)
}

func TestApplicationUpdateRejectsUnknownField(t *testing.T) {
	s := newApplicationService(t)
	ctx := context.Background()

	state, err := s.Create(ctx, ownerWallet)
	require.NoError(t, err)

	_, err = s.UpdateFields(ctx, state.Draft.ID, ownerWallet, map[string]interface{}{
		"organizationName": "ok",
		"favouriteColour":  "blue",
	})
	assert.ErrorIs(t, err, wizard.ErrUnknownField)

	// all-or-nothing: the valid key was not persisted either
	got, err := s.Get(ctx, state.Draft.ID, ownerWallet)
	require.NoError(t, err)
	assert.Empty(t, got.Draft.Form.OrganizationName)
}

func TestApplicationSubmitFlow(t *testing.T) {
	s := newApplicationService(t)
	ctx := context.Background()

	state, err := s.Create(ctx, ownerWallet)
	require.NoError(t, err)
	id := state.Draft.ID

	_, _, err = s.Submit(ctx, id, ownerWallet)
	assert.ErrorIs(t, err, wizard.ErrStepIncomplete)

	_, err = s.UpdateFields(ctx, id, ownerWallet, completePatch())
	require.NoError(t, err)

	state = advanceTo(t, s, id, wizard.StepReview)
	assert.Equal(t, "review", state.Step)
	assert.True(t, state.CanContinue)
	assert.Nil(t, state.Notice)

	state, app, err := s.Submit(ctx, id, ownerWallet)
	require.NoError(t, err)
	assert.Equal(t, models.DraftStatusSubmitted, state.Draft.Status)
	require.NotNil(t, state.Draft.SubmittedAt)
	assert.False(t, state.CanContinue)
	assert.Equal(t, "Clean Water Fund", app.OrganizationName)
	assert.Equal(t, []string{"ipfs://a", "ipfs://b"}, app.AdditionalImages)
	assert.Equal(t, "https://water.example.org", app.Links.Website)

	_, _, err = s.Submit(ctx, id, ownerWallet)
	assert.ErrorIs(t, err, ErrDraftSubmitted)

	_, err = s.UpdateFields(ctx, id, ownerWallet, map[string]interface{}{"organizationName": "late"})
	assert.ErrorIs(t, err, ErrDraftSubmitted)
}

func TestApplicationReviewNoticeListsMissingFields(t *testing.T) {
	s := newApplicationService(t)
	ctx := context.Background()

	state, err := s.Create(ctx, ownerWallet)
	require.NoError(t, err)
	id := state.Draft.ID

	_, err = s.UpdateFields(ctx, id, ownerWallet, completePatch())
	require.NoError(t, err)
	advanceTo(t, s, id, wizard.StepReview)

	// clearing a field after reaching review blocks submission
	state, err = s.UpdateFields(ctx, id, ownerWallet, map[string]interface{}{"headerImage": ""})
	require.NoError(t, err)
	assert.False(t, state.CanContinue)
	require.NotNil(t, state.Notice)
	assert.Equal(t, []string{"1. Header image"}, state.Notice.Items)

	_, _, err = s.Submit(ctx, id, ownerWallet)
	assert.ErrorIs(t, err, wizard.ErrStepIncomplete)
}
