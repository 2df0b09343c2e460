package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"grants-governance/internal/models"
	"grants-governance/internal/repository"
	"grants-governance/internal/views"
	"grants-governance/internal/wizard"
)

var (
	// ErrDraftNotFound is returned for missing drafts and for drafts owned by another wallet
	ErrDraftNotFound = errors.New("application draft not found")
	// ErrDraftSubmitted is returned when changing a draft that was already submitted
	ErrDraftSubmitted = errors.New("application draft already submitted")
)

// ApplicationState is a draft together with what the wizard offers on its current step
type ApplicationState struct {
	Draft       *models.ApplicationDraft `json:"draft"`
	Step        string                   `json:"step"`
	CanContinue bool                     `json:"canContinue"`
	Notice      *views.Notice            `json:"notice,omitempty"`
}

// ApplicationService drives beneficiary application drafts through the wizard
type ApplicationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(repo *repository.Repository, logger *zap.Logger) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{repo: repo, logger: logger}
}

// Create starts a new draft for owner at the intro step
func (s *ApplicationService) Create(ctx context.Context, owner string) (*ApplicationState, error) {
	draft := &models.ApplicationDraft{
		OwnerAddress: normalizeOwner(owner),
		Step:         int(wizard.StepIntro),
		Status:       models.DraftStatusDraft,
	}
	if err := s.repo.CreateDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}

	s.logger.Info("Application draft created", zap.String("draft", draft.ID.String()), zap.String("owner", draft.OwnerAddress))
	return stateOf(draft), nil
}

// Get returns one of owner's drafts
func (s *ApplicationService) Get(ctx context.Context, id uuid.UUID, owner string) (*ApplicationState, error) {
	draft, err := s.load(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	return stateOf(draft), nil
}

// List returns owner's drafts, newest first
func (s *ApplicationService) List(ctx context.Context, owner string, limit, offset int) ([]*ApplicationState, error) {
	drafts, err := s.repo.GetDraftsByOwner(ctx, normalizeOwner(owner), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	states := make([]*ApplicationState, len(drafts))
	for i, d := range drafts {
		states[i] = stateOf(d)
	}
	return states, nil
}

// UpdateFields merges patch into the draft's form and saves the new form
func (s *ApplicationService) UpdateFields(ctx context.Context, id uuid.UUID, owner string, patch map[string]interface{}) (*ApplicationState, error) {
	draft, err := s.loadEditable(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	form, err := wizard.MergePatch(draft.Form, patch)
	if err != nil {
		return nil, err
	}
	draft.Form = form

	if err := s.repo.UpdateDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return stateOf(draft), nil
}

// Next advances the draft one step if the current step is complete
func (s *ApplicationService) Next(ctx context.Context, id uuid.UUID, owner string) (*ApplicationState, error) {
	return s.move(ctx, id, owner, func(d *models.ApplicationDraft) (wizard.Step, error) {
		return wizard.Next(wizard.Step(d.Step), d.Form)
	})
}

// Back returns the draft to its previous step
func (s *ApplicationService) Back(ctx context.Context, id uuid.UUID, owner string) (*ApplicationState, error) {
	return s.move(ctx, id, owner, func(d *models.ApplicationDraft) (wizard.Step, error) {
		return wizard.Back(wizard.Step(d.Step))
	})
}

// Submit finalizes a complete draft on the review step and returns its metadata document
func (s *ApplicationService) Submit(ctx context.Context, id uuid.UUID, owner string) (*ApplicationState, *models.BeneficiaryApplication, error) {
	draft, err := s.loadEditable(ctx, id, owner)
	if err != nil {
		return nil, nil, err
	}

	if wizard.Step(draft.Step) != wizard.StepReview {
		return nil, nil, fmt.Errorf("%w: submit is only available on review, draft is on %s", wizard.ErrStepIncomplete, wizard.Step(draft.Step))
	}
	if !wizard.CanContinue(wizard.StepReview, draft.Form) {
		return nil, nil, fmt.Errorf("%w: %d required fields missing", wizard.ErrStepIncomplete, len(wizard.MissingFields(draft.Form)))
	}

	now := time.Now()
	draft.Status = models.DraftStatusSubmitted
	draft.SubmittedAt = &now
	if err := s.repo.UpdateDraft(ctx, draft); err != nil {
		return nil, nil, fmt.Errorf("failed to save draft: %w", err)
	}

	app := wizard.ToApplication(draft.Form)
	s.logger.Info("Application submitted",
		zap.String("draft", draft.ID.String()),
		zap.String("beneficiary", app.BeneficiaryAddress))

	return stateOf(draft), &app, nil
}

func (s *ApplicationService) move(ctx context.Context, id uuid.UUID, owner string, transition func(*models.ApplicationDraft) (wizard.Step, error)) (*ApplicationState, error) {
	draft, err := s.loadEditable(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	step, err := transition(draft)
	if err != nil {
		return nil, err
	}
	draft.Step = int(step)

	if err := s.repo.UpdateDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return stateOf(draft), nil
}

func (s *ApplicationService) load(ctx context.Context, id uuid.UUID, owner string) (*models.ApplicationDraft, error) {
	draft, err := s.repo.GetDraftByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	// drafts of other wallets are indistinguishable from missing ones
	if draft.OwnerAddress != normalizeOwner(owner) {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

func (s *ApplicationService) loadEditable(ctx context.Context, id uuid.UUID, owner string) (*models.ApplicationDraft, error) {
	draft, err := s.load(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	if draft.Status == models.DraftStatusSubmitted {
		return nil, ErrDraftSubmitted
	}
	return draft, nil
}

func stateOf(draft *models.ApplicationDraft) *ApplicationState {
	step := wizard.Step(draft.Step)
	state := &ApplicationState{
		Draft:       draft,
		Step:        step.String(),
		CanContinue: draft.Status == models.DraftStatusDraft && wizard.CanContinue(step, draft.Form),
	}
	if step == wizard.StepReview {
		state.Notice = views.IncompleteFieldsNotice(wizard.MissingFields(draft.Form))
	}
	return state
}

func normalizeOwner(owner string) string {
	return common.HexToAddress(owner).Hex()
}
