package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"grants-governance/internal/ipfs"
	"grants-governance/internal/models"
)

// ErrProposalNotFound is returned when no proposal concerns the requested beneficiary
var ErrProposalNotFound = errors.New("proposal not found")

// GovernanceReader is the read surface of the governance contract
type GovernanceReader interface {
	GetProposalID(ctx context.Context, beneficiary common.Address) (*big.Int, error)
	GetNumberOfProposals(ctx context.Context) (*big.Int, error)
	Proposal(ctx context.Context, index *big.Int) (*models.Proposal, error)
}

// ContentFetcher retrieves application documents by content identifier
type ContentFetcher interface {
	GetApplication(ctx context.Context, cid string) (*models.BeneficiaryApplication, error)
}

// ProposalService reads proposals and enriches them with their application documents
type ProposalService struct {
	governance  GovernanceReader
	content     ContentFetcher
	concurrency int
	logger      *zap.Logger
}

// NewProposalService creates a new ProposalService
func NewProposalService(governance GovernanceReader, content ContentFetcher, concurrency int, logger *zap.Logger) *ProposalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProposalService{
		governance:  governance,
		content:     content,
		concurrency: concurrency,
		logger:      logger,
	}
}

// GetProposal returns the enriched proposal concerning beneficiary
func (s *ProposalService) GetProposal(ctx context.Context, beneficiary common.Address) (*models.BeneficiaryProposal, error) {
	index, err := s.governance.GetProposalID(ctx, beneficiary)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve proposal id for %s: %w", beneficiary.Hex(), err)
	}

	// with no proposals at all the unknown-address index 0 does not exist and the getter reverts
	if index.Sign() == 0 {
		n, err := s.governance.GetNumberOfProposals(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count proposals: %w", err)
		}
		if n.Sign() == 0 {
			return nil, fmt.Errorf("%w: %s", ErrProposalNotFound, beneficiary.Hex())
		}
	}

	proposal, err := s.governance.Proposal(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch proposal %s: %w", index, err)
	}

	// unknown beneficiaries resolve to index 0, which belongs to someone else
	if proposal.Beneficiary != beneficiary {
		return nil, fmt.Errorf("%w: %s", ErrProposalNotFound, beneficiary.Hex())
	}

	return s.Enrich(ctx, proposal)
}

// GetProposals returns every takedown (isTakedown) or nomination proposal, enriched,
// in proposal index order.
func (s *ProposalService) GetProposals(ctx context.Context, isTakedown bool) ([]models.BeneficiaryProposal, error) {
	proposals, err := s.ListProposals(ctx)
	if err != nil {
		return nil, err
	}

	wanted := models.ProposalTypeNomination
	if isTakedown {
		wanted = models.ProposalTypeTakedown
	}

	var matching []*models.Proposal
	for _, p := range proposals {
		if p.ProposalType == wanted {
			matching = append(matching, p)
		}
	}

	enriched, err := fetchAll(ctx, len(matching), s.concurrency, func(ctx context.Context, i int) (models.BeneficiaryProposal, error) {
		bp, err := s.Enrich(ctx, matching[i])
		if err != nil {
			return models.BeneficiaryProposal{}, err
		}
		return *bp, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Fetched proposals",
		zap.String("type", wanted.String()),
		zap.Int("total", len(proposals)),
		zap.Int("matching", len(enriched)))

	return enriched, nil
}

// ListProposals returns the raw on-chain records of every proposal, without enrichment
func (s *ProposalService) ListProposals(ctx context.Context) ([]*models.Proposal, error) {
	count, err := s.governance.GetNumberOfProposals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch proposal count: %w", err)
	}
	if !count.IsInt64() || count.Sign() < 0 {
		return nil, fmt.Errorf("unexpected proposal count %s", count)
	}

	return fetchAll(ctx, int(count.Int64()), s.concurrency, func(ctx context.Context, i int) (*models.Proposal, error) {
		p, err := s.governance.Proposal(ctx, big.NewInt(int64(i)))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch proposal %d: %w", i, err)
		}
		return p, nil
	})
}

// Enrich resolves the proposal's application document and builds the view-model
func (s *ProposalService) Enrich(ctx context.Context, p *models.Proposal) (*models.BeneficiaryProposal, error) {
	deadline, err := p.StageDeadline()
	if err != nil {
		return nil, fmt.Errorf("proposal %s: %w", p.ID, err)
	}

	cid := ipfs.CIDFromBytes32(p.ApplicationCID)
	app, err := s.content.GetApplication(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application for proposal %s: %w", p.ID, err)
	}

	return &models.BeneficiaryProposal{
		ID:                 p.ID.String(),
		Status:             p.Status,
		ProposalType:       p.ProposalType,
		Proposer:           p.Proposer.Hex(),
		BeneficiaryAddress: p.Beneficiary.Hex(),
		ApplicationCID:     cid,
		VotesFor:           p.YesCount,
		VotesAgainst:       p.NoCount,
		VoterCount:         p.VoterCount,
		ProposalBond:       p.ConfigurationOptions.ProposalBond,
		StageDeadline:      deadline,
		StageDeadlineMs:    deadline.UnixMilli(),
		OrganizationName:   app.OrganizationName,
		MissionStatement:   app.MissionStatement,
		ProofOfOwnership:   app.ProofOfOwnership,
		ProfileImage:       app.ProfileImage,
		HeaderImage:        app.HeaderImage,
		AdditionalImages:   app.AdditionalImages,
		ImpactReports:      app.ImpactReports,
		Links:              app.Links,
	}, nil
}
