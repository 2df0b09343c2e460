package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"grants-governance/internal/ipfs"
	"grants-governance/internal/models"
)

// ErrBeneficiaryNotFound is returned for addresses without a registered application
var ErrBeneficiaryNotFound = errors.New("beneficiary not found")

// RegistryReader is the read surface of the beneficiary registry contract
type RegistryReader interface {
	GetBeneficiary(ctx context.Context, beneficiary common.Address) ([32]byte, error)
	GetBeneficiaryList(ctx context.Context) ([]common.Address, error)
}

// BeneficiaryService resolves registered beneficiaries to their application documents
type BeneficiaryService struct {
	registry    RegistryReader
	content     ContentFetcher
	concurrency int
	logger      *zap.Logger
}

// NewBeneficiaryService creates a new BeneficiaryService
func NewBeneficiaryService(registry RegistryReader, content ContentFetcher, concurrency int, logger *zap.Logger) *BeneficiaryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BeneficiaryService{
		registry:    registry,
		content:     content,
		concurrency: concurrency,
		logger:      logger,
	}
}

// GetBeneficiaryApplication returns the application document of one beneficiary,
// stamped with the queried address since documents do not carry their own.
func (s *BeneficiaryService) GetBeneficiaryApplication(ctx context.Context, beneficiary common.Address) (*models.BeneficiaryApplication, error) {
	cid, err := s.lookupCID(ctx, beneficiary)
	if err != nil {
		return nil, err
	}

	app, err := s.content.GetApplication(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch application for %s: %w", beneficiary.Hex(), err)
	}
	app.BeneficiaryAddress = beneficiary.Hex()
	return app, nil
}

// GetAllBeneficiaryApplications returns the documents of every registered beneficiary in
// registry order, each stamped with its own address.
func (s *BeneficiaryService) GetAllBeneficiaryApplications(ctx context.Context) ([]models.BeneficiaryApplication, error) {
	addresses, err := s.registry.GetBeneficiaryList(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch beneficiary list: %w", err)
	}

	cids, err := fetchAll(ctx, len(addresses), s.concurrency, func(ctx context.Context, i int) (string, error) {
		return s.lookupCID(ctx, addresses[i])
	})
	if err != nil {
		return nil, err
	}

	apps, err := fetchAll(ctx, len(cids), s.concurrency, func(ctx context.Context, i int) (models.BeneficiaryApplication, error) {
		app, err := s.content.GetApplication(ctx, cids[i])
		if err != nil {
			return models.BeneficiaryApplication{}, fmt.Errorf("failed to fetch application for %s: %w", addresses[i].Hex(), err)
		}
		app.BeneficiaryAddress = addresses[i].Hex()
		return *app, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Fetched beneficiary applications", zap.Int("count", len(apps)))
	return apps, nil
}

// CountBeneficiaries returns the registry size without fetching documents
func (s *BeneficiaryService) CountBeneficiaries(ctx context.Context) (int, error) {
	addresses, err := s.registry.GetBeneficiaryList(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch beneficiary list: %w", err)
	}
	return len(addresses), nil
}

func (s *BeneficiaryService) lookupCID(ctx context.Context, beneficiary common.Address) (string, error) {
	digest, err := s.registry.GetBeneficiary(ctx, beneficiary)
	if err != nil {
		return "", fmt.Errorf("failed to look up beneficiary %s: %w", beneficiary.Hex(), err)
	}
	if digest == ([32]byte{}) {
		return "", fmt.Errorf("%w: %s", ErrBeneficiaryNotFound, beneficiary.Hex())
	}
	return ipfs.CIDFromBytes32(digest), nil
}
