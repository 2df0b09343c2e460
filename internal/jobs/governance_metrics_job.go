package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"grants-governance/internal/metrics"
	"grants-governance/internal/models"
)

// ProposalLister reads every proposal snapshot without enrichment
type ProposalLister interface {
	ListProposals(ctx context.Context) ([]*models.Proposal, error)
}

// BeneficiaryCounter reports the registry size
type BeneficiaryCounter interface {
	CountBeneficiaries(ctx context.Context) (int, error)
}

var (
	proposalTypes    = []models.ProposalType{models.ProposalTypeNomination, models.ProposalTypeTakedown}
	proposalStatuses = []models.ProposalStatus{
		models.ProposalStatusPending,
		models.ProposalStatusActive,
		models.ProposalStatusVeto,
		models.ProposalStatusPassed,
		models.ProposalStatusFailed,
	}
)

// GovernanceMetricsJob periodically publishes proposal and beneficiary gauges
type GovernanceMetricsJob struct {
	proposals     ProposalLister
	beneficiaries BeneficiaryCounter
	interval      time.Duration
	timeout       time.Duration
	logger        *zap.Logger
	stopChan      chan struct{}
}

// DefaultRefreshInterval is used when the job is built with a non-positive interval
const DefaultRefreshInterval = 5 * time.Minute

// NewGovernanceMetricsJob creates a new governance metrics job
func NewGovernanceMetricsJob(proposals ProposalLister, beneficiaries BeneficiaryCounter, interval time.Duration, logger *zap.Logger) *GovernanceMetricsJob {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GovernanceMetricsJob{
		proposals:     proposals,
		beneficiaries: beneficiaries,
		interval:      interval,
		timeout:       interval,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Start refreshes immediately, then on every tick until Stop is called
func (j *GovernanceMetricsJob) Start() {
	j.logger.Info("Starting governance metrics job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.refreshWithTimeout()
	for {
		select {
		case <-ticker.C:
			j.refreshWithTimeout()
		case <-j.stopChan:
			j.logger.Info("Stopping governance metrics job")
			return
		}
	}
}

// Stop stops the refresh loop
func (j *GovernanceMetricsJob) Stop() {
	close(j.stopChan)
}

func (j *GovernanceMetricsJob) refreshWithTimeout() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if err := j.Refresh(ctx); err != nil {
		j.logger.Warn("Governance metrics refresh failed", zap.Error(err))
	}
}

// Refresh reads the contracts once and sets the gauges.
// A failed read leaves the previous values of its gauges in place.
func (j *GovernanceMetricsJob) Refresh(ctx context.Context) error {
	proposals, err := j.proposals.ListProposals(ctx)
	if err != nil {
		return err
	}

	counts := make(map[models.ProposalType]map[models.ProposalStatus]int)
	for _, p := range proposals {
		if counts[p.ProposalType] == nil {
			counts[p.ProposalType] = make(map[models.ProposalStatus]int)
		}
		counts[p.ProposalType][p.Status]++
	}
	for _, t := range proposalTypes {
		for _, s := range proposalStatuses {
			metrics.Proposals.WithLabelValues(t.String(), s.String()).Set(float64(counts[t][s]))
		}
	}

	n, err := j.beneficiaries.CountBeneficiaries(ctx)
	if err != nil {
		return err
	}
	metrics.Beneficiaries.Set(float64(n))

	j.logger.Debug("Governance metrics refreshed", zap.Int("proposals", len(proposals)), zap.Int("beneficiaries", n))
	return nil
}
