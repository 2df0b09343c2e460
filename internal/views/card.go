package views

import (
	"time"

	"grants-governance/internal/models"
)

// ProposalCard is what the proposal pages render for one proposal
type ProposalCard struct {
	models.BeneficiaryProposal
	Progress      VoteProgress `json:"progress"`
	Bond          string       `json:"bond"`
	Deadline      string       `json:"deadline"`
	TimeRemaining string       `json:"timeRemaining"`
}

// NewProposalCard attaches display formatting to a proposal view-model
func NewProposalCard(p models.BeneficiaryProposal, now time.Time, decimals int32) ProposalCard {
	return ProposalCard{
		BeneficiaryProposal: p,
		Progress:            NewVoteProgress(p.VotesFor, p.VotesAgainst, decimals),
		Bond:                FormatTokenAmount(p.ProposalBond, decimals),
		Deadline:            FormatDeadline(p.StageDeadline),
		TimeRemaining:       TimeRemaining(now, p.StageDeadline),
	}
}

// NewProposalCards formats a list, preserving order
func NewProposalCards(proposals []models.BeneficiaryProposal, now time.Time, decimals int32) []ProposalCard {
	cards := make([]ProposalCard, len(proposals))
	for i, p := range proposals {
		cards[i] = NewProposalCard(p, now, decimals)
	}
	return cards
}
