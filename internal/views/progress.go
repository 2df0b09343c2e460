package views

import (
	"math/big"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// VotePercentage returns votesFor / (votesFor + votesAgainst) * 100, or 0 when no votes were cast.
func VotePercentage(votesFor, votesAgainst *big.Int) decimal.Decimal {
	f := decimalFromBig(votesFor)
	total := f.Add(decimalFromBig(votesAgainst))
	if total.IsZero() {
		return decimal.Zero
	}
	return f.Div(total).Mul(hundred)
}

// VoteProgress is the display model of a for/against progress bar
type VoteProgress struct {
	VotesFor       string          `json:"votesFor"`
	VotesAgainst   string          `json:"votesAgainst"`
	ForPercent     decimal.Decimal `json:"forPercent"`
	AgainstPercent decimal.Decimal `json:"againstPercent"`
}

// NewVoteProgress formats vote amounts (in token base units) and their split
func NewVoteProgress(votesFor, votesAgainst *big.Int, decimals int32) VoteProgress {
	forPct := VotePercentage(votesFor, votesAgainst)
	againstPct := decimal.Zero
	if !decimalFromBig(votesFor).Add(decimalFromBig(votesAgainst)).IsZero() {
		againstPct = hundred.Sub(forPct)
	}
	return VoteProgress{
		VotesFor:       FormatTokenAmount(votesFor, decimals),
		VotesAgainst:   FormatTokenAmount(votesAgainst, decimals),
		ForPercent:     forPct.Round(2),
		AgainstPercent: againstPct.Round(2),
	}
}

func decimalFromBig(v *big.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v, 0)
}
