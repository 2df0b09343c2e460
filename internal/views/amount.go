package views

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// FormatTokenAmount scales a base-unit amount by 10^decimals and renders two decimal places.
func FormatTokenAmount(amount *big.Int, decimals int32) string {
	if amount == nil {
		return decimal.Zero.StringFixed(2)
	}
	return decimal.NewFromBigInt(amount, -decimals).StringFixed(2)
}
