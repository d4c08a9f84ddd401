package postgresql

import (
	"math"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// moneyToNumeric converts an amount to NUMERIC with 2 decimal places.
func moneyToNumeric(v float64) pgtype.Numeric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	d := decimal.NewFromFloat(v).Round(2)
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// numericToMoney maps NULL, NaN and infinite values to 0.
func numericToMoney(n pgtype.Numeric) float64 {
	if !n.Valid || n.NaN || n.InfinityModifier != pgtype.Finite || n.Int == nil {
		return 0
	}
	return decimal.NewFromBigInt(n.Int, n.Exp).InexactFloat64()
}
