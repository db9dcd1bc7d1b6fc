package invoice

import (
	"billing-backend/internal/models"

	"github.com/shopspring/decimal"
)

var (
	gramsPerKg = decimal.NewFromInt(1000)
	gstRate    = decimal.NewFromFloat(0.18)
	oneHundred = decimal.NewFromInt(100)
)

// QuantityToDeduct converts a line of qty packs of unit grams each into the
// kilogram-equivalent stock quantity.
func QuantityToDeduct(unit, qty int) decimal.Decimal {
	return decimal.NewFromInt(int64(unit) * int64(qty)).Div(gramsPerKg)
}

// TotalAmount sums the caller-supplied line amounts. Per-line amounts are
// trusted as sent; only the total is derived server-side.
func TotalAmount(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// GSTAmount is the flat 18% display figure. Informational only; it is never
// added onto the invoice total.
func GSTAmount(total decimal.Decimal) decimal.Decimal {
	return total.Mul(gstRate)
}

// TotalDiscount applies the sum of the raw per-line discount percentages to
// the invoice total. The percentages are summed unweighted across lines.
func TotalDiscount(total decimal.Decimal, items []models.LineItem) decimal.Decimal {
	discSum := decimal.Zero
	for _, item := range items {
		discSum = discSum.Add(item.Disc)
	}
	return total.Mul(discSum.Div(oneHundred))
}

// PendingAmount is the outstanding balance. Overpaid invoices yield a
// negative value rather than an error.
func PendingAmount(total, paid decimal.Decimal) decimal.Decimal {
	return total.Sub(paid)
}
