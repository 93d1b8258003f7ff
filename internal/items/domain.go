package items

import "time"

// Item is a catalog record. Price and cost are stored in minor currency
// units and are never negative.
type Item struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	Cost        int64
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProfitMargin returns price minus cost.
func (i Item) ProfitMargin() int64 {
	return i.Price - i.Cost
}

// ProfitPercentage returns the margin relative to cost, zero when cost is
// zero.
func (i Item) ProfitPercentage() float64 {
	if i.Cost == 0 {
		return 0
	}
	return float64(i.ProfitMargin()) / float64(i.Cost) * 100
}

// Profitable reports whether the item sells above cost.
func (i Item) Profitable() bool {
	return i.ProfitMargin() > 0
}
