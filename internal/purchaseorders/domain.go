package purchaseorders

import "time"

// PurchaseOrder is the aggregate root stored in po_h. Datetime and the
// audit timestamps are held in UTC; conversion to the display zone happens
// at the API edge.
type PurchaseOrder struct {
	ID          int64
	Datetime    time.Time
	Description string
	TotalPrice  int64
	TotalCost   int64
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Details     []Detail
}

// Detail is one line stored in po_d. UnitPrice and Cost are snapshots taken
// when the line was written; later catalog changes do not touch them.
// ItemName and ItemDescription are joined from the catalog on reads.
type Detail struct {
	ID              int64
	OrderID         int64
	ItemID          int64
	ItemName        string
	ItemDescription string
	Quantity        int
	UnitPrice       int64
	Cost            int64
	CreatedBy       string
	UpdatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LineTotalPrice returns quantity times the snapshot unit price.
func (d Detail) LineTotalPrice() int64 {
	return int64(d.Quantity) * d.UnitPrice
}

// LineTotalCost returns quantity times the snapshot cost.
func (d Detail) LineTotalCost() int64 {
	return int64(d.Quantity) * d.Cost
}

// TotalProfit is the margin across the whole order.
func (po PurchaseOrder) TotalProfit() int64 {
	return po.TotalPrice - po.TotalCost
}
