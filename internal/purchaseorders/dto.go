package purchaseorders

import "github.com/bluething/boostpo/internal/timezone"

type detailRequest struct {
	ItemID    int64  `json:"itemId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
	UnitPrice *int64 `json:"unitPrice" validate:"omitempty,gte=0"`
	Cost      *int64 `json:"cost" validate:"omitempty,gte=0"`
}

// createOrderRequest mirrors the wire shape. TotalPrice and TotalCost are
// accepted for compatibility but ignored; stored totals always come from
// the lines.
type createOrderRequest struct {
	Datetime    string          `json:"datetime" validate:"required"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	TotalPrice  int64           `json:"totalPrice" validate:"omitempty,gte=0"`
	TotalCost   int64           `json:"totalCost" validate:"omitempty,gte=0"`
	Details     []detailRequest `json:"details" validate:"required,min=1,dive"`
}

// updateOrderRequest distinguishes absent fields from supplied ones: a nil
// Details keeps the stored lines, an empty list clears them.
type updateOrderRequest struct {
	Datetime    *string         `json:"datetime"`
	Description *string         `json:"description" validate:"omitempty,max=500"`
	TotalPrice  int64           `json:"totalPrice" validate:"omitempty,gte=0"`
	TotalCost   int64           `json:"totalCost" validate:"omitempty,gte=0"`
	Details     []detailRequest `json:"details" validate:"omitempty,dive"`
}

type detailResponse struct {
	ID              int64  `json:"id"`
	ItemID          int64  `json:"itemId"`
	ItemName        string `json:"itemName"`
	ItemDescription string `json:"itemDescription,omitempty"`
	Quantity        int    `json:"quantity"`
	UnitPrice       int64  `json:"unitPrice"`
	Cost            int64  `json:"cost"`
	TotalPrice      int64  `json:"totalPrice"`
	TotalCost       int64  `json:"totalCost"`
}

type orderResponse struct {
	ID              int64            `json:"id"`
	Datetime        string           `json:"datetime"`
	Description     string           `json:"description,omitempty"`
	TotalPrice      int64            `json:"totalPrice"`
	TotalCost       int64            `json:"totalCost"`
	TotalProfit     int64            `json:"totalProfit"`
	CreatedBy       string           `json:"createdBy"`
	UpdatedBy       string           `json:"updatedBy"`
	CreatedDatetime string           `json:"createdDatetime"`
	UpdatedDatetime string           `json:"updatedDatetime"`
	Details         []detailResponse `json:"details"`
}

// orderSummaryResponse is the listing projection: header only, no lines.
type orderSummaryResponse struct {
	ID              int64  `json:"id"`
	Datetime        string `json:"datetime"`
	Description     string `json:"description,omitempty"`
	TotalPrice      int64  `json:"totalPrice"`
	TotalCost       int64  `json:"totalCost"`
	TotalProfit     int64  `json:"totalProfit"`
	CreatedBy       string `json:"createdBy"`
	UpdatedBy       string `json:"updatedBy"`
	CreatedDatetime string `json:"createdDatetime"`
	UpdatedDatetime string `json:"updatedDatetime"`
}

func toDetailInputs(reqs []detailRequest) []DetailInput {
	if reqs == nil {
		return nil
	}
	inputs := make([]DetailInput, len(reqs))
	for i, d := range reqs {
		inputs[i] = DetailInput{ItemID: d.ItemID, Quantity: d.Quantity, UnitPrice: d.UnitPrice, Cost: d.Cost}
	}
	return inputs
}

func toResponse(po PurchaseOrder, tz *timezone.Converter) orderResponse {
	details := make([]detailResponse, len(po.Details))
	for i, d := range po.Details {
		details[i] = detailResponse{
			ID:              d.ID,
			ItemID:          d.ItemID,
			ItemName:        d.ItemName,
			ItemDescription: d.ItemDescription,
			Quantity:        d.Quantity,
			UnitPrice:       d.UnitPrice,
			Cost:            d.Cost,
			TotalPrice:      d.LineTotalPrice(),
			TotalCost:       d.LineTotalCost(),
		}
	}
	return orderResponse{
		ID:              po.ID,
		Datetime:        tz.FormatAPI(po.Datetime),
		Description:     po.Description,
		TotalPrice:      po.TotalPrice,
		TotalCost:       po.TotalCost,
		TotalProfit:     po.TotalProfit(),
		CreatedBy:       po.CreatedBy,
		UpdatedBy:       po.UpdatedBy,
		CreatedDatetime: tz.FormatAPI(po.CreatedAt),
		UpdatedDatetime: tz.FormatAPI(po.UpdatedAt),
		Details:         details,
	}
}

func toSummaryResponse(po PurchaseOrder, tz *timezone.Converter) orderSummaryResponse {
	return orderSummaryResponse{
		ID:              po.ID,
		Datetime:        tz.FormatAPI(po.Datetime),
		Description:     po.Description,
		TotalPrice:      po.TotalPrice,
		TotalCost:       po.TotalCost,
		TotalProfit:     po.TotalProfit(),
		CreatedBy:       po.CreatedBy,
		UpdatedBy:       po.UpdatedBy,
		CreatedDatetime: tz.FormatAPI(po.CreatedAt),
		UpdatedDatetime: tz.FormatAPI(po.UpdatedAt),
	}
}
