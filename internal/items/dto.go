package items

import "github.com/bluething/boostpo/internal/timezone"

type createItemRequest struct {
	Name        string `json:"name" validate:"required,max=500"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Price       *int64 `json:"price" validate:"required,gte=0"`
	Cost        *int64 `json:"cost" validate:"required,gte=0"`
}

type updateItemRequest struct {
	Name        string `json:"name" validate:"required,max=500"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Price       *int64 `json:"price" validate:"required,gte=0"`
	Cost        *int64 `json:"cost" validate:"required,gte=0"`
}

type itemResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description,omitempty"`
	Price            int64   `json:"price"`
	Cost             int64   `json:"cost"`
	ProfitMargin     int64   `json:"profitMargin"`
	ProfitPercentage float64 `json:"profitPercentage"`
	Profitable       bool    `json:"profitable"`
	CreatedBy        string  `json:"createdBy"`
	UpdatedBy        string  `json:"updatedBy"`
	CreatedDatetime  string  `json:"createdDatetime"`
	UpdatedDatetime  string  `json:"updatedDatetime"`
}

func toResponse(item Item, tz *timezone.Converter) itemResponse {
	return itemResponse{
		ID:               item.ID,
		Name:             item.Name,
		Description:      item.Description,
		Price:            item.Price,
		Cost:             item.Cost,
		ProfitMargin:     item.ProfitMargin(),
		ProfitPercentage: item.ProfitPercentage(),
		Profitable:       item.Profitable(),
		CreatedBy:        item.CreatedBy,
		UpdatedBy:        item.UpdatedBy,
		CreatedDatetime:  tz.FormatAPI(item.CreatedAt),
		UpdatedDatetime:  tz.FormatAPI(item.UpdatedAt),
	}
}
