package dto

import (
	"stockbook/internal/core/types"
	"stockbook/internal/domain/items"
)

// AddStockRequest is the stock addition payload. Amounts accept JSON
// numbers or strings; both decode without float rounding.
type AddStockRequest struct {
	Name        string      `json:"name" binding:"required"`
	Quantity    types.Money `json:"quantity"`
	BuyingRate  types.Money `json:"buying_rate"`
	SellingRate types.Money `json:"selling_rate"`
}

// ToStockAdd converts to the domain input.
func (r AddStockRequest) ToStockAdd() items.StockAdd {
	return items.StockAdd{
		Name:        r.Name,
		Quantity:    r.Quantity,
		BuyingRate:  r.BuyingRate,
		SellingRate: r.SellingRate,
	}
}

// ItemNamesResponse is the autocomplete list.
type ItemNamesResponse struct {
	Names []string `json:"names"`
}
