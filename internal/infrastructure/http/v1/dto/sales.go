package dto

import (
	"stockbook/internal/core/types"
	"stockbook/internal/domain/sales"
)

// RecordSaleRequest is the sale payload.
type RecordSaleRequest struct {
	ItemName     string      `json:"item_name" binding:"required"`
	Quantity     types.Money `json:"quantity"`
	SellingPrice types.Money `json:"selling_price"`
}

// ToRecordInput converts to the domain input.
func (r RecordSaleRequest) ToRecordInput() sales.RecordInput {
	return sales.RecordInput{
		ItemName:     r.ItemName,
		Quantity:     r.Quantity,
		SellingPrice: r.SellingPrice,
	}
}
