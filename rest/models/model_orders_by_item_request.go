package models

// OrdersByItemRequest selects the item whose orders to list.
type OrdersByItemRequest struct {
	ItemCode string `json:"itemCode" validate:"required"`
	Limit    int    `json:"limit" validate:"gte=0,lte=100"`
}
