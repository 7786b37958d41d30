package models

import "time"

type MovementReason string

const (
	MovementBill       MovementReason = "bill"
	MovementBillDelete MovementReason = "bill-delete"
	MovementAdjust     MovementReason = "adjust"
	MovementImport     MovementReason = "import"
)

type Movement struct {
	ID         string         `json:"id" bson:"id"`
	ProductSKU string         `json:"productSku" bson:"productSku"`
	Delta      int            `json:"delta" bson:"delta"`
	Reason     MovementReason `json:"reason" bson:"reason"`
	Reference  string         `json:"reference,omitempty" bson:"reference,omitempty"`
	CreatedAt  time.Time      `json:"createdAt" bson:"createdAt"`
}
