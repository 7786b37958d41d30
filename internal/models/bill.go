package models

import "time"

type PaymentType string

const (
	PaymentPaid PaymentType = "paid"
	PaymentDue  PaymentType = "due"
)

func (p PaymentType) Valid() bool {
	return p == PaymentPaid || p == PaymentDue
}

// Bill is a sale of a single product. PaymentType is the only field that
// changes after creation.
type Bill struct {
	BillNumber  string      `json:"billNumber" bson:"billNumber"`
	ProductSKU  string      `json:"productSku" bson:"productSku"`
	Quantity    int         `json:"quantity" bson:"quantity"`
	TotalAmount float64     `json:"totalAmount" bson:"totalAmount"`
	VendorName  string      `json:"vendorName" bson:"vendorName"`
	PaymentType PaymentType `json:"paymentType" bson:"paymentType"`
	CreatedAt   time.Time   `json:"createdAt" bson:"createdAt"`
}
