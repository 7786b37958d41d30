package models

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// Industries accepted on an access request.
var Industries = []string{"Retail", "Manufacturing", "Wholesale", "Restaurant", "Healthcare", "Technology", "Other"}

// AccessRequest is a business asking to be onboarded.
type AccessRequest struct {
	ID           string        `json:"id" bson:"id"`
	BusinessName string        `json:"businessName" bson:"businessName"`
	Industry     string        `json:"industry" bson:"industry"`
	Email        string        `json:"email" bson:"email"`
	Phone        string        `json:"phone" bson:"phone"`
	Description  string        `json:"description" bson:"description"`
	Status       RequestStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}
