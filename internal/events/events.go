package events

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

const (
	BillCreated = "bills.created"
	BillDeleted = "bills.deleted"
	BillPaid    = "bills.paid"
)

// BillEvent describes a change to a bill.
type BillEvent struct {
	Type        string             `json:"type"`
	BillNumber  string             `json:"billNumber"`
	ProductSKU  string             `json:"productSku"`
	Quantity    int                `json:"quantity"`
	TotalAmount float64            `json:"totalAmount"`
	PaymentType models.PaymentType `json:"paymentType"`
	At          time.Time          `json:"at"`
}

func NewBillEvent(subject string, b models.Bill) BillEvent {
	return BillEvent{
		Type:        subject,
		BillNumber:  b.BillNumber,
		ProductSKU:  b.ProductSKU,
		Quantity:    b.Quantity,
		TotalAmount: b.TotalAmount,
		PaymentType: b.PaymentType,
		At:          time.Now().UTC(),
	}
}

func (e BillEvent) Subject() string {
	return e.Type
}

func (e BillEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// RecordingPublisher keeps published events in memory.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *RecordingPublisher) Publish(_ context.Context, event Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

func (p *RecordingPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.events)
}
