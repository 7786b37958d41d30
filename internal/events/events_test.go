package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rogerio-castellano/inventory-billing/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillEvent_Payload(t *testing.T) {
	bill := models.Bill{BillNumber: "BILL-1", ProductSKU: "SKU1", Quantity: 4, TotalAmount: 40, PaymentType: models.PaymentDue}
	ev := NewBillEvent(BillCreated, bill)

	assert.Equal(t, "bills.created", ev.Subject())

	data, err := ev.Payload()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "BILL-1", decoded["billNumber"])
	assert.Equal(t, "SKU1", decoded["productSku"])
	assert.Equal(t, "due", decoded["paymentType"])
}

func TestRecordingPublisher(t *testing.T) {
	p := &RecordingPublisher{}
	require.NoError(t, p.Publish(context.Background(), NewBillEvent(BillPaid, models.Bill{BillNumber: "B"})))
	require.NoError(t, NopPublisher{}.Publish(context.Background(), NewBillEvent(BillPaid, models.Bill{})))

	evs := p.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, BillPaid, evs[0].Subject())
}
