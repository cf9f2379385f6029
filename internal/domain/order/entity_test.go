package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to processing", OrderStatusPending, OrderStatusProcessing, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to shipped skips processing", OrderStatusPending, OrderStatusShipped, false},
		{"pending to delivered skips everything", OrderStatusPending, OrderStatusDelivered, false},
		{"processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"processing to cancelled", OrderStatusProcessing, OrderStatusCancelled, true},
		{"processing back to pending", OrderStatusProcessing, OrderStatusPending, false},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
		{"same status is not a transition", OrderStatusPending, OrderStatusPending, false},
		{"unknown status never transitions", OrderStatus("refunded"), OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}

	assert.False(t, OrderStatus("").IsValid())
	assert.False(t, OrderStatus("refunded").IsValid())
	assert.False(t, OrderStatus("PENDING").IsValid())
}

func TestTerminalStatuses(t *testing.T) {
	terminal := &Order{Status: OrderStatusDelivered}
	assert.True(t, terminal.IsTerminal())

	cancelled := &Order{Status: OrderStatusCancelled}
	assert.True(t, cancelled.IsTerminal())

	open := &Order{Status: OrderStatusProcessing}
	assert.False(t, open.IsTerminal())
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Order{Status: OrderStatusPending}).CanBeCancelled())
	assert.True(t, (&Order{Status: OrderStatusProcessing}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderStatusShipped}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderStatusDelivered}).CanBeCancelled())
	assert.False(t, (&Order{Status: OrderStatusCancelled}).CanBeCancelled())
}

func TestGenerateOrderNumber(t *testing.T) {
	num := GenerateOrderNumber(42)
	require.True(t, strings.HasPrefix(num, "ORD-"))
	assert.True(t, strings.HasSuffix(num, "-00042"))

	parts := strings.Split(num, "-")
	require.Len(t, parts, 3)
	assert.Len(t, parts[1], 8)
}

func TestOrderItemLineItem(t *testing.T) {
	item := OrderItem{
		ProductID:       7,
		ProductType:     "tire",
		Quantity:        4,
		UnitPrice:       12500,
		InstallationFee: 2000,
	}
	line := item.LineItem()

	require.NoError(t, line.Validate())
	assert.Equal(t, int64(4*12500+4*2000), line.LineTotal())
}
