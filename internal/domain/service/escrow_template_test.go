package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeEscrowRequest(t *testing.T) {
	text := ComposeEscrowRequest(EscrowRequest{
		ProductName:   "Tech Channel",
		TransactionID: 1234567,
		Price:         120,
		PaymentMethod: PaymentMethodStripe,
	})

	want := "🔒 Request to Purchase Tech Channel\n" +
		"Transaction ID: 1234567\n" +
		"Transaction Amount: $120\n" +
		"Payment Method: Stripe\n" +
		"The buyer pays the cost of the channel + 8% ($3 minimum) service fee.\n" +
		"\n" +
		"The seller confirms and agrees to use the escrow service.\n" +
		"\n" +
		"The escrow agent verifies everything and assigns manager rights to the buyer.\n" +
		"\n" +
		"After 7 days (or sooner if agreed), the escrow agent removes other managers and transfers full ownership to the buyer.\n" +
		"\n" +
		"The funds are then released to the seller. Payments are sent instantly via all major payment methods."
	assert.Equal(t, want, text)
}

func TestPaymentMethodLabel(t *testing.T) {
	assert.Equal(t, "Stripe", PaymentMethodLabel("stripe"))
	assert.Equal(t, "Bitcoin", PaymentMethodLabel("bitcoin"))
	assert.Equal(t, "Bitcoin", PaymentMethodLabel(""))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "120", FormatPrice(120))
	assert.Equal(t, "99.5", FormatPrice(99.5))
	assert.Equal(t, "0", FormatPrice(0))
}

func TestEscrowSummary(t *testing.T) {
	assert.Equal(t, "🔒 Request to Purchase Tech Channel", EscrowSummary("Tech Channel"))
}
