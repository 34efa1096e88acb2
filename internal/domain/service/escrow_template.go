package service

import (
	"embed"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"
)

// EscrowTemplateVersion names the disclosure text sent with every escrow request.
const EscrowTemplateVersion = "v1"

//go:embed templates/escrow_request_v1.txt
var escrowTemplates embed.FS

var escrowRequestTemplate = mustLoadTemplate("templates/escrow_request_" + EscrowTemplateVersion + ".txt")

func mustLoadTemplate(name string) *fasttemplate.Template {
	raw, err := escrowTemplates.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return fasttemplate.New(strings.TrimRight(string(raw), "\n"), "{{", "}}")
}

const (
	PaymentMethodStripe  = "stripe"
	PaymentMethodBitcoin = "bitcoin"
)

type EscrowRequest struct {
	ProductName   string
	TransactionID int64
	Price         float64
	PaymentMethod string
}

// PaymentMethodLabel is the human label of a payment method. Anything but stripe is Bitcoin.
func PaymentMethodLabel(method string) string {
	if method == PaymentMethodStripe {
		return "Stripe"
	}
	return "Bitcoin"
}

// FormatPrice renders a price with the fewest digits that represent it (120, 99.5).
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// ComposeEscrowRequest renders the full escrow request message.
func ComposeEscrowRequest(req EscrowRequest) string {
	return escrowRequestTemplate.ExecuteString(map[string]interface{}{
		"product_name":   req.ProductName,
		"transaction_id": strconv.FormatInt(req.TransactionID, 10),
		"price":          FormatPrice(req.Price),
		"payment_method": PaymentMethodLabel(req.PaymentMethod),
	})
}

// EscrowSummary is the one-line preview stored as a chat's last message.
func EscrowSummary(productName string) string {
	return "🔒 Request to Purchase " + productName
}
