package payment

// Payment is the reference produced by the payment provider at checkout.
// The client never inspects it beyond passing it along with the new order.
type Payment struct {
	TransactionID string  `json:"transaction"`
	Provider      string  `json:"provider"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}
