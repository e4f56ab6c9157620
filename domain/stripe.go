package domain

// PaymentIntent is the subset of the payment provider's intent object the
// checkout flow needs: the intent id for cancellation and the client
// secret handed to the frontend for confirmation.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}
