package payments

import (
	"context"

	stripe "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// IntentCreator creates a payment intent and returns its client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
}

// StripeClient implements IntentCreator against the Stripe API.
type StripeClient struct {
	api *client.API
}

func NewStripe(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

// CreateIntent creates a USD card payment intent for the given price in
// dollars.
func (c *StripeClient) CreateIntent(ctx context.Context, price float64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(int64(price * 100)),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}
