package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/gotransfers/internal/domain"
)

// CurrencyConverter converts amounts between supported currencies using the
// reference currency as the pivot.
type CurrencyConverter struct {
	rates RateSource
}

// NewCurrencyConverter creates a new CurrencyConverter.
func NewCurrencyConverter(rates RateSource) *CurrencyConverter {
	return &CurrencyConverter{rates: rates}
}

// Convert converts amount from one currency to another.
//
// The four-way case split over the reference currency is an observable
// contract, including the half-up 2-decimal rounding on the
// reference-to-foreign leg:
//
//	ref  -> ref:  identity
//	from -> to:   amount * rate(from) / rate(to)   (neither is the reference)
//	ref  -> to:   amount / rate(to), rounded half-up to 2 decimals
//	from -> ref:  amount * rate(from)
func (c *CurrencyConverter) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	switch {
	case from == domain.ReferenceCurrency && to == domain.ReferenceCurrency:
		return amount, nil

	case from != domain.ReferenceCurrency && to != domain.ReferenceCurrency:
		rateFrom, err := c.rates.Rate(ctx, from)
		if err != nil {
			return decimal.Decimal{}, err
		}

		rateTo, err := c.rates.Rate(ctx, to)
		if err != nil {
			return decimal.Decimal{}, err
		}

		return amount.Mul(rateFrom.Div(rateTo)), nil

	case from == domain.ReferenceCurrency:
		rateTo, err := c.rates.Rate(ctx, to)
		if err != nil {
			return decimal.Decimal{}, err
		}

		return amount.DivRound(rateTo, 2), nil

	default:
		rateFrom, err := c.rates.Rate(ctx, from)
		if err != nil {
			return decimal.Decimal{}, err
		}

		return amount.Mul(rateFrom), nil
	}
}
