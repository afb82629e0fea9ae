package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/gotransfers/internal/domain"
	"github.com/iho/gotransfers/internal/usecase"
	"github.com/iho/gotransfers/internal/usecase/mocks"
)

func TestCurrencyConverter_Convert(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		from       string
		to         string
		setupRates func(*mocks.MockRateSource)
		expected   string
	}{
		{
			name:       "same currency is identity",
			amount:     "150.55",
			from:       domain.CurrencyRUB,
			to:         domain.CurrencyRUB,
			setupRates: func(rs *mocks.MockRateSource) {},
			expected:   "150.55",
		},
		{
			name:   "reference to foreign divides by target rate",
			amount: "1000",
			from:   domain.CurrencyRUB,
			to:     domain.CurrencyUSD,
			setupRates: func(rs *mocks.MockRateSource) {
				rs.EXPECT().Rate(gomock.Any(), domain.CurrencyUSD).Return(decimal.RequireFromString("90"), nil)
			},
			expected: "11.11",
		},
		{
			name:   "reference to foreign rounds half up",
			amount: "100",
			from:   domain.CurrencyRUB,
			to:     domain.CurrencyUSD,
			setupRates: func(rs *mocks.MockRateSource) {
				rs.EXPECT().Rate(gomock.Any(), domain.CurrencyUSD).Return(decimal.RequireFromString("32"), nil)
			},
			// 100/32 = 3.125, rounds to 3.13
			expected: "3.13",
		},
		{
			name:   "foreign to reference multiplies by source rate",
			amount: "10",
			from:   domain.CurrencyUSD,
			to:     domain.CurrencyRUB,
			setupRates: func(rs *mocks.MockRateSource) {
				rs.EXPECT().Rate(gomock.Any(), domain.CurrencyUSD).Return(decimal.RequireFromString("90.5"), nil)
			},
			expected: "905",
		},
		{
			name:   "foreign to foreign pivots through reference",
			amount: "100",
			from:   domain.CurrencyUSD,
			to:     domain.CurrencyBYN,
			setupRates: func(rs *mocks.MockRateSource) {
				rs.EXPECT().Rate(gomock.Any(), domain.CurrencyUSD).Return(decimal.RequireFromString("90"), nil)
				rs.EXPECT().Rate(gomock.Any(), domain.CurrencyBYN).Return(decimal.RequireFromString("30"), nil)
			},
			expected: "300",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rates := mocks.NewMockRateSource(ctrl)
			tt.setupRates(rates)

			conv := usecase.NewCurrencyConverter(rates)
			got, err := conv.Convert(context.Background(), decimal.RequireFromString(tt.amount), tt.from, tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got.String())
			}
		})
	}
}

func TestCurrencyConverter_RateUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	rates := mocks.NewMockRateSource(ctrl)
	rates.EXPECT().Rate(gomock.Any(), domain.CurrencyUSD).Return(decimal.Zero, domain.ErrRateUnavailable)

	conv := usecase.NewCurrencyConverter(rates)
	_, err := conv.Convert(context.Background(), decimal.NewFromInt(100), domain.CurrencyUSD, domain.CurrencyRUB)
	if !errors.Is(err, domain.ErrRateUnavailable) {
		t.Errorf("expected ErrRateUnavailable, got %v", err)
	}
}
