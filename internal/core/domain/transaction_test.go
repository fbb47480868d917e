package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/famledger/family_finance_app/internal/core/domain"
)

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		categoryType domain.CategoryType
		want         string
	}{
		{name: "expense stored negative", amount: "50", categoryType: domain.Expense, want: "-50"},
		{name: "income stored positive", amount: "2000", categoryType: domain.Income, want: "2000"},
		{name: "negative expense input normalized", amount: "-50", categoryType: domain.Expense, want: "-50"},
		{name: "negative income input normalized", amount: "-75.25", categoryType: domain.Income, want: "75.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			assert.NoError(t, err)
			want, err := decimal.NewFromString(tt.want)
			assert.NoError(t, err)

			got := domain.SignedAmount(amount, tt.categoryType)
			assert.True(t, got.Equal(want), "got %s, want %s", got, want)
		})
	}
}
