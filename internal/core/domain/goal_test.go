package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/famledger/family_finance_app/internal/core/domain"
)

func TestGoalStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		saved  int64
		target int64
		want   domain.GoalStatus
	}{
		{name: "nothing saved", saved: 0, target: 500, want: domain.GoalPending},
		{name: "partially funded", saved: 1, target: 500, want: domain.GoalInProgress},
		{name: "just below target", saved: 499, target: 500, want: domain.GoalInProgress},
		{name: "exactly at target", saved: 500, target: 500, want: domain.GoalCompleted},
		{name: "over target", saved: 600, target: 500, want: domain.GoalCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.GoalStatusFor(decimal.NewFromInt(tt.saved), decimal.NewFromInt(tt.target))
			assert.Equal(t, tt.want, got)
		})
	}
}
