package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAccountName(t *testing.T) {
	tests := []struct {
		name        string
		accountName string
		expectError bool
	}{
		{name: "valid name", accountName: "Dealership Checking"},
		{name: "empty name", accountName: "", expectError: true},
		{name: "whitespace only", accountName: "   ", expectError: true},
		{name: "too long", accountName: strings.Repeat("a", 256), expectError: true},
		{name: "max length", accountName: strings.Repeat("a", 255)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccountName(tt.accountName)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateMovementAmount(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		expectError bool
	}{
		{name: "positive amount", amount: decimal.NewFromInt(100)},
		{name: "zero amount", amount: decimal.Zero, expectError: true},
		{name: "negative amount", amount: decimal.NewFromInt(-1), expectError: true},
		{name: "above maximum", amount: decimal.NewFromInt(1000000001), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMovementAmount(tt.amount)

			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name           string
		limit          int
		offset         int
		expectedLimit  int
		expectedOffset int
	}{
		{name: "defaults applied", limit: 0, offset: 0, expectedLimit: 50, expectedOffset: 0},
		{name: "limit capped", limit: 5000, offset: 10, expectedLimit: 1000, expectedOffset: 10},
		{name: "negative offset reset", limit: 20, offset: -5, expectedLimit: 20, expectedOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset, err := ValidatePagination(tt.limit, tt.offset)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if limit != tt.expectedLimit {
				t.Errorf("expected limit %d, got %d", tt.expectedLimit, limit)
			}

			if offset != tt.expectedOffset {
				t.Errorf("expected offset %d, got %d", tt.expectedOffset, offset)
			}
		})
	}
}
