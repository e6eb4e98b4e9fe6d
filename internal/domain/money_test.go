package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplitEven(t *testing.T) {
	tests := []struct {
		name        string
		total       decimal.Decimal
		n           int
		expectParts []string
		expectError bool
	}{
		{
			name:        "exact division",
			total:       decimal.NewFromInt(300),
			n:           3,
			expectParts: []string{"100", "100", "100"},
		},
		{
			name:        "last part absorbs remainder",
			total:       decimal.NewFromInt(10),
			n:           3,
			expectParts: []string{"3.33", "3.33", "3.34"},
		},
		{
			name:        "single part",
			total:       decimal.NewFromFloat(123.45),
			n:           1,
			expectParts: []string{"123.45"},
		},
		{
			name:        "zero total",
			total:       decimal.Zero,
			n:           4,
			expectParts: []string{"0", "0", "0", "0"},
		},
		{
			name:        "reject zero parts",
			total:       decimal.NewFromInt(100),
			n:           0,
			expectError: true,
		},
		{
			name:        "reject negative parts",
			total:       decimal.NewFromInt(100),
			n:           -2,
			expectError: true,
		},
		{
			name:        "reject negative total",
			total:       decimal.NewFromInt(-100),
			n:           2,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := SplitEven(tt.total, tt.n)

			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if err != ErrInvalidAmount {
					t.Errorf("expected ErrInvalidAmount, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(parts) != len(tt.expectParts) {
				t.Fatalf("expected %d parts, got %d", len(tt.expectParts), len(parts))
			}

			sum := decimal.Zero
			for i, part := range parts {
				expected, _ := decimal.NewFromString(tt.expectParts[i])
				if !part.Equal(expected) {
					t.Errorf("part %d: expected %s, got %s", i, expected, part)
				}

				sum = sum.Add(part)
			}

			if !sum.Equal(tt.total) {
				t.Errorf("parts sum to %s, expected %s", sum, tt.total)
			}
		})
	}
}

func TestSplitEven_SumInvariant(t *testing.T) {
	// The parts must reconstruct the total exactly for awkward totals too.
	totals := []string{"0.01", "0.02", "999999.99", "1.00", "33.34"}
	for _, s := range totals {
		total, _ := decimal.NewFromString(s)
		for n := 1; n <= 12; n++ {
			parts, err := SplitEven(total, n)
			if err != nil {
				t.Fatalf("SplitEven(%s, %d): %v", s, n, err)
			}

			sum := decimal.Zero
			for _, p := range parts {
				sum = sum.Add(p)
			}

			if !sum.Equal(total) {
				t.Errorf("SplitEven(%s, %d): parts sum to %s", s, n, sum)
			}
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		percentage string
		expected   string
	}{
		{name: "sixty percent", amount: "50000", percentage: "60", expected: "30000"},
		{name: "forty percent", amount: "50000", percentage: "40", expected: "20000"},
		{name: "rounds to minor unit", amount: "100", percentage: "33.333", expected: "33.33"},
		{name: "zero percent", amount: "100", percentage: "0", expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, _ := decimal.NewFromString(tt.amount)
			percentage, _ := decimal.NewFromString(tt.percentage)
			expected, _ := decimal.NewFromString(tt.expected)

			got := Percent(amount, percentage)
			if !got.Equal(expected) {
				t.Errorf("expected %s, got %s", expected, got)
			}
		})
	}
}
