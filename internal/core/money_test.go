package core_test

import (
	"testing"

	"desserts-ops/internal/core"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     string
	}{
		{"plain USD", "24.00", "USD", "$24.00"},
		{"rounds at display only", "3.8415", "USD", "$3.84"},
		{"half rounds up", "2.005", "USD", "$2.01"},
		{"thousands separator", "1234567.8", "USD", "$1,234,567.80"},
		{"MXN symbol", "150", "MXN", "MX$150.00"},
		{"negative", "-42.5", "USD", "-$42.50"},
		{"unknown currency falls back to code", "9.99", "CAD", "CAD 9.99"},
		{"negative unknown currency", "-1", "CAD", "CAD -1.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.FormatMoney(dec(tt.amount), tt.currency); got != tt.want {
				t.Errorf("FormatMoney(%s, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}
