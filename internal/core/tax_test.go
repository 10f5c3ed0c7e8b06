package core_test

import (
	"testing"

	"desserts-ops/internal/core"
)

func TestTaxGroup_EffectivePercentage(t *testing.T) {
	tests := []struct {
		name    string
		members []core.TaxGroupMember
		want    string
	}{
		{
			name: "two rates sum additively",
			members: []core.TaxGroupMember{
				{Rate: core.TaxRate{ID: 1, Name: "State 8%", Percentage: dec("8")}, Priority: 0},
				{Rate: core.TaxRate{ID: 2, Name: "City 2%", Percentage: dec("2")}, Priority: 1},
			},
			want: "10",
		},
		{
			name:    "empty group is zero",
			members: nil,
			want:    "0",
		},
		{
			name: "fractional percentages",
			members: []core.TaxGroupMember{
				{Rate: core.TaxRate{Percentage: dec("7.25")}},
				{Rate: core.TaxRate{Percentage: dec("1.5")}},
			},
			want: "8.75",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &core.TaxGroup{Members: tt.members}
			if got := g.EffectivePercentage(); !got.Equal(dec(tt.want)) {
				t.Errorf("EffectivePercentage() = %s, want %s", got, tt.want)
			}
		})
	}
}
