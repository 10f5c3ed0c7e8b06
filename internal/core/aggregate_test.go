package core_test

import (
	"testing"

	"desserts-ops/internal/core"

	"github.com/shopspring/decimal"
)

type row struct {
	key    string
	amount decimal.Decimal
}

func TestSumBy(t *testing.T) {
	rows := []row{
		{"cakes", dec("100")},
		{"catering", dec("50")},
		{"cakes", dec("25")},
	}

	got := core.SumBy(rows,
		func(r row) string { return r.key },
		func(r row) decimal.Decimal { return r.amount })

	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(got))
	}
	if !got["cakes"].Equal(dec("125")) {
		t.Errorf("cakes = %s, want 125", got["cakes"])
	}
	if !got["catering"].Equal(dec("50")) {
		t.Errorf("catering = %s, want 50", got["catering"])
	}
	if !core.Total(got).Equal(dec("175")) {
		t.Errorf("total = %s, want 175", core.Total(got))
	}
}

func TestShareOfTotal(t *testing.T) {
	buckets := map[string]decimal.Decimal{
		"a": dec("75"),
		"b": dec("25"),
	}
	shares := core.ShareOfTotal(buckets)
	if !shares["a"].Equal(dec("75")) || !shares["b"].Equal(dec("25")) {
		t.Errorf("shares = %v", shares)
	}

	zero := core.ShareOfTotal(map[string]decimal.Decimal{"a": decimal.Zero})
	if !zero["a"].IsZero() {
		t.Errorf("zero-total share = %s, want 0", zero["a"])
	}
}
