package core

import "github.com/shopspring/decimal"

// SumBy buckets items by key and sums the amount of each bucket. Every
// report in this package is some flavor of this fold; the per-report code
// only supplies the key and amount extractors.
func SumBy[T any, K comparable](items []T, key func(T) K, amount func(T) decimal.Decimal) map[K]decimal.Decimal {
	out := make(map[K]decimal.Decimal, len(items))
	for _, it := range items {
		k := key(it)
		out[k] = out[k].Add(amount(it))
	}
	return out
}

// Total sums all bucket values.
func Total[K comparable](buckets map[K]decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range buckets {
		sum = sum.Add(v)
	}
	return sum
}

// ShareOfTotal returns each bucket's percentage of the grand total,
// rounded to 2 decimals. A zero total yields zero shares.
func ShareOfTotal[K comparable](buckets map[K]decimal.Decimal) map[K]decimal.Decimal {
	total := Total(buckets)
	shares := make(map[K]decimal.Decimal, len(buckets))
	for k, v := range buckets {
		if total.IsZero() {
			shares[k] = decimal.Zero
			continue
		}
		shares[k] = v.Mul(decimal.NewFromInt(100)).Div(total).Round(2)
	}
	return shares
}
