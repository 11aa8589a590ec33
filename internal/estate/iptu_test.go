package estate

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestAllocateIPTUWorkedExample(t *testing.T) {
	units := []Unit{
		{ID: "u1", Name: "Loja 1", AreaM2: 100},
		{ID: "u2", Name: "Loja 2", AreaM2: 300},
	}
	result, err := AllocateIPTU(units, 400.00, 0)
	if err != nil {
		t.Fatalf("AllocateIPTU: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(result))
	}
	if result[0].Share != 100.00 || result[1].Share != 300.00 {
		t.Fatalf("unexpected shares: %v / %v", result[0].Share, result[1].Share)
	}
	// No discount: discounted share equals the plain share.
	if result[0].DiscountedShare != 100.00 || result[1].DiscountedShare != 300.00 {
		t.Fatalf("unexpected discounted shares: %v / %v", result[0].DiscountedShare, result[1].DiscountedShare)
	}
}

func TestAllocateIPTUWorkedExampleWithDiscount(t *testing.T) {
	units := []Unit{
		{ID: "u1", Name: "Loja 1", AreaM2: 100},
		{ID: "u2", Name: "Loja 2", AreaM2: 300},
	}
	result, err := AllocateIPTU(units, 1000.00, 100.00)
	if err != nil {
		t.Fatalf("AllocateIPTU: %v", err)
	}
	if result[0].Share != 250.00 || result[1].Share != 750.00 {
		t.Fatalf("unexpected shares: %v / %v", result[0].Share, result[1].Share)
	}
	if result[0].DiscountedShare != 225.00 {
		t.Fatalf("unit 1 discounted share: got %v, want 225.00", result[0].DiscountedShare)
	}
	if result[1].DiscountedShare != 675.00 {
		t.Fatalf("unit 2 discounted share: got %v, want 675.00", result[1].DiscountedShare)
	}
}

func TestAllocateIPTUExcludesIneligibleUnits(t *testing.T) {
	units := []Unit{
		{ID: "u1", Name: "Sala", AreaM2: 50},
		{ID: "u2", Name: "Depósito", AreaM2: 0},
		{ID: "u3", Name: "Anexo", AreaM2: -10},
		{ID: "u4", Name: "Galpão", AreaM2: 150},
	}
	result, err := AllocateIPTU(units, 200.00, 0)
	if err != nil {
		t.Fatalf("AllocateIPTU: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 eligible units, got %d", len(result))
	}
	// Iteration order of the eligible units is preserved.
	if result[0].UnitID != "u1" || result[1].UnitID != "u4" {
		t.Fatalf("unexpected order: %s, %s", result[0].UnitID, result[1].UnitID)
	}
	if result[0].Share != 50.00 || result[1].Share != 150.00 {
		t.Fatalf("unexpected shares: %v / %v", result[0].Share, result[1].Share)
	}
}

func TestAllocateIPTUDegenerateInput(t *testing.T) {
	cases := [][]Unit{
		nil,
		{},
		{{ID: "u1", AreaM2: 0}, {ID: "u2", AreaM2: 0}},
	}
	for i, units := range cases {
		result, err := AllocateIPTU(units, 500.00, 0)
		if err != nil {
			t.Fatalf("case %d: degenerate input must not error: %v", i, err)
		}
		if len(result) != 0 {
			t.Fatalf("case %d: expected empty result, got %d entries", i, len(result))
		}
	}
}

func TestAllocateIPTUInvalidAmounts(t *testing.T) {
	units := []Unit{{ID: "u1", AreaM2: 100}}
	cases := []struct {
		total, discount float64
	}{
		{0, 0},
		{-100, 0},
		{100, -1},
		{100, 100},
		{100, 150},
	}
	for i, c := range cases {
		if _, err := AllocateIPTU(units, c.total, c.discount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("case %d: expected ErrInvalidAmount, got %v", i, err)
		}
	}
}

func TestAllocateIPTUSumAndProportionality(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rnd.Intn(12)
		units := make([]Unit, n)
		for i := range units {
			units[i] = Unit{ID: string(rune('a' + i)), AreaM2: 1 + rnd.Float64()*500}
		}
		total := 10 + rnd.Float64()*100000

		result, err := AllocateIPTU(units, total, 0)
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}

		// Rounded shares sum to the total within 0.01 per unit.
		var sum float64
		for _, r := range result {
			sum += r.Share
		}
		if math.Abs(sum-total) > 0.01*float64(n) {
			t.Fatalf("trial %d: shares sum %v too far from total %v", trial, sum, total)
		}

		// Each share stays within half a cent of the exact proportional
		// value, which is proportionality up to rounding.
		var totalArea float64
		for _, u := range units {
			totalArea += u.AreaM2
		}
		for _, r := range result {
			exact := total * r.AreaM2 / totalArea
			if math.Abs(r.Share-exact) > 0.005+1e-9 {
				t.Fatalf("trial %d: share %v deviates from exact %v", trial, r.Share, exact)
			}
		}
	}
}

func TestRoundCentsHalfAwayFromZero(t *testing.T) {
	cases := map[float64]float64{
		1.006:  1.01,
		1.004:  1.00,
		2.678:  2.68,
		0.375:  0.38,
		-0.375: -0.38,
		-1.006: -1.01,
	}
	for in, want := range cases {
		if got := roundCents(in); got != want {
			t.Fatalf("roundCents(%v)=%v, want %v", in, got, want)
		}
	}
}
