package estate

import (
	"fmt"
	"math"
)

// UnitAllocation is one unit's slice of a property's total IPTU bill.
type UnitAllocation struct {
	UnitID          string  `json:"unit_id"`
	UnitName        string  `json:"unit_name"`
	AreaM2          float64 `json:"area_m2"`
	Share           float64 `json:"share"`
	DiscountedShare float64 `json:"discounted_share"`
}

// AllocateIPTU distributes totalAmount across the units in proportion to
// floor area. Units with a zero or negative area are excluded; if no unit is
// eligible the result is empty, which is not an error. When a non-zero
// single-installment discount is given, the discounted share is computed from
// the reduced total in a single rounding step; otherwise it equals the plain
// share.
//
// Shares are rounded half away from zero to 2 decimal places. Because each
// share is rounded independently, the rounded shares may sum to a few cents
// more or less than totalAmount; the residual is accepted and not pushed onto
// the last unit.
//
// Pure function over its inputs: no storage access, safe for concurrent use.
func AllocateIPTU(units []Unit, totalAmount, discount float64) ([]UnitAllocation, error) {
	if totalAmount <= 0 {
		return nil, fmt.Errorf("%w: total amount must be > 0", ErrInvalidAmount)
	}
	if discount < 0 {
		return nil, fmt.Errorf("%w: discount must be >= 0", ErrInvalidAmount)
	}
	if discount >= totalAmount {
		return nil, fmt.Errorf("%w: discount must be smaller than the total amount", ErrInvalidAmount)
	}

	var totalArea float64
	eligible := make([]Unit, 0, len(units))
	for _, u := range units {
		if u.AreaM2 <= 0 {
			continue
		}
		eligible = append(eligible, u)
		totalArea += u.AreaM2
	}
	if totalArea == 0 {
		return []UnitAllocation{}, nil
	}

	result := make([]UnitAllocation, 0, len(eligible))
	for _, u := range eligible {
		proportion := u.AreaM2 / totalArea
		share := roundCents(totalAmount * proportion)
		discounted := share
		if discount > 0 {
			discounted = roundCents((totalAmount - discount) * proportion)
		}
		result = append(result, UnitAllocation{
			UnitID:          u.ID,
			UnitName:        u.Name,
			AreaM2:          u.AreaM2,
			Share:           share,
			DiscountedShare: discounted,
		})
	}
	return result, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
