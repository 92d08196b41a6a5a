// Package demand provides the Demand type that subscribers use to authorize
// deliveries from a publisher.
package demand

import (
	"fmt"
	"math"
)

// Demand is the number of notifications a subscriber is willing to receive.
// A Demand is either a finite count or Unlimited. Unlimited is absorbing:
// adding anything to it, or removing one from it, yields Unlimited again.
type Demand uint64

const (
	// None is the zero Demand. Requesting None is a no-op.
	None Demand = 0

	// Unlimited authorizes any number of deliveries.
	Unlimited Demand = math.MaxUint64
)

// Max returns a finite Demand of n. Max panics if n is negative.
func Max(n int) Demand {
	if n < 0 {
		panic(fmt.Errorf("[demand.Max] negative demand: %d", n))
	}
	return Demand(n)
}

// IsUnlimited returns whether d is Unlimited.
func (d Demand) IsUnlimited() bool {
	return d == Unlimited
}

// IsZero returns whether d is None.
func (d Demand) IsZero() bool {
	return d == None
}

// Limit returns the finite count of d. If d is Unlimited, limited is false.
func (d Demand) Limit() (n uint64, limited bool) {
	if d.IsUnlimited() {
		return 0, false
	}
	return uint64(d), true
}

// Add returns the saturating sum of d and other. A sum that would overflow
// becomes Unlimited.
func (d Demand) Add(other Demand) Demand {
	if d.IsUnlimited() || other.IsUnlimited() {
		return Unlimited
	}
	sum := d + other
	if sum < d || sum == Unlimited {
		return Unlimited
	}
	return sum
}

// Dec returns d reduced by one. Unlimited and None are returned unchanged.
func (d Demand) Dec() Demand {
	if d.IsUnlimited() || d.IsZero() {
		return d
	}
	return d - 1
}

func (d Demand) String() string {
	if d.IsUnlimited() {
		return "unlimited"
	}
	return fmt.Sprintf("max(%d)", uint64(d))
}
