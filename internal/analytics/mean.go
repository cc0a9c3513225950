package analytics

import "hoopsight/pkg/contracts/domain"

// meanAcc accumulates an arithmetic mean.
type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v float64) {
	a.sum += v
	a.n++
}

// addNullable only counts cells that resolved to a number, matching the rule
// that a mean is taken over defined values only.
func (a *meanAcc) addNullable(v domain.NullFloat) {
	if v.Valid {
		a.add(v.Float64)
	}
}

func (a *meanAcc) mean() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}

// nullableMean reports null when no cell ever resolved, so empty groups stay
// distinguishable from groups that genuinely average to zero.
func (a *meanAcc) nullableMean() domain.NullFloat {
	if a.n == 0 {
		return domain.Null()
	}
	return domain.Float(a.mean())
}
