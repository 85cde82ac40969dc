package cases

import (
	"math"
	"sort"
	"time"

	"github.com/hfpartners/case-api/internal/models"
)

// Column filters the collection down to one board column and orders it for
// display: overdue cases first, then ascending days-until-deadline, cases
// without a deadline last. The sort is stable, so ties keep input order.
func Column(all []models.Case, column string, now time.Time) []models.Case {
	today := localDate(now)

	var out []models.Case
	for _, c := range all {
		if c.Status == column {
			out = append(out, c)
		}
	}

	offset := func(c models.Case) float64 {
		if c.Deadline == nil {
			return math.Inf(1)
		}
		return deadlineDate(*c.Deadline).Sub(today).Hours() / 24
	}
	overdue := func(c models.Case) bool {
		return c.Deadline != nil && deadlineDate(*c.Deadline).Before(today)
	}

	sort.SliceStable(out, func(i, j int) bool {
		oi, oj := overdue(out[i]), overdue(out[j])
		if oi != oj {
			return oi
		}
		return offset(out[i]) < offset(out[j])
	})
	return out
}
