package cases

import (
	"testing"
	"time"

	"github.com/hfpartners/case-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestColumnFiltersByExactStatus(t *testing.T) {
	all := []models.Case{
		{ID: 1, Status: "Contact"},
		{ID: 2, Status: "Analysis"},
		{ID: 3, Status: "contact"},
		{ID: 4, Status: "Contact"},
	}

	got := Column(all, "Contact", date(2024, time.June, 12))
	ids := caseIDs(got)
	assert.Equal(t, []uint{1, 4}, ids)
}

func TestColumnOrdersOverdueFirstThenByOffsetThenNoDeadlineLast(t *testing.T) {
	now := date(2024, time.June, 12)
	all := []models.Case{
		{ID: 1, Status: "DIP", Deadline: nil},
		{ID: 2, Status: "DIP", Deadline: ptr(date(2024, time.June, 12))}, // today
		{ID: 3, Status: "DIP", Deadline: ptr(date(2024, time.June, 10))}, // overdue
		{ID: 4, Status: "DIP", Deadline: ptr(date(2024, time.June, 20))},
		{ID: 5, Status: "DIP", Deadline: ptr(date(2024, time.June, 11))}, // overdue, nearer
	}

	got := Column(all, "DIP", now)
	assert.Equal(t, []uint{3, 5, 2, 4, 1}, caseIDs(got))
}

func TestColumnSortIsStable(t *testing.T) {
	now := date(2024, time.June, 12)
	deadline := ptr(date(2024, time.June, 14))
	all := []models.Case{
		{ID: 10, Status: "Offer", Deadline: deadline},
		{ID: 11, Status: "Offer", Deadline: deadline},
		{ID: 12, Status: "Offer"},
		{ID: 13, Status: "Offer"},
	}

	got := Column(all, "Offer", now)
	assert.Equal(t, []uint{10, 11, 12, 13}, caseIDs(got))
}

func caseIDs(list []models.Case) []uint {
	ids := make([]uint, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	return ids
}
