package cases

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextCaseNumber(t *testing.T) {
	tests := []struct {
		latest string
		want   string
	}{
		{"HF-0007", "HF-0008"},
		{"HF-0099", "HF-0100"},
		{"HF-9999", "HF-10000"},
		{"C-0012", "HF-0013"},
		{"", "HF-0001"},
		{"not-a-number", "HF-0001"},
		{"XX-0042", "HF-0001"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextCaseNumber(tt.latest), "latest %q", tt.latest)
	}
}

func TestNextCaseNumberPrefixOverride(t *testing.T) {
	t.Setenv("CASE_NUMBER_PREFIX", "ZZ")
	assert.Equal(t, "ZZ-0008", NextCaseNumber("HF-0007"))
}
