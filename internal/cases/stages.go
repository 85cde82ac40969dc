package cases

import (
	"os"
	"strings"
)

// DefaultStages is the ordered pipeline. The sequence is extensible: new
// stages may be appended, and stage membership is never enforced on writes.
var DefaultStages = []string{
	"Contact",
	"Pre-IC",
	"Doc collection",
	"Analysis",
	"ID call",
	"DIP",
	"Property search",
	"Property found",
	"FMA prep",
	"FMA",
	"Valuation",
	"Bank underwriter process",
	"Offer",
	"SL doc",
	"Rate Change",
	"Exchange",
	"Completion",
	"REMO",
}

// StagesFromEnv returns the configured stage sequence. CASE_STAGES is a
// comma-separated override; empty entries are skipped.
func StagesFromEnv() []string {
	raw := os.Getenv("CASE_STAGES")
	if strings.TrimSpace(raw) == "" {
		return DefaultStages
	}
	var stages []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			stages = append(stages, s)
		}
	}
	if len(stages) == 0 {
		return DefaultStages
	}
	return stages
}
