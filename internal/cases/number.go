package cases

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Case numbers look like HF-0042. Older records carry a C- prefix; both are
// accepted when extracting the numeric suffix.
var caseNumberPattern = regexp.MustCompile(`^(?:HF|C)-(\d+)$`)

const defaultNumberPrefix = "HF"

func numberPrefix() string {
	if p := strings.TrimSpace(os.Getenv("CASE_NUMBER_PREFIX")); p != "" {
		return p
	}
	return defaultNumberPrefix
}

// NextCaseNumber derives the next human-readable case number from the most
// recently assigned one. This is a best-effort sequence, not a unique
// counter: concurrent creations can produce duplicates.
func NextCaseNumber(latest string) string {
	next := 1
	if m := caseNumberPattern.FindStringSubmatch(strings.TrimSpace(latest)); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s-%04d", numberPrefix(), next)
}
