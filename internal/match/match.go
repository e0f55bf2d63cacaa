// Package match decides whether a typed answer should be accepted for a
// target answer string, tolerating small typos in free text while holding
// numeric answers to a stricter standard.
package match

import "strings"

// NumericPolicy controls fuzzy matching between two all-digit strings.
type NumericPolicy int

const (
	// NumericExact rejects any non-exact numeric match ("1912" never
	// matches "1913"). This is the default.
	NumericExact NumericPolicy = iota

	// NumericSameLengthOne additionally accepts a single substituted
	// digit when both strings have the same length. Never accepts an
	// insertion or deletion.
	NumericSameLengthOne
)

// Policy configures answer matching.
type Policy struct {
	Numeric NumericPolicy
}

// DefaultPolicy returns the normative strict-numeric policy.
func DefaultPolicy() Policy {
	return Policy{Numeric: NumericExact}
}

// Normalize prepares a string for comparison: trim whitespace, lower-case.
// A string that is empty after trimming normalizes to "" and is never
// matchable.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsNumeric reports whether s is non-empty and consists only of decimal
// digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Distance returns the Levenshtein distance between a and b with unit
// costs for insertion, deletion, and substitution.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			cost := 1
			if rb[i-1] == ra[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Acceptable reports whether submission should be accepted as a match for
// target. Both must already be normalized and non-empty.
//
// Exact equality always matches. Two numeric strings match only per the
// configured NumericPolicy. A numeric/text type mismatch never
// fuzzy-matches. Two text strings match at distance 1 unconditionally,
// and at distance 2 when the target is longer than 5 characters.
func (p Policy) Acceptable(submission, target string) bool {
	if submission == "" || target == "" {
		return false
	}
	if submission == target {
		return true
	}

	subNumeric := IsNumeric(submission)
	tgtNumeric := IsNumeric(target)

	switch {
	case subNumeric && tgtNumeric:
		if p.Numeric == NumericSameLengthOne && len(submission) == len(target) {
			return Distance(submission, target) == 1
		}
		return false

	case subNumeric != tgtNumeric:
		return false

	default:
		d := Distance(submission, target)
		return d == 1 || (d == 2 && len(target) > 5)
	}
}
