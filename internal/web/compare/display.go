// Package compare derives the side-by-side comparison view from two loaded
// products: the merged feature table with relative quality markers, the
// per-product storefront grid with best-price highlighting, and the resolved
// recommendation.
package compare

import (
	"strconv"
	"strings"

	"productcompare.org/web/internal/web/backend"
)

// Verdict marks one side of a comparison row relative to the other.
type Verdict string

const (
	// VerdictNone applies when the pair is not numerically comparable or equal.
	VerdictNone Verdict = ""
	// VerdictBetter marks the side with the strictly greater numeric value.
	VerdictBetter Verdict = "better"
	// VerdictWorse marks the other side.
	VerdictWorse Verdict = "worse"
)

// AsDisplay renders a product feature for one table cell. An absent feature
// shows as "-"; a feature with both a value and a price shows
// "value (price: price)"; a price without a value keeps its "price:" label.
func AsDisplay(feature *backend.ProductFeature) string {
	if feature == nil {
		return "-"
	}
	value := strings.TrimSpace(feature.Value)
	price := strings.TrimSpace(feature.Price)
	switch {
	case value == "" && price == "":
		return "-"
	case value != "" && price != "":
		return value + " (price: " + price + ")"
	case value != "":
		return value
	default:
		return "price: " + price
	}
}

// ParseNumeric extracts the first numeric run from a display string: every
// character that is not a digit or a dot becomes a space, and the first
// whitespace-delimited token is parsed as a float. The parse takes the longest
// valid leading prefix, so "1.2.3" reads as 1.2.
func ParseNumeric(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	fields := strings.Fields(b.String())
	if len(fields) == 0 {
		return 0, false
	}
	return parseLeadingFloat(fields[0])
}

func parseLeadingFloat(token string) (float64, bool) {
	end := 0
	seenDigit := false
	seenDot := false
	for i, r := range token {
		if r == '.' {
			if seenDot {
				break
			}
			seenDot = true
			end = i + 1
			continue
		}
		seenDigit = true
		end = i + 1
	}
	if !seenDigit {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(token[:end], 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// ComparePair rates two display strings against each other. When either side
// has no extractable number, or the numbers are equal, neither side is marked.
// The rule is a syntactic magnitude comparison: the greater number is always
// "better", whatever the feature means.
func ComparePair(left, right string) (Verdict, Verdict) {
	leftNumber, leftOK := ParseNumeric(left)
	rightNumber, rightOK := ParseNumeric(right)
	if !leftOK || !rightOK || leftNumber == rightNumber {
		return VerdictNone, VerdictNone
	}
	if leftNumber > rightNumber {
		return VerdictBetter, VerdictWorse
	}
	return VerdictWorse, VerdictBetter
}
