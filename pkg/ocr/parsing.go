package ocr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	centsRE = regexp.MustCompile(`[.,]\d{2}$`)
	// candidate amounts: optional keyword context and currency marker, then
	// grouped or plain digits with an optional two-digit decimal tail
	amountRE = regexp.MustCompile(`(?i)((?:grand\s+)?total|amount\s+due|amount|subtotal|due)?[:\s]*(?:rp|idr|usd|\$|€)?\s*([0-9]{1,3}(?:[.,][0-9]{3})+(?:[.,][0-9]{2})?|[0-9]+(?:[.,][0-9]{2})?)`)
)

// findAmountCandidates scans OCR text for substrings that look like monetary
// amounts, keeping any keyword context so scoring can prefer totals.
func findAmountCandidates(text string) []string {
	var out []string
	for _, m := range amountRE.FindAllStringSubmatch(text, -1) {
		cand := strings.TrimSpace(m[0])
		if cand == "" {
			continue
		}
		out = append(out, cand)
	}
	return out
}

// ParseAmountFromMatch normalizes a matched substring into a currency amount.
// A trailing separator followed by exactly two digits is the decimal part;
// everything before it is the integer part with grouping separators removed
// (10.000,00 -> 10000, 7,500.00 -> 7500, $14.99 -> 14.99).
func ParseAmountFromMatch(found string) (float64, error) {
	foundTrim := strings.TrimSpace(found)
	if foundTrim == "" {
		return 0, fmt.Errorf("empty")
	}
	var digits string
	var cents int64
	if centsRE.MatchString(foundTrim) {
		lastDot := strings.LastIndex(foundTrim, ".")
		lastComma := strings.LastIndex(foundTrim, ",")
		sep := lastDot
		if lastComma > lastDot {
			sep = lastComma
		}
		digits = onlyDigits(foundTrim[:sep])
		cents, _ = strconv.ParseInt(foundTrim[sep+1:], 10, 64)
	} else {
		digits = onlyDigits(foundTrim)
	}
	if digits == "" {
		return 0, fmt.Errorf("no digits extracted from %q", found)
	}
	whole, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", digits, err)
	}
	if whole < 0 {
		whole = -whole
	}
	return float64(whole) + float64(cents)/100, nil
}

// BestAmountFromMatches scores candidates and returns the winner. Candidates
// carrying a total/amount keyword beat bare numbers even when smaller, since
// the largest number on a receipt is often an account or reference id.
func BestAmountFromMatches(matches []string) (float64, string, bool) {
	var (
		bestAmt   float64
		bestRaw   string
		bestScore float64
	)
	for _, raw := range matches {
		if !isPlausibleAmount(raw) {
			continue
		}
		amt, err := ParseAmountFromMatch(raw)
		if err != nil || amt <= 0 {
			continue
		}
		score := 1.0
		low := strings.ToLower(raw)
		if strings.Contains(low, "total") || strings.Contains(low, "amount") || strings.Contains(low, "due") {
			score += 2.0
		}
		if strings.ContainsAny(raw, ".,") {
			score += 0.5
		}
		if score > bestScore || (score == bestScore && amt > bestAmt) {
			bestScore = score
			bestAmt = amt
			bestRaw = raw
		}
	}
	return bestAmt, bestRaw, bestAmt > 0
}

// isPlausibleAmount applies lightweight heuristics to decide whether a
// matched substring likely represents money rather than a phone number,
// transaction id, or timestamp. Conservative: prefer currency hints or
// grouping separators, reject long digit runs and leading zeros.
func isPlausibleAmount(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	low := strings.ToLower(s)
	if strings.Contains(low, "rp") || strings.Contains(low, "idr") || strings.ContainsAny(s, "$€") {
		return true
	}
	d := onlyDigits(s)
	if d == "" || d[0] == '0' {
		return false
	}
	if strings.ContainsAny(s, ".,") {
		return len(d) >= 3
	}
	if len(d) > 7 || len(d) < 2 {
		return false
	}
	return true
}

// onlyDigits extracts decimal digits from a string.
func onlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// normalizeOCRText collapses whitespace and replaces newlines/tabs.
func normalizeOCRText(t string) string {
	t = strings.ReplaceAll(t, "\n", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	return strings.Join(strings.Fields(t), " ")
}
