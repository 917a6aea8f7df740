// Package ocr extracts monetary amounts from receipt images using Tesseract
// with light image preprocessing.
package ocr

import (
	"fmt"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// ExtractAmountFromImage runs preprocessing + Tesseract on the image at path
// and attempts to pick out the receipt's amount. The second return value is a
// rough confidence in [0,1]; the third is the raw matched substring. Returns
// ErrNoAmount when nothing plausible is found.
func ExtractAmountFromImage(path string) (float64, float64, string, error) {
	pre, err := preprocessImage(path)
	if err != nil {
		// fall back to the raw image; Tesseract often copes
		pre = path
	} else {
		defer os.Remove(pre)
	}

	client := gosseract.NewClient()
	defer client.Close()
	if err := client.SetImage(pre); err != nil {
		return 0, 0, "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return 0, 0, "", fmt.Errorf("tesseract: %w", err)
	}
	text = normalizeOCRText(text)

	matches := findAmountCandidates(text)
	amt, raw, ok := BestAmountFromMatches(matches)
	if !ok {
		return 0, 0, "", ErrNoAmount
	}
	return amt, confidence(raw, len(matches)), raw, nil
}

// confidence is a rough heuristic, not a calibrated probability: keyword
// context and grouping separators are the strongest signals we have.
func confidence(raw string, candidates int) float64 {
	conf := 0.2
	low := strings.ToLower(raw)
	if strings.Contains(low, "total") || strings.Contains(low, "amount") {
		conf += 0.4
	}
	if strings.ContainsAny(raw, ".,") {
		conf += 0.2
	}
	if candidates == 1 {
		conf += 0.1
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}
