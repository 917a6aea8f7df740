package ocr

import "testing"

func TestParseAmountGroupedWithDecimalTail(t *testing.T) {
	amt, err := ParseAmountFromMatch("10.000,00")
	if err != nil || amt != 10000 {
		t.Fatalf("expected 10000 got %v err=%v", amt, err)
	}
	amt2, err2 := ParseAmountFromMatch("7,500.00")
	if err2 != nil || amt2 != 7500 {
		t.Fatalf("expected 7500 got %v err=%v", amt2, err2)
	}
}

func TestParseAmountKeepsFractionalPart(t *testing.T) {
	amt, err := ParseAmountFromMatch("$14.99")
	if err != nil || amt != 14.99 {
		t.Fatalf("expected 14.99 got %v err=%v", amt, err)
	}
	amt2, err2 := ParseAmountFromMatch("1.250,75")
	if err2 != nil || amt2 != 1250.75 {
		t.Fatalf("expected 1250.75 got %v err=%v", amt2, err2)
	}
}

func TestParseAmountPlainGrouped(t *testing.T) {
	amt, err := ParseAmountFromMatch("1.250.000")
	if err != nil || amt != 1250000 {
		t.Fatalf("expected 1250000 got %v err=%v", amt, err)
	}
}

func TestBestAmountTotalPriority(t *testing.T) {
	// 50.000 is larger, but TOTAL 40.000 should win due to the keyword boost.
	matches := []string{"Rp50.000", "TOTAL Rp40.000"}
	amt, raw, ok := BestAmountFromMatches(matches)
	if !ok {
		t.Fatalf("no amount chosen")
	}
	if amt != 40000 {
		t.Fatalf("expected 40000 (TOTAL) got %v raw=%s", amt, raw)
	}
}

func TestBestAmountRejectsImplausible(t *testing.T) {
	// phone-number-like and zero-led strings must not win
	matches := []string{"081234567890", "0500"}
	if _, _, ok := BestAmountFromMatches(matches); ok {
		t.Fatalf("expected no plausible amount")
	}
}

func TestFindAmountCandidates(t *testing.T) {
	text := normalizeOCRText("CORNER CAFE\nsubtotal 12.50\nTOTAL $14.99\nref 9912834\n")
	cands := findAmountCandidates(text)
	if len(cands) == 0 {
		t.Fatalf("expected candidates from %q", text)
	}
	amt, raw, ok := BestAmountFromMatches(cands)
	if !ok || amt != 14.99 {
		t.Fatalf("expected 14.99 got %v (raw=%q ok=%v)", amt, raw, ok)
	}
}
