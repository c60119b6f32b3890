package util

import (
	"testing"
	"time"
)

func TestFormatDatePtBR(t *testing.T) {
	f := MustFormatter("pt-BR")
	got := f.FormatDate(time.Date(2025, 2, 23, 10, 0, 0, 0, time.UTC))
	if got != "23/02/2025" {
		t.Fatalf("unexpected date %q", got)
	}
}

func TestFormatDateEnUS(t *testing.T) {
	f := MustFormatter("en-US")
	got := f.FormatDate(time.Date(2025, 2, 23, 10, 0, 0, 0, time.UTC))
	if got != "02/23/2025" {
		t.Fatalf("unexpected date %q", got)
	}
}

func TestFormatClock(t *testing.T) {
	got := FormatClock(time.Date(2025, 2, 23, 9, 5, 59, 0, time.UTC))
	if got != "09:05" {
		t.Fatalf("unexpected clock %q", got)
	}
}
