package util

import (
    "testing"
    "time"
)

func TestParseDateISO(t *testing.T) {
    got, ok := ParseDate("2024-10-10")
    if !ok {
        t.Fatalf("expected ok")
    }
    if !got.Equal(time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)) {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseDateDropsTimePart(t *testing.T) {
    got, ok := ParseDate("2024-10-10T10:10:10Z")
    if !ok {
        t.Fatalf("expected ok")
    }
    if FormatDate(got) != "2024-10-10" {
        t.Fatalf("unexpected date %v", got)
    }
}

func TestParseDateDropsSpaceSeparatedTime(t *testing.T) {
    for _, s := range []string{"2024-01-31 00:00:00", "2024-01-31 23:59:59.123", " 2024-01-31 00:00 "} {
        got, ok := ParseDate(s)
        if !ok {
            t.Fatalf("expected %q to parse", s)
        }
        if FormatDate(got) != "2024-01-31" {
            t.Fatalf("unexpected date %v for %q", got, s)
        }
    }
}

func TestParseDateInvalid(t *testing.T) {
    for _, s := range []string{"", "yesterday", "2024-02-31", "10/10/2024", "2024-1-31 00:00"} {
        if _, ok := ParseDate(s); ok {
            t.Fatalf("expected %q to be rejected", s)
        }
    }
}
