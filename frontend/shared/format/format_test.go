package format

import (
	"testing"
	"time"
)

func TestBRL(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{5.49, "R$ 5,49"},
		{9.9, "R$ 9,90"},
		{25, "R$ 25,00"},
		{1234.56, "R$ 1.234,56"},
		{1234567.89, "R$ 1.234.567,89"},
		{-12.5, "-R$ 12,50"},
		{0.1 + 0.2, "R$ 0,30"},
	}
	for _, c := range cases {
		if got := BRL(c.in); got != c.want {
			t.Fatalf("BRL(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDateTimeFormats(t *testing.T) {
	ts := time.Date(2024, 3, 7, 18, 42, 5, 0, time.Local)
	if got := DateTimeShort(ts); got != "07/03 18:42" {
		t.Fatalf("DateTimeShort = %q", got)
	}
	if got := DateTimeFull(ts); got != "07/03/2024 18:42:05" {
		t.Fatalf("DateTimeFull = %q", got)
	}
}
