package customer

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestApprovedLimitFor(t *testing.T) {
	cases := map[string]string{
		"50000":  "1800000",
		"25000":  "900000",
		"10000":  "400000", // 360000 → 4 lakh
		"12000":  "400000", // 432000 → 4 lakh
		"15000":  "500000", // 540000 → 5 lakh
		"0":      "0",
		"100000": "3600000",
	}
	for in, want := range cases {
		got := ApprovedLimitFor(decimal.RequireFromString(in))
		if !got.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("ApprovedLimitFor(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestFullName(t *testing.T) {
	c := Customer{FirstName: "Asha", LastName: "Rao"}
	if got := c.FullName(); got != "Asha Rao" {
		t.Fatalf("got %q", got)
	}
}
