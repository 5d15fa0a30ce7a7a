package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ProductID uniquely identifies a catalog product
type ProductID int

// Product is a catalog entry. Price is in minor currency units (öre);
// cart lines always resolve it from the catalog at read time, it is never
// copied into cart state.
type Product struct {
	ID          ProductID
	Name        string
	Description string
	Price       int64
}

// FormatPrice renders a minor-unit price as a decimal string, e.g. 12950 -> "129.50"
func FormatPrice(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// ParsePrice parses a decimal price string like "129.50" into minor units.
// A bare integer is whole units; at most two decimals are accepted.
func ParsePrice(s string) (int64, error) {
	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" || len(frac) > 2 {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	minor := units * 100
	if frac != "" {
		cents, err := strconv.ParseUint(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid price %q", s)
		}
		if len(frac) == 1 {
			cents *= 10
		}
		if units < 0 {
			minor -= int64(cents)
		} else {
			minor += int64(cents)
		}
	}
	return minor, nil
}
