package importers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseBedrag reads a euro amount as written in the legacy exports
// ("€ 1.250,50", "85", "85.5"). Empty input is a null amount.
func ParseBedrag(raw string) (decimal.NullDecimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "€")
	s = strings.TrimSuffix(strings.TrimSpace(s), "EUR")
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if s == "" || s == "-" {
		return decimal.NullDecimal{}, nil
	}

	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Contains(s, ","):
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return decimal.NullDecimal{Decimal: d.Round(2), Valid: true}, nil
}

// ParsePerunage reads an attendance value ("100%", "0,5", "ja", "nee")
// into a fraction in [0, 1]. Empty input means full attendance.
func ParsePerunage(raw string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "", "ja", "j", "x", "aanwezig":
		return 1, nil
	case "nee", "n", "afwezig":
		return 0, nil
	}

	percent := strings.HasSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid attendance %q", raw)
	}
	if percent || f > 1 {
		f /= 100
	}
	if f < 0 || f > 1 {
		return 0, fmt.Errorf("attendance %q out of range", raw)
	}
	return f, nil
}

func parseOptionalFloat(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
