package importers

import (
	"regexp"
	"strings"
)

// ParsedAddress is a free-text address split into its parts. Postcode is
// already normalized to digits only.
type ParsedAddress struct {
	Straat     string
	Huisnummer string
	Bus        string
	Postcode   string
}

var addressPattern = regexp.MustCompile(`^([^\d]+?)[\s,]*(\d+)(.*)$`)

var busPrefix = regexp.MustCompile(`(?i)^(bus|bte|b\.|b)(\s*)(.*)$`)

// CategoryAddressParse is reported once for every address that does not
// have the <street><number>[bus <unit>] shape.
const CategoryAddressParse = "adres_parse_error"

// ParseAddress splits raw into street, house number and optional unit.
// When raw does not match it reports exactly one adres_parse_error warning
// and returns false; the caller decides between the sentinel address and
// omitting the field.
func ParseAddress(raw, rawPostcode string, diag *Diagnostics, rec RawRecord) (ParsedAddress, bool) {
	m := addressPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil || strings.TrimSpace(m[1]) == "" {
		diag.Warn(CategoryAddressParse, rec, "adres %q kon niet ontleed worden", raw)
		return ParsedAddress{}, false
	}

	addr := ParsedAddress{
		Straat:     strings.TrimSpace(strings.TrimRight(m[1], " ,")),
		Huisnummer: m[2],
		Postcode:   NormalizePostcode(rawPostcode),
	}

	rest := m[3]
	// A single letter glued to the number is part of the house number (12A).
	if len(rest) > 0 && isASCIILetter(rest[0]) && (len(rest) == 1 || strings.ContainsRune(" /,", rune(rest[1]))) {
		addr.Huisnummer += strings.ToUpper(rest[:1])
		rest = rest[1:]
	}
	rest = strings.TrimLeft(rest, "/-, ")
	addr.Bus = strings.TrimSpace(stripBusPrefix(rest))

	return addr, true
}

// stripBusPrefix drops a leading unit marker. The bare short form b only
// counts when a number follows, so "Berchem" and "B2" are kept as written.
func stripBusPrefix(rest string) string {
	m := busPrefix.FindStringSubmatch(rest)
	if m == nil {
		return rest
	}
	prefix, sep, unit := strings.ToLower(m[1]), m[2], m[3]
	startsWithDigit := unit != "" && unit[0] >= '0' && unit[0] <= '9'
	switch {
	case prefix == "b":
		if !startsWithDigit {
			return rest
		}
	case prefix == "b.":
	case sep == "" && !startsWithDigit && unit != "":
		return rest
	}
	return unit
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
