package importers

import "github.com/vzwadmin/beheer/internal/entities"

// CategoryPlaatsOnbekend is reported when a postcode matches no place and
// the sentinel place is used instead.
const CategoryPlaatsOnbekend = "plaats_onbekend"

// PlaatsIndex resolves postcodes (and optionally a deelgemeente name) to
// place ids.
type PlaatsIndex struct {
	byPostcode map[string][]entities.Plaats
}

func NewPlaatsIndex(plaatsen []entities.Plaats) *PlaatsIndex {
	idx := &PlaatsIndex{byPostcode: make(map[string][]entities.Plaats)}
	for _, p := range plaatsen {
		if p.ID == entities.OnbekendePlaatsID {
			continue
		}
		pc := NormalizePostcode(p.Postcode)
		idx.byPostcode[pc] = append(idx.byPostcode[pc], p)
	}
	return idx
}

// Find returns the place with exactly this postcode and deelgemeente.
func (x *PlaatsIndex) Find(postcode, deelgemeente string) (entities.Plaats, bool) {
	want := FoldKey(deelgemeente)
	for _, p := range x.byPostcode[NormalizePostcode(postcode)] {
		if FoldKey(p.Deelgemeente) == want {
			return p, true
		}
	}
	return entities.Plaats{}, false
}

// Resolve picks the place for a postcode. A gemeente matching a
// deelgemeente (or gemeente) wins, otherwise the first place registered
// for the postcode. Unknown postcodes resolve to the sentinel place with a
// warning.
func (x *PlaatsIndex) Resolve(rawPostcode, gemeente string, diag *Diagnostics, rec RawRecord) uint {
	candidates := x.byPostcode[NormalizePostcode(rawPostcode)]
	if len(candidates) == 0 {
		diag.Warn(CategoryPlaatsOnbekend, rec, "geen plaats voor postcode %q", rawPostcode)
		return entities.OnbekendePlaatsID
	}
	if g := FoldKey(gemeente); g != "" {
		for _, p := range candidates {
			if FoldKey(p.Deelgemeente) == g {
				return p.ID
			}
		}
		for _, p := range candidates {
			if FoldKey(p.Gemeente) == g {
				return p.ID
			}
		}
	}
	return candidates[0].ID
}
