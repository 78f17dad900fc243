package importers

import (
	"context"
	"strconv"

	"github.com/vzwadmin/beheer/internal/entities"
)

func seedOrganisaties(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	lookup, err := r.ProduceLookup(ctx, LookupOrganisaties)
	if err != nil {
		return StageResult{}, err
	}

	records = Dedupe(records, func(rec RawRecord) string {
		return FoldKey(rec.Get(colNaam, "Organisatie"))
	}, diag, "organisatie_dubbel")

	var res StageResult
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		naam := rec.Get(colNaam, "Organisatie")
		if naam == "" {
			diag.Error("organisatie_naam_ontbreekt", rec, "naam ontbreekt")
			continue
		}

		o := &entities.Organisatie{
			Naam:      naam,
			Type:      rec.Get(colType),
			Email:     rec.Get(colEmail, colEmailAlt),
			Telefoon:  rec.Get(colTelefoon),
			Website:   rec.Get(colWebsite),
			Opmerking: rec.Get(colOpmerkingen),
		}
		if rec.Has(colAdres) {
			adres, err := r.Adres(ctx, diag, rec, AddressOptional, rec.Get(colAdres), rec.Get(colPostcode), rec.Get(colGemeente))
			if err != nil {
				return res, err
			}
			o.Adres = adres
		}
		if cp := rec.Get(colContactpersoon); cp != "" {
			o.Contactpersonen = []entities.Contactpersoon{{
				Naam:     cp,
				Email:    rec.Get(colContactEmail),
				Telefoon: rec.Get(colContactTelefoon),
			}}
		}

		if err := r.store.CreateOrganisatie(ctx, o); err != nil {
			if err := recordError(diag, "organisatie_dubbel", rec, err); err != nil {
				return res, err
			}
			continue
		}
		lookup.Set(naam, o.ID)
		res.Created++
	}
	return res, nil
}

// seedCursusLocaties creates the locations courses are held at and links
// them to their course. A location row without a parsable address gets the
// sentinel address, since every location needs one.
func seedCursusLocaties(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	locaties, err := r.ProduceLookup(ctx, LookupLocaties)
	if err != nil {
		return StageResult{}, err
	}
	cursussen, err := r.Lookup(ctx, LookupCursussen)
	if err != nil {
		return StageResult{}, err
	}

	var res StageResult
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		naam := rec.Get(colLocatie)
		if naam == "" {
			diag.Error("locatie_naam_ontbreekt", rec, "locatie ontbreekt")
			continue
		}

		locatieID, err := locaties.Resolve(naam)
		if err != nil {
			adres, err := r.Adres(ctx, diag, rec, AddressRequired, rec.Get(colAdres), rec.Get(colPostcode), rec.Get(colGemeente))
			if err != nil {
				return res, err
			}
			l := &entities.Locatie{Naam: naam, Adres: *adres, Opmerking: rec.Get(colOpmerkingen)}
			if raw := rec.Get(colCapaciteit); raw != "" {
				if n, convErr := strconv.Atoi(raw); convErr == nil {
					l.Capaciteit = &n
				} else {
					diag.Warn("capaciteit_ongeldig", rec, "capaciteit %q is geen getal", raw)
				}
			}
			if err := r.store.CreateLocatie(ctx, l); err != nil {
				if err := recordError(diag, "locatie_dubbel", rec, err); err != nil {
					return res, err
				}
				continue
			}
			locaties.Set(naam, l.ID)
			locatieID = l.ID
			res.Created++
		}

		titel := rec.Get(colCursus, colTitel)
		if titel == "" {
			continue
		}
		code, ok := ParseProjectCode(titel)
		if !ok {
			diag.Error("projectcode_ongeldig", rec, "titel %q bevat geen projectcode", titel)
			continue
		}
		projectID, err := cursussen.Resolve(code.Code)
		if err != nil {
			resolveError(diag, "cursus", rec, err)
			continue
		}
		if err := r.store.SetProjectLocatie(ctx, projectID, locatieID); err != nil {
			if err := recordError(diag, "cursus_missing", rec, err); err != nil {
				return res, err
			}
			continue
		}
		res.Updated++
	}
	return res, nil
}
