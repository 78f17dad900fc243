package importers

import (
	"context"
	"fmt"

	"github.com/vzwadmin/beheer/internal/entities"
)

func plaatsKey(postcode, deelgemeente string) string {
	return NormalizePostcode(postcode) + "|" + FoldKey(deelgemeente)
}

// seedPlaatsen inserts every place not yet present. Existing places are
// filtered out first so the batched insert's row count can be verified.
func seedPlaatsen(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	var candidates []RawRecord
	for _, rec := range records {
		postcode := NormalizePostcode(rec.Get(colPostcode))
		deelgemeente := rec.Get(colDeelgemeente, colGemeente)
		if postcode == "" || deelgemeente == "" {
			diag.Error("plaats_ongeldig", rec, "postcode of deelgemeente ontbreekt")
			continue
		}
		candidates = append(candidates, rec)
	}

	candidates = Dedupe(candidates, func(rec RawRecord) string {
		return plaatsKey(rec.Get(colPostcode), rec.Get(colDeelgemeente, colGemeente))
	}, diag, "plaats_dubbel")

	existing, err := r.Plaatsen(ctx)
	if err != nil {
		return StageResult{}, err
	}

	var nieuw []entities.Plaats
	for _, rec := range candidates {
		postcode := NormalizePostcode(rec.Get(colPostcode))
		deelgemeente := rec.Get(colDeelgemeente, colGemeente)
		if _, ok := existing.Find(postcode, deelgemeente); ok {
			diag.Info("plaats_bestaat", rec, "plaats %s %s bestaat al", postcode, deelgemeente)
			continue
		}
		gemeente := rec.Get(colGemeente, colDeelgemeente)
		nieuw = append(nieuw, entities.Plaats{
			Postcode:     postcode,
			Deelgemeente: deelgemeente,
			Gemeente:     gemeente,
			Provincie:    entities.ProvincieVoorPostcode(postcode),
		})
	}

	written, err := r.store.InsertPlaatsen(ctx, nieuw)
	if err != nil {
		return StageResult{}, fmt.Errorf("failed to insert places: %w", err)
	}
	r.invalidatePlaatsen()
	if written != int64(len(nieuw)) {
		return StageResult{Created: written}, fmt.Errorf("%w: inserted %d of %d places", ErrCountMismatch, written, len(nieuw))
	}

	return StageResult{Created: written}, nil
}

// seedPlaatsCorrecties renames places: the legacy data carries known typos
// in deelgemeente and gemeente names.
func seedPlaatsCorrecties(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	index, err := r.Plaatsen(ctx)
	if err != nil {
		return StageResult{}, err
	}

	var res StageResult
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		plaats, ok := index.Find(rec.Get(colPostcode), rec.Get(colDeelgemeente))
		if !ok {
			diag.Error("plaats_missing", rec, "plaats %s %s niet gevonden", rec.Get(colPostcode), rec.Get(colDeelgemeente))
			continue
		}
		changed := false
		if v := rec.Get(colNieuweDeelgemeente); v != "" && v != plaats.Deelgemeente {
			plaats.Deelgemeente = v
			changed = true
		}
		if v := rec.Get(colNieuweGemeente); v != "" && v != plaats.Gemeente {
			plaats.Gemeente = v
			changed = true
		}
		if !changed {
			diag.Info("plaats_ongewijzigd", rec, "niets te corrigeren")
			continue
		}
		if err := r.store.UpdatePlaats(ctx, &plaats); err != nil {
			if err := recordError(diag, "plaats_dubbel", rec, err); err != nil {
				return res, err
			}
			continue
		}
		res.Updated++
	}
	r.invalidatePlaatsen()
	return res, nil
}
