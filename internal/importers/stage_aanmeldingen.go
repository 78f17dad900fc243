package importers

import (
	"context"
	"sort"

	"github.com/vzwadmin/beheer/internal/entities"
)

// enrollmentRow is one source row of an enrollment export. The legacy
// exports carry one row per participant and activity; rows of the same
// participant and project fold into one Aanmelding.
type enrollmentRow struct {
	rec          RawRecord
	deelnemerID  uint
	projectID    uint
	activiteitID uint
	perunage     float64
}

func (e enrollmentRow) SourceRecord() RawRecord { return e.rec }

type enrollmentStage struct {
	entity       string
	projects     string
	activiteiten string
	titleColumns []string
}

var (
	cursusAanmeldingen = enrollmentStage{
		entity:       "cursus",
		projects:     LookupCursussen,
		activiteiten: LookupCursusActiviteiten,
		titleColumns: []string{colCursus, colTitel},
	}
	vakantieInschrijvingen = enrollmentStage{
		entity:       "vakantie",
		projects:     LookupVakanties,
		activiteiten: LookupVakantieActiviteiten,
		titleColumns: []string{colVakantie, colTitel},
	}
)

func seedCursusAanmeldingen(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	return cursusAanmeldingen.seed(ctx, r, diag, records)
}

func seedVakantieInschrijvingen(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	return vakantieInschrijvingen.seed(ctx, r, diag, records)
}

var statusAliases = map[string]entities.AanmeldingStatus{
	"aangemeld":     entities.AanmeldingStatusAangemeld,
	"ingeschreven":  entities.AanmeldingStatusAangemeld,
	"bevestigd":     entities.AanmeldingStatusBevestigd,
	"betaald":       entities.AanmeldingStatusBevestigd,
	"geannuleerd":   entities.AanmeldingStatusGeannuleerd,
	"annulatie":     entities.AanmeldingStatusGeannuleerd,
	"afgemeld":      entities.AanmeldingStatusGeannuleerd,
	"wachtlijst":    entities.AanmeldingStatusOpWachtlijst,
	"op wachtlijst": entities.AanmeldingStatusOpWachtlijst,
	"opwachtlijst":  entities.AanmeldingStatusOpWachtlijst,
}

// parseStatus defaults to Bevestigd: the legacy exports only listed
// enrollments that were accepted.
func parseStatus(diag *Diagnostics, rec RawRecord) entities.AanmeldingStatus {
	raw := rec.Get(colStatus)
	if raw == "" {
		return entities.AanmeldingStatusBevestigd
	}
	if s, ok := statusAliases[FoldKey(raw)]; ok {
		return s
	}
	diag.Warn("status_onbekend", rec, "status %q onbekend, bevestigd aangenomen", raw)
	return entities.AanmeldingStatusBevestigd
}

func (s enrollmentStage) seed(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	deelnemers, err := r.Lookup(ctx, LookupDeelnemers)
	if err != nil {
		return StageResult{}, err
	}
	projects, err := r.Lookup(ctx, s.projects)
	if err != nil {
		return StageResult{}, err
	}
	activiteiten, err := r.Lookup(ctx, s.activiteiten)
	if err != nil {
		return StageResult{}, err
	}

	var rows []enrollmentRow
	for _, rec := range records {
		deelnemerID, err := deelnemers.Resolve(persoonRef(rec, colDeelnemer))
		if err != nil {
			resolveError(diag, "deelnemer", rec, err)
			continue
		}
		titel := rec.Get(s.titleColumns...)
		code, ok := ParseProjectCode(titel)
		if !ok {
			diag.Error("projectcode_ongeldig", rec, "titel %q bevat geen projectcode", titel)
			continue
		}
		projectID, err := projects.Resolve(code.Code)
		if err != nil {
			resolveError(diag, s.entity, rec, err)
			continue
		}
		activiteitID, err := activiteiten.Resolve(code.ActiviteitKey())
		if err != nil {
			resolveError(diag, "activiteit", rec, err)
			continue
		}
		perunage, err := ParsePerunage(rec.Get(colAanwezigheid))
		if err != nil {
			diag.Warn("aanwezigheid_ongeldig", rec, "%v, volledige aanwezigheid aangenomen", err)
			perunage = 1
		}
		rows = append(rows, enrollmentRow{
			rec:          rec,
			deelnemerID:  deelnemerID,
			projectID:    projectID,
			activiteitID: activiteitID,
			perunage:     perunage,
		})
	}

	rows = Dedupe(rows, func(e enrollmentRow) string {
		return uintKey(e.deelnemerID, e.activiteitID)
	}, diag, "aanmelding_dubbel")

	var res StageResult
	for _, group := range groupEnrollments(rows) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		a := s.aanmelding(r, diag, group)
		if err := r.store.CreateAanmelding(ctx, a); err != nil {
			if err := recordError(diag, "aanmelding_dubbel", group[0].rec, err); err != nil {
				return res, err
			}
			continue
		}
		res.Created += 1 + int64(len(a.Deelnames))
	}
	return res, nil
}

// groupEnrollments folds rows per (deelnemer, project), keeping the order in
// which each pair first appeared.
func groupEnrollments(rows []enrollmentRow) [][]enrollmentRow {
	index := make(map[string]int)
	var groups [][]enrollmentRow
	for _, row := range rows {
		k := uintKey(row.deelnemerID, row.projectID)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], row)
	}
	return groups
}

// aanmelding takes enrollment-level fields from the first row of the
// group that has them.
func (s enrollmentStage) aanmelding(r *Run, diag *Diagnostics, group []enrollmentRow) *entities.Aanmelding {
	first := group[0]
	a := &entities.Aanmelding{
		DeelnemerID: first.deelnemerID,
		ProjectID:   first.projectID,
		Status:      parseStatus(diag, first.rec),
	}

	for _, row := range group {
		if a.Tijdstip.IsZero() {
			if raw := row.rec.Get(colTijdstip, "Datum"); raw != "" {
				t, err := ParseDate(raw, r.Now())
				if err != nil {
					diag.Warn("datum_ongeldig", row.rec, "tijdstip: %v", err)
				} else {
					a.Tijdstip = t
				}
			}
		}
		if a.Rekeninguittreksel == "" {
			a.Rekeninguittreksel = row.rec.Get(colRekening)
		}
		if a.Opmerking == "" {
			a.Opmerking = row.rec.Get(colOpmerkingen)
		}
		a.Deelnames = append(a.Deelnames, entities.Deelname{
			ActiviteitID:               row.activiteitID,
			EffectieveDeelnamePerunage: row.perunage,
		})
	}
	if a.Tijdstip.IsZero() {
		a.Tijdstip = r.Now()
	}
	sort.SliceStable(a.Deelnames, func(i, j int) bool {
		return a.Deelnames[i].ActiviteitID < a.Deelnames[j].ActiviteitID
	})
	return a
}
