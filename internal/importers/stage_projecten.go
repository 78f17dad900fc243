package importers

import (
	"context"
	"strconv"

	"github.com/vzwadmin/beheer/internal/entities"
)

const (
	CategoryDuplicateProject = "duplicate_project"
	CategoryProjectMissing   = "project_missing"
	CategoryActiviteitDubbel = "activiteit_dubbel"
)

type projectRow struct {
	rec  RawRecord
	code ProjectCode
}

func (p projectRow) SourceRecord() RawRecord { return p.rec }

type projectStage struct {
	typ          entities.ProjectType
	projects     string
	activiteiten string
	titleColumns []string
}

var (
	cursusStage = projectStage{
		typ:          entities.ProjectTypeCursus,
		projects:     LookupCursussen,
		activiteiten: LookupCursusActiviteiten,
		titleColumns: []string{colTitel, colCursus},
	}
	vakantieStage = projectStage{
		typ:          entities.ProjectTypeVakantie,
		projects:     LookupVakanties,
		activiteiten: LookupVakantieActiviteiten,
		titleColumns: []string{colTitel, colVakantie},
	}
)

func seedCursussen(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	return cursusStage.seed(ctx, r, diag, records)
}

func seedVakanties(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	return vakantieStage.seed(ctx, r, diag, records)
}

// seed creates one project per code. Rows without an iteration suffix
// create the project and its first activity; rows with a suffix add an
// activity to it. Base rows are handled first so an iteration listed
// before its project still attaches.
func (s projectStage) seed(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	projects, err := r.ProduceLookup(ctx, s.projects)
	if err != nil {
		return StageResult{}, err
	}
	activiteiten, err := r.ProduceLookup(ctx, s.activiteiten)
	if err != nil {
		return StageResult{}, err
	}

	var base, iterations []projectRow
	for _, rec := range records {
		titel := rec.Get(s.titleColumns...)
		code, ok := ParseProjectCode(titel)
		if !ok {
			diag.Error("projectcode_ongeldig", rec, "titel %q bevat geen projectcode", titel)
			continue
		}
		row := projectRow{rec: rec, code: code}
		if code.HasIteration() {
			if code.IsBaseIteration() {
				diag.Warn(CategoryActiviteitDubbel, rec, "iteratie %s van %s valt samen met de basisrij", code.Iteration, code.Code)
				continue
			}
			iterations = append(iterations, row)
		} else {
			base = append(base, row)
		}
	}
	iterations = Dedupe(iterations, func(p projectRow) string {
		return p.code.ActiviteitKey()
	}, diag, CategoryActiviteitDubbel)

	var res StageResult
	created := map[string]bool{}
	for _, row := range base {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		key := FoldKey(row.code.Code)
		if created[key] {
			diag.Error(CategoryDuplicateProject, row.rec, "project %s bestaat al", row.code.Code)
			continue
		}
		activiteit, ok := s.parseActiviteit(r, diag, row.rec)
		if !ok {
			continue
		}
		project := s.parseProject(diag, row)
		project.Activiteiten = []entities.Activiteit{activiteit}

		if err := r.store.CreateProject(ctx, project); err != nil {
			if err := recordError(diag, CategoryDuplicateProject, row.rec, err); err != nil {
				return res, err
			}
			continue
		}
		created[key] = true
		projects.Set(row.code.Code, project.ID)
		activiteiten.Set(row.code.ActiviteitKey(), project.Activiteiten[0].ID)
		res.Created += 2
	}

	for _, row := range iterations {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		projectID, err := projects.Resolve(row.code.Code)
		if err != nil {
			diag.Error(CategoryProjectMissing, row.rec, "geen project %s voor iteratie %s", row.code.Code, row.code.Iteration)
			continue
		}
		activiteit, ok := s.parseActiviteit(r, diag, row.rec)
		if !ok {
			continue
		}
		activiteit.ProjectID = projectID
		if err := r.store.AddActiviteit(ctx, &activiteit); err != nil {
			if err := recordError(diag, CategoryProjectMissing, row.rec, err); err != nil {
				return res, err
			}
			continue
		}
		activiteiten.Set(row.code.ActiviteitKey(), activiteit.ID)
		res.Created++
	}
	return res, nil
}

func (s projectStage) parseProject(diag *Diagnostics, row projectRow) *entities.Project {
	rec := row.rec
	naam := row.code.Beschrijving
	if naam == "" {
		naam = rec.Get(colNaam)
	}
	p := &entities.Project{
		Type:                 s.typ,
		Projectnummer:        row.code.Code,
		Naam:                 naam,
		Jaar:                 row.code.Jaar(),
		Organisatieonderdeel: row.code.Organisatieonderdeel(s.typ),
		Bestemming:           rec.Get(colBestemming),
	}

	var err error
	if p.Prijs, err = ParseBedrag(rec.Get(colPrijs)); err != nil {
		diag.Warn("bedrag_ongeldig", rec, "%v", err)
	}
	if p.Voorschot, err = ParseBedrag(rec.Get(colVoorschot)); err != nil {
		diag.Warn("bedrag_ongeldig", rec, "%v", err)
	}
	if p.Prijs.Valid && p.Voorschot.Valid {
		p.Saldo.Decimal = p.Prijs.Decimal.Sub(p.Voorschot.Decimal)
		p.Saldo.Valid = true
	}
	return p
}

// parseActiviteit reads the date range and vacation metadata of a row. A
// row without a usable start date cannot become an activity.
func (s projectStage) parseActiviteit(r *Run, diag *Diagnostics, rec RawRecord) (entities.Activiteit, bool) {
	van, err := ParseDate(rec.Get(colVan, "Startdatum"), r.Now())
	if err != nil {
		diag.Error("datum_ongeldig", rec, "startdatum: %v", err)
		return entities.Activiteit{}, false
	}
	totEnMet := van
	if raw := rec.Get(colTotEnMet, "Einddatum"); raw != "" {
		t, err := ParseDate(raw, r.Now())
		switch {
		case err != nil:
			diag.Warn("datum_ongeldig", rec, "einddatum: %v", err)
		case t.Before(van):
			diag.Warn("datum_ongeldig", rec, "einddatum %s ligt voor startdatum", raw)
		default:
			totEnMet = t
		}
	}

	a := entities.Activiteit{
		Van:      van,
		TotEnMet: totEnMet,
		Verblijf: rec.Get(colVerblijf),
		Vervoer:  rec.Get(colVervoer),
	}
	if a.Vormingsuren, err = parseOptionalFloat(rec.Get(colVormingsuren)); err != nil {
		diag.Warn("uren_ongeldig", rec, "vormingsuren %q", rec.Get(colVormingsuren))
	}
	if a.Begeleidingsuren, err = parseOptionalFloat(rec.Get(colBegeleidingsuren)); err != nil {
		diag.Warn("uren_ongeldig", rec, "begeleidingsuren %q", rec.Get(colBegeleidingsuren))
	}
	return a, true
}

type begeleiderRow struct {
	rec       RawRecord
	projectID uint
	persoonID uint
}

func (b begeleiderRow) SourceRecord() RawRecord { return b.rec }

// seedVakantieBegeleiders links volunteers (or other persons) to the
// vacations they accompany.
func seedVakantieBegeleiders(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	vakanties, err := r.Lookup(ctx, LookupVakanties)
	if err != nil {
		return StageResult{}, err
	}
	vrijwilligers, err := r.Lookup(ctx, LookupVrijwilligers)
	if err != nil {
		return StageResult{}, err
	}
	overigen, err := r.OptionalLookup(ctx, LookupOverigePersonen)
	if err != nil {
		return StageResult{}, err
	}

	var rows []begeleiderRow
	for _, rec := range records {
		titel := rec.Get(colVakantie, colTitel)
		code, ok := ParseProjectCode(titel)
		if !ok {
			diag.Error("projectcode_ongeldig", rec, "titel %q bevat geen projectcode", titel)
			continue
		}
		projectID, err := vakanties.Resolve(code.Code)
		if err != nil {
			resolveError(diag, "vakantie", rec, err)
			continue
		}
		ref := persoonRef(rec, colBegeleider)
		persoonID, err := vrijwilligers.Resolve(ref)
		if err != nil && overigen != nil {
			persoonID, err = overigen.Resolve(ref)
		}
		if err != nil {
			resolveError(diag, "begeleider", rec, err)
			continue
		}
		rows = append(rows, begeleiderRow{rec: rec, projectID: projectID, persoonID: persoonID})
	}

	rows = Dedupe(rows, func(b begeleiderRow) string {
		return uintKey(b.projectID, b.persoonID)
	}, diag, "begeleider_dubbel")

	var res StageResult
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if err := r.store.AddBegeleider(ctx, row.projectID, row.persoonID); err != nil {
			if err := recordError(diag, "begeleider_dubbel", row.rec, err); err != nil {
				return res, err
			}
			continue
		}
		res.Created++
	}
	return res, nil
}

func uintKey(a, b uint) string {
	return strconv.FormatUint(uint64(a), 10) + "|" + strconv.FormatUint(uint64(b), 10)
}
