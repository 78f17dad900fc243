// Package reports defines the management reports and renders them as JSON
// tables or xlsx workbooks.
//
// # Usage
//
//	svc := reports.NewService(rapportages.NewRepository(db))
//	table, err := svc.Run(ctx, "aanmeldingen-per-provincie", reports.Filter{Jaar: 2022})
//	err = reports.WriteXLSX(w, "aanmeldingen-per-provincie", table)
package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vzwadmin/beheer/internal/database/rapportages"
	"github.com/vzwadmin/beheer/internal/entities"
)

var ErrUnknownReport = errors.New("unknown report")

// Filter narrows a report. A zero Jaar means all years.
type Filter struct {
	Jaar int `form:"jaar" binding:"omitempty,min=1900,max=2999"`
}

type definition struct {
	title string
	query string
	args  func(Filter) []any
}

const (
	AanmeldingenPerProvincie          = "aanmeldingen-per-provincie"
	DeelnemersPerOrganisatieonderdeel = "deelnemers-per-organisatieonderdeel"
	ActiviteitenBezetting             = "activiteiten-bezetting"
	VrijwilligersPerVakantie          = "vrijwilligers-per-vakantie"
)

var definitions = map[string]definition{
	AanmeldingenPerProvincie: {
		title: "Aanmeldingen per provincie",
		query: `
SELECT pl.provincie AS provincie,
       p.type AS type,
       COUNT(a.id) AS aanmeldingen,
       COUNT(DISTINCT a.deelnemer_id) AS deelnemers
FROM aanmeldingen a
JOIN projecten p ON p.id = a.project_id
JOIN plaatsen pl ON pl.id = a.woonplaats_id
WHERE a.status <> ? AND (? = 0 OR p.jaar = ?)
GROUP BY pl.provincie, p.type
ORDER BY pl.provincie, p.type`,
		args: func(f Filter) []any {
			return []any{entities.AanmeldingStatusGeannuleerd, f.Jaar, f.Jaar}
		},
	},
	DeelnemersPerOrganisatieonderdeel: {
		title: "Deelnemers per organisatieonderdeel",
		query: `
SELECT p.organisatieonderdeel AS organisatieonderdeel,
       COUNT(DISTINCT a.deelnemer_id) AS deelnemers,
       SUM(CASE WHEN a.eerste_aanmelding THEN 1 ELSE 0 END) AS nieuwe_deelnemers
FROM aanmeldingen a
JOIN projecten p ON p.id = a.project_id
WHERE a.status <> ? AND (? = 0 OR p.jaar = ?)
GROUP BY p.organisatieonderdeel
ORDER BY p.organisatieonderdeel`,
		args: func(f Filter) []any {
			return []any{entities.AanmeldingStatusGeannuleerd, f.Jaar, f.Jaar}
		},
	},
	ActiviteitenBezetting: {
		title: "Bezetting per project",
		query: `
SELECT p.projectnummer AS projectnummer,
       p.naam AS naam,
       COUNT(DISTINCT a.id) AS aanmeldingen,
       COUNT(d.id) AS deelnames,
       COALESCE(AVG(d.effectieve_deelname_perunage), 0) AS gemiddelde_aanwezigheid
FROM projecten p
LEFT JOIN aanmeldingen a ON a.project_id = p.id AND a.status <> ?
LEFT JOIN deelnames d ON d.aanmelding_id = a.id
WHERE (? = 0 OR p.jaar = ?)
GROUP BY p.id, p.projectnummer, p.naam
ORDER BY p.projectnummer`,
		args: func(f Filter) []any {
			return []any{entities.AanmeldingStatusGeannuleerd, f.Jaar, f.Jaar}
		},
	},
	VrijwilligersPerVakantie: {
		title: "Vrijwilligers per vakantie",
		query: `
SELECT p.projectnummer AS projectnummer,
       p.naam AS naam,
       COUNT(pb.persoon_id) AS begeleiders
FROM projecten p
LEFT JOIN project_begeleiders pb ON pb.project_id = p.id
WHERE p.type = ? AND (? = 0 OR p.jaar = ?)
GROUP BY p.id, p.projectnummer, p.naam
ORDER BY p.projectnummer`,
		args: func(f Filter) []any {
			return []any{entities.ProjectTypeVakantie, f.Jaar, f.Jaar}
		},
	},
}

// Names lists the available reports, sorted.
func Names() []string {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Title returns the human readable title of a report.
func Title(name string) string {
	return definitions[name].title
}

type Service struct {
	repo *rapportages.Repository
}

func NewService(repo *rapportages.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Run(ctx context.Context, name string, filter Filter) (*rapportages.Table, error) {
	def, ok := definitions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}
	table, err := s.repo.Query(ctx, def.query, def.args(filter)...)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", name, err)
	}
	return table, nil
}
