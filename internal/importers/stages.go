package importers

// Stage names, in run order.
const (
	StagePlaatsen               = "plaatsen"
	StageDeelnemers             = "deelnemers"
	StageOrganisaties           = "organisaties"
	StageCursussen              = "cursussen"
	StageCursusAanmeldingen     = "cursus-aanmeldingen"
	StageVrijwilligers          = "vrijwilligers"
	StageOverigePersonen        = "overige-personen"
	StageVakanties              = "vakanties"
	StageVakantieBegeleiders    = "vakantie-begeleiders"
	StageVakantieInschrijvingen = "vakantie-inschrijvingen"
	StageDeelnemersVerwijderen  = "deelnemers-verwijderen"
	StageCursusLocaties         = "cursus-locaties"
	StagePlaatsCorrecties       = "plaats-correcties"
	StageAdresCorrecties        = "adres-correcties"
)

// DefaultStages returns the full seeding run. Later stages depend on the
// lookups and rows of earlier ones, so the order is fixed.
func DefaultStages() []Stage {
	return []Stage{
		{
			Name:  StagePlaatsen,
			File:  "plaatsen",
			Tally: func(c Counts) int64 { return c.Plaatsen },
			Run:   seedPlaatsen,
		},
		{
			Name:     StageDeelnemers,
			File:     "deelnemers",
			Produces: []string{LookupDeelnemers},
			Tally:    func(c Counts) int64 { return c.Deelnemers },
			Run:      seedDeelnemers,
		},
		{
			Name:     StageOrganisaties,
			File:     "organisaties",
			Produces: []string{LookupOrganisaties},
			Tally:    func(c Counts) int64 { return c.Organisaties },
			Run:      seedOrganisaties,
		},
		{
			Name:     StageCursussen,
			File:     "cursussen",
			Produces: []string{LookupCursussen, LookupCursusActiviteiten},
			Tally:    func(c Counts) int64 { return c.Cursussen + c.Activiteiten },
			Run:      seedCursussen,
		},
		{
			Name:  StageCursusAanmeldingen,
			File:  "cursus-aanmeldingen",
			Tally: func(c Counts) int64 { return c.Aanmeldingen + c.Deelnames },
			Run:   seedCursusAanmeldingen,
		},
		{
			Name:     StageVrijwilligers,
			File:     "vrijwilligers",
			Produces: []string{LookupVrijwilligers},
			Tally:    func(c Counts) int64 { return c.OverigePersonen },
			Run:      seedVrijwilligers,
		},
		{
			Name:     StageOverigePersonen,
			File:     "overige-personen",
			Optional: true,
			Produces: []string{LookupOverigePersonen},
			Tally:    func(c Counts) int64 { return c.OverigePersonen },
			Run:      seedOverigePersonen,
		},
		{
			Name:     StageVakanties,
			File:     "vakanties",
			Produces: []string{LookupVakanties, LookupVakantieActiviteiten},
			Tally:    func(c Counts) int64 { return c.Vakanties + c.Activiteiten },
			Run:      seedVakanties,
		},
		{
			Name:     StageVakantieBegeleiders,
			File:     "vakantie-begeleiders",
			Optional: true,
			Tally:    func(c Counts) int64 { return c.Begeleidingen },
			Run:      seedVakantieBegeleiders,
		},
		{
			Name:  StageVakantieInschrijvingen,
			File:  "vakantie-inschrijvingen",
			Tally: func(c Counts) int64 { return c.Aanmeldingen + c.Deelnames },
			Run:   seedVakantieInschrijvingen,
		},
		{
			Name:     StageDeelnemersVerwijderen,
			File:     "verwijderen",
			Optional: true,
			Produces: []string{LookupDeelnemers},
			Tally:    func(c Counts) int64 { return c.Deelnemers },
			Run:      seedDeelnemersVerwijderen,
		},
		{
			Name:     StageCursusLocaties,
			File:     "cursus-locaties",
			Optional: true,
			Produces: []string{LookupLocaties},
			Tally:    func(c Counts) int64 { return c.Locaties },
			Run:      seedCursusLocaties,
		},
		{
			Name:     StagePlaatsCorrecties,
			File:     "plaats-correcties",
			Optional: true,
			Tally:    func(c Counts) int64 { return c.Plaatsen },
			Run:      seedPlaatsCorrecties,
		},
		{
			Name:     StageAdresCorrecties,
			File:     "adres-correcties",
			Optional: true,
			Run:      seedAdresCorrecties,
		},
	}
}
