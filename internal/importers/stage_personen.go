package importers

import (
	"context"
	"strings"

	"github.com/vzwadmin/beheer/internal/entities"
)

func parseGeslacht(raw string) entities.Geslacht {
	switch FoldKey(raw) {
	case "m", "man", "jongen":
		return entities.GeslachtMan
	case "v", "vrouw", "meisje":
		return entities.GeslachtVrouw
	case "x":
		return entities.GeslachtX
	}
	return entities.GeslachtOnbekend
}

// parsePersoon builds a person from the columns shared by every person
// export. It returns nil when the record cannot become a person.
func parsePersoon(ctx context.Context, r *Run, diag *Diagnostics, rec RawRecord, typ entities.PersoonType) (*entities.Persoon, error) {
	voornaam := rec.Get(colVoornaam)
	achternaam := rec.Get(colNaam, "Achternaam")
	if voornaam == "" && achternaam == "" {
		diag.Error("persoon_naam_ontbreekt", rec, "voornaam en naam ontbreken")
		return nil, nil
	}

	p := &entities.Persoon{
		Type:       typ,
		Voornaam:   voornaam,
		Achternaam: achternaam,
		Geslacht:   parseGeslacht(rec.Get(colGeslacht)),
		Email:      rec.Get(colEmail, colEmailAlt),
		Telefoon:   rec.Get(colTelefoon),
		GSM:        rec.Get(colGSM),
		Opmerking:  rec.Get(colOpmerkingen),
	}

	if raw := rec.Get(colGeboortedatum); raw != "" {
		d, err := ParseDate(raw, r.Now())
		if err != nil {
			diag.Warn("geboortedatum_ongeldig", rec, "%v", err)
		} else {
			p.Geboortedatum = &d
		}
	}

	verblijf, err := r.Adres(ctx, diag, rec, AddressRequired,
		rec.Get(colAdres, "Straat"), rec.Get(colPostcode), rec.Get(colGemeente, colDeelgemeente))
	if err != nil {
		return nil, err
	}
	p.Verblijfadres = *verblijf

	if rec.Has(colDomicilieAdres) {
		domicilie, err := r.Adres(ctx, diag, rec, AddressOptional,
			rec.Get(colDomicilieAdres), rec.Get(colDomiciliePostcode, colPostcode), rec.Get(colDomicilieGemeente))
		if err != nil {
			return nil, err
		}
		p.Domicilieadres = domicilie
	}

	return p, nil
}

// registerPersoon adds both name orders, since legacy references use
// "Voornaam Naam" and "Naam Voornaam" interchangeably.
func registerPersoon(l *Lookup, p *entities.Persoon) {
	l.Set(p.Voornaam+" "+p.Achternaam, p.ID)
	l.Set(p.Achternaam+" "+p.Voornaam, p.ID)
}

// persoonRef returns the free-text person reference of a record: the named
// column, or first and last name columns.
func persoonRef(rec RawRecord, columns ...string) string {
	if v := rec.Get(columns...); v != "" {
		return v
	}
	return strings.TrimSpace(rec.Get(colVoornaam) + " " + rec.Get(colNaam))
}

// persoonDedupeKey is empty for nameless records so each of them reaches
// parsePersoon and is reported there.
func persoonDedupeKey(rec RawRecord) string {
	if rec.Get(colVoornaam) == "" && rec.Get(colNaam, "Achternaam") == "" {
		return ""
	}
	return personKey(rec.Get(colVoornaam), rec.Get(colNaam, "Achternaam")) + "|" + rec.Get(colGeboortedatum)
}

func seedDeelnemers(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	lookup, err := r.ProduceLookup(ctx, LookupDeelnemers)
	if err != nil {
		return StageResult{}, err
	}

	var res StageResult
	for _, rec := range Dedupe(records, persoonDedupeKey, diag, "deelnemer_dubbel") {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p, err := parsePersoon(ctx, r, diag, rec, entities.PersoonTypeDeelnemer)
		if err != nil {
			return res, err
		}
		if p == nil {
			continue
		}
		if err := r.store.CreatePersoon(ctx, p); err != nil {
			if err := recordError(diag, "deelnemer_dubbel", rec, err); err != nil {
				return res, err
			}
			continue
		}
		registerPersoon(lookup, p)
		res.Created++
	}
	return res, nil
}

func seedVrijwilligers(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	lookup, err := r.ProduceLookup(ctx, LookupVrijwilligers)
	if err != nil {
		return StageResult{}, err
	}

	var res StageResult
	for _, rec := range Dedupe(records, persoonDedupeKey, diag, "vrijwilliger_dubbel") {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		p, err := parsePersoon(ctx, r, diag, rec, entities.PersoonTypeOverigPersoon)
		if err != nil {
			return res, err
		}
		if p == nil {
			continue
		}
		p.Selectie = []entities.OverigPersoonSelectie{entities.SelectieVrijwilliger}
		p.Foldervoorkeuren = parseFoldervoorkeuren(diag, rec)
		if err := r.store.CreatePersoon(ctx, p); err != nil {
			if err := recordError(diag, "vrijwilliger_dubbel", rec, err); err != nil {
				return res, err
			}
			continue
		}
		registerPersoon(lookup, p)
		res.Created++
	}
	return res, nil
}

var selectieAliases = map[string]entities.OverigPersoonSelectie{
	"vrijwilliger":   entities.SelectieVrijwilliger,
	"vrijwilligers":  entities.SelectieVrijwilliger,
	"contactpersoon": entities.SelectieContactpersoon,
	"contact":        entities.SelectieContactpersoon,
	"donateur":       entities.SelectieDonateur,
	"schenker":       entities.SelectieDonateur,
	"familie":        entities.SelectieFamilie,
	"familielid":     entities.SelectieFamilie,
	"sympathisant":   entities.SelectieSympathisant,
	"bestuur":        entities.SelectieBestuur,
	"bestuurslid":    entities.SelectieBestuur,
}

func parseSelectie(diag *Diagnostics, rec RawRecord) []entities.OverigPersoonSelectie {
	var out []entities.OverigPersoonSelectie
	seen := map[entities.OverigPersoonSelectie]bool{}
	for _, part := range splitList(rec.Get(colSelectie)) {
		s, ok := selectieAliases[FoldKey(part)]
		if !ok {
			diag.Warn("selectie_onbekend", rec, "onbekende selectie %q", part)
			continue
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

var folderAliases = map[string]entities.Foldersoort{
	"de kei":      entities.FoldersoortDeKei,
	"dekei":       entities.FoldersoortDeKei,
	"kei-jong":    entities.FoldersoortKeiJong,
	"kei jong":    entities.FoldersoortKeiJong,
	"keijong":     entities.FoldersoortKeiJong,
	"vakanties":   entities.FoldersoortVakanties,
	"vakantie":    entities.FoldersoortVakanties,
	"jaarverslag": entities.FoldersoortJaarverslag,
}

// parseFoldervoorkeuren reads "De Kei: post, Vakanties: email" style cells.
// A folder without a channel defaults to post.
func parseFoldervoorkeuren(diag *Diagnostics, rec RawRecord) []entities.Foldervoorkeur {
	var out []entities.Foldervoorkeur
	for _, part := range splitList(rec.Get(colFolder)) {
		name, channel, _ := strings.Cut(part, ":")
		folder, ok := folderAliases[FoldKey(name)]
		if !ok {
			diag.Warn("folder_onbekend", rec, "onbekende folder %q", part)
			continue
		}
		communicatie := entities.CommunicatiePost
		switch FoldKey(channel) {
		case "", "post":
		case "email", "e-mail", "mail":
			communicatie = entities.CommunicatieEmail
		case "post en email", "beide", "post+email":
			communicatie = entities.CommunicatiePostEnEmail
		default:
			diag.Warn("folder_onbekend", rec, "onbekend communicatiekanaal %q", channel)
		}
		out = append(out, entities.Foldervoorkeur{Folder: folder, Communicatie: communicatie})
	}
	return out
}

// seedOverigePersonen imports contacts, donors and family members. People
// already imported as vrijwilliger get the extra selectie merged in rather
// than a second row.
func seedOverigePersonen(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	lookup, err := r.ProduceLookup(ctx, LookupOverigePersonen)
	if err != nil {
		return StageResult{}, err
	}
	vrijwilligers, err := r.OptionalLookup(ctx, LookupVrijwilligers)
	if err != nil {
		return StageResult{}, err
	}

	var res StageResult
	for _, rec := range Dedupe(records, persoonDedupeKey, diag, "persoon_dubbel") {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		selectie := parseSelectie(diag, rec)

		if vrijwilligers != nil {
			if id, err := vrijwilligers.Resolve(persoonRef(rec)); err == nil {
				if err := r.store.AddSelectie(ctx, id, selectie); err != nil {
					if err := recordError(diag, "persoon_samenvoegen", rec, err); err != nil {
						return res, err
					}
					continue
				}
				diag.Info("persoon_samengevoegd", rec, "selectie toegevoegd aan vrijwilliger %d", id)
				lookup.Set(persoonRef(rec), id)
				res.Updated++
				continue
			}
		}

		p, err := parsePersoon(ctx, r, diag, rec, entities.PersoonTypeOverigPersoon)
		if err != nil {
			return res, err
		}
		if p == nil {
			continue
		}
		p.Selectie = selectie
		p.Foldervoorkeuren = parseFoldervoorkeuren(diag, rec)
		if err := r.store.CreatePersoon(ctx, p); err != nil {
			if err := recordError(diag, "persoon_dubbel", rec, err); err != nil {
				return res, err
			}
			continue
		}
		registerPersoon(lookup, p)
		res.Created++
	}
	return res, nil
}

// seedDeelnemersVerwijderen deletes the deelnemers listed in the marker
// file, together with their enrollments.
func seedDeelnemersVerwijderen(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	lookup, err := r.Lookup(ctx, LookupDeelnemers)
	if err != nil {
		return StageResult{}, err
	}

	var res StageResult
	deleted := map[uint]bool{}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		ref := persoonRef(rec, colDeelnemer)
		id, err := lookup.Resolve(ref)
		if err != nil {
			resolveError(diag, "deelnemer", rec, err)
			continue
		}
		if deleted[id] {
			diag.Warn("deelnemer_dubbel", rec, "deelnemer %q al verwijderd", ref)
			continue
		}
		if err := r.store.DeletePersoon(ctx, id); err != nil {
			if err := recordError(diag, "deelnemer_missing", rec, err); err != nil {
				return res, err
			}
			continue
		}
		deleted[id] = true
		lookup.Delete(id)
		diag.Info("deelnemer_verwijderd", rec, "deelnemer %q (%d) verwijderd", ref, id)
		res.Deleted++
	}
	return res, nil
}

// seedAdresCorrecties overwrites residential addresses of deelnemers.
// Unparsable corrections are skipped; the original address stays.
func seedAdresCorrecties(ctx context.Context, r *Run, diag *Diagnostics, records []RawRecord) (StageResult, error) {
	lookup, err := r.Lookup(ctx, LookupDeelnemers)
	if err != nil {
		return StageResult{}, err
	}

	var res StageResult
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		id, err := lookup.Resolve(persoonRef(rec, colDeelnemer))
		if err != nil {
			resolveError(diag, "deelnemer", rec, err)
			continue
		}
		adres, err := r.Adres(ctx, diag, rec, AddressOptional, rec.Get(colAdres), rec.Get(colPostcode), rec.Get(colGemeente))
		if err != nil {
			return res, err
		}
		if adres == nil {
			continue
		}
		if err := r.store.UpdateVerblijfadres(ctx, id, *adres); err != nil {
			if err := recordError(diag, "deelnemer_missing", rec, err); err != nil {
				return res, err
			}
			continue
		}
		res.Updated++
	}
	return res, nil
}
