package http

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vzwadmin/beheer/internal/entities"
)

// Request bodies and their mapping onto entities. Responses serialize the
// entities directly.

const dateLayout = "2006-01-02"

type AdresRequest struct {
	Straatnaam string `json:"straatnaam" binding:"max=200"`
	Huisnummer string `json:"huisnummer" binding:"max=20"`
	Busnummer  string `json:"busnummer" binding:"max=20"`
	// PlaatsID 0 stores the address against the unknown place.
	PlaatsID uint `json:"plaats_id"`
}

func (r AdresRequest) toEntity() entities.Adres {
	plaatsID := r.PlaatsID
	if plaatsID == 0 {
		plaatsID = entities.OnbekendePlaatsID
	}
	return entities.Adres{
		Straatnaam: r.Straatnaam,
		Huisnummer: r.Huisnummer,
		Busnummer:  r.Busnummer,
		PlaatsID:   plaatsID,
	}
}

type PersoonRequest struct {
	Voornaam         string                           `json:"voornaam" binding:"required,max=100"`
	Achternaam       string                           `json:"achternaam" binding:"required,max=100"`
	Geslacht         entities.Geslacht                `json:"geslacht" binding:"omitempty,oneof=man vrouw x onbekend"`
	Geboortedatum    string                           `json:"geboortedatum" binding:"omitempty,datetime=2006-01-02"`
	Email            string                           `json:"email" binding:"omitempty,email,max=255"`
	Telefoon         string                           `json:"telefoon" binding:"max=50"`
	GSM              string                           `json:"gsm" binding:"max=50"`
	Opmerking        string                           `json:"opmerking"`
	Verblijfadres    AdresRequest                     `json:"verblijfadres"`
	Domicilieadres   *AdresRequest                    `json:"domicilieadres"`
	Selectie         []entities.OverigPersoonSelectie `json:"selectie" binding:"dive,oneof=vrijwilliger contactpersoon donateur familie sympathisant bestuur"`
	Foldervoorkeuren []entities.Foldervoorkeur        `json:"foldervoorkeuren"`
}

func (r PersoonRequest) toEntity(typ entities.PersoonType) *entities.Persoon {
	p := &entities.Persoon{
		Type:             typ,
		Voornaam:         r.Voornaam,
		Achternaam:       r.Achternaam,
		Geslacht:         r.Geslacht,
		Email:            r.Email,
		Telefoon:         r.Telefoon,
		GSM:              r.GSM,
		Opmerking:        r.Opmerking,
		Verblijfadres:    r.Verblijfadres.toEntity(),
		Foldervoorkeuren: r.Foldervoorkeuren,
	}
	if p.Geslacht == "" {
		p.Geslacht = entities.GeslachtOnbekend
	}
	if r.Geboortedatum != "" {
		// Already validated by the datetime rule.
		d, _ := time.Parse(dateLayout, r.Geboortedatum)
		p.Geboortedatum = &d
	}
	if r.Domicilieadres != nil {
		adres := r.Domicilieadres.toEntity()
		p.Domicilieadres = &adres
	}
	if typ == entities.PersoonTypeOverigPersoon {
		p.Selectie = r.Selectie
	}
	return p
}

type ContactpersoonRequest struct {
	Naam     string `json:"naam" binding:"required,max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	Telefoon string `json:"telefoon" binding:"max=50"`
}

type OrganisatieRequest struct {
	Naam            string                  `json:"naam" binding:"required,max=255"`
	Type            string                  `json:"type" binding:"max=100"`
	Email           string                  `json:"email" binding:"omitempty,email"`
	Telefoon        string                  `json:"telefoon" binding:"max=50"`
	Website         string                  `json:"website" binding:"omitempty,url"`
	Opmerking       string                  `json:"opmerking"`
	Adres           *AdresRequest           `json:"adres"`
	Contactpersonen []ContactpersoonRequest `json:"contactpersonen" binding:"dive"`
}

func (r OrganisatieRequest) toEntity() *entities.Organisatie {
	o := &entities.Organisatie{
		Naam:      r.Naam,
		Type:      r.Type,
		Email:     r.Email,
		Telefoon:  r.Telefoon,
		Website:   r.Website,
		Opmerking: r.Opmerking,
	}
	if r.Adres != nil {
		adres := r.Adres.toEntity()
		o.Adres = &adres
	}
	for _, c := range r.Contactpersonen {
		o.Contactpersonen = append(o.Contactpersonen, entities.Contactpersoon{
			Naam:     c.Naam,
			Email:    c.Email,
			Telefoon: c.Telefoon,
		})
	}
	return o
}

type PlaatsRequest struct {
	Postcode     string `json:"postcode" binding:"required,postcode"`
	Deelgemeente string `json:"deelgemeente" binding:"required,max=100"`
	Gemeente     string `json:"gemeente" binding:"max=100"`
}

type LocatieRequest struct {
	Naam       string       `json:"naam" binding:"required,max=255"`
	Capaciteit *int         `json:"capaciteit" binding:"omitempty,min=0"`
	Opmerking  string       `json:"opmerking"`
	Adres      AdresRequest `json:"adres"`
}

func (r LocatieRequest) toEntity() *entities.Locatie {
	return &entities.Locatie{
		Naam:       r.Naam,
		Capaciteit: r.Capaciteit,
		Opmerking:  r.Opmerking,
		Adres:      r.Adres.toEntity(),
	}
}

type ActiviteitRequest struct {
	Van              string   `json:"van" binding:"required,datetime=2006-01-02"`
	TotEnMet         string   `json:"tot_en_met" binding:"omitempty,datetime=2006-01-02"`
	Verblijf         string   `json:"verblijf" binding:"max=255"`
	Vervoer          string   `json:"vervoer" binding:"max=255"`
	Vormingsuren     *float64 `json:"vormingsuren" binding:"omitempty,min=0"`
	Begeleidingsuren *float64 `json:"begeleidingsuren" binding:"omitempty,min=0"`
}

func (r ActiviteitRequest) toEntity() (entities.Activiteit, error) {
	a := entities.Activiteit{
		Verblijf:         r.Verblijf,
		Vervoer:          r.Vervoer,
		Vormingsuren:     r.Vormingsuren,
		Begeleidingsuren: r.Begeleidingsuren,
	}
	a.Van, _ = time.Parse(dateLayout, r.Van)
	a.TotEnMet = a.Van
	if r.TotEnMet != "" {
		a.TotEnMet, _ = time.Parse(dateLayout, r.TotEnMet)
	}
	if a.TotEnMet.Before(a.Van) {
		return a, fmt.Errorf("tot_en_met %s is before van %s", r.TotEnMet, r.Van)
	}
	return a, nil
}

type ProjectRequest struct {
	Type                 entities.ProjectType          `json:"type" binding:"required,oneof=cursus vakantie"`
	Projectnummer        string                        `json:"projectnummer" binding:"required,max=50"`
	Naam                 string                        `json:"naam" binding:"max=255"`
	Jaar                 int                           `json:"jaar" binding:"omitempty,min=1900,max=2999"`
	Organisatieonderdeel entities.Organisatieonderdeel `json:"organisatieonderdeel" binding:"omitempty,oneof=deKei keiJong keiJongBuso keiJongNietBuso vakanties"`
	Prijs                string                        `json:"prijs"`
	Voorschot            string                        `json:"voorschot"`
	Bestemming           string                        `json:"bestemming" binding:"max=255"`
	LocatieID            *uint                         `json:"locatie_id"`
	Activiteiten         []ActiviteitRequest           `json:"activiteiten" binding:"dive"`
}

func parseAmount(field, raw string) (decimal.NullDecimal, error) {
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid %s %q", field, raw)
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, fmt.Errorf("%s must not be negative", field)
	}
	return decimal.NewNullDecimal(d), nil
}

func (r ProjectRequest) toEntity() (*entities.Project, error) {
	prijs, err := parseAmount("prijs", r.Prijs)
	if err != nil {
		return nil, err
	}
	voorschot, err := parseAmount("voorschot", r.Voorschot)
	if err != nil {
		return nil, err
	}

	p := &entities.Project{
		Type:                 r.Type,
		Projectnummer:        r.Projectnummer,
		Naam:                 r.Naam,
		Jaar:                 r.Jaar,
		Organisatieonderdeel: r.Organisatieonderdeel,
		Prijs:                prijs,
		Voorschot:            voorschot,
		Bestemming:           r.Bestemming,
		LocatieID:            r.LocatieID,
	}
	if prijs.Valid && voorschot.Valid {
		p.Saldo = decimal.NewNullDecimal(prijs.Decimal.Sub(voorschot.Decimal))
	}
	for _, ar := range r.Activiteiten {
		a, err := ar.toEntity()
		if err != nil {
			return nil, err
		}
		p.Activiteiten = append(p.Activiteiten, a)
	}
	if p.Jaar == 0 {
		if start := p.Start(); !start.IsZero() {
			p.Jaar = start.Year()
		}
	}
	return p, nil
}

type DeelnameRequest struct {
	ActiviteitID uint `json:"activiteit_id" binding:"required"`
	// Perunage defaults to full attendance.
	Perunage  *float64 `json:"effectieve_deelname_perunage" binding:"omitempty,min=0,max=1"`
	Opmerking string   `json:"opmerking" binding:"max=500"`
}

func toDeelnames(in []DeelnameRequest) []entities.Deelname {
	out := make([]entities.Deelname, 0, len(in))
	for _, d := range in {
		perunage := 1.0
		if d.Perunage != nil {
			perunage = *d.Perunage
		}
		out = append(out, entities.Deelname{
			ActiviteitID:               d.ActiviteitID,
			EffectieveDeelnamePerunage: perunage,
			Opmerking:                  d.Opmerking,
		})
	}
	return out
}

type AanmeldingRequest struct {
	DeelnemerID        uint                      `json:"deelnemer_id" binding:"required"`
	Tijdstip           *time.Time                `json:"tijdstip"`
	Status             entities.AanmeldingStatus `json:"status" binding:"omitempty,oneof=Aangemeld Bevestigd Geannuleerd OpWachtlijst"`
	Rekeninguittreksel string                    `json:"rekeninguittreksel" binding:"max=50"`
	Opmerking          string                    `json:"opmerking"`
	Deelnames          []DeelnameRequest         `json:"deelnames" binding:"dive"`
}

func (r AanmeldingRequest) toEntity(projectID uint) *entities.Aanmelding {
	a := &entities.Aanmelding{
		DeelnemerID:        r.DeelnemerID,
		ProjectID:          projectID,
		Status:             r.Status,
		Rekeninguittreksel: r.Rekeninguittreksel,
		Opmerking:          r.Opmerking,
		Deelnames:          toDeelnames(r.Deelnames),
	}
	if r.Tijdstip != nil {
		a.Tijdstip = *r.Tijdstip
	}
	return a
}

type StatusRequest struct {
	Status entities.AanmeldingStatus `json:"status" binding:"required,oneof=Aangemeld Bevestigd Geannuleerd OpWachtlijst"`
}

type DeelnamesRequest struct {
	Deelnames []DeelnameRequest `json:"deelnames" binding:"dive"`
}

type ImportRequest struct {
	Readonly bool     `json:"readonly"`
	DryRun   bool     `json:"dry_run"`
	Stages   []string `json:"stages"`
}
