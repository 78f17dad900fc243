package importers

import "strings"

// RawRecord is one row of a legacy export, keyed by the original column
// header. Values are always strings; numbers are stringified on read.
type RawRecord map[string]string

// Get returns the first non-empty value among the given columns, trimmed.
// Legacy exports renamed columns over the years, so callers list every
// known spelling.
func (r RawRecord) Get(columns ...string) string {
	for _, c := range columns {
		if v := strings.TrimSpace(r[c]); v != "" {
			return v
		}
	}
	return ""
}

// Has reports whether any of the columns carries a non-empty value.
func (r RawRecord) Has(columns ...string) bool {
	return r.Get(columns...) != ""
}

// Column names used across the legacy exports.
const (
	colVoornaam           = "Voornaam"
	colNaam               = "Naam"
	colGeslacht           = "Geslacht"
	colGeboortedatum      = "Geboortedatum"
	colAdres              = "Adres"
	colPostcode           = "Postcode"
	colGemeente           = "Gemeente"
	colDeelgemeente       = "Deelgemeente"
	colDomicilieAdres     = "Domicilie adres"
	colDomiciliePostcode  = "Domicilie postcode"
	colDomicilieGemeente  = "Domicilie gemeente"
	colTelefoon           = "Telefoon"
	colGSM                = "GSM"
	colEmail              = "E-mailadres"
	colEmailAlt           = "Email"
	colOpmerkingen        = "Opmerkingen"
	colTitel              = "Titel"
	colVan                = "Van"
	colTotEnMet           = "Tot en met"
	colDeelnemer          = "Deelnemer"
	colCursus             = "Cursus"
	colVakantie           = "Vakantie"
	colBegeleider         = "Begeleider"
	colSelectie           = "Selectie"
	colFolder             = "Folder"
	colAanwezigheid       = "Aanwezigheid"
	colStatus             = "Status"
	colTijdstip           = "Tijdstip"
	colRekening           = "Rekeninguittreksel"
	colType               = "Type"
	colWebsite            = "Website"
	colContactpersoon     = "Contactpersoon"
	colContactEmail       = "Contactpersoon e-mail"
	colContactTelefoon    = "Contactpersoon telefoon"
	colLocatie            = "Locatie"
	colCapaciteit         = "Capaciteit"
	colPrijs              = "Prijs"
	colVoorschot          = "Voorschot"
	colBestemming         = "Bestemming"
	colVerblijf           = "Verblijf"
	colVervoer            = "Vervoer"
	colVormingsuren       = "Vormingsuren"
	colBegeleidingsuren   = "Begeleidingsuren"
	colNieuweGemeente     = "Nieuwe gemeente"
	colNieuweDeelgemeente = "Nieuwe deelgemeente"
)
