package entities

import "strconv"

type Provincie string

const (
	ProvincieBrussel        Provincie = "Brussel"
	ProvincieWaalsBrabant   Provincie = "WaalsBrabant"
	ProvincieVlaamsBrabant  Provincie = "VlaamsBrabant"
	ProvincieAntwerpen      Provincie = "Antwerpen"
	ProvincieLimburg        Provincie = "Limburg"
	ProvincieLuik           Provincie = "Luik"
	ProvincieNamen          Provincie = "Namen"
	ProvincieHenegouwen     Provincie = "Henegouwen"
	ProvincieLuxemburg      Provincie = "Luxemburg"
	ProvincieWestVlaanderen Provincie = "WestVlaanderen"
	ProvincieOostVlaanderen Provincie = "OostVlaanderen"
	ProvincieOnbekend       Provincie = "Onbekend"
)

// OnbekendePlaatsID is the sentinel place used when an address cannot be resolved.
// The database bootstrap guarantees it exists before anything else is written.
const OnbekendePlaatsID uint = 1

const (
	OnbekendePostcode     = "0000"
	OnbekendeDeelgemeente = "Onbekend"
	OnbekendeStraat       = "onbekend"
)

type Plaats struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Postcode     string    `gorm:"size:10;not null;uniqueIndex:idx_plaats_postcode_deelgemeente" json:"postcode"`
	Deelgemeente string    `gorm:"size:100;not null;uniqueIndex:idx_plaats_postcode_deelgemeente" json:"deelgemeente"`
	Gemeente     string    `gorm:"size:100" json:"gemeente"`
	Provincie    Provincie `gorm:"size:30" json:"provincie"`
}

func (Plaats) TableName() string {
	return "plaatsen"
}

type Adres struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Straatnaam string `gorm:"size:200" json:"straatnaam"`
	Huisnummer string `gorm:"size:20" json:"huisnummer"`
	Busnummer  string `gorm:"size:20" json:"busnummer,omitempty"`
	PlaatsID   uint   `gorm:"index;not null" json:"plaats_id"`
	Plaats     Plaats `gorm:"foreignKey:PlaatsID" json:"plaats"`
}

func (Adres) TableName() string {
	return "adressen"
}

// OnbekendAdres returns a fresh address pointing at the sentinel place.
// Addresses are owned by a single row, so every caller gets its own copy.
func OnbekendAdres() Adres {
	return Adres{Straatnaam: OnbekendeStraat, PlaatsID: OnbekendePlaatsID}
}

type provincieRange struct {
	from, to  int
	provincie Provincie
}

var provincieRanges = []provincieRange{
	{1000, 1299, ProvincieBrussel},
	{1300, 1499, ProvincieWaalsBrabant},
	{1500, 1999, ProvincieVlaamsBrabant},
	{2000, 2999, ProvincieAntwerpen},
	{3000, 3499, ProvincieVlaamsBrabant},
	{3500, 3999, ProvincieLimburg},
	{4000, 4999, ProvincieLuik},
	{5000, 5999, ProvincieNamen},
	{6000, 6599, ProvincieHenegouwen},
	{6600, 6999, ProvincieLuxemburg},
	{7000, 7999, ProvincieHenegouwen},
	{8000, 8999, ProvincieWestVlaanderen},
	{9000, 9999, ProvincieOostVlaanderen},
}

// ProvincieVoorPostcode derives the province from a Belgian postal code.
func ProvincieVoorPostcode(postcode string) Provincie {
	code, err := strconv.Atoi(postcode)
	if err != nil {
		return ProvincieOnbekend
	}
	for _, r := range provincieRanges {
		if code >= r.from && code <= r.to {
			return r.provincie
		}
	}
	return ProvincieOnbekend
}
