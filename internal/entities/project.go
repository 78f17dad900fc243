package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProjectType string

const (
	ProjectTypeCursus   ProjectType = "cursus"
	ProjectTypeVakantie ProjectType = "vakantie"
)

type Organisatieonderdeel string

const (
	OrganisatieonderdeelDeKei           Organisatieonderdeel = "deKei"
	OrganisatieonderdeelKeiJong         Organisatieonderdeel = "keiJong"
	OrganisatieonderdeelKeiJongBuso     Organisatieonderdeel = "keiJongBuso"
	OrganisatieonderdeelKeiJongNietBuso Organisatieonderdeel = "keiJongNietBuso"
	OrganisatieonderdeelVakanties       Organisatieonderdeel = "vakanties"
)

type Project struct {
	ID                   uint                 `gorm:"primaryKey" json:"id"`
	Type                 ProjectType          `gorm:"size:20;not null;index" json:"type"`
	Projectnummer        string               `gorm:"size:50;not null;uniqueIndex" json:"projectnummer"`
	Naam                 string               `gorm:"size:255" json:"naam"`
	Jaar                 int                  `gorm:"index" json:"jaar"`
	Organisatieonderdeel Organisatieonderdeel `gorm:"size:30" json:"organisatieonderdeel"`
	Prijs                decimal.NullDecimal  `gorm:"type:decimal(10,2)" json:"prijs"`
	Voorschot            decimal.NullDecimal  `gorm:"type:decimal(10,2)" json:"voorschot"`
	Saldo                decimal.NullDecimal  `gorm:"type:decimal(10,2)" json:"saldo"`
	Bestemming           string               `gorm:"size:255" json:"bestemming,omitempty"`
	LocatieID            *uint                `json:"locatie_id,omitempty"`
	Locatie              *Locatie             `gorm:"foreignKey:LocatieID" json:"locatie,omitempty"`
	Activiteiten         []Activiteit         `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"activiteiten,omitempty"`
	Begeleiders          []Persoon            `gorm:"many2many:project_begeleiders;" json:"begeleiders,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

func (Project) TableName() string {
	return "projecten"
}

// Start returns the earliest activity start, or the zero time when the
// project has no (loaded) activities.
func (p *Project) Start() time.Time {
	var start time.Time
	for _, a := range p.Activiteiten {
		if start.IsZero() || a.Van.Before(start) {
			start = a.Van
		}
	}
	return start
}

type Activiteit struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProjectID        uint      `gorm:"index;not null" json:"project_id"`
	Van              time.Time `gorm:"index" json:"van"`
	TotEnMet         time.Time `json:"tot_en_met"`
	Verblijf         string    `gorm:"size:255" json:"verblijf,omitempty"`
	Vervoer          string    `gorm:"size:255" json:"vervoer,omitempty"`
	Vormingsuren     *float64  `json:"vormingsuren,omitempty"`
	Begeleidingsuren *float64  `json:"begeleidingsuren,omitempty"`
}

func (Activiteit) TableName() string {
	return "activiteiten"
}
