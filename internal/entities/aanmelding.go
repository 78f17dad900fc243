package entities

import "time"

type AanmeldingStatus string

const (
	AanmeldingStatusAangemeld    AanmeldingStatus = "Aangemeld"
	AanmeldingStatusBevestigd    AanmeldingStatus = "Bevestigd"
	AanmeldingStatusGeannuleerd  AanmeldingStatus = "Geannuleerd"
	AanmeldingStatusOpWachtlijst AanmeldingStatus = "OpWachtlijst"
)

func (s AanmeldingStatus) Valid() bool {
	switch s {
	case AanmeldingStatusAangemeld, AanmeldingStatusBevestigd, AanmeldingStatusGeannuleerd, AanmeldingStatusOpWachtlijst:
		return true
	}
	return false
}

// Aanmelding is an enrollment of a deelnemer in a project. For vacation
// projects the same row is called an "inschrijving".
type Aanmelding struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	DeelnemerID        uint             `gorm:"not null;uniqueIndex:idx_aanmelding_deelnemer_project" json:"deelnemer_id"`
	Deelnemer          *Persoon         `gorm:"foreignKey:DeelnemerID" json:"deelnemer,omitempty"`
	ProjectID          uint             `gorm:"not null;uniqueIndex:idx_aanmelding_deelnemer_project;index" json:"project_id"`
	Project            *Project         `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Tijdstip           time.Time        `json:"tijdstip"`
	Status             AanmeldingStatus `gorm:"size:20;default:'Aangemeld'" json:"status"`
	EersteAanmelding   bool             `gorm:"default:false" json:"eerste_aanmelding"`
	WoonplaatsID       uint             `gorm:"not null" json:"woonplaats_id"`
	Woonplaats         *Plaats          `gorm:"foreignKey:WoonplaatsID" json:"woonplaats,omitempty"`
	Rekeninguittreksel string           `gorm:"size:50" json:"rekeninguittreksel,omitempty"`
	Opmerking          string           `gorm:"type:text" json:"opmerking,omitempty"`
	Deelnames          []Deelname       `gorm:"foreignKey:AanmeldingID;constraint:OnDelete:CASCADE" json:"deelnames,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (Aanmelding) TableName() string {
	return "aanmeldingen"
}

// Deelname records attendance of one enrollment at one activity.
type Deelname struct {
	ID                         uint    `gorm:"primaryKey" json:"id"`
	AanmeldingID               uint    `gorm:"not null;uniqueIndex:idx_deelname_aanmelding_activiteit" json:"aanmelding_id"`
	ActiviteitID               uint    `gorm:"not null;uniqueIndex:idx_deelname_aanmelding_activiteit;index" json:"activiteit_id"`
	EffectieveDeelnamePerunage float64 `gorm:"not null" json:"effectieve_deelname_perunage"`
	Opmerking                  string  `gorm:"size:500" json:"opmerking,omitempty"`
}

func (Deelname) TableName() string {
	return "deelnames"
}
