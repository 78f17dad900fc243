package entities

import "time"

type Organisatie struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Naam            string           `gorm:"size:255;not null;uniqueIndex" json:"naam"`
	Type            string           `gorm:"size:100" json:"type,omitempty"`
	Email           string           `gorm:"size:255" json:"email,omitempty"`
	Telefoon        string           `gorm:"size:50" json:"telefoon,omitempty"`
	Website         string           `gorm:"size:255" json:"website,omitempty"`
	Opmerking       string           `gorm:"type:text" json:"opmerking,omitempty"`
	AdresID         *uint            `json:"adres_id,omitempty"`
	Adres           *Adres           `gorm:"foreignKey:AdresID" json:"adres,omitempty"`
	Contactpersonen []Contactpersoon `gorm:"foreignKey:OrganisatieID;constraint:OnDelete:CASCADE" json:"contactpersonen,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (Organisatie) TableName() string {
	return "organisaties"
}

type Contactpersoon struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	OrganisatieID uint   `gorm:"index;not null" json:"organisatie_id"`
	Naam          string `gorm:"size:200" json:"naam"`
	Email         string `gorm:"size:255" json:"email,omitempty"`
	Telefoon      string `gorm:"size:50" json:"telefoon,omitempty"`
}

func (Contactpersoon) TableName() string {
	return "contactpersonen"
}

type Locatie struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Naam       string    `gorm:"size:255;not null;uniqueIndex" json:"naam"`
	Capaciteit *int      `json:"capaciteit,omitempty"`
	Opmerking  string    `gorm:"type:text" json:"opmerking,omitempty"`
	AdresID    uint      `gorm:"not null" json:"adres_id"`
	Adres      Adres     `gorm:"foreignKey:AdresID" json:"adres"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Locatie) TableName() string {
	return "locaties"
}
