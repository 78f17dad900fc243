package entities

import "time"

type PersoonType string

const (
	PersoonTypeDeelnemer     PersoonType = "deelnemer"
	PersoonTypeOverigPersoon PersoonType = "overigPersoon"
)

type Geslacht string

const (
	GeslachtMan      Geslacht = "man"
	GeslachtVrouw    Geslacht = "vrouw"
	GeslachtX        Geslacht = "x"
	GeslachtOnbekend Geslacht = "onbekend"
)

// OverigPersoonSelectie is a category flag for volunteers and contacts.
type OverigPersoonSelectie string

const (
	SelectieVrijwilliger   OverigPersoonSelectie = "vrijwilliger"
	SelectieContactpersoon OverigPersoonSelectie = "contactpersoon"
	SelectieDonateur       OverigPersoonSelectie = "donateur"
	SelectieFamilie        OverigPersoonSelectie = "familie"
	SelectieSympathisant   OverigPersoonSelectie = "sympathisant"
	SelectieBestuur        OverigPersoonSelectie = "bestuur"
)

type Foldersoort string

const (
	FoldersoortDeKei       Foldersoort = "deKei"
	FoldersoortKeiJong     Foldersoort = "keiJong"
	FoldersoortVakanties   Foldersoort = "vakanties"
	FoldersoortJaarverslag Foldersoort = "jaarverslag"
)

type Communicatievoorkeur string

const (
	CommunicatiePost        Communicatievoorkeur = "post"
	CommunicatieEmail       Communicatievoorkeur = "email"
	CommunicatiePostEnEmail Communicatievoorkeur = "postEnEmail"
)

type Foldervoorkeur struct {
	Folder       Foldersoort          `json:"folder"`
	Communicatie Communicatievoorkeur `json:"communicatie"`
}

type Persoon struct {
	ID               uint                    `gorm:"primaryKey" json:"id"`
	Type             PersoonType             `gorm:"size:20;not null;index" json:"type"`
	Voornaam         string                  `gorm:"size:100;index" json:"voornaam"`
	Achternaam       string                  `gorm:"size:100;index" json:"achternaam"`
	Geslacht         Geslacht                `gorm:"size:10;default:'onbekend'" json:"geslacht"`
	Geboortedatum    *time.Time              `json:"geboortedatum,omitempty"`
	Email            string                  `gorm:"size:255" json:"email,omitempty"`
	Telefoon         string                  `gorm:"size:50" json:"telefoon,omitempty"`
	GSM              string                  `gorm:"column:gsm;size:50" json:"gsm,omitempty"`
	Opmerking        string                  `gorm:"type:text" json:"opmerking,omitempty"`
	VerblijfadresID  uint                    `gorm:"not null" json:"verblijfadres_id"`
	Verblijfadres    Adres                   `gorm:"foreignKey:VerblijfadresID" json:"verblijfadres"`
	DomicilieadresID *uint                   `json:"domicilieadres_id,omitempty"`
	Domicilieadres   *Adres                  `gorm:"foreignKey:DomicilieadresID" json:"domicilieadres,omitempty"`
	Selectie         []OverigPersoonSelectie `gorm:"serializer:json;type:text" json:"selectie,omitempty"`
	Foldervoorkeuren []Foldervoorkeur        `gorm:"serializer:json;type:text" json:"foldervoorkeuren,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

func (Persoon) TableName() string {
	return "personen"
}

// Woonplaats returns the place used for enrollment snapshots: the domicile
// address wins over the residential one when both are loaded.
func (p *Persoon) Woonplaats() uint {
	if p.Domicilieadres != nil && p.Domicilieadres.PlaatsID != 0 {
		return p.Domicilieadres.PlaatsID
	}
	if p.Verblijfadres.PlaatsID != 0 {
		return p.Verblijfadres.PlaatsID
	}
	return OnbekendePlaatsID
}

func (p *Persoon) VolledigeNaam() string {
	if p.Voornaam == "" {
		return p.Achternaam
	}
	return p.Voornaam + " " + p.Achternaam
}

func (p *Persoon) HeeftSelectie(s OverigPersoonSelectie) bool {
	for _, v := range p.Selectie {
		if v == s {
			return true
		}
	}
	return false
}
