package importers

import (
	"context"
	"fmt"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/entities"
)

// fakeStore is an in-memory Store enforcing the unique constraints the
// database would.
type fakeStore struct {
	nextID        uint
	plaatsen      []entities.Plaats
	personen      map[uint]*entities.Persoon
	organisaties  map[uint]*entities.Organisatie
	locaties      map[uint]*entities.Locatie
	projecten     map[uint]*entities.Project
	activiteiten  map[uint]*entities.Activiteit
	aanmeldingen  map[uint]*entities.Aanmelding
	begeleidingen map[[2]uint]bool

	countsErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID: 100,
		plaatsen: []entities.Plaats{{
			ID:           entities.OnbekendePlaatsID,
			Postcode:     entities.OnbekendePostcode,
			Deelgemeente: entities.OnbekendeDeelgemeente,
		}},
		personen:      map[uint]*entities.Persoon{},
		organisaties:  map[uint]*entities.Organisatie{},
		locaties:      map[uint]*entities.Locatie{},
		projecten:     map[uint]*entities.Project{},
		activiteiten:  map[uint]*entities.Activiteit{},
		aanmeldingen:  map[uint]*entities.Aanmelding{},
		begeleidingen: map[[2]uint]bool{},
	}
}

func (s *fakeStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) Counts(context.Context) (Counts, error) {
	if s.countsErr != nil {
		return Counts{}, s.countsErr
	}
	c := Counts{
		Plaatsen:      int64(len(s.plaatsen)),
		Organisaties:  int64(len(s.organisaties)),
		Locaties:      int64(len(s.locaties)),
		Activiteiten:  int64(len(s.activiteiten)),
		Aanmeldingen:  int64(len(s.aanmeldingen)),
		Begeleidingen: int64(len(s.begeleidingen)),
	}
	for _, p := range s.personen {
		if p.Type == entities.PersoonTypeDeelnemer {
			c.Deelnemers++
		} else {
			c.OverigePersonen++
		}
	}
	for _, p := range s.projecten {
		if p.Type == entities.ProjectTypeCursus {
			c.Cursussen++
		} else {
			c.Vakanties++
		}
	}
	for _, a := range s.aanmeldingen {
		c.Deelnames += int64(len(a.Deelnames))
	}
	return c, nil
}

func (s *fakeStore) Plaatsen(context.Context) ([]entities.Plaats, error) {
	return append([]entities.Plaats{}, s.plaatsen...), nil
}

func (s *fakeStore) InsertPlaatsen(_ context.Context, plaatsen []entities.Plaats) (int64, error) {
	var written int64
	for _, p := range plaatsen {
		exists := false
		for _, e := range s.plaatsen {
			if e.Postcode == p.Postcode && e.Deelgemeente == p.Deelgemeente {
				exists = true
			}
		}
		if exists {
			continue
		}
		p.ID = s.id()
		s.plaatsen = append(s.plaatsen, p)
		written++
	}
	return written, nil
}

func (s *fakeStore) UpdatePlaats(_ context.Context, plaats *entities.Plaats) error {
	for i := range s.plaatsen {
		if s.plaatsen[i].ID == plaats.ID {
			s.plaatsen[i] = *plaats
			return nil
		}
	}
	return database.ErrNotFound
}

func (s *fakeStore) CreatePersoon(_ context.Context, p *entities.Persoon) error {
	p.ID = s.id()
	s.personen[p.ID] = p
	return nil
}

func (s *fakeStore) AddSelectie(_ context.Context, id uint, selectie []entities.OverigPersoonSelectie) error {
	p, ok := s.personen[id]
	if !ok {
		return database.ErrNotFound
	}
	for _, sel := range selectie {
		if !p.HeeftSelectie(sel) {
			p.Selectie = append(p.Selectie, sel)
		}
	}
	return nil
}

func (s *fakeStore) UpdateVerblijfadres(_ context.Context, id uint, adres entities.Adres) error {
	p, ok := s.personen[id]
	if !ok {
		return database.ErrNotFound
	}
	p.Verblijfadres = adres
	return nil
}

func (s *fakeStore) DeletePersoon(_ context.Context, id uint) error {
	if _, ok := s.personen[id]; !ok {
		return database.ErrNotFound
	}
	delete(s.personen, id)
	for aid, a := range s.aanmeldingen {
		if a.DeelnemerID == id {
			delete(s.aanmeldingen, aid)
		}
	}
	for k := range s.begeleidingen {
		if k[1] == id {
			delete(s.begeleidingen, k)
		}
	}
	return nil
}

func (s *fakeStore) CreateOrganisatie(_ context.Context, o *entities.Organisatie) error {
	for _, e := range s.organisaties {
		if e.Naam == o.Naam {
			return fmt.Errorf("%w: organisatie %s", database.ErrDuplicate, o.Naam)
		}
	}
	o.ID = s.id()
	s.organisaties[o.ID] = o
	return nil
}

func (s *fakeStore) CreateLocatie(_ context.Context, l *entities.Locatie) error {
	for _, e := range s.locaties {
		if e.Naam == l.Naam {
			return fmt.Errorf("%w: locatie %s", database.ErrDuplicate, l.Naam)
		}
	}
	l.ID = s.id()
	s.locaties[l.ID] = l
	return nil
}

func (s *fakeStore) CreateProject(_ context.Context, p *entities.Project) error {
	for _, e := range s.projecten {
		if e.Projectnummer == p.Projectnummer {
			return fmt.Errorf("%w: project %s", database.ErrDuplicate, p.Projectnummer)
		}
	}
	p.ID = s.id()
	s.projecten[p.ID] = p
	for i := range p.Activiteiten {
		a := &p.Activiteiten[i]
		a.ID = s.id()
		a.ProjectID = p.ID
		s.activiteiten[a.ID] = a
	}
	return nil
}

func (s *fakeStore) AddActiviteit(_ context.Context, a *entities.Activiteit) error {
	if _, ok := s.projecten[a.ProjectID]; !ok {
		return database.ErrNotFound
	}
	a.ID = s.id()
	s.activiteiten[a.ID] = a
	return nil
}

func (s *fakeStore) SetProjectLocatie(_ context.Context, projectID, locatieID uint) error {
	p, ok := s.projecten[projectID]
	if !ok {
		return database.ErrNotFound
	}
	p.LocatieID = &locatieID
	return nil
}

func (s *fakeStore) AddBegeleider(_ context.Context, projectID, persoonID uint) error {
	key := [2]uint{projectID, persoonID}
	if s.begeleidingen[key] {
		return database.ErrDuplicate
	}
	s.begeleidingen[key] = true
	return nil
}

func (s *fakeStore) CreateAanmelding(_ context.Context, a *entities.Aanmelding) error {
	p, ok := s.personen[a.DeelnemerID]
	if !ok || p.Type != entities.PersoonTypeDeelnemer {
		return database.ErrNotFound
	}
	for _, e := range s.aanmeldingen {
		if e.DeelnemerID == a.DeelnemerID && e.ProjectID == a.ProjectID {
			return database.ErrDuplicate
		}
	}
	a.ID = s.id()
	s.aanmeldingen[a.ID] = a
	return nil
}

var _ Store = (*fakeStore)(nil)
