package importers

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	ErrLookupMissing   = errors.New("lookup key not found")
	ErrLookupAmbiguous = errors.New("lookup key is ambiguous")
)

// Lookup names shared between stages. Each is persisted as <name>-lookup.json.
const (
	LookupDeelnemers           = "deelnemers"
	LookupVrijwilligers        = "vrijwilligers"
	LookupOverigePersonen      = "overige-personen"
	LookupOrganisaties         = "organisaties"
	LookupCursussen            = "cursussen"
	LookupCursusActiviteiten   = "cursus-activiteiten"
	LookupVakanties            = "vakanties"
	LookupVakantieActiviteiten = "vakantie-activiteiten"
	LookupLocaties             = "locaties"
)

// Lookup maps folded legacy keys to database ids. A key registered twice
// with different ids becomes ambiguous and no longer resolves.
type Lookup struct {
	name    string
	entries map[string]uint
}

// NewLookup creates an empty lookup.
func NewLookup(name string) *Lookup {
	return &Lookup{name: name, entries: make(map[string]uint)}
}

func (l *Lookup) Name() string {
	return l.name
}

func (l *Lookup) Len() int {
	return len(l.entries)
}

// Set registers key → id. The zero id marks the key ambiguous.
func (l *Lookup) Set(key string, id uint) {
	k := FoldKey(key)
	if k == "" {
		return
	}
	if existing, ok := l.entries[k]; ok && existing != id {
		l.entries[k] = 0
		return
	}
	l.entries[k] = id
}

// Resolve returns the id registered for key.
func (l *Lookup) Resolve(key string) (uint, error) {
	id, ok := l.entries[FoldKey(key)]
	if !ok {
		return 0, fmt.Errorf("%w: %s %q", ErrLookupMissing, l.name, key)
	}
	if id == 0 {
		return 0, fmt.Errorf("%w: %s %q", ErrLookupAmbiguous, l.name, key)
	}
	return id, nil
}

// Delete removes every key pointing at id.
func (l *Lookup) Delete(id uint) {
	for k, v := range l.entries {
		if v == id {
			delete(l.entries, k)
		}
	}
}

// MarshalJSON writes the entries as a flat object with sorted keys.
// Ambiguous keys are written with id 0.
func (l *Lookup) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ordered := make([]lookupEntry, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, lookupEntry{Key: k, ID: l.entries[k]})
	}
	return json.Marshal(ordered)
}

func (l *Lookup) UnmarshalJSON(data []byte) error {
	var entries []lookupEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	l.entries = make(map[string]uint, len(entries))
	for _, e := range entries {
		l.entries[FoldKey(e.Key)] = e.ID
	}
	return nil
}

type lookupEntry struct {
	Key string `json:"key"`
	ID  uint   `json:"id"`
}

func lookupFile(name string) string {
	return name + "-lookup.json"
}
