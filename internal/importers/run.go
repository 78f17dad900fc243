package importers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/entities"
	"github.com/vzwadmin/beheer/internal/output"
)

// ErrLookupUnavailable means a stage needs a lookup that neither an earlier
// stage of this run nor a persisted lookup file provides.
var ErrLookupUnavailable = errors.New("lookup unavailable")

// Run holds the state shared by the stages of one pipeline run: lookups
// built so far and the place index. It is not safe for concurrent use.
type Run struct {
	store    Store
	sink     output.Sink
	logger   zerolog.Logger
	now      time.Time
	lookups  map[string]*Lookup
	plaatsen *PlaatsIndex
}

func newRun(store Store, sink output.Sink, logger zerolog.Logger, now time.Time) *Run {
	return &Run{
		store:   store,
		sink:    sink,
		logger:  logger,
		now:     now,
		lookups: make(map[string]*Lookup),
	}
}

// Now is the reference clock of the run, used for two-digit year pivots
// and default enrollment timestamps.
func (r *Run) Now() time.Time {
	return r.now
}

// Lookup returns a lookup built earlier in this run, falling back to the
// persisted <name>-lookup.json.
func (r *Run) Lookup(ctx context.Context, name string) (*Lookup, error) {
	if l, ok := r.lookups[name]; ok {
		return l, nil
	}
	if r.sink == nil {
		return nil, fmt.Errorf("%w: %s", ErrLookupUnavailable, name)
	}

	l := NewLookup(name)
	if err := output.GetJSON(ctx, r.sink, lookupFile(name), l); err != nil {
		if errors.Is(err, output.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrLookupUnavailable, name)
		}
		return nil, err
	}
	r.logger.Debug().Str("lookup", name).Int("entries", l.Len()).Msg("loaded persisted lookup")
	r.lookups[name] = l
	return l, nil
}

// OptionalLookup is Lookup, returning nil when the lookup is unavailable.
func (r *Run) OptionalLookup(ctx context.Context, name string) (*Lookup, error) {
	l, err := r.Lookup(ctx, name)
	if errors.Is(err, ErrLookupUnavailable) {
		return nil, nil
	}
	return l, err
}

// ProduceLookup returns the in-run lookup a stage writes to, continuing
// from the persisted version when one exists.
func (r *Run) ProduceLookup(ctx context.Context, name string) (*Lookup, error) {
	l, err := r.OptionalLookup(ctx, name)
	if err != nil {
		return nil, err
	}
	if l == nil {
		l = NewLookup(name)
		r.lookups[name] = l
	}
	return l, nil
}

// Plaatsen returns the place index, loading it from the store on first use.
func (r *Run) Plaatsen(ctx context.Context) (*PlaatsIndex, error) {
	if r.plaatsen != nil {
		return r.plaatsen, nil
	}
	all, err := r.store.Plaatsen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load places: %w", err)
	}
	r.plaatsen = NewPlaatsIndex(all)
	return r.plaatsen, nil
}

func (r *Run) invalidatePlaatsen() {
	r.plaatsen = nil
}

// AddressField tells ParseAdres how to treat an unparsable address.
type AddressField int

const (
	// AddressRequired falls back to the sentinel unknown address.
	AddressRequired AddressField = iota
	// AddressOptional drops the address.
	AddressOptional
)

// Adres parses and resolves a free-text address. Unparsable required
// addresses become the sentinel address, unparsable optional ones nil;
// either way exactly one adres_parse_error warning is reported.
func (r *Run) Adres(ctx context.Context, diag *Diagnostics, rec RawRecord, field AddressField, raw, postcode, gemeente string) (*entities.Adres, error) {
	parsed, ok := ParseAddress(raw, postcode, diag, rec)
	if !ok {
		if field == AddressOptional {
			return nil, nil
		}
		adres := entities.OnbekendAdres()
		return &adres, nil
	}

	index, err := r.Plaatsen(ctx)
	if err != nil {
		return nil, err
	}
	return &entities.Adres{
		Straatnaam: parsed.Straat,
		Huisnummer: parsed.Huisnummer,
		Busnummer:  parsed.Bus,
		PlaatsID:   index.Resolve(parsed.Postcode, gemeente, diag, rec),
	}, nil
}

// recordError turns a per-record store failure into an error diagnostic.
// Duplicates and invalid references drop the record; anything else is
// returned and aborts the run.
func recordError(diag *Diagnostics, category string, rec RawRecord, err error) error {
	if errors.Is(err, database.ErrDuplicate) || errors.Is(err, database.ErrInvalid) || errors.Is(err, database.ErrNotFound) {
		diag.Error(category, rec, "%v", err)
		return nil
	}
	return err
}

// resolveError reports a failed lookup as <entity>_missing or
// <entity>_ambiguous.
func resolveError(diag *Diagnostics, entity string, rec RawRecord, err error) {
	category := entity + "_missing"
	if errors.Is(err, ErrLookupAmbiguous) {
		category = entity + "_ambiguous"
	}
	diag.Error(category, rec, "%v", err)
}
