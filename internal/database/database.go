package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vzwadmin/beheer/internal/entities"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
	ErrInvalid   = errors.New("invalid record")
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects the database backend.
type Options struct {
	Driver   string
	Path     string // sqlite file
	DSN      string // postgres connection string
	LogLevel logger.LogLevel
}

type Database struct {
	DB *gorm.DB
}

// Models lists every table managed by AutoMigrate, in dependency order.
func Models() []any {
	return []any{
		&entities.Plaats{},
		&entities.Adres{},
		&entities.Persoon{},
		&entities.Organisatie{},
		&entities.Contactpersoon{},
		&entities.Locatie{},
		&entities.Project{},
		&entities.Activiteit{},
		&entities.Aanmelding{},
		&entities.Deelname{},
		&entities.ImportRun{},
	}
}

func NewDatabase(opts Options, log zerolog.Logger) (*Database, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	level := opts.LogLevel
	if level == 0 {
		level = logger.Warn
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedOnbekendePlaats(); err != nil {
		return nil, fmt.Errorf("failed to seed sentinel place: %w", err)
	}

	log.Info().Str("driver", db.Dialector.Name()).Msg("database initialized")

	return database, nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch strings.ToLower(opts.Driver) {
	case "", DriverSQLite:
		path := opts.Path
		if path == "" {
			path = "./beheer.db"
		}
		// Cascading deletes rely on foreign keys, which sqlite leaves off by default.
		if !strings.Contains(path, "?") {
			path += "?_foreign_keys=on"
		}
		return sqlite.Open(path), nil
	case DriverPostgres, "postgresql":
		if opts.DSN == "" {
			return nil, errors.New("postgres driver requires a DSN")
		}
		return postgres.Open(opts.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks the connection is alive.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// seedOnbekendePlaats guarantees the sentinel place with id 1 exists before
// any address is written.
func (d *Database) seedOnbekendePlaats() error {
	var existing entities.Plaats
	err := d.DB.First(&existing, entities.OnbekendePlaatsID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	sentinel := entities.Plaats{
		ID:           entities.OnbekendePlaatsID,
		Postcode:     entities.OnbekendePostcode,
		Deelgemeente: entities.OnbekendeDeelgemeente,
		Gemeente:     entities.OnbekendeDeelgemeente,
		Provincie:    entities.ProvincieOnbekend,
	}
	if err := d.DB.Create(&sentinel).Error; err != nil {
		return err
	}

	if d.DB.Dialector.Name() == DriverPostgres {
		// The explicit id does not advance the serial sequence.
		return d.DB.Exec(`SELECT setval(pg_get_serial_sequence('plaatsen', 'id'), GREATEST((SELECT MAX(id) FROM plaatsen), 1))`).Error
	}
	return nil
}

// Translate maps gorm errors onto the package sentinels so callers outside
// the data layer can use errors.Is without importing gorm.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
