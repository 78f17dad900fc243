package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/vzwadmin/beheer/internal/database"
	"github.com/vzwadmin/beheer/internal/database/aanmeldingen"
	"github.com/vzwadmin/beheer/internal/database/importruns"
	"github.com/vzwadmin/beheer/internal/database/locaties"
	"github.com/vzwadmin/beheer/internal/database/organisaties"
	"github.com/vzwadmin/beheer/internal/database/personen"
	"github.com/vzwadmin/beheer/internal/database/plaatsen"
	"github.com/vzwadmin/beheer/internal/database/projecten"
	"github.com/vzwadmin/beheer/internal/database/seedstore"
	"github.com/vzwadmin/beheer/internal/http"
	"github.com/vzwadmin/beheer/internal/importers"
	"github.com/vzwadmin/beheer/internal/metrics"
	"github.com/vzwadmin/beheer/internal/output"
	"github.com/vzwadmin/beheer/internal/reports"
	"github.com/vzwadmin/beheer/internal/seeding"
	"github.com/vzwadmin/beheer/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.PersoonStore = (*personen.Repository)(nil)
var _ http.OrganisatieStore = (*organisaties.Repository)(nil)
var _ http.PlaatsStore = (*plaatsen.Repository)(nil)
var _ http.LocatieStore = (*locaties.Repository)(nil)
var _ http.ProjectStore = (*projecten.Repository)(nil)
var _ http.AanmeldingStore = (*aanmeldingen.Repository)(nil)
var _ http.ImportRunStore = (*importruns.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Seeding
// =============================================================================

// Store implementations
var _ importers.Store = (*seedstore.Store)(nil)

// Sink implementations
var _ output.Sink = (*output.FS)(nil)
var _ output.Sink = (*output.S3)(nil)
var _ output.Sink = (*output.Memory)(nil)

// Observer implementations
var _ importers.Observer = (*metrics.Metrics)(nil)
var _ seeding.Observer = (*metrics.Metrics)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.SeedExecutor = (*seeding.Service)(nil)
var _ tasks.ImportRunCleaner = (*importruns.Repository)(nil)
var _ http.ImportQueue = (*tasks.SeedRunEnqueuer)(nil)
var _ http.ReportRunner = (*reports.Service)(nil)
