package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
// A nil store leaves its routes unregistered.
type RouterConfig struct {
	Personen     PersoonStore
	Organisaties OrganisatieStore
	Plaatsen     PlaatsStore
	Locaties     LocatieStore
	Projecten    ProjectStore
	Aanmeldingen AanmeldingStore
	ImportRuns   ImportRunStore
	Reports      ReportRunner

	// ImportQueue is nil when background tasks are disabled; POST
	// /api/imports then answers 503.
	ImportQueue ImportQueue

	// Logger receives internal errors. The zero value discards them.
	Logger zerolog.Logger

	// Health
	DB      Pinger
	Version string

	// Observability
	MetricsHandler    http.Handler
	MetricsMiddleware gin.HandlerFunc
}
