package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vzwadmin/beheer/internal/entities"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if err := registerValidators(); err != nil {
		panic(err)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(requestLogger(cfg.Logger))
	router.Use(SecurityHeadersMiddleware())
	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	healthController := NewHealthController(cfg.DB, cfg.Version)
	router.GET("/health", healthController.Status)
	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := router.Group("/api")

	if cfg.Personen != nil {
		deelnemers := NewPersonenController(cfg.Personen, cfg.Aanmeldingen, entities.PersoonTypeDeelnemer)
		api.GET("/deelnemers", deelnemers.List)
		api.POST("/deelnemers", deelnemers.Create)
		api.GET("/deelnemers/:id", deelnemers.Get)
		api.PUT("/deelnemers/:id", deelnemers.Update)
		api.DELETE("/deelnemers/:id", deelnemers.Delete)
		if cfg.Aanmeldingen != nil {
			api.GET("/deelnemers/:id/aanmeldingen", deelnemers.Aanmeldingen)
		}

		overigen := NewPersonenController(cfg.Personen, cfg.Aanmeldingen, entities.PersoonTypeOverigPersoon)
		api.GET("/overige-personen", overigen.List)
		api.POST("/overige-personen", overigen.Create)
		api.GET("/overige-personen/:id", overigen.Get)
		api.PUT("/overige-personen/:id", overigen.Update)
		api.DELETE("/overige-personen/:id", overigen.Delete)
	}

	if cfg.Organisaties != nil {
		organisaties := NewOrganisatiesController(cfg.Organisaties)
		api.GET("/organisaties", organisaties.List)
		api.POST("/organisaties", organisaties.Create)
		api.GET("/organisaties/:id", organisaties.Get)
		api.PUT("/organisaties/:id", organisaties.Update)
		api.DELETE("/organisaties/:id", organisaties.Delete)
	}

	if cfg.Plaatsen != nil {
		plaatsen := NewPlaatsenController(cfg.Plaatsen)
		api.GET("/plaatsen", plaatsen.List)
		api.POST("/plaatsen", plaatsen.Create)
		api.GET("/plaatsen/:id", plaatsen.Get)
	}

	if cfg.Locaties != nil {
		locaties := NewLocatiesController(cfg.Locaties)
		api.GET("/locaties", locaties.List)
		api.POST("/locaties", locaties.Create)
		api.GET("/locaties/:id", locaties.Get)
		api.PUT("/locaties/:id", locaties.Update)
		api.DELETE("/locaties/:id", locaties.Delete)
	}

	if cfg.Projecten != nil {
		projecten := NewProjectenController(cfg.Projecten)
		api.GET("/projecten", projecten.List)
		api.POST("/projecten", projecten.Create)
		api.GET("/projecten/:id", projecten.Get)
		api.PUT("/projecten/:id", projecten.Update)
		api.DELETE("/projecten/:id", projecten.Delete)
		api.POST("/projecten/:id/activiteiten", projecten.AddActiviteit)
		api.POST("/projecten/:id/begeleiders", projecten.AddBegeleider)
	}

	if cfg.Aanmeldingen != nil {
		aanmeldingen := NewAanmeldingenController(cfg.Aanmeldingen)
		api.GET("/projecten/:id/aanmeldingen", aanmeldingen.ListForProject)
		api.POST("/projecten/:id/aanmeldingen", aanmeldingen.Create)
		api.GET("/aanmeldingen/:id", aanmeldingen.Get)
		api.PATCH("/aanmeldingen/:id", aanmeldingen.UpdateStatus)
		api.DELETE("/aanmeldingen/:id", aanmeldingen.Delete)
		api.PUT("/aanmeldingen/:id/deelnames", aanmeldingen.ReplaceDeelnames)
	}

	if cfg.Reports != nil {
		rapportages := NewRapportagesController(cfg.Reports)
		api.GET("/rapportages", rapportages.List)
		api.GET("/rapportages/:naam", rapportages.Run)
	}

	if cfg.ImportRuns != nil {
		imports := NewImportsController(cfg.ImportRuns, cfg.ImportQueue)
		api.POST("/imports", imports.Start)
		api.GET("/imports", imports.List)
		api.GET("/imports/:id", imports.Get)
	}

	return router
}
