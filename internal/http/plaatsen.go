package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vzwadmin/beheer/internal/entities"
	"github.com/vzwadmin/beheer/internal/importers"
)

type PlaatsenController struct {
	store PlaatsStore
}

func NewPlaatsenController(store PlaatsStore) *PlaatsenController {
	return &PlaatsenController{store: store}
}

// List handles GET /api/plaatsen?q=
// q matches a postcode prefix or part of the (deel)gemeente.
func (pc *PlaatsenController) List(c *gin.Context) {
	page, ok := parsePagination(c)
	if !ok {
		return
	}
	list, total, err := pc.store.List(c.Request.Context(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		respondInternalError(c, err, "list plaatsen")
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(list, total, page))
}

func (pc *PlaatsenController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := pc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "plaats")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create handles POST /api/plaatsen. The store derives the province from
// the postcode.
func (pc *PlaatsenController) Create(c *gin.Context) {
	var req PlaatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	postcode := importers.NormalizePostcode(req.Postcode)
	p := &entities.Plaats{
		Postcode:     postcode,
		Deelgemeente: req.Deelgemeente,
		Gemeente:     req.Gemeente,
	}
	if p.Gemeente == "" {
		p.Gemeente = p.Deelgemeente
	}
	if err := pc.store.Create(c.Request.Context(), p); err != nil {
		respondStoreError(c, err, "plaats")
		return
	}
	respondCreated(c, p)
}
