package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AanmeldingenController struct {
	store AanmeldingStore
}

func NewAanmeldingenController(store AanmeldingStore) *AanmeldingenController {
	return &AanmeldingenController{store: store}
}

// ListForProject handles GET /api/projecten/:id/aanmeldingen
func (ac *AanmeldingenController) ListForProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	list, err := ac.store.ListForProject(c.Request.Context(), projectID)
	if err != nil {
		respondInternalError(c, err, "list aanmeldingen")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create handles POST /api/projecten/:id/aanmeldingen
// The first-enrollment flag is derived and cannot be set by the client.
func (ac *AanmeldingenController) Create(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req AanmeldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	a := req.toEntity(projectID)
	if err := ac.store.Create(c.Request.Context(), a); err != nil {
		respondStoreError(c, err, "aanmelding")
		return
	}
	created, err := ac.store.GetByID(c.Request.Context(), a.ID)
	if err != nil {
		respondStoreError(c, err, "aanmelding")
		return
	}
	respondCreated(c, created)
}

func (ac *AanmeldingenController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	a, err := ac.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "aanmelding")
		return
	}
	c.JSON(http.StatusOK, a)
}

// UpdateStatus handles PATCH /api/aanmeldingen/:id
func (ac *AanmeldingenController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	a, err := ac.store.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondStoreError(c, err, "aanmelding")
		return
	}
	c.JSON(http.StatusOK, a)
}

// ReplaceDeelnames handles PUT /api/aanmeldingen/:id/deelnames
func (ac *AanmeldingenController) ReplaceDeelnames(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req DeelnamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	a, err := ac.store.ReplaceDeelnames(c.Request.Context(), id, toDeelnames(req.Deelnames))
	if err != nil {
		respondStoreError(c, err, "aanmelding")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (ac *AanmeldingenController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ac.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "aanmelding")
		return
	}
	respondSuccess(c, "aanmelding deleted")
}
