package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LocatiesController struct {
	store LocatieStore
}

func NewLocatiesController(store LocatieStore) *LocatiesController {
	return &LocatiesController{store: store}
}

func (lc *LocatiesController) List(c *gin.Context) {
	list, err := lc.store.List(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "list locaties")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (lc *LocatiesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	l, err := lc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "locatie")
		return
	}
	c.JSON(http.StatusOK, l)
}

func (lc *LocatiesController) Create(c *gin.Context) {
	var req LocatieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	l := req.toEntity()
	if err := lc.store.Create(c.Request.Context(), l); err != nil {
		respondStoreError(c, err, "locatie")
		return
	}
	respondCreated(c, l)
}

func (lc *LocatiesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req LocatieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	l := req.toEntity()
	l.ID = id
	if err := lc.store.Update(c.Request.Context(), l); err != nil {
		respondStoreError(c, err, "locatie")
		return
	}
	c.JSON(http.StatusOK, l)
}

// Delete handles DELETE /api/locaties/:id. Projects held there keep
// existing without a location.
func (lc *LocatiesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := lc.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "locatie")
		return
	}
	respondSuccess(c, "locatie deleted")
}
