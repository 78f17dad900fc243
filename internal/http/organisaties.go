package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type OrganisatiesController struct {
	store OrganisatieStore
}

func NewOrganisatiesController(store OrganisatieStore) *OrganisatiesController {
	return &OrganisatiesController{store: store}
}

// List handles GET /api/organisaties?q=&limit=&offset=
func (oc *OrganisatiesController) List(c *gin.Context) {
	page, ok := parsePagination(c)
	if !ok {
		return
	}
	list, total, err := oc.store.List(c.Request.Context(), c.Query("q"), page.Limit, page.Offset)
	if err != nil {
		respondInternalError(c, err, "list organisaties")
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(list, total, page))
}

func (oc *OrganisatiesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	o, err := oc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "organisatie")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (oc *OrganisatiesController) Create(c *gin.Context) {
	var req OrganisatieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	o := req.toEntity()
	if err := oc.store.Create(c.Request.Context(), o); err != nil {
		respondStoreError(c, err, "organisatie")
		return
	}
	respondCreated(c, o)
}

func (oc *OrganisatiesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req OrganisatieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	o := req.toEntity()
	o.ID = id
	if err := oc.store.Update(c.Request.Context(), o); err != nil {
		respondStoreError(c, err, "organisatie")
		return
	}
	c.JSON(http.StatusOK, o)
}

func (oc *OrganisatiesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := oc.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "organisatie")
		return
	}
	respondSuccess(c, "organisatie deleted")
}
