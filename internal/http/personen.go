package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vzwadmin/beheer/internal/database/personen"
	"github.com/vzwadmin/beheer/internal/entities"
)

// PersonenController serves one person type: deelnemers or overige
// personen.
type PersonenController struct {
	store        PersoonStore
	aanmeldingen AanmeldingStore
	typ          entities.PersoonType
	resource     string
}

func NewPersonenController(store PersoonStore, aanmeldingen AanmeldingStore, typ entities.PersoonType) *PersonenController {
	resource := "deelnemer"
	if typ == entities.PersoonTypeOverigPersoon {
		resource = "persoon"
	}
	return &PersonenController{store: store, aanmeldingen: aanmeldingen, typ: typ, resource: resource}
}

// List handles GET /api/deelnemers and GET /api/overige-personen
// Supports ?q=, ?selectie= (overige personen only), ?limit= and ?offset=.
func (pc *PersonenController) List(c *gin.Context) {
	page, ok := parsePagination(c)
	if !ok {
		return
	}
	filter := personen.Filter{
		Type:   pc.typ,
		Query:  c.Query("q"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if pc.typ == entities.PersoonTypeOverigPersoon {
		filter.Selectie = entities.OverigPersoonSelectie(c.Query("selectie"))
	}

	list, total, err := pc.store.List(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "list "+pc.resource)
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(list, total, page))
}

func (pc *PersonenController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := pc.store.GetByID(c.Request.Context(), id, pc.typ)
	if err != nil {
		respondStoreError(c, err, pc.resource)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (pc *PersonenController) Create(c *gin.Context) {
	var req PersoonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	p := req.toEntity(pc.typ)
	if err := pc.store.Create(c.Request.Context(), p); err != nil {
		respondStoreError(c, err, pc.resource)
		return
	}
	created, err := pc.store.GetByID(c.Request.Context(), p.ID, pc.typ)
	if err != nil {
		respondStoreError(c, err, pc.resource)
		return
	}
	respondCreated(c, created)
}

func (pc *PersonenController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req PersoonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	p := req.toEntity(pc.typ)
	p.ID = id
	if err := pc.store.Update(c.Request.Context(), p); err != nil {
		respondStoreError(c, err, pc.resource)
		return
	}
	updated, err := pc.store.GetByID(c.Request.Context(), id, pc.typ)
	if err != nil {
		respondStoreError(c, err, pc.resource)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (pc *PersonenController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := pc.store.Delete(c.Request.Context(), id, pc.typ); err != nil {
		respondStoreError(c, err, pc.resource)
		return
	}
	respondSuccess(c, pc.resource+" deleted")
}

// Aanmeldingen handles GET /api/deelnemers/:id/aanmeldingen
func (pc *PersonenController) Aanmeldingen(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := pc.store.GetByID(c.Request.Context(), id, pc.typ); err != nil {
		respondStoreError(c, err, pc.resource)
		return
	}
	list, err := pc.aanmeldingen.ListForDeelnemer(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "list aanmeldingen for deelnemer")
		return
	}
	c.JSON(http.StatusOK, list)
}
