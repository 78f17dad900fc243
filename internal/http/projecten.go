package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vzwadmin/beheer/internal/database/projecten"
	"github.com/vzwadmin/beheer/internal/entities"
)

type ProjectenController struct {
	store ProjectStore
}

func NewProjectenController(store ProjectStore) *ProjectenController {
	return &ProjectenController{store: store}
}

type BegeleiderRequest struct {
	PersoonID uint `json:"persoon_id" binding:"required"`
}

// List handles GET /api/projecten
// Supports ?type=cursus|vakantie, ?jaar=, ?q=, ?limit= and ?offset=.
func (pc *ProjectenController) List(c *gin.Context) {
	page, ok := parsePagination(c)
	if !ok {
		return
	}
	filter := projecten.Filter{
		Type:   entities.ProjectType(c.Query("type")),
		Query:  c.Query("q"),
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	if filter.Type != "" && filter.Type != entities.ProjectTypeCursus && filter.Type != entities.ProjectTypeVakantie {
		respondBadRequest(c, "type must be cursus or vakantie")
		return
	}
	if raw := c.Query("jaar"); raw != "" {
		jaar, err := strconv.Atoi(raw)
		if err != nil || jaar < 0 {
			respondBadRequest(c, "invalid jaar")
			return
		}
		filter.Jaar = jaar
	}

	list, total, err := pc.store.List(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "list projecten")
		return
	}
	c.JSON(http.StatusOK, newPaginatedResponse(list, total, page))
}

func (pc *ProjectenController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := pc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "project")
		return
	}
	c.JSON(http.StatusOK, p)
}

// Create handles POST /api/projecten. Activities may be passed inline.
func (pc *ProjectenController) Create(c *gin.Context) {
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	p, err := req.toEntity()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if err := pc.store.Create(c.Request.Context(), p); err != nil {
		respondStoreError(c, err, "project")
		return
	}
	created, err := pc.store.GetByID(c.Request.Context(), p.ID)
	if err != nil {
		respondStoreError(c, err, "project")
		return
	}
	respondCreated(c, created)
}

// Update handles PUT /api/projecten/:id. Inline activities are ignored;
// use POST /api/projecten/:id/activiteiten to add one.
func (pc *ProjectenController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	p, err := req.toEntity()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	p.ID = id
	p.Activiteiten = nil
	if err := pc.store.Update(c.Request.Context(), p); err != nil {
		respondStoreError(c, err, "project")
		return
	}
	updated, err := pc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err, "project")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (pc *ProjectenController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := pc.store.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err, "project")
		return
	}
	respondSuccess(c, "project deleted")
}

// AddActiviteit handles POST /api/projecten/:id/activiteiten
func (pc *ProjectenController) AddActiviteit(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req ActiviteitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	a, err := req.toEntity()
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	a.ProjectID = id
	if err := pc.store.AddActiviteit(c.Request.Context(), &a); err != nil {
		respondStoreError(c, err, "project")
		return
	}
	respondCreated(c, a)
}

// AddBegeleider handles POST /api/projecten/:id/begeleiders
func (pc *ProjectenController) AddBegeleider(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req BegeleiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	if err := pc.store.AddBegeleider(c.Request.Context(), id, req.PersoonID); err != nil {
		respondStoreError(c, err, "begeleider")
		return
	}
	respondSuccess(c, "begeleider added")
}
