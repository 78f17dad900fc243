package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vzwadmin/beheer/internal/entities"
	"github.com/vzwadmin/beheer/internal/importers"
)

// ImportQueue schedules a seeding run in the background.
type ImportQueue interface {
	EnqueueSeedRun(ctx context.Context, readonly, dryRun bool, stages []string) (*entities.ImportRun, error)
}

type ImportsController struct {
	runs  ImportRunStore
	queue ImportQueue
}

func NewImportsController(runs ImportRunStore, queue ImportQueue) *ImportsController {
	return &ImportsController{runs: runs, queue: queue}
}

// Start handles POST /api/imports. The run executes asynchronously; poll
// GET /api/imports/:id for its status.
func (ic *ImportsController) Start(c *gin.Context) {
	if ic.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "background imports are not configured")
		return
	}
	var req ImportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
	}
	if len(req.Stages) > 0 {
		known := map[string]bool{}
		for _, s := range importers.NewPipeline(nil, nil, importers.Options{}).Stages() {
			known[s] = true
		}
		for _, s := range req.Stages {
			if !known[s] {
				respondBadRequest(c, "unknown stage "+strconv.Quote(s))
				return
			}
		}
	}

	run, err := ic.queue.EnqueueSeedRun(c.Request.Context(), req.Readonly, req.DryRun, req.Stages)
	if err != nil {
		respondInternalError(c, err, "enqueue import")
		return
	}
	respondAccepted(c, "import queued", run)
}

// List handles GET /api/imports?limit=
func (ic *ImportsController) List(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			respondBadRequest(c, "invalid limit")
			return
		}
		limit = n
	}
	runs, err := ic.runs.List(c.Request.Context(), limit)
	if err != nil {
		respondInternalError(c, err, "list imports")
		return
	}
	c.JSON(http.StatusOK, runs)
}

func (ic *ImportsController) Get(c *gin.Context) {
	run, err := ic.runs.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err, "import")
		return
	}
	c.JSON(http.StatusOK, run)
}
