package http

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vzwadmin/beheer/internal/database/rapportages"
	"github.com/vzwadmin/beheer/internal/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportRunner executes a named report.
type ReportRunner interface {
	Run(ctx context.Context, name string, filter reports.Filter) (*rapportages.Table, error)
}

type RapportagesController struct {
	runner ReportRunner
}

func NewRapportagesController(runner ReportRunner) *RapportagesController {
	return &RapportagesController{runner: runner}
}

type reportInfo struct {
	Naam  string `json:"naam"`
	Titel string `json:"titel"`
}

type reportResponse struct {
	Naam  string `json:"naam"`
	Titel string `json:"titel"`
	Jaar  int    `json:"jaar,omitempty"`
	*rapportages.Table
}

// List handles GET /api/rapportages
func (rc *RapportagesController) List(c *gin.Context) {
	names := reports.Names()
	out := make([]reportInfo, 0, len(names))
	for _, name := range names {
		out = append(out, reportInfo{Naam: name, Titel: reports.Title(name)})
	}
	c.JSON(http.StatusOK, out)
}

// Run handles GET /api/rapportages/:naam?jaar=&format=json|xlsx
func (rc *RapportagesController) Run(c *gin.Context) {
	name := c.Param("naam")
	var filter reports.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondValidationError(c, err)
		return
	}
	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "xlsx" {
		respondBadRequest(c, "format must be json or xlsx")
		return
	}

	table, err := rc.runner.Run(c.Request.Context(), name, filter)
	if errors.Is(err, reports.ErrUnknownReport) {
		respondNotFound(c, "rapportage")
		return
	}
	if err != nil {
		respondInternalError(c, err, "run rapportage "+name)
		return
	}

	if format == "json" {
		c.JSON(http.StatusOK, reportResponse{Naam: name, Titel: reports.Title(name), Jaar: filter.Jaar, Table: table})
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteXLSX(&buf, name, table); err != nil {
		respondInternalError(c, err, "render rapportage "+name)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".xlsx"))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
