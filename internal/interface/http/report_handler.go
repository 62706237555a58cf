package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/complaint-desk/internal/application"
	"github.com/oksasatya/complaint-desk/pkg/response"
)

type ReportHandler struct {
	Reports *application.ReportService
}

func NewReportHandler(reports *application.ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

type categoryJSON struct {
	ID    string `json:"_id"`
	Count int64  `json:"count"`
}

type reportJSON struct {
	Total                int64          `json:"total"`
	Pending              int64          `json:"pending"`
	Resolved             int64          `json:"resolved"`
	ComplaintsByCategory []categoryJSON `json:"complaintsByCategory"`
}

type exportResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// Summary GET /api/report (admin)
func (h *ReportHandler) Summary(c *gin.Context) {
	r, err := h.Reports.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := reportJSON{
		Total:                r.Total,
		Pending:              r.Pending,
		Resolved:             r.Resolved,
		ComplaintsByCategory: make([]categoryJSON, 0, len(r.ByCategory)),
	}
	for _, cc := range r.ByCategory {
		out.ComplaintsByCategory = append(out.ComplaintsByCategory, categoryJSON{ID: cc.Category, Count: cc.Count})
	}
	response.JSON(c, http.StatusOK, out)
}

// Export POST /api/report/export (admin)
func (h *ReportHandler) Export(c *gin.Context) {
	url, err := h.Reports.Export(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, exportResponse{Message: "Report exported", URL: url})
}
