package handlers

import (
	"net/http"
	"time"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/response"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/service"
)

// ReportHandler handles HTTP requests for dashboard aggregates.
type ReportHandler struct {
	reportService   *service.ReportService
	snapshotService *service.SnapshotService
}

// NewReportHandler creates a new ReportHandler with the provided service dependencies.
func NewReportHandler(reportService *service.ReportService, snapshotService *service.SnapshotService) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		snapshotService: snapshotService,
	}
}

// Summary handles GET requests for the dashboard summary: all funds, the
// organization-wide balance, this month's net growth, the average monthly
// growth over the last twelve full months, and recent transactions.
//
// Endpoint: GET /api/summary
// Response: 200 OK with Summary
func (h *ReportHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.reportService.Summary(time.Now().UTC())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// RunSnapshot handles POST requests to snapshot fund balances on demand,
// outside the monthly schedule.
//
// Endpoint: POST /api/snapshot/run
// Response: 200 OK with {"fundsSnapshotted": n}
func (h *ReportHandler) RunSnapshot(w http.ResponseWriter, r *http.Request) {
	count, err := h.snapshotService.Run(r.Context(), time.Now().UTC())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "snapshot run failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]int{"fundsSnapshotted": count})
}
