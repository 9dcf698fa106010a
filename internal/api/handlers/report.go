package handlers

import (
	"log/slog"
	"net/http"

	"github.com/inkwell/bookstore/internal/api/middleware"
	service "github.com/inkwell/bookstore/internal/services"
	"github.com/inkwell/bookstore/internal/utils/response"
)

// ReportHandler exposes the admin back-office reports. Every route is
// mounted behind middleware.RequireAdmin and each handler re-checks the
// claim before touching the service.
type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) SalesReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if requireAdmin(w, r) == nil {
			return
		}

		report, err := h.reportService.SalesReport(r.Context())
		if err != nil {
			logger.Error("Failed to build sales report", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, report)
	}
}

func (h *ReportHandler) InventoryReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if requireAdmin(w, r) == nil {
			return
		}

		report, err := h.reportService.InventoryReport(r.Context())
		if err != nil {
			logger.Error("Failed to build inventory report", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, report)
	}
}

func (h *ReportHandler) UserActivityReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if requireAdmin(w, r) == nil {
			return
		}

		report, err := h.reportService.UserActivityReport(r.Context())
		if err != nil {
			logger.Error("Failed to build user activity report", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, report)
	}
}
