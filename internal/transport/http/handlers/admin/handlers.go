package adminhandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gearhr/internal/domain/auth"
	"gearhr/internal/domain/hr"
	"gearhr/internal/platform/jobs"
	"gearhr/internal/platform/metrics"
	"gearhr/internal/transport/http/api"
	"gearhr/internal/transport/http/middleware"
)

type Handler struct {
	HR      *hr.Service
	Jobs    *jobs.Service
	Metrics *metrics.Collector
	Perms   middleware.PermissionStore
}

func NewHandler(service *hr.Service, jobService *jobs.Service, collector *metrics.Collector, perms middleware.PermissionStore) *Handler {
	return &Handler{HR: service, Jobs: jobService, Metrics: collector, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermSystemAdmin, h.Perms))
		r.Post("/refresh", h.handleRefresh)
		r.Post("/backup", h.handleBackup)
		r.Get("/jobs", h.handleJobs)
		if h.Metrics != nil {
			r.Get("/metrics", h.handleMetrics)
		}
	})
}

// handleRefresh reloads every store from its backend. It runs through the
// job service so it appears in the run history.
func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var report hr.LoadReport
	run, err := h.Jobs.RunNow(r.Context(), jobs.JobRefresh, func(ctx context.Context) (any, error) {
		var err error
		report, err = h.HR.Refresh(ctx)
		return report, err
	})
	if err != nil {
		if h.Metrics != nil {
			h.Metrics.RecordPersistenceFailure()
		}
		api.FailWithDetails(w, http.StatusServiceUnavailable, "refresh_failed", "one or more stores failed to reload", run, reqID)
		return
	}
	api.Success(w, run, reqID)
}

func (h *Handler) handleBackup(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	run, err := h.Jobs.Backup(r.Context())
	if err != nil {
		api.FailWithDetails(w, http.StatusInternalServerError, "backup_failed", "workbook backup failed", run, reqID)
		return
	}
	api.Created(w, run, reqID)
}

func (h *Handler) handleJobs(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Jobs.Runs(), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
}
