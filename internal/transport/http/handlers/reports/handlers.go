package reportshandler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"gearhr/internal/domain/auth"
	"gearhr/internal/domain/hr"
	"gearhr/internal/domain/reports"
	"gearhr/internal/transport/http/api"
	"gearhr/internal/transport/http/middleware"
)

type Handler struct {
	HR    *hr.Service
	Perms middleware.PermissionStore
}

func NewHandler(service *hr.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{HR: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/workbook", h.handleWorkbook)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/register", h.handleRegister)
	})
}

func (h *Handler) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var buf bytes.Buffer
	if err := reports.WriteWorkbook(&buf, h.HR.Snapshot()); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	name := "gearhr-" + time.Now().UTC().Format("20060102") + ".xlsx"
	writeAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", name, buf.Bytes())
}

// handleRegister returns the payroll register as JSON, or as CSV when
// format=csv.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	rows, err := reports.BuildRegister(h.HR.Snapshot())
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	if !strings.EqualFold(r.URL.Query().Get("format"), "csv") {
		api.Success(w, rows, reqID)
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteRegisterCSV(&buf, rows); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	writeAttachment(w, "text/csv; charset=utf-8", "payroll-register.csv", buf.Bytes())
}

func writeAttachment(w http.ResponseWriter, contentType, name string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
