package attendancehandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"gearhr/internal/domain/attendance"
	"gearhr/internal/domain/auth"
	"gearhr/internal/domain/hr"
	"gearhr/internal/transport/http/api"
	"gearhr/internal/transport/http/middleware"
	"gearhr/internal/transport/http/shared"
)

type Handler struct {
	HR    *hr.Service
	Perms middleware.PermissionStore
}

func NewHandler(service *hr.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{HR: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAttendanceRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermAttendanceWrite, h.Perms)).Post("/", h.handleRecord)
		r.With(middleware.RequirePermission(auth.PermSystemAdmin, h.Perms)).Delete("/", h.handleClear)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Delete("/employees/{employeeID}", h.handleRemoveFor)
	})
}

type recordRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	TimeIn     string `json:"timeIn"`
	TimeOut    string `json:"timeOut"`
}

type recordView struct {
	attendance.Record
	HoursWorked string `json:"hoursWorked"`
}

func view(record attendance.Record) recordView {
	return recordView{Record: record, HoursWorked: record.HoursWorked()}
}

func statusNames() []string {
	names := make([]string, len(attendance.Statuses))
	for i, s := range attendance.Statuses {
		names[i] = string(s)
	}
	return names
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	employeeID := strings.TrimSpace(r.URL.Query().Get("employeeId"))
	if shared.SelfOnly(user) {
		if employeeID != "" && employeeID != user.UserID {
			api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", reqID)
			return
		}
		employeeID = user.UserID
	}
	from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	v := shared.NewValidator()
	if from != "" {
		v.Date("from", from)
	}
	if to != "" {
		v.Date("to", to)
	}
	if v.Reject(w, reqID) {
		return
	}
	from, _ = shared.NormalizeDate(from)
	to, _ = shared.NormalizeDate(to)

	records := h.HR.ListAttendance(employeeID)
	out := make([]recordView, 0, len(records))
	for _, record := range records {
		if from != "" && record.Date < from {
			continue
		}
		if to != "" && record.Date > to {
			continue
		}
		out = append(out, view(record))
	}
	shared.SetTotal(w, len(out))
	api.Success(w, shared.Page(out, shared.ParsePagination(r, 200, 1000)), reqID)
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	var req recordRequest
	if !shared.DecodeJSON(w, r, &req, reqID) {
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", req.EmployeeID, "is required")
	v.Required("date", req.Date, "is required")
	v.Required("status", req.Status, "is required")
	v.Enum("status", req.Status, statusNames(), "must be one of "+strings.Join(statusNames(), ", "))
	if v.Reject(w, reqID) {
		return
	}
	if !shared.CanAccess(user, strings.TrimSpace(req.EmployeeID)) {
		api.Fail(w, http.StatusForbidden, "forbidden", "employees may only record their own attendance", reqID)
		return
	}

	record, err := h.HR.RecordAttendance(r.Context(), req.EmployeeID, req.Date, req.Status, req.TimeIn, req.TimeOut)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, view(record), reqID)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	removed, err := h.HR.ClearAllAttendance(r.Context())
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]int{"removed": removed}, reqID)
}

func (h *Handler) handleRemoveFor(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	removed, err := h.HR.RemoveAttendanceFor(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, map[string]int{"removed": removed}, reqID)
}
