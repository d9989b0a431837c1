package employeeshandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"gearhr/internal/domain/auth"
	"gearhr/internal/domain/core"
	"gearhr/internal/domain/hr"
	"gearhr/internal/domain/payroll"
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
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleCreate)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Put("/", h.handleUpsert)
			r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Delete("/", h.handleDelete)
		})
	})
}

type employeeRequest struct {
	EmployeeNumber   string         `json:"employeeNumber"`
	LastName         string         `json:"lastName"`
	FirstName        string         `json:"firstName"`
	SSSNumber        string         `json:"sssNumber"`
	PhilHealthNumber string         `json:"philHealthNumber"`
	TIN              string         `json:"tin"`
	PagIbigNumber    string         `json:"pagIbigNumber"`
	Email            string         `json:"email"`
	Position         string         `json:"position"`
	Address          string         `json:"address"`
	Phone            string         `json:"phone"`
	BaseSalary       *float64       `json:"baseSalary,omitempty"`
	Allowances       *hr.Allowances `json:"allowances,omitempty"`
}

func (req employeeRequest) employee() core.Employee {
	return core.Employee{
		EmployeeNumber:   req.EmployeeNumber,
		LastName:         req.LastName,
		FirstName:        req.FirstName,
		SSSNumber:        req.SSSNumber,
		PhilHealthNumber: req.PhilHealthNumber,
		TIN:              req.TIN,
		PagIbigNumber:    req.PagIbigNumber,
		Email:            req.Email,
		Position:         req.Position,
		Address:          req.Address,
		Phone:            req.Phone,
	}
}

type createResponse struct {
	Employee core.Employee  `json:"employee"`
	Payroll  payroll.Totals `json:"payroll"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	position := strings.TrimSpace(r.URL.Query().Get("position"))
	all := h.HR.ListEmployees()
	filtered := make([]core.Employee, 0, len(all))
	for _, emp := range all {
		if !shared.CanAccess(user, emp.EmployeeNumber) {
			continue
		}
		if position != "" && !strings.EqualFold(emp.Position, position) {
			continue
		}
		core.FilterEmployeeFields(&emp, user.RoleName, emp.EmployeeNumber == user.UserID)
		filtered = append(filtered, emp)
	}

	shared.SetTotal(w, len(filtered))
	api.Success(w, shared.Page(filtered, shared.ParsePagination(r, 100, 500)), reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !shared.CanAccess(user, employeeID) {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", reqID)
		return
	}

	emp, err := h.HR.GetEmployee(employeeID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	core.FilterEmployeeFields(&emp, user.RoleName, employeeID == user.UserID)
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var req employeeRequest
	if !shared.DecodeJSON(w, r, &req, reqID) {
		return
	}

	v := shared.NewValidator()
	v.Required("employeeNumber", req.EmployeeNumber, "is required")
	v.Required("lastName", req.LastName, "is required")
	v.Required("firstName", req.FirstName, "is required")
	if req.BaseSalary == nil {
		v.Add("baseSalary", "is required")
	} else {
		v.Amount("baseSalary", *req.BaseSalary)
	}
	if req.Allowances != nil {
		v.Amount("allowances.riceSubsidy", req.Allowances.RiceSubsidy)
		v.Amount("allowances.phoneAllowance", req.Allowances.PhoneAllowance)
		v.Amount("allowances.clothingAllowance", req.Allowances.ClothingAllowance)
	}
	if v.Reject(w, reqID) {
		return
	}

	emp, record, err := h.HR.CreateEmployee(r.Context(), req.employee(), *req.BaseSalary, req.Allowances)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	totals, err := record.Compute()
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Created(w, createResponse{Employee: emp, Payroll: totals}, reqID)
}

func (h *Handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	var req employeeRequest
	if !shared.DecodeJSON(w, r, &req, reqID) {
		return
	}
	if req.BaseSalary != nil || req.Allowances != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "payroll fields are updated through /payroll", reqID)
		return
	}
	if req.EmployeeNumber == "" {
		req.EmployeeNumber = employeeID
	}
	if strings.TrimSpace(req.EmployeeNumber) != employeeID {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "employeeNumber", Reason: "must match the path"}})
		return
	}

	emp := req.employee()
	created, err := h.HR.UpsertEmployee(r.Context(), emp)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	stored, err := h.HR.GetEmployee(employeeID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	if created {
		api.Created(w, stored, reqID)
		return
	}
	api.Success(w, stored, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	result, err := h.HR.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, result, reqID)
}
