package payrollhandler

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"gearhr/internal/domain/auth"
	"gearhr/internal/domain/hr"
	"gearhr/internal/domain/payroll"
	"gearhr/internal/domain/reports"
	"gearhr/internal/transport/http/api"
	"gearhr/internal/transport/http/middleware"
	"gearhr/internal/transport/http/shared"
)

type Handler struct {
	HR       *hr.Service
	Payslips *reports.Service
	Perms    middleware.PermissionStore
	Now      func() time.Time
}

func NewHandler(service *hr.Service, payslips *reports.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{HR: service, Payslips: payslips, Perms: perms, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Post("/calculate", h.handleCalculate)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Get("/payslips/{payslipID}", h.handleOpenPayslip)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/", h.handleGet)
			r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Put("/", h.handleUpdate)
			r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/defaults", h.handleDefaults)
			r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/payslip", h.handlePayslip)
		})
	})
}

type amountsRequest struct {
	BaseSalary        float64 `json:"baseSalary"`
	RiceSubsidy       float64 `json:"riceSubsidy"`
	PhoneAllowance    float64 `json:"phoneAllowance"`
	ClothingAllowance float64 `json:"clothingAllowance"`
}

func (req amountsRequest) validate(v *shared.Validator) {
	v.Amount("baseSalary", req.BaseSalary)
	v.Amount("riceSubsidy", req.RiceSubsidy)
	v.Amount("phoneAllowance", req.PhoneAllowance)
	v.Amount("clothingAllowance", req.ClothingAllowance)
}

func (req amountsRequest) record(employeeID string) payroll.Record {
	return payroll.Record{
		EmployeeID:        employeeID,
		BaseSalary:        req.BaseSalary,
		RiceSubsidy:       req.RiceSubsidy,
		PhoneAllowance:    req.PhoneAllowance,
		ClothingAllowance: req.ClothingAllowance,
		Deductions:        payroll.BracketComputed{},
	}
}

type defaultsRequest struct {
	Position   string  `json:"position"`
	BaseSalary float64 `json:"baseSalary"`
}

// defaultsResponse pairs the record with the position defaults it was built
// from, including the flat tax rate older flat-rate records would use.
type defaultsResponse struct {
	Payroll  payroll.Totals   `json:"payroll"`
	Defaults payroll.Defaults `json:"defaults"`
}

// handleCalculate runs the deduction calculator without touching any store.
func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	var req amountsRequest
	if !shared.DecodeJSON(w, r, &req, reqID) {
		return
	}
	v := shared.NewValidator()
	req.validate(v)
	if v.Reject(w, reqID) {
		return
	}
	totals, err := req.record("").Compute()
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, totals, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())

	records := h.HR.ListPayroll()
	out := make([]payroll.Totals, 0, len(records))
	for _, record := range records {
		if !shared.CanAccess(user, record.EmployeeID) {
			continue
		}
		totals, err := record.Compute()
		if err != nil {
			api.FailError(w, err, reqID)
			return
		}
		out = append(out, totals)
	}
	shared.SetTotal(w, len(out))
	api.Success(w, shared.Page(out, shared.ParsePagination(r, 100, 500)), reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !h.allowed(w, r, employeeID) {
		return
	}
	summary, err := h.HR.PayrollSummary(employeeID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, summary, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	var req amountsRequest
	if !shared.DecodeJSON(w, r, &req, reqID) {
		return
	}
	v := shared.NewValidator()
	req.validate(v)
	if v.Reject(w, reqID) {
		return
	}

	record, err := h.HR.UpdatePayroll(r.Context(), employeeID, req.record(employeeID))
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	totals, err := record.Compute()
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	api.Success(w, totals, reqID)
}

func (h *Handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	var req defaultsRequest
	if !shared.DecodeJSON(w, r, &req, reqID) {
		return
	}
	v := shared.NewValidator()
	v.Amount("baseSalary", req.BaseSalary)
	if v.Reject(w, reqID) {
		return
	}

	record, created, err := h.HR.GetOrCreatePayroll(r.Context(), employeeID, req.Position, req.BaseSalary)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	totals, err := record.Compute()
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	position := req.Position
	if strings.TrimSpace(position) == "" {
		if emp, err := h.HR.GetEmployee(employeeID); err == nil {
			position = emp.Position
		}
	}
	resp := defaultsResponse{Payroll: totals, Defaults: payroll.DefaultsFor(position)}
	if created {
		api.Created(w, resp, reqID)
		return
	}
	api.Success(w, resp, reqID)
}

// handlePayslip renders a payslip PDF. With save=true the PDF is stored
// under the payslip directory and its id is returned instead.
func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !h.allowed(w, r, employeeID) {
		return
	}
	period, err := shared.PeriodLabel(r.URL.Query().Get("period"))
	if err != nil {
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "period", Reason: "must be a month in YYYY-MM format"}})
		return
	}

	emp, err := h.HR.GetEmployee(employeeID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	record, err := h.HR.GetPayroll(employeeID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	slip, err := reports.BuildPayslip(emp, record, period, h.Now())
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}

	if save, _ := strconv.ParseBool(r.URL.Query().Get("save")); save {
		user, _ := middleware.GetUser(r.Context())
		if ok, err := h.Perms.HasPermission(r.Context(), user.RoleName, auth.PermPayrollWrite); err != nil || !ok {
			api.Fail(w, http.StatusForbidden, "forbidden", "saving payslips requires payroll write access", reqID)
			return
		}
		saved, err := h.Payslips.SavePayslip(slip)
		if err != nil {
			api.FailError(w, err, reqID)
			return
		}
		api.Created(w, saved, reqID)
		return
	}

	var buf bytes.Buffer
	if err := reports.RenderPayslipPDF(&buf, slip); err != nil {
		api.FailError(w, err, reqID)
		return
	}
	name := "payslip-" + employeeID + "-" + strings.ReplaceAll(slip.Period, " ", "-") + ".pdf"
	writePDF(w, name, buf.Bytes())
}

func (h *Handler) handleOpenPayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	payslipID := chi.URLParam(r, "payslipID")
	data, err := h.Payslips.OpenPayslip(payslipID)
	if err != nil {
		api.FailError(w, err, reqID)
		return
	}
	writePDF(w, payslipID+".pdf", data)
}

func (h *Handler) allowed(w http.ResponseWriter, r *http.Request, employeeID string) bool {
	user, _ := middleware.GetUser(r.Context())
	if shared.CanAccess(user, employeeID) {
		return true
	}
	api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
	return false
}

func writePDF(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
