package hr

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"gearhr/internal/domain/apperr"
	"gearhr/internal/domain/attendance"
	"gearhr/internal/domain/core"
	"gearhr/internal/domain/payroll"
	"gearhr/internal/platform/recordstore"
)

// Service owns the employee, payroll and attendance stores and keeps them
// consistent with each other. Reads go straight to the stores; writes are
// serialized by mu so multi-store operations do not interleave.
type Service struct {
	mu         sync.Mutex
	employees  *recordstore.Store[string, core.Employee]
	payroll    *recordstore.Store[string, payroll.Record]
	attendance *recordstore.Store[attendance.Key, attendance.Record]
}

func New(backends Backends) *Service {
	return &Service{
		employees:  recordstore.New[string, core.Employee](backends.Employees, core.Codec{}),
		payroll:    recordstore.New[string, payroll.Record](backends.Payroll, payroll.Codec{}),
		attendance: recordstore.New[attendance.Key, attendance.Record](backends.Attendance, attendance.Codec{}),
	}
}

// Open builds a Service and loads it. The Service is always returned: a store
// that failed to load stays empty and the joined load errors are returned
// alongside for the caller to report.
func Open(ctx context.Context, backends Backends, opts Options) (*Service, LoadReport, error) {
	svc := New(backends)
	report, err := svc.Load(ctx, opts)
	return svc, report, err
}

// Load reads all three stores. A store that loads successfully with zero
// records is seeded with sample data when enabled. Legacy flat-rate payroll
// rows are converted and written back. A store that fails to load keeps its
// previous contents and is neither seeded nor rewritten.
func (s *Service) Load(ctx context.Context, opts Options) (LoadReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var report LoadReport
	var errs []error

	stats, err := s.employees.Load(ctx)
	report.Employees = stats
	if err != nil {
		errs = append(errs, err)
	} else if opts.SeedSampleData && stats.Loaded == 0 {
		if err := s.employees.PutAll(ctx, SampleEmployees()...); err != nil {
			errs = append(errs, err)
		} else {
			report.SeededEmployees = true
			slog.Info("seeded sample employees", "store", s.employees.Name())
		}
	}

	stats, err = s.payroll.Load(ctx)
	report.Payroll = stats
	if err != nil {
		errs = append(errs, err)
	} else {
		migrated, err := s.migratePayrollLocked(ctx)
		report.MigratedPayroll = migrated
		if err != nil {
			errs = append(errs, err)
		}
		if err == nil && opts.SeedSampleData && stats.Loaded == 0 {
			if err := s.payroll.PutAll(ctx, SamplePayroll()...); err != nil {
				errs = append(errs, err)
			} else {
				report.SeededPayroll = true
				slog.Info("seeded sample payroll", "store", s.payroll.Name())
			}
		}
	}

	stats, err = s.attendance.Load(ctx)
	report.Attendance = stats
	if err != nil {
		errs = append(errs, err)
	}

	return report, errors.Join(errs...)
}

// Refresh reloads every store from its backend without seeding.
func (s *Service) Refresh(ctx context.Context) (LoadReport, error) {
	return s.Load(ctx, Options{})
}

func (s *Service) migratePayrollLocked(ctx context.Context) (int, error) {
	var converted []payroll.Record
	for _, record := range s.payroll.List() {
		if record.Normalize() {
			converted = append(converted, record)
		}
	}
	if len(converted) == 0 {
		return 0, nil
	}
	if err := s.payroll.PutAll(ctx, converted...); err != nil {
		return 0, err
	}
	slog.Info("converted legacy payroll rows", "store", s.payroll.Name(), "count", len(converted))
	return len(converted), nil
}

func (s *Service) ListEmployees() []core.Employee {
	list := s.employees.List()
	slices.SortStableFunc(list, func(a, b core.Employee) int {
		return compareIDs(a.EmployeeNumber, b.EmployeeNumber)
	})
	return list
}

func (s *Service) GetEmployee(id string) (core.Employee, error) {
	emp, ok := s.employees.Get(id)
	if !ok {
		return core.Employee{}, apperr.NotFound("employee", id)
	}
	return emp, nil
}

// UpsertEmployee validates and stores emp, reporting whether it was new.
func (s *Service) UpsertEmployee(ctx context.Context, emp core.Employee) (bool, error) {
	emp.Normalize()
	if err := emp.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created := !s.employees.Has(emp.EmployeeNumber)
	if err := s.employees.Put(ctx, emp); err != nil {
		return false, err
	}
	return created, nil
}

// CreateEmployee adds a new employee together with its payroll record. The
// record uses the position defaults unless allowances are given. If the
// payroll write fails the employee is removed again.
func (s *Service) CreateEmployee(ctx context.Context, emp core.Employee, baseSalary float64, allowances *Allowances) (core.Employee, payroll.Record, error) {
	emp.Normalize()
	if err := emp.Validate(); err != nil {
		return core.Employee{}, payroll.Record{}, err
	}
	record := payroll.NewDefaultRecord(emp.EmployeeNumber, emp.Position, baseSalary)
	if allowances != nil {
		record.RiceSubsidy = allowances.RiceSubsidy
		record.PhoneAllowance = allowances.PhoneAllowance
		record.ClothingAllowance = allowances.ClothingAllowance
	}
	if err := record.Validate(); err != nil {
		return core.Employee{}, payroll.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.employees.Has(emp.EmployeeNumber) {
		return core.Employee{}, payroll.Record{}, apperr.Duplicate("employee", emp.EmployeeNumber)
	}
	if err := s.employees.Put(ctx, emp); err != nil {
		return core.Employee{}, payroll.Record{}, err
	}
	if err := s.payroll.Put(ctx, record); err != nil {
		if _, undoErr := s.employees.Remove(context.WithoutCancel(ctx), emp.EmployeeNumber); undoErr != nil {
			slog.Error("create employee rollback failed", "employeeId", emp.EmployeeNumber, "err", undoErr)
			return core.Employee{}, payroll.Record{}, errors.Join(err, undoErr)
		}
		return core.Employee{}, payroll.Record{}, err
	}
	return emp, record, nil
}

// DeleteEmployee removes the employee, its payroll record and all of its
// attendance, persisting after each step. When a step fails the completed
// steps are undone in reverse order and the step error is returned. Deleting
// an unknown employee succeeds and still clears any orphaned rows.
func (s *Service) DeleteEmployee(ctx context.Context, id string) (DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result DeleteResult
	var undo []func(context.Context) error

	if emp, ok := s.employees.Get(id); ok {
		if _, err := s.employees.Remove(ctx, id); err != nil {
			return DeleteResult{}, err
		}
		result.EmployeeRemoved = true
		undo = append(undo, func(ctx context.Context) error { return s.employees.Put(ctx, emp) })
	}

	if record, ok := s.payroll.Get(id); ok {
		if _, err := s.payroll.Remove(ctx, id); err != nil {
			return DeleteResult{}, compensate(ctx, id, "payroll", err, undo)
		}
		result.PayrollRemoved = true
		undo = append(undo, func(ctx context.Context) error { return s.payroll.Put(ctx, record) })
	}

	removed, err := s.attendance.RemoveWhere(ctx, func(key attendance.Key, _ attendance.Record) bool {
		return key.EmployeeID == id
	})
	if err != nil {
		return DeleteResult{}, compensate(ctx, id, "attendance", err, undo)
	}
	result.AttendanceRemoved = len(removed)

	slog.Info("employee deleted", "employeeId", id, "employee", result.EmployeeRemoved, "payroll", result.PayrollRemoved, "attendance", result.AttendanceRemoved)
	return result, nil
}

func compensate(ctx context.Context, id, step string, cause error, undo []func(context.Context) error) error {
	ctx = context.WithoutCancel(ctx)
	errs := []error{cause}
	for i := len(undo) - 1; i >= 0; i-- {
		if err := undo[i](ctx); err != nil {
			slog.Error("cascade delete compensation failed", "employeeId", id, "failedStep", step, "err", err)
			errs = append(errs, err)
		}
	}
	slog.Warn("cascade delete rolled back", "employeeId", id, "failedStep", step, "err", cause)
	return errors.Join(errs...)
}

func (s *Service) GetPayroll(id string) (payroll.Record, error) {
	record, ok := s.payroll.Get(id)
	if !ok {
		return payroll.Record{}, apperr.NotFound("payroll record", id)
	}
	return record, nil
}

func (s *Service) ListPayroll() []payroll.Record {
	list := s.payroll.List()
	slices.SortStableFunc(list, func(a, b payroll.Record) int {
		return compareIDs(a.EmployeeID, b.EmployeeID)
	})
	return list
}

// GetOrCreatePayroll returns the stored record or creates one from the
// position defaults. An empty position falls back to the employee's.
func (s *Service) GetOrCreatePayroll(ctx context.Context, id, position string, baseSalary float64) (payroll.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, ok := s.payroll.Get(id); ok {
		return record, false, nil
	}
	emp, ok := s.employees.Get(id)
	if !ok {
		return payroll.Record{}, false, apperr.NotFound("employee", id)
	}
	if strings.TrimSpace(position) == "" {
		position = emp.Position
	}
	record := payroll.NewDefaultRecord(id, position, baseSalary)
	if err := record.Validate(); err != nil {
		return payroll.Record{}, false, err
	}
	if err := s.payroll.Put(ctx, record); err != nil {
		return payroll.Record{}, false, err
	}
	return record, true, nil
}

// UpdatePayroll replaces the record for an existing employee. Records are
// always stored bracket-computed.
func (s *Service) UpdatePayroll(ctx context.Context, id string, record payroll.Record) (payroll.Record, error) {
	record.EmployeeID = id
	record.Normalize()
	if err := record.Validate(); err != nil {
		return payroll.Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.employees.Has(id) {
		return payroll.Record{}, apperr.NotFound("employee", id)
	}
	if err := s.payroll.Put(ctx, record); err != nil {
		return payroll.Record{}, err
	}
	return record, nil
}

func (s *Service) PayrollSummary(id string) (PayrollSummary, error) {
	emp, err := s.GetEmployee(id)
	if err != nil {
		return PayrollSummary{}, err
	}
	record, err := s.GetPayroll(id)
	if err != nil {
		return PayrollSummary{}, err
	}
	totals, err := record.Compute()
	if err != nil {
		return PayrollSummary{}, err
	}
	return PayrollSummary{Employee: emp, Payroll: totals}, nil
}

// RecordAttendance stores a new entry for an existing employee. A second
// entry for the same employee and date is rejected and the first is kept.
func (s *Service) RecordAttendance(ctx context.Context, employeeID, date, status, timeIn, timeOut string) (attendance.Record, error) {
	record := attendance.Record{
		EmployeeID: strings.TrimSpace(employeeID),
		Date:       strings.TrimSpace(date),
		Status:     attendance.Status(status),
		TimeIn:     strings.TrimSpace(timeIn),
		TimeOut:    strings.TrimSpace(timeOut),
	}
	if err := record.Validate(); err != nil {
		return attendance.Record{}, err
	}
	record.Status, _ = attendance.ParseStatus(status)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.employees.Has(record.EmployeeID) {
		return attendance.Record{}, apperr.NotFound("employee", record.EmployeeID)
	}
	if s.attendance.Has(record.Key()) {
		return attendance.Record{}, apperr.Duplicate("attendance", record.Key().String())
	}
	if err := s.attendance.Put(ctx, record); err != nil {
		return attendance.Record{}, err
	}
	return record, nil
}

// ListAttendance returns entries ordered by date then employee. An empty
// employeeID lists everyone.
func (s *Service) ListAttendance(employeeID string) []attendance.Record {
	var list []attendance.Record
	if employeeID == "" {
		list = s.attendance.List()
	} else {
		list = s.attendance.Filter(func(key attendance.Key, _ attendance.Record) bool {
			return key.EmployeeID == employeeID
		})
	}
	slices.SortStableFunc(list, func(a, b attendance.Record) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return compareIDs(a.EmployeeID, b.EmployeeID)
	})
	return list
}

func (s *Service) ClearAllAttendance(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attendance.Clear(ctx)
}

func (s *Service) RemoveAttendanceFor(ctx context.Context, employeeID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed, err := s.attendance.RemoveWhere(ctx, func(key attendance.Key, _ attendance.Record) bool {
		return key.EmployeeID == employeeID
	})
	return len(removed), err
}

func (s *Service) Snapshot() Snapshot {
	return Snapshot{
		Employees:  s.ListEmployees(),
		Payroll:    s.ListPayroll(),
		Attendance: s.ListAttendance(""),
	}
}

// compareIDs orders numeric ids numerically and everything else lexically.
func compareIDs(a, b string) int {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		return cmp.Compare(len(a), len(b))
	}
	return cmp.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
