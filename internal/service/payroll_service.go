package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"hrms-portal/internal/model"
	"hrms-portal/pkg/apierror"
)

// PayrollService generates monthly payroll from an employee's salary
// structure.
type PayrollService struct {
	payrolls  *RecordService[model.Payroll]
	employees *RecordService[model.Employee]
	validate  *validator.Validate
	now       func() time.Time
}

func NewPayrollService(payrolls *RecordService[model.Payroll], employees *RecordService[model.Employee], validate *validator.Validate, now func() time.Time) *PayrollService {
	if now == nil {
		now = time.Now
	}
	return &PayrollService{payrolls: payrolls, employees: employees, validate: validate, now: now}
}

// Compute derives gross and net pay. Amounts are rounded to two places.
func Compute(c model.Compensation) (gross, net decimal.Decimal) {
	gross = c.BasicSalary.Add(c.Allowances).Round(2)
	net = gross.Sub(c.Deductions).Round(2)
	return gross, net
}

func (s *PayrollService) validatePeriod(ctx context.Context, req model.PayrollRequest) error {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return validationError(err)
	}
	if !slices.Contains(model.Months, req.Month) {
		return apierror.Invalid("month must be one of Jan..Dec")
	}
	if year := s.now().Year(); req.Year > year {
		return apierror.Invalid(fmt.Sprintf("year cannot be after %d", year))
	}
	return nil
}

func periodFilter(req model.PayrollRequest) map[string]any {
	return map[string]any{"employeeId": req.EmployeeID, "month": req.Month, "year": req.Year}
}

func (s *PayrollService) Generate(ctx context.Context, actor model.AuditActor, req model.PayrollRequest) (model.Payroll, error) {
	if err := s.validatePeriod(ctx, req); err != nil {
		return model.Payroll{}, err
	}

	emp, err := s.employees.Get(ctx, req.EmployeeID)
	if err != nil {
		return model.Payroll{}, err
	}
	if emp.Compensation == nil {
		return model.Payroll{}, apierror.New("NO_COMPENSATION", "Salary structure not defined for employee", emp.ID, http.StatusUnprocessableEntity)
	}

	existing, err := s.payrolls.Match(ctx, periodFilter(req))
	if err != nil {
		return model.Payroll{}, err
	}
	if len(existing) > 0 {
		return model.Payroll{}, apierror.Conflict(fmt.Sprintf("Payroll already generated for %s %d", req.Month, req.Year))
	}

	gross, net := Compute(*emp.Compensation)
	p := model.Payroll{
		EmployeeID:  emp.ID,
		Month:       req.Month,
		Year:        req.Year,
		BasicSalary: emp.Compensation.BasicSalary.Round(2),
		Allowances:  emp.Compensation.Allowances.Round(2),
		Deductions:  emp.Compensation.Deductions.Round(2),
		GrossSalary: gross,
		NetSalary:   net,
		GeneratedAt: s.now().UTC(),
	}

	created, err := s.payrolls.Create(ctx, actor, p)
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatus == http.StatusConflict {
		return model.Payroll{}, apierror.Conflict(fmt.Sprintf("Payroll already generated for %s %d", req.Month, req.Year))
	}
	return created, err
}

func (s *PayrollService) View(ctx context.Context, req model.PayrollRequest) (model.Payroll, error) {
	if err := s.validatePeriod(ctx, req); err != nil {
		return model.Payroll{}, err
	}

	found, err := s.payrolls.Match(ctx, periodFilter(req))
	if err != nil {
		return model.Payroll{}, err
	}
	if len(found) == 0 {
		return model.Payroll{}, apierror.NotFound("Payroll not found")
	}
	return found[0], nil
}
