package handler

import (
	"context"
	"net/http"
	"strings"

	"hrms-portal/internal/model"
	"hrms-portal/pkg/apierror"
)

type payrollService interface {
	Generate(ctx context.Context, actor model.AuditActor, req model.PayrollRequest) (model.Payroll, error)
	View(ctx context.Context, req model.PayrollRequest) (model.Payroll, error)
}

type PayrollHandler struct {
	service payrollService
}

func NewPayrollHandler(service payrollService) *PayrollHandler {
	return &PayrollHandler{service: service}
}

func (h *PayrollHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var payload model.PayrollRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	p, err := h.service.Generate(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// View answers ?employeeId&month&year. Callers outside HR, finance and
// administration only see their own payroll.
func (h *PayrollHandler) View(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := model.PayrollRequest{
		EmployeeID: strings.TrimSpace(query.Get("employeeId")),
		Month:      strings.TrimSpace(query.Get("month")),
		Year:       parseIntOrDefault(query.Get("year"), 0),
	}

	if !hasRole(r, model.RoleAdmin, model.RoleHR, model.RoleFinance) {
		own := employeeOf(r)
		if req.EmployeeID == "" {
			req.EmployeeID = own
		}
		if own == "" || req.EmployeeID != own {
			writeError(w, r, apierror.New("FORBIDDEN", "You can only view your own payroll", "", http.StatusForbidden))
			return
		}
	}

	p, err := h.service.View(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
