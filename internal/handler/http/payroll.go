package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/payroll"
	"github.com/agrifarm/farmpay-backend-go/internal/handler/http/response"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/pdf"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	Commit(w http.ResponseWriter, r *http.Request)
	ListSlips(w http.ResponseWriter, r *http.Request)
	GetSlipPDF(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req payroll.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Commit(w http.ResponseWriter, r *http.Request) {
	var req payroll.CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.Commit(r.Context(), req.DraftID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Draft committed", result)
}

func (h *payrollHandlerImpl) ListSlips(w http.ResponseWriter, r *http.Request) {
	monthStr := r.URL.Query().Get("period_month")
	yearStr := r.URL.Query().Get("period_year")

	if monthStr == "" || yearStr == "" {
		response.BadRequest(w, "period_month and period_year are required", nil)
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "Invalid period_month", nil)
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 {
		response.BadRequest(w, "Invalid period_year", nil)
		return
	}

	result, err := h.payrollService.ListSlips(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetSlipPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Slip ID is required", nil)
		return
	}

	slip, err := h.payrollService.GetSlip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := pdf.RenderPayslip(slip)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payslip-%s.pdf", slip.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}
