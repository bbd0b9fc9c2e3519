package payroll

import (
	"context"
	"time"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/attendance"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/employee"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/payroll"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/settings"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/draftstore"
)

type PayrollServiceImpl struct {
	settingsRepo settings.SettingsRepository
	employeeRepo employee.SnapshotRepository
	overtimeRepo attendance.OvertimeRepository
	slipRepo     payroll.SlipRepository
	drafts       *draftstore.Store
	readTimeout  time.Duration
}

func NewPayrollService(
	settingsRepo settings.SettingsRepository,
	employeeRepo employee.SnapshotRepository,
	overtimeRepo attendance.OvertimeRepository,
	slipRepo payroll.SlipRepository,
	drafts *draftstore.Store,
	readTimeout time.Duration,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		settingsRepo: settingsRepo,
		employeeRepo: employeeRepo,
		overtimeRepo: overtimeRepo,
		slipRepo:     slipRepo,
		drafts:       drafts,
		readTimeout:  readTimeout,
	}
}

// ========== SLIP READS ==========

func (s *PayrollServiceImpl) ListSlips(ctx context.Context, month, year int) ([]payroll.PaymentSlipResponse, error) {
	slips, err := s.slipRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	return mapToSlipResponses(slips), nil
}

func (s *PayrollServiceImpl) GetSlip(ctx context.Context, id string) (payroll.PaymentSlipResponse, error) {
	slip, err := s.slipRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PaymentSlipResponse{}, err
	}
	return mapToSlipResponse(slip), nil
}

// ========== HELPERS ==========

func mapToItemResponse(it payroll.DraftItem) payroll.DraftItemResponse {
	return payroll.DraftItemResponse{
		EmployeeID:     it.EmployeeID,
		EmployeeName:   it.EmployeeName,
		EmployeeCode:   it.EmployeeCode,
		BasicSalary:    it.BasicSalary,
		Allowances:     it.Allowances,
		LoanBalance:    it.LoanBalance,
		WeekdayOTHours: it.WeekdayOTHours,
		HolidayOTHours: it.HolidayOTHours,
		OTTotal:        it.OTTotal,
		Gross:          it.Gross,
		EPF:            it.EPF,
		ETF:            it.ETF,
		LoanDeduction:  it.LoanDeduction,
		Net:            it.Net,
		Status:         string(it.Status),
	}
}

func mapToItemResponses(items []payroll.DraftItem) []payroll.DraftItemResponse {
	result := make([]payroll.DraftItemResponse, 0, len(items))
	for _, it := range items {
		result = append(result, mapToItemResponse(it))
	}
	return result
}

func mapToSlipResponse(s payroll.PaymentSlip) payroll.PaymentSlipResponse {
	return payroll.PaymentSlipResponse{
		ID:              s.ID,
		DraftID:         s.DraftID,
		EmployeeID:      s.EmployeeID,
		EmployeeName:    s.EmployeeName,
		EmployeeCode:    s.EmployeeCode,
		PeriodMonth:     s.PeriodMonth,
		PeriodYear:      s.PeriodYear,
		BasicSalary:     s.BasicSalary,
		Allowances:      s.Allowances,
		OTTotal:         s.OTTotal,
		Gross:           s.Gross,
		EPF:             s.EPF,
		ETF:             s.ETF,
		LoanDeduction:   s.LoanDeduction,
		Net:             s.Net,
		SettingsVersion: s.SettingsVersion,
		CommittedAt:     s.CommittedAt.Format(time.RFC3339),
	}
}

func mapToSlipResponses(slips []payroll.PaymentSlip) []payroll.PaymentSlipResponse {
	result := make([]payroll.PaymentSlipResponse, 0, len(slips))
	for _, s := range slips {
		result = append(result, mapToSlipResponse(s))
	}
	return result
}
