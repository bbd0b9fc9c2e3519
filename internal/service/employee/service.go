package employee

import (
	"context"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.SnapshotRepository
}

func NewEmployeeService(employeeRepo employee.SnapshotRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// ListMin returns the minimal snapshot list the preview page needs to pick
// employees for a pay run.
func (s *EmployeeServiceImpl) ListMin(ctx context.Context) ([]employee.SnapshotResponse, error) {
	snapshots, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]employee.SnapshotResponse, 0, len(snapshots))
	for _, snap := range snapshots {
		result = append(result, employee.SnapshotResponse{
			ID:                  snap.ID,
			Name:                snap.Name,
			Code:                snap.Code,
			BasicSalary:         snap.BasicSalary,
			StandardWeeklyHours: snap.StandardWeeklyHours,
			Allowances:          snap.Allowances,
			LoanBalance:         snap.LoanBalance,
		})
	}
	return result, nil
}
