package employee

import "context"

type EmployeeService interface {
	ListMin(ctx context.Context) ([]SnapshotResponse, error)
}
