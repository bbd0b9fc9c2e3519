package employee

import "context"

// SnapshotRepository reads employee base figures. Ids without a matching row
// are simply absent from the result, not an error; preview decides how to
// report them.
type SnapshotRepository interface {
	GetSnapshots(ctx context.Context, ids []string) ([]Snapshot, error)
	ListActive(ctx context.Context) ([]Snapshot, error)
}
