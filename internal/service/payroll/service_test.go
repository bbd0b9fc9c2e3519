package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/attendance"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/employee"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/payroll"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/settings"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/draftstore"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKE REPOSITORIES =====

type fakeSettingsRepo struct {
	mu       sync.Mutex
	versions []settings.PayrollSettings
}

func (f *fakeSettingsRepo) GetLatest(ctx context.Context) (settings.PayrollSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.versions) == 0 {
		return settings.PayrollSettings{}, settings.ErrSettingsNotFound
	}
	return f.versions[len(f.versions)-1], nil
}

func (f *fakeSettingsRepo) GetByVersion(ctx context.Context, version int64) (settings.PayrollSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.versions {
		if v.Version == version {
			return v, nil
		}
	}
	if version == 0 {
		return settings.Default(), nil
	}
	return settings.PayrollSettings{}, settings.ErrSettingsVersionNotFound
}

func (f *fakeSettingsRepo) Create(ctx context.Context, s settings.PayrollSettings) (settings.PayrollSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = fmt.Sprintf("settings-%d", s.Version)
	s.CreatedAt = time.Now()
	f.versions = append(f.versions, s)
	return s, nil
}

type fakeEmployeeRepo struct {
	snapshots map[string]employee.Snapshot
	err       error
}

func (f *fakeEmployeeRepo) GetSnapshots(ctx context.Context, ids []string) ([]employee.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []employee.Snapshot
	for _, id := range ids {
		if snap, ok := f.snapshots[id]; ok {
			result = append(result, snap)
		}
	}
	return result, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []employee.Snapshot
	for _, snap := range f.snapshots {
		result = append(result, snap)
	}
	return result, nil
}

type fakeOvertimeRepo struct {
	summaries map[string]attendance.OvertimeSummary
	err       error

	// onFetch, when set, runs at the start of every fetch so tests can
	// stall a preview mid-collaborator-read.
	onFetch func()
}

func (f *fakeOvertimeRepo) GetOvertimeSummary(ctx context.Context, month, year int, employeeIDs []string) ([]attendance.OvertimeSummary, error) {
	if f.onFetch != nil {
		f.onFetch()
	}
	if f.err != nil {
		return nil, f.err
	}
	var result []attendance.OvertimeSummary
	for _, id := range employeeIDs {
		if sum, ok := f.summaries[id]; ok {
			result = append(result, sum)
		}
	}
	return result, nil
}

type fakeSlipRepo struct {
	mu             sync.Mutex
	slips          []payroll.PaymentSlip
	failOnEmployee string
}

func periodKey(employeeID string, month, year int) string {
	return fmt.Sprintf("%s|%d|%d", employeeID, month, year)
}

// CreateBatch mirrors the transactional repo: the batch is validated first
// and inserted only when every slip can land.
func (f *fakeSlipRepo) CreateBatch(ctx context.Context, slips []payroll.PaymentSlip) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing := make(map[string]bool, len(f.slips))
	for _, s := range f.slips {
		existing[periodKey(s.EmployeeID, s.PeriodMonth, s.PeriodYear)] = true
	}

	for _, s := range slips {
		if s.EmployeeID == f.failOnEmployee {
			return errors.New("storage failure")
		}
		if existing[periodKey(s.EmployeeID, s.PeriodMonth, s.PeriodYear)] {
			return &payroll.SlipConflictError{EmployeeID: s.EmployeeID, Month: s.PeriodMonth, Year: s.PeriodYear}
		}
	}

	f.slips = append(f.slips, slips...)
	return nil
}

func (f *fakeSlipRepo) GetByID(ctx context.Context, id string) (payroll.PaymentSlip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slips {
		if s.ID == id {
			return s, nil
		}
	}
	return payroll.PaymentSlip{}, payroll.ErrSlipNotFound
}

func (f *fakeSlipRepo) GetByDraftID(ctx context.Context, draftID string) ([]payroll.PaymentSlip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []payroll.PaymentSlip
	for _, s := range f.slips {
		if s.DraftID == draftID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeSlipRepo) ListByPeriod(ctx context.Context, month, year int) ([]payroll.PaymentSlip, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []payroll.PaymentSlip
	for _, s := range f.slips {
		if s.PeriodMonth == month && s.PeriodYear == year {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeSlipRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.slips)
}

// ===== TEST SETUP =====

type testEnv struct {
	service      payroll.PayrollService
	settingsRepo *fakeSettingsRepo
	employeeRepo *fakeEmployeeRepo
	overtimeRepo *fakeOvertimeRepo
	slipRepo     *fakeSlipRepo
	drafts       *draftstore.Store
}

func newTestEnv() *testEnv {
	settingsRepo := &fakeSettingsRepo{}
	employeeRepo := &fakeEmployeeRepo{snapshots: map[string]employee.Snapshot{
		"emp-1": {
			ID:          "emp-1",
			Name:        "Kasun Perera",
			Code:        "0001-0001",
			BasicSalary: decimal.NewFromInt(28000),
			Allowances:  decimal.NewFromInt(2000),
			LoanBalance: decimal.NewFromInt(5000),
		},
		"emp-2": {
			ID:          "emp-2",
			Name:        "Nimali Silva",
			Code:        "0001-0002",
			BasicSalary: decimal.NewFromInt(42000),
		},
	}}
	overtimeRepo := &fakeOvertimeRepo{summaries: map[string]attendance.OvertimeSummary{
		"emp-1": {EmployeeID: "emp-1", WeekdayOTHours: decimal.NewFromInt(4)},
	}}
	slipRepo := &fakeSlipRepo{}
	drafts := draftstore.New(time.Hour)

	return &testEnv{
		service:      NewPayrollService(settingsRepo, employeeRepo, overtimeRepo, slipRepo, drafts, 5*time.Second),
		settingsRepo: settingsRepo,
		employeeRepo: employeeRepo,
		overtimeRepo: overtimeRepo,
		slipRepo:     slipRepo,
		drafts:       drafts,
	}
}

func previewRequest(key string, ids ...string) payroll.PreviewRequest {
	return payroll.PreviewRequest{DraftKey: key, Month: 5, Year: 2026, EmployeeIDs: ids}
}

// ===== PREVIEW TESTS =====

func TestPreview_ComputesItemsForBatch(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	result, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1", "emp-2"))
	require.NoError(t, err)

	assert.NotEmpty(t, result.DraftID)
	assert.Equal(t, "key-1", result.DraftKey)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Items, 2)

	first := result.Items[0]
	assert.Equal(t, "emp-1", first.EmployeeID)
	assert.Equal(t, "750.00", first.OTTotal.StringFixed(2))
	assert.Equal(t, "30750.00", first.Gross.StringFixed(2))
	assert.Equal(t, "23290.00", first.Net.StringFixed(2))

	second := result.Items[1]
	assert.Equal(t, "emp-2", second.EmployeeID)
	assert.Equal(t, "0.00", second.OTTotal.StringFixed(2))
}

func TestPreview_RepeatedPreviewKeepsIdentityRefreshesData(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
	require.NoError(t, err)

	// New overtime lands between previews.
	env.overtimeRepo.summaries["emp-1"] = attendance.OvertimeSummary{
		EmployeeID:     "emp-1",
		WeekdayOTHours: decimal.NewFromInt(8),
	}

	second, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
	require.NoError(t, err)

	assert.Equal(t, first.DraftID, second.DraftID)
	assert.Equal(t, "750.00", first.Items[0].OTTotal.StringFixed(2))
	assert.Equal(t, "1500.00", second.Items[0].OTTotal.StringFixed(2))
}

func TestPreview_UnknownEmployeeOmittedWithWarning(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	result, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1", "emp-missing"))
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "emp-1", result.Items[0].EmployeeID)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "emp-missing")
}

func TestPreview_SameKeyDifferentPeriodRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
	require.NoError(t, err)

	req := previewRequest("key-1", "emp-1")
	req.Month = 6
	_, err = env.service.Preview(ctx, req)
	assert.ErrorIs(t, err, payroll.ErrDraftPeriodChanged)
}

func TestPreview_SettingsVersionPinnedAtCreation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.service.Preview(ctx, previewRequest("key-1", "emp-2"))
	require.NoError(t, err)

	// Settings change after the draft was created.
	updated := settings.Default()
	updated.Version = 1
	updated.EPFRate = decimal.NewFromFloat(0.12)
	_, err = env.settingsRepo.Create(ctx, updated)
	require.NoError(t, err)

	// Same key: still computed against the pinned version.
	again, err := env.service.Preview(ctx, previewRequest("key-1", "emp-2"))
	require.NoError(t, err)
	assert.Equal(t, first.SettingsVersion, again.SettingsVersion)
	assert.Equal(t, first.Items[0].EPF.StringFixed(2), again.Items[0].EPF.StringFixed(2))

	// New key: picks up the new version.
	fresh, err := env.service.Preview(ctx, previewRequest("key-2", "emp-2"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), fresh.SettingsVersion)
	assert.NotEqual(t, first.Items[0].EPF.StringFixed(2), fresh.Items[0].EPF.StringFixed(2))
}

func TestPreview_OvertimeUnavailableFallsBackToZeros(t *testing.T) {
	env := newTestEnv()
	env.overtimeRepo.err = errors.New("attendance service down")
	ctx := context.Background()

	result, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, "0.00", result.Items[0].OTTotal.StringFixed(2))
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "overtime data unavailable")
}

func TestPreview_SnapshotsUnavailableReturnsPartialResult(t *testing.T) {
	env := newTestEnv()
	env.employeeRepo.err = errors.New("employee service down")
	ctx := context.Background()

	result, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
	require.NoError(t, err)

	assert.Empty(t, result.Items)
	assert.NotEmpty(t, result.Warnings)
}

func TestPreview_ValidationErrors(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	req := payroll.PreviewRequest{DraftKey: "", Month: 13, Year: 1999}
	_, err := env.service.Preview(ctx, req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "draft_key")
	assert.Contains(t, fields, "month")
	assert.Contains(t, fields, "year")
	assert.Contains(t, fields, "employee_ids")
}

// ===== COMMIT TESTS =====

func TestCommit_PersistsSlipsAndSealsDraft(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	preview, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1", "emp-2"))
	require.NoError(t, err)

	result, err := env.service.Commit(ctx, preview.DraftID)
	require.NoError(t, err)

	require.Len(t, result.Slips, 2)
	assert.Equal(t, 2, env.slipRepo.count())
	assert.Equal(t, preview.DraftID, result.Slips[0].DraftID)
	assert.Equal(t, "23290.00", result.Slips[0].Net.StringFixed(2))
	assert.Equal(t, preview.SettingsVersion, result.Slips[0].SettingsVersion)

	draft, ok := env.drafts.GetByID(preview.DraftID)
	require.True(t, ok)
	assert.Equal(t, payroll.DraftStatusCommitted, draft.Status)
}

func TestCommit_IdempotentRepeatReturnsSameSlips(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	preview, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
	require.NoError(t, err)

	first, err := env.service.Commit(ctx, preview.DraftID)
	require.NoError(t, err)
	second, err := env.service.Commit(ctx, preview.DraftID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, env.slipRepo.count())
}

func TestCommit_UnknownDraftNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Commit(context.Background(), "no-such-draft")
	assert.ErrorIs(t, err, payroll.ErrDraftNotFound)
}

func TestCommit_ConflictAbortsWholeBatchAndReopensDraft(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// emp-2 was already paid for this period by an earlier run.
	require.NoError(t, env.slipRepo.CreateBatch(ctx, []payroll.PaymentSlip{{
		ID:          "slip-prior",
		DraftID:     "other-draft",
		EmployeeID:  "emp-2",
		PeriodMonth: 5,
		PeriodYear:  2026,
	}}))

	preview, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1", "emp-2"))
	require.NoError(t, err)

	_, err = env.service.Commit(ctx, preview.DraftID)
	var conflict *payroll.SlipConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "emp-2", conflict.EmployeeID)
	assert.Equal(t, 5, conflict.Month)
	assert.Equal(t, 2026, conflict.Year)

	// Nothing from this draft was persisted and the draft is OPEN again.
	assert.Equal(t, 1, env.slipRepo.count())
	draft, ok := env.drafts.GetByID(preview.DraftID)
	require.True(t, ok)
	assert.Equal(t, payroll.DraftStatusOpen, draft.Status)
}

func TestCommit_RetryAfterFailureSucceeds(t *testing.T) {
	env := newTestEnv()
	env.slipRepo.failOnEmployee = "emp-2"
	ctx := context.Background()

	preview, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1", "emp-2"))
	require.NoError(t, err)

	_, err = env.service.Commit(ctx, preview.DraftID)
	require.Error(t, err)
	assert.Equal(t, 0, env.slipRepo.count())

	// Storage recovers; the same draft commits cleanly.
	env.slipRepo.failOnEmployee = ""
	result, err := env.service.Commit(ctx, preview.DraftID)
	require.NoError(t, err)
	assert.Len(t, result.Slips, 2)
	assert.Equal(t, 2, env.slipRepo.count())
}

func TestCommit_InProgressRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	preview, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
	require.NoError(t, err)

	require.True(t, env.drafts.CompareAndSwapStatus(preview.DraftID, payroll.DraftStatusOpen, payroll.DraftStatusCommitting))

	_, err = env.service.Commit(ctx, preview.DraftID)
	assert.ErrorIs(t, err, payroll.ErrCommitInProgress)
}

func TestCommit_AfterArenaEvictionStillIdempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	preview, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
	require.NoError(t, err)

	first, err := env.service.Commit(ctx, preview.DraftID)
	require.NoError(t, err)

	// The committed draft ages out of the arena; slips are durable.
	env.drafts.Sweep(time.Now().Add(2 * time.Hour))

	second, err := env.service.Commit(ctx, preview.DraftID)
	require.NoError(t, err)
	require.Len(t, second.Slips, 1)
	assert.Equal(t, first.Slips[0].ID, second.Slips[0].ID)
	assert.Equal(t, 1, env.slipRepo.count())
}

func TestCommit_RacingPreviewCannotReopenCommittedDraft(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	preview, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
	require.NoError(t, err)

	// Stall the next preview inside its overtime read while it holds the
	// key lock, then commit the same draft concurrently.
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	env.overtimeRepo.onFetch = func() {
		once.Do(func() {
			close(entered)
			<-release
		})
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
		assert.NoError(t, err)
	}()

	<-entered

	var commitResult payroll.CommitResponse
	go func() {
		defer wg.Done()
		result, err := env.service.Commit(ctx, preview.DraftID)
		assert.NoError(t, err)
		commitResult = result
	}()

	close(release)
	wg.Wait()

	// The stalled preview must not have written the draft back over the
	// commit result.
	draft, ok := env.drafts.GetByID(preview.DraftID)
	require.True(t, ok)
	assert.Equal(t, payroll.DraftStatusCommitted, draft.Status)

	again, err := env.service.Commit(ctx, preview.DraftID)
	require.NoError(t, err)
	assert.Equal(t, commitResult, again)
	assert.Equal(t, 1, env.slipRepo.count())
}

func TestPreview_AfterCommitWithSameKeyCreatesNewDraft(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	preview, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
	require.NoError(t, err)
	_, err = env.service.Commit(ctx, preview.DraftID)
	require.NoError(t, err)

	fresh, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1"))
	require.NoError(t, err)
	assert.NotEqual(t, preview.DraftID, fresh.DraftID)
}

// ===== SLIP READ TESTS =====

func TestListSlips_FiltersByPeriod(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	preview, err := env.service.Preview(ctx, previewRequest("key-1", "emp-1", "emp-2"))
	require.NoError(t, err)
	_, err = env.service.Commit(ctx, preview.DraftID)
	require.NoError(t, err)

	slips, err := env.service.ListSlips(ctx, 5, 2026)
	require.NoError(t, err)
	assert.Len(t, slips, 2)

	empty, err := env.service.ListSlips(ctx, 6, 2026)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetSlip_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.GetSlip(context.Background(), "no-such-slip")
	assert.ErrorIs(t, err, payroll.ErrSlipNotFound)
}
