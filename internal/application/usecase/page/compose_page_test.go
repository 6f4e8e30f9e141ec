package page

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/application/usecase/auth"
	"github.com/finance-tracker/dashboard/internal/application/usecase/dashboard"
	"github.com/finance-tracker/dashboard/internal/application/usecase/record"
	"github.com/finance-tracker/dashboard/internal/domain/entity"
	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
	"github.com/finance-tracker/dashboard/internal/domain/valueobject"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
	err   error
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

type countingLoader struct {
	snapshot *entity.RecordSnapshot
	err      error
	calls    atomic.Int32
}

func (l *countingLoader) Snapshot(ctx context.Context, userID uuid.UUID) (*entity.RecordSnapshot, error) {
	l.calls.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	return l.snapshot, nil
}

func newComposer(users *fakeUserRepo, loader *countingLoader) *ComposePageUseCase {
	format := valueobject.DefaultDisplayFormat()
	return NewComposePageUseCase(
		auth.NewGetCurrentUserUseCase(users),
		loader,
		dashboard.NewGetQuickActionsUseCase(),
		dashboard.NewGetFinancialOverviewUseCase(loader, format),
		dashboard.NewGetCategoryBreakdownUseCase(loader, format),
		dashboard.NewGetChartDataUseCase(loader, format),
		dashboard.NewGetInsightsUseCase(loader, nil, format, time.Second),
		record.NewListRecordsUseCase(loader, format),
	)
}

func TestComposePageUseCase(t *testing.T) {
	ctx := context.Background()
	user := entity.NewUser("ana@example.com", "Ana Souza", "", "https://img.example.com/ana.png", "hash")
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}}

	t.Run("guest without identity", func(t *testing.T) {
		loader := &countingLoader{}
		out, err := newComposer(users, loader).Execute(ctx, ComposePageInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.State != StateGuest || out.Guest == nil || out.Overview != nil {
			t.Errorf("expected guest page, got %+v", out)
		}
		if loader.calls.Load() != 0 {
			t.Error("guest page must not load records")
		}
	})

	t.Run("authenticated page uses one snapshot", func(t *testing.T) {
		snapshot := entity.NewRecordSnapshot(user.ID, []*entity.Record{
			entity.NewRecord(user.ID, "Pay", decimal.NewFromInt(1000), "Salary", entity.RecordTypeIncome, time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)),
			entity.NewRecord(user.ID, "Lunch", decimal.NewFromInt(12), "Food", entity.RecordTypeExpense, time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)),
		})
		loader := &countingLoader{snapshot: snapshot}

		out, err := newComposer(users, loader).Execute(ctx, ComposePageInput{UserID: &user.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.State != StateAuthenticated {
			t.Fatalf("expected authenticated, got %s", out.State)
		}
		if out.Welcome.Greeting != "Welcome Back, Ana!" || out.Welcome.ImageURL != user.ImageURL {
			t.Errorf("unexpected welcome %+v", out.Welcome)
		}
		if out.Overview.BalanceLabel != "Rs. 988.00" {
			t.Errorf("unexpected balance %q", out.Overview.BalanceLabel)
		}
		if out.Breakdown.Type != entity.RecordTypeExpense || len(out.Breakdown.Categories) != 1 {
			t.Errorf("unexpected breakdown %+v", out.Breakdown)
		}
		if len(out.Chart.Labels) != 2 || out.History.Total != 2 || len(out.QuickActions.Actions) != 3 {
			t.Errorf("unexpected components")
		}
		if calls := loader.calls.Load(); calls != 1 {
			t.Errorf("expected a single snapshot load, got %d", calls)
		}
	})

	t.Run("empty dashboard", func(t *testing.T) {
		loader := &countingLoader{snapshot: entity.NewRecordSnapshot(user.ID, nil)}

		out, err := newComposer(users, loader).Execute(ctx, ComposePageInput{UserID: &user.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Overview.State != dashboard.ViewStateEmpty || out.Breakdown.EmptyMessage != "No expense records found" {
			t.Errorf("expected empty states, got %+v / %+v", out.Overview, out.Breakdown)
		}
	})

	t.Run("unknown subject renders guest", func(t *testing.T) {
		missing := uuid.New()
		loader := &countingLoader{snapshot: entity.NewRecordSnapshot(missing, nil)}

		out, err := newComposer(users, loader).Execute(ctx, ComposePageInput{UserID: &missing})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.State != StateGuest {
			t.Errorf("expected guest, got %s", out.State)
		}
		if loader.calls.Load() != 0 {
			t.Error("unknown subject must not load records")
		}
	})

	t.Run("unknown subject renders guest while record source is down", func(t *testing.T) {
		missing := uuid.New()
		loader := &countingLoader{err: domainerror.NewDashboardError(
			domainerror.ErrCodeRecordSourceUnavailable,
			"record source unavailable",
			domainerror.ErrRecordSourceUnavailable,
		)}

		out, err := newComposer(users, loader).Execute(ctx, ComposePageInput{UserID: &missing})
		if err != nil {
			t.Fatalf("expected guest page, got error %v", err)
		}
		if out.State != StateGuest || out.Guest == nil {
			t.Errorf("expected guest, got %+v", out)
		}
	})

	t.Run("record source failure is surfaced", func(t *testing.T) {
		loader := &countingLoader{err: domainerror.NewDashboardError(
			domainerror.ErrCodeRecordSourceUnavailable,
			"record source unavailable",
			domainerror.ErrRecordSourceUnavailable,
		)}

		_, err := newComposer(users, loader).Execute(ctx, ComposePageInput{UserID: &user.ID})
		if !errors.Is(err, domainerror.ErrRecordSourceUnavailable) {
			t.Errorf("expected ErrRecordSourceUnavailable, got %v", err)
		}
	})

	t.Run("identity lookup failure is surfaced", func(t *testing.T) {
		failing := &fakeUserRepo{err: errors.New("db down")}
		loader := &countingLoader{snapshot: entity.NewRecordSnapshot(user.ID, nil)}

		_, err := newComposer(failing, loader).Execute(ctx, ComposePageInput{UserID: &user.ID})
		if err == nil {
			t.Error("expected error")
		}
		if loader.calls.Load() != 0 {
			t.Error("records loaded without an identity")
		}
	})
}
