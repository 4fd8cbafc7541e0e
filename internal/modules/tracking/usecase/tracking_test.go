package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	trackingout "paymind/internal/modules/tracking/adapter/out"
	"paymind/internal/modules/tracking/dto"
	trackingin "paymind/internal/modules/tracking/port/in"
	"paymind/internal/modules/tracking/service"
	valuation "paymind/internal/modules/valuation/domain"
	walletout "paymind/internal/modules/wallet/adapter/out"
	walletdomain "paymind/internal/modules/wallet/domain"
	walletdto "paymind/internal/modules/wallet/dto"
	walletin "paymind/internal/modules/wallet/port/in"
	walletservice "paymind/internal/modules/wallet/service"
	walletusecase "paymind/internal/modules/wallet/usecase"
	"paymind/internal/platform/calendar"
	"paymind/internal/platform/clock"
	apperrors "paymind/internal/platform/errors"
	"paymind/internal/platform/sqlstore"
)

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}

type fakeWallet struct {
	accruals []walletdto.AccrueInput
	marks    map[string]float64
	balance  float64
	err      error
}

func (f *fakeWallet) GetWallet(context.Context, string) (walletdto.WalletOutput, error) {
	return walletdto.WalletOutput{MoneySaved: f.balance}, nil
}

func (f *fakeWallet) Accrue(_ context.Context, input walletdto.AccrueInput) (walletdto.AccrueOutput, error) {
	if f.err != nil {
		return walletdto.AccrueOutput{}, f.err
	}
	f.accruals = append(f.accruals, input)
	if f.marks == nil {
		f.marks = map[string]float64{}
	}
	hours := max(input.Hours-f.marks[input.Key], 0)
	f.marks[input.Key] = max(f.marks[input.Key], input.Hours)
	money := hours * valuation.DefaultReferenceHourlyRate
	f.balance += money
	return walletdto.AccrueOutput{
		Hours:  hours,
		Points: int(hours * 100),
		Money:  money,
		Wallet: walletdto.WalletOutput{MoneySaved: f.balance, StreakDays: 1},
	}, nil
}

func (f *fakeWallet) AddGoal(context.Context, walletdto.AddGoalInput) (walletdto.GoalItem, error) {
	return walletdto.GoalItem{}, nil
}

func (f *fakeWallet) ListGoals(context.Context, string) (walletdto.GoalListOutput, error) {
	return walletdto.GoalListOutput{}, nil
}

func (f *fakeWallet) DeleteGoal(context.Context, walletdto.DeleteGoalInput) error { return nil }

func (f *fakeWallet) AllocateToGoal(context.Context, walletdto.AllocateInput) (walletdto.AllocateOutput, error) {
	return walletdto.AllocateOutput{}, nil
}

var now = time.Date(2025, 3, 10, 20, 30, 0, 0, time.UTC)

func setup(t *testing.T) (trackingin.Usecase, *fakeWallet) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlstore.OpenSQLite(filepath.Join(t.TempDir(), "paymind.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store, err := trackingout.NewSQLStore(ctx, db)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	wallet := &fakeWallet{}
	svc := service.NewTrackingService(clock.Fixed{At: now}, &seqID{}, valuation.DefaultEngine())
	uc := NewInteractor(Deps{
		Service:       svc,
		Usage:         store,
		Distractions:  store,
		Focus:         store,
		Subscriptions: store,
		Wallet:        wallet,
		Tx:            db,
		Log:           zerolog.Nop(),
	})
	return uc, wallet
}

func TestSaveScreenTimeReplacesDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := setup(t)

	out, err := uc.SaveScreenTime(ctx, dto.SaveScreenTimeInput{UserID: "u1", Apps: []dto.AppHours{
		{App: "TikTok", Hours: 2},
		{App: "Netflix", Hours: 0},
		{App: "Reddit", Hours: 1},
	}})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(out.Entries) != 2 || out.Dropped != 1 {
		t.Fatalf("unexpected save result %+v", out)
	}
	if !out.Date.Equal(calendar.Day(now)) {
		t.Fatalf("date defaults to today, got %v", out.Date)
	}
	if out.Entries[0].EstValueLost != 405 {
		t.Fatalf("TikTok 2h loss = %v, want 405", out.Entries[0].EstValueLost)
	}

	if _, err := uc.SaveScreenTime(ctx, dto.SaveScreenTimeInput{UserID: "u1", Apps: []dto.AppHours{{App: "YouTube", Hours: 1}}}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	list, err := uc.ListUsage(ctx, dto.RangeInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Entries) != 1 || list.Entries[0].App != "YouTube" || list.TotalHours != 1 {
		t.Fatalf("day should be fully replaced, got %+v", list)
	}
}

func TestSaveScreenTimeRejectsBadInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := setup(t)

	_, err := uc.SaveScreenTime(ctx, dto.SaveScreenTimeInput{UserID: "u1", Apps: []dto.AppHours{{App: "TikTok", Hours: 0}}})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("empty selection: expected invalid input, got %v", err)
	}
	_, err = uc.SaveScreenTime(ctx, dto.SaveScreenTimeInput{UserID: "u1", Apps: []dto.AppHours{{App: "TikTok", Hours: -1}}})
	if !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("negative hours: expected validation error, got %v", err)
	}
	_, err = uc.SaveScreenTime(ctx, dto.SaveScreenTimeInput{Apps: []dto.AppHours{{App: "TikTok", Hours: 1}}})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("missing user: expected invalid input, got %v", err)
	}
}

func TestLogDistractions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := setup(t)

	if _, err := uc.LogDistractions(ctx, dto.LogDistractionsInput{UserID: "u1"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("both zero: expected invalid input, got %v", err)
	}
	if _, err := uc.LogDistractions(ctx, dto.LogDistractionsInput{UserID: "u1", PickupCount: -2, NotificationCount: 3}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("negative: expected validation error, got %v", err)
	}
	if _, err := uc.LogDistractions(ctx, dto.LogDistractionsInput{UserID: "u1", PickupCount: 70, NotificationCount: 20}); err != nil {
		t.Fatalf("log: %v", err)
	}
	item, err := uc.LogDistractions(ctx, dto.LogDistractionsInput{UserID: "u1", PickupCount: 40, NotificationCount: 0})
	if err != nil {
		t.Fatalf("relog: %v", err)
	}
	if item.PickupCount != 40 || item.NotificationCount != 0 {
		t.Fatalf("upsert should overwrite, got %+v", item)
	}
	list, err := uc.ListDistractions(ctx, dto.RangeInput{UserID: "u1", From: now.AddDate(0, 0, -6), To: now})
	if err != nil || len(list.Logs) != 1 {
		t.Fatalf("list = %+v, %v", list, err)
	}
}

func TestLogFocusAccruesOnlyTheIncrease(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, wallet := setup(t)

	first, err := uc.LogFocus(ctx, dto.LogFocusInput{UserID: "u1", Type: "study", Hours: 2})
	if err != nil {
		t.Fatalf("log focus: %v", err)
	}
	if first.Activity.Points != 200 || first.AccruedHours != 2 || first.AccruedMoney != 375 {
		t.Fatalf("unexpected first log %+v", first)
	}

	second, err := uc.LogFocus(ctx, dto.LogFocusInput{UserID: "u1", Type: "study", Hours: 3})
	if err != nil {
		t.Fatalf("relog focus: %v", err)
	}
	if second.Activity.ID != first.Activity.ID || second.Activity.Hours != 3 {
		t.Fatalf("relog should overwrite the same row, got %+v", second.Activity)
	}
	if second.AccruedHours != 1 || second.AccruedPoints != 100 {
		t.Fatalf("expected a one hour delta, got %+v", second)
	}

	third, err := uc.LogFocus(ctx, dto.LogFocusInput{UserID: "u1", Type: "study", Hours: 1})
	if err != nil {
		t.Fatalf("lower focus: %v", err)
	}
	if third.AccruedHours != 0 || third.AccruedPoints != 0 {
		t.Fatalf("lowering must not accrue, got %+v", third)
	}
	if len(wallet.accruals) != 3 || wallet.balance != 562.5 {
		t.Fatalf("wallet accruals %+v balance %v", wallet.accruals, wallet.balance)
	}

	list, err := uc.ListFocus(ctx, dto.RangeInput{UserID: "u1"})
	if err != nil || len(list.Activities) != 1 || list.TotalPoints != 100 {
		t.Fatalf("list = %+v, %v", list, err)
	}
}

type flakyWallet struct {
	walletin.Usecase
	failures int
}

func (f *flakyWallet) Accrue(ctx context.Context, input walletdto.AccrueInput) (walletdto.AccrueOutput, error) {
	if f.failures > 0 {
		f.failures--
		return walletdto.AccrueOutput{}, errors.New("wallet unavailable")
	}
	return f.Usecase.Accrue(ctx, input)
}

// setupWithWallet wires the real wallet against the same database.
func setupWithWallet(t *testing.T) (trackingin.Usecase, walletin.Usecase, *flakyWallet) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlstore.OpenSQLite(filepath.Join(t.TempDir(), "paymind.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	store, err := trackingout.NewSQLStore(ctx, db)
	if err != nil {
		t.Fatalf("tracking store: %v", err)
	}
	walletStore, err := walletout.NewSQLStore(ctx, db)
	if err != nil {
		t.Fatalf("wallet store: %v", err)
	}
	wallet := walletusecase.NewInteractor(walletusecase.Deps{
		Service:  walletservice.NewWalletService(clock.Fixed{At: now}, &seqID{}, walletdomain.DefaultLedger()),
		Wallets:  walletStore,
		Goals:    walletStore,
		Credits:  walletStore,
		Activity: store,
		Locker:   walletout.NewMemoryLocker(),
		Tx:       db,
		Log:      zerolog.Nop(),
	})
	flaky := &flakyWallet{Usecase: wallet}
	uc := NewInteractor(Deps{
		Service:       service.NewTrackingService(clock.Fixed{At: now}, &seqID{}, valuation.DefaultEngine()),
		Usage:         store,
		Distractions:  store,
		Focus:         store,
		Subscriptions: store,
		Wallet:        flaky,
		Tx:            db,
		Log:           zerolog.Nop(),
	})
	return uc, wallet, flaky
}

func TestLogFocusRelogNeverPaysTwice(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, wallet, _ := setupWithWallet(t)

	var accrued float64
	for _, hours := range []float64{3, 1, 3} {
		out, err := uc.LogFocus(ctx, dto.LogFocusInput{UserID: "u1", Type: "reading", Hours: hours})
		if err != nil {
			t.Fatalf("log %vh: %v", hours, err)
		}
		accrued += out.AccruedHours
	}
	if accrued != 3 {
		t.Fatalf("accrued %vh over 3, 1, 3; want 3", accrued)
	}
	w, err := wallet.GetWallet(ctx, "u1")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if w.TotalSavedTime != 3 || w.TotalPoints != 300 || w.MoneySaved != 562.5 {
		t.Fatalf("wallet = %+v, want 3h 300 pts 562.5", w)
	}
}

func TestLogFocusRetryAfterWalletFailureCredits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, wallet, flaky := setupWithWallet(t)

	if _, err := uc.LogFocus(ctx, dto.LogFocusInput{UserID: "u1", Type: "work", Hours: 1}); err != nil {
		t.Fatalf("first log: %v", err)
	}
	flaky.failures = 1
	if _, err := uc.LogFocus(ctx, dto.LogFocusInput{UserID: "u1", Type: "work", Hours: 3}); err == nil {
		t.Fatalf("wallet failure should surface")
	}
	out, err := uc.LogFocus(ctx, dto.LogFocusInput{UserID: "u1", Type: "work", Hours: 3})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if out.AccruedHours != 2 || out.AccruedPoints != 200 {
		t.Fatalf("retry should credit the missing 2h, got %+v", out)
	}
	w, err := wallet.GetWallet(ctx, "u1")
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if w.TotalSavedTime != 3 || w.MoneySaved != 562.5 {
		t.Fatalf("wallet = %+v, want 3h and 562.5", w)
	}
}

func TestLogFocusValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, wallet := setup(t)

	if _, err := uc.LogFocus(ctx, dto.LogFocusInput{UserID: "u1", Type: "gaming", Hours: 1}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("unknown type: expected validation error, got %v", err)
	}
	if _, err := uc.LogFocus(ctx, dto.LogFocusInput{UserID: "u1", Type: "study", Hours: 0}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("zero hours: expected invalid input, got %v", err)
	}
	if len(wallet.accruals) != 0 {
		t.Fatalf("rejected logs must not touch the wallet")
	}

	wallet.err = errors.New("wallet down")
	if _, err := uc.LogFocus(ctx, dto.LogFocusInput{UserID: "u1", Type: "work", Hours: 1}); err == nil {
		t.Fatalf("wallet errors should surface")
	}
}

func TestSubscriptionsWithROI(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc, _ := setup(t)

	cheap, err := uc.AddSubscription(ctx, dto.AddSubscriptionInput{UserID: "u1", Name: "Music", Cost: 100, UsageHours: 4})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if cheap.CostPerHour != 25 || !cheap.IsWorthwhile {
		t.Fatalf("unexpected roi %+v", cheap)
	}
	if _, err := uc.AddSubscription(ctx, dto.AddSubscriptionInput{UserID: "u1", Name: "Gym", Cost: 300, UsageHours: 0}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := uc.AddSubscription(ctx, dto.AddSubscriptionInput{UserID: "u1", Name: "", Cost: 1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("blank name: expected invalid input, got %v", err)
	}

	list, err := uc.ListSubscriptions(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Subscriptions) != 2 || list.TotalMonthly != 400 {
		t.Fatalf("unexpected list %+v", list)
	}
	for _, s := range list.Subscriptions {
		if s.Name == "Gym" && (s.CostPerHour != 300 || s.IsWorthwhile) {
			t.Fatalf("unused subscription should cost its full price per hour: %+v", s)
		}
	}

	if err := uc.DeleteSubscription(ctx, dto.DeleteInput{UserID: "u1", ID: cheap.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := uc.DeleteSubscription(ctx, dto.DeleteInput{UserID: "u1", ID: cheap.ID}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListRejectsReversedRange(t *testing.T) {
	t.Parallel()
	uc, _ := setup(t)
	_, err := uc.ListUsage(context.Background(), dto.RangeInput{UserID: "u1", From: now, To: now.AddDate(0, 0, -2)})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
