package explain

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/actdex/internal/domain"
)

func TestBudgetTracker_RejectWhenExceeded(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 0, BudgetActionReject, zap.NewNop())

	bt.Record(100)

	err := bt.Check(context.Background())
	if !errors.Is(err, domain.ErrExplainerQuotaExceeded) {
		t.Fatalf("expected domain.ErrExplainerQuotaExceeded, got %v", err)
	}
}

func TestBudgetTracker_WarnWhenExceeded(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 0, BudgetActionWarn, zap.NewNop())

	bt.Record(200)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error for warn action, got %v", err)
	}
}

func TestBudgetTracker_MonthlyReject(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 500, BudgetActionReject, zap.NewNop())

	bt.Record(500)

	err := bt.Check(context.Background())
	if !errors.Is(err, domain.ErrExplainerQuotaExceeded) {
		t.Fatalf("expected domain.ErrExplainerQuotaExceeded for monthly limit, got %v", err)
	}
}

func TestBudgetTracker_UnlimitedWhenZero(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 0, BudgetActionReject, zap.NewNop())

	bt.Record(999999999)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error for unlimited budget, got %v", err)
	}
}

func TestBudgetTracker_Remaining(t *testing.T) {
	bt := NewBudgetTracker("test", 1000, 10000, BudgetActionWarn, zap.NewNop())

	bt.Record(300)

	if daily := bt.RemainingDaily(); daily != 700 {
		t.Errorf("expected daily remaining 700, got %d", daily)
	}
	if monthly := bt.RemainingMonthly(); monthly != 9700 {
		t.Errorf("expected monthly remaining 9700, got %d", monthly)
	}
}

func TestBudgetTracker_RemainingUnlimited(t *testing.T) {
	bt := NewBudgetTracker("test", 0, 0, BudgetActionWarn, zap.NewNop())

	if daily := bt.RemainingDaily(); daily != -1 {
		t.Errorf("expected -1 for unlimited daily, got %d", daily)
	}
	if monthly := bt.RemainingMonthly(); monthly != -1 {
		t.Errorf("expected -1 for unlimited monthly, got %d", monthly)
	}
}

func TestBudgetTracker_RemainingClampsAtZero(t *testing.T) {
	bt := NewBudgetTracker("test", 100, 0, BudgetActionWarn, zap.NewNop())

	bt.Record(150)

	if daily := bt.RemainingDaily(); daily != 0 {
		t.Errorf("expected remaining clamped at 0, got %d", daily)
	}
}

func TestBudgetTracker_BelowLimitAllows(t *testing.T) {
	bt := NewBudgetTracker("test", 1000, 10000, BudgetActionReject, zap.NewNop())

	bt.Record(500)

	if err := bt.Check(context.Background()); err != nil {
		t.Fatalf("expected nil error when below limit, got %v", err)
	}
}

func TestBudgetTracker_KeyLayout(t *testing.T) {
	bt := NewBudgetTracker("openai", 0, 0, BudgetActionWarn, zap.NewNop())

	daily := bt.dailyKey(bt.lastDayReset)
	if !strings.HasPrefix(daily, domain.KeyPrefix+"budget:openai:daily:") {
		t.Errorf("unexpected daily key: %s", daily)
	}
	monthly := bt.monthlyKey(bt.lastMonthReset)
	if !strings.HasPrefix(monthly, domain.KeyPrefix+"budget:openai:monthly:") {
		t.Errorf("unexpected monthly key: %s", monthly)
	}
}

// --- Mock BudgetStore ---

type mockBudgetStore struct {
	mu   sync.Mutex
	data map[string]int64
}

func newMockBudgetStore() *mockBudgetStore {
	return &mockBudgetStore{data: make(map[string]int64)}
}

func (m *mockBudgetStore) IncrBy(_ context.Context, key string, val int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] += val
	return nil
}

func (m *mockBudgetStore) Get(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

// --- Persistence tests ---

func TestBudgetTracker_WithStore_LoadsValues(t *testing.T) {
	store := newMockBudgetStore()

	bt := NewBudgetTracker("prov", 1000, 10000, BudgetActionReject, zap.NewNop())
	store.data[bt.dailyKey(bt.lastDayReset)] = 300
	store.data[bt.monthlyKey(bt.lastMonthReset)] = 5000

	bt.WithStore(context.Background(), store)

	if bt.DailyUsed() != 300 {
		t.Errorf("expected daily_used=300, got %d", bt.DailyUsed())
	}
	if bt.MonthlyUsed() != 5000 {
		t.Errorf("expected monthly_used=5000, got %d", bt.MonthlyUsed())
	}
}

func TestBudgetTracker_Record_PersistsToStore(t *testing.T) {
	store := newMockBudgetStore()
	bt := NewBudgetTracker("prov", 1000, 10000, BudgetActionWarn, zap.NewNop())
	bt.WithStore(context.Background(), store)

	bt.Record(42)

	if bt.DailyUsed() != 42 {
		t.Errorf("expected daily_used=42, got %d", bt.DailyUsed())
	}

	store.mu.Lock()
	daily := store.data[bt.dailyKey(bt.lastDayReset)]
	monthly := store.data[bt.monthlyKey(bt.lastMonthReset)]
	store.mu.Unlock()

	if daily != 42 || monthly != 42 {
		t.Errorf("expected store counters 42/42, got %d/%d", daily, monthly)
	}
}

func TestBudgetTracker_Record_MultipleIncrements(t *testing.T) {
	store := newMockBudgetStore()
	bt := NewBudgetTracker("prov", 10000, 100000, BudgetActionWarn, zap.NewNop())
	bt.WithStore(context.Background(), store)

	bt.Record(100)
	bt.Record(200)
	bt.Record(300)

	if bt.DailyUsed() != 600 {
		t.Errorf("expected daily_used=600, got %d", bt.DailyUsed())
	}

	store.mu.Lock()
	val := store.data[bt.dailyKey(bt.lastDayReset)]
	store.mu.Unlock()
	if val != 600 {
		t.Errorf("expected store daily=600, got %d", val)
	}
}
