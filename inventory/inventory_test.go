package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/micromdm/nanoinv/audit"
	"github.com/micromdm/nanoinv/inventory/storage"
	"github.com/micromdm/nanoinv/log/logkeys"
	"github.com/micromdm/nanoinv/log/zaplog"
	"github.com/micromdm/nanoinv/utils/uuid"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var testTime = time.Date(2024, 3, 9, 14, 5, 1, 0, time.UTC)

type recordedMetrics struct {
	ops   map[string]int // "op/outcome" -> count
	items int
}

func (m *recordedMetrics) Operation(op, outcome string) {
	if m.ops == nil {
		m.ops = make(map[string]int)
	}
	m.ops[op+"/"+outcome]++
}

func (m *recordedMetrics) Persist(op, outcome string, _ time.Duration) {
	m.Operation(op, outcome)
}

func (m *recordedMetrics) Items(n int) {
	m.items = n
}

// newTestStore creates a Store with observed logs, a fixed clock and static IDs.
// Any opts are applied after the test defaults.
func newTestStore(t *testing.T, opts ...Option) (*Store, *observer.ObservedLogs, *recordedMetrics) {
	t.Helper()
	core, recorded := observer.New(zapcore.DebugLevel)
	m := &recordedMetrics{}
	s := New(append([]Option{
		WithLogger(zaplog.Wrap(zap.New(core))),
		WithMetrics(m),
		WithClock(func() time.Time { return testTime }),
		WithIDer(uuid.NewSequence("id-1", "id-2", "id-3")),
	}, opts...)...)
	return s, recorded, m
}

func TestAddCumulative(t *testing.T) {
	tests := []struct {
		name string
		adds []int
		want int
	}{
		{"single", []int{4}, 4},
		{"several", []int{1, 2, 3, 4}, 10},
		{"zero", []int{0}, 0},
		{"with negative", []int{10, -3}, 7},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, _, _ := newTestStore(t)
			for _, qty := range test.adds {
				s.Add(context.Background(), "widget", qty, nil)
			}
			if have, want := s.Quantity("widget"), test.want; have != want {
				t.Errorf("want: %v, have: %v", want, have)
			}
		})
	}
}

func TestAddThenRemove(t *testing.T) {
	ctx := context.Background()
	s, _, m := newTestStore(t)

	s.Add(ctx, "x", 10, nil)
	s.Remove(ctx, "x", 3)

	if have, want := s.Quantity("x"), 7; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
	if have, want := m.ops["remove/ok"], 1; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
	if have, want := m.items, 1; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
}

func TestRemoveDeletes(t *testing.T) {
	tests := []struct {
		name   string
		add    int
		remove int
	}{
		{"to zero", 3, 3},
		{"below zero", 3, 5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctx := context.Background()
			s, recorded, _ := newTestStore(t)

			s.Add(ctx, "x", test.add, nil)
			s.Remove(ctx, "x", test.remove)

			if have := s.Quantity("x"); have != 0 {
				t.Errorf("want: 0, have: %v", have)
			}
			if have := s.Len(); have != 0 {
				t.Errorf("expected empty inventory, have %d items", have)
			}
			if have, want := recorded.FilterMessage("item removed from inventory").Len(), 1; have != want {
				t.Errorf("want: %v, have: %v", want, have)
			}
		})
	}
}

func TestRemoveMissing(t *testing.T) {
	ctx := context.Background()
	s, recorded, m := newTestStore(t)
	s.Add(ctx, "apple", 2, nil)

	s.Remove(ctx, "nonexistent", 1)

	if diff := cmp.Diff([]storage.Item{{Name: "apple", Quantity: 2}}, s.Items()); diff != "" {
		t.Errorf("inventory changed (-want +have):\n%s", diff)
	}

	warnings := recorded.FilterLevelExact(zapcore.WarnLevel).All()
	if have, want := len(warnings), 1; have != want {
		t.Fatalf("want: %v, have: %v", want, have)
	}
	if have, want := warnings[0].ContextMap()[logkeys.Item], "nonexistent"; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
	if have, want := m.ops["remove/not_found"], 1; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
}

func TestAddInvalid(t *testing.T) {
	ctx := context.Background()
	s, recorded, m := newTestStore(t)
	logs := audit.NewLog()

	s.Add(ctx, "", 5, logs)

	if have := s.Len(); have != 0 {
		t.Errorf("expected empty inventory, have %d items", have)
	}
	if have := logs.Len(); have != 0 {
		t.Errorf("expected no audit entries, have %d", have)
	}
	if have, want := recorded.FilterMessage("invalid input for add").FilterLevelExact(zapcore.WarnLevel).Len(), 1; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
	if have, want := m.ops["add/invalid"], 1; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
}

func TestAddNegativeIsLowStock(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(context.Background(), "y", -1, nil)

	if have, want := s.Quantity("y"), -1; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
	if diff := cmp.Diff([]string{"y"}, s.LowStock(0)); diff != "" {
		t.Errorf("low stock mismatch (-want +have):\n%s", diff)
	}
}

func TestAudit(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)
	logs := audit.NewLog()

	s.Add(ctx, "apple", 10, logs)
	s.Add(ctx, "banana", 2, logs)
	s.Remove(ctx, "apple", 3)

	want := []audit.Entry{
		{ID: "id-1", Time: testTime, Message: "Added 10 of apple"},
		{ID: "id-2", Time: testTime, Message: "Added 2 of banana"},
	}
	if diff := cmp.Diff(want, logs.Entries()); diff != "" {
		t.Errorf("audit mismatch (-want +have):\n%s", diff)
	}

	if have, want := logs.Lines()[0], "2024-03-09 14:05:01.000000: Added 10 of apple"; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
}

func TestLowStock(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore(t)

	s.Add(ctx, "pear", 1, nil)
	s.Add(ctx, "apple", 10, nil)
	s.Add(ctx, "banana", 2, nil)
	s.Add(ctx, "kiwi", 5, nil)

	if diff := cmp.Diff([]string{"pear", "banana"}, s.LowStock(DefaultLowStockThreshold)); diff != "" {
		t.Errorf("low stock mismatch (-want +have):\n%s", diff)
	}
	if diff := cmp.Diff([]string{}, s.LowStock(1)); diff != "" {
		t.Errorf("low stock mismatch (-want +have):\n%s", diff)
	}
	if have, want := len(s.LowStock(100)), 4; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	s, _, m := newTestStore(t)
	s.Add(ctx, "apple", 1, nil)

	stock := storage.NewStock(
		storage.Item{Name: "banana", Quantity: 4},
		storage.Item{Name: "cherry", Quantity: 9},
	)
	s.Replace(stock)
	stock.Set("banana", 100)

	want := []storage.Item{{Name: "banana", Quantity: 4}, {Name: "cherry", Quantity: 9}}
	if diff := cmp.Diff(want, s.Items()); diff != "" {
		t.Errorf("items mismatch (-want +have):\n%s", diff)
	}
	if have, want := m.items, 2; have != want {
		t.Errorf("want: %v, have: %v", want, have)
	}

	s.Replace(nil)
	if have := s.Len(); have != 0 {
		t.Errorf("expected empty inventory, have %d items", have)
	}
}

func TestAddNilAuditLog(t *testing.T) {
	tests := []struct {
		name string
		logs audit.Sink
	}{
		{"nil sink", nil},
		{"nil log", (*audit.Log)(nil)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, recorded, _ := newTestStore(t)

			s.Add(context.Background(), "x", 1, test.logs)

			if have, want := s.Quantity("x"), 1; have != want {
				t.Errorf("want: %v, have: %v", want, have)
			}
			if have, want := recorded.FilterMessage("added item").Len(), 1; have != want {
				t.Errorf("want: %v, have: %v", want, have)
			}
		})
	}
}
