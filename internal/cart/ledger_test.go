package cart

import (
	"encoding/json"
	"math/rand"
	"testing"

	"ota-rewards/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddOn(id, price string) model.AddOn {
	return model.AddOn{
		ID:          id,
		Title:       "Add-on " + id,
		Price:       decimal.RequireFromString(price),
		PartnerName: "Partner",
	}
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "expected %s, got %s", want, got)
}

func TestLedger_Add(t *testing.T) {
	analytics := testAddOn("addon-1", "29.99")
	social := testAddOn("addon-2", "19.99")

	tests := []struct {
		name          string
		adds          []model.AddOn
		expectedLines int
		expectedQty   map[string]int
		expectedTotal string
	}{
		{
			name:          "Single add-on",
			adds:          []model.AddOn{analytics},
			expectedLines: 1,
			expectedQty:   map[string]int{"addon-1": 1},
			expectedTotal: "29.99",
		},
		{
			name:          "Same add-on twice merges into one line",
			adds:          []model.AddOn{analytics, analytics},
			expectedLines: 1,
			expectedQty:   map[string]int{"addon-1": 2},
			expectedTotal: "59.98",
		},
		{
			name:          "Different add-ons keep insertion order",
			adds:          []model.AddOn{social, analytics, social},
			expectedLines: 2,
			expectedQty:   map[string]int{"addon-2": 2, "addon-1": 1},
			expectedTotal: "69.97",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			for _, a := range tt.adds {
				l.Add(a)
			}

			items := l.Items()
			require.Len(t, items, tt.expectedLines)
			assert.Equal(t, tt.adds[0].ID, items[0].AddOn.ID)
			for _, item := range items {
				assert.Equal(t, tt.expectedQty[item.AddOn.ID], item.Quantity)
			}
			assertMoney(t, tt.expectedTotal, l.Total())
		})
	}
}

func TestLedger_RemoveDropsWholeLine(t *testing.T) {
	l := NewLedger()
	l.Add(testAddOn("addon-1", "29.99"))
	l.Add(testAddOn("addon-1", "29.99"))
	l.Add(testAddOn("addon-1", "29.99"))
	l.Add(testAddOn("addon-3", "9.99"))

	l.Remove("addon-1")

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "addon-3", items[0].AddOn.ID)
	assert.Equal(t, 1, items[0].Quantity)
	assertMoney(t, "9.99", l.Total())
}

func TestLedger_RemoveAbsentIsNoop(t *testing.T) {
	l := NewLedger()
	l.Add(testAddOn("addon-1", "29.99"))
	before := l.Snapshot()

	l.Remove("addon-404")

	after := l.Snapshot()
	assert.Equal(t, before.Items, after.Items)
	assert.True(t, before.Total.Equal(after.Total))
}

func TestLedger_RemoveFromEmpty(t *testing.T) {
	l := NewLedger()
	l.Remove("addon-1")

	assert.Equal(t, 0, l.Len())
	assertMoney(t, "0", l.Total())
}

func TestLedger_Clear(t *testing.T) {
	l := NewLedger()
	l.Add(testAddOn("addon-1", "29.99"))
	l.Add(testAddOn("addon-2", "19.99"))

	l.Clear()

	assert.Empty(t, l.Items())
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, 0, l.Quantity())
	assertMoney(t, "0", l.Total())

	// clearing twice stays empty
	l.Clear()
	assert.Empty(t, l.Items())
}

func TestLedger_ItemsIsACopy(t *testing.T) {
	l := NewLedger()
	l.Add(testAddOn("addon-1", "29.99"))

	items := l.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, l.Items()[0].Quantity)
	assertMoney(t, "29.99", l.Total())
}

func TestLedger_Quantity(t *testing.T) {
	l := NewLedger()
	l.Add(testAddOn("addon-1", "1.00"))
	l.Add(testAddOn("addon-1", "1.00"))
	l.Add(testAddOn("addon-2", "2.00"))

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, 3, l.Quantity())
}

// TestLedger_TotalMatchesItems drives random add/remove/clear sequences and
// checks the total against an independently computed sum after every call.
func TestLedger_TotalMatchesItems(t *testing.T) {
	catalog := []model.AddOn{
		testAddOn("addon-1", "29.99"),
		testAddOn("addon-2", "19.99"),
		testAddOn("addon-3", "9.99"),
		testAddOn("addon-4", "0.01"),
		testAddOn("addon-5", "0"),
		testAddOn("addon-6", "0.005"),
	}

	rng := rand.New(rand.NewSource(42))
	l := NewLedger()

	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(10); {
		case op < 6:
			l.Add(catalog[rng.Intn(len(catalog))])
		case op < 9:
			l.Remove(catalog[rng.Intn(len(catalog))].ID)
		default:
			l.Clear()
		}

		expected := decimal.Zero
		seen := make(map[string]bool)
		for _, item := range l.Items() {
			require.False(t, seen[item.AddOn.ID], "duplicate line for %s at step %d", item.AddOn.ID, step)
			seen[item.AddOn.ID] = true
			require.GreaterOrEqual(t, item.Quantity, 1)
			expected = expected.Add(item.AddOn.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		require.True(t, expected.Equal(l.Total()), "step %d: expected %s, got %s", step, expected, l.Total())
	}
}

func TestLedger_Deduct(t *testing.T) {
	tests := []struct {
		name      string
		purchased []model.CartItem
		expected  map[string]int
		total     string
	}{
		{
			name:      "Everything bought empties the cart",
			purchased: []model.CartItem{{AddOn: testAddOn("addon-1", "29.99"), Quantity: 2}, {AddOn: testAddOn("addon-2", "19.99"), Quantity: 1}},
			expected:  map[string]int{},
			total:     "0",
		},
		{
			name:      "Units added after pricing stay",
			purchased: []model.CartItem{{AddOn: testAddOn("addon-1", "29.99"), Quantity: 1}},
			expected:  map[string]int{"addon-1": 1, "addon-2": 1},
			total:     "49.98",
		},
		{
			name:      "Lines removed in the meantime are ignored",
			purchased: []model.CartItem{{AddOn: testAddOn("addon-9", "5.00"), Quantity: 3}},
			expected:  map[string]int{"addon-1": 2, "addon-2": 1},
			total:     "79.97",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLedger()
			l.Add(testAddOn("addon-1", "29.99"))
			l.Add(testAddOn("addon-1", "29.99"))
			l.Add(testAddOn("addon-2", "19.99"))

			l.Deduct(tt.purchased)

			got := make(map[string]int)
			for _, item := range l.Items() {
				got[item.AddOn.ID] = item.Quantity
			}
			assert.Equal(t, tt.expected, got)
			assertMoney(t, tt.total, l.Total())
		})
	}
}

func TestLedger_TotalIsNotRounded(t *testing.T) {
	l := NewLedger()
	l.Add(testAddOn("addon-1", "0.005"))
	l.Add(testAddOn("addon-1", "0.005"))
	l.Add(testAddOn("addon-2", "1.001"))

	assertMoney(t, "1.011", l.Total())
}

func TestLedger_EmptySnapshotEncodesItemsAsArray(t *testing.T) {
	for name, l := range map[string]*Ledger{
		"New":     NewLedger(),
		"Cleared": func() *Ledger { l := NewLedger(); l.Add(testAddOn("addon-1", "1.00")); l.Clear(); return l }(),
	} {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(l.Snapshot())
			require.NoError(t, err)
			assert.JSONEq(t, `{"items":[],"total":0}`, string(data))
		})
	}
}
