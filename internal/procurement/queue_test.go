package procurement

import (
	"reflect"
	"testing"
	"time"

	"github.com/rasoihq/kitchen-service/internal/model"
)

func item(id, name string, quantity, reorder float64) model.InventoryItem {
	return model.InventoryItem{
		BaseModel:    model.BaseModel{ID: id},
		Name:         name,
		Quantity:     quantity,
		ReorderLevel: reorder,
	}
}

func TestBuildQueueDerivedShortages(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	items := []model.InventoryItem{
		item("a", "Lentils", 3, 5),  // understocked
		item("b", "Rice", 10, 5),    // healthy, excluded
		item("c", "Ghee", 5, 5),     // at threshold, included
		item("d", "Misc", 0, 0),     // no reorder level, excluded
		item("e", "Sugar", 12, 5),   // well stocked, excluded
	}

	queue := BuildQueue(items, nil, now)
	if len(queue) != 2 {
		t.Fatalf("got %d entries, want 2", len(queue))
	}

	byID := map[string]model.PendingProcurement{}
	for _, entry := range queue {
		byID[entry.ID] = entry
	}

	lentils, ok := byID["SHORT-a"]
	if !ok {
		t.Fatal("missing derived shortage SHORT-a")
	}
	if lentils.Source != model.SourceDerived {
		t.Errorf("source = %v, want derived", lentils.Source)
	}
	if lentils.RequiredQty != 10 {
		t.Errorf("requiredQty = %v, want 10 (2 × reorder level)", lentils.RequiredQty)
	}
	if lentils.ShortageQty != 7 {
		t.Errorf("shortageQty = %v, want 7", lentils.ShortageQty)
	}

	ghee := byID["SHORT-c"]
	if ghee.ShortageQty != 5 {
		t.Errorf("at-threshold shortageQty = %v, want 5", ghee.ShortageQty)
	}
}

func TestBuildQueueIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	items := []model.InventoryItem{item("a", "Lentils", 3, 5)}

	first := BuildQueue(items, nil, now)
	second := BuildQueue(items, nil, now)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recomputation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDerivedShortageFloorsAtZero(t *testing.T) {
	now := time.Now()
	overstocked := item("a", "Bulk Salt", 50, 20)

	shortage := model.DerivedShortage(&overstocked, now)
	if shortage.RequiredQty != 40 {
		t.Errorf("requiredQty = %v, want 40", shortage.RequiredQty)
	}
	if shortage.ShortageQty != 0 {
		t.Errorf("shortageQty = %v, want 0 (never negative)", shortage.ShortageQty)
	}
	if shortage.ID != "SHORT-a" {
		t.Errorf("id = %s, want SHORT-a", shortage.ID)
	}
}

func TestBuildQueueMergeOrdering(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []model.InventoryItem{item("a", "Lentils", 1, 5)}
	requests := []model.ProcurementRequest{
		{ID: "req-old", IngredientName: "Paneer", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "req-new", IngredientName: "Milk", CreatedAt: now.Add(24 * time.Hour)},
	}

	queue := BuildQueue(items, requests, now)
	if len(queue) != 3 {
		t.Fatalf("got %d entries, want 3", len(queue))
	}

	// Newest first: future-dated manual request, derived shortage (stamped
	// now), then the older manual request.
	wantOrder := []string{"req-new", "SHORT-a", "req-old"}
	for i, id := range wantOrder {
		if queue[i].ID != id {
			t.Errorf("queue[%d] = %s, want %s", i, queue[i].ID, id)
		}
	}

	if queue[0].Source != model.SourceManual {
		t.Errorf("manual entry tagged %v, want manual", queue[0].Source)
	}
}
