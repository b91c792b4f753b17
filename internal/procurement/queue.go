package procurement

import (
	"sort"
	"time"

	"github.com/rasoihq/kitchen-service/internal/model"
)

// BuildQueue merges derived shortages with persisted manual requests into one
// queue, newest first. Shortages are recomputed from the inventory snapshot on
// every call; they disappear on their own once stock rises past the reorder
// level.
func BuildQueue(items []model.InventoryItem, requests []model.ProcurementRequest, now time.Time) []model.PendingProcurement {
	queue := make([]model.PendingProcurement, 0, len(items)+len(requests))

	for i := range items {
		item := &items[i]
		if item.ReorderLevel <= 0 || item.Quantity > item.ReorderLevel {
			continue
		}
		queue = append(queue, model.DerivedShortage(item, now))
	}
	for i := range requests {
		queue = append(queue, requests[i].Pending())
	}

	sort.SliceStable(queue, func(a, b int) bool {
		return queue[a].CreatedAt.After(queue[b].CreatedAt)
	})
	return queue
}
