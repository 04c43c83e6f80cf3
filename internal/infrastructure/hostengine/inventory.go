package hostengine

import (
	"fmt"

	"github.com/questforge/shopkeeper-service/internal/domain"
)

// InMemoryInventory is a self-contained InventoryPort: participant
// inventories as item-count maps with a shared slot-capacity limit.
// The standalone binary runs on it; an embedding host engine swaps in
// its own world-backed implementation.
type InMemoryInventory struct {
	capacity int64
	holdings map[string]map[domain.ItemSpec]int64
}

func NewInMemoryInventory(capacityPerItem int64) *InMemoryInventory {
	return &InMemoryInventory{
		capacity: capacityPerItem,
		holdings: make(map[string]map[domain.ItemSpec]int64),
	}
}

func (inv *InMemoryInventory) Count(participant string, item domain.ItemSpec) int64 {
	return inv.holdings[participant][item]
}

func (inv *InMemoryInventory) FreeCapacity(participant string, item domain.ItemSpec) int64 {
	free := inv.capacity - inv.holdings[participant][item]
	if free < 0 {
		return 0
	}
	return free
}

func (inv *InMemoryInventory) Give(participant string, item domain.ItemSpec, quantity int64) error {
	if quantity < 0 {
		return fmt.Errorf("negative give quantity %d", quantity)
	}
	if inv.FreeCapacity(participant, item) < quantity {
		return domain.ErrInventoryFull
	}
	items, ok := inv.holdings[participant]
	if !ok {
		items = make(map[domain.ItemSpec]int64)
		inv.holdings[participant] = items
	}
	items[item] += quantity
	return nil
}

func (inv *InMemoryInventory) Take(participant string, item domain.ItemSpec, quantity int64) error {
	if quantity < 0 {
		return fmt.Errorf("negative take quantity %d", quantity)
	}
	items := inv.holdings[participant]
	if items[item] < quantity {
		return domain.ErrInsufficientItems
	}
	items[item] -= quantity
	if items[item] == 0 {
		delete(items, item)
	}
	return nil
}
