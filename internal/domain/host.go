package domain

// InventoryPort exposes the host engine's participant-inventory
// operations. Quantities are item counts, not lots.
type InventoryPort interface {
	// Count returns how many items matching spec the participant holds.
	Count(participant string, item ItemSpec) int64
	// FreeCapacity returns how many more items of this spec the
	// participant's inventory can absorb.
	FreeCapacity(participant string, item ItemSpec) int64
	Give(participant string, item ItemSpec, quantity int64) error
	Take(participant string, item ItemSpec, quantity int64) error
}

// ViewPort is the rendering boundary: the core only requests that a
// catalog view be shown or dismissed, it never renders anything itself.
type ViewPort interface {
	RenderCatalog(participant string, shop *Shop)
	CloseView(participant string)
}
