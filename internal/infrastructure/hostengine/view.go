package hostengine

import (
	"log/slog"

	"github.com/questforge/shopkeeper-service/internal/domain"
)

// LogView satisfies the ViewPort with structured log lines instead of a
// real interface. The embedding host engine replaces it with its
// inventory-window renderer.
type LogView struct{}

func (LogView) RenderCatalog(participant string, shop *domain.Shop) {
	slog.Info("render catalog view",
		"participant", participant,
		"shop_id", shop.ID,
		"shop_name", shop.Name,
		"offers", len(shop.Catalog))
}

func (LogView) CloseView(participant string) {
	slog.Info("close catalog view", "participant", participant)
}
