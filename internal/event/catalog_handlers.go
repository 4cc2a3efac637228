package event

import (
	"context"
	"log/slog"
)

func (s *Service) handleProductCreatedEvent(ctx context.Context, ev ProductCreatedEvent) error {
	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", ev.ProductID),
		slog.String("name", ev.Name),
		slog.Int("variant_count", ev.VariantCount))
	return nil
}

func (s *Service) handleProductDeletedEvent(ctx context.Context, ev ProductDeletedEvent) error {
	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", ev.ProductID),
		slog.Time("deleted_at", ev.DeletedAt))
	return nil
}
