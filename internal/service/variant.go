package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/minhhoangvu/catalog-service/internal/apperr"
	"github.com/minhhoangvu/catalog-service/internal/event"
	"github.com/minhhoangvu/catalog-service/internal/model"
	"github.com/minhhoangvu/catalog-service/internal/repository"
	"github.com/minhhoangvu/catalog-service/internal/storage/db"
)

type VariantService interface {
	GetVariant(ctx context.Context, id uuid.UUID) (model.Variant, error)

	// UpdateVariant merges the supplied fields into the variant. Absent
	// fields keep their persisted values; updated_at is always refreshed.
	// Re-supplying the variant's current SKU is not a conflict.
	UpdateVariant(ctx context.Context, id uuid.UUID, params UpdateVariantParams) (model.Variant, error)

	// DeleteVariant physically removes the variant unless it is the last
	// one of its product, in which case the delete is refused up front.
	DeleteVariant(ctx context.Context, id uuid.UUID) error
}

type variantService struct {
	db            db.DB
	variantRepo   repository.VariantRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewVariantService(
	db db.DB,
	variantRepo repository.VariantRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) VariantService {
	return &variantService{
		db:            db,
		variantRepo:   variantRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *variantService) GetVariant(ctx context.Context, id uuid.UUID) (model.Variant, error) {
	variant, err := s.variantRepo.GetVariant(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Variant{}, apperr.VariantNotFoundErr
		}
		return model.Variant{}, fmt.Errorf("variant repository get variant: %w", err)
	}

	return variant, nil
}

func (s *variantService) UpdateVariant(ctx context.Context, id uuid.UUID, params UpdateVariantParams) (model.Variant, error) {
	if err := validateUpdateVariant(&params); err != nil {
		return model.Variant{}, err
	}

	current, err := s.variantRepo.GetVariant(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Variant{}, apperr.VariantNotFoundErr
		}
		return model.Variant{}, fmt.Errorf("variant repository get variant: %w", err)
	}

	// Only a SKU that actually changes is checked against persisted state,
	// so re-submitting the current SKU never reads as a conflict.
	if params.SKU != nil && *params.SKU != current.SKU {
		exists, err := s.variantRepo.SKUExists(ctx, *params.SKU)
		if err != nil {
			return model.Variant{}, fmt.Errorf("check sku exists: %w", err)
		}
		if exists {
			return model.Variant{}, apperr.SKUConflictErr.WithMsg("a variant with sku %q already exists", *params.SKU)
		}
	}

	var updated model.Variant
	if err := s.db.WithTx(ctx, func(txDB db.DB) error {
		var err error
		updated, err = s.variantRepo.
			WithDB(txDB).
			UpdateVariant(ctx, id, repository.UpdateVariantParams{
				SKU:            params.SKU,
				Name:           params.Name,
				PriceCents:     params.PriceCents,
				InventoryCount: params.InventoryCount,
				UpdatedAt:      time.Now(),
			})
		if err != nil {
			return fmt.Errorf("variant repository update variant: %w", err)
		}

		return recordEvent(ctx, s.outboxMsgRepo.WithDB(txDB),
			event.TopicVariantUpdated, updated.ProductID.String(), event.VariantUpdatedEvent{
				VariantID:      updated.ID.String(),
				ProductID:      updated.ProductID.String(),
				SKU:            updated.SKU,
				PriceCents:     updated.PriceCents,
				InventoryCount: updated.InventoryCount,
			})
	}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Variant{}, apperr.VariantNotFoundErr
		}
		if db.IsUniqueViolation(err) {
			return model.Variant{}, apperr.SKUConflictErr.WrapParent(err)
		}
		return model.Variant{}, fmt.Errorf("db with tx: %w", err)
	}

	return updated, nil
}

func (s *variantService) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	current, err := s.variantRepo.GetVariant(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.VariantNotFoundErr
		}
		return fmt.Errorf("variant repository get variant: %w", err)
	}

	// Guard rule: a product never loses its last variant. Checked before
	// the delete statement, not rolled back after.
	count, err := s.variantRepo.CountVariantsByProduct(ctx, current.ProductID)
	if err != nil {
		return fmt.Errorf("variant repository count variants: %w", err)
	}
	if count <= 1 {
		return apperr.LastVariantErr
	}

	if err := s.db.WithTx(ctx, func(txDB db.DB) error {
		if err := s.variantRepo.
			WithDB(txDB).
			DeleteVariant(ctx, id); err != nil {
			return fmt.Errorf("variant repository delete variant: %w", err)
		}

		return recordEvent(ctx, s.outboxMsgRepo.WithDB(txDB),
			event.TopicVariantDeleted, current.ProductID.String(), event.VariantDeletedEvent{
				VariantID: current.ID.String(),
				ProductID: current.ProductID.String(),
				SKU:       current.SKU,
			})
	}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.VariantNotFoundErr
		}
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}
