package services

import (
	"context"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/dto"
)

// CollectionSvcFacade processes weekly center collections.
type CollectionSvcFacade interface {
	// ProcessCollection applies one center sitting's payments as a single
	// atomic batch and returns the created sheet's totals. Any member entry
	// failing aborts the whole batch.
	ProcessCollection(ctx context.Context, actorID string, req dto.ProcessCollectionRequest) (*dto.CollectionResultResponse, error)

	// GetSheet retrieves a collection sheet with its entries.
	GetSheet(ctx context.Context, actorID, sheetID string) (*domain.CollectionSheet, error)

	// ListSheets retrieves a center's sheets, newest first.
	ListSheets(ctx context.Context, actorID, centerID string, limit, offset int) ([]domain.CollectionSheet, error)

	// VerifySheet flips a draft sheet to verified. Verified sheets are immutable.
	VerifySheet(ctx context.Context, actorID, sheetID string) (*domain.CollectionSheet, error)
}
