package repositories

import (
	"context"
	"time"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
)

// CollectionReader defines read operations for collection sheets.
type CollectionReader interface {
	// FindSheetByID retrieves a sheet with its member entries.
	FindSheetByID(ctx context.Context, sheetID string) (*domain.CollectionSheet, error)

	// FindSheetByCenterAndDate retrieves the sheet for one center meeting,
	// if any. Used to reject duplicate submissions for the same sitting.
	FindSheetByCenterAndDate(ctx context.Context, centerID string, date time.Time) (*domain.CollectionSheet, error)

	// ListSheetsByCenter retrieves sheets of a center, newest first.
	ListSheetsByCenter(ctx context.Context, centerID string, limit, offset int) ([]domain.CollectionSheet, error)
}

// CollectionWriter defines write operations for collection sheets.
type CollectionWriter interface {
	// SaveCollectionSheet inserts the sheet and all its entries.
	SaveCollectionSheet(ctx context.Context, sheet domain.CollectionSheet) error

	// MarkSheetVerified flips a draft sheet to verified, write-once.
	MarkSheetVerified(ctx context.Context, sheetID, verifierID string, verifiedAt time.Time) error
}

// CollectionRepositoryFacade combines collection reader and writer.
type CollectionRepositoryFacade interface {
	CollectionReader
	CollectionWriter
}
