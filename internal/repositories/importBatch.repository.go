package repositories

import (
	"context"
	"pulse360/internal/database"
	"pulse360/internal/logger"
	. "pulse360/internal/models"
	"pulse360/internal/services"
	"time"

	"gorm.io/gorm"
)

const (
	BATCH_CACHE_EXPIRY = 24 * time.Hour
)

type ImportBatchRepository interface {
	Create(ctx context.Context, batch *ImportBatch) error
	Update(ctx context.Context, batch *ImportBatch) error
	GetByToken(ctx context.Context, batchToken string) (*ImportBatch, error)
	GetAll(ctx context.Context) ([]*ImportBatch, error)
}

type importBatchRepository struct {
	db  database.DB
	log logger.Logger
}

func NewImportBatch(db database.DB) ImportBatchRepository {
	return &importBatchRepository{
		db:  db,
		log: logger.New("importBatchRepository"),
	}
}

func (r *importBatchRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *importBatchRepository) Create(ctx context.Context, batch *ImportBatch) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(batch).Error; err != nil {
		return log.Err("failed to create import batch", err, "batchToken", batch.BatchToken)
	}

	return nil
}

func (r *importBatchRepository) Update(ctx context.Context, batch *ImportBatch) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(batch).Error; err != nil {
		return log.Err("failed to update import batch", err, "batchToken", batch.BatchToken)
	}

	if err := r.addBatchToCache(ctx, batch); err != nil {
		log.Warn("failed to cache import batch", "batchToken", batch.BatchToken, "error", err)
	}

	return nil
}

func (r *importBatchRepository) GetByToken(ctx context.Context, batchToken string) (*ImportBatch, error) {
	log := r.log.Function("GetByToken")

	var batch ImportBatch
	found, err := database.NewCacheBuilder(r.db.Cache.Batch, batchToken).
		WithContext(ctx).
		Get(&batch)
	if err == nil && found {
		return &batch, nil
	}

	if err := r.getDB(ctx).First(&batch, "batch_token = ?", batchToken).Error; err != nil {
		return nil, log.Err("failed to get import batch by token", err, "batchToken", batchToken)
	}

	if err := r.addBatchToCache(ctx, &batch); err != nil {
		log.Warn("failed to cache import batch", "batchToken", batchToken, "error", err)
	}

	return &batch, nil
}

func (r *importBatchRepository) GetAll(ctx context.Context) ([]*ImportBatch, error) {
	log := r.log.Function("GetAll")

	var batches []*ImportBatch
	if err := r.getDB(ctx).Order("started_at DESC").Find(&batches).Error; err != nil {
		return nil, log.Err("failed to get all import batches", err)
	}

	return batches, nil
}

func (r *importBatchRepository) addBatchToCache(ctx context.Context, batch *ImportBatch) error {
	return database.NewCacheBuilder(r.db.Cache.Batch, batch.BatchToken).
		WithStruct(batch).
		WithTTL(BATCH_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}
