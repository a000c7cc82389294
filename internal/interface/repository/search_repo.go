package repository

import (
	"context"
	"errors"
	"time"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormSearchRepository implements the SearchRepository interface
type GormSearchRepository struct {
	db *gorm.DB
}

// NewGormSearchRepository creates a new GORM search repository
func NewGormSearchRepository(db *gorm.DB) repository.SearchRepository {
	return &GormSearchRepository{
		db: db,
	}
}

// Exists reports whether a search with the given id is stored
func (r *GormSearchRepository) Exists(ctx context.Context, searchID string) (bool, error) {
	var count int64
	result := conn(ctx, r.db).Model(&SearchRecord{}).Where("search_id = ?", searchID).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Create inserts a new search row
func (r *GormSearchRepository) Create(ctx context.Context, search *entity.Search) error {
	model := SearchRecord{
		SearchID:   search.SearchID,
		URL:        search.URL,
		CapturedAt: search.CapturedAt,
		RangeStart: optionalDate(search.RangeStart),
		RangeEnd:   optionalDate(search.RangeEnd),
		Results:    search.Results,
		IsCurrent:  search.Current,
	}
	return conn(ctx, r.db).Create(&model).Error
}

// FindByID finds a search by id
func (r *GormSearchRepository) FindByID(ctx context.Context, searchID string) (*entity.Search, error) {
	var model SearchRecord
	result := conn(ctx, r.db).Where("search_id = ?", searchID).First(&model)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, entity.ErrNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return toSearchEntity(&model), nil
}

// FindAll returns every stored search, oldest capture first
func (r *GormSearchRepository) FindAll(ctx context.Context) ([]*entity.Search, error) {
	var models []SearchRecord
	result := conn(ctx, r.db).Order("captured_at, search_id").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	searches := make([]*entity.Search, 0, len(models))
	for i := range models {
		searches = append(searches, toSearchEntity(&models[i]))
	}
	return searches, nil
}

// FindStale returns non-current searches captured before the cutoff
func (r *GormSearchRepository) FindStale(ctx context.Context, capturedBefore time.Time) ([]*entity.Search, error) {
	var models []SearchRecord
	result := conn(ctx, r.db).
		Where("captured_at < ?", capturedBefore).
		Where("is_current = ?", false).
		Order("captured_at").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	searches := make([]*entity.Search, 0, len(models))
	for i := range models {
		searches = append(searches, toSearchEntity(&models[i]))
	}
	return searches, nil
}

// ClearCurrentFlags sets is_current to false on every search flagged current
func (r *GormSearchRepository) ClearCurrentFlags(ctx context.Context) (int64, error) {
	result := conn(ctx, r.db).Model(&SearchRecord{}).
		Where("is_current = ?", true).
		Update("is_current", false)
	return result.RowsAffected, result.Error
}

// Delete removes the search row only; dependent rows must already be gone
func (r *GormSearchRepository) Delete(ctx context.Context, searchID string) error {
	return conn(ctx, r.db).Where("search_id = ?", searchID).Delete(&SearchRecord{}).Error
}
