package repository

import (
	"context"
	"errors"

	"campwild/internal/cache"
	"campwild/internal/models"

	"gorm.io/gorm"
)

// CampgroundRepository defines persistence operations for campgrounds.
type CampgroundRepository interface {
	Create(ctx context.Context, campground *models.Campground) error
	GetByID(ctx context.Context, id uint) (*models.Campground, error)
	List(ctx context.Context, limit, offset int) ([]models.Campground, error)
	Count(ctx context.Context) (int64, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Campground, error)
	SearchByName(ctx context.Context, query string, limit, offset int) ([]models.Campground, error)
	Update(ctx context.Context, campground *models.Campground) error
	Delete(ctx context.Context, id uint) error
}

type campgroundRepository struct {
	db *gorm.DB
}

// NewCampgroundRepository returns a new CampgroundRepository implementation.
func NewCampgroundRepository(db *gorm.DB) CampgroundRepository {
	return &campgroundRepository{db: db}
}

func (r *campgroundRepository) Create(ctx context.Context, campground *models.Campground) error {
	if err := r.db.WithContext(ctx).Create(campground).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCampgroundLists(ctx)
	return nil
}

func (r *campgroundRepository) GetByID(ctx context.Context, id uint) (*models.Campground, error) {
	var rec campgroundRecord
	key := cache.CampgroundKey(id)

	err := cache.Aside(ctx, key, &rec, cache.CampgroundTTL, func() error {
		var campground models.Campground
		if err := r.db.WithContext(ctx).First(&campground, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Campground", id)
			}
			return models.NewInternalError(err)
		}
		rec = newCampgroundRecord(&campground)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return rec.campground(), nil
}

func (r *campgroundRepository) List(ctx context.Context, limit, offset int) ([]models.Campground, error) {
	query := func() ([]models.Campground, error) {
		var campgrounds []models.Campground
		err := r.db.WithContext(ctx).
			Order("created_at DESC").
			Limit(limit).
			Offset(offset).
			Find(&campgrounds).Error
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		return campgrounds, nil
	}

	// Listing pages align to limit-sized pages; cache only aligned requests.
	if limit > 0 && offset%limit == 0 {
		page := offset/limit + 1
		var recs []campgroundRecord
		err := cache.Aside(ctx, cache.CampgroundListKey(page, limit), &recs, cache.CampgroundListTTL, func() error {
			campgrounds, err := query()
			if err != nil {
				return err
			}
			recs = newCampgroundRecords(campgrounds)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return campgroundModels(recs), nil
	}

	return query()
}

func (r *campgroundRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Campground{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *campgroundRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]models.Campground, error) {
	var campgrounds []models.Campground
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&campgrounds).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return campgrounds, nil
}

func (r *campgroundRepository) SearchByName(ctx context.Context, query string, limit, offset int) ([]models.Campground, error) {
	var campgrounds []models.Campground
	like := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR location ILIKE ?", like, like).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&campgrounds).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return campgrounds, nil
}

func (r *campgroundRepository) Update(ctx context.Context, campground *models.Campground) error {
	if err := r.db.WithContext(ctx).Save(campground).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCampground(ctx, campground.ID)
	return nil
}

func (r *campgroundRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Campground{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCampground(ctx, id)
	return nil
}
