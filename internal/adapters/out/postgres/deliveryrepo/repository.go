package deliveryrepo

import (
	"context"
	"errors"
	"fmt"

	"delivery/internal/core/domain/model/delivery"
	"delivery/internal/core/domain/model/kernel"
	"delivery/internal/core/ports"
	"delivery/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the SQLSTATE Postgres reports for unique index conflicts.
const uniqueViolation = "23505"

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(trackingNumber kernel.TrackingNumber, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database and attaches the store-assigned
// numeric key to the aggregate. A unique index conflict on the tracking
// number surfaces as ports.ErrDuplicateTrackingNumber so the caller can
// regenerate and retry.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ports.ErrDuplicateTrackingNumber, dto.TrackingNumber)
		}
		return err
	}

	if err := aggregate.AttachStorageID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.TrackingNumber(), aggregate)
	return nil
}

// Update saves an existing delivery to the database.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	// Select("*") forces zero-value columns through, so cleared notes and
	// still-nil timestamps persist correctly.
	result := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("tracking_number = ?", dto.TrackingNumber).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("trackingNumber", dto.TrackingNumber)
	}

	r.tracker.TrackAggregate(aggregate.TrackingNumber(), aggregate)
	return nil
}

// GetByTrackingNumber retrieves a delivery by its tracking number.
func (r *GormDeliveryRepository) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber kernel.TrackingNumber,
) (*delivery.Delivery, error) {
	if err := trackingNumber.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "tracking_number = ?", trackingNumber.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingNumber", trackingNumber.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
