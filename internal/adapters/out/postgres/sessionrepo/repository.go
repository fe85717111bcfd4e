package sessionrepo

import (
	"context"
	"time"

	"tracking/internal/adapters/out/postgres/dberr"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/session"

	"gorm.io/gorm"
)

// GormSessionRepository implements ports.SessionRepository using GORM. Every
// deactivation is a single UPDATE ... WHERE active so concurrent callers never
// double count.
type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "session", aggregate.AccountID().String())
	}
	return nil
}

// FindActiveByToken ignores expiry; callers decide what an expired row means.
func (r *GormSessionRepository) FindActiveByToken(ctx context.Context, token string) (*session.Session, error) {
	var dto SessionDTO
	err := r.db.WithContext(ctx).
		Where("token = ? AND active", token).
		First(&dto).Error
	if err != nil {
		return nil, dberr.Translate(err, "session", "token")
	}
	return toDomain(dto)
}

func (r *GormSessionRepository) DeactivateAllForAccount(ctx context.Context, accountID kernel.UUID) (int64, error) {
	if err := accountID.Validate(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).
		Model(&SessionDTO{}).
		Where("account_id = ? AND active", accountID.Bytes()).
		Update("active", false)
	return result.RowsAffected, result.Error
}

func (r *GormSessionRepository) DeactivateByToken(ctx context.Context, token string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&SessionDTO{}).
		Where("token = ? AND active", token).
		Update("active", false)
	return result.RowsAffected > 0, result.Error
}

func (r *GormSessionRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&SessionDTO{}).
		Where("active AND expires_at <= ?", now).
		Update("active", false)
	return result.RowsAffected, result.Error
}
