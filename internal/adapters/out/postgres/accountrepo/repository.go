package accountrepo

import (
	"context"

	"tracking/internal/adapters/out/postgres/dberr"
	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAccountRepository implements ports.AccountRepository using GORM.
type GormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Add inserts a new account. A taken handle yields *errs.ObjectAlreadyExistsError.
func (r *GormAccountRepository) Add(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Translate(err, "account", aggregate.Handle())
	}
	return nil
}

// Update writes the mutable columns of an existing account.
func (r *GormAccountRepository) Update(ctx context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AccountDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"handle":        dto.Handle,
			"password_hash": dto.PasswordHash,
			"full_name":     dto.FullName,
			"email":         dto.Email,
			"phone":         dto.Phone,
			"active":        dto.Active,
			"last_seen_at":  dto.LastSeenAt,
		})
	if result.Error != nil {
		return dberr.Translate(result.Error, "account", aggregate.Handle())
	}
	if result.RowsAffected == 0 {
		return dberr.Translate(gorm.ErrRecordNotFound, "account", aggregate.ID().String())
	}
	return nil
}

func (r *GormAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock held until the surrounding transaction ends.
func (r *GormAccountRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// FindByHandle matches the handle exactly after trimming.
func (r *GormAccountRepository) FindByHandle(ctx context.Context, handle string) (*account.Account, error) {
	var dto AccountDTO
	if err := r.db.WithContext(ctx).First(&dto, "handle = ?", account.NormalizeHandle(handle)).Error; err != nil {
		return nil, dberr.Translate(err, "account", handle)
	}
	return toDomain(dto)
}

func (r *GormAccountRepository) get(db *gorm.DB, id kernel.UUID) (*account.Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.Translate(err, "account", id.String())
	}
	return toDomain(dto)
}
