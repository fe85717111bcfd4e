// Package accountrepo maps courier accounts to the accounts table.
package accountrepo

import (
	"time"

	"tracking/internal/core/domain/model/account"
	"tracking/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO is the row shape of the accounts table.
type AccountDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Handle       string     `gorm:"type:varchar(60);not null;uniqueIndex"`
	PasswordHash string     `gorm:"type:text;not null"`
	FullName     string     `gorm:"type:varchar(150);not null"`
	Email        string     `gorm:"type:text;not null"`
	Phone        string     `gorm:"type:text;not null"`
	Active       bool       `gorm:"not null"`
	LastSeenAt   *time.Time `gorm:"type:timestamptz"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;not null;autoCreateTime:false"`
}

func (AccountDTO) TableName() string {
	return "accounts"
}

func fromDomain(a *account.Account) AccountDTO {
	return AccountDTO{
		ID:           a.ID().Bytes(),
		Handle:       a.Handle(),
		PasswordHash: a.PasswordHash(),
		FullName:     a.FullName(),
		Email:        a.Email(),
		Phone:        a.Phone(),
		Active:       a.IsActive(),
		LastSeenAt:   a.LastSeenAt(),
		CreatedAt:    a.CreatedAt(),
	}
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	return account.RestoreAccount(id, dto.Handle, dto.PasswordHash, dto.FullName,
		dto.Email, dto.Phone, dto.Active, dto.LastSeenAt, dto.CreatedAt)
}
