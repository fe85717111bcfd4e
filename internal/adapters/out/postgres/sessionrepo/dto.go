// Package sessionrepo maps issued sessions to the sessions table.
package sessionrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/session"

	"github.com/google/uuid"
)

// SessionDTO is the row shape of the sessions table. A partial unique index on
// account_id WHERE active backs the one-active-session rule.
type SessionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:text;not null;uniqueIndex"`
	Device    string    `gorm:"type:varchar(300);not null"`
	IP        string    `gorm:"column:ip;type:varchar(64);not null"`
	IssuedAt  time.Time `gorm:"type:timestamptz;not null"`
	ExpiresAt time.Time `gorm:"type:timestamptz;not null"`
	Active    bool      `gorm:"not null"`
}

func (SessionDTO) TableName() string {
	return "sessions"
}

func fromDomain(s *session.Session) SessionDTO {
	return SessionDTO{
		ID:        s.ID().Bytes(),
		AccountID: s.AccountID().Bytes(),
		Token:     s.Token(),
		Device:    s.Device(),
		IP:        s.IP(),
		IssuedAt:  s.IssuedAt(),
		ExpiresAt: s.ExpiresAt(),
		Active:    s.IsFlaggedActive(),
	}
}

func toDomain(dto SessionDTO) (*session.Session, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	accountID, err := kernel.UUIDFromGoogle(dto.AccountID)
	if err != nil {
		return nil, err
	}
	return session.RestoreSession(id, accountID, dto.Token, dto.Device, dto.IP,
		dto.IssuedAt, dto.ExpiresAt, dto.Active)
}
