package coderepo

import (
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/otp"

	"github.com/google/uuid"
)

type OneTimeCodeDTO struct {
	RequestID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone      string    `gorm:"type:varchar(11);not null;index"`
	Purpose    int       `gorm:"type:smallint;not null"`
	CodeHash   []byte    `gorm:"type:bytea;not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	ConsumedAt *time.Time
	Attempts   int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (OneTimeCodeDTO) TableName() string {
	return "one_time_codes"
}

func fromDomain(c *otp.OneTimeCode) OneTimeCodeDTO {
	return OneTimeCodeDTO{
		RequestID:  c.RequestID().Bytes(),
		Phone:      c.Phone().String(),
		Purpose:    int(c.Purpose()),
		CodeHash:   c.CodeHash(),
		ExpiresAt:  c.ExpiresAt(),
		ConsumedAt: c.ConsumedAt(),
		Attempts:   c.Attempts(),
		CreatedAt:  c.CreatedAt(),
	}
}

func toDomain(dto OneTimeCodeDTO) (*otp.OneTimeCode, error) {
	requestID, err := kernel.UUIDFromBytes(dto.RequestID[:])
	if err != nil {
		return nil, err
	}
	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	return otp.RestoreOneTimeCode(
		requestID,
		phone,
		otp.Purpose(dto.Purpose),
		dto.CodeHash,
		dto.ExpiresAt,
		dto.ConsumedAt,
		dto.Attempts,
		dto.CreatedAt,
	), nil
}
