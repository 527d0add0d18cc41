package userrepo

import (
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO stores the driver profile inline. Vehicle columns are null for
// non-drivers.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone        string    `gorm:"type:varchar(11);not null;uniqueIndex"`
	Role         int       `gorm:"type:smallint;not null;index"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	VehicleModel *string   `gorm:"type:varchar(100)"`
	PlateNumber  *string   `gorm:"type:varchar(20)"`
	WorkerCount  *int
	DriverStatus *int `gorm:"type:smallint"`
}

func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	dto := UserDTO{
		ID:        u.ID().Bytes(),
		Phone:     u.Phone().String(),
		Role:      int(u.Role()),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
		CreatedAt: u.CreatedAt(),
	}

	if d := u.Driver(); d != nil {
		v := d.Vehicle()
		status := int(d.Status())
		dto.VehicleModel = &v.Model
		dto.PlateNumber = &v.PlateNumber
		dto.WorkerCount = &v.WorkerCount
		dto.DriverStatus = &status
	}
	return dto
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	phone, err := kernel.NewPhone(dto.Phone)
	if err != nil {
		return nil, err
	}

	var vehicle *user.Vehicle
	var status user.DriverStatus
	if dto.DriverStatus != nil {
		vehicle = &user.Vehicle{}
		if dto.VehicleModel != nil {
			vehicle.Model = *dto.VehicleModel
		}
		if dto.PlateNumber != nil {
			vehicle.PlateNumber = *dto.PlateNumber
		}
		if dto.WorkerCount != nil {
			vehicle.WorkerCount = *dto.WorkerCount
		}
		status = user.DriverStatus(*dto.DriverStatus)
	}

	return user.RestoreUser(
		id,
		phone,
		kernel.Role(dto.Role),
		dto.FirstName, dto.LastName,
		dto.CreatedAt,
		vehicle,
		status,
	), nil
}
