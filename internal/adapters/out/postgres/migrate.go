package postgres

import (
	"moving/internal/adapters/out/postgres/catalogrepo"
	"moving/internal/adapters/out/postgres/coderepo"
	"moving/internal/adapters/out/postgres/guestorderrepo"
	"moving/internal/adapters/out/postgres/orderrepo"
	"moving/internal/adapters/out/postgres/ticketrepo"
	"moving/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service, parents before children.
func Models() []any {
	return []any{
		&userrepo.UserDTO{},
		&catalogrepo.PricingFactorDTO{},
		&catalogrepo.PackagingProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.AddressDTO{},
		&orderrepo.ItemDTO{},
		&guestorderrepo.GuestOrderDTO{},
		&ticketrepo.TicketDTO{},
		&ticketrepo.MessageDTO{},
		&coderepo.OneTimeCodeDTO{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
