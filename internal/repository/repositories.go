package repository

import "github.com/jmoiron/sqlx"

// Repositories groups every store the services need
type Repositories struct {
	Listings ListingRepository
	News     NewsRepository
	VipTiers VipTierRepository
	Clan     ClanInfoRepository
	Admins   AdminRepository
}

// NewRepositories builds the MySQL implementations
func NewRepositories(db *sqlx.DB) Repositories {
	return Repositories{
		Listings: NewListingRepository(db),
		News:     NewNewsRepository(db),
		VipTiers: NewVipTierRepository(db),
		Clan:     NewClanInfoRepository(db),
		Admins:   NewAdminRepository(db),
	}
}
