package filters

import (
	"time"

	"gorm.io/gorm"

	"crm/internal/models"
)

// CustomerFilter holds the supported customer query parameters.
type CustomerFilter struct {
	Name            string     // case-insensitive substring match
	Email           string     // case-insensitive substring match
	CreatedAtGTE    *time.Time // inclusive lower bound
	CreatedAtLTE    *time.Time // inclusive upper bound
	PhoneStartsWith string     // prefix match on phone
}

// Match reports whether the customer satisfies every set parameter.
func (f CustomerFilter) Match(c models.Customer) bool {
	if f.Name != "" && !containsFold(c.Name, f.Name) {
		return false
	}
	if f.Email != "" && !containsFold(c.Email, f.Email) {
		return false
	}
	if f.CreatedAtGTE != nil && c.CreatedAt.Before(*f.CreatedAtGTE) {
		return false
	}
	if f.CreatedAtLTE != nil && c.CreatedAt.After(*f.CreatedAtLTE) {
		return false
	}
	if f.PhoneStartsWith != "" && !hasPrefixFold(c.Phone, f.PhoneStartsWith) {
		return false
	}
	return true
}

// Scope returns the equivalent GORM query restriction.
func (f CustomerFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Name != "" {
			db = db.Where("LOWER(customers.name) LIKE ?", likeContains(f.Name))
		}
		if f.Email != "" {
			db = db.Where("LOWER(customers.email) LIKE ?", likeContains(f.Email))
		}
		if f.CreatedAtGTE != nil {
			db = db.Where("customers.created_at >= ?", *f.CreatedAtGTE)
		}
		if f.CreatedAtLTE != nil {
			db = db.Where("customers.created_at <= ?", *f.CreatedAtLTE)
		}
		if f.PhoneStartsWith != "" {
			db = db.Where("LOWER(customers.phone) LIKE ?", likePrefix(f.PhoneStartsWith))
		}
		return db
	}
}
