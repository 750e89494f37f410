package models

// Currency represents a currency configured by an organization.
type Currency struct {
	CurrencyID     string `db:"currency_id"`
	OrganizationID string `db:"organization_id"`
	Code           string `db:"code"`   // e.g., "USD"
	Symbol         string `db:"symbol"` // e.g., "$"
	Name           string `db:"name"`   // e.g., "US Dollar"
	DecimalPlaces  int    `db:"decimal_places"`
	IsBase         bool   `db:"is_base"`
	IsActive       bool   `db:"is_active"`
	AuditFields
	SoftDelete
}
