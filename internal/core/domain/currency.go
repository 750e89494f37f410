package domain

// Currency represents a currency configured by an organization.
// At most one currency per organization has IsBase set.
type Currency struct {
	CurrencyID     string `json:"currencyID"`
	OrganizationID string `json:"organizationID"`
	Code           string `json:"code"`   // e.g., "AFN"
	Symbol         string `json:"symbol"` // e.g., "؋"
	Name           string `json:"name"`
	DecimalPlaces  int    `json:"decimalPlaces"`
	IsBase         bool   `json:"isBase"`
	IsActive       bool   `json:"isActive"`
	AuditFields
	SoftDelete
}
