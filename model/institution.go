package model

// Institution represents a tenant organization. Every other record is scoped
// to exactly one institution via InstitutionID.
type Institution struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
}
