package domain

// Category is one entry of the read-only category taxonomy, keyed by a
// stable slug in the taxonomy map.
type Category struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Subcategories []string `json:"subcategories"`
}

// CategoryMap is the full taxonomy as served by the backend.
type CategoryMap map[string]Category

// PricingPlan is a subscription tier offered to clients.
type PricingPlan struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency,omitempty"`
	Features []string `json:"features"`
	JobLimit int      `json:"job_limit,omitempty"`
}

// Commission describes the marketplace fee structure.
type Commission struct {
	TransactionFee string `json:"transaction_fee"`
	PlacementFee   string `json:"placement_fee"`
}

// Pricing bundles the plans and the commission structure as returned by
// GET /pricing/plans.
type Pricing struct {
	Plans      []PricingPlan `json:"plans"`
	Commission Commission    `json:"commission"`
}
