package domain

// ClientProfile is the company profile of a client account, one-to-one
// with the owning user.
type ClientProfile struct {
	ID               string `json:"id"`
	CompanyName      string `json:"company_name"`
	Industry         string `json:"industry"`
	CompanySize      string `json:"company_size,omitempty"`
	Location         string `json:"location"`
	Website          string `json:"website,omitempty"`
	SubscriptionPlan string `json:"subscription_plan,omitempty"`
}
