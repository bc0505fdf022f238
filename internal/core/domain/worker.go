package domain

// WorkerProfile is the public professional profile of a worker account,
// one-to-one with the owning user.
type WorkerProfile struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Bio             string   `json:"bio"`
	Category        string   `json:"category"`
	Skills          []string `json:"skills"`
	HourlyRate      float64  `json:"hourly_rate"`
	ExperienceYears int      `json:"experience_years"`
	Location        string   `json:"location"`
	PortfolioLinks  []string `json:"portfolio_links"`
}
