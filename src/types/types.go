// Package types holds the shared value types passed between the dataset,
// analysis, charts and report packages.
package types

// Sex labels as they appear in the source data after normalization.
const (
	SexMale   = "Male"
	SexFemale = "Female"
	SexTotal  = "Total"
)

// Observation is one (country, indicator, sex, year) measurement from the
// source table. ObsValue is a percentage in [0,100]. GDPPerCapita is the
// joined economic covariate; 0 means not reported for that row.
type Observation struct {
	Country      string  `json:"country"`
	ISO3         string  `json:"iso3,omitempty"` // empty when the country has no ISO mapping
	Region       string  `json:"region,omitempty"`
	Indicator    string  `json:"indicator"`
	Sex          string  `json:"sex"`
	Year         int     `json:"year"`
	ObsValue     float64 `json:"obs_value"`
	GDPPerCapita float64 `json:"gdp_per_capita,omitempty"`
}

// HasISO reports whether the observation's country resolved to an ISO 3166-1
// alpha-3 code and may therefore feed the choropleth.
func (o Observation) HasISO() bool { return o.ISO3 != "" }
