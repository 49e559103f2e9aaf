package types

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
)

// ReportConfig drives which slices of the dataset the report covers.
// Loaded from a JSONC file so the shipped default can carry commentary.
type ReportConfig struct {
	// Indicator is matched case-insensitively against the indicator column
	// (exact match first, substring as fallback).
	Indicator string `json:"indicator"`
	// Countries highlighted in the time-series chart and prose. Empty means
	// pick the top movers automatically.
	FocusCountries []string `json:"focus_countries"`
	// TopN bounds the ranking bar chart and tables.
	TopN int `json:"top_n"`
	// MinYear/MaxYear clamp the working subset; 0 disables the bound.
	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`
	// GenderYear pins the gender comparison to one year; 0 uses the latest
	// year with both sexes present per country.
	GenderYear int `json:"gender_year"`
}

// Defaults fills unset fields so a sparse config file still renders a
// complete report.
func (c *ReportConfig) Defaults() {
	if c.TopN <= 0 {
		c.TopN = 15
	}
}

// StripJSONC loads a JSONC file (full-line // comments) and returns raw JSON
// bytes suitable for unmarshalling. Inline // is left alone on purpose: the
// config may contain URLs.
func StripJSONC(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		out = append(out, []byte(line+"\n")...)
	}
	return out, scanner.Err()
}

// LoadReportConfig reads the JSONC report config and applies defaults.
func LoadReportConfig(path string) (*ReportConfig, error) {
	b, err := StripJSONC(path)
	if err != nil {
		return nil, err
	}
	var cfg ReportConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	cfg.Defaults()
	return &cfg, nil
}
