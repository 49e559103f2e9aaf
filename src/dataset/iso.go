package dataset

import "strings"

// CountryInfo is one row of the static ISO 3166-1 lookup. MapName is the
// label the echarts world map expects when it differs from Name.
type CountryInfo struct {
	Name    string
	ISO3    string
	Region  string
	MapName string
}

// isoTable covers the countries that actually occur in the childhood
// nutrition indicator files. Source names follow UN conventions; aliases
// below fold the long official forms onto these rows.
var isoTable = []CountryInfo{
	{Name: "Afghanistan", ISO3: "AFG", Region: "South Asia"},
	{Name: "Albania", ISO3: "ALB", Region: "Europe & Central Asia"},
	{Name: "Algeria", ISO3: "DZA", Region: "Middle East & North Africa"},
	{Name: "Angola", ISO3: "AGO", Region: "Sub-Saharan Africa"},
	{Name: "Argentina", ISO3: "ARG", Region: "Latin America & Caribbean"},
	{Name: "Armenia", ISO3: "ARM", Region: "Europe & Central Asia"},
	{Name: "Azerbaijan", ISO3: "AZE", Region: "Europe & Central Asia"},
	{Name: "Bangladesh", ISO3: "BGD", Region: "South Asia"},
	{Name: "Belize", ISO3: "BLZ", Region: "Latin America & Caribbean"},
	{Name: "Benin", ISO3: "BEN", Region: "Sub-Saharan Africa"},
	{Name: "Bhutan", ISO3: "BTN", Region: "South Asia"},
	{Name: "Bolivia", ISO3: "BOL", Region: "Latin America & Caribbean"},
	{Name: "Bosnia and Herzegovina", ISO3: "BIH", Region: "Europe & Central Asia", MapName: "Bosnia and Herz."},
	{Name: "Botswana", ISO3: "BWA", Region: "Sub-Saharan Africa"},
	{Name: "Brazil", ISO3: "BRA", Region: "Latin America & Caribbean"},
	{Name: "Burkina Faso", ISO3: "BFA", Region: "Sub-Saharan Africa"},
	{Name: "Burundi", ISO3: "BDI", Region: "Sub-Saharan Africa"},
	{Name: "Cambodia", ISO3: "KHM", Region: "East Asia & Pacific"},
	{Name: "Cameroon", ISO3: "CMR", Region: "Sub-Saharan Africa"},
	{Name: "Central African Republic", ISO3: "CAF", Region: "Sub-Saharan Africa", MapName: "Central African Rep."},
	{Name: "Chad", ISO3: "TCD", Region: "Sub-Saharan Africa"},
	{Name: "Chile", ISO3: "CHL", Region: "Latin America & Caribbean"},
	{Name: "China", ISO3: "CHN", Region: "East Asia & Pacific"},
	{Name: "Colombia", ISO3: "COL", Region: "Latin America & Caribbean"},
	{Name: "Comoros", ISO3: "COM", Region: "Sub-Saharan Africa"},
	{Name: "Congo", ISO3: "COG", Region: "Sub-Saharan Africa"},
	{Name: "Costa Rica", ISO3: "CRI", Region: "Latin America & Caribbean"},
	{Name: "Cote d'Ivoire", ISO3: "CIV", Region: "Sub-Saharan Africa", MapName: "Côte d'Ivoire"},
	{Name: "Cuba", ISO3: "CUB", Region: "Latin America & Caribbean"},
	{Name: "Democratic Republic of the Congo", ISO3: "COD", Region: "Sub-Saharan Africa", MapName: "Dem. Rep. Congo"},
	{Name: "Djibouti", ISO3: "DJI", Region: "Middle East & North Africa"},
	{Name: "Dominican Republic", ISO3: "DOM", Region: "Latin America & Caribbean", MapName: "Dominican Rep."},
	{Name: "Ecuador", ISO3: "ECU", Region: "Latin America & Caribbean"},
	{Name: "Egypt", ISO3: "EGY", Region: "Middle East & North Africa"},
	{Name: "El Salvador", ISO3: "SLV", Region: "Latin America & Caribbean"},
	{Name: "Eswatini", ISO3: "SWZ", Region: "Sub-Saharan Africa", MapName: "Swaziland"},
	{Name: "Ethiopia", ISO3: "ETH", Region: "Sub-Saharan Africa"},
	{Name: "Gabon", ISO3: "GAB", Region: "Sub-Saharan Africa"},
	{Name: "Gambia", ISO3: "GMB", Region: "Sub-Saharan Africa"},
	{Name: "Georgia", ISO3: "GEO", Region: "Europe & Central Asia"},
	{Name: "Ghana", ISO3: "GHA", Region: "Sub-Saharan Africa"},
	{Name: "Guatemala", ISO3: "GTM", Region: "Latin America & Caribbean"},
	{Name: "Guinea", ISO3: "GIN", Region: "Sub-Saharan Africa"},
	{Name: "Guinea-Bissau", ISO3: "GNB", Region: "Sub-Saharan Africa"},
	{Name: "Guyana", ISO3: "GUY", Region: "Latin America & Caribbean"},
	{Name: "Haiti", ISO3: "HTI", Region: "Latin America & Caribbean"},
	{Name: "Honduras", ISO3: "HND", Region: "Latin America & Caribbean"},
	{Name: "India", ISO3: "IND", Region: "South Asia"},
	{Name: "Indonesia", ISO3: "IDN", Region: "East Asia & Pacific"},
	{Name: "Iraq", ISO3: "IRQ", Region: "Middle East & North Africa"},
	{Name: "Jordan", ISO3: "JOR", Region: "Middle East & North Africa"},
	{Name: "Kazakhstan", ISO3: "KAZ", Region: "Europe & Central Asia"},
	{Name: "Kenya", ISO3: "KEN", Region: "Sub-Saharan Africa"},
	{Name: "Kyrgyzstan", ISO3: "KGZ", Region: "Europe & Central Asia"},
	{Name: "Lao People's Democratic Republic", ISO3: "LAO", Region: "East Asia & Pacific", MapName: "Lao PDR"},
	{Name: "Lesotho", ISO3: "LSO", Region: "Sub-Saharan Africa"},
	{Name: "Liberia", ISO3: "LBR", Region: "Sub-Saharan Africa"},
	{Name: "Madagascar", ISO3: "MDG", Region: "Sub-Saharan Africa"},
	{Name: "Malawi", ISO3: "MWI", Region: "Sub-Saharan Africa"},
	{Name: "Maldives", ISO3: "MDV", Region: "South Asia"},
	{Name: "Mali", ISO3: "MLI", Region: "Sub-Saharan Africa"},
	{Name: "Mauritania", ISO3: "MRT", Region: "Sub-Saharan Africa"},
	{Name: "Mexico", ISO3: "MEX", Region: "Latin America & Caribbean"},
	{Name: "Moldova", ISO3: "MDA", Region: "Europe & Central Asia"},
	{Name: "Mongolia", ISO3: "MNG", Region: "East Asia & Pacific"},
	{Name: "Montenegro", ISO3: "MNE", Region: "Europe & Central Asia"},
	{Name: "Morocco", ISO3: "MAR", Region: "Middle East & North Africa"},
	{Name: "Mozambique", ISO3: "MOZ", Region: "Sub-Saharan Africa"},
	{Name: "Myanmar", ISO3: "MMR", Region: "East Asia & Pacific"},
	{Name: "Namibia", ISO3: "NAM", Region: "Sub-Saharan Africa"},
	{Name: "Nepal", ISO3: "NPL", Region: "South Asia"},
	{Name: "Nicaragua", ISO3: "NIC", Region: "Latin America & Caribbean"},
	{Name: "Niger", ISO3: "NER", Region: "Sub-Saharan Africa"},
	{Name: "Nigeria", ISO3: "NGA", Region: "Sub-Saharan Africa"},
	{Name: "North Macedonia", ISO3: "MKD", Region: "Europe & Central Asia", MapName: "Macedonia"},
	{Name: "Pakistan", ISO3: "PAK", Region: "South Asia"},
	{Name: "Palestine", ISO3: "PSE", Region: "Middle East & North Africa"},
	{Name: "Panama", ISO3: "PAN", Region: "Latin America & Caribbean"},
	{Name: "Papua New Guinea", ISO3: "PNG", Region: "East Asia & Pacific"},
	{Name: "Paraguay", ISO3: "PRY", Region: "Latin America & Caribbean"},
	{Name: "Peru", ISO3: "PER", Region: "Latin America & Caribbean"},
	{Name: "Philippines", ISO3: "PHL", Region: "East Asia & Pacific"},
	{Name: "Rwanda", ISO3: "RWA", Region: "Sub-Saharan Africa"},
	{Name: "Sao Tome and Principe", ISO3: "STP", Region: "Sub-Saharan Africa", MapName: "São Tomé and Principe"},
	{Name: "Senegal", ISO3: "SEN", Region: "Sub-Saharan Africa"},
	{Name: "Serbia", ISO3: "SRB", Region: "Europe & Central Asia"},
	{Name: "Sierra Leone", ISO3: "SLE", Region: "Sub-Saharan Africa"},
	{Name: "Somalia", ISO3: "SOM", Region: "Sub-Saharan Africa"},
	{Name: "South Africa", ISO3: "ZAF", Region: "Sub-Saharan Africa"},
	{Name: "South Sudan", ISO3: "SSD", Region: "Sub-Saharan Africa", MapName: "S. Sudan"},
	{Name: "Sri Lanka", ISO3: "LKA", Region: "South Asia"},
	{Name: "Sudan", ISO3: "SDN", Region: "Sub-Saharan Africa"},
	{Name: "Suriname", ISO3: "SUR", Region: "Latin America & Caribbean"},
	{Name: "Tajikistan", ISO3: "TJK", Region: "Europe & Central Asia"},
	{Name: "Tanzania", ISO3: "TZA", Region: "Sub-Saharan Africa"},
	{Name: "Thailand", ISO3: "THA", Region: "East Asia & Pacific"},
	{Name: "Timor-Leste", ISO3: "TLS", Region: "East Asia & Pacific"},
	{Name: "Togo", ISO3: "TGO", Region: "Sub-Saharan Africa"},
	{Name: "Tunisia", ISO3: "TUN", Region: "Middle East & North Africa"},
	{Name: "Turkmenistan", ISO3: "TKM", Region: "Europe & Central Asia"},
	{Name: "Uganda", ISO3: "UGA", Region: "Sub-Saharan Africa"},
	{Name: "Ukraine", ISO3: "UKR", Region: "Europe & Central Asia"},
	{Name: "Uzbekistan", ISO3: "UZB", Region: "Europe & Central Asia"},
	{Name: "Venezuela", ISO3: "VEN", Region: "Latin America & Caribbean"},
	{Name: "Viet Nam", ISO3: "VNM", Region: "East Asia & Pacific", MapName: "Vietnam"},
	{Name: "Yemen", ISO3: "YEM", Region: "Middle East & North Africa"},
	{Name: "Zambia", ISO3: "ZMB", Region: "Sub-Saharan Africa"},
	{Name: "Zimbabwe", ISO3: "ZWE", Region: "Sub-Saharan Africa"},
}

// countryAliases folds the long official UN forms (and a few spelling
// variants seen in exports) onto the canonical rows above. Keys are
// normalized with normalizeCountry.
var countryAliases = map[string]string{
	"bolivia (plurinational state of)":       "Bolivia",
	"côte d'ivoire":                          "Cote d'Ivoire",
	"cote divoire":                           "Cote d'Ivoire",
	"democratic republic of congo":           "Democratic Republic of the Congo",
	"congo, democratic republic of the":      "Democratic Republic of the Congo",
	"congo dr":                               "Democratic Republic of the Congo",
	"lao pdr":                                "Lao People's Democratic Republic",
	"laos":                                   "Lao People's Democratic Republic",
	"republic of moldova":                    "Moldova",
	"swaziland":                              "Eswatini",
	"tanzania, united republic of":           "Tanzania",
	"united republic of tanzania":            "Tanzania",
	"the former yugoslav republic of macedonia": "North Macedonia",
	"venezuela (bolivarian republic of)":     "Venezuela",
	"vietnam":                                "Viet Nam",
	"gambia, the":                            "Gambia",
	"the gambia":                             "Gambia",
	"state of palestine":                     "Palestine",
	"egypt, arab rep.":                       "Egypt",
	"yemen, rep.":                            "Yemen",
	"kyrgyz republic":                        "Kyrgyzstan",
}

var isoByName map[string]CountryInfo

func init() {
	isoByName = make(map[string]CountryInfo, len(isoTable))
	for _, c := range isoTable {
		isoByName[normalizeCountry(c.Name)] = c
	}
}

func normalizeCountry(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(strings.TrimSpace(name)), " "))
}

// LookupCountry resolves a country name (canonical or aliased) to its ISO
// info. ok is false for names absent from the table; callers log and carry
// on, the row just never reaches the choropleth.
func LookupCountry(name string) (CountryInfo, bool) {
	key := normalizeCountry(name)
	if canon, ok := countryAliases[key]; ok {
		key = normalizeCountry(canon)
	}
	c, ok := isoByName[key]
	return c, ok
}

// MapLabel returns the display name the echarts world map expects.
func (c CountryInfo) MapLabel() string {
	if c.MapName != "" {
		return c.MapName
	}
	return c.Name
}
