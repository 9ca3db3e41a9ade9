package models

// Skin editions, ordered by match priority during extraction (most specific
// keyword first). A row matching none of the keywords is Unknown.
const (
	EditionUltra     = "Ultra"
	EditionExclusive = "Exclusive"
	EditionPremium   = "Premium"
	EditionDeluxe    = "Deluxe"
	EditionSelect    = "Select"
	EditionUnknown   = "Unknown"
)

// WeaponUnknown marks a row whose weapon cell was blank or a dash.
const WeaponUnknown = "Unknown"

// Skin acquisition sources.
const (
	SourceStore      = "Store"
	SourceBattlePass = "Battle Pass"
	SourceAgentGear  = "Agent Gear"
	SourceUnknown    = "Unknown"
)

// SkinRecord is one skin row extracted in verification mode. It only exists
// for the duration of a verification pass; nothing persists it.
type SkinRecord struct {
	Name     string `json:"name"`
	Weapon   string `json:"weapon"`
	Price    int    `json:"price"`
	Edition  string `json:"edition"`
	Source   string `json:"source"`
	RowIndex int    `json:"row_index"`
}

// Valid reports whether the record has enough data to count towards the
// quality score: a non-blank name, a known weapon and a positive price.
func (r SkinRecord) Valid() bool {
	return r.Name != "" && r.Weapon != "" && r.Weapon != WeaponUnknown && r.Price > 0
}

// PriceStats summarises a single extraction pass over the catalog.
type PriceStats struct {
	TotalSkins   int     `json:"total_skins"`
	TotalPrice   int     `json:"total_price"`
	AveragePrice float64 `json:"average_price"`
	MinPrice     int     `json:"min_price"`
	MaxPrice     int     `json:"max_price"`
	PriceRange   int     `json:"price_range"`
}

// PriceRange holds the min/max/average/total of verified prices.
type PriceRange struct {
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Average float64 `json:"average"`
	Total   int     `json:"total"`
}

// Analysis is the output of a verification pass: tallies, breakdowns and
// data-quality findings over the extracted skin records.
type Analysis struct {
	TotalSkins       int            `json:"total_skins"`
	TotalPrice       int            `json:"total_price"`
	WeaponBreakdown  map[string]int `json:"weapon_breakdown"`
	EditionBreakdown map[string]int `json:"edition_breakdown"`
	SourceBreakdown  map[string]int `json:"source_breakdown"`
	MissingData      []string       `json:"missing_data"`
	DuplicateSkins   []string       `json:"duplicate_skins"`
	PriceRange       *PriceRange    `json:"price_range,omitempty"`
	QualityScore     float64        `json:"data_quality_score"`
	ExpectedTotal    int            `json:"expected_total"`
	Coverage         float64        `json:"coverage"`
	Skins            []SkinRecord   `json:"skin_details,omitempty"`
	Err              string         `json:"error,omitempty"`
}
