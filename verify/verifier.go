// Package verify re-runs extraction with per-row metadata and scores how
// complete the scrape looks. It runs off the critical path: a price fetch
// never waits on verification.
package verify

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/skindex/models"
	"github.com/use-agent/skindex/wiki"
)

// ExpectedSkinCount is the known number of purchasable skins the catalog
// should yield. Bump it when the wiki gains a new skin line.
// Last audit: 2025-08-02.
const ExpectedSkinCount = 496

// Coverage tiers, in percent. Wording only; nothing branches on these
// outside the rendered report.
const (
	coverageExcellent  = 95
	coverageGood       = 80
	coverageAcceptable = 60
)

// Verifier analyzes raw catalog markup.
type Verifier struct {
	expected int
}

// New creates a Verifier scored against the default expected baseline.
func New() *Verifier {
	return &Verifier{expected: ExpectedSkinCount}
}

// NewWithExpected overrides the baseline; used by tests and the CLI.
func NewWithExpected(expected int) *Verifier {
	return &Verifier{expected: expected}
}

// Analyze extracts skin records from the markup and computes the full
// data-quality analysis. Extraction failures are reported inside the
// analysis rather than as an error, so the report can always be rendered.
func (v *Verifier) Analyze(_ context.Context, rawHTML string) *models.Analysis {
	analysis := &models.Analysis{
		WeaponBreakdown:  map[string]int{},
		EditionBreakdown: map[string]int{},
		SourceBreakdown:  map[string]int{},
		ExpectedTotal:    v.expected,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		analysis.Err = "failed to parse markup: " + err.Error()
		return analysis
	}

	records, err := wiki.ExtractRecords(doc)
	if err != nil {
		analysis.Err = err.Error()
		return analysis
	}

	for _, rec := range records {
		analysis.TotalSkins++
		analysis.TotalPrice += rec.Price
		analysis.WeaponBreakdown[rec.Weapon]++
		analysis.EditionBreakdown[rec.Edition]++
		analysis.SourceBreakdown[rec.Source]++
	}
	analysis.Skins = records

	v.findIssues(analysis, records)
	v.computeScores(analysis, records)
	return analysis
}

// findIssues flags missing data and duplicate names.
func (v *Verifier) findIssues(analysis *models.Analysis, records []models.SkinRecord) {
	nameCounts := make(map[string]int, len(records))

	for _, rec := range records {
		if rec.Name == "" || rec.Name == models.WeaponUnknown {
			analysis.MissingData = append(analysis.MissingData,
				"Row "+strconv.Itoa(rec.RowIndex)+": Missing skin name")
		}
		if rec.Weapon == "" || rec.Weapon == models.WeaponUnknown {
			analysis.MissingData = append(analysis.MissingData,
				"Row "+strconv.Itoa(rec.RowIndex)+": Missing weapon type")
		}
		if rec.Price <= 0 {
			analysis.MissingData = append(analysis.MissingData,
				"Row "+strconv.Itoa(rec.RowIndex)+": Invalid price ("+strconv.Itoa(rec.Price)+")")
		}
		nameCounts[rec.Name]++
	}

	for name, count := range nameCounts {
		if count > 1 {
			analysis.DuplicateSkins = append(analysis.DuplicateSkins, name)
		}
	}
	sort.Strings(analysis.DuplicateSkins)
}

// computeScores fills in the price range, quality score and coverage.
func (v *Verifier) computeScores(analysis *models.Analysis, records []models.SkinRecord) {
	if len(records) == 0 {
		return
	}

	pr := &models.PriceRange{Min: records[0].Price, Max: records[0].Price}
	valid := 0
	for _, rec := range records {
		pr.Total += rec.Price
		if rec.Price < pr.Min {
			pr.Min = rec.Price
		}
		if rec.Price > pr.Max {
			pr.Max = rec.Price
		}
		if rec.Valid() {
			valid++
		}
	}
	pr.Average = float64(pr.Total) / float64(len(records))
	analysis.PriceRange = pr

	analysis.QualityScore = float64(valid) / float64(len(records)) * 100
	if v.expected > 0 {
		analysis.Coverage = float64(analysis.TotalSkins) / float64(v.expected) * 100
	}
}
