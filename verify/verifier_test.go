package verify

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/use-agent/skindex/models"
)

// reportPage holds five priced rows across the two catalog tables: one
// duplicate name and one row with a blank weapon cell.
const reportPage = `
<table class="wikitable sortable">
<tr><th>Bundle</th><th>Cost</th></tr>
<tr><td>Starter bundle</td><td>2000</td></tr>
</table>
<table class="wikitable sortable">
<tr><th>Name</th><th>Weapon</th><th>Edition</th><th>Price</th></tr>
<tr><td>Prime Vandal</td><td>Vandal</td><td>Premium</td><td data-sort-value="1775">1775</td></tr>
<tr><td>Prime Vandal</td><td>Vandal</td><td>Premium</td><td data-sort-value="1775">1775</td></tr>
<tr><td>Glitchpop Odin</td><td>Odin</td><td>Exclusive</td><td data-sort-value="2175">2175</td></tr>
</table>
<table class="wikitable sortable">
<tr><th>Name</th><th>Weapon</th><th>Edition</th><th>Price</th></tr>
<tr><td>Sovereign Ghost</td><td></td><td>Select</td><td data-sort-value="1275">1275</td></tr>
<tr><td>Oni Shorty</td><td>Shorty</td><td>Deluxe</td><td data-sort-value="875">875</td></tr>
</table>`

func TestAnalyze_Tallies(t *testing.T) {
	analysis := NewWithExpected(5).Analyze(context.Background(), reportPage)

	require.Empty(t, analysis.Err)
	require.Equal(t, 5, analysis.TotalSkins)
	require.Equal(t, 7875, analysis.TotalPrice)

	require.Equal(t, 2, analysis.WeaponBreakdown["Vandal"])
	require.Equal(t, 1, analysis.WeaponBreakdown["Shorty"])
	require.Equal(t, 1, analysis.WeaponBreakdown[models.WeaponUnknown])

	require.Equal(t, 2, analysis.EditionBreakdown[models.EditionPremium])
	require.Equal(t, 1, analysis.EditionBreakdown[models.EditionDeluxe])

	require.NotNil(t, analysis.PriceRange)
	require.Equal(t, 875, analysis.PriceRange.Min)
	require.Equal(t, 2175, analysis.PriceRange.Max)
	require.Equal(t, 1575.0, analysis.PriceRange.Average)
}

func TestAnalyze_QualityScore(t *testing.T) {
	analysis := NewWithExpected(5).Analyze(context.Background(), reportPage)

	// Four of the five records carry a known weapon: 80%.
	require.Equal(t, 80.0, analysis.QualityScore)
	require.Equal(t, []string{"Row 0: Missing weapon type"}, analysis.MissingData)
}

func TestAnalyze_Duplicates(t *testing.T) {
	analysis := NewWithExpected(5).Analyze(context.Background(), reportPage)

	require.Equal(t, []string{"Prime Vandal"}, analysis.DuplicateSkins)
}

func TestAnalyze_Coverage(t *testing.T) {
	analysis := NewWithExpected(5).Analyze(context.Background(), reportPage)
	require.Equal(t, 100.0, analysis.Coverage)

	analysis = NewWithExpected(10).Analyze(context.Background(), reportPage)
	require.Equal(t, 50.0, analysis.Coverage)
}

func TestAnalyze_ParseFailure(t *testing.T) {
	analysis := New().Analyze(context.Background(), "<p>no tables here</p>")

	require.NotEmpty(t, analysis.Err)
	require.Zero(t, analysis.TotalSkins)

	rendered := Render(analysis)
	require.Contains(t, rendered, "ERROR")
	require.NotContains(t, rendered, "SUMMARY")
}

func TestRender_Sections(t *testing.T) {
	analysis := NewWithExpected(5).Analyze(context.Background(), reportPage)
	rendered := Render(analysis)

	for _, section := range []string{
		"SKIN VERIFICATION REPORT",
		"SUMMARY",
		"Total Skins Found: 5",
		"Total Price: 7,875 VP",
		"WEAPON BREAKDOWN",
		"EDITION BREAKDOWN",
		"SOURCE BREAKDOWN",
		"PRICE ANALYSIS",
		"MISSING DATA (1 issues)",
		"DUPLICATE SKINS (1 found)",
		"COVERAGE ANALYSIS",
		"Coverage: 100.0%",
		"Coverage is excellent (found 5 purchasable skins)",
	} {
		require.Contains(t, rendered, section)
	}
}

func TestRender_TruncatesIssueLists(t *testing.T) {
	issues := make([]string, 14)
	for i := range issues {
		issues[i] = "Row " + strings.Repeat("x", i+1) + ": Missing skin name"
	}
	analysis := &models.Analysis{MissingData: issues, ExpectedTotal: ExpectedSkinCount}

	rendered := Render(analysis)
	require.Contains(t, rendered, "MISSING DATA (14 issues)")
	require.Contains(t, rendered, "... and 4 more")
}

func TestCoverageVerdict(t *testing.T) {
	tests := []struct {
		coverage float64
		want     string
	}{
		{96.8, "excellent"},
		{95, "excellent"},
		{85, "good"},
		{65, "acceptable"},
		{30, "poor"},
	}

	for _, tt := range tests {
		verdict := coverageVerdict(&models.Analysis{Coverage: tt.coverage, TotalSkins: 480})
		require.Contains(t, verdict, tt.want, "coverage %.1f", tt.coverage)
	}
}
