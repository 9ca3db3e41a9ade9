package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/use-agent/skindex/models"
)

const reportRule = "============================================================"

// Render produces the multi-section plain-text verification report.
func Render(analysis *models.Analysis) string {
	var b strings.Builder

	b.WriteString(reportRule + "\n")
	b.WriteString("SKIN VERIFICATION REPORT\n")
	b.WriteString(reportRule + "\n")

	if analysis.Err != "" {
		fmt.Fprintf(&b, "ERROR: %s\n", analysis.Err)
		return b.String()
	}

	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "   Total Skins Found: %s\n", groupInt(analysis.TotalSkins))
	fmt.Fprintf(&b, "   Total Price: %s VP\n", groupInt(analysis.TotalPrice))
	fmt.Fprintf(&b, "   Data Quality Score: %.1f%%\n", analysis.QualityScore)

	writeBreakdown(&b, "WEAPON BREAKDOWN", "Weapon", analysis.WeaponBreakdown)
	writeBreakdown(&b, "EDITION BREAKDOWN", "Edition", analysis.EditionBreakdown)
	writeBreakdown(&b, "SOURCE BREAKDOWN", "Source", analysis.SourceBreakdown)

	if pr := analysis.PriceRange; pr != nil {
		b.WriteString("\nPRICE ANALYSIS\n")
		fmt.Fprintf(&b, "   Min Price: %s VP\n", groupInt(pr.Min))
		fmt.Fprintf(&b, "   Max Price: %s VP\n", groupInt(pr.Max))
		fmt.Fprintf(&b, "   Average Price: %s VP\n", groupInt(int(pr.Average+0.5)))
	}

	writeIssueList(&b, "MISSING DATA", "issues", analysis.MissingData, 10)
	writeIssueList(&b, "DUPLICATE SKINS", "found", analysis.DuplicateSkins, 5)

	b.WriteString("\nCOVERAGE ANALYSIS\n")
	fmt.Fprintf(&b, "   Expected Total: %s purchasable skins\n", groupInt(analysis.ExpectedTotal))
	fmt.Fprintf(&b, "   Actual Found: %s purchasable skins\n", groupInt(analysis.TotalSkins))
	fmt.Fprintf(&b, "   Coverage: %.1f%%\n", analysis.Coverage)
	b.WriteString("   " + coverageVerdict(analysis) + "\n")

	b.WriteString(reportRule + "\n")
	return b.String()
}

// writeBreakdown renders one category tally as a two-column table.
func writeBreakdown(b *strings.Builder, title, column string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := table.NewWriter()
	t.AppendHeader(table.Row{column, "Count"})
	for _, k := range keys {
		t.AppendRow(table.Row{k, groupInt(counts[k])})
	}

	fmt.Fprintf(b, "\n%s\n%s\n", title, t.Render())
}

// writeIssueList renders a truncated issue list with an overflow line.
func writeIssueList(b *strings.Builder, title, noun string, issues []string, limit int) {
	if len(issues) == 0 {
		return
	}

	fmt.Fprintf(b, "\n%s (%d %s)\n", title, len(issues), noun)
	for i, issue := range issues {
		if i == limit {
			fmt.Fprintf(b, "   ... and %d more\n", len(issues)-limit)
			break
		}
		fmt.Fprintf(b, "   - %s\n", issue)
	}
}

// coverageVerdict buckets coverage into the report's wording tiers.
func coverageVerdict(analysis *models.Analysis) string {
	found := groupInt(analysis.TotalSkins)
	switch {
	case analysis.Coverage >= coverageExcellent:
		return fmt.Sprintf("Coverage is excellent (found %s purchasable skins)", found)
	case analysis.Coverage >= coverageGood:
		return fmt.Sprintf("Coverage is good (found %s purchasable skins)", found)
	case analysis.Coverage >= coverageAcceptable:
		return fmt.Sprintf("Coverage is acceptable (found %s purchasable skins)", found)
	default:
		return "Coverage is poor - some purchasable skins may be missing"
	}
}

// groupInt formats n with comma thousands separators.
func groupInt(n int) string {
	digits := fmt.Sprintf("%d", n)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var out strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		out.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if out.Len() > 0 {
			out.WriteByte(',')
		}
		out.WriteString(digits[i : i+3])
	}

	if neg {
		return "-" + out.String()
	}
	return out.String()
}
