// Package wiki extracts skin prices from the Fandom weapon-skins page.
//
// The page layout is a contract: skins live in the 2nd and 3rd table carrying
// the "wikitable sortable" classes. When that assumption breaks the extractor
// fails loudly instead of guessing at other tables.
package wiki

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/skindex/models"
)

// TableSelector matches the wiki tables that hold the skin catalog.
const TableSelector = "table.wikitable.sortable"

// Sanity bounds for prices found by the fallback cell scan. Known catalog
// tiers span 875–4,350 VP; anything outside [800, 6000] in an unmarked cell
// is a row number, a date fragment or similar noise.
const (
	MinSanePrice = 800
	MaxSanePrice = 6000
)

// rePrice matches a 3-4 digit number, optionally comma-grouped. The leading
// group must itself be 3-4 digits, so "1,275" only matches from "275" on and
// the sanity bounds then reject it; grouped thousands never survive the
// fallback path.
var rePrice = regexp.MustCompile(`\d{3,4}(?:,\d{3})*`)

// cleanSortValue strips the decoration Fandom puts into sortable cells:
// non-breaking spaces, newlines and thousands separators.
var cleanSortValue = strings.NewReplacer("\u00a0", "", "\n", "", ",", "")

// ExtractPrices walks the target tables and returns every price found.
//
// Per row, extraction is two-tier:
//   - primary: the cell marked with a data-sort-value attribute is parsed as
//     an integer and accepted unconditionally;
//   - fallback: without a marked cell, every cell is scanned for a 3-4 digit
//     number and the first hit inside the sanity bounds wins.
//
// Rows yielding no price are skipped; that is normal for header-ish and
// decorative rows, not an error.
func ExtractPrices(doc *goquery.Document) ([]int, error) {
	tables, err := targetTables(doc)
	if err != nil {
		return nil, err
	}

	var prices []int
	for i, table := range tables {
		rows := dataRows(table)
		if rows == nil {
			slog.Warn("catalog table has no data rows", "table", i+1)
			continue
		}
		slog.Debug("processing catalog table", "table", i+1, "rows", rows.Length())

		rows.Each(func(_ int, row *goquery.Selection) {
			if price, ok := priceFromRow(row); ok {
				prices = append(prices, price)
			}
		})
	}

	slog.Info("extracted catalog prices", "count", len(prices))
	return prices, nil
}

// ExtractRecords re-runs extraction keeping per-row metadata. Only rows that
// yield a price are recorded, mirroring what ExtractPrices counts.
func ExtractRecords(doc *goquery.Document) ([]models.SkinRecord, error) {
	tables, err := targetTables(doc)
	if err != nil {
		return nil, err
	}

	var records []models.SkinRecord
	for _, table := range tables {
		rows := dataRows(table)
		if rows == nil {
			continue
		}
		rows.Each(func(rowIndex int, row *goquery.Selection) {
			price, ok := priceFromRow(row)
			if !ok || price <= 0 {
				return
			}
			records = append(records, recordFromRow(row, rowIndex, price))
		})
	}

	return records, nil
}

// targetTables selects the 2nd and, when present, 3rd matching table. The
// ordinal positions are part of the contract with the page layout.
func targetTables(doc *goquery.Document) ([]*goquery.Selection, error) {
	all := doc.Find(TableSelector)
	if all.Length() < 2 {
		return nil, models.NewFetchError(
			models.ErrCodeParse,
			"could not find weapon skins tables",
			nil,
		)
	}

	tables := []*goquery.Selection{all.Eq(1)}
	if all.Length() > 2 {
		tables = append(tables, all.Eq(2))
	}
	return tables, nil
}

// dataRows returns the table's rows minus the header, or nil when the table
// body is empty or header-only. An empty target table is markup drift, not a
// reason to crash the pass.
func dataRows(table *goquery.Selection) *goquery.Selection {
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil
	}
	return rows.Slice(1, goquery.ToEnd)
}

// priceFromRow extracts the price from one table row.
func priceFromRow(row *goquery.Selection) (int, bool) {
	// Primary: the sortable cell holds the canonical price.
	marked := row.Find("td[data-sort-value]")
	if marked.Length() > 0 {
		text := cleanSortValue.Replace(strings.TrimSpace(marked.First().Text()))
		price, err := strconv.Atoi(text)
		if err != nil {
			// A marked cell that does not parse poisons the row; the
			// fallback scan would happily pick up an unrelated number.
			slog.Debug("marked price cell unparsable, skipping row",
				"code", models.ErrCodeInvalidPrice, "text", text)
			return 0, false
		}
		return price, true
	}

	// Fallback: scan every cell for a plausible price.
	var price int
	var found bool
	row.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		match := rePrice.FindString(strings.TrimSpace(cell.Text()))
		if match == "" {
			return true
		}
		digits := strings.ReplaceAll(match, ",", "")
		p, err := strconv.Atoi(digits)
		if err != nil || p < MinSanePrice || p > MaxSanePrice {
			return true
		}
		price, found = p, true
		return false
	})
	return price, found
}

// recordFromRow fills in the verification metadata for a priced row.
func recordFromRow(row *goquery.Selection, rowIndex, price int) models.SkinRecord {
	cells := row.Find("td")

	name := strings.TrimSpace(cells.Eq(0).Text())
	if name == "" || name == "—" || name == "-" {
		name = "Skin_" + strconv.Itoa(rowIndex)
	}

	weapon := models.WeaponUnknown
	if cells.Length() > 1 {
		if w := strings.TrimSpace(cells.Eq(1).Text()); w != "" && w != "—" && w != "-" {
			weapon = w
		}
	}

	rowText := strings.ToLower(row.Text())

	return models.SkinRecord{
		Name:     name,
		Weapon:   weapon,
		Price:    price,
		Edition:  editionOf(rowText),
		Source:   sourceOf(rowText),
		RowIndex: rowIndex,
	}
}

// editionOf infers the skin edition from the row's full text. Keywords are
// checked most-specific first.
func editionOf(rowText string) string {
	switch {
	case strings.Contains(rowText, "ultra"):
		return models.EditionUltra
	case strings.Contains(rowText, "exclusive"):
		return models.EditionExclusive
	case strings.Contains(rowText, "premium"):
		return models.EditionPremium
	case strings.Contains(rowText, "deluxe"):
		return models.EditionDeluxe
	case strings.Contains(rowText, "select"):
		return models.EditionSelect
	default:
		return models.EditionUnknown
	}
}

// sourceOf infers where the skin is acquired from.
func sourceOf(rowText string) string {
	switch {
	case strings.Contains(rowText, "battle pass"), strings.Contains(rowText, "battlepass"):
		return models.SourceBattlePass
	case strings.Contains(rowText, "agent gear"):
		return models.SourceAgentGear
	case strings.Contains(rowText, "store"), strings.Contains(rowText, "night market"):
		return models.SourceStore
	default:
		return models.SourceUnknown
	}
}
