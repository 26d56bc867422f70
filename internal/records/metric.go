package records

import "strings"

// Metric identifies one of the tracked performance measures. The string
// value is the exact token used in records file names and column labels.
type Metric string

const (
	MetricPnL     Metric = "PnL"
	MetricVolume  Metric = "Volume"
	MetricFee     Metric = "Fee"
	MetricFunding Metric = "Funding"
)

// AllMetrics lists the metrics in dashboard order: PnL leads each section,
// followed by the secondary metrics grid.
var AllMetrics = []Metric{MetricPnL, MetricFee, MetricFunding, MetricVolume}

// DisplayName returns the long-form name shown as a block title.
func (m Metric) DisplayName() string {
	switch m {
	case MetricPnL:
		return "Profit and Loss (PnL)"
	case MetricVolume:
		return "Trading Volume (Volume)"
	case MetricFee:
		return "Transaction Fees (Fee)"
	case MetricFunding:
		return "Funding Costs (Funding)"
	default:
		return string(m)
	}
}

// Denomination identifies the convention a records file is expressed in.
type Denomination string

const (
	DenomUSDBased  Denomination = "USDBased"
	DenomCoinBased Denomination = "CoinBased"
)

// AllDenominations lists denominations in presentation order, USD first.
var AllDenominations = []Denomination{DenomUSDBased, DenomCoinBased}

// DisplayName returns the section heading for the denomination.
func (d Denomination) DisplayName() string {
	switch d {
	case DenomUSDBased:
		return "USDBased - USD Denominated Data"
	case DenomCoinBased:
		return "CoinBased - Coin Denominated Data"
	default:
		return string(d)
	}
}

// Unit returns the value suffix for the denomination. Coin-denominated
// values carry the configured asset symbol.
func (d Denomination) Unit(asset string) string {
	if d == DenomCoinBased {
		return asset
	}
	return "$"
}

// columnRule maps a header substring to the label suffix used when the
// rule selects a column.
type columnRule struct {
	substr string
	suffix string
}

// columnRules returns the ordered selection policy for the metric.
// PnL, Fee and Funding prefer cumulative totals and fall back to daily
// values; Volume only ever uses daily values.
func (m Metric) columnRules() []columnRule {
	if m == MetricVolume {
		return []columnRule{{"daily", "Daily"}}
	}
	return []columnRule{
		{"cumulative", "Cumulative"},
		{"daily", "Daily"},
	}
}

// SelectColumn applies the metric's column policy to a header row.
// Matching is a case-insensitive substring test over trimmed header names;
// the first rule that matches any column wins, and within a rule the first
// matching column in file order wins. ok is false when no rule matched.
func (m Metric) SelectColumn(headers []string) (index int, label string, ok bool) {
	for _, rule := range m.columnRules() {
		for i, h := range headers {
			if strings.Contains(strings.ToLower(strings.TrimSpace(h)), rule.substr) {
				return i, string(m) + " " + rule.suffix, true
			}
		}
	}
	return 0, "", false
}
