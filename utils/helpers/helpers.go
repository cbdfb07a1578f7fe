package helpers

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAbbreviatedNumber converts provider-formatted numbers into
// float64: commas are stripped, a trailing % divides by 100 and the
// K/M/B/T magnitude suffixes used on quote pages are expanded.
// Returns false for empty or non-numeric input.
func ParseAbbreviatedNumber(value string) (float64, bool) {
	cleanStr := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if cleanStr == "" || cleanStr == "N/A" || cleanStr == "--" {
		return 0, false
	}

	if strings.HasSuffix(cleanStr, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(cleanStr, "%"), 64)
		if err != nil {
			return 0, false
		}
		return f / 100.0, true
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(cleanStr, "T"):
		multiplier = 1e12
		cleanStr = strings.TrimSuffix(cleanStr, "T")
	case strings.HasSuffix(cleanStr, "B"):
		multiplier = 1e9
		cleanStr = strings.TrimSuffix(cleanStr, "B")
	case strings.HasSuffix(cleanStr, "M"):
		multiplier = 1e6
		cleanStr = strings.TrimSuffix(cleanStr, "M")
	case strings.HasSuffix(cleanStr, "K"):
		multiplier = 1e3
		cleanStr = strings.TrimSuffix(cleanStr, "K")
	}

	f, err := strconv.ParseFloat(cleanStr, 64)
	if err != nil {
		return 0, false
	}
	return f * multiplier, true
}

// NormalizeString lowercases and trims, for header and label matching.
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FormatUSD renders a price for the XLSX report.
func FormatUSD(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FormatPct renders a fractional rate (0.25 -> "25.00%") for the XLSX
// report.
func FormatPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
