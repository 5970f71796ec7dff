// internal/intent/extract.go
package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Field extractors. Each one is a pure function from the raw utterance to a
// typed value or its absence. They run on the original-cased text because
// passwords are case-sensitive; everything else folds case internally.

var (
	domainNameRe = regexp.MustCompile(`(?i)\b([a-z0-9][a-z0-9-]*(?:\.[a-z0-9-]+)*\.[a-z]{2,})\b`)
	emailRe      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	isoDateRe   = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	monthDateRe = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)

	explicitCurrencyRe = regexp.MustCompile(`(?i)\brm\s?(\d+(?:\.\d{1,2})?)`)
	// Fallback: a standalone 3+ digit integer or a decimal with exactly two
	// fraction digits. The 3-digit floor keeps a bare day-of-month ("Dec 31")
	// from being read as a price; it can still misfire on other numeric
	// substrings, which is accepted behavior.
	fallbackCurrencyRe = regexp.MustCompile(`\b(\d{3,}|\d+\.\d{2})\b`)

	passwordPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)password[:\s]+(\S+)`),
		regexp.MustCompile(`(?i)pwd[:\s]+(\S+)`),
		regexp.MustCompile(`(?i)pass[:\s]+(\S+)`),
		regexp.MustCompile(`(?i)\bwith\s+(\S+)`),
	}
)

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// ExtractDomainName returns the first dotted hostname in the text, lowercased,
// or "" if none is present.
func ExtractDomainName(text string) string {
	m := domainNameRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// ExtractEmail returns the first email address in the text, or "".
func ExtractEmail(text string) string {
	return emailRe.FindString(text)
}

// ExtractDate returns a YYYY-MM-DD date from the text, or "". It tries a
// literal ISO date, then "<month> <day> <year>", then the phrase "next year"
// which resolves to December 31 of now's following year. Other relative
// phrases ("next month", "tomorrow") are not recognized.
func ExtractDate(text string, now time.Time) string {
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
	}

	if m := monthDateRe.FindStringSubmatch(text); m != nil {
		month := monthNumbers[strings.ToLower(m[1])]
		day := m[2]
		if len(day) == 1 {
			day = "0" + day
		}
		return fmt.Sprintf("%s-%s-%s", m[3], month, day)
	}

	if strings.Contains(strings.ToLower(text), "next year") {
		return fmt.Sprintf("%d-12-31", now.Year()+1)
	}

	return ""
}

// ExtractCurrency returns an amount from the text. An explicit RM-prefixed
// amount always wins; otherwise the standalone-number fallback applies.
func ExtractCurrency(text string) (float64, bool) {
	if m := explicitCurrencyRe.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return v, true
		}
	}

	if m := fallbackCurrencyRe.FindStringSubmatch(text); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return v, true
		}
	}

	return 0, false
}

// ExtractPassword returns the first token introduced by a password marker
// ("password:", "pwd:", "pass:", "with <token>"), or "".
func ExtractPassword(text string) string {
	for _, re := range passwordPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}

// ExtractAfterLabel returns the text following the first matching label, up
// to the next comma or period, trimmed. Labels match case-insensitively as
// whole words.
func ExtractAfterLabel(text string, labels ...string) string {
	for _, label := range labels {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(label) + `\s+([^,.]+)`)
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

var assetTypes = []string{
	"laptop", "desktop", "computer", "phone", "tablet",
	"monitor", "printer", "keyboard", "mouse",
}

var assetBrands = []string{
	"dell", "hp", "lenovo", "apple", "asus", "acer",
	"samsung", "canon", "epson", "logitech",
}

// ExtractAssetType returns the first asset-type noun found in the text, or "".
func ExtractAssetType(text string) string {
	s := strings.ToLower(text)
	for _, t := range assetTypes {
		if strings.Contains(s, t) {
			return t
		}
	}
	return ""
}

// ExtractBrand returns the first known hardware brand in the text,
// capitalized, or "".
func ExtractBrand(text string) string {
	s := strings.ToLower(text)
	for _, b := range assetBrands {
		if strings.Contains(s, b) {
			return strings.ToUpper(b[:1]) + b[1:]
		}
	}
	return ""
}

var titleStopWords = regexp.MustCompile(`(?i)\b(create|new|add|ticket|issue|problem)\b`)
var multiSpaceRe = regexp.MustCompile(`\s+`)

// ExtractTicketTitle strips the command words from the utterance and returns
// the residue, truncated to 100 characters. It never returns a missing value:
// whatever text survives the stripping becomes the title.
func ExtractTicketTitle(text string) string {
	title := titleStopWords.ReplaceAllString(text, " ")
	title = multiSpaceRe.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)
	if len(title) > 100 {
		title = title[:100]
	}
	return title
}

// ExtractPriority maps urgency keywords to a priority, defaulting to Medium.
func ExtractPriority(text string) string {
	s := strings.ToLower(text)
	switch {
	case strings.Contains(s, "critical") || strings.Contains(s, "urgent") || strings.Contains(s, "emergency"):
		return "Critical"
	case strings.Contains(s, "high"):
		return "High"
	case strings.Contains(s, "low"):
		return "Low"
	default:
		return "Medium"
	}
}

// ExtractAutoRenewFilter derives a tri-state auto-renew refinement: false for
// "not auto"/"no auto", true for an auto-renew mention without negation, nil
// when the utterance says nothing about renewal.
func ExtractAutoRenewFilter(text string) *bool {
	s := strings.ToLower(text)
	f := false
	t := true
	if strings.Contains(s, "not auto") || strings.Contains(s, "no auto") {
		return &f
	}
	if strings.Contains(s, "auto renew") || strings.Contains(s, "auto-renew") || strings.Contains(s, "autorenew") {
		return &t
	}
	return nil
}

// ExtractExpiringFilter flags queries that ask about expiry ("expiring",
// "expires", ...). nil means no filter.
func ExtractExpiringFilter(text string) *bool {
	if strings.Contains(strings.ToLower(text), "expir") {
		t := true
		return &t
	}
	return nil
}
