// Package extractor pulls financial entities (amounts, dates, account
// numbers) out of document text with fixed regular expressions.
package extractor

import "regexp"

// Entities holds the financial entities found in a text.
type Entities struct {
	// Amounts are currency amounts such as "$1,234.56".
	Amounts []string `json:"amounts"`

	// Dates are date mentions in slash, ISO or month-name form.
	Dates []string `json:"dates"`

	// AccountNumbers are 16-digit account number candidates.
	AccountNumbers []string `json:"account_numbers"`
}

var (
	amountPattern  = regexp.MustCompile(`\$[\d,]+\.?\d*`)
	accountPattern = regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4}`),
	}
)

// Extract finds financial entities in text. Matching is purely lexical;
// no validation of the extracted values is attempted.
func Extract(text string) Entities {
	e := Entities{
		Amounts:        []string{},
		Dates:          []string{},
		AccountNumbers: []string{},
	}

	e.Amounts = append(e.Amounts, amountPattern.FindAllString(text, -1)...)
	for _, p := range datePatterns {
		e.Dates = append(e.Dates, p.FindAllString(text, -1)...)
	}
	e.AccountNumbers = append(e.AccountNumbers, accountPattern.FindAllString(text, -1)...)

	return e
}
