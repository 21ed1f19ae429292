package ledger

import (
	"strings"

	"github.com/franchisedesk/ledger-api/internal/domain"
)

// maxWordsAmount is the largest value the Indian place-value grouping below
// can render: nine digits, i.e. up to 99 crore.
const maxWordsAmount = 999_999_999

var onesWords = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords renders a whole rupee amount using the Indian numbering
// system (crore / lakh / thousand / hundred) with the fixed "Rupees Only"
// suffix. The paisa portion is never rendered; callers round to the nearest
// whole rupee first. Zero renders as "Zero Rupees Only".
func AmountInWords(amount int64) (string, error) {
	if amount < 0 {
		return "", domain.ErrInvalidInput
	}
	if amount > maxWordsAmount {
		return "", domain.ErrAmountTooLarge
	}
	if amount == 0 {
		return "Zero Rupees Only", nil
	}

	crore := amount / 10_000_000
	lakh := (amount / 100_000) % 100
	thousand := (amount / 1_000) % 100
	hundred := (amount / 100) % 10
	rest := amount % 100

	var parts []string
	if crore > 0 {
		parts = append(parts, twoDigitWords(crore), "Crore")
	}
	if lakh > 0 {
		parts = append(parts, twoDigitWords(lakh), "Lakh")
	}
	if thousand > 0 {
		parts = append(parts, twoDigitWords(thousand), "Thousand")
	}
	if hundred > 0 {
		parts = append(parts, onesWords[hundred], "Hundred")
	}
	if rest > 0 {
		// "and" joins the hundreds group to a trailing tens/ones remainder.
		if hundred > 0 {
			parts = append(parts, "and")
		}
		parts = append(parts, twoDigitWords(rest))
	}
	parts = append(parts, "Rupees Only")
	return strings.Join(parts, " "), nil
}

// twoDigitWords renders 1..99.
func twoDigitWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return tensWords[n/10] + " " + onesWords[n%10]
}
