// extract.go - Regex extraction of phone, email and website from OCR text.

package extract

import (
	"regexp"
	"strings"
)

// The patterns deliberately trade precision for recall: OCR output from a
// phone photo of a card is noisy, and a malformed email-like substring is
// still more useful to a human reviewer than nothing. No validation and no
// normalization happens here; matches are returned exactly as captured.
var (
	phoneRe   = regexp.MustCompile(`\+?\d[\d\s\-]{8,}`)
	emailRe   = regexp.MustCompile(`[\w.\-]+@[\w.\-]+`)
	websiteRe = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// ExtractContactFields pulls phone, email and website out of raw OCR text.
// Each field is the first match in document order, or NotFound.
func ExtractContactFields(text string) ContactFields {
	// The greedy phone pattern swallows the separator after the last digit,
	// so trailing whitespace is stripped from that one match. Interior
	// whitespace stays as captured.
	return ContactFields{
		Phone:   trimTrailing(firstMatch(phoneRe, text)),
		Email:   firstMatch(emailRe, text),
		Website: firstMatch(websiteRe, text),
	}
}

func firstMatch(re *regexp.Regexp, text string) string {
	if m := re.FindString(text); m != "" {
		return m
	}
	return NotFound
}

func trimTrailing(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}
