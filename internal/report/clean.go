package report

import (
	"fmt"
	"regexp"
	"strings"
)

// CleanMode selects how profile text is filtered before it is embedded.
type CleanMode string

// Cleaning policies.
const (
	CleanNone     CleanMode = "none"
	CleanANSI     CleanMode = "ansi"
	CleanKeywords CleanMode = "keywords"
)

// DefaultKeywords are the line markers kept by CleanKeywords.
var DefaultKeywords = []string{"Duration", "Samples", "Recorded", "CPU time"}

// ParseCleanMode validates a policy name. Empty selects CleanANSI.
func ParseCleanMode(s string) (CleanMode, error) {
	switch m := CleanMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return CleanANSI, nil
	case CleanNone, CleanANSI, CleanKeywords:
		return m, nil
	default:
		return "", fmt.Errorf("unknown clean mode %q (use %s|%s|%s)", s, CleanANSI, CleanKeywords, CleanNone)
	}
}

// CSI and OSC terminal escape sequences.
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes terminal escape sequences.
func StripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// KeepLines returns the lines of s containing at least one keyword.
func KeepLines(s string, keywords []string) string {
	var kept []string
	for _, line := range strings.Split(s, "\n") {
		for _, k := range keywords {
			if k != "" && strings.Contains(line, k) {
				kept = append(kept, line)
				break
			}
		}
	}
	return strings.Join(kept, "\n")
}

// Clean applies mode to profile text. The zero mode means CleanANSI, as in
// ParseCleanMode. CleanKeywords also strips escapes so colored labels still match.
func Clean(s string, mode CleanMode, keywords []string) string {
	switch mode {
	case CleanANSI, "":
		return StripANSI(s)
	case CleanKeywords:
		if len(keywords) == 0 {
			keywords = DefaultKeywords
		}
		return KeepLines(StripANSI(s), keywords)
	default:
		return s
	}
}
