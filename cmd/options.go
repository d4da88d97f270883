package cmd

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/wxstats-cli/internal/engine"
)

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s (use ','|';'|'tab'|'pipe')", s)
	}
}

// engineOptions merges loader flags over the configuration.
func engineOptions(delimiter, sheet string) (engine.Options, error) {
	c := settings()
	opt := engine.DefaultOptions()
	if delimiter == "" {
		delimiter = c.Delimiter
	}
	d, err := parseDelimiter(delimiter)
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	opt.Sheet = firstNonEmpty(sheet, c.Sheet)
	return opt, nil
}

// primaryEngine is the engine used for statistics and histograms.
func primaryEngine(flag string) string {
	if flag != "" {
		return flag
	}
	if c := settings(); len(c.Engines) > 0 {
		return c.Engines[0]
	}
	return engine.Gota
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func listOr(flag, fallback []string) []string {
	if len(flag) > 0 {
		return flag
	}
	return fallback
}

func intOr(flag, fallback int) int {
	if flag > 0 {
		return flag
	}
	return fallback
}
