package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' || r == '#' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

// parseSlotToken accepts "8", "slot 8" style tokens already split, and the
// words "last" or "it" which resolve to lastSlot.
func parseSlotToken(token string, lastSlot int) (int, bool) {
	token = strings.TrimSpace(strings.ToLower(token))
	switch token {
	case "last", "it", "that":
		if lastSlot > 0 {
			return lastSlot, true
		}
		return 0, false
	}
	n, err := strconv.Atoi(token)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func parseQuantityToken(token string) *Quantity {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return nil
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return &Quantity{Raw: token, N: n, Unit: "hours"}
	}
	if strings.HasSuffix(token, "h") || strings.HasSuffix(token, "hr") || strings.HasSuffix(token, "hours") {
		n := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(token, "hours"), "hr"), "h")
		if v, err := strconv.Atoi(n); err == nil && v >= 0 {
			return &Quantity{Raw: token, N: v, Unit: "hours"}
		}
	}
	return nil
}
