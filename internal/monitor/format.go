package monitor

import (
	"fmt"
	"strings"
)

// Format renders the two-line console block for an accepted update:
//
//	[TIMESTAMP] Product: PROVIDER - SERVICE_NAME
//	Status: STATUS_MESSAGE
//
// Field order, labels, and the line break are load-bearing; downstream
// consumers scrape this output.
func Format(inc *Incident) string {
	return fmt.Sprintf("[%s] Product: %s - %s\nStatus: %s",
		formatTimestamp(inc.UpdatedAt), inc.Provider, serviceName(inc), inc.LatestMessage)
}

// formatTimestamp takes the first 19 bytes of the update timestamp and turns
// the date/time separator into a space. Sliced, never parsed: malformed or
// short values pass through truncated as-is, with no timezone conversion.
func formatTimestamp(s string) string {
	if len(s) > 19 {
		s = s[:19]
	}
	if len(s) >= 11 && s[10] == 'T' {
		b := []byte(s)
		b[10] = ' '
		s = string(b)
	}
	return s
}

// serviceName derives the affected service: the component list when present,
// otherwise the left side of the first " - " in the incident name, otherwise
// the name verbatim.
func serviceName(inc *Incident) string {
	if len(inc.Components) > 0 {
		return strings.Join(inc.Components, ", ")
	}
	if before, _, ok := strings.Cut(inc.Name, " - "); ok {
		return strings.TrimSpace(before)
	}
	return inc.Name
}
