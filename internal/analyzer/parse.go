package analyzer

import "strings"

// parseTagValue splits a "tag=value; tag=value" record (the shared DKIM and
// DMARC syntax) into a map. Pairs without an '=' are skipped; the first '='
// in a pair is the separator, so values like "mailto:a@b.com" survive intact.
func parseTagValue(record string) map[string]string {
	components := map[string]string{}
	for _, pair := range strings.Split(record, ";") {
		tag, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		components[strings.TrimSpace(tag)] = strings.TrimSpace(value)
	}
	return components
}
