package dnsx

import (
	"context"
	"slices"
	"time"
)

// MockResolver is a Resolver for tests. Records are keyed by query name
// (no trailing dot). Names listed in Fail simulate a resolution failure,
// which the production client also reports as not-found.
type MockResolver struct {
	MX  map[string][]string
	TXT map[string][]string

	// Fail lists "TYPE name" entries, e.g. "TXT example.com".
	Fail []string

	// Latency delays every lookup, for timing-sensitive tests.
	Latency time.Duration
}

var _ Resolver = MockResolver{}

// Lookup returns the configured records for name.
func (m MockResolver) Lookup(ctx context.Context, name string, rt RecordType) Result {
	res := Result{Type: rt}

	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return res
		}
	}

	if ctx.Err() != nil || slices.Contains(m.Fail, string(rt)+" "+name) {
		return res
	}

	var records []string
	switch rt {
	case TypeMX:
		records = m.MX[name]
	case TypeTXT:
		records = m.TXT[name]
	}

	if len(records) == 0 {
		return res
	}

	res.Records = records
	res.Found = true
	return res
}
