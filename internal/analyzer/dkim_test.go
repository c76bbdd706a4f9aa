package analyzer

import (
	"context"
	"strings"
	"testing"
	"time"

	"domainvetter/internal/dnsx"
	"domainvetter/internal/models"
)

// Base64 payload lengths chosen so len*6/8*8 lands in each key-size band.
var (
	key2048 = strings.Repeat("A", 360) // ≥2048 estimated bits
	key1024 = strings.Repeat("A", 200) // 1024–2047
	keyWeak = strings.Repeat("A", 80)  // <1024
)

func TestAnalyzeDKIM(t *testing.T) {
	tests := []struct {
		name           string
		txt            map[string][]string
		expectedStatus models.RecordStatus
		expectedScore  int
		foundSelectors int
		issueContains  string
	}{
		{
			name: "Single strong selector is basic",
			txt: map[string][]string{
				"google._domainkey.example.com": {"v=DKIM1; k=rsa; p=" + key2048},
			},
			expectedStatus: models.StatusBasic,
			expectedScore:  15, // 10 base + 5 strong key, capped at 15
			foundSelectors: 1,
			issueContains:  "redundancy",
		},
		{
			name: "Two selectors are good",
			txt: map[string][]string{
				"google._domainkey.example.com":    {"v=DKIM1; k=rsa; p=" + key2048},
				"amazonses._domainkey.example.com": {"v=DKIM1; k=rsa; p=" + key2048},
			},
			expectedStatus: models.StatusGood,
			expectedScore:  25, // 15+15 capped at 25
			foundSelectors: 2,
		},
		{
			name:           "No selectors found",
			txt:            map[string][]string{},
			expectedStatus: models.StatusMissing,
			expectedScore:  0,
			issueContains:  "No DKIM records",
		},
		{
			name: "Medium key gets an upgrade nudge",
			txt: map[string][]string{
				"default._domainkey.example.com": {"v=DKIM1; k=rsa; p=" + key1024},
			},
			expectedStatus: models.StatusBasic,
			expectedScore:  10,
			foundSelectors: 1,
			issueContains:  "2048-bit",
		},
		{
			name: "Weak key is penalised",
			txt: map[string][]string{
				"default._domainkey.example.com": {"v=DKIM1; k=rsa; p=" + keyWeak},
			},
			expectedStatus: models.StatusBasic,
			expectedScore:  8, // 10 - 2
			foundSelectors: 1,
			issueContains:  "less than 1024",
		},
		{
			name: "Missing public key zeroes the selector",
			txt: map[string][]string{
				"default._domainkey.example.com": {"v=DKIM1; k=rsa; p="},
			},
			expectedStatus: models.StatusBasic,
			expectedScore:  0,
			foundSelectors: 1,
			issueContains:  "missing public key",
		},
		{
			name: "Test mode flagged",
			txt: map[string][]string{
				"default._domainkey.example.com": {"v=DKIM1; k=rsa; t=y; p=" + key2048},
			},
			expectedStatus: models.StatusBasic,
			expectedScore:  12, // 10 + 5 - 3
			foundSelectors: 1,
			issueContains:  "test mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := dnsx.MockResolver{TXT: tt.txt}

			result := New(mock, nil).AnalyzeDKIM(context.Background(), "example.com")

			if result.Status != tt.expectedStatus {
				t.Errorf("Status %q != expected %q", result.Status, tt.expectedStatus)
			}
			if result.Score != tt.expectedScore {
				t.Errorf("Score %d != expected %d", result.Score, tt.expectedScore)
			}
			if len(result.Selectors) != tt.foundSelectors {
				t.Errorf("Found %d selectors, expected %d", len(result.Selectors), tt.foundSelectors)
			}
			if tt.issueContains != "" {
				all := append([]string{}, result.Issues...)
				for _, sel := range result.Selectors {
					all = append(all, sel.Issues...)
				}
				if !anyContains(all, tt.issueContains) {
					t.Errorf("Issues %v missing %q", all, tt.issueContains)
				}
			}
		})
	}
}

func TestAnalyzeDKIMJoinsSplitRecords(t *testing.T) {
	// Long keys are published as multiple quoted TXT fragments; the probe
	// must concatenate them before parsing.
	half := len(key2048) / 2
	mock := dnsx.MockResolver{TXT: map[string][]string{
		"default._domainkey.example.com": {
			`"v=DKIM1; k=rsa; p=` + key2048[:half] + `"`,
			`"` + key2048[half:] + `"`,
		},
	}}

	result := New(mock, nil).AnalyzeDKIM(context.Background(), "example.com")

	sel, ok := result.Selectors["default"]
	if !ok {
		t.Fatal("Selector 'default' not found")
	}
	if got := sel.KeyDetails["p"]; got != key2048 {
		t.Errorf("Reassembled key has length %d, expected %d", len(got), len(key2048))
	}
	if sel.Score != 15 {
		t.Errorf("Selector score %d != expected 15", sel.Score)
	}
}

func TestAnalyzeDKIMFailedProbeExcluded(t *testing.T) {
	mock := dnsx.MockResolver{
		TXT: map[string][]string{
			"google._domainkey.example.com":  {"v=DKIM1; k=rsa; p=" + key2048},
			"default._domainkey.example.com": {"v=DKIM1; k=rsa; p=" + key2048},
		},
		Fail: []string{"TXT default._domainkey.example.com"},
	}

	result := New(mock, nil).AnalyzeDKIM(context.Background(), "example.com")

	if len(result.Selectors) != 1 {
		t.Fatalf("Found %d selectors, expected the failed probe excluded", len(result.Selectors))
	}
	if result.Status != models.StatusBasic {
		t.Errorf("Status %q != expected basic", result.Status)
	}
}

func TestAnalyzeDKIMProbesRunConcurrently(t *testing.T) {
	const latency = 50 * time.Millisecond
	mock := dnsx.MockResolver{
		TXT: map[string][]string{
			"google._domainkey.example.com": {"v=DKIM1; k=rsa; p=" + key2048},
		},
		Latency: latency,
	}

	start := time.Now()
	New(mock, nil).AnalyzeDKIM(context.Background(), "example.com")
	elapsed := time.Since(start)

	// 14 sequential probes would take 14×latency; concurrent probes finish
	// in roughly one latency. Allow generous scheduling headroom.
	if elapsed > 5*latency {
		t.Errorf("DKIM fan-out took %v for %d selectors, expected about %v",
			elapsed, len(DefaultSelectors), latency)
	}
}
