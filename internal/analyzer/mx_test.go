package analyzer

import (
	"context"
	"testing"

	"domainvetter/internal/dnsx"
	"domainvetter/internal/models"
)

func TestAnalyzeMX(t *testing.T) {
	tests := []struct {
		name           string
		records        []string
		fail           bool
		expectedStatus models.RecordStatus
		expectedScore  int
		expectedHosts  int
		expectIssues   bool
	}{
		{
			name:           "Two valid MX hosts",
			records:        []string{"10 mail1.example.com.", "20 mail2.example.com."},
			expectedStatus: models.StatusValid,
			expectedScore:  20,
			expectedHosts:  2,
		},
		{
			name:           "No MX records",
			expectedStatus: models.StatusMissing,
			expectedScore:  0,
			expectIssues:   true,
		},
		{
			name:           "Resolution failure looks like absence",
			records:        []string{"10 mail.example.com."},
			fail:           true,
			expectedStatus: models.StatusMissing,
			expectedScore:  0,
			expectIssues:   true,
		},
		{
			name:           "Null MX",
			records:        []string{"0 ."},
			expectedStatus: models.StatusNullMX,
			expectedScore:  0,
			expectedHosts:  1,
			expectIssues:   true,
		},
		{
			name:           "Null MX wins over valid records",
			records:        []string{"10 mail.example.com.", "0 ."},
			expectedStatus: models.StatusNullMX,
			expectedScore:  0,
			expectedHosts:  2,
			expectIssues:   true,
		},
		{
			name:           "Malformed preference does not abort the rest",
			records:        []string{"ten mail1.example.com.", "20 mail2.example.com."},
			expectedStatus: models.StatusValid,
			expectedScore:  20,
			expectedHosts:  1,
			expectIssues:   true,
		},
		{
			name:           "Only malformed records",
			records:        []string{"garbage"},
			expectedStatus: models.StatusInvalid,
			expectedScore:  0,
			expectIssues:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := dnsx.MockResolver{MX: map[string][]string{"example.com": tt.records}}
			if tt.fail {
				mock.Fail = []string{"MX example.com"}
			}

			result := New(mock, nil).AnalyzeMX(context.Background(), "example.com")

			if result.Status != tt.expectedStatus {
				t.Errorf("Status %q != expected %q", result.Status, tt.expectedStatus)
			}
			if result.Score != tt.expectedScore {
				t.Errorf("Score %d != expected %d", result.Score, tt.expectedScore)
			}
			if len(result.Records) != tt.expectedHosts {
				t.Errorf("Parsed %d hosts, expected %d", len(result.Records), tt.expectedHosts)
			}
			if tt.expectIssues && len(result.Issues) == 0 {
				t.Error("Expected issues, got none")
			}
			if !tt.expectIssues && len(result.Issues) > 0 {
				t.Errorf("Unexpected issues: %v", result.Issues)
			}
			if result.Explanation.WhatIs == "" {
				t.Error("Missing explanation")
			}
		})
	}
}

func TestAnalyzeMXStripsTrailingDot(t *testing.T) {
	mock := dnsx.MockResolver{MX: map[string][]string{"example.com": {"5 mx.example.com."}}}

	result := New(mock, nil).AnalyzeMX(context.Background(), "example.com")

	if len(result.Records) != 1 {
		t.Fatalf("Parsed %d hosts, expected 1", len(result.Records))
	}
	if result.Records[0].Exchange != "mx.example.com" {
		t.Errorf("Exchange %q, expected trailing dot stripped", result.Records[0].Exchange)
	}
	if result.Records[0].Preference != 5 {
		t.Errorf("Preference %d, expected 5", result.Records[0].Preference)
	}
}
