// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import (
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/contractlens/contractlens/report"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain json untouched",
			in:   `{"risk_level": "High"}`,
			want: `{"risk_level": "High"}`,
		},
		{
			name: "json fence",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "bare fence",
			in:   "```\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "single backticks",
			in:   "`{\"a\": 1}`",
			want: `{"a": 1}`,
		},
		{
			name: "surrounding whitespace",
			in:   "  \n{\"a\": 1}\n  ",
			want: `{"a": 1}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSONResponse(tt.in); got != tt.want {
				t.Errorf("cleanJSONResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     clauseResponse
		wantType ErrorType
	}{
		{
			name: "well formed",
			raw: `{"plain_english_explanation": "Explains X.", "risk_level": "High",
				"confidence_percentage": 85, "legal_concerns": ["concern one"]}`,
			want: clauseResponse{
				PlainExplanation:     "Explains X.",
				RiskLevel:            "High",
				ConfidencePercentage: 85,
				LegalConcerns:        []string{"concern one"},
			},
		},
		{
			name: "fenced with surrounding prose",
			raw:  "Here is the analysis:\n{\"risk_level\": \"Medium\"}\nLet me know if you need more.",
			want: clauseResponse{RiskLevel: "Medium"},
		},
		{
			name: "weakly typed fields",
			raw:  `{"risk_level": "Low", "confidence_percentage": "90"}`,
			want: clauseResponse{RiskLevel: "Low", ConfidencePercentage: 90},
		},
		{
			name:     "empty response",
			raw:      "   ",
			wantType: ErrorTypeEmptyResponse,
		},
		{
			name:     "no json object",
			raw:      "I cannot analyze this clause.",
			wantType: ErrorTypeInvalidJSON,
		},
		{
			name:     "broken json object",
			raw:      `{"risk_level": }`,
			wantType: ErrorTypeInvalidJSON,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got clauseResponse
			err := parseJSONResponse(tt.raw, &got)
			if tt.wantType != "" {
				var aerr *Error
				if !errors.As(err, &aerr) {
					t.Fatalf("parseJSONResponse() error = %v, want *Error", err)
				}
				if aerr.Type != tt.wantType {
					t.Errorf("error type = %v, want %v", aerr.Type, tt.wantType)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseJSONResponse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseJSONResponse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseJSONResponse_UnknownFieldsIgnored(t *testing.T) {
	var got summaryResponse
	err := parseJSONResponse(`{"overall_risk": "High", "made_up_field": true}`, &got)
	if err != nil {
		t.Fatalf("parseJSONResponse() error = %v", err)
	}
	if got.OverallRisk != "High" {
		t.Errorf("OverallRisk = %q, want High", got.OverallRisk)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate() = %q, want unchanged", got)
	}
	if got := truncate("0123456789abc", 10); got != "0123456789..." {
		t.Errorf("truncate() = %q", got)
	}
}

func TestClipRunes(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"ascii cut", "hello world", 5, "hello"},
		{"devanagari mid-rune", "नमस्ते", 4, "न"},
		{"devanagari on boundary", "नमस्ते", 6, "नम"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clipRunes(tt.in, tt.limit)
			if got != tt.want {
				t.Errorf("clipRunes(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("clipRunes(%q, %d) produced invalid UTF-8 %q", tt.in, tt.limit, got)
			}
		})
	}
}

func TestRiskScore(t *testing.T) {
	tests := []struct {
		name       string
		level      report.RiskLevel
		confidence int
		ruleCount  int
		concerns   []string
		missing    []string
		want       float64
	}{
		{
			name:  "low base",
			level: report.RiskLow,
			want:  25,
		},
		{
			name:  "medium base",
			level: report.RiskMedium,
			want:  50,
		},
		{
			name:  "high base",
			level: report.RiskHigh,
			want:  80,
		},
		{
			name:       "low confidence bumps score",
			level:      report.RiskMedium,
			confidence: 40,
			want:       55,
		},
		{
			name:       "high confidence does not",
			level:      report.RiskMedium,
			confidence: 90,
			want:       50,
		},
		{
			name:      "rule hits capped at 15",
			level:     report.RiskLow,
			ruleCount: 10,
			want:      40,
		},
		{
			name:     "concerns capped at 10",
			level:    report.RiskLow,
			concerns: make([]string, 8),
			want:     35,
		},
		{
			name:    "missing protections capped at 10",
			level:   report.RiskLow,
			missing: make([]string, 6),
			want:    35,
		},
		{
			name:       "total capped at 100",
			level:      report.RiskHigh,
			confidence: 30,
			ruleCount:  10,
			concerns:   make([]string, 10),
			missing:    make([]string, 10),
			want:       100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := riskScore(tt.level, tt.confidence, tt.ruleCount, tt.concerns, tt.missing)
			if got != tt.want {
				t.Errorf("riskScore() = %v, want %v", got, tt.want)
			}
		})
	}
}
