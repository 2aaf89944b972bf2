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

package report_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/contractlens/contractlens/report"
)

func TestRiskLevel_Normalize(t *testing.T) {
	tests := []struct {
		in   report.RiskLevel
		want report.RiskLevel
	}{
		{in: report.RiskLow, want: report.RiskLow},
		{in: report.RiskMedium, want: report.RiskMedium},
		{in: report.RiskHigh, want: report.RiskHigh},
		{in: "low", want: report.RiskLow},
		{in: "high", want: report.RiskHigh},
		{in: "medium", want: report.RiskMedium},
		{in: "CRITICAL", want: report.RiskMedium},
		{in: "", want: report.RiskMedium},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Errorf("Normalize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRiskLevel_Max(t *testing.T) {
	tests := []struct {
		a, b report.RiskLevel
		want report.RiskLevel
	}{
		{a: report.RiskLow, b: report.RiskLow, want: report.RiskLow},
		{a: report.RiskLow, b: report.RiskHigh, want: report.RiskHigh},
		{a: report.RiskHigh, b: report.RiskMedium, want: report.RiskHigh},
		{a: report.RiskMedium, b: report.RiskLow, want: report.RiskMedium},
		// Unknown values normalize to Medium before comparing.
		{a: "nonsense", b: report.RiskLow, want: report.RiskMedium},
		{a: "low", b: "high", want: report.RiskHigh},
	}
	for _, tt := range tests {
		if got := tt.a.Max(tt.b); got != tt.want {
			t.Errorf("%q.Max(%q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	a, b := report.New(), report.New()
	if a.ID == "" || b.ID == "" {
		t.Fatal("New() produced empty ID")
	}
	if a.ID == b.ID {
		t.Errorf("New() produced duplicate IDs: %s", a.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Error("New() produced zero CreatedAt")
	}
}

func TestMarshalIndent_RoundTrip(t *testing.T) {
	want := report.New()
	want.Summary = report.ContractSummary{
		BusinessSummary:  "A services agreement.",
		OverallRiskFinal: report.RiskHigh,
		TopRisks:         []string{"liability"},
	}
	want.Clauses = []report.ClauseAnalysis{
		{
			ClauseIndex:    1,
			OriginalText:   "Clause text.",
			RiskLevelFinal: report.RiskHigh,
			FinalRiskScore: 85,
			RuleHits:       []report.RuleHit{{RuleID: "unlimited_liability", RiskLevel: report.RiskHigh}},
		},
	}
	want.AnonymisationMap = map[string]string{"PARTY_A": "Acme"}

	data, err := want.MarshalIndent()
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}

	var got report.ContractReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(want, &got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
