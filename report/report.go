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

// Package report defines the contract analysis result model.
package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RiskLevel is a coarse risk classification of a clause or a whole contract.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

var riskOrder = map[RiskLevel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2}

// Normalize maps unknown or differently cased values to a valid level,
// defaulting to Medium. LLM output is not trusted to be well-formed.
func (l RiskLevel) Normalize() RiskLevel {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return l
	case "low":
		return RiskLow
	case "high":
		return RiskHigh
	default:
		return RiskMedium
	}
}

// Max returns the more severe of the two levels.
func (l RiskLevel) Max(other RiskLevel) RiskLevel {
	if riskOrder[l.Normalize()] >= riskOrder[other.Normalize()] {
		return l.Normalize()
	}
	return other.Normalize()
}

// RuleHit records a single rule that matched a clause.
type RuleHit struct {
	RuleID      string    `json:"rule_id"`
	Description string    `json:"description"`
	RiskLevel   RiskLevel `json:"risk_level"`
}

// ClauseAnalysis is the full assessment of one contract clause.
type ClauseAnalysis struct {
	ClauseIndex    int    `json:"clause_index"`
	OriginalText   string `json:"original_text"`
	AnonymisedText string `json:"anonymised_text"`

	PlainExplanation string `json:"plain_english_explanation"`

	RiskLevelLLM   RiskLevel `json:"risk_level_llm"`
	RiskLevelRules RiskLevel `json:"risk_level_rules"`
	RiskLevelFinal RiskLevel `json:"risk_level_final"`
	RiskReason     string    `json:"risk_reason"`
	FinalRiskScore float64   `json:"final_risk_score"`

	SuggestedAlternative string    `json:"suggested_alternative_clause"`
	AffectedParty        string    `json:"affected_party"`
	NegotiationInsight   string    `json:"negotiation_insight"`
	RuleHits             []RuleHit `json:"rule_hits"`
}

// ContractSummary is the contract-level assessment.
type ContractSummary struct {
	BusinessSummary string `json:"business_summary"`

	OverallRiskLLM   RiskLevel `json:"overall_risk_llm"`
	OverallRiskRules RiskLevel `json:"overall_risk_rules"`
	OverallRiskFinal RiskLevel `json:"overall_risk_final"`

	TopRisks               []string `json:"top_risks"`
	MissingCriticalClauses []string `json:"missing_critical_clauses"`
	CompletenessScore      int      `json:"contract_completeness_score"`
	ConflictingClauses     []string `json:"conflicting_clauses"`
	AmbiguousTerms         []string `json:"duplicate_or_ambiguous_terms"`
	NegotiationInsights    []string `json:"negotiation_insights"`
	DocumentLengthWords    int      `json:"document_length_words"`
}

// ContractReport combines the summary with per-clause analyses.
type ContractReport struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Summary          ContractSummary   `json:"summary"`
	Clauses          []ClauseAnalysis  `json:"clauses"`
	AnonymisationMap map[string]string `json:"anonymisation_map"`
}

// New returns an empty report with a fresh ID and creation time set.
func New() *ContractReport {
	return &ContractReport{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// MarshalIndent renders the report as indented JSON, the on-disk format of
// the console pipeline.
func (r *ContractReport) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
