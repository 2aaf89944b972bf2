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
	"encoding/json"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// clauseResponse is the JSON shape the model is asked to produce for one
// clause.
type clauseResponse struct {
	PlainExplanation     string   `mapstructure:"plain_english_explanation"`
	RiskLevel            string   `mapstructure:"risk_level"`
	RiskReason           string   `mapstructure:"risk_reason"`
	ConfidenceLevel      string   `mapstructure:"confidence_level"`
	ConfidencePercentage int      `mapstructure:"confidence_percentage"`
	AffectedParty        string   `mapstructure:"affected_party"`
	PartyImpactReasoning string   `mapstructure:"party_impact_reasoning"`
	SuggestedAlternative string   `mapstructure:"suggested_alternative_clause"`
	NegotiationInsight   string   `mapstructure:"negotiation_insight"`
	LegalConcerns        []string `mapstructure:"legal_concerns"`
	MissingProtections   []string `mapstructure:"missing_protections"`
	AmbiguousTerms       []string `mapstructure:"ambiguous_terms"`
}

// summaryResponse is the JSON shape the model is asked to produce for the
// contract summary.
type summaryResponse struct {
	BusinessSummary     string   `mapstructure:"business_summary"`
	OverallRisk         string   `mapstructure:"overall_risk"`
	OverallRiskReason   string   `mapstructure:"overall_risk_reasoning"`
	TopBusinessRisks    []string `mapstructure:"top_3_business_risks"`
	CompletenessScore   int      `mapstructure:"contract_completeness_score"`
	ConflictingClauses  []string `mapstructure:"conflicting_clauses"`
	AmbiguousTerms      []string `mapstructure:"duplicate_or_ambiguous_terms"`
	MissingClauses      []string `mapstructure:"missing_critical_clauses"`
	Recommendations     []string `mapstructure:"negotiation_recommendations"`
	DocumentLengthWords int      `mapstructure:"document_length_words"`
	ContractType        string   `mapstructure:"contract_type_classification"`
}

// cleanJSONResponse strips markdown code fences and stray backticks that
// models wrap around JSON payloads.
func cleanJSONResponse(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		if strings.HasPrefix(cleaned, "```json") {
			cleaned = strings.TrimSpace(cleaned[7:])
		} else {
			cleaned = strings.TrimSpace(cleaned[3:])
		}
	}
	cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))

	if strings.HasPrefix(cleaned, "`") && strings.HasSuffix(cleaned, "`") && len(cleaned) >= 2 {
		cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
	}
	return cleaned
}

// parseJSONResponse decodes a model response into out. The response is
// cleaned first; if it still fails to parse, the outermost {...} object is
// extracted and retried. Decoding is weakly typed since models return
// numbers for string fields and vice versa.
func parseJSONResponse(raw string, out any) error {
	cleaned := cleanJSONResponse(raw)
	if cleaned == "" {
		return &Error{Type: ErrorTypeEmptyResponse, Message: "empty model response"}
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start < 0 || end <= start {
			return &Error{
				Type:    ErrorTypeInvalidJSON,
				Message: "response contains no JSON object",
				Details: truncate(cleaned, 100),
			}
		}
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &parsed); err != nil {
			return &Error{
				Type:    ErrorTypeInvalidJSON,
				Message: err.Error(),
				Details: truncate(cleaned, 100),
			}
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(parsed); err != nil {
		return &Error{Type: ErrorTypeInvalidJSON, Message: err.Error()}
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
