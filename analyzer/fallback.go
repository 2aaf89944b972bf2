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
	"github.com/contractlens/contractlens/analyzer/rules"
	"github.com/contractlens/contractlens/report"
)

// Defaults used when a model response parses but leaves fields empty.
const (
	fallbackExplanation = "This clause establishes specific contractual obligations, rights, or conditions " +
		"that require careful legal review. The language used may create binding commitments " +
		"or limitations that could affect the business relationship between the parties."

	fallbackRiskReason = "Standard contractual provision requiring detailed analysis of obligations, " +
		"performance requirements, and potential liability exposure. Legal counsel should " +
		"review to ensure terms are acceptable and enforceable."

	fallbackAlternative = "Revise to include: (1) clear definitions of key terms, (2) specific performance " +
		"timelines and metrics, (3) balanced obligations for both parties, (4) reasonable " +
		"liability limitations, and (5) explicit termination or modification procedures."

	fallbackNegotiation = "Ensure all terms are clearly defined with measurable criteria. Request specific " +
		"timelines and performance standards. Negotiate balanced liability provisions."
)

func fallbackString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// fallbackClauseAnalysis is what a clause gets when the model is unavailable
// or its response cannot be parsed. Rule findings are still reported, and the
// final level never drops below Medium.
func (a *Analyzer) fallbackClauseAnalysis(clauseIndex int, clauseText, anonymisedText string, matches []rules.Match, rulesRisk report.RiskLevel) *report.ClauseAnalysis {
	finalRisk := rulesRisk.Normalize()
	if finalRisk == report.RiskLow {
		finalRisk = report.RiskMedium
	}

	return &report.ClauseAnalysis{
		ClauseIndex:    clauseIndex,
		OriginalText:   clauseText,
		AnonymisedText: anonymisedText,
		PlainExplanation: "This clause requires professional legal review for comprehensive analysis. " +
			"Automated assessment is limited due to complex legal language or formatting issues.",
		RiskLevelLLM:         report.RiskMedium,
		RiskLevelRules:       rulesRisk.Normalize(),
		RiskLevelFinal:       finalRisk,
		RiskReason:           "Automated analysis unavailable. Manual legal review recommended.",
		FinalRiskScore:       50,
		SuggestedAlternative: "Consult legal counsel for alternative drafting recommendations.",
		AffectedParty:        "Unclear",
		NegotiationInsight:   "Seek professional legal advice for negotiation strategy.",
		RuleHits:             ruleHits(matches),
	}
}

// fallbackSummaryResponse is the summary used when the model is unavailable.
// The overall risk stays anchored to the rule-based assessment.
func fallbackSummaryResponse(overallRulesRisk report.RiskLevel, wordCount int) summaryResponse {
	return summaryResponse{
		BusinessSummary: "This is a commercial agreement establishing business terms between parties. " +
			"Key provisions cover obligations, payment terms, duration, liability, " +
			"termination rights, and dispute resolution. Comprehensive legal review is " +
			"recommended to ensure all terms align with business objectives and risk tolerance.",
		OverallRisk:       string(overallRulesRisk.Normalize()),
		OverallRiskReason: "Assessment based on aggregated clause-level risks and structural analysis.",
		TopBusinessRisks: []string{
			"Potential liability exposure requiring review of indemnification provisions",
			"Termination conditions may not adequately protect business interests",
			"Payment terms and dispute resolution mechanism require clarification",
		},
		CompletenessScore: 65,
		Recommendations: []string{
			"Clarify all material obligations with specific performance metrics",
			"Negotiate balanced liability limitations and indemnification provisions",
			"Ensure termination rights are mutual and include reasonable notice periods",
		},
		DocumentLengthWords: wordCount,
		ContractType:        "Commercial Agreement",
	}
}
