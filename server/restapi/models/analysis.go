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

// package models defines the wire types of the analysis REST API.
package models

import (
	"time"

	"github.com/contractlens/contractlens/report"
)

// CreateAnalysisRequest is the body of a create-analysis call.
type CreateAnalysisRequest struct {
	// Text is the raw contract text. Required.
	Text string `json:"text"`

	// Language selects the output language. Optional, defaults to English.
	Language string `json:"language,omitempty"`
}

// AnalysisMetadata is the list-view form of a stored report.
type AnalysisMetadata struct {
	ID               string           `json:"id"`
	CreatedAt        time.Time        `json:"created_at"`
	OverallRiskFinal report.RiskLevel `json:"overall_risk_final"`
	ClauseCount      int              `json:"clause_count"`
}

// FromReport projects a report to its list-view metadata.
func FromReport(r *report.ContractReport) AnalysisMetadata {
	return AnalysisMetadata{
		ID:               r.ID,
		CreatedAt:        r.CreatedAt,
		OverallRiskFinal: r.Summary.OverallRiskFinal,
		ClauseCount:      len(r.Clauses),
	}
}
