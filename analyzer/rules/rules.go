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

// Package rules implements pattern-based contract risk detection.
//
// Each rule pairs a case-insensitive regular expression with a risk level,
// a category and a severity weight. Rule evaluation is purely mechanical:
// it never consults a model, so it serves as a deterministic floor under
// the LLM assessment.
package rules

import (
	"regexp"
	"sort"
	"strings"

	"github.com/contractlens/contractlens/report"
)

// Rule is a single risk detection pattern.
type Rule struct {
	ID             string
	Pattern        *regexp.Regexp
	RiskLevel      report.RiskLevel
	Category       string
	SeverityWeight float64
	Description    string
}

// Match records a rule that fired on a clause.
type Match struct {
	RuleID         string
	Description    string
	RiskLevel      report.RiskLevel
	Category       string
	SeverityWeight float64
}

// Set is an ordered collection of rules. The zero value is unusable; use
// Builtin or Load.
type Set struct {
	rules []Rule
}

// Rules returns the rules in evaluation order.
func (s *Set) Rules() []Rule { return s.rules }

// Evaluate runs every rule against the clause text and returns all matches,
// in rule order. Blank input yields no matches.
func (s *Set) Evaluate(clause string) []Match {
	text := strings.TrimSpace(clause)
	if text == "" {
		return nil
	}

	var matches []Match
	for _, r := range s.rules {
		if r.Pattern.MatchString(text) {
			matches = append(matches, Match{
				RuleID:         r.ID,
				Description:    r.Description,
				RiskLevel:      r.RiskLevel,
				Category:       r.Category,
				SeverityWeight: r.SeverityWeight,
			})
		}
	}
	return matches
}

// escalation thresholds for accumulated Medium findings
const (
	mediumCountEscalation  = 3
	mediumWeightEscalation = 5.0
)

// Aggregate folds rule matches into one overall level. Any High match wins
// outright. Medium matches escalate to High once there are three of them or
// their combined severity weight reaches 5.0.
func Aggregate(matches []Match) report.RiskLevel {
	if len(matches) == 0 {
		return report.RiskLow
	}

	var mediumCount int
	var mediumWeight float64
	for _, m := range matches {
		switch m.RiskLevel {
		case report.RiskHigh:
			return report.RiskHigh
		case report.RiskMedium:
			mediumCount++
			mediumWeight += m.SeverityWeight
		}
	}

	if mediumCount == 0 {
		return report.RiskLow
	}
	if mediumCount >= mediumCountEscalation || mediumWeight >= mediumWeightEscalation {
		return report.RiskHigh
	}
	return report.RiskMedium
}

// CategoryStats aggregates matches of one category.
type CategoryStats struct {
	Count    int
	RuleIDs  []string
	Severity float64
}

// Summary is a digest of all rule matches for a contract.
type Summary struct {
	TotalMatches    int
	RiskLevel       report.RiskLevel
	Categories      map[string]*CategoryStats
	HighRiskCount   int
	MediumRiskCount int
	TotalSeverity   float64
	TopConcerns     []string
}

const topConcernLimit = 5

// Summarize builds a Summary from rule matches. TopConcerns holds up to five
// descriptions ordered by risk level then severity weight, descending.
func Summarize(matches []Match) *Summary {
	s := &Summary{
		RiskLevel:  Aggregate(matches),
		Categories: make(map[string]*CategoryStats),
	}
	if len(matches) == 0 {
		s.RiskLevel = report.RiskLow
		return s
	}

	s.TotalMatches = len(matches)
	for _, m := range matches {
		cat, ok := s.Categories[m.Category]
		if !ok {
			cat = &CategoryStats{}
			s.Categories[m.Category] = cat
		}
		cat.Count++
		cat.RuleIDs = append(cat.RuleIDs, m.RuleID)
		cat.Severity += m.SeverityWeight

		switch m.RiskLevel {
		case report.RiskHigh:
			s.HighRiskCount++
		case report.RiskMedium:
			s.MediumRiskCount++
		}
		s.TotalSeverity += m.SeverityWeight
	}

	ranked := make([]Match, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := rankOf(ranked[i].RiskLevel), rankOf(ranked[j].RiskLevel)
		if ri != rj {
			return ri > rj
		}
		return ranked[i].SeverityWeight > ranked[j].SeverityWeight
	})
	for i := 0; i < len(ranked) && i < topConcernLimit; i++ {
		s.TopConcerns = append(s.TopConcerns, ranked[i].Description)
	}
	return s
}

func rankOf(l report.RiskLevel) int {
	switch l {
	case report.RiskHigh:
		return 2
	case report.RiskMedium:
		return 1
	}
	return 0
}
