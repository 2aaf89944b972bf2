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

package rules

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/contractlens/contractlens/report"
)

// ruleSpec is the YAML form of a rule.
type ruleSpec struct {
	ID             string  `yaml:"id"`
	Pattern        string  `yaml:"pattern"`
	RiskLevel      string  `yaml:"risk_level"`
	Category       string  `yaml:"category"`
	SeverityWeight float64 `yaml:"severity_weight"`
	Description    string  `yaml:"description"`
}

type setSpec struct {
	Rules []ruleSpec `yaml:"rules"`
}

// Load reads a custom rule set from YAML. Patterns are compiled
// case-insensitively; a missing id or an invalid pattern fails the whole
// load. A zero severity weight defaults to 1.0, category to "General".
func Load(r io.Reader) (*Set, error) {
	var spec setSpec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode rule set: %w", err)
	}
	if len(spec.Rules) == 0 {
		return nil, fmt.Errorf("rule set is empty")
	}

	set := &Set{}
	for i, rs := range spec.Rules {
		if rs.ID == "" {
			return nil, fmt.Errorf("rule %d: missing id", i)
		}
		if rs.Pattern == "" {
			return nil, fmt.Errorf("rule %q: missing pattern", rs.ID)
		}
		pattern, err := regexp.Compile("(?i)" + rs.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rs.ID, err)
		}

		level := report.RiskLevel(rs.RiskLevel).Normalize()
		weight := rs.SeverityWeight
		if weight == 0 {
			weight = 1.0
		}
		category := rs.Category
		if category == "" {
			category = "General"
		}

		set.rules = append(set.rules, Rule{
			ID:             rs.ID,
			Pattern:        pattern,
			RiskLevel:      level,
			Category:       category,
			SeverityWeight: weight,
			Description:    rs.Description,
		})
	}
	return set, nil
}

// LoadFile reads a custom rule set from a YAML file.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
