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

// Package preprocess cleans contract text, splits it into clauses and
// replaces identifying entities with neutral placeholders so the downstream
// assessment cannot be influenced by party names or contact details.
package preprocess

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// minClauseLength is the minimum number of significant characters for a
// fragment to count as a clause.
const minClauseLength = 10

// Result is the output of preprocessing one contract.
type Result struct {
	// AnonymisedText is the full cleaned text with entities replaced.
	AnonymisedText string
	// Clauses are the original clause texts, in document order.
	Clauses []string
	// AnonymisedClauses is parallel to Clauses.
	AnonymisedClauses []string
	// EntityMap maps placeholder -> original entity text.
	EntityMap map[string]string
}

// Sanitize forces the text to valid UTF-8, strips NUL bytes, normalises
// line endings and collapses runs of blank lines.
func Sanitize(text string) string {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}
	text = strings.ReplaceAll(text, "\x00", "")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return text
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// clauseBoundary matches numbered or lettered headings that start a clause,
// e.g. "1.", "2.3", "Section 4", "ARTICLE IX", "(a)".
var clauseBoundary = regexp.MustCompile(`(?m)^\s*(?:\d+(?:\.\d+)*[.)]?\s+|\([a-z]\)\s+|(?i:section|article|clause)\s+[\dIVXLC]+)`)

// Segment splits sanitized contract text into clauses. Splits happen at
// clause headings and at blank-line boundaries; fragments shorter than ten
// significant characters are dropped.
func Segment(text string) []string {
	var clauses []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		// Further split blocks that contain multiple numbered headings.
		idx := clauseBoundary.FindAllStringIndex(block, -1)
		starts := []int{0}
		for _, pair := range idx {
			if pair[0] != 0 {
				starts = append(starts, pair[0])
			}
		}
		starts = append(starts, len(block))

		for i := 0; i+1 < len(starts); i++ {
			clause := strings.TrimSpace(block[starts[i]:starts[i+1]])
			if significantLength(clause) >= minClauseLength {
				clauses = append(clauses, clause)
			}
		}
	}
	return clauses
}

func significantLength(s string) int {
	var n int
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' {
			n++
		}
	}
	return n
}

var (
	// definedParty matches quoted defined terms such as (the "Company") or
	// (hereinafter referred to as "Consultant").
	definedParty = regexp.MustCompile(`\((?:the\s+|hereinafter\s+(?:referred\s+to\s+as\s+)?)?[“"]([^”"]{2,40})[”"]\)`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	// phonePattern requires the grouped 3-3-4 digit shape with an optional
	// country code so decimal amounts and ISO dates are left untouched.
	phonePattern = regexp.MustCompile(`\+?\d{0,3}[\s\-.]?\(?\d{3}\)?[\s\-.]?\d{3}[\s\-.]?\d{4}\b`)
)

// Anonymiser replaces identifying entities with stable placeholders.
type Anonymiser struct {
	entityMap map[string]string // placeholder -> original
	byEntity  map[string]string // original -> placeholder
	parties   int
	emails    int
	phones    int
}

// NewAnonymiser returns an empty anonymiser.
func NewAnonymiser() *Anonymiser {
	return &Anonymiser{
		entityMap: make(map[string]string),
		byEntity:  make(map[string]string),
	}
}

// EntityMap returns placeholder -> original entity text.
func (a *Anonymiser) EntityMap() map[string]string { return a.entityMap }

func (a *Anonymiser) placeholderFor(entity, kind string) string {
	if p, ok := a.byEntity[entity]; ok {
		return p
	}
	var p string
	switch kind {
	case "party":
		p = fmt.Sprintf("PARTY_%c", 'A'+a.parties)
		a.parties++
	case "email":
		a.emails++
		p = fmt.Sprintf("EMAIL_%d", a.emails)
	default:
		a.phones++
		p = fmt.Sprintf("PHONE_%d", a.phones)
	}
	a.entityMap[p] = entity
	a.byEntity[entity] = p
	return p
}

// Anonymise replaces detected entities in the text, reusing placeholders
// for entities seen before so references stay consistent across clauses.
func (a *Anonymiser) Anonymise(text string) string {
	// Defined party terms are collected first, then every later occurrence
	// of the bare term is replaced too.
	for _, m := range definedParty.FindAllStringSubmatch(text, -1) {
		a.placeholderFor(m[1], "party")
	}
	for entity, placeholder := range a.byEntity {
		if strings.HasPrefix(placeholder, "PARTY_") {
			text = strings.ReplaceAll(text, entity, placeholder)
		}
	}

	text = emailPattern.ReplaceAllStringFunc(text, func(m string) string {
		return a.placeholderFor(m, "email")
	})
	text = phonePattern.ReplaceAllStringFunc(text, func(m string) string {
		return a.placeholderFor(m, "phone")
	})
	return text
}

// Contract runs the full preprocessing pipeline: sanitize, anonymise,
// segment. The anonymised clause list is parallel to the original one.
func Contract(text string) *Result {
	clean := Sanitize(text)

	anon := NewAnonymiser()
	anonText := anon.Anonymise(clean)

	clauses := Segment(clean)
	anonClauses := make([]string, len(clauses))
	for i, c := range clauses {
		anonClauses[i] = anon.Anonymise(c)
	}

	return &Result{
		AnonymisedText:    anonText,
		Clauses:           clauses,
		AnonymisedClauses: anonClauses,
		EntityMap:         anon.EntityMap(),
	}
}
