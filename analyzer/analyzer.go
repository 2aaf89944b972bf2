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

// Package analyzer implements the LLM-backed legal analysis engine.
//
// Every clause is assessed twice: mechanically by the rule set and
// semantically by the model. The final risk level is the more severe of the
// two, so a model that under-reports risk can never lower the deterministic
// floor.
package analyzer

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/contractlens/contractlens/analyzer/rules"
	"github.com/contractlens/contractlens/llm"
	"github.com/contractlens/contractlens/preprocess"
	"github.com/contractlens/contractlens/report"
)

// Supported output languages.
const (
	LanguageEnglish = "English"
	LanguageHindi   = "Hindi"
)

const (
	defaultTemperature     = 0.1
	defaultMaxOutputTokens = 3000
	defaultMaxRetries      = 3
	defaultCallTimeout     = 90 * time.Second
	defaultMaxParallel     = 4
	defaultCacheSize       = 256

	// summarySampleLimit bounds how much contract text is sent with the
	// summary prompt.
	summarySampleLimit = 12000

	// minClauseChars is the minimum clause length worth sending to the model.
	minClauseChars = 10
)

// clipRunes shortens s to at most limit bytes without splitting a rune.
func clipRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// Config configures an Analyzer. Model is required; everything else has a
// working default.
type Config struct {
	Model llm.Model

	// Rules overrides the built-in rule set.
	Rules *rules.Set

	Temperature     float32
	MaxOutputTokens int32
	MaxRetries      int
	RetryDelay      time.Duration
	CallTimeout     time.Duration

	// MaxParallel bounds concurrent clause analyses in AnalyzeContract.
	MaxParallel int

	// CacheSize is the number of model responses kept in the LRU cache.
	CacheSize int
}

// Analyzer runs contract analyses against an LLM.
type Analyzer struct {
	model  llm.Model
	rules  *rules.Set
	cfg    Config
	cache  *lru.Cache[string, string]
	tracer trace.Tracer
}

// New creates an Analyzer from the config.
func New(cfg Config) (*Analyzer, error) {
	if cfg.Model == nil {
		return nil, fmt.Errorf("analyzer: Model is required")
	}
	if cfg.Rules == nil {
		cfg.Rules = rules.Builtin()
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultInitialBackoff
	}
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	if cfg.MaxParallel == 0 {
		cfg.MaxParallel = defaultMaxParallel
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = defaultCacheSize
	}

	cache, err := lru.New[string, string](cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		model:  cfg.Model,
		rules:  cfg.Rules,
		cfg:    cfg,
		cache:  cache,
		tracer: otel.Tracer("github.com/contractlens/contractlens/analyzer"),
	}, nil
}

// ContractRequest carries one full-contract analysis.
type ContractRequest struct {
	// Clauses and AnonymisedClauses are parallel lists; the anonymised text
	// is what gets sent to the model.
	Clauses           []string
	AnonymisedClauses []string

	// FullText is the complete contract, used for the summary.
	FullText string

	AnonymisationMap map[string]string

	// Language selects the output language; defaults to English.
	Language string
}

// AnalyzeContract runs the full pipeline: per-clause analyses with bounded
// parallelism, rule aggregation over all clauses, then the contract summary.
// Individual clause failures degrade to fallback analyses; the error return
// is reserved for context cancellation.
func (a *Analyzer) AnalyzeContract(ctx context.Context, req *ContractRequest) (*report.ContractReport, error) {
	ctx, span := a.tracer.Start(ctx, "AnalyzeContract",
		trace.WithAttributes(attribute.Int("clauses", len(req.Clauses))))
	defer span.End()

	language := req.Language
	if language == "" {
		language = LanguageEnglish
	}

	log.Printf("Starting analysis of %d clauses", len(req.Clauses))

	clauses := make([]report.ClauseAnalysis, len(req.Clauses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.MaxParallel)
	for i := range req.Clauses {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			anonymised := req.Clauses[i]
			if i < len(req.AnonymisedClauses) {
				anonymised = req.AnonymisedClauses[i]
			}
			clauses[i] = *a.AnalyzeClause(gctx, req.Clauses[i], i+1, anonymised, language)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var allMatches []rules.Match
	for _, c := range req.Clauses {
		allMatches = append(allMatches, a.rules.Evaluate(c)...)
	}
	overallRulesRisk := rules.Aggregate(allMatches)

	log.Printf("Generating contract summary")
	summary := a.SummarizeContract(ctx, req.FullText, overallRulesRisk, language)

	rep := report.New()
	rep.Summary = *summary
	rep.Clauses = clauses
	rep.AnonymisationMap = req.AnonymisationMap
	if rep.AnonymisationMap == nil {
		rep.AnonymisationMap = map[string]string{}
	}

	log.Printf("Analysis complete")
	return rep, nil
}

// AnalyzeClause assesses a single clause. It never returns an error: model
// failures degrade to the deterministic fallback analysis, which still
// carries the rule-based findings.
func (a *Analyzer) AnalyzeClause(ctx context.Context, clauseText string, clauseIndex int, anonymisedText, language string) *report.ClauseAnalysis {
	ctx, span := a.tracer.Start(ctx, "AnalyzeClause",
		trace.WithAttributes(attribute.Int("clause_index", clauseIndex)))
	defer span.End()

	clauseText = sanitizeText(clauseText)

	matches := a.rules.Evaluate(clauseText)
	rulesRisk := rules.Aggregate(matches)

	if len(strings.TrimSpace(clauseText)) < minClauseChars {
		log.Printf("Clause %d is too short, using fallback", clauseIndex)
		return a.fallbackClauseAnalysis(clauseIndex, clauseText, anonymisedText, matches, rulesRisk)
	}

	raw, err := a.generate(ctx, systemPrompt(language), clausePrompt(sanitizeText(anonymisedText)))
	if err != nil {
		log.Printf("Clause %d analysis failed: %v", clauseIndex, err)
		return a.fallbackClauseAnalysis(clauseIndex, clauseText, anonymisedText, matches, rulesRisk)
	}

	var resp clauseResponse
	if err := parseJSONResponse(raw, &resp); err != nil {
		log.Printf("Clause %d response unparseable: %v", clauseIndex, err)
		return a.fallbackClauseAnalysis(clauseIndex, clauseText, anonymisedText, matches, rulesRisk)
	}

	llmRisk := report.RiskLevel(resp.RiskLevel).Normalize()
	finalRisk := llmRisk.Max(rulesRisk)

	return &report.ClauseAnalysis{
		ClauseIndex:          clauseIndex,
		OriginalText:         clauseText,
		AnonymisedText:       anonymisedText,
		PlainExplanation:     fallbackString(resp.PlainExplanation, fallbackExplanation),
		RiskLevelLLM:         llmRisk,
		RiskLevelRules:       rulesRisk,
		RiskLevelFinal:       finalRisk,
		RiskReason:           fallbackString(resp.RiskReason, fallbackRiskReason),
		FinalRiskScore:       riskScore(finalRisk, resp.ConfidencePercentage, len(matches), resp.LegalConcerns, resp.MissingProtections),
		SuggestedAlternative: fallbackString(resp.SuggestedAlternative, fallbackAlternative),
		AffectedParty:        fallbackString(resp.AffectedParty, "Unclear"),
		NegotiationInsight:   fallbackString(resp.NegotiationInsight, fallbackNegotiation),
		RuleHits:             ruleHits(matches),
	}
}

// SummarizeContract produces the contract-level summary. Failures degrade to
// a deterministic fallback built around the rule-based overall risk.
func (a *Analyzer) SummarizeContract(ctx context.Context, fullText string, overallRulesRisk report.RiskLevel, language string) *report.ContractSummary {
	ctx, span := a.tracer.Start(ctx, "SummarizeContract")
	defer span.End()

	fullText = sanitizeText(fullText)
	wordCount := len(strings.Fields(fullText))

	sample := clipRunes(fullText, summarySampleLimit)

	resp := fallbackSummaryResponse(overallRulesRisk, wordCount)
	raw, err := a.generate(ctx, systemPrompt(language), summaryPrompt(sample, wordCount))
	if err != nil {
		log.Printf("Summary generation failed: %v", err)
	} else if err := parseJSONResponse(raw, &resp); err != nil {
		log.Printf("Summary response unparseable: %v", err)
		resp = fallbackSummaryResponse(overallRulesRisk, wordCount)
	}

	llmOverall := report.RiskLevel(resp.OverallRisk).Normalize()
	finalOverall := llmOverall.Max(overallRulesRisk)

	if resp.DocumentLengthWords == 0 {
		resp.DocumentLengthWords = wordCount
	}

	return &report.ContractSummary{
		BusinessSummary:        resp.BusinessSummary,
		OverallRiskLLM:         llmOverall,
		OverallRiskRules:       overallRulesRisk.Normalize(),
		OverallRiskFinal:       finalOverall,
		TopRisks:               resp.TopBusinessRisks,
		MissingCriticalClauses: resp.MissingClauses,
		CompletenessScore:      resp.CompletenessScore,
		ConflictingClauses:     resp.ConflictingClauses,
		AmbiguousTerms:         resp.AmbiguousTerms,
		NegotiationInsights:    resp.Recommendations,
		DocumentLengthWords:    resp.DocumentLengthWords,
	}
}

// generate performs one cached, retried model call.
func (a *Analyzer) generate(ctx context.Context, system, user string) (string, error) {
	cacheKey := system + "\x00" + user
	if cached, ok := a.cache.Get(cacheKey); ok {
		return cached, nil
	}

	req := &llm.Request{
		Contents: []*genai.Content{genai.NewContentFromText(user, genai.RoleUser)},
		GenerateConfig: &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, ""),
			Temperature:       genai.Ptr(a.cfg.Temperature),
			MaxOutputTokens:   a.cfg.MaxOutputTokens,
		},
	}

	var lastErr error
	for attempt := 0; attempt < a.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := calculateBackoff(attempt-1, a.cfg.RetryDelay, defaultMaxBackoff, defaultBackoffFactor)
			log.Printf("Retrying model call in %v (attempt %d/%d)", wait.Round(time.Millisecond), attempt+1, a.cfg.MaxRetries)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
		resp, err := a.model.Generate(callCtx, req)
		cancel()
		if err == nil {
			text := strings.TrimSpace(resp.Text())
			if text == "" {
				lastErr = &Error{Type: ErrorTypeEmptyResponse, Message: "model returned no text"}
			} else {
				a.cache.Add(cacheKey, text)
				return text, nil
			}
		} else {
			lastErr = err
		}

		if !isRetryableError(lastErr) {
			break
		}
	}
	return "", lastErr
}

// riskScore converts an assessment into a 0-100 score.
func riskScore(level report.RiskLevel, confidence, ruleCount int, concerns, missing []string) float64 {
	var score float64
	switch level {
	case report.RiskLow:
		score = 25
	case report.RiskHigh:
		score = 80
	default:
		score = 50
	}

	if confidence > 0 && confidence < 70 {
		score += 5
	}
	score += minF(float64(ruleCount)*3, 15)
	score += minF(float64(len(concerns))*2, 10)
	score += minF(float64(len(missing))*3, 10)

	return minF(score, 100)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// sanitizeText forces model input to clean UTF-8.
func sanitizeText(text string) string {
	return preprocess.Sanitize(text)
}

func ruleHits(matches []rules.Match) []report.RuleHit {
	hits := make([]report.RuleHit, 0, len(matches))
	for _, m := range matches {
		hits = append(hits, report.RuleHit{
			RuleID:      m.RuleID,
			Description: m.Description,
			RiskLevel:   m.RiskLevel,
		})
	}
	return hits
}

// RankClauses orders clause analyses by final risk score, descending.
// The input slice is not modified.
func RankClauses(clauses []report.ClauseAnalysis) []report.ClauseAnalysis {
	ranked := make([]report.ClauseAnalysis, len(clauses))
	copy(ranked, clauses)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalRiskScore > ranked[j].FinalRiskScore
	})
	return ranked
}
