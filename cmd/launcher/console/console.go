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

// package console runs the full analysis pipeline against one contract file.
package console

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"google.golang.org/genai"

	"github.com/contractlens/contractlens/analyzer"
	"github.com/contractlens/contractlens/analyzer/rules"
	"github.com/contractlens/contractlens/cmd/launcher"
	"github.com/contractlens/contractlens/extract"
	"github.com/contractlens/contractlens/llm/gemini"
	"github.com/contractlens/contractlens/preprocess"
	"github.com/contractlens/contractlens/report"
	"github.com/contractlens/contractlens/server/restapi/config"
)

// minContractChars is the minimum extracted text length considered a
// readable contract.
const minContractChars = 100

// ConsoleConfig contains parameters for the console pipeline.
type ConsoleConfig struct {
	input     string
	output    string
	language  string
	model     string
	rulesFile string
}

// ConsoleLauncher runs one contract through the analysis pipeline and writes
// the JSON report.
type ConsoleLauncher struct {
	flags  *flag.FlagSet
	config *ConsoleConfig

	stdout io.Writer
}

// Keyword implements launcher.Sublauncher.
func (c *ConsoleLauncher) Keyword() string {
	return "console"
}

// Parse implements launcher.Sublauncher.
func (c *ConsoleLauncher) Parse(args []string) ([]string, error) {
	err := c.flags.Parse(args)
	if err != nil || !c.flags.Parsed() {
		return nil, fmt.Errorf("failed to parse console flags: %v", err)
	}
	restArgs := c.flags.Args()

	// The contract file may also be given as a positional argument.
	if c.config.input == "" && len(restArgs) > 0 {
		c.config.input = restArgs[0]
		restArgs = restArgs[1:]
	}
	return restArgs, nil
}

// FormatSyntax implements launcher.Sublauncher.
func (c *ConsoleLauncher) FormatSyntax() string {
	return launcher.FormatFlagUsage(c.flags)
}

// SimpleDescription implements launcher.Sublauncher.
func (c *ConsoleLauncher) SimpleDescription() string {
	return "analyzes one contract file and writes the JSON report"
}

func (c *ConsoleLauncher) printHeader(title string) {
	line := strings.Repeat("=", 70)
	fmt.Fprintf(c.stdout, "\n%s\n  %s\n%s\n", line, title, line)
}

func (c *ConsoleLauncher) printStatus(status, format string, args ...any) {
	timestamp := time.Now().Format("15:04:05")
	fmt.Fprintf(c.stdout, "[%s] [%s] %s\n", timestamp, status, fmt.Sprintf(format, args...))
}

// Run executes the pipeline: extract, preprocess, analyze, report.
func (c *ConsoleLauncher) Run(ctx context.Context, cfg *launcher.Config) error {
	if c.config.input == "" {
		return fmt.Errorf("a contract file is required, pass it with -input or as a positional argument")
	}

	a, err := c.buildAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}

	c.printHeader("CONTRACT ANALYSIS PIPELINE")
	c.printStatus("INFO", "Processing file: %s", c.config.input)

	c.printStatus("INFO", "Extracting contract text from document...")
	text, err := extract.File(c.config.input)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	if len(text) < minContractChars {
		return fmt.Errorf("insufficient text extracted from document, got %d characters", len(text))
	}
	c.printStatus("INFO", "Successfully extracted %d characters", len(text))

	c.printStatus("INFO", "Cleaning, anonymizing and segmenting contract clauses...")
	prep := preprocess.Contract(text)
	c.printStatus("INFO", "Identified %d distinct clauses", len(prep.Clauses))
	if len(prep.EntityMap) > 0 {
		c.printStatus("INFO", "Anonymized %d entities to reduce bias", len(prep.EntityMap))
	}

	c.printStatus("INFO", "Performing AI-powered legal analysis...")
	c.printStatus("INFO", "This may take several minutes depending on contract complexity...")

	rep, err := a.AnalyzeContract(ctx, &analyzer.ContractRequest{
		Clauses:           prep.Clauses,
		AnonymisedClauses: prep.AnonymisedClauses,
		FullText:          prep.AnonymisedText,
		AnonymisationMap:  prep.EntityMap,
		Language:          c.config.language,
	})
	if err != nil {
		return fmt.Errorf("analyze contract: %w", err)
	}
	c.printStatus("SUCCESS", "Analysis completed successfully")

	c.printHeader("ANALYSIS SUMMARY")
	c.printSummary(rep)

	data, err := rep.MarshalIndent()
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(c.config.output, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	c.printHeader("OUTPUT")
	c.printStatus("SUCCESS", "Analysis report saved to: %s", c.config.output)
	c.printStatus("SUCCESS", "File size: %d bytes", len(data))
	fmt.Fprintln(c.stdout, "\nAnalysis complete. Review the JSON file for detailed results.")
	return nil
}

func (c *ConsoleLauncher) printSummary(rep *report.ContractReport) {
	summary := rep.Summary

	table := tablewriter.NewWriter(c.stdout)
	table.Header("Metric", "Value")
	table.Append("Overall Risk Level", string(summary.OverallRiskFinal))
	table.Append("Contract Completeness", fmt.Sprintf("%d/100", summary.CompletenessScore))
	table.Append("Document Length", fmt.Sprintf("%d words", summary.DocumentLengthWords))
	table.Append("Clauses Analyzed", fmt.Sprintf("%d", len(rep.Clauses)))
	table.Render()

	if len(summary.TopRisks) > 0 {
		fmt.Fprintln(c.stdout, "\n  Top Risks Identified:")
		for i, risk := range summary.TopRisks {
			if i >= 3 {
				break
			}
			fmt.Fprintf(c.stdout, "    %d. %s\n", i+1, risk)
		}
	}
}

// buildAnalyzer uses the injected analyzer when present, otherwise builds a
// Gemini-backed one from the environment.
func (c *ConsoleLauncher) buildAnalyzer(ctx context.Context, cfg *launcher.Config) (launcher.ContractAnalyzer, error) {
	if cfg != nil && cfg.Analyzer != nil {
		return cfg.Analyzer, nil
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	modelName := c.config.model
	if modelName == "" {
		modelName = config.DefaultModel
	}
	model, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create model: %w", err)
	}

	ruleSet := rules.Builtin()
	if c.config.rulesFile != "" {
		ruleSet, err = rules.LoadFile(c.config.rulesFile)
		if err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
	}

	return analyzer.New(analyzer.Config{
		Model: model,
		Rules: ruleSet,
	})
}

// NewLauncher creates a new console launcher.
func NewLauncher() *ConsoleLauncher {
	config := &ConsoleConfig{}

	fs := flag.NewFlagSet("console", flag.ContinueOnError)
	fs.StringVar(&config.input, "input", "", "Path to the contract file (.txt or .md).")
	fs.StringVar(&config.output, "output", "analysis_result.json", "Path the JSON report is written to.")
	fs.StringVar(&config.language, "language", analyzer.LanguageEnglish, "Output language for explanations (English or Hindi).")
	fs.StringVar(&config.model, "model", "", "Gemini model name. Defaults to the service default.")
	fs.StringVar(&config.rulesFile, "rules", "", "Optional YAML file overriding the built-in risk rules.")

	return &ConsoleLauncher{
		config: config,
		flags:  fs,
		stdout: os.Stdout,
	}
}

// BuildLauncher parses command line args and returns a ready-to-run console launcher.
func BuildLauncher(args []string) (launcher.Launcher, []string, error) {
	l := NewLauncher()
	argsLeft, err := l.Parse(args)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot parse arguments for console: %v: %w", args, err)
	}
	return l, argsLeft, nil
}

// Run parses command line params, prepares the console launcher and runs it.
func Run(ctx context.Context, config *launcher.Config) error {
	launcherToRun, _, err := BuildLauncher(os.Args[1:])
	if err != nil {
		return fmt.Errorf("cannot build console launcher: %w", err)
	}
	return launcherToRun.Run(ctx, config)
}
