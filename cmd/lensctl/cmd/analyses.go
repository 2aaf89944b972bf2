package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/analyzer"
	"github.com/contractlens/contractlens/extract"
	"github.com/contractlens/contractlens/report"
	"github.com/contractlens/contractlens/server/restapi/models"
)

var (
	// Analyze flags
	language string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <contract-file>",
	Short: "Analyze a contract",
	Long:  `Submit a contract file to the analysis server and print the resulting report.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

// reportsCmd represents the reports command
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage stored analysis reports",
	Long:  `Commands for listing, fetching, and deleting analysis reports stored on the server.`,
}

// reportsListCmd represents the reports list command
var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports",
	Long:  `List the stored analysis reports for the configured app and user, newest first.`,
	RunE:  runReportsList,
}

// reportsGetCmd represents the reports get command
var reportsGetCmd = &cobra.Command{
	Use:   "get <report-id>",
	Short: "Get a stored report",
	Long:  `Fetch one stored analysis report by its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsGet,
}

// reportsDeleteCmd represents the reports delete command
var reportsDeleteCmd = &cobra.Command{
	Use:   "delete <report-id>",
	Short: "Delete a stored report",
	Long:  `Delete one stored analysis report by its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsDelete,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsGetCmd)
	reportsCmd.AddCommand(reportsDeleteCmd)

	analyzeCmd.Flags().StringVar(&language, "language", analyzer.LanguageEnglish, "output language for explanations (English or Hindi)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := extract.File(args[0])
	if err != nil {
		return fmt.Errorf("failed to read contract: %w", err)
	}

	reqBody, err := json.Marshal(models.CreateAnalysisRequest{
		Text:     text,
		Language: language,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest("POST", analysesPath(), bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := GetHTTPClient().Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to connect to analysis API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result report.ContractReport
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if IsJSONOutput() {
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	printReportSummary(&result)
	fmt.Printf("\nAnalysis stored with ID %s\n", result.ID)
	return nil
}

func printReportSummary(rep *report.ContractReport) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Metric", "Value")
	table.Append("Report ID", rep.ID)
	table.Append("Overall Risk", string(rep.Summary.OverallRiskFinal))
	table.Append("Completeness", fmt.Sprintf("%d/100", rep.Summary.CompletenessScore))
	table.Append("Document Length", fmt.Sprintf("%d words", rep.Summary.DocumentLengthWords))
	table.Append("Clauses", fmt.Sprintf("%d", len(rep.Clauses)))
	table.Render()

	ranked := analyzer.RankClauses(rep.Clauses)
	if len(ranked) == 0 {
		return
	}
	fmt.Println("\nHighest risk clauses:")
	clauseTable := tablewriter.NewWriter(os.Stdout)
	clauseTable.Header("Clause", "Risk", "Score", "Affected Party")
	for i, c := range ranked {
		if i >= 5 {
			break
		}
		clauseTable.Append(
			fmt.Sprintf("%d", c.ClauseIndex),
			string(c.RiskLevelFinal),
			fmt.Sprintf("%.0f", c.FinalRiskScore),
			c.AffectedParty,
		)
	}
	clauseTable.Render()
}

func runReportsList(cmd *cobra.Command, args []string) error {
	resp, err := GetHTTPClient().Get(analysesPath())
	if err != nil {
		return fmt.Errorf("failed to connect to analysis API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var results []models.AnalysisMetadata
	if err := json.Unmarshal(body, &results); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if IsJSONOutput() {
		output, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No reports stored")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Created", "Risk", "Clauses")
	for _, r := range results {
		table.Append(r.ID, r.CreatedAt.Format(time.RFC3339), string(r.OverallRiskFinal), fmt.Sprintf("%d", r.ClauseCount))
	}
	table.Render()
	return nil
}

func runReportsGet(cmd *cobra.Command, args []string) error {
	resp, err := GetHTTPClient().Get(analysesPath() + "/" + args[0])
	if err != nil {
		return fmt.Errorf("failed to connect to analysis API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result report.ContractReport
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if IsJSONOutput() {
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	printReportSummary(&result)
	return nil
}

func runReportsDelete(cmd *cobra.Command, args []string) error {
	httpReq, err := http.NewRequest("DELETE", analysesPath()+"/"+args[0], nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := GetHTTPClient().Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to connect to analysis API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	fmt.Printf("Report %s deleted\n", args[0])
	return nil
}
