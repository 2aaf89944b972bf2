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

// package api runs the analysis REST API server.
package api

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"google.golang.org/genai"

	"github.com/contractlens/contractlens/analyzer"
	"github.com/contractlens/contractlens/cmd/launcher"
	"github.com/contractlens/contractlens/llm/gemini"
	"github.com/contractlens/contractlens/reportservice"
	"github.com/contractlens/contractlens/reportservice/database"
	"github.com/contractlens/contractlens/server/restapi/config"
	"github.com/contractlens/contractlens/server/restapi/web"
)

// ApiConfig contains parameters for launching the REST API server.
type ApiConfig struct {
	port int
}

// ApiLauncher can launch the analysis REST API server.
type ApiLauncher struct {
	flags  *flag.FlagSet
	config *ApiConfig
}

// Keyword implements launcher.Sublauncher.
func (a *ApiLauncher) Keyword() string {
	return "api"
}

// Parse implements launcher.Sublauncher.
func (a *ApiLauncher) Parse(args []string) ([]string, error) {
	err := a.flags.Parse(args)
	if err != nil || !a.flags.Parsed() {
		return nil, fmt.Errorf("failed to parse api flags: %v", err)
	}
	restArgs := a.flags.Args()
	return restArgs, nil
}

// FormatSyntax implements launcher.Sublauncher.
func (a *ApiLauncher) FormatSyntax() string {
	return launcher.FormatFlagUsage(a.flags)
}

// SimpleDescription implements launcher.Sublauncher.
func (a *ApiLauncher) SimpleDescription() string {
	return "starts the analysis REST API server, accepting origins from ALLOWED_ORIGIN (CORS)"
}

// Run loads the server config from the environment and serves the API.
func (a *ApiLauncher) Run(ctx context.Context, cfg *launcher.Config) error {
	serverConfig, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.config.port != 0 {
		serverConfig.Port = a.config.port
	}

	contractAnalyzer := cfg.Analyzer
	if contractAnalyzer == nil {
		model, err := gemini.NewModel(ctx, serverConfig.Model, &genai.ClientConfig{
			APIKey: serverConfig.GeminiAPIKey,
		})
		if err != nil {
			return fmt.Errorf("create model: %w", err)
		}
		contractAnalyzer, err = analyzer.New(analyzer.Config{Model: model})
		if err != nil {
			return fmt.Errorf("create analyzer: %w", err)
		}
	}

	reports := cfg.Reports
	if reports == nil {
		if serverConfig.DatabasePath != "" {
			reports, err = database.NewSQLite(serverConfig.DatabasePath)
			if err != nil {
				return fmt.Errorf("open report database: %w", err)
			}
		} else {
			reports = reportservice.Mem()
		}
	}

	handler := web.SetupRouter(serverConfig, contractAnalyzer, reports)

	log.Printf("Starting the analysis REST API server on port %d", serverConfig.Port)
	return http.ListenAndServe(":"+strconv.Itoa(serverConfig.Port), handler)
}

// NewLauncher creates a new api launcher.
func NewLauncher() *ApiLauncher {
	config := &ApiConfig{}

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.IntVar(&config.port, "port", 0, "Localhost port for the server. Overrides the PORT environment variable.")

	return &ApiLauncher{
		config: config,
		flags:  fs,
	}
}

// BuildLauncher parses command line args and returns a ready-to-run api launcher.
func BuildLauncher(args []string) (launcher.Launcher, []string, error) {
	l := NewLauncher()
	argsLeft, err := l.Parse(args)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot parse arguments for api: %v: %w", args, err)
	}
	return l, argsLeft, nil
}
