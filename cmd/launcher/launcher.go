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

// package launcher provides ways to run the contract analysis service:
// as a console pipeline, as a REST API server, or as the web UI frontend.
package launcher

import (
	"context"
	"flag"
	"strings"

	"github.com/contractlens/contractlens/analyzer"
	"github.com/contractlens/contractlens/report"
	"github.com/contractlens/contractlens/reportservice"
)

// ContractAnalyzer runs a full contract analysis.
type ContractAnalyzer interface {
	AnalyzeContract(ctx context.Context, req *analyzer.ContractRequest) (*report.ContractReport, error)
}

// Config carries shared dependencies into a launcher. Zero values mean the
// launcher builds its own from the environment.
type Config struct {
	// Analyzer overrides the model-backed analyzer built from the environment.
	Analyzer ContractAnalyzer

	// Reports overrides the report storage.
	Reports reportservice.Service
}

// Launcher runs one mode of the application after its arguments are parsed.
type Launcher interface {
	Sublauncher
	Run(ctx context.Context, config *Config) error
}

// Sublauncher handles the command-line surface of one launcher.
type Sublauncher interface {
	Keyword() string
	Parse(args []string) ([]string, error)
	FormatSyntax() string
	SimpleDescription() string
}

func FormatFlagUsage(fs *flag.FlagSet) string {
	var b strings.Builder
	o := fs.Output()
	fs.SetOutput(&b)
	fs.PrintDefaults()
	fs.SetOutput(o)
	return b.String()
}
