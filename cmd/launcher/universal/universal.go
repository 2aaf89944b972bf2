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

// package universal selects a launcher from the first command-line argument.
package universal

import (
	"context"
	"fmt"
	"os"

	"github.com/contractlens/contractlens/cmd/launcher"
	"github.com/contractlens/contractlens/cmd/launcher/api"
	"github.com/contractlens/contractlens/cmd/launcher/console"
	"github.com/contractlens/contractlens/cmd/launcher/webui"
)

// Run builds the launcher according to command-line arguments and then executes it
func Run(ctx context.Context, config *launcher.Config) error {
	args := os.Args[1:] // skip file name, safe

	// if there are no arguments - run console
	if len(args) == 0 {
		return console.Run(ctx, config)
	}

	launcherToRun, _, err := BuildLauncher(args)
	if err != nil {
		return err
	}

	err = launcherToRun.Run(ctx, config)
	if err != nil {
		return fmt.Errorf("run failed for %s launcher: %w", launcherToRun.Keyword(), err)
	}
	return nil
}

// BuildLauncher uses the first argument to choose an appropriate launcher
// type and then builds it, returning the remaining un-parsed arguments.
func BuildLauncher(args []string) (launcher.Launcher, []string, error) {
	if len(args) == 0 {
		return console.BuildLauncher(args)
	}

	switch args[0] {
	case "api":
		return api.BuildLauncher(args[1:])
	case "webui":
		return webui.BuildLauncher(args[1:])
	case "console":
		return console.BuildLauncher(args[1:])
	default:
		return nil, nil, fmt.Errorf("universal launcher requires either no arguments (which will run console version) or one of 'api', 'webui' or 'console', got: %s", args[0])
	}
}
