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

// package webui launches the external web UI runner with a UTF-8 environment.
package webui

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	"github.com/contractlens/contractlens/cmd/launcher"
)

const (
	defaultRunner = "streamlit"

	// entryPointFile is the application file handed to the runner. It is
	// passed unchanged as the runner's only positional argument.
	entryPointFile = "app.py"
)

// UTF8Env returns the environment overrides guaranteeing that the runner and
// its interpreter read and write UTF-8 regardless of the host locale.
func UTF8Env() []string {
	return []string{
		"PYTHONUTF8=1",
		"PYTHONIOENCODING=utf-8",
		"LANG=en_US.UTF-8",
		"LC_ALL=en_US.UTF-8",
	}
}

// WebUIConfig contains parameters for launching the web UI runner.
type WebUIConfig struct {
	runner string
}

// WebUILauncher starts the web UI by handing control to the external runner.
type WebUILauncher struct {
	flags  *flag.FlagSet
	config *WebUIConfig

	stdin          io.Reader
	stdout, stderr io.Writer
}

// Keyword implements launcher.Sublauncher.
func (w *WebUILauncher) Keyword() string {
	return "webui"
}

// Parse implements launcher.Sublauncher.
func (w *WebUILauncher) Parse(args []string) ([]string, error) {
	err := w.flags.Parse(args)
	if err != nil || !w.flags.Parsed() {
		return nil, fmt.Errorf("failed to parse webui flags: %v", err)
	}
	restArgs := w.flags.Args()
	return restArgs, nil
}

// FormatSyntax implements launcher.Sublauncher.
func (w *WebUILauncher) FormatSyntax() string {
	return launcher.FormatFlagUsage(w.flags)
}

// SimpleDescription implements launcher.Sublauncher.
func (w *WebUILauncher) SimpleDescription() string {
	return "starts the web UI by running the external frontend runner"
}

// Run spawns the runner with the UTF-8 environment overrides, forwarding the
// standard streams untouched. It blocks until the child exits; the child's
// failure comes back as an *exec.ExitError carrying its exit code.
func (w *WebUILauncher) Run(ctx context.Context, config *launcher.Config) error {
	cmd := exec.CommandContext(ctx, w.config.runner, entryPointFile)
	cmd.Env = append(os.Environ(), UTF8Env()...)
	cmd.Stdin = w.stdin
	cmd.Stdout = w.stdout
	cmd.Stderr = w.stderr

	log.Printf("Starting web UI: %s %s", w.config.runner, entryPointFile)
	return cmd.Run()
}

// ExitCode maps a Run error to the launcher's own exit status. A child that
// exited non-zero forwards its code verbatim; a runner that could not be
// found or started yields 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

// NewLauncher creates a new webui launcher.
func NewLauncher() *WebUILauncher {
	config := &WebUIConfig{}

	fs := flag.NewFlagSet("webui", flag.ContinueOnError)
	fs.StringVar(&config.runner, "runner", defaultRunner, "Command that serves the web UI. It is invoked with the application file as its only argument.")

	return &WebUILauncher{
		config: config,
		flags:  fs,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// BuildLauncher parses command line args and returns a ready-to-run webui launcher.
func BuildLauncher(args []string) (launcher.Launcher, []string, error) {
	l := NewLauncher()
	argsLeft, err := l.Parse(args)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot parse arguments for webui: %v: %w", args, err)
	}
	return l, argsLeft, nil
}
