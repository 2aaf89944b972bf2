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

// The contractlens command runs the contract analysis service in one of
// three modes: console (default), api, or webui.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/contractlens/contractlens/cmd/launcher"
	"github.com/contractlens/contractlens/cmd/launcher/universal"
	"github.com/contractlens/contractlens/cmd/launcher/webui"
	"github.com/contractlens/contractlens/telemetry"
)

func main() {
	// run is separate so deferred cleanups still happen before os.Exit.
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	telemetryService, err := telemetry.New(ctx)
	if err != nil {
		log.Printf("cannot initialize telemetry: %v", err)
		return 1
	}
	telemetryService.SetGlobalOtelProviders()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := telemetryService.Shutdown(shutdownCtx); err != nil {
			log.Printf("telemetry shutdown failed: %v", err)
		}
	}()

	err = universal.Run(ctx, &launcher.Config{})
	if err != nil {
		log.Printf("contractlens: %v", err)
	}
	return webui.ExitCode(err)
}
