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

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Service wraps the telemetry providers and implements functions for
// telemetry lifecycle management.
type Service interface {
	// SetGlobalOtelProviders registers the configured providers as the global OTel providers.
	SetGlobalOtelProviders()

	// TracerProvider returns the configured TracerProvider or nil.
	TracerProvider() *sdktrace.TracerProvider

	// Shutdown shuts down underlying OTel providers.
	Shutdown(ctx context.Context) error
}

// New initializes a new telemetry service and the underlying TracerProvider.
// Options can be used to customize the defaults, e.g. use custom credentials,
// add SpanProcessors, or use a preconfigured TracerProvider. Providers have
// to be registered as global OTel providers either manually or via
// [Service.SetGlobalOtelProviders].
//
// The caller must call the Shutdown method to flush pending spans and release
// resources.
func New(ctx context.Context, opts ...Option) (Service, error) {
	cfg, err := configure(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return newInternal(cfg)
}

// Providers holds the initialized OTel providers.
type Providers struct {
	tracerProvider *sdktrace.TracerProvider
}

// SetGlobalOtelProviders registers the configured providers globally.
func (p *Providers) SetGlobalOtelProviders() {
	if p.tracerProvider != nil {
		otel.SetTracerProvider(p.tracerProvider)
	}
}

// TracerProvider returns the configured TracerProvider or nil.
func (p *Providers) TracerProvider() *sdktrace.TracerProvider {
	return p.tracerProvider
}

// Shutdown shuts down the underlying providers.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p.tracerProvider == nil {
		return nil
	}
	return p.tracerProvider.Shutdown(ctx)
}
