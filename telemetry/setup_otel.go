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
	"fmt"
	"os"

	"go.opentelemetry.io/contrib/detectors/gcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func configure(ctx context.Context, opts ...Option) (*config, error) {
	cfg := &config{}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	var err error
	if cfg.oTelToCloud {
		// Load ADC if no credentials are provided in the config.
		if cfg.googleCredentials == nil {
			cfg.googleCredentials, err = google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
			if err != nil {
				return nil, fmt.Errorf("failed to find default credentials: %w", err)
			}
		}
		cfg.gcpQuotaProject, err = resolveProject(cfg.gcpQuotaProject, cfg.googleCredentials, cfg.oTelToCloud, "quota")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve GCP quota project: %w", err)
		}
		cfg.gcpResourceProject, err = resolveProject(cfg.gcpResourceProject, cfg.googleCredentials, cfg.oTelToCloud, "resource")
		if err != nil {
			return nil, fmt.Errorf("failed to resolve GCP resource project: %w", err)
		}
	}

	cfg.resource, err = resolveResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve resource: %w", err)
	}

	spanProcessors, err := configureExporters(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure exporters: %w", err)
	}
	cfg.spanProcessors = append(cfg.spanProcessors, spanProcessors...)

	return cfg, nil
}

func newInternal(cfg *config) (*Providers, error) {
	tp, err := initTracerProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer provider: %w", err)
	}

	return &Providers{tracerProvider: tp}, nil
}

// resolveProject determines the GCP project in the following order:
// 1. The configured project, if present.
// 2. Project ID from credentials, if present.
// 3. GOOGLE_CLOUD_PROJECT environment variable.
func resolveProject(configuredProject string, creds *google.Credentials, requireProject bool, projectType string) (string, error) {
	if configuredProject != "" {
		return configuredProject, nil
	}
	if creds != nil && creds.ProjectID != "" {
		return creds.ProjectID, nil
	}
	project, ok := os.LookupEnv("GOOGLE_CLOUD_PROJECT")
	if !ok && requireProject {
		return "", fmt.Errorf("telemetry.googleapis.com requires setting the %s project. Refer to the telemetry options for the available ways to set it", projectType)
	}
	return project, nil
}

// resolveResource creates a new resource with attributes specified in the following order (later attributes override earlier ones):
//  1. [resource.Default()] populates the resource labels from environment variables like OTEL_SERVICE_NAME and OTEL_RESOURCE_ATTRIBUTES.
//  2. GCP related attributes when otelToCloud is enabled - `gcp.project_id` attribute needed by Cloud Trace and other attributes provided by [gcp.NewDetector()].
//  3. Resource from config, if present.
func resolveResource(ctx context.Context, cfg *config) (*resource.Resource, error) {
	r := resource.Default()

	opts := []resource.Option{
		resource.WithAttributes(
			attribute.Key("gcp.project_id").String(cfg.gcpResourceProject),
		),
	}
	if cfg.oTelToCloud {
		// Add GCP specific detectors.
		opts = append(opts, resource.WithDetectors(gcp.NewDetector()))
	}
	gcpResource, err := resource.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP resource: %w", err)
	}
	r, err = resource.Merge(r, gcpResource)
	if err != nil {
		return nil, fmt.Errorf("failed to merge default and GCP resources: %w", err)
	}
	if cfg.resource != nil {
		r, err = resource.Merge(r, cfg.resource)
		if err != nil {
			return nil, fmt.Errorf("failed to merge with config resource: %w", err)
		}
	}
	return r, nil
}

// configureExporters initializes OTel exporters from environment variables and otelToCloud.
func configureExporters(ctx context.Context, cfg *config) ([]sdktrace.SpanProcessor, error) {
	var spanProcessors []sdktrace.SpanProcessor

	_, otelEndpointExists := os.LookupEnv("OTEL_EXPORTER_OTLP_ENDPOINT")
	_, otelTracesEndpointExists := os.LookupEnv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")
	if otelEndpointExists || otelTracesEndpointExists {
		exporter, err := otlptracehttp.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP HTTP exporter: %w", err)
		}
		spanProcessors = append(spanProcessors, sdktrace.NewBatchSpanProcessor(exporter))
	}
	if cfg.oTelToCloud {
		spanExporter, err := newGcpSpanExporter(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCP span exporter: %w", err)
		}
		spanProcessors = append(spanProcessors, sdktrace.NewBatchSpanProcessor(spanExporter))
	}
	return spanProcessors, nil
}

func initTracerProvider(cfg *config) (*sdktrace.TracerProvider, error) {
	if cfg.tracerProvider != nil {
		return cfg.tracerProvider, nil
	}
	if len(cfg.spanProcessors) == 0 {
		return nil, nil
	}
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(cfg.resource),
	}
	for _, p := range cfg.spanProcessors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	return sdktrace.NewTracerProvider(opts...), nil
}

func newGcpSpanExporter(ctx context.Context, cfg *config) (sdktrace.SpanExporter, error) {
	client := oauth2.NewClient(ctx, cfg.googleCredentials.TokenSource)
	return otlptracehttp.New(ctx,
		otlptracehttp.WithHTTPClient(client),
		otlptracehttp.WithEndpointURL("https://telemetry.googleapis.com/v1/traces"),
		// Pass the quota project id in headers to fix auth errors.
		// https://cloud.google.com/docs/authentication/adc-troubleshooting/user-creds
		otlptracehttp.WithHeaders(map[string]string{
			"x-goog-user-project": cfg.gcpQuotaProject,
		}))
}
