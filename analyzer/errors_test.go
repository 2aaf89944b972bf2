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

package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"google.golang.org/genai"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "context canceled", err: context.Canceled, want: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: false},
		{name: "wrapped cancellation", err: fmt.Errorf("call: %w", context.Canceled), want: false},
		{name: "rate limit", err: &Error{Type: ErrorTypeRateLimit}, want: true},
		{name: "network", err: &Error{Type: ErrorTypeNetwork}, want: true},
		{name: "empty response", err: &Error{Type: ErrorTypeEmptyResponse}, want: true},
		{name: "invalid json", err: &Error{Type: ErrorTypeInvalidJSON}, want: false},
		{name: "validation", err: &Error{Type: ErrorTypeValidation}, want: false},
		{name: "api 429", err: genai.APIError{Code: http.StatusTooManyRequests}, want: true},
		{name: "api 503", err: genai.APIError{Code: http.StatusServiceUnavailable}, want: true},
		{name: "api 500", err: genai.APIError{Code: http.StatusInternalServerError}, want: true},
		{name: "api 400", err: genai.APIError{Code: http.StatusBadRequest}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	initial := 2 * time.Second
	max := 30 * time.Second

	// Jitter is ±20%, so each attempt has a known band.
	for attempt, want := range []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second} {
		got := calculateBackoff(attempt, initial, max, 2.0)
		lo := time.Duration(float64(want) * 0.8)
		hi := time.Duration(float64(want) * 1.2)
		if got < lo || got > hi {
			t.Errorf("calculateBackoff(%d) = %v, want within [%v, %v]", attempt, got, lo, hi)
		}
	}

	// Large attempts are capped at the maximum before jitter.
	if got := calculateBackoff(20, initial, max, 2.0); got > time.Duration(float64(max)*1.2) {
		t.Errorf("calculateBackoff(20) = %v, want at most %v", got, time.Duration(float64(max)*1.2))
	}
}

func TestIsRateLimitError(t *testing.T) {
	if !IsRateLimitError(&Error{Type: ErrorTypeRateLimit}) {
		t.Error("IsRateLimitError(rate limit) = false")
	}
	if !IsRateLimitError(genai.APIError{Code: http.StatusTooManyRequests}) {
		t.Error("IsRateLimitError(429) = false")
	}
	if IsRateLimitError(errors.New("boom")) {
		t.Error("IsRateLimitError(plain error) = true")
	}
}

func TestIsTimeoutError(t *testing.T) {
	if !IsTimeoutError(context.DeadlineExceeded) {
		t.Error("IsTimeoutError(deadline) = false")
	}
	if !IsTimeoutError(&Error{Type: ErrorTypeTimeout}) {
		t.Error("IsTimeoutError(timeout) = false")
	}
	if IsTimeoutError(context.Canceled) {
		t.Error("IsTimeoutError(canceled) = true")
	}
}
