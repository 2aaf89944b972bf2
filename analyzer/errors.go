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
	"math"
	"net/http"
	"time"

	"google.golang.org/genai"
)

const (
	defaultInitialBackoff = 2 * time.Second
	defaultMaxBackoff     = 30 * time.Second
	defaultBackoffFactor  = 2.0
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeInvalidJSON   ErrorType = "invalid_json"
	ErrorTypeEmptyResponse ErrorType = "empty_response"
	ErrorTypeTimeout       ErrorType = "timeout"
	ErrorTypeRateLimit     ErrorType = "rate_limit"
	ErrorTypeNetwork       ErrorType = "network"
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeUnknown       ErrorType = "unknown"
)

// Error represents a structured error from the analysis engine
type Error struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details any       `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Context errors (timeout/canceled) are not retryable.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	var aerr *Error
	if errors.As(err, &aerr) {
		switch aerr.Type {
		case ErrorTypeRateLimit, ErrorTypeNetwork, ErrorTypeEmptyResponse:
			return true
		default:
			return false
		}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests ||
			apiErr.Code == http.StatusServiceUnavailable ||
			apiErr.Code >= http.StatusInternalServerError
	}

	return false
}

// calculateBackoff calculates exponential backoff with jitter
func calculateBackoff(attempt int, initial, max time.Duration, factor float64) time.Duration {
	backoff := float64(initial) * math.Pow(factor, float64(attempt))
	if backoff > float64(max) {
		backoff = float64(max)
	}

	// Add jitter (±20%)
	jitter := backoff * 0.2 * (2*float64(time.Now().UnixNano()%100)/100 - 1)
	backoff += jitter

	if backoff < 0 {
		backoff = float64(initial)
	}

	return time.Duration(backoff)
}

// IsRateLimitError checks if error is a rate limit error
func IsRateLimitError(err error) bool {
	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr.Type == ErrorTypeRateLimit
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	return false
}

// IsTimeoutError checks if error is a timeout
func IsTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var aerr *Error
	if errors.As(err, &aerr) {
		return aerr.Type == ErrorTypeTimeout
	}
	return false
}
