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

// Package reportservice abstracts storage of contract analysis reports.
package reportservice

import (
	"context"
	"errors"

	"github.com/contractlens/contractlens/report"
)

// ErrReportNotFound is returned when a report is not found.
var ErrReportNotFound = errors.New("analysis report not found")

// Service abstracts the report storage.
type Service interface {
	// Save stores the report. Saving under an existing report ID replaces
	// the stored report.
	Save(ctx context.Context, req *SaveRequest) error
	// Get returns the requested report.
	// It returns ErrReportNotFound if the report does not exist.
	Get(ctx context.Context, req *GetRequest) (*report.ContractReport, error)
	// List lists the reports for an app and user, newest first.
	// It returns an empty list if no report matches.
	List(ctx context.Context, req *ListRequest) ([]*report.ContractReport, error)
	// Delete deletes the requested report.
	// It returns ErrReportNotFound if the report does not exist.
	Delete(ctx context.Context, req *DeleteRequest) error
}

// SaveRequest is the request for Service's Save.
type SaveRequest struct {
	// Required.
	AppName, UserID string

	// Required. The report ID comes from the report itself.
	Report *report.ContractReport
}

// GetRequest is the request for Service's Get.
type GetRequest struct {
	// Required.
	AppName, UserID, ReportID string
}

// ListRequest is the request for Service's List.
type ListRequest struct {
	// App name and user id. Required.
	AppName, UserID string
}

// DeleteRequest is the request for Service's Delete.
type DeleteRequest struct {
	// Identifies a unique report. Required.
	AppName, UserID, ReportID string
}
