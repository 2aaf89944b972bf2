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

package reportservice_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/contractlens/contractlens/report"
	"github.com/contractlens/contractlens/reportservice"
)

func makeReport(t *testing.T, id string, created string) *report.ContractReport {
	t.Helper()

	ts, err := time.Parse(time.RFC3339, created)
	if err != nil {
		t.Fatal(err)
	}
	return &report.ContractReport{
		ID:        id,
		CreatedAt: ts,
		Summary:   report.ContractSummary{OverallRiskFinal: report.RiskMedium},
	}
}

func TestInMemoryService_SaveGet(t *testing.T) {
	s := reportservice.Mem()

	want := makeReport(t, "rep1", "2024-05-01T10:00:00Z")
	if err := s.Save(t.Context(), &reportservice.SaveRequest{
		AppName: "app1", UserID: "user1", Report: want,
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Get(t.Context(), &reportservice.GetRequest{
		AppName: "app1", UserID: "user1", ReportID: "rep1",
	})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}
}

func TestInMemoryService_SaveRejectsMissingID(t *testing.T) {
	s := reportservice.Mem()

	if err := s.Save(t.Context(), &reportservice.SaveRequest{AppName: "app1", UserID: "user1"}); err == nil {
		t.Error("Save() with nil report: error = nil")
	}
	if err := s.Save(t.Context(), &reportservice.SaveRequest{
		AppName: "app1", UserID: "user1", Report: &report.ContractReport{},
	}); err == nil {
		t.Error("Save() with empty ID: error = nil")
	}
}

func TestInMemoryService_GetNotFound(t *testing.T) {
	s := reportservice.Mem()

	if err := s.Save(t.Context(), &reportservice.SaveRequest{
		AppName: "app1", UserID: "user1", Report: makeReport(t, "rep1", "2024-05-01T10:00:00Z"),
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tests := []struct {
		name string
		req  *reportservice.GetRequest
	}{
		{
			name: "unknown report",
			req:  &reportservice.GetRequest{AppName: "app1", UserID: "user1", ReportID: "other"},
		},
		{
			name: "no leakage across apps",
			req:  &reportservice.GetRequest{AppName: "app2", UserID: "user1", ReportID: "rep1"},
		},
		{
			name: "no leakage across users",
			req:  &reportservice.GetRequest{AppName: "app1", UserID: "user2", ReportID: "rep1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Get(t.Context(), tt.req); !errors.Is(err, reportservice.ErrReportNotFound) {
				t.Errorf("Get() error = %v, want ErrReportNotFound", err)
			}
		})
	}
}

func TestInMemoryService_ListOrdering(t *testing.T) {
	s := reportservice.Mem()

	for _, r := range []*report.ContractReport{
		makeReport(t, "old", "2024-05-01T10:00:00Z"),
		makeReport(t, "newest", "2024-05-03T10:00:00Z"),
		makeReport(t, "middle", "2024-05-02T10:00:00Z"),
	} {
		if err := s.Save(t.Context(), &reportservice.SaveRequest{
			AppName: "app1", UserID: "user1", Report: r,
		}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	got, err := s.List(t.Context(), &reportservice.ListRequest{AppName: "app1", UserID: "user1"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{"newest", "middle", "old"}, ids); diff != "" {
		t.Errorf("List() order mismatch (-want +got):\n%s", diff)
	}
}

func TestInMemoryService_ListEmpty(t *testing.T) {
	s := reportservice.Mem()

	got, err := s.List(t.Context(), &reportservice.ListRequest{AppName: "app1", UserID: "user1"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestInMemoryService_Delete(t *testing.T) {
	s := reportservice.Mem()

	if err := s.Save(t.Context(), &reportservice.SaveRequest{
		AppName: "app1", UserID: "user1", Report: makeReport(t, "rep1", "2024-05-01T10:00:00Z"),
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := s.Delete(t.Context(), &reportservice.DeleteRequest{
		AppName: "app1", UserID: "user1", ReportID: "rep1",
	}); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := s.Get(t.Context(), &reportservice.GetRequest{
		AppName: "app1", UserID: "user1", ReportID: "rep1",
	}); !errors.Is(err, reportservice.ErrReportNotFound) {
		t.Errorf("Get() after delete: error = %v, want ErrReportNotFound", err)
	}

	if err := s.Delete(t.Context(), &reportservice.DeleteRequest{
		AppName: "app1", UserID: "user1", ReportID: "rep1",
	}); !errors.Is(err, reportservice.ErrReportNotFound) {
		t.Errorf("second Delete() error = %v, want ErrReportNotFound", err)
	}
}

func TestInMemoryService_SaveOverwrites(t *testing.T) {
	s := reportservice.Mem()

	first := makeReport(t, "rep1", "2024-05-01T10:00:00Z")
	second := makeReport(t, "rep1", "2024-05-02T10:00:00Z")
	second.Summary.OverallRiskFinal = report.RiskHigh

	for _, r := range []*report.ContractReport{first, second} {
		if err := s.Save(t.Context(), &reportservice.SaveRequest{
			AppName: "app1", UserID: "user1", Report: r,
		}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	got, err := s.Get(t.Context(), &reportservice.GetRequest{
		AppName: "app1", UserID: "user1", ReportID: "rep1",
	})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Summary.OverallRiskFinal != report.RiskHigh {
		t.Errorf("Get() returned stale report: %+v", got.Summary)
	}
}
