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

package reportservice

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/contractlens/contractlens/report"
)

// Mem returns a new in-memory implementation of the report service. Thread-safe.
func Mem() Service {
	return &inMemoryService{
		store: make(map[key]map[reportID]*report.ContractReport),
	}
}

type key struct {
	appName, userID string
}

type reportID = string

// inMemoryService is an in-memory implementation of Service.
type inMemoryService struct {
	mu    sync.RWMutex
	store map[key]map[reportID]*report.ContractReport
}

func (s *inMemoryService) Save(ctx context.Context, req *SaveRequest) error {
	if req.Report == nil || req.Report.ID == "" {
		return fmt.Errorf("save: report with ID is required")
	}

	k := key{appName: req.AppName, userID: req.UserID}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.store[k]
	if !ok {
		s.store[k] = map[reportID]*report.ContractReport{
			req.Report.ID: req.Report,
		}
		return nil
	}

	v[req.Report.ID] = req.Report
	return nil
}

func (s *inMemoryService) Get(ctx context.Context, req *GetRequest) (*report.ContractReport, error) {
	k := key{appName: req.AppName, userID: req.UserID}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.store[k][req.ReportID]
	if !ok {
		return nil, ErrReportNotFound
	}
	return r, nil
}

func (s *inMemoryService) List(ctx context.Context, req *ListRequest) ([]*report.ContractReport, error) {
	k := key{appName: req.AppName, userID: req.UserID}

	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*report.ContractReport, 0, len(s.store[k]))
	for _, r := range s.store[k] {
		res = append(res, r)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (s *inMemoryService) Delete(ctx context.Context, req *DeleteRequest) error {
	k := key{appName: req.AppName, userID: req.UserID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store[k][req.ReportID]; !ok {
		return ErrReportNotFound
	}
	delete(s.store[k], req.ReportID)
	return nil
}
