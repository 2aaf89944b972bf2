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

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/contractlens/contractlens/analyzer"
	"github.com/contractlens/contractlens/preprocess"
	"github.com/contractlens/contractlens/report"
	"github.com/contractlens/contractlens/reportservice"
	statuserrors "github.com/contractlens/contractlens/server/restapi/errors"
	"github.com/contractlens/contractlens/server/restapi/models"
)

// ContractAnalyzer runs a full contract analysis.
type ContractAnalyzer interface {
	AnalyzeContract(ctx context.Context, req *analyzer.ContractRequest) (*report.ContractReport, error)
}

type AnalysesAPIController struct {
	analyzer ContractAnalyzer
	service  reportservice.Service
}

func NewAnalysesAPIController(a ContractAnalyzer, service reportservice.Service) *AnalysesAPIController {
	return &AnalysesAPIController{analyzer: a, service: service}
}

func pathParam(req *http.Request, name string) (string, error) {
	v := mux.Vars(req)[name]
	if v == "" {
		return "", statuserrors.NewStatusError(fmt.Errorf("%s parameter is required", name), http.StatusBadRequest)
	}
	return v, nil
}

// CreateAnalysis runs the full pipeline on posted contract text and stores
// the resulting report.
func (c *AnalysesAPIController) CreateAnalysis(rw http.ResponseWriter, req *http.Request) error {
	appName, err := pathParam(req, "app_name")
	if err != nil {
		return err
	}
	userID, err := pathParam(req, "user_id")
	if err != nil {
		return err
	}

	createRequest := models.CreateAnalysisRequest{}
	if err := json.NewDecoder(req.Body).Decode(&createRequest); err != nil {
		return statuserrors.NewStatusError(err, http.StatusBadRequest)
	}
	if strings.TrimSpace(createRequest.Text) == "" {
		return statuserrors.NewStatusError(fmt.Errorf("text is required"), http.StatusBadRequest)
	}

	prep := preprocess.Contract(createRequest.Text)
	if len(prep.Clauses) == 0 {
		return statuserrors.NewStatusError(fmt.Errorf("no clauses found in text"), http.StatusBadRequest)
	}

	rep, err := c.analyzer.AnalyzeContract(req.Context(), &analyzer.ContractRequest{
		Clauses:           prep.Clauses,
		AnonymisedClauses: prep.AnonymisedClauses,
		FullText:          prep.AnonymisedText,
		AnonymisationMap:  prep.EntityMap,
		Language:          createRequest.Language,
	})
	if err != nil {
		return statuserrors.NewStatusError(fmt.Errorf("analyze contract: %w", err), http.StatusInternalServerError)
	}

	if err := c.service.Save(req.Context(), &reportservice.SaveRequest{
		AppName: appName,
		UserID:  userID,
		Report:  rep,
	}); err != nil {
		return statuserrors.NewStatusError(fmt.Errorf("save report: %w", err), http.StatusInternalServerError)
	}

	EncodeJSONResponse(rep, http.StatusCreated, rw)
	return nil
}

// GetAnalysis returns a stored report.
func (c *AnalysesAPIController) GetAnalysis(rw http.ResponseWriter, req *http.Request) error {
	appName, err := pathParam(req, "app_name")
	if err != nil {
		return err
	}
	userID, err := pathParam(req, "user_id")
	if err != nil {
		return err
	}
	analysisID, err := pathParam(req, "analysis_id")
	if err != nil {
		return err
	}

	rep, err := c.service.Get(req.Context(), &reportservice.GetRequest{
		AppName:  appName,
		UserID:   userID,
		ReportID: analysisID,
	})
	if errors.Is(err, reportservice.ErrReportNotFound) {
		return statuserrors.NewStatusError(err, http.StatusNotFound)
	}
	if err != nil {
		return statuserrors.NewStatusError(err, http.StatusInternalServerError)
	}

	EncodeJSONResponse(rep, http.StatusOK, rw)
	return nil
}

// ListAnalyses returns metadata for the stored reports, newest first.
func (c *AnalysesAPIController) ListAnalyses(rw http.ResponseWriter, req *http.Request) error {
	appName, err := pathParam(req, "app_name")
	if err != nil {
		return err
	}
	userID, err := pathParam(req, "user_id")
	if err != nil {
		return err
	}

	reports, err := c.service.List(req.Context(), &reportservice.ListRequest{
		AppName: appName,
		UserID:  userID,
	})
	if err != nil {
		return statuserrors.NewStatusError(err, http.StatusInternalServerError)
	}

	metadata := []models.AnalysisMetadata{}
	for _, rep := range reports {
		metadata = append(metadata, models.FromReport(rep))
	}
	EncodeJSONResponse(metadata, http.StatusOK, rw)
	return nil
}

// DeleteAnalysis removes a stored report.
func (c *AnalysesAPIController) DeleteAnalysis(rw http.ResponseWriter, req *http.Request) error {
	appName, err := pathParam(req, "app_name")
	if err != nil {
		return err
	}
	userID, err := pathParam(req, "user_id")
	if err != nil {
		return err
	}
	analysisID, err := pathParam(req, "analysis_id")
	if err != nil {
		return err
	}

	err = c.service.Delete(req.Context(), &reportservice.DeleteRequest{
		AppName:  appName,
		UserID:   userID,
		ReportID: analysisID,
	})
	if errors.Is(err, reportservice.ErrReportNotFound) {
		return statuserrors.NewStatusError(err, http.StatusNotFound)
	}
	if err != nil {
		return statuserrors.NewStatusError(err, http.StatusInternalServerError)
	}

	rw.WriteHeader(http.StatusOK)
	return nil
}

// Health reports server liveness.
func (c *AnalysesAPIController) Health(rw http.ResponseWriter, req *http.Request) error {
	EncodeJSONResponse(map[string]string{"status": "ok"}, http.StatusOK, rw)
	return nil
}
