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

// Package database provides a SQL-backed report service.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/contractlens/contractlens/report"
	"github.com/contractlens/contractlens/reportservice"
)

// reportRecord is the persisted form of one analysis report.
type reportRecord struct {
	AppName  string `gorm:"primaryKey"`
	UserID   string `gorm:"primaryKey"`
	ReportID string `gorm:"primaryKey"`

	CreatedAt time.Time `gorm:"index"`
	Report    ReportJSON
}

func (reportRecord) TableName() string { return "analysis_reports" }

type dbService struct {
	db *gorm.DB
}

// NewSQLite opens (or creates) a SQLite database at path and returns a report
// service backed by it.
func NewSQLite(path string) (reportservice.Service, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return New(db)
}

// New returns a report service backed by an already opened gorm DB.
func New(db *gorm.DB) (reportservice.Service, error) {
	if err := db.AutoMigrate(&reportRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &dbService{db: db}, nil
}

func (s *dbService) Save(ctx context.Context, req *reportservice.SaveRequest) error {
	if req.Report == nil || req.Report.ID == "" {
		return fmt.Errorf("save: report with ID is required")
	}

	rec := &reportRecord{
		AppName:   req.AppName,
		UserID:    req.UserID,
		ReportID:  req.Report.ID,
		CreatedAt: req.Report.CreatedAt,
		Report:    ReportJSON{Report: req.Report},
	}
	return s.db.WithContext(ctx).Save(rec).Error
}

func (s *dbService) Get(ctx context.Context, req *reportservice.GetRequest) (*report.ContractReport, error) {
	var rec reportRecord
	err := s.db.WithContext(ctx).
		Where("app_name = ? AND user_id = ? AND report_id = ?", req.AppName, req.UserID, req.ReportID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reportservice.ErrReportNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.Report.Report, nil
}

func (s *dbService) List(ctx context.Context, req *reportservice.ListRequest) ([]*report.ContractReport, error) {
	var recs []reportRecord
	err := s.db.WithContext(ctx).
		Where("app_name = ? AND user_id = ?", req.AppName, req.UserID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	res := make([]*report.ContractReport, 0, len(recs))
	for _, rec := range recs {
		res = append(res, rec.Report.Report)
	}
	return res, nil
}

func (s *dbService) Delete(ctx context.Context, req *reportservice.DeleteRequest) error {
	tx := s.db.WithContext(ctx).
		Where("app_name = ? AND user_id = ? AND report_id = ?", req.AppName, req.UserID, req.ReportID).
		Delete(&reportRecord{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return reportservice.ErrReportNotFound
	}
	return nil
}
