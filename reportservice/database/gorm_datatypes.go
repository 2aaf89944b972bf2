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

package database

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"

	"github.com/contractlens/contractlens/report"
)

// ReportJSON stores a full contract report as a JSON column, handling
// dialect-specific serialization by implementing gorm.Serializer.
type ReportJSON struct {
	Report *report.ContractReport
}

// GormDataType / GormDBDataType (For Schema/Migrations)

func (ReportJSON) GormDataType() string {
	return "text"
}

func (ReportJSON) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "mysql":
		return "LONGTEXT"
	case "spanner":
		return "STRING(MAX)"
	default:
		return ""
	}
}

// Value implements the gorm.Serializer Value method.
func (rj ReportJSON) Value() (driver.Value, error) {
	if rj.Report == nil {
		return "{}", nil
	}
	b, err := json.Marshal(rj.Report)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the gorm.Serializer Scan method.
func (rj *ReportJSON) Scan(value any) error {
	if value == nil {
		rj.Report = nil
		return nil
	}

	var bytes []byte

	switch v := value.(type) {
	case []byte: // Postgres, MySQL
		bytes = v
	case string: // Some drivers
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSON value: %T", value)
	}

	if len(bytes) == 0 {
		rj.Report = nil
		return nil
	}

	rj.Report = &report.ContractReport{}
	return json.Unmarshal(bytes, rj.Report)
}

func (rj ReportJSON) GormValue(ctx context.Context, db *gorm.DB) clause.Expr {
	data, _ := json.Marshal(rj.Report)
	return gorm.Expr("?", string(data))
}
