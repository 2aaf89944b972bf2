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

package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/contractlens/contractlens/llm"
)

type Model struct {
	client *genai.Client
	name   string
}

func NewModel(ctx context.Context, model string, cfg *genai.ClientConfig) (*Model, error) {
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Model{name: model, client: client}, nil
}

func (m *Model) Name() string {
	return m.name
}

// Generate calls the model synchronously returning result from the first candidate.
func (m *Model) Generate(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.name, req.Contents, req.GenerateConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to call model: %w", err)
	}
	if len(resp.Candidates) == 0 {
		// shouldn't happen?
		return nil, fmt.Errorf("empty response")
	}
	candidate := resp.Candidates[0]
	return &llm.Response{
		Content:      candidate.Content,
		TurnComplete: true,
	}, nil
}

var _ llm.Model = (*Model)(nil)
