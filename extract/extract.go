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

// Package extract reads contract documents into plain text.
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/contractlens/contractlens/preprocess"
)

// ErrUnsupportedFormat reports a document format no extractor handles.
type ErrUnsupportedFormat struct {
	Ext string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported document format %q", e.Ext)
}

// Extractor converts one document format to text.
type Extractor interface {
	// Extensions lists the file extensions (with dot, lower case) handled.
	Extensions() []string
	// Extract reads the document and returns sanitized text.
	Extract(r io.Reader) (string, error)
}

type plainText struct{}

func (plainText) Extensions() []string { return []string{".txt", ".md"} }

func (plainText) Extract(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return preprocess.Sanitize(string(b)), nil
}

var extractors = map[string]Extractor{}

func register(e Extractor) {
	for _, ext := range e.Extensions() {
		extractors[ext] = e
	}
}

func init() {
	register(plainText{})
}

// Text extracts text from a reader, choosing the extractor by the file
// name's extension.
func Text(r io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	e, ok := extractors[ext]
	if !ok {
		return "", &ErrUnsupportedFormat{Ext: ext}
	}
	return e.Extract(r)
}

// File extracts text from a document on disk.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Text(f, path)
}
