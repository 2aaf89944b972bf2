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

package preprocess_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/contractlens/contractlens/preprocess"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "windows line endings",
			in:   "line one\r\nline two\r\n",
			want: "line one\nline two\n",
		},
		{
			name: "bare carriage returns",
			in:   "line one\rline two",
			want: "line one\nline two",
		},
		{
			name: "nul bytes stripped",
			in:   "before\x00after",
			want: "beforeafter",
		},
		{
			name: "blank runs collapsed",
			in:   "a\n\n\n\n\nb",
			want: "a\n\nb",
		},
		{
			name: "invalid utf8 replaced",
			in:   "caf\xff",
			want: "caf�",
		},
		{
			name: "unicode preserved",
			in:   "अनुबंध की शर्तें",
			want: "अनुबंध की शर्तें",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocess.Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "blank line boundaries",
			in:   "First clause about payment terms.\n\nSecond clause about delivery.",
			want: []string{
				"First clause about payment terms.",
				"Second clause about delivery.",
			},
		},
		{
			name: "numbered headings split one block",
			in: "1. Payment shall be due within thirty days.\n" +
				"2. Either party may terminate with notice.",
			want: []string{
				"1. Payment shall be due within thirty days.",
				"2. Either party may terminate with notice.",
			},
		},
		{
			name: "section headings split",
			in: "Section 1 covers the scope of services provided.\n" +
				"Section 2 covers the compensation payable.",
			want: []string{
				"Section 1 covers the scope of services provided.",
				"Section 2 covers the compensation payable.",
			},
		},
		{
			name: "short fragments dropped",
			in:   "ok\n\nThis clause is long enough to keep around.",
			want: []string{"This clause is long enough to keep around."},
		},
		{
			name: "whitespace only blocks dropped",
			in:   "   \n\n\t\n\nReal clause text that survives filtering.",
			want: []string{"Real clause text that survives filtering."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocess.Segment(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Segment() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnonymiser_Anonymise(t *testing.T) {
	a := preprocess.NewAnonymiser()

	in := `This Agreement is between Acme Corp (the "Company") and Jane Doe ` +
		`(the "Consultant"). Contact the Company at legal@acme.example or +1 555-123-4567.`
	got := a.Anonymise(in)

	for _, leak := range []string{"legal@acme.example", "555-123-4567"} {
		if strings.Contains(got, leak) {
			t.Errorf("Anonymise() leaked %q in %q", leak, got)
		}
	}
	for _, want := range []string{"PARTY_A", "PARTY_B", "EMAIL_1", "PHONE_1"} {
		if !strings.Contains(got, want) {
			t.Errorf("Anonymise() = %q, missing placeholder %q", got, want)
		}
	}
	if strings.Contains(got, "the \"Company\"") && !strings.Contains(got, "PARTY_A") {
		t.Errorf("defined term not replaced: %q", got)
	}

	wantMap := map[string]string{
		"PARTY_A": "Company",
		"PARTY_B": "Consultant",
		"EMAIL_1": "legal@acme.example",
		"PHONE_1": "+1 555-123-4567",
	}
	if diff := cmp.Diff(wantMap, a.EntityMap()); diff != "" {
		t.Errorf("EntityMap() mismatch (-want +got):\n%s", diff)
	}
}

func TestAnonymiser_KeepsAmountsAndDates(t *testing.T) {
	a := preprocess.NewAnonymiser()

	in := "A fee of $100000.00 is due on 2024-01-01, invoiced to billing@acme.example."
	got := a.Anonymise(in)

	want := "A fee of $100000.00 is due on 2024-01-01, invoiced to EMAIL_1."
	if got != want {
		t.Errorf("Anonymise() = %q, want %q", got, want)
	}
	if strings.Contains(got, "PHONE_") {
		t.Errorf("amount or date anonymised as phone number: %q", got)
	}
}

func TestAnonymiser_StablePlaceholders(t *testing.T) {
	a := preprocess.NewAnonymiser()

	first := a.Anonymise(`Acme (the "Supplier") delivers the goods.`)
	second := a.Anonymise(`The Supplier warrants the goods are free of defects.`)

	if !strings.Contains(first, "PARTY_A") {
		t.Errorf("first Anonymise() = %q, missing PARTY_A", first)
	}
	if !strings.Contains(second, "PARTY_A") {
		t.Errorf("later occurrence not reusing placeholder: %q", second)
	}
	if len(a.EntityMap()) != 1 {
		t.Errorf("EntityMap() has %d entries, want 1", len(a.EntityMap()))
	}
}

func TestContract(t *testing.T) {
	text := `This Agreement is made between Acme Corp (the "Vendor") and Beta LLC (the "Customer").

1. The Vendor shall deliver all services described in Exhibit A.
2. The Customer shall pay invoices within thirty days of receipt.`

	got := preprocess.Contract(text)

	if len(got.Clauses) != len(got.AnonymisedClauses) {
		t.Fatalf("clause lists not parallel: %d original, %d anonymised",
			len(got.Clauses), len(got.AnonymisedClauses))
	}
	if len(got.Clauses) != 3 {
		t.Fatalf("len(Clauses) = %d, want 3: %q", len(got.Clauses), got.Clauses)
	}

	if !strings.Contains(got.Clauses[1], "Vendor") {
		t.Errorf("original clause altered: %q", got.Clauses[1])
	}
	if strings.Contains(got.AnonymisedClauses[1], "Vendor") {
		t.Errorf("anonymised clause leaked entity: %q", got.AnonymisedClauses[1])
	}
	if !strings.Contains(got.AnonymisedText, "PARTY_A") {
		t.Errorf("AnonymisedText missing placeholder: %q", got.AnonymisedText)
	}
	if got.EntityMap["PARTY_A"] != "Vendor" || got.EntityMap["PARTY_B"] != "Customer" {
		t.Errorf("EntityMap = %v", got.EntityMap)
	}
}
