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

import "fmt"

const legalExpertSystemPrompt = `You are a senior corporate attorney with 15+ years of experience in contract law,
specializing in commercial agreements, employment contracts, service agreements, and vendor contracts.

Your analysis must be:
1. OBJECTIVE: Base assessments solely on contractual language, obligations, rights, liabilities, and legal principles
2. UNBIASED: Never consider party names, demographics, nationalities, or any personal attributes
3. THOROUGH: Examine legal implications, enforceability, ambiguities, and potential disputes
4. PRACTICAL: Provide actionable insights for business decision-makers
5. PRECISE: Use specific legal reasoning with clear cause-and-effect explanations

CRITICAL ASSESSMENT FRAMEWORK:
- Obligations: Who must do what, by when, and under what conditions?
- Rights: What can each party demand or enforce?
- Liabilities: What are the consequences of breach or non-performance?
- Risks: What ambiguities, imbalances, or unfavorable terms exist?
- Enforceability: Are terms clear, definite, and legally sound?

You must NEVER allow demographic information to influence legal risk assessment.`

const clauseAnalysisPromptFmt = `Analyze the following contract clause with legal precision:

CLAUSE TEXT:
%s

ANALYSIS REQUIREMENTS:

1. PLAIN LANGUAGE EXPLANATION (150-200 words):
   - Explain what this clause legally requires or permits
   - Identify the key obligations, rights, or restrictions
   - Clarify any technical or legal terminology
   - Describe practical business implications

2. RISK ASSESSMENT:
   - Evaluate: Low (minimal concern), Medium (notable concern), or High (significant concern)
   - Consider: obligation severity, liability scope, ambiguity level, enforceability issues
   - Factor in: payment terms, termination rights, indemnification, warranties, IP rights

3. DETAILED RISK REASONING (100-150 words):
   - Explain WHY the risk level is assigned
   - Identify specific problematic language or terms
   - Describe potential adverse outcomes or disputes
   - Note any missing protections or one-sided provisions
   - Reference specific legal principles or concerns

4. CONFIDENCE ASSESSMENT:
   - Rate confidence in this analysis: High (90-100%%), Medium (70-89%%), Low (<70%%)
   - Note any ambiguities requiring legal counsel review

5. AFFECTED PARTY ANALYSIS:
   - Identify: Buyer, Seller, Vendor, Service Provider, Client, Both Parties, Employer, Employee, or Unclear
   - Explain which party bears greater burden or risk

6. ALTERNATIVE CLAUSE (100-150 words):
   - Provide balanced, fair alternative language
   - Address identified risks and ambiguities
   - Include specific terms, conditions, and protections
   - Maintain enforceability and clarity

7. NEGOTIATION STRATEGY (75-100 words):
   - Provide tactical negotiation advice
   - Suggest specific changes or additions
   - Identify leverage points and fallback positions

RESPONSE FORMAT (JSON ONLY):
{
  "plain_english_explanation": "string",
  "risk_level": "Low|Medium|High",
  "risk_reason": "string",
  "confidence_level": "High|Medium|Low",
  "confidence_percentage": number,
  "affected_party": "string",
  "party_impact_reasoning": "string",
  "suggested_alternative_clause": "string",
  "negotiation_insight": "string",
  "legal_concerns": ["concern1", "concern2"],
  "missing_protections": ["protection1", "protection2"],
  "ambiguous_terms": ["term1", "term2"]
}`

const summaryAnalysisPromptFmt = `Conduct a comprehensive legal analysis of this contract:

CONTRACT EXCERPT:
%s

TOTAL DOCUMENT: %d words

COMPREHENSIVE ANALYSIS REQUIREMENTS:

1. EXECUTIVE SUMMARY (200-300 words):
   - Contract type and purpose
   - Parties and their roles
   - Core obligations and deliverables
   - Payment structure and terms
   - Duration and termination provisions
   - Liability framework and limitations
   - Intellectual property rights
   - Dispute resolution mechanism
   - Key business implications

2. OVERALL RISK ASSESSMENT:
   - Evaluate: Low, Medium, or High
   - Consider: aggregated clause risks, missing provisions, unfavorable balance
   - Base on: legal enforceability, business exposure, operational constraints

3. TOP BUSINESS RISKS (Identify 3-5):
   - List most significant legal or business concerns
   - Prioritize by potential impact and likelihood
   - Be specific about exposure or consequences

4. CONTRACT QUALITY METRICS:
   A. COMPLETENESS SCORE (0-100):
      Rate based on presence and adequacy of:
      - Parties identification and capacity (10 points)
      - Scope of work/deliverables (10 points)
      - Payment terms and schedule (10 points)
      - Contract duration and renewal (10 points)
      - Termination rights and procedures (15 points)
      - Liability and indemnification (15 points)
      - Intellectual property provisions (10 points)
      - Dispute resolution mechanism (10 points)
      - Confidentiality provisions (5 points)
      - Warranties and representations (5 points)

   B. IDENTIFY STRUCTURAL ISSUES:
      - Conflicting clauses (describe each conflict)
      - Duplicate or inconsistent terms
      - Ambiguous definitions or undefined terms
      - Missing critical clauses for this contract type

5. STRATEGIC NEGOTIATION RECOMMENDATIONS (3-5 specific actions):
   - Prioritize by importance and negotiability
   - Provide tactical approach for each
   - Include specific language suggestions where applicable

RESPONSE FORMAT (JSON ONLY):
{
  "business_summary": "string",
  "overall_risk": "Low|Medium|High",
  "overall_risk_reasoning": "string",
  "top_3_business_risks": ["risk1", "risk2", "risk3"],
  "contract_completeness_score": number,
  "conflicting_clauses": ["conflict1", "conflict2"],
  "duplicate_or_ambiguous_terms": ["term1", "term2"],
  "missing_critical_clauses": ["clause1", "clause2"],
  "negotiation_recommendations": ["rec1", "rec2", "rec3"],
  "document_length_words": number,
  "contract_type_classification": "string"
}`

const hindiInstruction = `
IMPORTANT: You MUST write ALL explanations, reasoning, and recommendations in Hindi (Devanagari script).
Only risk level labels (Low/Medium/High), confidence levels and affected party names should remain in English.`

const englishInstruction = "Provide all explanations in English."

// systemPrompt assembles the system instruction for the requested output
// language.
func systemPrompt(language string) string {
	instruction := englishInstruction
	if language == LanguageHindi {
		instruction = hindiInstruction
	}
	return legalExpertSystemPrompt + "\n\n" + instruction + "\n\nRespond ONLY with valid JSON."
}

func clausePrompt(clauseText string) string {
	return fmt.Sprintf(clauseAnalysisPromptFmt, clauseText)
}

func summaryPrompt(contractText string, wordCount int) string {
	return fmt.Sprintf(summaryAnalysisPromptFmt, contractText, wordCount)
}
