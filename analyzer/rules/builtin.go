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

package rules

import (
	"regexp"

	"github.com/contractlens/contractlens/report"
)

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + pattern)
}

// Builtin returns the built-in rule set.
func Builtin() *Set {
	return &Set{rules: builtinRules}
}

var builtinRules = []Rule{
	// Liability & indemnification
	{
		ID: "unlimited_liability",
		Pattern: re(`\b(unlimited|unbounded|without limit of) liability\b|` +
			`\bliable for all (damages|losses|claims)\b|` +
			`\bno cap on liability\b`),
		RiskLevel:      report.RiskHigh,
		Category:       "Liability",
		SeverityWeight: 2.5,
		Description:    "Unlimited or uncapped liability exposure for one party, creating potentially catastrophic financial risk.",
	},
	{
		ID: "one_sided_indemnity",
		Pattern: re(`\b(shall|must|agrees to) indemnify.+(and hold harmless|from and against all|` +
			`defend.*against any)\b`),
		RiskLevel:      report.RiskHigh,
		Category:       "Liability",
		SeverityWeight: 2.0,
		Description:    "Strong unilateral indemnification obligation favoring one party without reciprocal protection.",
	},
	{
		ID: "broad_consequential_damages",
		Pattern: re(`\bliable for (any|all) consequential damages\b|` +
			`\bincluding.*lost profits.*lost revenue\b|` +
			`\bindirect.*special.*incidental damages\b`),
		RiskLevel:      report.RiskHigh,
		Category:       "Liability",
		SeverityWeight: 2.0,
		Description:    "Broad liability for consequential damages including lost profits, revenue, or business opportunities.",
	},

	// Termination & duration
	{
		ID: "no_termination_right",
		Pattern: re(`\b(may not|cannot|shall not) terminate\b|` +
			`\bno right to terminate\b|` +
			`\bnon-terminable\b`),
		RiskLevel:      report.RiskHigh,
		Category:       "Termination",
		SeverityWeight: 2.5,
		Description:    "Explicitly removes or severely restricts termination rights, potentially locking party into unfavorable agreement.",
	},
	{
		ID: "unilateral_termination",
		Pattern: re(`\bmay terminate (this )?agreement at any time( without (notice|cause))?\b|` +
			`\bat.*sole discretion.*terminate\b|` +
			`\bterminate.*immediately.*without (reason|cause)\b`),
		RiskLevel:      report.RiskHigh,
		Category:       "Termination",
		SeverityWeight: 2.0,
		Description:    "Unilateral termination rights granted to one party, creating business instability and relationship imbalance.",
	},
	{
		ID: "perpetual_term",
		Pattern: re(`\bperpetual\b|` +
			`\bin perpetuity\b|` +
			`\bno expiration\b|` +
			`\bunlimited duration\b`),
		RiskLevel:      report.RiskHigh,
		Category:       "Duration",
		SeverityWeight: 1.8,
		Description:    "Perpetual or indefinite contract term without clear exit mechanism or review period.",
	},

	// Payment & financial
	{
		ID: "automatic_renewal",
		Pattern: re(`\b(automatically|auto-) renew(s|al)?\b|` +
			`\bshall be renewed automatically\b|` +
			`\bunless.*notice.*renew\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Financial",
		SeverityWeight: 1.5,
		Description:    "Automatic renewal provision without explicit opt-in, potentially creating unwanted long-term obligations.",
	},
	{
		ID: "vague_payment_terms",
		Pattern: re(`\bpayment.*(as mutually agreed|to be determined|from time to time)\b|` +
			`\breasonable (fee|price|compensation)\b|` +
			`\bpayment terms.*subject to change\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Financial",
		SeverityWeight: 1.5,
		Description:    "Unclear, variable, or undefined payment terms creating uncertainty in financial obligations.",
	},
	{
		ID: "penalty_interest_high",
		Pattern: re(`\binterest.*(rate|charge).*(2[4-9]|[3-9][0-9])\s?%|` +
			`\bpenalty.*(2[0-9]|[3-9][0-9])\s?%`),
		RiskLevel:      report.RiskMedium,
		Category:       "Financial",
		SeverityWeight: 1.5,
		Description:    "Excessive interest rates or financial penalties for late payment or breach.",
	},
	{
		ID: "price_escalation",
		Pattern: re(`\bprice.*increase.*without (notice|limit)\b|` +
			`\bunilateral.*pricing.*adjustment\b|` +
			`\bsubject to.*price.*changes.*discretion\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Financial",
		SeverityWeight: 1.5,
		Description:    "Unilateral price increase provisions without reasonable caps or notice requirements.",
	},

	// Intellectual property
	{
		ID: "broad_ip_assignment",
		Pattern: re(`\bassigns? all (intellectual property|IP|rights)\b|` +
			`\ball rights?,? title,? and interest\b|` +
			`\bexclusive.*ownership.*all.*work\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Intellectual Property",
		SeverityWeight: 1.8,
		Description:    "Very broad assignment of intellectual property rights without limitations or exceptions.",
	},
	{
		ID: "work_for_hire",
		Pattern: re(`\bwork (made )?for hire\b|` +
			`\ball.*work.*deemed.*property of\b|` +
			`\bcreated.*course of.*automatically owned\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Intellectual Property",
		SeverityWeight: 1.6,
		Description:    "Work-for-hire provision transferring all IP rights without compensation or credit.",
	},
	{
		ID: "no_derivative_works",
		Pattern: re(`\bno derivative works\b|` +
			`\bcannot.*modify.*create.*based on\b|` +
			`\bprohibited.*from.*creating.*adaptations\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Intellectual Property",
		SeverityWeight: 1.3,
		Description:    "Restrictive prohibition on creating derivative works or modifications.",
	},

	// Confidentiality & data
	{
		ID: "broad_confidentiality",
		Pattern: re(`\bperpetual confidentiality\b|` +
			`\bconfidentiality.*(without time limitation|in perpetuity)\b|` +
			`\bconfidential.*forever\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Confidentiality",
		SeverityWeight: 1.5,
		Description:    "Overly broad or perpetual confidentiality obligations restricting future business operations.",
	},
	{
		ID: "broad_nda_scope",
		Pattern: re(`\ball information.*deemed confidential\b|` +
			`\bany and all.*confidential\b|` +
			`\beverything.*disclosed.*confidential\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Confidentiality",
		SeverityWeight: 1.4,
		Description:    "Excessively broad definition of confidential information without reasonable exceptions.",
	},

	// Performance & obligations
	{
		ID: "ambiguous_terms",
		Pattern: re(`\breasonable efforts\b|` +
			`\bcommercially reasonable\b|` +
			`\bbest efforts\b|` +
			`\bto the extent (possible|practicable)\b|` +
			`\bif (reasonably|commercially) feasible\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Performance",
		SeverityWeight: 1.2,
		Description:    "Ambiguous or subjective performance standards that may be difficult to enforce or measure.",
	},
	{
		ID: "open_ended_obligations",
		Pattern: re(`\band any other.*as.*may require\b|` +
			`\bincluding but not limited to\b.*\bany\b|` +
			`\bsuch other (duties|obligations).*determined\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Performance",
		SeverityWeight: 1.5,
		Description:    "Open-ended obligations allowing unilateral expansion of responsibilities.",
	},
	{
		ID: "no_limitation_period",
		Pattern: re(`\bno (time )?limit.*obligations\b|` +
			`\bobligations.*survive.*indefinitely\b|` +
			`\bperpetual obligations\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Performance",
		SeverityWeight: 1.4,
		Description:    "Obligations that survive indefinitely without reasonable time limitations.",
	},

	// Dispute resolution
	{
		ID: "mandatory_arbitration",
		Pattern: re(`\b(shall|must) (be )?resolve[d]? (by|through) (binding )?arbitration\b|` +
			`\bexclusive.*arbitration\b|` +
			`\bwaive.*right.*jury trial\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Dispute Resolution",
		SeverityWeight: 1.3,
		Description:    "Mandatory arbitration clause potentially limiting access to courts and jury trials.",
	},
	{
		ID: "unfavorable_jurisdiction",
		Pattern: re(`\bexclusive jurisdiction.*(in|of)\b|` +
			`\bvenue.*limited to\b|` +
			`\bmust.*file.*in\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Dispute Resolution",
		SeverityWeight: 1.2,
		Description:    "Exclusive jurisdiction clause that may create inconvenience or disadvantage in disputes.",
	},

	// Representations & warranties
	{
		ID: "limited_warranties",
		Pattern: re(`\bas is\b.*\bwithout (any )?warranties\b|` +
			`\bdisclaims all warranties\b|` +
			`\bno (express|implied) warranties\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Warranties",
		SeverityWeight: 1.3,
		Description:    "Broad disclaimer of warranties limiting recourse for defects or non-performance.",
	},
	{
		ID: "seller_representation_only",
		Pattern: re(`\bmakes no representations\b|` +
			`\bbuyer.*acknowledges.*no.*representations\b|` +
			`\bexcept.*expressly.*stated.*no representations\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Warranties",
		SeverityWeight: 1.2,
		Description:    "Limitation on representations potentially leaving party without recourse for misstatements.",
	},

	// Change control
	{
		ID: "unilateral_modification",
		Pattern: re(`\bmay.*modify.*(at any time|without notice)\b|` +
			`\breserves? (the )?right.*amend.*sole discretion\b|` +
			`\bchanges?.*effective immediately\b`),
		RiskLevel:      report.RiskMedium,
		Category:       "Modifications",
		SeverityWeight: 1.5,
		Description:    "Unilateral modification rights allowing one party to change terms without consent or notice.",
	},
}
