// Package classifier assigns a coarse document type from keyword heuristics.
package classifier

import (
	"strings"

	"legalyze/internal/domain"
)

type rule struct {
	docType  domain.DocumentType
	keywords []string
}

// rules are evaluated in order; the first rule with a matching keyword wins.
var rules = []rule{
	{domain.DocumentTypeRentalAgreement, []string{"lease", "tenant", "landlord", "rent"}},
	{domain.DocumentTypeLoanContract, []string{"loan", "borrower", "lender", "principal"}},
	{domain.DocumentTypeTermsOfService, []string{"terms of service", "privacy policy", "user agreement"}},
	{domain.DocumentTypeEmploymentContract, []string{"employment", "employee", "employer"}},
}

// Classify returns the document type for text. Matching is a case-insensitive
// substring search, so "rent" also matches inside "current".
func Classify(text string) domain.DocumentType {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.docType
			}
		}
	}
	return domain.DocumentTypeGeneralLegal
}
