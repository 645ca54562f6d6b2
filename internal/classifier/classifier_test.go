package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"legalyze/internal/classifier"
	"legalyze/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.DocumentType
	}{
		{"rental by landlord", "The Landlord agrees to maintain the premises.", domain.DocumentTypeRentalAgreement},
		{"rental by lease", "THIS LEASE is made between the parties", domain.DocumentTypeRentalAgreement},
		{"loan", "The Borrower promises to repay the Lender.", domain.DocumentTypeLoanContract},
		{"loan principal", "interest accrues on the unpaid principal", domain.DocumentTypeLoanContract},
		{"terms of service", "By using the app you accept these Terms of Service.", domain.DocumentTypeTermsOfService},
		{"privacy policy", "Our Privacy Policy explains what we collect.", domain.DocumentTypeTermsOfService},
		{"employment", "The Employer shall pay the Employee a salary.", domain.DocumentTypeEmploymentContract},
		{"general", "This non-disclosure agreement protects confidential information.", domain.DocumentTypeGeneralLegal},
		{"empty", "", domain.DocumentTypeGeneralLegal},
		{"substring rent inside current", "the current version of the agreement", domain.DocumentTypeRentalAgreement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.text))
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	assert.Equal(t, domain.DocumentTypeRentalAgreement, classifier.Classify("the tenant and the borrower"))
	assert.Equal(t, domain.DocumentTypeLoanContract, classifier.Classify("loan terms of service for each employee"))
	assert.Equal(t, domain.DocumentTypeTermsOfService, classifier.Classify("user agreement for employers"))
}

func TestClassify_Deterministic(t *testing.T) {
	text := "Employee handbook and employment terms"
	first := classifier.Classify(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, classifier.Classify(text))
	}
}
