package domain

import (
	"path/filepath"
	"strings"
)

// DocumentFormat identifies how an uploaded document is encoded.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

// AllowedContentTypes maps MIME content types to DocumentFormat.
var AllowedContentTypes = map[string]DocumentFormat{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FormatDOCX,
}

// AllowedExtensions maps file extensions (without dot) to DocumentFormat.
var AllowedExtensions = map[string]DocumentFormat{
	"pdf":  FormatPDF,
	"docx": FormatDOCX,
}

// ParseDocumentFormat resolves the format of an upload from its file name,
// falling back to the declared content type.
func ParseDocumentFormat(fileName, contentType string) (DocumentFormat, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if f, ok := AllowedExtensions[ext]; ok {
		return f, nil
	}
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	if f, ok := AllowedContentTypes[strings.ToLower(mediaType)]; ok {
		return f, nil
	}
	return "", ErrUnsupportedFormat
}

// DocumentType is the coarse label used to frame the analysis prompt.
type DocumentType string

const (
	DocumentTypeRentalAgreement    DocumentType = "rental_agreement"
	DocumentTypeLoanContract       DocumentType = "loan_contract"
	DocumentTypeTermsOfService     DocumentType = "terms_of_service"
	DocumentTypeEmploymentContract DocumentType = "employment_contract"
	DocumentTypeGeneralLegal       DocumentType = "general_legal"
)

// Label returns a human readable name for the document type.
func (t DocumentType) Label() string {
	switch t {
	case DocumentTypeRentalAgreement:
		return "rental agreement"
	case DocumentTypeLoanContract:
		return "loan contract"
	case DocumentTypeTermsOfService:
		return "terms of service"
	case DocumentTypeEmploymentContract:
		return "employment contract"
	default:
		return "legal document"
	}
}

// ServiceErrorKind classifies failures reaching the language model.
type ServiceErrorKind string

const (
	ServiceErrorAuth     ServiceErrorKind = "auth"
	ServiceErrorNetwork  ServiceErrorKind = "network"
	ServiceErrorQuota    ServiceErrorKind = "quota"
	ServiceErrorEmpty    ServiceErrorKind = "empty"
	ServiceErrorUpstream ServiceErrorKind = "upstream"
)
