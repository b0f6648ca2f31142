// Package section splits cleaned filing text into named topic sections.
//
// Each form type carries an ordered list of header patterns. The list order
// is the match priority: item-number headers come before bare-title
// fallbacks so "Item 1A. Risk Factors" beats a stray "Risk Factors" mention
// in the table of contents body.
package section

import (
	"fmt"
	"os"
	"regexp"

	"github.com/hjson/hjson-go/v4"

	"filinglens/pkg/models"
)

// Canonical section names shared across form types. Downstream stages look
// sections up by these names.
const (
	NameBusiness             = "Business"
	NameRiskFactors          = "Risk Factors"
	NameLegalProceedings     = "Legal Proceedings"
	NameManagementDiscussion = "Management Discussion"
	NameMarketRisk           = "Market Risk"
	NameFinancialStatements  = "Financial Statements"
	NameControls             = "Controls and Procedures"
	NameProperties           = "Properties"

	NameMaterialAgreement  = "Material Agreement"
	NameAcquisition        = "Acquisition or Disposition"
	NameBankruptcy         = "Bankruptcy"
	NameDebtObligation     = "Direct Financial Obligation"
	NameDebtAcceleration   = "Debt Acceleration"
	NameMaterialImpairment = "Material Impairment"
	NameOtherEvents        = "Other Events"
	NameExhibits           = "Financial Statements and Exhibits"

	NameProspectusSummary = "Prospectus Summary"
	NameUseOfProceeds     = "Use of Proceeds"
	NameDilution          = "Dilution"
	NameManagement        = "Management"

	NameMeetingNotice    = "Notice of Meeting"
	NameProposals        = "Proposals"
	NameExecComp         = "Executive Compensation"
	NameCompDiscussion   = "Compensation Discussion"
	NameSecurityOwners   = "Security Ownership"
	NameAuditCommittee   = "Audit Committee Report"
	NameKeyInformation   = "Key Information"
	NameCompanyInfo      = "Information on the Company"
	NameOperatingReview  = "Operating and Financial Review"
	NameFinancialDetails = "Financial Information"
)

// HeaderPattern binds a canonical section name to one header regex. Patterns
// are compiled case-insensitive and anchored to line starts.
type HeaderPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

func hp(name, expr string) HeaderPattern {
	return HeaderPattern{Name: name, Pattern: regexp.MustCompile(`(?im)^\s*` + expr)}
}

// defaultConfigs holds the built-in ordered header lists per form type.
var defaultConfigs = map[models.FormType][]HeaderPattern{
	models.FormAnnual: {
		hp(NameBusiness, `item\s+1\s*[.\-:–—]\s*business`),
		hp(NameRiskFactors, `item\s+1a\s*[.\-:–—]?\s*risk\s+factors`),
		hp(NameProperties, `item\s+2\s*[.\-:–—]\s*properties`),
		hp(NameLegalProceedings, `item\s+3\s*[.\-:–—]\s*legal\s+proceedings`),
		hp(NameManagementDiscussion, `item\s+7\s*[.\-:–—]?\s*management['’]?s?\s+discussion`),
		hp(NameMarketRisk, `item\s+7a\s*[.\-:–—]?\s*(?:quantitative|qualitative|market)`),
		hp(NameFinancialStatements, `item\s+8\s*[.\-:–—]?\s*financial\s+statements`),
		hp(NameControls, `item\s+9a\s*[.\-:–—]?\s*controls`),
		hp(NameRiskFactors, `risk\s+factors\s*$`),
		hp(NameManagementDiscussion, `management['’]?s?\s+discussion\s+and\s+analysis`),
	},
	models.FormQuarterly: {
		hp(NameFinancialStatements, `item\s+1\s*[.\-:–—]?\s*(?:condensed\s+)?(?:consolidated\s+)?financial\s+statements`),
		hp(NameManagementDiscussion, `item\s+2\s*[.\-:–—]?\s*management['’]?s?\s+discussion`),
		hp(NameMarketRisk, `item\s+3\s*[.\-:–—]?\s*(?:quantitative|qualitative|market)`),
		hp(NameControls, `item\s+4\s*[.\-:–—]?\s*controls`),
		hp(NameLegalProceedings, `item\s+1\s*[.\-:–—]?\s*legal\s+proceedings`),
		hp(NameRiskFactors, `item\s+1a\s*[.\-:–—]?\s*risk\s+factors`),
		hp(NameRiskFactors, `risk\s+factors\s*$`),
	},
	models.FormCurrent: {
		hp(NameMaterialAgreement, `item\s+1\.01\b`),
		hp(NameBankruptcy, `item\s+1\.03\b`),
		hp(NameAcquisition, `item\s+2\.01\b`),
		hp(NameDebtObligation, `item\s+2\.03\b`),
		hp(NameDebtAcceleration, `item\s+2\.04\b`),
		hp(NameMaterialImpairment, `item\s+2\.06\b`),
		hp(NameOtherEvents, `item\s+8\.01\b`),
		hp(NameExhibits, `item\s+9\.01\b`),
		hp(NameBankruptcy, `bankruptcy\s+or\s+receivership`),
		hp(NameDebtAcceleration, `triggering\s+events\s+that\s+accelerate`),
		hp(NameMaterialImpairment, `material\s+impairments?`),
	},
	models.FormRegistration: {
		hp(NameProspectusSummary, `prospectus\s+summary`),
		hp(NameRiskFactors, `risk\s+factors`),
		hp(NameUseOfProceeds, `use\s+of\s+proceeds`),
		hp(NameDilution, `dilution\s*$`),
		hp(NameManagementDiscussion, `management['’]?s?\s+discussion\s+and\s+analysis`),
		hp(NameBusiness, `business\s*$`),
		hp(NameManagement, `^management\s*$`),
		hp(NameFinancialStatements, `(?:index\s+to\s+)?financial\s+statements`),
	},
	models.FormProxy: {
		hp(NameMeetingNotice, `notice\s+of\s+(?:annual|special)\s+meeting`),
		hp(NameProposals, `proposal\s+(?:no\.?\s*)?1\b`),
		hp(NameCompDiscussion, `compensation\s+discussion\s+and\s+analysis`),
		hp(NameExecComp, `executive\s+compensation`),
		hp(NameSecurityOwners, `security\s+ownership\s+of`),
		hp(NameAuditCommittee, `(?:report\s+of\s+the\s+)?audit\s+committee\s+report|report\s+of\s+the\s+audit\s+committee`),
	},
	models.FormForeignAnnual: {
		hp(NameKeyInformation, `item\s+3\s*[.\-:–—]?\s*key\s+information`),
		hp(NameRiskFactors, `(?:item\s+3\.?d\s*[.\-:–—]?\s*)?risk\s+factors`),
		hp(NameCompanyInfo, `item\s+4\s*[.\-:–—]?\s*information\s+on\s+the\s+company`),
		hp(NameOperatingReview, `item\s+5\s*[.\-:–—]?\s*operating\s+and\s+financial\s+review`),
		hp(NameFinancialDetails, `item\s+8\s*[.\-:–—]?\s*financial\s+information`),
		hp(NameFinancialStatements, `item\s+18\s*[.\-:–—]?\s*financial\s+statements`),
	},
}

// ConfigFor returns the header pattern list for a form type. Unknown forms
// fall back to the annual report configuration, which carries the broadest
// title patterns.
func ConfigFor(form models.FormType) []HeaderPattern {
	if cfg, ok := defaultConfigs[form]; ok {
		return cfg
	}
	return defaultConfigs[models.FormAnnual]
}

// overrideFile is the HJSON shape for pattern overrides: a map of form type
// to ordered {name, pattern} entries.
type overrideFile map[string][]struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
}

// LoadOverrides replaces the built-in header list for any form types present
// in the given HJSON file. Patterns that fail to compile abort the load so a
// bad override file cannot silently disable segmentation.
func LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read section config: %w", err)
	}

	var file overrideFile
	if err := hjson.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse section config: %w", err)
	}

	for formStr, entries := range file {
		form := models.ParseFormType(formStr)
		if form == models.FormUnknown {
			return fmt.Errorf("unknown form type in section config: %q", formStr)
		}
		patterns := make([]HeaderPattern, 0, len(entries))
		for _, e := range entries {
			re, err := regexp.Compile(`(?im)^\s*` + e.Pattern)
			if err != nil {
				return fmt.Errorf("invalid pattern for %s/%s: %w", formStr, e.Name, err)
			}
			patterns = append(patterns, HeaderPattern{Name: e.Name, Pattern: re})
		}
		defaultConfigs[form] = patterns
	}
	return nil
}
