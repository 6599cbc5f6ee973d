// Package forms holds the static catalog of legal document templates
// and renders filled-in templates to plain text. The catalog is
// immutable; lookups never touch the network.
package forms

import "errors"

// ErrUnknownFormType is returned for form types the catalog does not
// describe.
var ErrUnknownFormType = errors.New("unknown form type")

// Field is one fillable slot in a section.
type Field struct {
	Key   string
	Label string
}

// Section is an ordered group of fields under one heading.
type Section struct {
	Name   string
	Fields []Field
}

// FormType describes one supported document kind.
type FormType struct {
	Code        string
	Title       string
	Description string
}

// Types lists the supported document kinds in presentation order.
func Types() []FormType {
	return []FormType{
		{Code: "FIR", Title: "First Information Report", Description: "Police complaint registration"},
		{Code: "RTI", Title: "Right to Information", Description: "Information request application"},
		{Code: "COMPLAINT", Title: "General Complaint", Description: "General grievance complaint"},
		{Code: "APPEAL", Title: "Legal Appeal", Description: "Appeal application"},
	}
}

var titles = map[string]string{
	"FIR":       "First Information Report",
	"RTI":       "Right to Information Application",
	"COMPLAINT": "General Complaint Form",
	"APPEAL":    "Legal Appeal Application",
}

var sectionOrder = map[string][]string{
	"FIR":       {"complainant_details", "incident_details", "accused_details", "witness_details", "evidence_details"},
	"RTI":       {"applicant_details", "information_requested", "public_authority", "grounds_for_request"},
	"COMPLAINT": {"complainant_details", "complaint_details", "relief_sought", "supporting_documents"},
	"APPEAL":    {"appellant_details", "original_order_details", "grounds_for_appeal", "relief_sought"},
}

var sectionFields = map[string][]Field{
	"complainant_details": {
		{"name", "Full Name"},
		{"address", "Complete Address"},
		{"phone", "Phone Number"},
		{"email", "Email Address"},
		{"id_proof", "ID Proof Type and Number"},
	},
	"incident_details": {
		{"date_time", "Date and Time of Incident"},
		{"location", "Location of Incident"},
		{"description", "Detailed Description of Incident"},
		{"loss_damage", "Loss or Damage Suffered"},
	},
	"accused_details": {
		{"name", "Name of Accused"},
		{"address", "Address of Accused"},
		{"description", "Description of Accused"},
	},
	"witness_details": {
		{"witness_names", "Names of Witnesses"},
		{"witness_addresses", "Addresses of Witnesses"},
		{"witness_phones", "Phone Numbers of Witnesses"},
	},
	"evidence_details": {
		{"documents", "Supporting Documents"},
		{"physical_evidence", "Physical Evidence"},
		{"digital_evidence", "Digital Evidence"},
	},
	"applicant_details": {
		{"name", "Full Name"},
		{"address", "Complete Address"},
		{"phone", "Phone Number"},
		{"email", "Email Address"},
		{"citizenship", "Citizenship"},
	},
	"information_requested": {
		{"subject", "Subject of Information"},
		{"details", "Detailed Description of Information Required"},
		{"period", "Time Period for Information"},
		{"format", "Preferred Format of Information"},
	},
	"public_authority": {
		{"authority_name", "Name of Public Authority"},
		{"officer_name", "Name of Public Information Officer"},
		{"address", "Address of Public Authority"},
	},
	"grounds_for_request": {
		{"reason", "Reason for Requesting Information"},
		{"public_interest", "Public Interest Justification"},
	},
	"complaint_details": {
		{"subject", "Subject of Complaint"},
		{"description", "Detailed Description of Complaint"},
		{"date_occurred", "Date When Issue Occurred"},
		{"previous_actions", "Previous Actions Taken"},
	},
	"relief_sought": {
		{"compensation", "Compensation Sought"},
		{"action_required", "Action Required from Authority"},
		{"timeframe", "Expected Timeframe for Resolution"},
	},
	"supporting_documents": {
		{"documents", "List of Supporting Documents"},
		{"photographs", "Photographs (if any)"},
		{"correspondence", "Previous Correspondence"},
	},
	"appellant_details": {
		{"name", "Full Name of Appellant"},
		{"address", "Complete Address"},
		{"phone", "Phone Number"},
		{"email", "Email Address"},
		{"representative", "Legal Representative (if any)"},
	},
	"original_order_details": {
		{"order_number", "Original Order Number"},
		{"order_date", "Date of Original Order"},
		{"issuing_authority", "Authority that Issued Order"},
		{"order_summary", "Summary of Original Order"},
	},
	"grounds_for_appeal": {
		{"legal_grounds", "Legal Grounds for Appeal"},
		{"errors", "Errors in Original Order"},
		{"new_evidence", "New Evidence Available"},
	},
}

// FieldsFor returns the ordered sections and fields for a form type.
func FieldsFor(formType string) ([]Section, error) {
	order, ok := sectionOrder[formType]
	if !ok {
		return nil, ErrUnknownFormType
	}
	sections := make([]Section, 0, len(order))
	for _, name := range order {
		sections = append(sections, Section{Name: name, Fields: sectionFields[name]})
	}
	return sections, nil
}

// Title returns the document heading for a form type.
func Title(formType string) (string, error) {
	t, ok := titles[formType]
	if !ok {
		return "", ErrUnknownFormType
	}
	return t, nil
}
