// Package schema is the static field catalog: for every credential type it
// describes the ordered fields a credential of that type carries, so
// disclosure requests can be validated and rendered without consulting the
// chain.
package schema

import "github.com/didwallet/zk-disclosure/credential"

// FieldDefinition describes a single field of a credential type.
// Index is 0-based and unique within the type.
type FieldDefinition struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

var catalog = map[credential.Type][]FieldDefinition{
	credential.TypeEducation: {
		{Index: 0, Name: "institution", Description: "Issuing institution name", Required: true},
		{Index: 1, Name: "degree", Description: "Degree or program name", Required: true},
		{Index: 2, Name: "status", Description: "Enrollment status (active/inactive)", Required: true},
		{Index: 3, Name: "student_id", Description: "Institution-issued student identifier", Required: true},
		{Index: 4, Name: "enrollment_date", Description: "Enrollment date, unix seconds", Required: true},
		{Index: 5, Name: "expiry_date", Description: "Enrollment expiry, unix seconds", Required: false},
		{Index: 6, Name: "gpa", Description: "Grade point average, hundredths", Required: false},
		{Index: 7, Name: "field_of_study", Description: "Field of study", Required: false},
	},
	credential.TypeHealth: {
		{Index: 0, Name: "patient_id", Description: "Patient identifier", Required: true},
		{Index: 1, Name: "vaccination_type", Description: "Vaccine or treatment name", Required: true},
		{Index: 2, Name: "doses_received", Description: "Number of doses received", Required: true},
		{Index: 3, Name: "vaccination_date", Description: "Last dose date, unix seconds", Required: true},
		{Index: 4, Name: "expiry_date", Description: "Immunity expiry, unix seconds", Required: false},
		{Index: 5, Name: "batch_number", Description: "Vaccine batch number", Required: false},
		{Index: 6, Name: "provider", Description: "Administering provider", Required: false},
	},
	credential.TypeEmployment: {
		{Index: 0, Name: "company", Description: "Employer name", Required: true},
		{Index: 1, Name: "position", Description: "Job title", Required: true},
		{Index: 2, Name: "employment_type", Description: "Full-time, part-time or contract", Required: true},
		{Index: 3, Name: "employee_id", Description: "Employer-issued identifier", Required: true},
		{Index: 4, Name: "start_date", Description: "Employment start, unix seconds", Required: true},
		{Index: 5, Name: "end_date", Description: "Employment end, unix seconds, 0 = current", Required: false},
		{Index: 6, Name: "salary", Description: "Annual salary, minor units", Required: false},
		{Index: 7, Name: "department", Description: "Department or unit", Required: false},
	},
	credential.TypeAge: {
		{Index: 0, Name: "date_of_birth", Description: "Date of birth, unix seconds", Required: true},
		{Index: 1, Name: "document_number", Description: "Identity document number", Required: true},
		{Index: 2, Name: "nationality", Description: "Nationality", Required: false},
		{Index: 3, Name: "issuing_authority", Description: "Document issuing authority", Required: false},
	},
	credential.TypeAddress: {
		{Index: 0, Name: "country", Description: "Country", Required: true},
		{Index: 1, Name: "region", Description: "Region or state", Required: true},
		{Index: 2, Name: "city", Description: "City", Required: true},
		{Index: 3, Name: "street", Description: "Street address", Required: false},
		{Index: 4, Name: "postal_code", Description: "Postal code", Required: false},
	},
}

// customFallback describes credentials of unknown or custom type. Any
// credential can be described by this generic shape, so FieldsFor is total.
var customFallback = []FieldDefinition{
	{Index: 0, Name: "subject", Description: "Claim subject", Required: true},
	{Index: 1, Name: "claim", Description: "Claim name", Required: true},
	{Index: 2, Name: "value", Description: "Claim value", Required: true},
	{Index: 3, Name: "issued_at", Description: "Issuance date, unix seconds", Required: false},
}

// FieldsFor returns the ordered field definitions for a credential type.
// Unknown types degrade to the generic custom schema rather than failing;
// the wallet must always be able to describe some schema.
func FieldsFor(t credential.Type) []FieldDefinition {
	if defs, ok := catalog[t]; ok {
		return defs
	}
	return customFallback
}

// FieldCount returns the fixed number of fields for a credential type.
func FieldCount(t credential.Type) int {
	return len(FieldsFor(t))
}

// FieldName returns the catalog name of the field at index, or "" when the
// index is outside the type's schema.
func FieldName(t credential.Type, index int) string {
	defs := FieldsFor(t)
	if index < 0 || index >= len(defs) {
		return ""
	}
	return defs[index].Name
}
