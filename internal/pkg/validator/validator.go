// Package validator checks request structs against their `validate` tags and
// reports failures keyed by snake_case field name.
package validator

// Validator validates structs using their `validate` tags.
type Validator interface {
	Validate(data any) error
}
