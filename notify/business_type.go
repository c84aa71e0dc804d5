// Package notify holds the declarative notification business-type records
// and the registry an external message service reads them from. Records
// carry no runtime behavior of their own.
package notify

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Level is the scope a business type notifies at.
type Level string

const (
	LevelSite         Level = "site"
	LevelOrganization Level = "organization"
	LevelProject      Level = "project"
)

// BusinessType describes one notification business type. Code must be
// unique within a registry.
type BusinessType struct {
	Code          string
	Name          string
	Description   string
	Level         Level
	RetryCount    int
	SendInstantly bool
	ManualRetry   bool
}

// Validate checks the record is well formed: code, name and a known level
// are required, and the retry count must not be negative.
func (b BusinessType) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Code, validation.Required),
		validation.Field(&b.Name, validation.Required),
		validation.Field(&b.Level, validation.Required, validation.In(LevelSite, LevelOrganization, LevelProject)),
		validation.Field(&b.RetryCount, validation.Min(0)),
	)
}
