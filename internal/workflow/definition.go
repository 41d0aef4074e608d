package workflow

import (
	"fmt"
	"strings"

	"hrms-portal/internal/form"
)

// Definition configures a Controller for one entity type.
type Definition[T any] struct {
	// Name is the singular display name, e.g. "Employee".
	Name   string
	Schema *form.Schema

	// Encode builds the wire payload from the active form values.
	Encode func(values form.Values) (T, error)
	// Decode flattens a record into form values for editing. Keys the schema
	// does not know are ignored.
	Decode func(record T) map[string]string
	ID     func(record T) string

	// Attachment names a binary part that must be present before a create.
	Attachment    string
	ConfirmSubmit bool

	Messages Messages[T]
}

// Messages holds user-facing text. Zero fields fall back to text built from
// the definition name.
type Messages[T any] struct {
	Incomplete   string
	Created      func(record T) string
	Updated      func(record T) string
	Deleted      string
	CreateFailed string
	UpdateFailed string
	DeleteFailed string
	LoadFailed   string
	ConfirmSave  Prompt
	ConfirmDrop  Prompt
}

func (d Definition[T]) messages() Messages[T] {
	m := d.Messages
	lower := strings.ToLower(d.Name)
	if m.Incomplete == "" {
		m.Incomplete = "Please fill in all required fields correctly."
	}
	if m.Created == nil {
		m.Created = func(T) string { return fmt.Sprintf("%s created successfully.", d.Name) }
	}
	if m.Updated == nil {
		m.Updated = func(T) string { return fmt.Sprintf("%s updated successfully.", d.Name) }
	}
	if m.Deleted == "" {
		m.Deleted = fmt.Sprintf("%s deleted successfully.", d.Name)
	}
	if m.CreateFailed == "" {
		m.CreateFailed = fmt.Sprintf("Failed to create %s.", lower)
	}
	if m.UpdateFailed == "" {
		m.UpdateFailed = fmt.Sprintf("Failed to update %s.", lower)
	}
	if m.DeleteFailed == "" {
		m.DeleteFailed = fmt.Sprintf("Failed to delete %s.", lower)
	}
	if m.LoadFailed == "" {
		m.LoadFailed = fmt.Sprintf("Failed to load %s records.", lower)
	}
	if m.ConfirmSave.Message == "" {
		m.ConfirmSave = Prompt{Header: "Confirm", Message: fmt.Sprintf("Do you want to save this %s?", lower)}
	}
	if m.ConfirmDrop.Message == "" {
		m.ConfirmDrop = Prompt{Header: "Confirm Delete", Message: fmt.Sprintf("Are you sure you want to delete this %s?", lower)}
	}
	return m
}

func (d Definition[T]) validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("definition: name is required")
	case d.Schema == nil:
		return fmt.Errorf("definition %s: schema is required", d.Name)
	case d.Encode == nil || d.Decode == nil || d.ID == nil:
		return fmt.Errorf("definition %s: encode, decode and id are required", d.Name)
	}
	return nil
}
