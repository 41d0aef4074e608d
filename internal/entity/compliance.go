package entity

import (
	"strconv"

	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/workflow"
)

func (c Catalog) Compliance() workflow.Definition[model.Compliance] {
	s := form.NewSchema()
	s.Field("name").
		Validate(form.Required(), form.MaxLength(25), form.Pattern(`^[A-Za-z\s]+$`)).
		Filter(form.All(form.LettersAndSpaces(), form.MaxRunes(25)))
	s.Field("description").Validate(form.Required(), form.MaxLength(100))
	s.Field("type").Validate(form.Required(), form.OneOf(model.ComplianceTypes...))
	s.Field("frequency").Validate(form.Required(), form.OneOf(model.ComplianceFrequencies...))
	s.Field("dueDate").Validate(form.Required(), form.Date(), form.NotPast(c.now())).Filter(form.DateKeys())
	s.Field("penalty").
		Validate(form.Required(), form.Pattern(`^[0-9]+$`), form.MaxLength(5)).
		Filter(form.All(form.Digits(), form.MaxRunes(5)))
	s.Field("documentRequired").Default("false")
	s.Field("isActive").Default("true")

	return workflow.Definition[model.Compliance]{
		Name:   "Compliance",
		Schema: s,
		Encode: func(v form.Values) (model.Compliance, error) {
			penalty, err := strconv.Atoi(v.Trimmed("penalty"))
			if err != nil {
				return model.Compliance{}, err
			}
			return model.Compliance{
				Name:             v.Trimmed("name"),
				Description:      v.Trimmed("description"),
				Type:             v.Get("type"),
				Frequency:        v.Get("frequency"),
				DueDate:          v.Trimmed("dueDate"),
				Penalty:          penalty,
				DocumentRequired: v.Bool("documentRequired"),
				IsActive:         v.Bool("isActive"),
			}, nil
		},
		Decode: func(x model.Compliance) map[string]string {
			return map[string]string{
				"name":             x.Name,
				"description":      x.Description,
				"type":             x.Type,
				"frequency":        x.Frequency,
				"dueDate":          x.DueDate,
				"penalty":          formatInt(x.Penalty),
				"documentRequired": form.FormatBool(x.DocumentRequired),
				"isActive":         form.FormatBool(x.IsActive),
			}
		},
		ID:            func(x model.Compliance) string { return x.ID },
		ConfirmSubmit: true,
		Messages: workflow.Messages[model.Compliance]{
			Incomplete:   "Please fill in all required fields.",
			Created:      func(model.Compliance) string { return "Compliance added successfully." },
			Updated:      func(model.Compliance) string { return "Compliance updated successfully." },
			Deleted:      "Compliance deleted successfully.",
			CreateFailed: "Failed to create compliance.",
			UpdateFailed: "Failed to update compliance.",
			DeleteFailed: "Failed to delete compliance.",
			LoadFailed:   "Failed to load compliances",
			ConfirmSave:  workflow.Prompt{Header: "Confirm Save", Message: "All fields are filled. Do you want to save this compliance?"},
		},
	}
}
