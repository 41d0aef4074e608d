package entity

import (
	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/workflow"
)

func (c Catalog) Benefit() workflow.Definition[model.Benefit] {
	s := form.NewSchema()
	s.Field("name").
		Validate(form.Required(), form.Pattern(`^[A-Za-z\s]+$`), form.MaxLength(20)).
		Filter(form.All(form.LettersAndSpaces(), form.MaxRunes(20)))
	s.Field("description").Validate(form.Required(), form.MaxLength(100)).Filter(form.MaxRunes(100))
	s.Field("type").Validate(form.Required(), form.OneOf(model.BenefitTypes...))
	s.Field("isTaxable").Default("false")

	return workflow.Definition[model.Benefit]{
		Name:   "Benefit",
		Schema: s,
		Encode: func(v form.Values) (model.Benefit, error) {
			return model.Benefit{
				Name:        v.Trimmed("name"),
				Description: v.Trimmed("description"),
				Type:        v.Get("type"),
				IsTaxable:   v.Bool("isTaxable"),
			}, nil
		},
		Decode: func(b model.Benefit) map[string]string {
			return map[string]string{
				"name":        b.Name,
				"description": b.Description,
				"type":        b.Type,
				"isTaxable":   form.FormatBool(b.IsTaxable),
			}
		},
		ID: func(b model.Benefit) string { return b.ID },
		Messages: workflow.Messages[model.Benefit]{
			Created:      func(model.Benefit) string { return "Benefit created successfully" },
			Updated:      func(model.Benefit) string { return "Benefit updated successfully" },
			Deleted:      "Benefit deleted",
			CreateFailed: "Failed to create benefit",
			UpdateFailed: "Failed to update benefit",
			DeleteFailed: "Failed to delete benefit",
			LoadFailed:   "Failed to load benefits",
		},
	}
}
