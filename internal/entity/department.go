package entity

import (
	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/workflow"
)

func (c Catalog) Department() workflow.Definition[model.Department] {
	s := form.NewSchema()
	s.Field("departmentCode").
		Validate(form.Required(), form.MaxLength(8), form.Pattern(`^[A-Za-z0-9]+$`)).
		Filter(form.All(form.Alphanumeric(), form.MaxRunes(8)))
	s.Field("name").
		Validate(form.Required(), form.MaxLength(100)).
		Filter(form.All(form.LettersAndSpaces(), form.MaxRunes(40)))
	s.Field("description").Validate(form.MaxLength(100)).Filter(form.MaxRunes(100))
	s.Field("location").
		Validate(form.MaxLength(10)).
		Filter(form.All(form.LettersAndSpaces(), form.MaxRunes(10)))
	s.Field("departmentHeadId")

	return workflow.Definition[model.Department]{
		Name:   "Department",
		Schema: s,
		Encode: func(v form.Values) (model.Department, error) {
			return model.Department{
				DepartmentCode:   v.Trimmed("departmentCode"),
				Name:             v.Trimmed("name"),
				Description:      v.Trimmed("description"),
				Location:         v.Trimmed("location"),
				DepartmentHeadID: v.Trimmed("departmentHeadId"),
			}, nil
		},
		Decode: func(d model.Department) map[string]string {
			return map[string]string{
				"departmentCode":   d.DepartmentCode,
				"name":             d.Name,
				"description":      d.Description,
				"location":         d.Location,
				"departmentHeadId": d.DepartmentHeadID,
			}
		},
		ID: func(d model.Department) string { return d.ID },
		Messages: workflow.Messages[model.Department]{
			Incomplete:  "Please fill all required fields correctly.",
			Deleted:     "Department deleted successfully.",
			LoadFailed:  "Failed to load departments.",
			ConfirmDrop: workflow.Prompt{Header: "Confirm Delete", Message: "Delete this department?"},
		},
	}
}

// AvailableHeads lists managers who do not yet head a department. The head of
// the department being edited stays selectable.
func AvailableHeads(managers []model.Employee, departments []model.Department, editingID string) []model.Employee {
	taken := make(map[string]bool, len(departments))
	for _, d := range departments {
		if d.DepartmentHeadID != "" && d.ID != editingID {
			taken[d.DepartmentHeadID] = true
		}
	}

	out := make([]model.Employee, 0, len(managers))
	for _, m := range managers {
		if !taken[m.ID] {
			out = append(out, m)
		}
	}
	return out
}
