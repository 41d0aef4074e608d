package entity

import (
	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/workflow"
)

func (c Catalog) LeaveType() workflow.Definition[model.LeaveType] {
	s := form.NewSchema()
	s.Field("name").Validate(form.Required(), form.OneOf(model.LeaveTypeNames...))
	s.Field("description").Validate(form.Required())
	s.Field("maxDaysPerYear").
		Default("0").
		Validate(form.Required(), form.Range(0, 366)).
		Filter(form.All(form.Digits(), form.MaxRunes(3)))
	s.Field("carryForward").Default("false")
	s.Field("encashable").Default("false")
	s.Field("approvalFlow")

	return workflow.Definition[model.LeaveType]{
		Name:   "Leave type",
		Schema: s,
		Encode: func(v form.Values) (model.LeaveType, error) {
			days, err := v.Int("maxDaysPerYear")
			if err != nil {
				return model.LeaveType{}, err
			}
			return model.LeaveType{
				Name:           v.Get("name"),
				Description:    v.Trimmed("description"),
				MaxDaysPerYear: days,
				CarryForward:   v.Bool("carryForward"),
				Encashable:     v.Bool("encashable"),
				ApprovalFlow:   v.Trimmed("approvalFlow"),
			}, nil
		},
		Decode: func(l model.LeaveType) map[string]string {
			return map[string]string{
				"name":           l.Name,
				"description":    l.Description,
				"maxDaysPerYear": formatInt(l.MaxDaysPerYear),
				"carryForward":   form.FormatBool(l.CarryForward),
				"encashable":     form.FormatBool(l.Encashable),
				"approvalFlow":   l.ApprovalFlow,
			}
		},
		ID:            func(l model.LeaveType) string { return l.ID },
		ConfirmSubmit: true,
		Messages: workflow.Messages[model.LeaveType]{
			Incomplete:   "Please complete all required fields.",
			Created:      func(model.LeaveType) string { return "Leave type added successfully" },
			Updated:      func(model.LeaveType) string { return "Leave type updated successfully" },
			Deleted:      "Leave type deleted successfully",
			CreateFailed: "Request not Submitted, Leave type already available",
			UpdateFailed: "Failed to update leave type",
			DeleteFailed: "Failed to delete leave type",
			ConfirmSave:  workflow.Prompt{Header: "Confirm Save", Message: "Are you sure you want to save this leave type?"},
		},
	}
}
