package entity

import (
	"fmt"

	"hrms-portal/internal/form"
	"hrms-portal/internal/model"
	"hrms-portal/internal/workflow"
)

// Photo is the attachment part name of employee creation.
const Photo = "photo"

func (c Catalog) EmployeeSchema() *form.Schema {
	now := c.now()
	digits10 := form.All(form.Digits(), form.MaxRunes(10))

	s := form.NewSchema()
	s.Field("userId").Validate(form.Required())
	s.Field("employeeCode").
		Validate(form.Required(), form.Pattern(`^[A-Za-z0-9\-]+$`), form.MaxLength(10)).
		Filter(form.All(form.Alphanumeric('-'), form.MaxRunes(10)))
	s.Field("firstName").Validate(form.Required(), form.Pattern(`^[A-Za-z]{2,20}$`)).Filter(form.Letters())
	s.Field("lastName").Validate(form.Required(), form.Pattern(`^[A-Za-z]{2,20}$`)).Filter(form.Letters())
	s.Field("email").Validate(form.Required(), form.Email())
	s.Field("contactNumber").Validate(form.Required(), form.Pattern(`^[0-9]{10}$`)).Filter(digits10)
	s.Field("gender").Validate(form.Required(), form.OneOf(model.Genders...))
	s.Field("dob").Validate(form.Date(), form.NotFuture(now)).Filter(form.DateKeys())
	s.Field("emergencyContact").Validate(form.Required(), form.Pattern(`^[0-9]{10}$`)).Filter(digits10)
	s.Field("joiningDate").Validate(form.Date()).Filter(form.DateKeys())
	s.Field("probationEndDate").
		Validate(form.Date(), form.NotBefore("joiningDate")).
		Filter(form.DateKeys()).
		DerivedFrom("joiningDate", form.AddMonths(3))
	s.Field("exitReason").Validate(form.MaxLength(255))
	s.Field("status").Default(model.StatusActive).Validate(form.Required(), form.OneOf(model.StatusActive, model.StatusInactive))
	s.Field("designation").Validate(form.Required())
	s.Field("jobType").Default("FULL_TIME").Validate(form.Required(), form.OneOf(model.JobTypes...))
	s.Field("education")
	s.Field("experience")
	s.Field("certifications")
	s.Field("location").Validate(form.Required())
	s.Field("managerId")
	s.Field("departmentId").Validate(form.Required())
	s.Field("basicSalary").Validate(Amount())
	s.Field("allowances").Validate(Amount())
	s.Field("deductions").Validate(Amount())
	return s
}

func (c Catalog) Employee() workflow.Definition[model.Employee] {
	return workflow.Definition[model.Employee]{
		Name:       "Employee",
		Schema:     c.EmployeeSchema(),
		Encode:     encodeEmployee,
		Decode:     decodeEmployee,
		ID:         func(e model.Employee) string { return e.ID },
		Attachment: Photo,
		Messages: workflow.Messages[model.Employee]{
			Incomplete: "Please fill all required fields correctly and upload a photo.",
			Created: func(e model.Employee) string {
				return fmt.Sprintf("Employee %s %s created successfully!", e.FirstName, e.LastName)
			},
			Updated: func(e model.Employee) string {
				return fmt.Sprintf("Employee %s %s updated successfully!", e.FirstName, e.LastName)
			},
			CreateFailed: "Failed to create employee.",
			LoadFailed:   "Failed to load employees",
		},
	}
}

func encodeEmployee(v form.Values) (model.Employee, error) {
	e := model.Employee{
		EmployeeCode:     v.Trimmed("employeeCode"),
		FirstName:        v.Trimmed("firstName"),
		LastName:         v.Trimmed("lastName"),
		Email:            v.Trimmed("email"),
		ContactNumber:    v.Trimmed("contactNumber"),
		Gender:           v.Get("gender"),
		DOB:              v.Trimmed("dob"),
		EmergencyContact: v.Trimmed("emergencyContact"),
		JoiningDate:      v.Trimmed("joiningDate"),
		ProbationEndDate: v.Trimmed("probationEndDate"),
		ExitReason:       v.Trimmed("exitReason"),
		Status:           v.Get("status"),
		Designation:      v.Trimmed("designation"),
		JobType:          v.Get("jobType"),
		Education:        v.Trimmed("education"),
		Experience:       v.Trimmed("experience"),
		Certifications:   v.Trimmed("certifications"),
		Location:         v.Trimmed("location"),
		DepartmentID:     v.Trimmed("departmentId"),
		UserID:           v.Trimmed("userId"),
		ManagerID:        v.Trimmed("managerId"),
	}

	if v.Trimmed("basicSalary") != "" {
		var (
			comp model.Compensation
			err  error
		)
		if comp.BasicSalary, err = parseAmount(v, "basicSalary"); err != nil {
			return model.Employee{}, fmt.Errorf("basic salary: %w", err)
		}
		if comp.Allowances, err = parseAmount(v, "allowances"); err != nil {
			return model.Employee{}, fmt.Errorf("allowances: %w", err)
		}
		if comp.Deductions, err = parseAmount(v, "deductions"); err != nil {
			return model.Employee{}, fmt.Errorf("deductions: %w", err)
		}
		e.Compensation = &comp
	}
	return e, nil
}

func decodeEmployee(e model.Employee) map[string]string {
	out := map[string]string{
		"userId":           e.UserID,
		"employeeCode":     e.EmployeeCode,
		"firstName":        e.FirstName,
		"lastName":         e.LastName,
		"email":            e.Email,
		"contactNumber":    e.ContactNumber,
		"gender":           e.Gender,
		"dob":              e.DOB,
		"emergencyContact": e.EmergencyContact,
		"joiningDate":      e.JoiningDate,
		"probationEndDate": e.ProbationEndDate,
		"exitReason":       e.ExitReason,
		"status":           e.Status,
		"designation":      e.Designation,
		"jobType":          e.JobType,
		"education":        e.Education,
		"experience":       e.Experience,
		"certifications":   e.Certifications,
		"location":         e.Location,
		"managerId":        e.ManagerID,
		"departmentId":     e.DepartmentID,
	}
	if e.Compensation != nil {
		out["basicSalary"] = e.Compensation.BasicSalary.StringFixed(2)
		out["allowances"] = e.Compensation.Allowances.StringFixed(2)
		out["deductions"] = e.Compensation.Deductions.StringFixed(2)
	}
	return out
}
