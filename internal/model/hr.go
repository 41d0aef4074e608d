package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind names a record collection in the records table.
type Kind string

const (
	KindEmployee   Kind = "employee"
	KindBenefit    Kind = "benefit"
	KindCompliance Kind = "compliance"
	KindDepartment Kind = "department"
	KindLeaveType  Kind = "leave_type"
	KindAttendance Kind = "attendance"
	KindPayroll    Kind = "payroll"
	KindClock      Kind = "clock"
)

var (
	Genders      = []string{"MALE", "FEMALE", "OTHER"}
	JobTypes     = []string{"FULL_TIME", "PART_TIME", "CONTRACT", "INTERN"}
	BenefitTypes = []string{"REIMBURSEMENT", "MONETARY", "NON_MONETARY"}

	ComplianceTypes       = []string{"STATUTORY", "INTERNAL", "REGULATORY"}
	ComplianceFrequencies = []string{"QUARTERLY", "MONTHLY", "YEARLY"}

	LeaveTypeNames = []string{
		"SICK_LEAVE", "CASUAL_LEAVE", "ANNUAL_LEAVE", "MATERNITY_LEAVE",
		"PATERNITY_LEAVE", "COMP_OFF", "LOP", "EARNED_LEAVE",
	}

	WorkFromOptions = []string{"OFFICE", "HOME", "CLIENT_SITE"}
	ClockModes      = []string{"WEB", "MOBILE"}

	Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// Compensation is the monthly salary structure used by payroll generation.
type Compensation struct {
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
}

type Employee struct {
	ID               string        `json:"empId,omitempty"`
	EmployeeCode     string        `json:"employeeCode" validate:"required,max=10,code"`
	FirstName        string        `json:"firstName" validate:"required,alpha,min=2,max=20"`
	LastName         string        `json:"lastName" validate:"required,alpha,min=2,max=20"`
	Email            string        `json:"email" validate:"required,email"`
	ContactNumber    string        `json:"contactNumber" validate:"required,numeric,len=10"`
	Gender           string        `json:"gender" validate:"required"`
	DOB              string        `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02,notfuture"`
	EmergencyContact string        `json:"emergencyContact" validate:"required,numeric,len=10"`
	JoiningDate      string        `json:"joiningDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ProbationEndDate string        `json:"probationEndDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ExitReason       string        `json:"exitReason,omitempty"`
	Status           string        `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
	Designation      string        `json:"designation" validate:"required"`
	JobType          string        `json:"jobType" validate:"required"`
	Education        string        `json:"education,omitempty"`
	Experience       string        `json:"experience,omitempty"`
	Certifications   string        `json:"certifications,omitempty"`
	Location         string        `json:"location" validate:"required"`
	DepartmentID     string        `json:"departmentId" validate:"required"`
	UserID           string        `json:"userId,omitempty"`
	ManagerID        string        `json:"managerId,omitempty"`
	PhotoURL         string        `json:"photoUrl,omitempty"`
	Compensation     *Compensation `json:"compensation,omitempty"`
	CreatedAt        *time.Time    `json:"createdAt,omitempty"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type Benefit struct {
	ID          string `json:"benefitId,omitempty"`
	Name        string `json:"name" validate:"required,max=20,letters_spaces"`
	Description string `json:"description" validate:"required,max=100"`
	Type        string `json:"type" validate:"required,oneof=REIMBURSEMENT MONETARY NON_MONETARY"`
	IsTaxable   bool   `json:"isTaxable"`
}

type Compliance struct {
	ID               string `json:"complianceId,omitempty"`
	Name             string `json:"name" validate:"required,max=25,letters_spaces"`
	Description      string `json:"description" validate:"required,max=100"`
	Type             string `json:"type" validate:"required,oneof=STATUTORY INTERNAL REGULATORY"`
	Frequency        string `json:"frequency" validate:"required,oneof=QUARTERLY MONTHLY YEARLY"`
	DueDate          string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Penalty          int    `json:"penalty" validate:"min=0,max=99999"`
	DocumentRequired bool   `json:"documentRequired"`
	IsActive         bool   `json:"isActive"`
}

type Department struct {
	ID               string `json:"departmentId,omitempty"`
	DepartmentCode   string `json:"departmentCode" validate:"required,max=8,alphanum"`
	Name             string `json:"name" validate:"required,max=100"`
	Description      string `json:"description,omitempty" validate:"max=100"`
	Location         string `json:"location,omitempty" validate:"max=10"`
	DepartmentHeadID string `json:"departmentHeadId,omitempty"`
}

type LeaveType struct {
	ID             string `json:"leaveTypeId,omitempty"`
	Name           string `json:"name" validate:"required,oneof=SICK_LEAVE CASUAL_LEAVE ANNUAL_LEAVE MATERNITY_LEAVE PATERNITY_LEAVE COMP_OFF LOP EARNED_LEAVE"`
	Description    string `json:"description" validate:"required"`
	MaxDaysPerYear int    `json:"maxDaysPerYear" validate:"min=0,max=366"`
	CarryForward   bool   `json:"carryForward"`
	Encashable     bool   `json:"encashable"`
	ApprovalFlow   string `json:"approvalFlow,omitempty"`
}

const (
	RegularizationPending  = "PENDING"
	RegularizationApproved = "APPROVED"
	RegularizationRejected = "REJECTED"
)

// Attendance is an attendance regularization request.
type Attendance struct {
	ID              string     `json:"attendanceId,omitempty"`
	EmployeeID      string     `json:"employeeId"`
	Date            string     `json:"date" validate:"required,datetime=2006-01-02,notfuture"`
	Reason          string     `json:"reason" validate:"required,max=255"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	ReviewedBy      string     `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
}

// ClockEntry is one working day of an employee: clock-in and, once the day
// is closed, clock-out. Times are wall-clock HH:MM:SS in UTC.
type ClockEntry struct {
	ID            string `json:"clockId,omitempty"`
	EmployeeID    string `json:"employeeId"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	WorkFrom      string `json:"workFrom" validate:"required,oneof=OFFICE HOME CLIENT_SITE"`
	Mode          string `json:"mode" validate:"required,oneof=WEB MOBILE"`
	Location      string `json:"location,omitempty" validate:"omitempty,alpha,max=12"`
	ClockInTime   string `json:"clockInTime"`
	ClockOutTime  string `json:"clockOutTime,omitempty"`
	WorkedMinutes int    `json:"workedMinutes,omitempty"`
}

// ClockedIn reports whether the day is open.
func (c ClockEntry) ClockedIn() bool {
	return c.ClockInTime != "" && c.ClockOutTime == ""
}

// ClockStatus is today's attendance of the caller. Entry is nil before the
// first clock-in of the day.
type ClockStatus struct {
	ClockedIn bool        `json:"clockedIn"`
	Entry     *ClockEntry `json:"entry,omitempty"`
}

type Payroll struct {
	ID          string          `json:"payrollId,omitempty"`
	EmployeeID  string          `json:"employeeId"`
	Month       string          `json:"month"`
	Year        int             `json:"year"`
	BasicSalary decimal.Decimal `json:"basicSalary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	GrossSalary decimal.Decimal `json:"grossSalary"`
	NetSalary   decimal.Decimal `json:"netSalary"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
