package model

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=30,lowercase,alphanum"`
	Email    string `json:"email" validate:"required,email,lowercase"`
	Role     string `json:"role" validate:"required,oneof=HR MANAGER FINANCE EMPLOYEE"`
}

type RegularizationRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02,notfuture,thisyear"`
	Reason string `json:"reason" validate:"required,max=50,reason_text"`
}

type ClockInRequest struct {
	WorkFrom string `json:"workFrom" validate:"required,oneof=OFFICE HOME CLIENT_SITE"`
	Mode     string `json:"mode" validate:"required,oneof=WEB MOBILE"`
	Location string `json:"location,omitempty" validate:"omitempty,alpha,max=12"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,max=255"`
}

type PayrollRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Month      string `json:"month" validate:"required,oneof=Jan Feb Mar Apr May Jun Jul Aug Sep Oct Nov Dec"`
	Year       int    `json:"year" validate:"required,min=2000"`
}

type AuditActor struct {
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	IP       string `json:"ip,omitempty"`
}

type AuditEntry struct {
	ID         string     `json:"id,omitempty"`
	Action     string     `json:"action"`
	OccurredAt string     `json:"occurredAt"`
	Actor      AuditActor `json:"actor"`
	Status     string     `json:"status"`
	Resource   string     `json:"resource,omitempty"`
	Before     any        `json:"before,omitempty"`
	After      any        `json:"after,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// AuditQuery filters the audit trail. Zero values match everything.
type AuditQuery struct {
	Action   string
	ActorID  string
	Status   string
	Resource string
	From     string
	To       string
	Page     int
	Limit    int
}
