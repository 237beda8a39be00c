package notification

import "time"

// NotificationType classifies a notification for client rendering and
// filtering.
type NotificationType string

const (
	TypePayrollProcessed NotificationType = "payroll_processed"
	TypePayslipStatus    NotificationType = "payslip_status"
	TypeReview           NotificationType = "review"
	TypeLeavePolicy      NotificationType = "leave_policy"
	TypePlanChanged      NotificationType = "plan_changed"
	TypeSystem           NotificationType = "system"
)

// Notification is an independently lived record addressed to one user.
// It is created as a side effect of payroll and leave transitions and
// read or dismissed by its recipient.
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Link        string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// Intent is a notification that has been decided but not yet persisted.
// Domain operations return intents; the dispatcher queues them
// best-effort so a delivery failure never rolls back the operation
// that produced them.
type Intent struct {
	CompanyID   string
	RecipientID string
	SenderID    *string
	Type        NotificationType
	Title       string
	Message     string
	Link        string
}
