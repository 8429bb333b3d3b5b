package store

import "time"

// LeadStatus is the pipeline stage a lead currently sits in. Any
// transition between stages is allowed.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadQualified LeadStatus = "qualified"
	LeadShowing   LeadStatus = "showing"
	LeadOffer     LeadStatus = "offer"
	LeadContract  LeadStatus = "contract"
	LeadClosed    LeadStatus = "closed"
	LeadLost      LeadStatus = "lost"
)

// PipelineStages lists the stages in kanban column order.
var PipelineStages = []LeadStatus{
	LeadNew, LeadContacted, LeadQualified, LeadShowing,
	LeadOffer, LeadContract, LeadClosed, LeadLost,
}

// Lead is a prospective client tracked through the sales pipeline.
type Lead struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Status           LeadStatus `json:"status"`
	Source           string     `json:"source"`
	PropertyInterest string     `json:"propertyInterest"`
	Budget           string     `json:"budget,omitempty"`
	Notes            string     `json:"notes"`
	Tags             []string   `json:"tags"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastContact      time.Time  `json:"lastContact"`
	AssignedTo       string     `json:"assignedTo,omitempty"`
	DealValue        float64    `json:"dealValue"`
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	// TaskOverdue is never stored; it is derived by comparing the due
	// date to the current day wherever it is displayed.
	TaskOverdue TaskStatus = "overdue"
)

type TaskType string

const (
	TaskCall     TaskType = "call"
	TaskEmail    TaskType = "email"
	TaskMeeting  TaskType = "meeting"
	TaskShowing  TaskType = "showing"
	TaskFollowUp TaskType = "follow-up"
	TaskOther    TaskType = "other"
)

// Task is a to-do item, optionally linked to a lead by id. The link is a
// weak reference: it is not validated and survives lead deletion.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     string       `json:"dueDate"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Type        TaskType     `json:"type"`
	LeadID      string       `json:"leadId,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type AppointmentType string

const (
	AppointmentShowing AppointmentType = "showing"
	AppointmentMeeting AppointmentType = "meeting"
	AppointmentClosing AppointmentType = "closing"
	AppointmentCall    AppointmentType = "call"
	AppointmentOther   AppointmentType = "other"
)

// Appointment is a calendar entry. Start and end times are free-text
// HH:MM strings, as entered.
type Appointment struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	StartTime   string          `json:"startTime"`
	EndTime     string          `json:"endTime"`
	Type        AppointmentType `json:"type"`
	LeadID      string          `json:"leadId,omitempty"`
	Location    string          `json:"location,omitempty"`
}

type WorkflowTrigger string

const (
	TriggerNewLead      WorkflowTrigger = "new_lead"
	TriggerStatusChange WorkflowTrigger = "status_change"
	TriggerDateReached  WorkflowTrigger = "date_reached"
)

type WorkflowActionType string

const (
	ActionSendEmail    WorkflowActionType = "send_email"
	ActionCreateTask   WorkflowActionType = "create_task"
	ActionWait         WorkflowActionType = "wait"
	ActionUpdateStatus WorkflowActionType = "update_status"
	ActionCondition    WorkflowActionType = "condition"
)

// WorkflowAction is one step in a workflow's ordered sequence. Config is
// an opaque map interpreted by nothing in this codebase.
type WorkflowAction struct {
	ID     string                 `json:"id"`
	Type   WorkflowActionType     `json:"type"`
	Config map[string]interface{} `json:"config"`
	Order  int                    `json:"order"`
}

// Workflow is a declarative automation description. There is no
// execution engine; workflows are stored and displayed, never run.
type Workflow struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Trigger      WorkflowTrigger  `json:"trigger"`
	TriggerValue string           `json:"triggerValue,omitempty"`
	Actions      []WorkflowAction `json:"actions"`
	IsActive     bool             `json:"isActive"`
	CreatedAt    time.Time        `json:"createdAt"`
}

type TemplateCategory string

const (
	CategoryWelcome  TemplateCategory = "welcome"
	CategoryFollowUp TemplateCategory = "follow-up"
	CategoryClosing  TemplateCategory = "closing"
	CategoryReview   TemplateCategory = "review"
	CategoryCustom   TemplateCategory = "custom"
)

// EmailTemplate holds a reusable subject/body pair. {{placeholder}}
// tokens are kept verbatim; nothing interpolates them.
type EmailTemplate struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Subject  string           `json:"subject"`
	Body     string           `json:"body"`
	Category TemplateCategory `json:"category"`
}

type EmailStatus string

const (
	EmailDraft     EmailStatus = "draft"
	EmailSent      EmailStatus = "sent"
	EmailScheduled EmailStatus = "scheduled"
)

// Email is a composed message. Nothing is actually delivered.
type Email struct {
	ID         string      `json:"id"`
	Subject    string      `json:"subject"`
	Body       string      `json:"body"`
	To         string      `json:"to"`
	From       string      `json:"from"`
	Status     EmailStatus `json:"status"`
	SentAt     *time.Time  `json:"sentAt,omitempty"`
	LeadID     string      `json:"leadId,omitempty"`
	TemplateID string      `json:"templateId,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

type ActivityType string

const (
	ActivityLeadCreated   ActivityType = "lead_created"
	ActivityEmailSent     ActivityType = "email_sent"
	ActivityTaskCompleted ActivityType = "task_completed"
	ActivityStatusChanged ActivityType = "status_changed"
	ActivityCallMade      ActivityType = "call_made"
	ActivityNoteAdded     ActivityType = "note_added"
)

// Activity is an append-only feed entry, newest first, capped at the 50
// most recent.
type Activity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	LeadID      string       `json:"leadId,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type NotificationType string

const (
	NotifyInfo    NotificationType = "info"
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

// User is the active session record. Credentials are never checked.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Plan      string `json:"plan"`
}

// LeadPatch carries a partial lead update; nil fields are left untouched.
type LeadPatch struct {
	Name             *string
	Email            *string
	Phone            *string
	Status           *LeadStatus
	Source           *string
	PropertyInterest *string
	Budget           *string
	Notes            *string
	Tags             *[]string
	AssignedTo       *string
	DealValue        *float64
}

// TaskPatch carries a partial task update.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *TaskPriority
	Status      *TaskStatus
	Type        *TaskType
	LeadID      *string
}

// AppointmentPatch carries a partial appointment update.
type AppointmentPatch struct {
	Title       *string
	Description *string
	Date        *string
	StartTime   *string
	EndTime     *string
	Type        *AppointmentType
	LeadID      *string
	Location    *string
}

// WorkflowPatch carries a partial workflow update.
type WorkflowPatch struct {
	Name         *string
	Description  *string
	Trigger      *WorkflowTrigger
	TriggerValue *string
	Actions      *[]WorkflowAction
	IsActive     *bool
}

// TemplatePatch carries a partial email template update.
type TemplatePatch struct {
	Name     *string
	Subject  *string
	Body     *string
	Category *TemplateCategory
}
