package store

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxActivities bounds the activity feed; the oldest entry is evicted
// once the feed is full.
const maxActivities = 50

// Collection keys understood by the persisted-set configuration.
const (
	KeyUser            = "user"
	KeyIsAuthenticated = "isAuthenticated"
	KeyLeads           = "leads"
	KeyTasks           = "tasks"
	KeyEmails          = "emails"
	KeyEmailTemplates  = "emailTemplates"
	KeyAppointments    = "appointments"
	KeyWorkflows       = "workflows"
	KeyActivities      = "activities"
	KeyNotifications   = "notifications"
)

// DefaultPersist mirrors the historical snapshot layout: email templates
// and UI toggles are excluded.
func DefaultPersist() []string {
	return []string{
		KeyUser, KeyIsAuthenticated, KeyLeads, KeyTasks, KeyEmails,
		KeyAppointments, KeyWorkflows, KeyActivities, KeyNotifications,
	}
}

// Persister receives the serialized snapshot after every mutation.
type Persister interface {
	SaveSnapshot(data []byte) error
}

// Options configures a Store. Zero values select sensible defaults.
type Options struct {
	// Persister is optional; a nil persister means memory-only.
	Persister Persister
	// Persist names the snapshot fields to write. Nil selects
	// DefaultPersist.
	Persist []string
	// Now and NewID exist for tests.
	Now   func() time.Time
	NewID func() string
}

type state struct {
	user            *User
	isAuthenticated bool
	leads           []Lead
	tasks           []Task
	emails          []Email
	emailTemplates  []EmailTemplate
	appointments    []Appointment
	workflows       []Workflow
	activities      []Activity
	notifications   []Notification

	sidebarCollapsed  bool
	notificationsOpen bool
}

// Store is the single source of truth for all CRM collections. Every
// mutation applies synchronously under one lock; readers always observe
// a fully-applied prior mutation.
type Store struct {
	mu        sync.RWMutex
	st        state
	persister Persister
	persist   map[string]bool
	now       func() time.Time
	newID     func() string
}

// New constructs an empty store. Call Restore or Seed afterwards to
// populate it.
func New(opts Options) *Store {
	s := &Store{
		persister: opts.Persister,
		now:       opts.Now,
		newID:     opts.NewID,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	keys := opts.Persist
	if keys == nil {
		keys = DefaultPersist()
	}
	s.persist = make(map[string]bool, len(keys))
	for _, k := range keys {
		s.persist[k] = true
	}
	return s
}

// snapshotDoc matches the JSON layout of the persisted snapshot.
type snapshotDoc struct {
	User            *User           `json:"user"`
	IsAuthenticated bool            `json:"isAuthenticated"`
	Leads           []Lead          `json:"leads"`
	Tasks           []Task          `json:"tasks"`
	Emails          []Email         `json:"emails"`
	EmailTemplates  []EmailTemplate `json:"emailTemplates"`
	Appointments    []Appointment   `json:"appointments"`
	Workflows       []Workflow      `json:"workflows"`
	Activities      []Activity      `json:"activities"`
	Notifications   []Notification  `json:"notifications"`
}

// Restore replaces the store contents with a previously persisted
// snapshot. Fields absent from the snapshot are left empty.
func (s *Store) Restore(data []byte) error {
	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.user = doc.User
	// isAuthenticated is derived from user presence so the two can
	// never diverge, whatever the snapshot claims.
	s.st.isAuthenticated = doc.User != nil
	s.st.leads = doc.Leads
	s.st.tasks = doc.Tasks
	s.st.emails = doc.Emails
	if len(doc.EmailTemplates) > 0 {
		s.st.emailTemplates = doc.EmailTemplates
	} else if len(s.st.emailTemplates) == 0 {
		// the default snapshot layout omits templates; repopulate the
		// stock library so it survives restarts
		s.st.emailTemplates = defaultEmailTemplates()
	}
	s.st.appointments = doc.Appointments
	s.st.workflows = doc.Workflows
	s.st.activities = doc.Activities
	if len(s.st.activities) > maxActivities {
		s.st.activities = s.st.activities[:maxActivities]
	}
	s.st.notifications = doc.Notifications
	return nil
}

// Snapshot serializes the configured subset of state.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() ([]byte, error) {
	doc := make(map[string]interface{}, len(s.persist))
	if s.persist[KeyUser] {
		doc[KeyUser] = s.st.user
	}
	if s.persist[KeyIsAuthenticated] {
		doc[KeyIsAuthenticated] = s.st.isAuthenticated
	}
	if s.persist[KeyLeads] {
		doc[KeyLeads] = s.st.leads
	}
	if s.persist[KeyTasks] {
		doc[KeyTasks] = s.st.tasks
	}
	if s.persist[KeyEmails] {
		doc[KeyEmails] = s.st.emails
	}
	if s.persist[KeyEmailTemplates] {
		doc[KeyEmailTemplates] = s.st.emailTemplates
	}
	if s.persist[KeyAppointments] {
		doc[KeyAppointments] = s.st.appointments
	}
	if s.persist[KeyWorkflows] {
		doc[KeyWorkflows] = s.st.workflows
	}
	if s.persist[KeyActivities] {
		doc[KeyActivities] = s.st.activities
	}
	if s.persist[KeyNotifications] {
		doc[KeyNotifications] = s.st.notifications
	}
	return json.Marshal(doc)
}

// persistLocked writes the snapshot after a mutation. A failed write
// downgrades the session to memory-only instead of surfacing an error.
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	data, err := s.snapshotLocked()
	if err != nil {
		s.persister = nil
		return
	}
	if err := s.persister.SaveSnapshot(data); err != nil {
		s.persister = nil
	}
}

// Persisting reports whether snapshot writes are still active.
func (s *Store) Persisting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persister != nil
}

// --- Session ---

// Login accepts any credentials and synthesizes an agent session.
func (s *Store) Login(email, _ string) User {
	user := User{
		ID:        s.newID(),
		FirstName: "Alex",
		LastName:  "Morgan",
		Email:     email,
		Role:      "agent",
		Plan:      "professional",
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.user = &user
	s.st.isAuthenticated = true
	s.persistLocked()
	return user
}

// Logout clears the session.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.user = nil
	s.st.isAuthenticated = false
	s.persistLocked()
}

// SetUser installs or clears the session record, keeping the
// authenticated flag in sync with user presence.
func (s *Store) SetUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user != nil {
		clone := *user
		s.st.user = &clone
	} else {
		s.st.user = nil
	}
	s.st.isAuthenticated = s.st.user != nil
	s.persistLocked()
}

// User returns the active session record, or nil.
func (s *Store) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.st.user == nil {
		return nil
	}
	clone := *s.st.user
	return &clone
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.isAuthenticated
}

// --- Leads ---

// Leads returns the lead collection in insertion order.
func (s *Store) Leads() []Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Lead, len(s.st.leads))
	copy(out, s.st.leads)
	return out
}

// LeadByID looks up a lead by id.
func (s *Store) LeadByID(id string) (Lead, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.st.leads {
		if s.st.leads[i].ID == id {
			return s.st.leads[i], true
		}
	}
	return Lead{}, false
}

// AddLead assigns a fresh id and creation timestamp, appends the lead
// and records a lead_created activity. Caller-supplied fields are stored
// as-is; nothing is validated.
func (s *Store) AddLead(lead Lead) Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead.ID = s.newID()
	lead.CreatedAt = s.now()
	if lead.LastContact.IsZero() {
		lead.LastContact = lead.CreatedAt
	}
	if lead.Status == "" {
		lead.Status = LeadNew
	}
	s.st.leads = append(s.st.leads, lead)
	s.addActivityLocked(ActivityLeadCreated, fmt.Sprintf("New lead %s added", lead.Name), lead.ID)
	s.persistLocked()
	return lead
}

// UpdateLead merges the patch into the matching lead and refreshes
// lastContact. A status change records a status_changed activity.
// Missing ids are a silent no-op reported only by the bool.
func (s *Store) UpdateLead(id string, patch LeadPatch) (Lead, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.leads {
		if s.st.leads[i].ID != id {
			continue
		}
		l := &s.st.leads[i]
		if patch.Name != nil {
			l.Name = *patch.Name
		}
		if patch.Email != nil {
			l.Email = *patch.Email
		}
		if patch.Phone != nil {
			l.Phone = *patch.Phone
		}
		if patch.Status != nil {
			l.Status = *patch.Status
		}
		if patch.Source != nil {
			l.Source = *patch.Source
		}
		if patch.PropertyInterest != nil {
			l.PropertyInterest = *patch.PropertyInterest
		}
		if patch.Budget != nil {
			l.Budget = *patch.Budget
		}
		if patch.Notes != nil {
			l.Notes = *patch.Notes
		}
		if patch.Tags != nil {
			l.Tags = append([]string(nil), (*patch.Tags)...)
		}
		if patch.AssignedTo != nil {
			l.AssignedTo = *patch.AssignedTo
		}
		if patch.DealValue != nil {
			l.DealValue = *patch.DealValue
		}
		l.LastContact = s.now()
		if patch.Status != nil {
			s.addActivityLocked(ActivityStatusChanged, fmt.Sprintf("%s moved to %s", l.Name, *patch.Status), id)
		}
		s.persistLocked()
		return *l, true
	}
	return Lead{}, false
}

// DeleteLead removes the lead. Tasks and appointments referencing it are
// left alone; dangling lead ids are tolerated by design.
func (s *Store) DeleteLead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.leads {
		if s.st.leads[i].ID == id {
			s.st.leads = append(s.st.leads[:i], s.st.leads[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// --- Tasks ---

func (s *Store) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Task, len(s.st.tasks))
	copy(out, s.st.tasks)
	return out
}

func (s *Store) TaskByID(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.st.tasks {
		if s.st.tasks[i].ID == id {
			return s.st.tasks[i], true
		}
	}
	return Task{}, false
}

// AddTask assigns a fresh id and creation timestamp and appends the task.
func (s *Store) AddTask(task Task) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task.ID = s.newID()
	task.CreatedAt = s.now()
	if task.Status == "" {
		task.Status = TaskPending
	}
	s.st.tasks = append(s.st.tasks, task)
	s.persistLocked()
	return task
}

// UpdateTask merges the patch. A transition into completed records a
// task_completed activity exactly once; re-completing an already
// completed task does not.
func (s *Store) UpdateTask(id string, patch TaskPatch) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.tasks {
		if s.st.tasks[i].ID != id {
			continue
		}
		t := &s.st.tasks[i]
		prior := t.Status
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.DueDate != nil {
			t.DueDate = *patch.DueDate
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Type != nil {
			t.Type = *patch.Type
		}
		if patch.LeadID != nil {
			t.LeadID = *patch.LeadID
		}
		if patch.Status != nil && *patch.Status == TaskCompleted && prior != TaskCompleted {
			s.addActivityLocked(ActivityTaskCompleted, fmt.Sprintf("Completed: %s", t.Title), t.LeadID)
		}
		s.persistLocked()
		return *t, true
	}
	return Task{}, false
}

func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.tasks {
		if s.st.tasks[i].ID == id {
			s.st.tasks = append(s.st.tasks[:i], s.st.tasks[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// --- Appointments ---

func (s *Store) Appointments() []Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Appointment, len(s.st.appointments))
	copy(out, s.st.appointments)
	return out
}

func (s *Store) AddAppointment(apt Appointment) Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	apt.ID = s.newID()
	s.st.appointments = append(s.st.appointments, apt)
	s.persistLocked()
	return apt
}

func (s *Store) UpdateAppointment(id string, patch AppointmentPatch) (Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.appointments {
		if s.st.appointments[i].ID != id {
			continue
		}
		a := &s.st.appointments[i]
		if patch.Title != nil {
			a.Title = *patch.Title
		}
		if patch.Description != nil {
			a.Description = *patch.Description
		}
		if patch.Date != nil {
			a.Date = *patch.Date
		}
		if patch.StartTime != nil {
			a.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			a.EndTime = *patch.EndTime
		}
		if patch.Type != nil {
			a.Type = *patch.Type
		}
		if patch.LeadID != nil {
			a.LeadID = *patch.LeadID
		}
		if patch.Location != nil {
			a.Location = *patch.Location
		}
		s.persistLocked()
		return *a, true
	}
	return Appointment{}, false
}

func (s *Store) DeleteAppointment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.appointments {
		if s.st.appointments[i].ID == id {
			s.st.appointments = append(s.st.appointments[:i], s.st.appointments[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// --- Workflows ---

func (s *Store) Workflows() []Workflow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Workflow, len(s.st.workflows))
	copy(out, s.st.workflows)
	return out
}

func (s *Store) AddWorkflow(wf Workflow) Workflow {
	s.mu.Lock()
	defer s.mu.Unlock()
	wf.ID = s.newID()
	wf.CreatedAt = s.now()
	s.st.workflows = append(s.st.workflows, wf)
	s.persistLocked()
	return wf
}

func (s *Store) UpdateWorkflow(id string, patch WorkflowPatch) (Workflow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.workflows {
		if s.st.workflows[i].ID != id {
			continue
		}
		w := &s.st.workflows[i]
		if patch.Name != nil {
			w.Name = *patch.Name
		}
		if patch.Description != nil {
			w.Description = *patch.Description
		}
		if patch.Trigger != nil {
			w.Trigger = *patch.Trigger
		}
		if patch.TriggerValue != nil {
			w.TriggerValue = *patch.TriggerValue
		}
		if patch.Actions != nil {
			w.Actions = append([]WorkflowAction(nil), (*patch.Actions)...)
		}
		if patch.IsActive != nil {
			w.IsActive = *patch.IsActive
		}
		s.persistLocked()
		return *w, true
	}
	return Workflow{}, false
}

func (s *Store) DeleteWorkflow(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.workflows {
		if s.st.workflows[i].ID == id {
			s.st.workflows = append(s.st.workflows[:i], s.st.workflows[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// --- Email templates ---

func (s *Store) EmailTemplates() []EmailTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]EmailTemplate, len(s.st.emailTemplates))
	copy(out, s.st.emailTemplates)
	return out
}

func (s *Store) AddEmailTemplate(tpl EmailTemplate) EmailTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl.ID = s.newID()
	s.st.emailTemplates = append(s.st.emailTemplates, tpl)
	s.persistLocked()
	return tpl
}

func (s *Store) UpdateEmailTemplate(id string, patch TemplatePatch) (EmailTemplate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.emailTemplates {
		if s.st.emailTemplates[i].ID != id {
			continue
		}
		t := &s.st.emailTemplates[i]
		if patch.Name != nil {
			t.Name = *patch.Name
		}
		if patch.Subject != nil {
			t.Subject = *patch.Subject
		}
		if patch.Body != nil {
			t.Body = *patch.Body
		}
		if patch.Category != nil {
			t.Category = *patch.Category
		}
		s.persistLocked()
		return *t, true
	}
	return EmailTemplate{}, false
}

func (s *Store) DeleteEmailTemplate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.emailTemplates {
		if s.st.emailTemplates[i].ID == id {
			s.st.emailTemplates = append(s.st.emailTemplates[:i], s.st.emailTemplates[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// --- Emails ---

func (s *Store) Emails() []Email {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Email, len(s.st.emails))
	copy(out, s.st.emails)
	return out
}

// AddEmail records a composed message. A message added in sent status
// gets an email_sent activity. Nothing is delivered anywhere.
func (s *Store) AddEmail(email Email) Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	email.ID = s.newID()
	email.CreatedAt = s.now()
	if email.Status == EmailSent && email.SentAt == nil {
		sent := email.CreatedAt
		email.SentAt = &sent
	}
	s.st.emails = append(s.st.emails, email)
	if email.Status == EmailSent {
		s.addActivityLocked(ActivityEmailSent, fmt.Sprintf("Email sent: %s", email.Subject), email.LeadID)
	}
	s.persistLocked()
	return email
}

// --- Activities ---

func (s *Store) Activities() []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Activity, len(s.st.activities))
	copy(out, s.st.activities)
	return out
}

// AddActivity prepends a feed entry and evicts beyond the cap.
func (s *Store) AddActivity(typ ActivityType, description, leadID string) Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	act := s.addActivityLocked(typ, description, leadID)
	s.persistLocked()
	return act
}

func (s *Store) addActivityLocked(typ ActivityType, description, leadID string) Activity {
	act := Activity{
		ID:          s.newID(),
		Type:        typ,
		Description: description,
		LeadID:      leadID,
		CreatedAt:   s.now(),
	}
	s.st.activities = append([]Activity{act}, s.st.activities...)
	if len(s.st.activities) > maxActivities {
		s.st.activities = s.st.activities[:maxActivities]
	}
	return act
}

// --- Notifications ---

func (s *Store) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notification, len(s.st.notifications))
	copy(out, s.st.notifications)
	return out
}

// UnreadNotifications counts notifications not yet marked read.
func (s *Store) UnreadNotifications() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for i := range s.st.notifications {
		if !s.st.notifications[i].Read {
			n++
		}
	}
	return n
}

// AddNotification prepends an unread notification.
func (s *Store) AddNotification(title, message string, typ NotificationType) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	note := Notification{
		ID:        s.newID(),
		Title:     title,
		Message:   message,
		Type:      typ,
		Read:      false,
		CreatedAt: s.now(),
	}
	s.st.notifications = append([]Notification{note}, s.st.notifications...)
	s.persistLocked()
	return note
}

func (s *Store) MarkNotificationRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.st.notifications {
		if s.st.notifications[i].ID == id {
			s.st.notifications[i].Read = true
			s.persistLocked()
			return true
		}
	}
	return false
}

func (s *Store) ClearNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.notifications = nil
	s.persistLocked()
}

// --- UI toggles (session-only, never persisted) ---

func (s *Store) SidebarCollapsed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.sidebarCollapsed
}

func (s *Store) ToggleSidebar() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.sidebarCollapsed = !s.st.sidebarCollapsed
	return s.st.sidebarCollapsed
}

func (s *Store) NotificationsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.notificationsOpen
}

func (s *Store) ToggleNotifications() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.notificationsOpen = !s.st.notificationsOpen
	return s.st.notificationsOpen
}
