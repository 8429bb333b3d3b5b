package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type memPersister struct {
	data  []byte
	saves int
	fail  bool
}

func (p *memPersister) SaveSnapshot(data []byte) error {
	if p.fail {
		return errors.New("disk full")
	}
	p.saves++
	p.data = append([]byte(nil), data...)
	return nil
}

func testStore(t *testing.T, persister Persister) (*Store, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2024, 12, 19, 9, 0, 0, 0, time.UTC)}
	s := New(Options{
		Persister: persister,
		Now:       c.Now,
		NewID:     seqIDs(),
	})
	return s, c
}

func TestAddLeadDefaults(t *testing.T) {
	s, c := testStore(t, nil)

	lead := s.AddLead(Lead{Name: "Jane Doe", Source: "Website"})

	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, c.Now(), lead.CreatedAt)
	assert.Equal(t, c.Now(), lead.LastContact)
	assert.Equal(t, LeadNew, lead.Status)

	activities := s.Activities()
	require.Len(t, activities, 1)
	assert.Equal(t, ActivityLeadCreated, activities[0].Type)
	assert.Equal(t, "New lead Jane Doe added", activities[0].Description)
	assert.Equal(t, lead.ID, activities[0].LeadID)
}

func TestUpdateLeadRefreshesLastContact(t *testing.T) {
	s, c := testStore(t, nil)
	lead := s.AddLead(Lead{Name: "Jane Doe", Email: "jane@example.com", Notes: "keep me"})

	c.Advance(2 * time.Hour)
	phone := "(555) 111-2222"
	updated, ok := s.UpdateLead(lead.ID, LeadPatch{Phone: &phone})

	require.True(t, ok)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, c.Now(), updated.LastContact)
	assert.Equal(t, "jane@example.com", updated.Email)
	assert.Equal(t, "keep me", updated.Notes)
	// no status change means no new activity
	assert.Len(t, s.Activities(), 1)
}

func TestUpdateLeadStatusRecordsActivity(t *testing.T) {
	s, _ := testStore(t, nil)
	lead := s.AddLead(Lead{Name: "Jane Doe"})

	status := LeadQualified
	_, ok := s.UpdateLead(lead.ID, LeadPatch{Status: &status})
	require.True(t, ok)

	activities := s.Activities()
	require.Len(t, activities, 2)
	assert.Equal(t, ActivityStatusChanged, activities[0].Type)
	assert.Contains(t, activities[0].Description, "Jane Doe")
	assert.Contains(t, activities[0].Description, "qualified")
}

func TestUpdateMissingLeadIsNoOp(t *testing.T) {
	s, _ := testStore(t, nil)
	s.AddLead(Lead{Name: "Jane Doe"})

	name := "Ghost"
	_, ok := s.UpdateLead("no-such-id", LeadPatch{Name: &name})

	assert.False(t, ok)
	assert.Len(t, s.Leads(), 1)
	assert.Len(t, s.Activities(), 1)
}

func TestDeleteLeadTwice(t *testing.T) {
	s, _ := testStore(t, nil)
	lead := s.AddLead(Lead{Name: "Jane Doe"})

	assert.True(t, s.DeleteLead(lead.ID))
	assert.False(t, s.DeleteLead(lead.ID))
	assert.Empty(t, s.Leads())
}

func TestTaskCompletionActivityOnce(t *testing.T) {
	s, _ := testStore(t, nil)
	task := s.AddTask(Task{Title: "Call Jane", DueDate: "2024-12-19"})

	completed := TaskCompleted
	_, ok := s.UpdateTask(task.ID, TaskPatch{Status: &completed})
	require.True(t, ok)

	activities := s.Activities()
	require.Len(t, activities, 1)
	assert.Equal(t, ActivityTaskCompleted, activities[0].Type)
	assert.Equal(t, "Completed: Call Jane", activities[0].Description)

	// completing an already completed task adds nothing
	_, ok = s.UpdateTask(task.ID, TaskPatch{Status: &completed})
	require.True(t, ok)
	assert.Len(t, s.Activities(), 1)
}

func TestActivityFeedCap(t *testing.T) {
	s, _ := testStore(t, nil)

	for i := 0; i < maxActivities+10; i++ {
		s.AddActivity(ActivityNoteAdded, fmt.Sprintf("note %d", i), "")
	}

	activities := s.Activities()
	require.Len(t, activities, maxActivities)
	assert.Equal(t, fmt.Sprintf("note %d", maxActivities+9), activities[0].Description)
}

func TestLoginLogout(t *testing.T) {
	s, _ := testStore(t, nil)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())

	user := s.Login("agent@example.com", "whatever")
	assert.Equal(t, "Alex", user.FirstName)
	assert.Equal(t, "Morgan", user.LastName)
	assert.Equal(t, "agent@example.com", user.Email)
	assert.Equal(t, "agent", user.Role)
	assert.True(t, s.IsAuthenticated())
	require.NotNil(t, s.User())

	s.Logout()
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.User())
}

func TestSetUserKeepsAuthInSync(t *testing.T) {
	s, _ := testStore(t, nil)

	s.SetUser(&User{ID: "u1", FirstName: "Alex"})
	assert.True(t, s.IsAuthenticated())

	s.SetUser(nil)
	assert.False(t, s.IsAuthenticated())
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	p := &memPersister{}
	s, _ := testStore(t, p)

	s.Login("agent@example.com", "pw")
	lead := s.AddLead(Lead{Name: "Jane Doe", DealValue: 100000})
	s.AddTask(Task{Title: "Call Jane", DueDate: "2024-12-19", LeadID: lead.ID})
	s.AddNotification("New Lead", "Jane Doe inquired", NotifyInfo)

	data, err := s.Snapshot()
	require.NoError(t, err)

	restored := New(Options{})
	require.NoError(t, restored.Restore(data))

	assert.True(t, restored.IsAuthenticated())
	require.Len(t, restored.Leads(), 1)
	assert.Equal(t, "Jane Doe", restored.Leads()[0].Name)
	assert.Len(t, restored.Tasks(), 1)
	assert.Len(t, restored.Notifications(), 1)
	assert.Equal(t, 1, restored.UnreadNotifications())
}

func TestTemplatesSurviveRestart(t *testing.T) {
	p := &memPersister{}
	first, _ := testStore(t, p)
	first.Seed()
	require.NotEmpty(t, p.data)

	// a fresh session restores the snapshot onto an unseeded store; the
	// snapshot omits templates, so the stock library must come back
	second := New(Options{})
	require.NoError(t, second.Restore(p.data))
	require.NotEmpty(t, second.EmailTemplates())
	assert.Len(t, second.EmailTemplates(), 4)
	assert.Len(t, second.Leads(), 6)
}

func TestRestorePrefersSnapshotTemplates(t *testing.T) {
	s, _ := testStore(t, nil)

	data := []byte(`{"emailTemplates":[{"id":"t1","name":"Custom","subject":"Hi","body":"Hello","category":"custom"}]}`)
	require.NoError(t, s.Restore(data))

	templates := s.EmailTemplates()
	require.Len(t, templates, 1)
	assert.Equal(t, "Custom", templates[0].Name)
}

func TestRestoreKeepsExistingTemplates(t *testing.T) {
	s, _ := testStore(t, nil)
	added := s.AddEmailTemplate(EmailTemplate{Name: "Mine", Category: CategoryCustom})

	require.NoError(t, s.Restore([]byte(`{"leads":[]}`)))

	templates := s.EmailTemplates()
	require.Len(t, templates, 1)
	assert.Equal(t, added.ID, templates[0].ID)
}

func TestRestoreDerivesAuthFromUser(t *testing.T) {
	s, _ := testStore(t, nil)

	require.NoError(t, s.Restore([]byte(`{"user":null,"isAuthenticated":true}`)))
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.Restore([]byte(`{"user":{"id":"u1","firstName":"Alex"},"isAuthenticated":false}`)))
	assert.True(t, s.IsAuthenticated())
}

func TestRestoreTruncatesActivityFeed(t *testing.T) {
	s, _ := testStore(t, nil)

	var doc snapshotDoc
	for i := 0; i < maxActivities+5; i++ {
		doc.Activities = append(doc.Activities, Activity{ID: fmt.Sprintf("a%d", i)})
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	require.NoError(t, s.Restore(data))
	assert.Len(t, s.Activities(), maxActivities)
}

func TestSnapshotHonorsPersistList(t *testing.T) {
	c := &clock{now: time.Date(2024, 12, 19, 9, 0, 0, 0, time.UTC)}
	s := New(Options{
		Persist: []string{KeyLeads},
		Now:     c.Now,
		NewID:   seqIDs(),
	})
	s.AddLead(Lead{Name: "Jane Doe"})
	s.AddTask(Task{Title: "Call Jane"})

	data, err := s.Snapshot()
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, KeyLeads)
	assert.NotContains(t, doc, KeyTasks)
	assert.NotContains(t, doc, KeyUser)
}

func TestDefaultPersistExcludesTemplates(t *testing.T) {
	assert.NotContains(t, DefaultPersist(), KeyEmailTemplates)
	assert.Contains(t, DefaultPersist(), KeyLeads)
}

func TestPersistFailureDowngradesToMemory(t *testing.T) {
	p := &memPersister{fail: true}
	s, _ := testStore(t, p)
	assert.True(t, s.Persisting())

	s.AddLead(Lead{Name: "Jane Doe"})
	assert.False(t, s.Persisting())

	// mutations keep working in memory
	s.AddLead(Lead{Name: "John Roe"})
	assert.Len(t, s.Leads(), 2)
}

func TestMutationsWriteSnapshot(t *testing.T) {
	p := &memPersister{}
	s, _ := testStore(t, p)

	s.AddLead(Lead{Name: "Jane Doe"})
	require.Positive(t, p.saves)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(p.data, &doc))
	assert.Contains(t, doc, KeyLeads)
}

func TestAddEmailSentActivity(t *testing.T) {
	s, c := testStore(t, nil)

	email := s.AddEmail(Email{Subject: "Welcome!", Status: EmailSent, LeadID: "1"})
	require.NotNil(t, email.SentAt)
	assert.Equal(t, c.Now(), *email.SentAt)

	activities := s.Activities()
	require.Len(t, activities, 1)
	assert.Equal(t, ActivityEmailSent, activities[0].Type)
	assert.Equal(t, "Email sent: Welcome!", activities[0].Description)

	// drafts record nothing
	draft := s.AddEmail(Email{Subject: "Later", Status: EmailDraft})
	assert.Nil(t, draft.SentAt)
	assert.Len(t, s.Activities(), 1)
}

func TestNotificationLifecycle(t *testing.T) {
	s, _ := testStore(t, nil)

	first := s.AddNotification("One", "first", NotifyInfo)
	second := s.AddNotification("Two", "second", NotifyWarning)

	notes := s.Notifications()
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.False(t, notes[0].Read)
	assert.Equal(t, 2, s.UnreadNotifications())

	assert.True(t, s.MarkNotificationRead(first.ID))
	assert.Equal(t, 1, s.UnreadNotifications())
	assert.False(t, s.MarkNotificationRead("no-such-id"))

	s.ClearNotifications()
	assert.Empty(t, s.Notifications())
	assert.Zero(t, s.UnreadNotifications())
}

func TestTogglesAreSessionOnly(t *testing.T) {
	p := &memPersister{}
	s, _ := testStore(t, p)

	assert.False(t, s.SidebarCollapsed())
	assert.True(t, s.ToggleSidebar())
	assert.True(t, s.SidebarCollapsed())

	assert.False(t, s.NotificationsOpen())
	assert.True(t, s.ToggleNotifications())
	assert.False(t, s.ToggleNotifications())

	// toggling never persists anything
	assert.Zero(t, p.saves)
}

func TestSeedPopulatesSampleData(t *testing.T) {
	p := &memPersister{}
	s, _ := testStore(t, p)
	s.Seed()

	assert.Len(t, s.Leads(), 6)
	assert.Len(t, s.Tasks(), 5)
	assert.Len(t, s.Appointments(), 3)
	assert.Len(t, s.EmailTemplates(), 4)
	assert.Len(t, s.Workflows(), 3)
	assert.Len(t, s.Activities(), 5)
	assert.Len(t, s.Notifications(), 3)
	assert.Positive(t, p.saves)
}

func TestWorkflowToggle(t *testing.T) {
	s, _ := testStore(t, nil)
	wf := s.AddWorkflow(Workflow{Name: "Welcome", IsActive: true})

	active := false
	updated, ok := s.UpdateWorkflow(wf.ID, WorkflowPatch{IsActive: &active})
	require.True(t, ok)
	assert.False(t, updated.IsActive)

	_, ok = s.UpdateWorkflow("no-such-id", WorkflowPatch{IsActive: &active})
	assert.False(t, ok)
}
