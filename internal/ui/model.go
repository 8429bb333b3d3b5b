package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"agentdesk/internal/config"
	"agentdesk/internal/store"
	"agentdesk/internal/theme"
)

// Program wraps the Bubble Tea program lifecycle.
type Program struct {
	program *tea.Program
}

// NewProgram constructs a new interactive dashboard session.
func NewProgram(st *store.Store, cfg *config.Store) *Program {
	m := newModel(st, cfg)
	return &Program{program: tea.NewProgram(m)}
}

// Start launches the Bubble Tea program.
func (p *Program) Start() error {
	if p == nil || p.program == nil {
		return fmt.Errorf("nil program")
	}
	return p.program.Start()
}

type viewState int

type settingsMode int

type loginStage int

type detailStage int

const (
	stateLogin viewState = iota
	stateMainMenu
	stateDashboard
	stateLeads
	stateLeadDetail
	stateLeadForm
	statePipeline
	stateTasks
	stateTaskForm
	stateCalendar
	stateAppointmentForm
	stateTemplates
	stateTemplateDetail
	stateWorkflows
	stateAnalytics
	stateNotifications
	stateSettings
	stateTemplateForm
)

const (
	settingsViewing settingsMode = iota
	settingsEditingName
	settingsEditingTimezone
)

const (
	loginStageEmail loginStage = iota
	loginStagePassword
)

const (
	detailViewing detailStage = iota
	detailChoosingStage
	detailChoosingTemplate
	detailConfirmDelete
)

type model struct {
	state       viewState
	prevStates  []viewState
	store       *store.Store
	cfg         *config.Store
	theme       theme.Theme
	width       int
	height      int
	infoMessage string
	errMessage  string
	showSplash  bool

	menuInput textinput.Model

	login loginModel

	leadFilter    textinput.Model
	filteredLeads []store.Lead

	leadForm recordForm
	taskForm recordForm
	apptForm recordForm
	tplForm  recordForm

	detail leadDetailModel

	template store.EmailTemplate

	settings settingsModel
}

type loginModel struct {
	stage    loginStage
	email    textinput.Model
	password textinput.Model
	err      string
}

// recordForm walks an ordered field list one input at a time, the same
// way for leads, tasks and appointments.
type recordForm struct {
	index      int
	fields     []formField
	input      textinput.Model
	err        string
	editing    bool
	recordID   string
	presetLead string
}

type formField struct {
	label    string
	value    string
	required bool
}

type leadDetailModel struct {
	leadID string
	stage  detailStage
	err    string
}

type settingsModel struct {
	mode  settingsMode
	input textinput.Model
	err   string
}

type menuOption struct {
	id       string
	keywords []string
	synonyms []string
}

const (
	menuDashboard     = "dashboard"
	menuLeads         = "leads"
	menuPipeline      = "pipeline"
	menuTasks         = "tasks"
	menuCalendar      = "calendar"
	menuTemplates     = "templates"
	menuWorkflows     = "workflows"
	menuAnalytics     = "analytics"
	menuNotifications = "notifications"
	menuSettings      = "settings"
	menuQuit          = "quit"
)

const (
	detailActionStage       = "stage"
	detailActionTask        = "add-task"
	detailActionAppointment = "add-appointment"
	detailActionEmail       = "send-email"
	detailActionEdit        = "edit-lead"
	detailActionDelete      = "delete-lead"
	detailActionBack        = "back"
)

var mainMenuOptions = []menuOption{
	{id: menuDashboard, keywords: []string{"dashboard"}, synonyms: []string{"1", "d", "dash", "dashboard"}},
	{id: menuLeads, keywords: []string{"leads"}, synonyms: []string{"2", "l", "lead", "leads"}},
	{id: menuPipeline, keywords: []string{"pipeline", "kanban"}, synonyms: []string{"3", "p", "pipeline", "kanban"}},
	{id: menuTasks, keywords: []string{"tasks"}, synonyms: []string{"4", "t", "task", "tasks"}},
	{id: menuCalendar, keywords: []string{"calendar", "appointments"}, synonyms: []string{"5", "c", "cal", "calendar", "appointments"}},
	{id: menuTemplates, keywords: []string{"templates", "emails"}, synonyms: []string{"6", "e", "emails", "templates"}},
	{id: menuWorkflows, keywords: []string{"workflows", "automations"}, synonyms: []string{"7", "w", "workflow", "workflows", "automations"}},
	{id: menuAnalytics, keywords: []string{"analytics", "reports"}, synonyms: []string{"8", "a", "analytics", "reports"}},
	{id: menuNotifications, keywords: []string{"notifications", "inbox"}, synonyms: []string{"9", "n", "notifications", "inbox"}},
	{id: menuSettings, keywords: []string{"settings", "help"}, synonyms: []string{"10", "s", "settings", "help"}},
	{id: menuQuit, keywords: []string{"quit", "exit"}, synonyms: []string{"11", "q", "quit", "exit", "exit."}},
}

var leadDetailOptions = []menuOption{
	{id: detailActionStage, keywords: []string{"stage", "status", "move"}, synonyms: []string{"1", "stage", "status", "move"}},
	{id: detailActionTask, keywords: []string{"task"}, synonyms: []string{"2", "task", "add task"}},
	{id: detailActionAppointment, keywords: []string{"appointment", "showing"}, synonyms: []string{"3", "appointment", "appt", "add appointment"}},
	{id: detailActionEmail, keywords: []string{"email", "send"}, synonyms: []string{"4", "email", "send email"}},
	{id: detailActionEdit, keywords: []string{"edit", "update"}, synonyms: []string{"5", "edit", "update"}},
	{id: detailActionDelete, keywords: []string{"delete", "remove"}, synonyms: []string{"6", "delete", "remove"}},
	{id: detailActionBack, keywords: []string{"back", "close"}, synonyms: []string{"7", "back", "/", "exit."}},
}

const splashBanner = `                            __      __          __
  ____ _____ ____  ____  __/ /_____/ /__  _____/ /__
 / __ '/ __ '/ _ \/ __ \/ __/ __  / _ \/ ___/ //_/
/ /_/ / /_/ /  __/ / / / /_/ /_/ /  __(__  ) ,<
\__,_/\__, /\___/_/ /_/\__/\__,_/\___/____/_/|_|
     /____/
`

func newModel(st *store.Store, cfg *config.Store) *model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Choose an option"
	ti.CharLimit = 32
	ti.Focus()

	filter := textinput.New()
	filter.Prompt = ""
	filter.Placeholder = "Type to search, / to go back"
	filter.CharLimit = 64

	m := model{
		state:      stateMainMenu,
		store:      st,
		cfg:        cfg,
		theme:      theme.Default(),
		menuInput:  ti,
		leadFilter: filter,
		settings:   settingsModel{mode: settingsViewing, input: textinput.New()},
		showSplash: true,
	}
	m.settings.input.Prompt = ""
	m.settings.input.CharLimit = 64

	if !st.IsAuthenticated() {
		m.state = stateLogin
		m.login = newLoginModel()
	}

	m.leadForm = newLeadForm(nil)
	m.taskForm = newTaskForm("")
	m.apptForm = newAppointmentForm("")
	m.tplForm = newTemplateForm(nil)
	m.refreshLeads()
	return &m
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Prompt = ""
	email.Placeholder = "you@agency.com"
	email.CharLimit = 96
	email.Focus()

	password := textinput.New()
	password.Prompt = ""
	password.Placeholder = "Password (any value works)"
	password.CharLimit = 96
	password.EchoMode = textinput.EchoPassword

	return loginModel{stage: loginStageEmail, email: email, password: password}
}

func newLeadForm(existing *store.Lead) recordForm {
	fields := []formField{
		{label: "Name", required: true},
		{label: "Email", required: false},
		{label: "Phone", required: false},
		{label: "Source", required: false},
		{label: "Property interest", required: false},
		{label: "Budget", required: false},
		{label: "Deal value", required: false},
		{label: "Notes", required: false},
		{label: "Tags (comma separated)", required: false},
	}
	form := newRecordForm(fields)
	if existing != nil {
		form.editing = true
		form.recordID = existing.ID
		form.fields[0].value = existing.Name
		form.fields[1].value = existing.Email
		form.fields[2].value = existing.Phone
		form.fields[3].value = existing.Source
		form.fields[4].value = existing.PropertyInterest
		form.fields[5].value = existing.Budget
		form.fields[6].value = strconv.FormatFloat(existing.DealValue, 'f', -1, 64)
		form.fields[7].value = existing.Notes
		form.fields[8].value = strings.Join(existing.Tags, ", ")
		form.input.SetValue(existing.Name)
	}
	return form
}

func newTaskForm(leadID string) recordForm {
	fields := []formField{
		{label: "Title", required: true},
		{label: "Description", required: false},
		{label: "Due date (YYYY-MM-DD)", required: false},
		{label: "Priority (low/medium/high)", required: false},
		{label: "Type (call/email/meeting/showing/follow-up/other)", required: false},
	}
	form := newRecordForm(fields)
	form.presetLead = leadID
	return form
}

func newAppointmentForm(leadID string) recordForm {
	fields := []formField{
		{label: "Title", required: true},
		{label: "Description", required: false},
		{label: "Date (YYYY-MM-DD)", required: true},
		{label: "Start (HH:MM)", required: false},
		{label: "End (HH:MM)", required: false},
		{label: "Type (showing/meeting/closing/call/other)", required: false},
		{label: "Location", required: false},
	}
	form := newRecordForm(fields)
	form.presetLead = leadID
	return form
}

func newTemplateForm(existing *store.EmailTemplate) recordForm {
	fields := []formField{
		{label: "Name", required: true},
		{label: "Category (welcome/follow-up/closing/review/custom)", required: false},
		{label: "Subject", required: true},
		{label: "Body (\\n for line breaks, {{tokens}} stay as written)", required: false},
	}
	form := newRecordForm(fields)
	if existing != nil {
		form.editing = true
		form.recordID = existing.ID
		form.fields[0].value = existing.Name
		form.fields[1].value = string(existing.Category)
		form.fields[2].value = existing.Subject
		form.fields[3].value = strings.ReplaceAll(existing.Body, "\n", "\\n")
		form.input.SetValue(existing.Name)
	}
	return form
}

func newRecordForm(fields []formField) recordForm {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = fields[0].label
	ti.CharLimit = 256
	ti.Focus()
	return recordForm{index: 0, fields: fields, input: ti}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	switch m.state {
	case stateLogin:
		cmd = m.updateLogin(msg)
	case stateMainMenu:
		cmd = m.updateMainMenu(msg)
	case stateDashboard:
		cmd = m.updateDashboard(msg)
	case stateLeads:
		cmd = m.updateLeads(msg)
	case stateLeadDetail:
		cmd = m.updateLeadDetail(msg)
	case stateLeadForm:
		cmd = m.updateLeadForm(msg)
	case statePipeline:
		cmd = m.updatePipeline(msg)
	case stateTasks:
		cmd = m.updateTasks(msg)
	case stateTaskForm:
		cmd = m.updateTaskForm(msg)
	case stateCalendar:
		cmd = m.updateCalendar(msg)
	case stateAppointmentForm:
		cmd = m.updateAppointmentForm(msg)
	case stateTemplates:
		cmd = m.updateTemplates(msg)
	case stateTemplateDetail:
		cmd = m.updateTemplateDetail(msg)
	case stateTemplateForm:
		cmd = m.updateTemplateForm(msg)
	case stateWorkflows:
		cmd = m.updateWorkflows(msg)
	case stateAnalytics:
		cmd = m.updateAnalytics(msg)
	case stateNotifications:
		cmd = m.updateNotifications(msg)
	case stateSettings:
		cmd = m.updateSettings(msg)
	default:
		m.state = stateMainMenu
		cmd = m.updateMainMenu(msg)
	}
	return m, cmd
}

func (m *model) View() string {
	switch m.state {
	case stateLogin:
		return m.viewLogin()
	case stateMainMenu:
		return m.viewMainMenu()
	case stateDashboard:
		return m.viewDashboard()
	case stateLeads:
		return m.viewLeads()
	case stateLeadDetail:
		return m.viewLeadDetail()
	case stateLeadForm:
		return m.viewRecordForm(&m.leadForm, "Lead")
	case statePipeline:
		return m.viewPipeline()
	case stateTasks:
		return m.viewTasks()
	case stateTaskForm:
		return m.viewRecordForm(&m.taskForm, "Task")
	case stateCalendar:
		return m.viewCalendar()
	case stateAppointmentForm:
		return m.viewRecordForm(&m.apptForm, "Appointment")
	case stateTemplates:
		return m.viewTemplates()
	case stateTemplateDetail:
		return m.viewTemplateDetail()
	case stateTemplateForm:
		return m.viewRecordForm(&m.tplForm, "Template")
	case stateWorkflows:
		return m.viewWorkflows()
	case stateAnalytics:
		return m.viewAnalytics()
	case stateNotifications:
		return m.viewNotifications()
	case stateSettings:
		return m.viewSettings()
	default:
		return ""
	}
}

// Navigation helpers
func (m *model) pushState(next viewState) {
	m.prevStates = append(m.prevStates, m.state)
	m.state = next
}

func (m *model) popState() {
	if len(m.prevStates) == 0 {
		m.state = stateMainMenu
		return
	}
	idx := len(m.prevStates) - 1
	m.state = m.prevStates[idx]
	m.prevStates = m.prevStates[:idx]
}

func (m *model) resetMessages() {
	m.errMessage = ""
	m.infoMessage = ""
}

func (m *model) setMenuInput(placeholder string, limit int) tea.Cmd {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = placeholder
	if limit > 0 {
		input.CharLimit = limit
	}
	cmd := input.Focus()
	m.menuInput = input
	return cmd
}

func (m *model) ensureMenuInput(placeholder string, limit int) tea.Cmd {
	if strings.TrimSpace(m.menuInput.Placeholder) == placeholder {
		if limit <= 0 || m.menuInput.CharLimit == limit {
			if !m.menuInput.Focused() {
				return m.menuInput.Focus()
			}
			return nil
		}
	}
	return m.setMenuInput(placeholder, limit)
}

func (m *model) returnToMenu() tea.Cmd {
	m.prevStates = nil
	m.state = stateMainMenu
	return m.setMenuInput("Choose an option", 32)
}

func (m *model) goBack() tea.Cmd {
	m.popState()
	if m.state == stateMainMenu {
		return m.setMenuInput("Choose an option", 32)
	}
	return nil
}

func resolveOption(options []menuOption, input string) (string, bool) {
	value := strings.TrimSpace(strings.ToLower(input))
	if value == "" {
		return "", false
	}
	for _, option := range options {
		for _, syn := range option.synonyms {
			if value == syn {
				return option.id, true
			}
		}
	}
	matches := make(map[string]struct{})
	for _, option := range options {
		for _, keyword := range option.keywords {
			if strings.HasPrefix(keyword, value) {
				matches[option.id] = struct{}{}
				break
			}
		}
	}
	if len(matches) == 1 {
		for id := range matches {
			return id, true
		}
	}
	return "", false
}

func batchCmds(cmds []tea.Cmd) tea.Cmd {
	filtered := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			filtered = append(filtered, c)
		}
	}
	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	default:
		return tea.Batch(filtered...)
	}
}

// global command helpers
func isExitCommand(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	return v == "exit." || v == "quit"
}

func isBackCommand(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	return v == "/" || v == "back"
}

func (m *model) refreshLeads() {
	leads := m.store.Leads()
	filter := strings.ToLower(strings.TrimSpace(m.leadFilter.Value()))
	if filter == "" {
		m.filteredLeads = leads
		return
	}
	var filtered []store.Lead
	for _, l := range leads {
		if strings.Contains(strings.ToLower(l.Name), filter) ||
			strings.Contains(strings.ToLower(l.Email), filter) ||
			strings.Contains(strings.ToLower(string(l.Status)), filter) {
			filtered = append(filtered, l)
		}
	}
	m.filteredLeads = filtered
}

func (m *model) resolveLeadSelection(input string) (store.Lead, bool) {
	var empty store.Lead
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		if len(m.filteredLeads) == 1 {
			return m.filteredLeads[0], true
		}
		return empty, false
	}
	lower := strings.ToLower(trimmed)
	query := trimmed
	switch {
	case strings.HasPrefix(lower, "open "):
		query = strings.TrimSpace(trimmed[5:])
	case strings.HasPrefix(lower, "view "):
		query = strings.TrimSpace(trimmed[5:])
	case strings.HasPrefix(lower, "#"):
		query = strings.TrimSpace(trimmed[1:])
	}
	if idx, err := strconv.Atoi(query); err == nil {
		if idx > 0 && idx <= len(m.filteredLeads) {
			return m.filteredLeads[idx-1], true
		}
	}
	all := m.store.Leads()
	for _, list := range [][]store.Lead{m.filteredLeads, all} {
		for i := range list {
			if strings.EqualFold(list[i].Name, query) {
				return list[i], true
			}
		}
	}
	queryLower := strings.ToLower(query)
	var match store.Lead
	count := 0
	for _, list := range [][]store.Lead{m.filteredLeads, all} {
		for i := range list {
			if strings.HasPrefix(strings.ToLower(list[i].Name), queryLower) {
				match = list[i]
				count++
			}
		}
		if count == 1 {
			return match, true
		}
	}
	return empty, false
}

// LOGIN
func (m *model) updateLogin(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch m.login.stage {
	case loginStageEmail:
		if !m.login.email.Focused() {
			if focus := m.login.email.Focus(); focus != nil {
				cmds = append(cmds, focus)
			}
		}
		m.login.email, cmd = m.login.email.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			value := strings.TrimSpace(m.login.email.Value())
			if value == "" {
				m.login.err = "Email is required"
				return batchCmds(cmds)
			}
			m.login.err = ""
			m.login.stage = loginStagePassword
			m.login.email.Blur()
			if focus := m.login.password.Focus(); focus != nil {
				cmds = append(cmds, focus)
			}
		}
	case loginStagePassword:
		if !m.login.password.Focused() {
			if focus := m.login.password.Focus(); focus != nil {
				cmds = append(cmds, focus)
			}
		}
		m.login.password, cmd = m.login.password.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.Type {
			case tea.KeyEnter:
				user := m.store.Login(strings.TrimSpace(m.login.email.Value()), m.login.password.Value())
				m.infoMessage = fmt.Sprintf("Welcome back, %s", user.FirstName)
				m.login = newLoginModel()
				cmds = append(cmds, m.returnToMenu())
			case tea.KeyEsc:
				m.login.stage = loginStageEmail
				m.login.password.Blur()
			}
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewLogin() string {
	lines := []string{
		splashBanner,
		m.theme.Title.Render("Sign in"),
		m.theme.Secondary.Render("Any credentials are accepted in this demo workspace."),
		"",
		m.theme.Primary.Render("Email:"),
		m.login.email.View(),
	}
	if m.login.stage == loginStagePassword {
		lines = append(lines, "", m.theme.Primary.Render("Password:"), m.login.password.View())
	}
	if m.login.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.login.err))
	}
	return strings.Join(lines, "\n") + "\n"
}

// MAIN MENU
func (m *model) updateMainMenu(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput("Choose an option", 32); focus != nil {
		cmds = append(cmds, focus)
	}

	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		choice := strings.TrimSpace(strings.ToLower(m.menuInput.Value()))
		m.menuInput.SetValue("")
		m.showSplash = false
		action, ok := resolveOption(mainMenuOptions, choice)
		if !ok {
			if choice == "" || choice == "0" {
				return batchCmds(cmds)
			}
			m.errMessage = "Unknown choice"
			return batchCmds(cmds)
		}
		m.resetMessages()
		switch action {
		case menuDashboard:
			m.pushState(stateDashboard)
			if focus := m.setMenuInput("Command (t=panel, s=compact, /, exit.)", 48); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuLeads:
			m.pushState(stateLeads)
			if !m.leadFilter.Focused() {
				if focus := m.leadFilter.Focus(); focus != nil {
					cmds = append(cmds, focus)
				}
			}
			m.refreshLeads()
		case menuPipeline:
			m.pushState(statePipeline)
			if focus := m.setMenuInput("'/' to go back", 32); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuTasks:
			m.pushState(stateTasks)
			if focus := m.setMenuInput("Number=complete, add, /", 48); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuCalendar:
			m.pushState(stateCalendar)
			if focus := m.setMenuInput("add, /", 32); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuTemplates:
			m.pushState(stateTemplates)
			if focus := m.setMenuInput("Number=view, /", 32); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuWorkflows:
			m.pushState(stateWorkflows)
			if focus := m.setMenuInput("Number=toggle active, /", 40); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuAnalytics:
			m.pushState(stateAnalytics)
			if focus := m.setMenuInput("'/' to go back", 32); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuNotifications:
			m.pushState(stateNotifications)
			if focus := m.setMenuInput("Number=mark read, clear, /", 40); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuSettings:
			m.settings = settingsModel{mode: settingsViewing, input: textinput.New()}
			m.settings.input.CharLimit = 96
			m.settings.input.Prompt = ""
			m.pushState(stateSettings)
			if focus := m.setMenuInput("1=Name  2=Timezone  3=Logout  4=Back", 40); focus != nil {
				cmds = append(cmds, focus)
			}
		case menuQuit:
			cmds = append(cmds, tea.Quit)
		}
	}

	return batchCmds(cmds)
}

func (m *model) viewMainMenu() string {
	lines := []string{}
	if m.showSplash {
		lines = append(lines, splashBanner)
		lines = append(lines, "")
	}
	lines = append(lines, m.theme.Title.Render("agentdesk"))
	lines = append(lines, m.theme.Secondary.Render("A terminal CRM for real-estate agents"))
	if user := m.store.User(); user != nil {
		lines = append(lines, m.theme.Faint.Render(fmt.Sprintf("Signed in as %s %s (%s)", user.FirstName, user.LastName, user.Email)))
	}
	if m.infoMessage != "" {
		lines = append(lines, m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, m.theme.Danger.Render(m.errMessage))
	}
	unread := m.store.UnreadNotifications()
	menu := []string{
		"1. Dashboard",
		"2. Leads",
		"3. Pipeline",
		"4. Tasks",
		"5. Calendar",
		"6. Email templates",
		"7. Workflows",
		"8. Analytics",
		fmt.Sprintf("9. Notifications (%d unread)", unread),
		"10. Settings & Help",
		"11. Quit",
	}
	lines = append(lines, "")
	for _, item := range menu {
		lines = append(lines, m.theme.Primary.Render(item))
	}
	lines = append(lines, "")
	lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

// DASHBOARD
func (m *model) updateDashboard(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput("Command (t=panel, s=compact, /, exit.)", 48); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		command := strings.TrimSpace(strings.ToLower(m.menuInput.Value()))
		m.menuInput.SetValue("")
		switch command {
		case "t", "toggle":
			m.store.ToggleNotifications()
		case "s", "sidebar":
			m.store.ToggleSidebar()
		case "/", "back":
			cmds = append(cmds, m.goBack())
		case "exit.", "exit", "quit":
			cmds = append(cmds, m.returnToMenu())
		case "":
			// ignore
		default:
			m.errMessage = "Unknown dashboard command"
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewDashboard() string {
	now := time.Now().In(m.cfg.Location())
	leads := m.store.Leads()
	tasks := m.store.Tasks()
	sum := store.Summarize(leads)
	due := store.TasksDueOn(tasks, now)
	overdue := 0
	for _, t := range tasks {
		if store.IsTaskOverdue(t, now) {
			overdue++
		}
	}

	lines := []string{m.theme.Title.Render("Dashboard")}
	lines = append(lines, m.theme.Faint.Render("t toggles activity/notifications, s toggles compact mode, '/' goes back."))
	lines = append(lines, "")
	if m.store.SidebarCollapsed() {
		lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("Leads %d  •  $%.0f open  •  %d due  •  %d unread",
			sum.TotalLeads, sum.PipelineValue, len(due), m.store.UnreadNotifications())))
	} else {
		lines = append(lines, m.theme.Subtitle.Render("Today"))
		lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("Leads: %d   Pipeline: $%.0f   Closed: $%.0f", sum.TotalLeads, sum.PipelineValue, sum.ClosedValue)))
		lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("Tasks due today: %d   Overdue: %d   Unread notifications: %d", len(due), overdue, m.store.UnreadNotifications())))
	}
	lines = append(lines, "")

	if !m.store.NotificationsOpen() {
		lines = append(lines, m.theme.Subtitle.Render("Recent Activity"))
		activities := m.store.Activities()
		if len(activities) == 0 {
			lines = append(lines, m.theme.Faint.Render("No activity yet."))
		}
		for i, a := range activities {
			if i >= 12 {
				break
			}
			stamp := a.CreatedAt.In(m.cfg.Location()).Format("Jan 02 15:04")
			item := fmt.Sprintf("[%s] %s — %s", a.Type, a.Description, stamp)
			colorized := m.theme.Primary.Render(item)
			switch a.Type {
			case store.ActivityLeadCreated:
				colorized = m.theme.Accent.Render(item)
			case store.ActivityTaskCompleted:
				colorized = m.theme.Success.Render(item)
			case store.ActivityStatusChanged:
				colorized = m.theme.Warning.Render(item)
			}
			lines = append(lines, colorized)
		}
	} else {
		lines = append(lines, m.theme.Subtitle.Render("Notifications"))
		notes := m.store.Notifications()
		if len(notes) == 0 {
			lines = append(lines, m.theme.Faint.Render("No notifications."))
		}
		for _, n := range notes {
			marker := "•"
			if n.Read {
				marker = " "
			}
			item := fmt.Sprintf("%s %s — %s", marker, n.Title, n.Message)
			lines = append(lines, m.theme.Notify(n.Type).Render(item))
		}
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	lines = append(lines, "", m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

// LEADS LIST
func (m *model) updateLeads(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.leadFilter, cmd = m.leadFilter.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch key := msg.(type) {
	case tea.KeyMsg:
		switch key.Type {
		case tea.KeyEnter:
			value := strings.TrimSpace(m.leadFilter.Value())
			if isExitCommand(value) {
				m.leadFilter.SetValue("")
				cmds = append(cmds, m.returnToMenu())
				return batchCmds(cmds)
			}
			if isBackCommand(value) {
				m.leadFilter.SetValue("")
				cmds = append(cmds, m.goBack())
				return batchCmds(cmds)
			}
			if strings.EqualFold(value, "add") || strings.EqualFold(value, "new") {
				m.leadFilter.SetValue("")
				m.leadForm = newLeadForm(nil)
				m.pushState(stateLeadForm)
				return batchCmds(cmds)
			}
			if lead, ok := m.resolveLeadSelection(value); ok {
				m.leadFilter.SetValue("")
				if focus := m.openLeadDetail(lead.ID); focus != nil {
					cmds = append(cmds, focus)
				}
				return batchCmds(cmds)
			}
			m.refreshLeads()
		case tea.KeyEsc:
			cmds = append(cmds, m.goBack())
			return batchCmds(cmds)
		}
	}

	m.refreshLeads()
	return batchCmds(cmds)
}

func (m *model) viewLeads() string {
	lines := []string{m.theme.Title.Render("Leads")}
	lines = append(lines, m.theme.Faint.Render("Type to search. Enter a number or name to open, 'add' for a new lead. '/' to go back, 'exit.' home."))
	lines = append(lines, "")
	if len(m.filteredLeads) == 0 {
		lines = append(lines, m.theme.Warning.Render("No leads found."))
	} else {
		for i, l := range m.filteredLeads {
			header := fmt.Sprintf("%d. %s", i+1, l.Name)
			lines = append(lines, m.theme.Primary.Render(header)+"  "+m.theme.Stage(l.Status).Render(string(l.Status)))
			meta := []string{}
			if l.Email != "" {
				meta = append(meta, l.Email)
			}
			if l.Phone != "" {
				meta = append(meta, l.Phone)
			}
			if l.DealValue > 0 {
				meta = append(meta, fmt.Sprintf("$%.0f", l.DealValue))
			}
			if len(meta) > 0 {
				lines = append(lines, "  "+m.theme.Secondary.Render(strings.Join(meta, "  •  ")))
			}
			last := l.LastContact.In(m.cfg.Location()).Format("Jan 02 2006 15:04")
			lines = append(lines, "  "+m.theme.Faint.Render(fmt.Sprintf("Source: %s  •  Last contact %s", l.Source, last)))
			lines = append(lines, "")
		}
	}
	lines = append(lines, m.theme.Border.Render(strings.Repeat("─", 40)))
	lines = append(lines, m.theme.Accent.Render("find> ")+m.leadFilter.View())
	return strings.Join(lines, "\n") + "\n"
}

// LEAD DETAIL
func (m *model) openLeadDetail(id string) tea.Cmd {
	m.detail = leadDetailModel{leadID: id, stage: detailViewing}
	m.pushState(stateLeadDetail)
	return m.setMenuInput("1=Stage 2=Task 3=Appt 4=Email 5=Edit 6=Delete 7=Back", 64)
}

func (m *model) updateLeadDetail(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	placeholder := "1=Stage 2=Task 3=Appt 4=Email 5=Edit 6=Delete 7=Back"
	switch m.detail.stage {
	case detailChoosingStage:
		placeholder = "Stage (new/contacted/qualified/showing/offer/contract/closed/lost)"
	case detailChoosingTemplate:
		placeholder = "Template number (blank = no template)"
	case detailConfirmDelete:
		placeholder = "Delete this lead? (y/n)"
	}
	if focus := m.ensureMenuInput(placeholder, 72); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return batchCmds(cmds)
	}
	if key.Type == tea.KeyEsc {
		if m.detail.stage != detailViewing {
			m.detail.stage = detailViewing
			return batchCmds(cmds)
		}
		cmds = append(cmds, m.goBack())
		return batchCmds(cmds)
	}
	if key.Type != tea.KeyEnter {
		return batchCmds(cmds)
	}

	value := strings.TrimSpace(m.menuInput.Value())
	m.menuInput.SetValue("")

	switch m.detail.stage {
	case detailChoosingStage:
		cmds = append(cmds, m.handleStageChoice(value))
	case detailChoosingTemplate:
		cmds = append(cmds, m.handleTemplateChoice(value))
	case detailConfirmDelete:
		cmds = append(cmds, m.handleDeleteChoice(value))
	default:
		cmds = append(cmds, m.handleDetailAction(value))
	}
	return batchCmds(cmds)
}

func (m *model) handleDetailAction(value string) tea.Cmd {
	if isExitCommand(value) {
		return m.returnToMenu()
	}
	action, ok := resolveOption(leadDetailOptions, value)
	if !ok {
		if value != "" {
			m.detail.err = "Unknown choice"
		}
		return nil
	}
	m.detail.err = ""
	switch action {
	case detailActionStage:
		m.detail.stage = detailChoosingStage
		return m.setMenuInput("Stage (new/contacted/qualified/showing/offer/contract/closed/lost)", 72)
	case detailActionTask:
		m.taskForm = newTaskForm(m.detail.leadID)
		m.pushState(stateTaskForm)
	case detailActionAppointment:
		m.apptForm = newAppointmentForm(m.detail.leadID)
		m.pushState(stateAppointmentForm)
	case detailActionEmail:
		m.detail.stage = detailChoosingTemplate
		return m.setMenuInput("Template number (blank = no template)", 72)
	case detailActionEdit:
		if lead, ok := m.store.LeadByID(m.detail.leadID); ok {
			m.leadForm = newLeadForm(&lead)
			m.pushState(stateLeadForm)
		}
	case detailActionDelete:
		m.detail.stage = detailConfirmDelete
		return m.setMenuInput("Delete this lead? (y/n)", 72)
	case detailActionBack:
		return m.goBack()
	}
	return nil
}

func (m *model) handleStageChoice(value string) tea.Cmd {
	if isBackCommand(value) || value == "" {
		m.detail.stage = detailViewing
		return m.setMenuInput("1=Stage 2=Task 3=Appt 4=Email 5=Edit 6=Delete 7=Back", 64)
	}
	stage := store.LeadStatus(strings.ToLower(value))
	valid := false
	for _, s := range store.PipelineStages {
		if s == stage {
			valid = true
			break
		}
	}
	if !valid {
		m.detail.err = "Unknown stage"
		return nil
	}
	if lead, ok := m.store.UpdateLead(m.detail.leadID, store.LeadPatch{Status: &stage}); ok {
		m.infoMessage = fmt.Sprintf("%s moved to %s", lead.Name, stage)
	}
	m.detail.stage = detailViewing
	m.detail.err = ""
	return m.setMenuInput("1=Stage 2=Task 3=Appt 4=Email 5=Edit 6=Delete 7=Back", 64)
}

func (m *model) handleTemplateChoice(value string) tea.Cmd {
	if isBackCommand(value) {
		m.detail.stage = detailViewing
		return m.setMenuInput("1=Stage 2=Task 3=Appt 4=Email 5=Edit 6=Delete 7=Back", 64)
	}
	lead, ok := m.store.LeadByID(m.detail.leadID)
	if !ok {
		m.detail.stage = detailViewing
		return nil
	}
	email := store.Email{
		To:     lead.Email,
		From:   m.cfg.Config.Name,
		Status: store.EmailSent,
		LeadID: lead.ID,
	}
	if user := m.store.User(); user != nil {
		email.From = user.Email
	}
	if value != "" {
		idx, err := strconv.Atoi(value)
		templates := m.store.EmailTemplates()
		if err != nil || idx < 1 || idx > len(templates) {
			m.detail.err = "Unknown template"
			return nil
		}
		tpl := templates[idx-1]
		email.Subject = tpl.Subject
		email.Body = tpl.Body
		email.TemplateID = tpl.ID
	} else {
		email.Subject = fmt.Sprintf("Following up, %s", lead.Name)
	}
	m.store.AddEmail(email)
	m.infoMessage = fmt.Sprintf("Email logged for %s", lead.Name)
	m.detail.stage = detailViewing
	m.detail.err = ""
	return m.setMenuInput("1=Stage 2=Task 3=Appt 4=Email 5=Edit 6=Delete 7=Back", 64)
}

func (m *model) handleDeleteChoice(value string) tea.Cmd {
	switch strings.ToLower(value) {
	case "y", "yes":
		if lead, ok := m.store.LeadByID(m.detail.leadID); ok {
			m.store.DeleteLead(lead.ID)
			m.infoMessage = fmt.Sprintf("Lead '%s' deleted", lead.Name)
		}
		m.detail.stage = detailViewing
		m.refreshLeads()
		return m.goBack()
	default:
		m.detail.stage = detailViewing
		return m.setMenuInput("1=Stage 2=Task 3=Appt 4=Email 5=Edit 6=Delete 7=Back", 64)
	}
}

func (m *model) viewLeadDetail() string {
	lead, ok := m.store.LeadByID(m.detail.leadID)
	if !ok {
		return m.theme.Warning.Render("Lead no longer exists.") + "\n"
	}
	lines := []string{m.theme.Title.Render(lead.Name) + "  " + m.theme.Stage(lead.Status).Render(string(lead.Status))}
	meta := []string{}
	if lead.Email != "" {
		meta = append(meta, lead.Email)
	}
	if lead.Phone != "" {
		meta = append(meta, lead.Phone)
	}
	if len(meta) > 0 {
		lines = append(lines, m.theme.Secondary.Render(strings.Join(meta, "  •  ")))
	}
	if lead.PropertyInterest != "" {
		lines = append(lines, m.theme.Secondary.Render("Looking for: "+lead.PropertyInterest))
	}
	if lead.Budget != "" {
		lines = append(lines, m.theme.Secondary.Render("Budget: "+lead.Budget))
	}
	if lead.DealValue > 0 {
		lines = append(lines, m.theme.Secondary.Render(fmt.Sprintf("Deal value: $%.0f", lead.DealValue)))
	}
	if len(lead.Tags) > 0 {
		lines = append(lines, m.theme.Faint.Render("Tags: "+strings.Join(lead.Tags, ", ")))
	}
	if lead.Notes != "" {
		lines = append(lines, m.theme.Faint.Render(lead.Notes))
	}
	created := lead.CreatedAt.In(m.cfg.Location()).Format("Jan 02 2006 15:04")
	last := lead.LastContact.In(m.cfg.Location()).Format("Jan 02 2006 15:04")
	lines = append(lines, m.theme.Faint.Render(fmt.Sprintf("Source %s  •  Created %s  •  Last contact %s", lead.Source, created, last)))
	lines = append(lines, "")

	lines = append(lines, m.theme.Subtitle.Render("Linked"))
	count := 0
	for _, t := range m.store.Tasks() {
		if t.LeadID == lead.ID {
			status := store.EffectiveTaskStatus(t, time.Now().In(m.cfg.Location()))
			lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("Task: %s [%s] due %s", t.Title, status, t.DueDate)))
			count++
		}
	}
	for _, a := range m.store.Appointments() {
		if a.LeadID == lead.ID {
			lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("Appt: %s %s %s-%s", a.Title, a.Date, a.StartTime, a.EndTime)))
			count++
		}
	}
	if count == 0 {
		lines = append(lines, m.theme.Faint.Render("No linked tasks or appointments."))
	}
	lines = append(lines, "")

	lines = append(lines, m.theme.Subtitle.Render("Actions"))
	lines = append(lines, m.theme.Secondary.Render("1. Change stage"))
	lines = append(lines, m.theme.Secondary.Render("2. Add task"))
	lines = append(lines, m.theme.Secondary.Render("3. Add appointment"))
	lines = append(lines, m.theme.Secondary.Render("4. Send email"))
	lines = append(lines, m.theme.Secondary.Render("5. Edit lead"))
	lines = append(lines, m.theme.Secondary.Render("6. Delete lead"))
	lines = append(lines, m.theme.Faint.Render("7. Back"))
	lines = append(lines, "")
	lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	if m.detail.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.detail.err))
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	return strings.Join(lines, "\n") + "\n"
}

// RECORD FORMS (lead / task / appointment)
func (m *model) updateLeadForm(msg tea.Msg) tea.Cmd {
	return m.updateRecordForm(msg, &m.leadForm, m.submitLeadForm)
}

func (m *model) updateTaskForm(msg tea.Msg) tea.Cmd {
	return m.updateRecordForm(msg, &m.taskForm, m.submitTaskForm)
}

func (m *model) updateAppointmentForm(msg tea.Msg) tea.Cmd {
	return m.updateRecordForm(msg, &m.apptForm, m.submitAppointmentForm)
}

func (m *model) updateTemplateForm(msg tea.Msg) tea.Cmd {
	return m.updateRecordForm(msg, &m.tplForm, m.submitTemplateForm)
}

func (m *model) updateRecordForm(msg tea.Msg, form *recordForm, submit func() string) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	form.input, cmd = form.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return batchCmds(cmds)
	}
	switch key.Type {
	case tea.KeyEnter:
		value := strings.TrimSpace(form.input.Value())
		if isExitCommand(value) {
			cmds = append(cmds, m.returnToMenu())
			return batchCmds(cmds)
		}
		if isBackCommand(value) {
			if form.index == 0 {
				cmds = append(cmds, m.goBack())
				return batchCmds(cmds)
			}
			form.index--
			prev := form.fields[form.index]
			form.input.Placeholder = prev.label
			form.input.SetValue(prev.value)
			form.err = ""
			return batchCmds(cmds)
		}
		if form.fields[form.index].required && value == "" {
			form.err = "This field is required"
			return batchCmds(cmds)
		}
		form.fields[form.index].value = value
		form.input.SetValue("")
		form.err = ""
		if form.index >= len(form.fields)-1 {
			m.infoMessage = submit()
			cmds = append(cmds, m.goBack())
			m.refreshLeads()
			return batchCmds(cmds)
		}
		form.index++
		next := form.fields[form.index]
		form.input.Placeholder = next.label
		form.input.SetValue(next.value)
	case tea.KeyEsc:
		cmds = append(cmds, m.goBack())
		return batchCmds(cmds)
	}
	return batchCmds(cmds)
}

func (m *model) submitLeadForm() string {
	f := m.leadForm.fields
	dealValue, _ := strconv.ParseFloat(strings.TrimPrefix(f[6].value, "$"), 64)
	tags := []string{}
	for _, tag := range strings.Split(f[8].value, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if m.leadForm.editing {
		patch := store.LeadPatch{
			Name:             &f[0].value,
			Email:            &f[1].value,
			Phone:            &f[2].value,
			Source:           &f[3].value,
			PropertyInterest: &f[4].value,
			Budget:           &f[5].value,
			DealValue:        &dealValue,
			Notes:            &f[7].value,
			Tags:             &tags,
		}
		if lead, ok := m.store.UpdateLead(m.leadForm.recordID, patch); ok {
			return fmt.Sprintf("Lead '%s' updated", lead.Name)
		}
		return "Lead no longer exists"
	}
	lead := m.store.AddLead(store.Lead{
		Name:             f[0].value,
		Email:            f[1].value,
		Phone:            f[2].value,
		Source:           f[3].value,
		PropertyInterest: f[4].value,
		Budget:           f[5].value,
		DealValue:        dealValue,
		Notes:            f[7].value,
		Tags:             tags,
		Status:           store.LeadNew,
	})
	return fmt.Sprintf("Lead '%s' added", lead.Name)
}

func (m *model) submitTaskForm() string {
	f := m.taskForm.fields
	priority := store.TaskPriority(strings.ToLower(f[3].value))
	if priority == "" {
		priority = store.PriorityMedium
	}
	typ := store.TaskType(strings.ToLower(f[4].value))
	if typ == "" {
		typ = store.TaskOther
	}
	task := m.store.AddTask(store.Task{
		Title:       f[0].value,
		Description: f[1].value,
		DueDate:     f[2].value,
		Priority:    priority,
		Type:        typ,
		Status:      store.TaskPending,
		LeadID:      m.taskForm.presetLead,
	})
	return fmt.Sprintf("Task '%s' added", task.Title)
}

func (m *model) submitAppointmentForm() string {
	f := m.apptForm.fields
	typ := store.AppointmentType(strings.ToLower(f[5].value))
	if typ == "" {
		typ = store.AppointmentOther
	}
	apt := m.store.AddAppointment(store.Appointment{
		Title:       f[0].value,
		Description: f[1].value,
		Date:        f[2].value,
		StartTime:   f[3].value,
		EndTime:     f[4].value,
		Type:        typ,
		Location:    f[6].value,
		LeadID:      m.apptForm.presetLead,
	})
	return fmt.Sprintf("Appointment '%s' added", apt.Title)
}

func (m *model) submitTemplateForm() string {
	f := m.tplForm.fields
	category := store.TemplateCategory(strings.ToLower(f[1].value))
	if category == "" {
		category = store.CategoryCustom
	}
	body := strings.ReplaceAll(f[3].value, "\\n", "\n")
	if m.tplForm.editing {
		patch := store.TemplatePatch{
			Name:     &f[0].value,
			Category: &category,
			Subject:  &f[2].value,
			Body:     &body,
		}
		if tpl, ok := m.store.UpdateEmailTemplate(m.tplForm.recordID, patch); ok {
			m.template = tpl
			return fmt.Sprintf("Template '%s' updated", tpl.Name)
		}
		return "Template no longer exists"
	}
	tpl := m.store.AddEmailTemplate(store.EmailTemplate{
		Name:     f[0].value,
		Category: category,
		Subject:  f[2].value,
		Body:     body,
	})
	return fmt.Sprintf("Template '%s' added", tpl.Name)
}

func (m *model) viewRecordForm(form *recordForm, noun string) string {
	field := form.fields[form.index]
	title := "Add " + noun
	if form.editing {
		title = "Edit " + noun
	}
	lines := []string{
		m.theme.Title.Render(title),
		m.theme.Faint.Render("Enter details. '/' to go back, 'exit.' to cancel."),
		"",
		m.theme.Secondary.Render(fmt.Sprintf("%d/%d", form.index+1, len(form.fields))),
		m.theme.Primary.Render(field.label + ":"),
		form.input.View(),
	}
	if form.presetLead != "" {
		if lead, ok := m.store.LeadByID(form.presetLead); ok {
			lines = append(lines, m.theme.Faint.Render("Will link to "+lead.Name))
		}
	}
	if form.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(form.err))
	}
	return strings.Join(lines, "\n") + "\n"
}

// PIPELINE
func (m *model) updatePipeline(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput("'/' to go back", 32); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.menuInput.Value())
		m.menuInput.SetValue("")
		if isExitCommand(value) {
			cmds = append(cmds, m.returnToMenu())
		} else if isBackCommand(value) || value == "" {
			cmds = append(cmds, m.goBack())
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewPipeline() string {
	lines := []string{m.theme.Title.Render("Pipeline")}
	lines = append(lines, m.theme.Faint.Render("Press enter or '/' to go back."))
	lines = append(lines, "")
	columns := store.PipelineColumns(m.store.Leads())
	for _, col := range columns {
		header := fmt.Sprintf("%s (%d)", strings.ToUpper(string(col.Stage)), len(col.Leads))
		if col.DealValue > 0 {
			header += fmt.Sprintf("  $%.0f", col.DealValue)
		}
		lines = append(lines, m.theme.Stage(col.Stage).Render(header))
		if len(col.Leads) == 0 {
			lines = append(lines, m.theme.Faint.Render("  —"))
		}
		for _, l := range col.Leads {
			entry := fmt.Sprintf("  %s", l.Name)
			if l.DealValue > 0 {
				entry += fmt.Sprintf("  $%.0f", l.DealValue)
			}
			lines = append(lines, m.theme.Secondary.Render(entry))
		}
		lines = append(lines, "")
	}
	lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

// TASKS
func (m *model) updateTasks(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput("Number=complete, add, /", 48); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.menuInput.Value())
		m.menuInput.SetValue("")
		switch {
		case isExitCommand(value):
			cmds = append(cmds, m.returnToMenu())
		case isBackCommand(value):
			cmds = append(cmds, m.goBack())
		case strings.EqualFold(value, "add") || strings.EqualFold(value, "new"):
			m.taskForm = newTaskForm("")
			m.pushState(stateTaskForm)
		case value == "":
			// ignore
		default:
			idx, err := strconv.Atoi(value)
			tasks := m.store.Tasks()
			if err != nil || idx < 1 || idx > len(tasks) {
				m.errMessage = "Enter a task number, 'add', or '/'"
				return batchCmds(cmds)
			}
			completed := store.TaskCompleted
			if task, ok := m.store.UpdateTask(tasks[idx-1].ID, store.TaskPatch{Status: &completed}); ok {
				m.infoMessage = fmt.Sprintf("Completed: %s", task.Title)
				m.errMessage = ""
			}
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewTasks() string {
	now := time.Now().In(m.cfg.Location())
	lines := []string{m.theme.Title.Render("Tasks")}
	lines = append(lines, m.theme.Faint.Render("Enter a number to complete a task, 'add' for a new one, '/' to go back."))
	lines = append(lines, "")
	tasks := m.store.Tasks()
	if len(tasks) == 0 {
		lines = append(lines, m.theme.Faint.Render("No tasks."))
	}
	for i, t := range tasks {
		status := store.EffectiveTaskStatus(t, now)
		style := m.theme.Primary
		switch status {
		case store.TaskCompleted:
			style = m.theme.Faint
		case store.TaskOverdue:
			style = m.theme.Danger
		}
		header := fmt.Sprintf("%d. [%s] %s", i+1, status, t.Title)
		lines = append(lines, style.Render(header))
		meta := []string{fmt.Sprintf("due %s", t.DueDate), string(t.Priority), string(t.Type)}
		if lead, ok := m.store.LeadByID(t.LeadID); ok {
			meta = append(meta, "for "+lead.Name)
		}
		lines = append(lines, "  "+m.theme.Faint.Render(strings.Join(meta, "  •  ")))
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	lines = append(lines, "", m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

// CALENDAR
func (m *model) updateCalendar(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput("add, /", 32); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.menuInput.Value())
		m.menuInput.SetValue("")
		switch {
		case isExitCommand(value):
			cmds = append(cmds, m.returnToMenu())
		case isBackCommand(value) || value == "":
			cmds = append(cmds, m.goBack())
		case strings.EqualFold(value, "add") || strings.EqualFold(value, "new"):
			m.apptForm = newAppointmentForm("")
			m.pushState(stateAppointmentForm)
		default:
			m.errMessage = "Type 'add' or '/'"
		}
	}
	return batchCmds(cmds)
}

func (m *model) formatAppointmentLine(a store.Appointment) string {
	var builder strings.Builder
	builder.WriteString(a.Date)
	if a.StartTime != "" {
		builder.WriteString(" " + a.StartTime)
		if a.EndTime != "" {
			builder.WriteString("-" + a.EndTime)
		}
	}
	builder.WriteString(" — ")
	builder.WriteString(a.Title)
	if lead, ok := m.store.LeadByID(a.LeadID); ok {
		builder.WriteString(" (" + lead.Name + ")")
	}
	if a.Location != "" {
		builder.WriteString(" • " + a.Location)
	}
	return builder.String()
}

func (m *model) viewCalendar() string {
	now := time.Now().In(m.cfg.Location())
	today, upcoming, past := store.SplitAppointments(m.store.Appointments(), now)
	lines := []string{m.theme.Title.Render("Calendar")}
	lines = append(lines, m.theme.Faint.Render("'add' creates an appointment, '/' goes back."))
	lines = append(lines, "")
	lines = append(lines, m.theme.Subtitle.Render("Today"))
	if len(today) == 0 {
		lines = append(lines, m.theme.Faint.Render("Nothing scheduled today."))
	}
	for _, a := range today {
		lines = append(lines, m.theme.Success.Render(m.formatAppointmentLine(a)))
	}
	lines = append(lines, "")
	lines = append(lines, m.theme.Subtitle.Render("Upcoming"))
	if len(upcoming) == 0 {
		lines = append(lines, m.theme.Faint.Render("No upcoming appointments."))
	}
	for i, a := range upcoming {
		if i >= 5 {
			break
		}
		lines = append(lines, m.theme.Warning.Render(m.formatAppointmentLine(a)))
	}
	lines = append(lines, "")
	lines = append(lines, m.theme.Subtitle.Render("Recent"))
	if len(past) == 0 {
		lines = append(lines, m.theme.Faint.Render("No past appointments."))
	}
	for i, a := range past {
		if i >= 3 {
			break
		}
		lines = append(lines, m.theme.Faint.Render(m.formatAppointmentLine(a)))
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	lines = append(lines, "", m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

// TEMPLATES
func (m *model) updateTemplates(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput("Number=view, /", 32); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.menuInput.Value())
		m.menuInput.SetValue("")
		switch {
		case isExitCommand(value):
			cmds = append(cmds, m.returnToMenu())
		case isBackCommand(value) || value == "":
			cmds = append(cmds, m.goBack())
		case strings.EqualFold(value, "add") || strings.EqualFold(value, "new"):
			m.tplForm = newTemplateForm(nil)
			m.pushState(stateTemplateForm)
		default:
			idx, err := strconv.Atoi(value)
			templates := m.store.EmailTemplates()
			if err != nil || idx < 1 || idx > len(templates) {
				m.errMessage = "Enter a template number, 'add', or '/'"
				return batchCmds(cmds)
			}
			m.template = templates[idx-1]
			m.errMessage = ""
			m.pushState(stateTemplateDetail)
			if focus := m.setMenuInput("edit, delete, /", 32); focus != nil {
				cmds = append(cmds, focus)
			}
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewTemplates() string {
	lines := []string{m.theme.Title.Render("Email Templates")}
	lines = append(lines, m.theme.Faint.Render("Enter a number to view, 'add' for a new template, '/' to go back. {{tokens}} stay as written."))
	lines = append(lines, "")
	templates := m.store.EmailTemplates()
	if len(templates) == 0 {
		lines = append(lines, m.theme.Faint.Render("No templates."))
	}
	for i, t := range templates {
		lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("%d. %s", i+1, t.Name))+"  "+m.theme.Faint.Render(string(t.Category)))
		lines = append(lines, "  "+m.theme.Secondary.Render(t.Subject))
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	lines = append(lines, "", m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

func (m *model) updateTemplateDetail(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput("edit, delete, /", 32); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.menuInput.Value())
		m.menuInput.SetValue("")
		switch {
		case isExitCommand(value):
			cmds = append(cmds, m.returnToMenu())
		case strings.EqualFold(value, "edit"):
			tpl := m.template
			m.tplForm = newTemplateForm(&tpl)
			m.pushState(stateTemplateForm)
		case strings.EqualFold(value, "delete"):
			if m.store.DeleteEmailTemplate(m.template.ID) {
				m.infoMessage = fmt.Sprintf("Template '%s' deleted", m.template.Name)
			}
			cmds = append(cmds, m.goBack())
		default:
			cmds = append(cmds, m.goBack())
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewTemplateDetail() string {
	// refresh in case an edit landed since the template was opened
	for _, tpl := range m.store.EmailTemplates() {
		if tpl.ID == m.template.ID {
			m.template = tpl
			break
		}
	}
	t := m.template
	lines := []string{
		m.theme.Title.Render(t.Name) + "  " + m.theme.Faint.Render(string(t.Category)),
		m.theme.Subtitle.Render("Subject: " + t.Subject),
		"",
	}
	for _, line := range strings.Split(t.Body, "\n") {
		lines = append(lines, m.theme.Secondary.Render(line))
	}
	lines = append(lines, "")
	lines = append(lines, m.theme.Faint.Render("'edit' rewrites this template, 'delete' removes it, '/' goes back."))
	if m.infoMessage != "" {
		lines = append(lines, m.theme.Success.Render(m.infoMessage))
	}
	lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

// WORKFLOWS
func (m *model) updateWorkflows(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput("Number=toggle active, /", 40); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.menuInput.Value())
		m.menuInput.SetValue("")
		switch {
		case isExitCommand(value):
			cmds = append(cmds, m.returnToMenu())
		case isBackCommand(value) || value == "":
			cmds = append(cmds, m.goBack())
		default:
			idx, err := strconv.Atoi(value)
			workflows := m.store.Workflows()
			if err != nil || idx < 1 || idx > len(workflows) {
				m.errMessage = "Enter a workflow number or '/'"
				return batchCmds(cmds)
			}
			active := !workflows[idx-1].IsActive
			if wf, ok := m.store.UpdateWorkflow(workflows[idx-1].ID, store.WorkflowPatch{IsActive: &active}); ok {
				state := "paused"
				if wf.IsActive {
					state = "active"
				}
				m.infoMessage = fmt.Sprintf("Workflow '%s' is now %s", wf.Name, state)
				m.errMessage = ""
			}
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewWorkflows() string {
	lines := []string{m.theme.Title.Render("Workflows")}
	lines = append(lines, m.theme.Faint.Render("Declarative only; nothing executes these. Enter a number to toggle active."))
	lines = append(lines, "")
	workflows := m.store.Workflows()
	if len(workflows) == 0 {
		lines = append(lines, m.theme.Faint.Render("No workflows."))
	}
	for i, w := range workflows {
		badge := m.theme.Success.Render("active")
		if !w.IsActive {
			badge = m.theme.Faint.Render("paused")
		}
		trigger := string(w.Trigger)
		if w.TriggerValue != "" {
			trigger += "=" + w.TriggerValue
		}
		lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("%d. %s", i+1, w.Name))+"  "+badge)
		lines = append(lines, "  "+m.theme.Secondary.Render(w.Description))
		lines = append(lines, "  "+m.theme.Faint.Render(fmt.Sprintf("on %s, %d step(s)", trigger, len(w.Actions))))
		for _, action := range w.Actions {
			lines = append(lines, "    "+m.theme.Faint.Render(fmt.Sprintf("%d. %s", action.Order, action.Type)))
		}
		lines = append(lines, "")
	}
	if m.infoMessage != "" {
		lines = append(lines, m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, m.theme.Danger.Render(m.errMessage))
	}
	lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

// ANALYTICS
func (m *model) updateAnalytics(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput("'/' to go back", 32); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.menuInput.Value())
		m.menuInput.SetValue("")
		if isExitCommand(value) {
			cmds = append(cmds, m.returnToMenu())
		} else {
			cmds = append(cmds, m.goBack())
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewAnalytics() string {
	sum := store.Summarize(m.store.Leads())
	lines := []string{m.theme.Title.Render("Analytics")}
	lines = append(lines, m.theme.Faint.Render("Press enter or '/' to go back."))
	lines = append(lines, "")
	lines = append(lines, m.theme.Subtitle.Render("Funnel"))
	lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("Total leads: %d   Closed: %d   Lost: %d", sum.TotalLeads, sum.ClosedLeads, sum.LostLeads)))
	lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("Conversion: %.1f%%", sum.ConversionRate*100)))
	lines = append(lines, m.theme.Primary.Render(fmt.Sprintf("Pipeline value: $%.0f   Closed value: $%.0f", sum.PipelineValue, sum.ClosedValue)))
	lines = append(lines, "")
	lines = append(lines, m.theme.Subtitle.Render("Leads by stage"))
	for _, stage := range store.PipelineStages {
		count := sum.ByStage[stage]
		bar := strings.Repeat("█", count)
		lines = append(lines, m.theme.Stage(stage).Render(fmt.Sprintf("%-10s %s %d", stage, bar, count)))
	}
	lines = append(lines, "")
	lines = append(lines, m.theme.Subtitle.Render("Leads by source"))
	if len(sum.BySource) == 0 {
		lines = append(lines, m.theme.Faint.Render("No leads yet."))
	}
	for source, count := range sum.BySource {
		if source == "" {
			source = "(unknown)"
		}
		lines = append(lines, m.theme.Secondary.Render(fmt.Sprintf("%-14s %d", source, count)))
	}
	lines = append(lines, "", m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

// NOTIFICATIONS
func (m *model) updateNotifications(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if focus := m.ensureMenuInput("Number=mark read, clear, /", 40); focus != nil {
		cmds = append(cmds, focus)
	}
	var cmd tea.Cmd
	m.menuInput, cmd = m.menuInput.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.menuInput.Value())
		m.menuInput.SetValue("")
		switch {
		case isExitCommand(value):
			cmds = append(cmds, m.returnToMenu())
		case isBackCommand(value) || value == "":
			cmds = append(cmds, m.goBack())
		case strings.EqualFold(value, "clear"):
			m.store.ClearNotifications()
			m.infoMessage = "Notifications cleared"
		default:
			idx, err := strconv.Atoi(value)
			notes := m.store.Notifications()
			if err != nil || idx < 1 || idx > len(notes) {
				m.errMessage = "Enter a notification number, 'clear', or '/'"
				return batchCmds(cmds)
			}
			m.store.MarkNotificationRead(notes[idx-1].ID)
			m.errMessage = ""
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewNotifications() string {
	lines := []string{m.theme.Title.Render("Notifications")}
	lines = append(lines, m.theme.Faint.Render("Enter a number to mark read, 'clear' to empty, '/' to go back."))
	lines = append(lines, "")
	notes := m.store.Notifications()
	if len(notes) == 0 {
		lines = append(lines, m.theme.Faint.Render("Inbox zero."))
	}
	for i, n := range notes {
		marker := "•"
		if n.Read {
			marker = " "
		}
		stamp := n.CreatedAt.In(m.cfg.Location()).Format("Jan 02 15:04")
		header := fmt.Sprintf("%d. %s %s — %s", i+1, marker, n.Title, stamp)
		lines = append(lines, m.theme.Notify(n.Type).Render(header))
		lines = append(lines, "   "+m.theme.Secondary.Render(n.Message))
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	if m.errMessage != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.errMessage))
	}
	lines = append(lines, "", m.theme.Accent.Render("> ")+m.menuInput.View())
	return strings.Join(lines, "\n") + "\n"
}

// SETTINGS
func (m *model) updateSettings(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	switch m.settings.mode {
	case settingsViewing:
		if focus := m.ensureMenuInput("1=Name  2=Timezone  3=Logout  4=Back", 40); focus != nil {
			cmds = append(cmds, focus)
		}
		var cmd tea.Cmd
		m.menuInput, cmd = m.menuInput.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			value := strings.TrimSpace(strings.ToLower(m.menuInput.Value()))
			m.menuInput.SetValue("")
			switch value {
			case "1", "name":
				m.settings.mode = settingsEditingName
				m.settings.input = textinput.New()
				m.settings.input.Prompt = ""
				m.settings.input.CharLimit = 64
				m.settings.input.SetValue(m.cfg.Config.Name)
				if focus := m.settings.input.Focus(); focus != nil {
					cmds = append(cmds, focus)
				}
			case "2", "timezone":
				m.settings.mode = settingsEditingTimezone
				m.settings.input = textinput.New()
				m.settings.input.Prompt = ""
				m.settings.input.CharLimit = 64
				m.settings.input.SetValue(m.cfg.Config.Timezone)
				if focus := m.settings.input.Focus(); focus != nil {
					cmds = append(cmds, focus)
				}
			case "3", "logout":
				m.store.Logout()
				m.prevStates = nil
				m.state = stateLogin
				m.login = newLoginModel()
				m.resetMessages()
			case "4", "back", "/":
				cmds = append(cmds, m.goBack())
			case "exit.", "exit", "quit":
				cmds = append(cmds, m.returnToMenu())
			default:
				m.settings.err = "Choose 1-4"
			}
		}
	case settingsEditingName:
		if !m.settings.input.Focused() {
			if focus := m.settings.input.Focus(); focus != nil {
				cmds = append(cmds, focus)
			}
		}
		var cmd tea.Cmd
		m.settings.input, cmd = m.settings.input.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			value := strings.TrimSpace(m.settings.input.Value())
			switch {
			case isExitCommand(value):
				cmds = append(cmds, m.returnToMenu())
			case isBackCommand(value):
				m.settings.mode = settingsViewing
			case value == "":
				m.settings.err = "Name cannot be empty"
			default:
				m.cfg.Config.Name = value
				if err := m.cfg.Save(); err != nil {
					m.settings.err = err.Error()
				} else {
					m.settings.err = ""
					m.infoMessage = "Name updated"
					m.settings.mode = settingsViewing
				}
			}
		}
	case settingsEditingTimezone:
		if !m.settings.input.Focused() {
			if focus := m.settings.input.Focus(); focus != nil {
				cmds = append(cmds, focus)
			}
		}
		var cmd tea.Cmd
		m.settings.input, cmd = m.settings.input.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
			value := strings.TrimSpace(m.settings.input.Value())
			switch {
			case isExitCommand(value):
				cmds = append(cmds, m.returnToMenu())
			case isBackCommand(value):
				m.settings.mode = settingsViewing
			case value == "":
				m.settings.err = "Timezone cannot be empty"
			default:
				if _, err := time.LoadLocation(value); err != nil {
					m.settings.err = "Invalid timezone"
				} else {
					m.cfg.Config.Timezone = value
					if err := m.cfg.Save(); err != nil {
						m.settings.err = err.Error()
					} else {
						m.settings.err = ""
						m.infoMessage = "Timezone updated"
						m.settings.mode = settingsViewing
					}
				}
			}
		}
	}
	return batchCmds(cmds)
}

func (m *model) viewSettings() string {
	lines := []string{m.theme.Title.Render("Settings & Help")}
	lines = append(lines, m.theme.Faint.Render("'/' goes back, 'exit.' returns home."))
	lines = append(lines, "")
	lines = append(lines, m.theme.Secondary.Render("Name: "+m.cfg.Config.Name))
	lines = append(lines, m.theme.Secondary.Render("Timezone: "+m.cfg.Config.Timezone))
	if user := m.store.User(); user != nil {
		lines = append(lines, m.theme.Secondary.Render("Account: "+user.Email))
	}
	if !m.store.Persisting() {
		lines = append(lines, m.theme.Warning.Render("Storage unavailable — changes live in memory only."))
	}
	lines = append(lines, "")
	lines = append(lines, m.theme.Highlight.Render("Shortcuts"))
	lines = append(lines, m.theme.HelpKey.Render("/")+" → "+m.theme.HelpValue.Render("Back"))
	lines = append(lines, m.theme.HelpKey.Render("exit.")+" → "+m.theme.HelpValue.Render("Main menu"))
	lines = append(lines, m.theme.HelpKey.Render("Ctrl+C")+" → "+m.theme.HelpValue.Render("Quit"))
	lines = append(lines, "")

	switch m.settings.mode {
	case settingsViewing:
		lines = append(lines, m.theme.Secondary.Render("1. Update name"))
		lines = append(lines, m.theme.Secondary.Render("2. Update timezone"))
		lines = append(lines, m.theme.Secondary.Render("3. Logout"))
		lines = append(lines, m.theme.Faint.Render("4. Back"))
		lines = append(lines, "")
		lines = append(lines, m.theme.Accent.Render("> ")+m.menuInput.View())
	case settingsEditingName:
		lines = append(lines, m.theme.Secondary.Render("Enter new name:"))
		lines = append(lines, m.settings.input.View())
	case settingsEditingTimezone:
		lines = append(lines, m.theme.Secondary.Render("Enter timezone (e.g. America/New_York):"))
		lines = append(lines, m.settings.input.View())
	}
	if m.settings.err != "" {
		lines = append(lines, "", m.theme.Danger.Render(m.settings.err))
	}
	if m.infoMessage != "" {
		lines = append(lines, "", m.theme.Success.Render(m.infoMessage))
	}
	return strings.Join(lines, "\n") + "\n"
}
