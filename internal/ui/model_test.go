package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdesk/internal/config"
	"agentdesk/internal/store"
)

func testModel(t *testing.T) *model {
	t.Helper()
	st := store.New(store.Options{})
	st.Login("agent@example.com", "pw")
	st.AddLead(store.Lead{Name: "Sarah Johnson"})
	st.AddLead(store.Lead{Name: "Sam Parker"})
	st.AddLead(store.Lead{Name: "Michael Chen"})
	cfg := &config.Store{Config: config.Data{Name: "Test", Timezone: "UTC"}}
	return newModel(st, cfg)
}

func TestResolveOption(t *testing.T) {
	cases := []struct {
		input string
		want  string
		ok    bool
	}{
		{"1", menuDashboard, true},
		{"d", menuDashboard, true},
		{"LEADS", menuLeads, true},
		{"pipe", menuPipeline, true},
		{"kanban", menuPipeline, true},
		{"exit.", menuQuit, true},
		{"", "", false},
		{"zzz", "", false},
	}
	for _, tc := range cases {
		got, ok := resolveOption(mainMenuOptions, tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		if tc.ok {
			assert.Equal(t, tc.want, got, "input %q", tc.input)
		}
	}
}

func TestResolveLeadSelection(t *testing.T) {
	m := testModel(t)
	m.refreshLeads()

	lead, ok := m.resolveLeadSelection("2")
	require.True(t, ok)
	assert.Equal(t, "Sam Parker", lead.Name)

	lead, ok = m.resolveLeadSelection("michael chen")
	require.True(t, ok)
	assert.Equal(t, "Michael Chen", lead.Name)

	lead, ok = m.resolveLeadSelection("open Mic")
	require.True(t, ok)
	assert.Equal(t, "Michael Chen", lead.Name)

	// "sa" prefixes both Sarah and Sam, so the match is ambiguous
	_, ok = m.resolveLeadSelection("sa")
	assert.False(t, ok)

	_, ok = m.resolveLeadSelection("99")
	assert.False(t, ok)
}

func TestTemplateFormAddAndEdit(t *testing.T) {
	m := testModel(t)

	m.tplForm = newTemplateForm(nil)
	m.tplForm.fields[0].value = "Price Drop"
	m.tplForm.fields[1].value = "custom"
	m.tplForm.fields[2].value = "Good news, {{first_name}}!"
	m.tplForm.fields[3].value = "Hi {{first_name}},\\n\\nThe price just dropped."

	msg := m.submitTemplateForm()
	assert.Equal(t, "Template 'Price Drop' added", msg)

	templates := m.store.EmailTemplates()
	require.Len(t, templates, 1)
	added := templates[0]
	assert.Equal(t, store.CategoryCustom, added.Category)
	assert.Contains(t, added.Body, "Hi {{first_name}},\n\nThe price")

	m.tplForm = newTemplateForm(&added)
	assert.True(t, m.tplForm.editing)
	assert.Equal(t, "Hi {{first_name}},\\n\\nThe price just dropped.", m.tplForm.fields[3].value)
	m.tplForm.fields[2].value = "Even better news"

	msg = m.submitTemplateForm()
	assert.Equal(t, "Template 'Price Drop' updated", msg)
	templates = m.store.EmailTemplates()
	require.Len(t, templates, 1)
	assert.Equal(t, "Even better news", templates[0].Subject)
}

func TestBackAndExitCommands(t *testing.T) {
	assert.True(t, isBackCommand("/"))
	assert.True(t, isBackCommand(" back "))
	assert.False(t, isBackCommand("forward"))

	assert.True(t, isExitCommand("exit."))
	assert.True(t, isExitCommand("QUIT"))
	assert.False(t, isExitCommand("exit please"))
}
