package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHosts() []HostInfo {
	return []HostInfo{
		{Name: "vcenter-lab", Addr: "vcenter.lab.example.edu", User: "alice"},
		{Name: "vcenter-prod", Addr: "vcenter.example.edu"},
	}
}

func TestHostItemDisplay(t *testing.T) {
	item := hostItem{host: testHosts()[0]}

	assert.Equal(t, "vcenter-lab", item.Title())
	assert.Contains(t, item.Description(), "vcenter.lab.example.edu")
	assert.Contains(t, item.Description(), "as alice")
	assert.Contains(t, item.FilterValue(), "vcenter-lab")
}

func TestHostItemDescriptionOmitsDuplicateAddr(t *testing.T) {
	item := hostItem{host: HostInfo{Name: "vcenter.lab", Addr: "vcenter.lab"}}
	assert.NotContains(t, item.Description(), "vcenter.lab")
}

func TestHostPickerSelectsOnEnter(t *testing.T) {
	m := NewHostPickerModel(testHosts())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := updated.(HostPickerModel)
	require.True(t, ok)

	selected := model.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "vcenter-lab", selected.Name)
}

func TestHostPickerCancelsOnEsc(t *testing.T) {
	m := NewHostPickerModel(testHosts())

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, ok := updated.(HostPickerModel)
	require.True(t, ok)

	assert.Nil(t, model.Selected())
	assert.Empty(t, model.View())
}

func TestHostPickerResizes(t *testing.T) {
	m := NewHostPickerModel(testHosts())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	model := updated.(HostPickerModel)
	assert.Equal(t, 100, model.width)
	assert.Equal(t, 30, model.height)
}

func TestPickHostEmpty(t *testing.T) {
	_, err := PickHost(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No hosts to pick from")
}

func TestPickHostSingleSkipsPicker(t *testing.T) {
	hosts := testHosts()[:1]
	selected, err := PickHost(hosts)
	require.NoError(t, err)
	require.NotNil(t, selected)
	assert.Equal(t, "vcenter-lab", selected.Name)
}
