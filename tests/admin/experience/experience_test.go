// Package experience covers the work experience page: the entry form
// with its date range and currently-working switch, plus a full
// create/edit/delete cycle.
package experience

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GunarsK-portfolio/e2e-tests/internal/dom"
	"github.com/GunarsK-portfolio/e2e-tests/tests/testenv"
)

func TestMain(m *testing.M) {
	os.Exit(testenv.Run(m))
}

func TestAddExperienceModalFields(t *testing.T) {
	env := testenv.Get(t)
	page := env.NavigateAdmin(t, "/work-experience")
	testenv.CaptureOnFailure(t, page)

	_, err := dom.OpenModal(page, "Add Experience")
	require.NoError(t, err, "Add Experience modal did not open")

	assert.True(t, dom.ElementVisible(page, `input[placeholder*="company name" i]`), "company field")
	assert.True(t, dom.ElementVisible(page, `input[placeholder*="job position" i]`), "position field")
	assert.True(t, dom.ElementVisible(page, `textarea[placeholder*="responsibilities" i]`), "description field")
	assert.True(t, dom.ElementVisible(page, `text=Start Date`), "start date picker")
	assert.True(t, dom.ElementVisible(page, `text=End Date`), "end date picker")
	assert.True(t, dom.ElementVisible(page, `text=Currently working here`), "currently working switch")

	require.NoError(t, dom.CloseModal(page))
}

func TestExperienceLifecycle(t *testing.T) {
	env := testenv.Get(t)
	page := env.NavigateAdmin(t, "/work-experience")
	testenv.CaptureOnFailure(t, page)

	company := fmt.Sprintf("E2E Test Corp %s", uuid.NewString()[:8])
	updatedCompany := company + " Updated"

	// Empty submit keeps the modal open.
	_, err := dom.OpenModal(page, "Add Experience")
	require.NoError(t, err)
	require.NoError(t, dom.SaveModal(page))
	require.True(t, dom.ModalVisible(page), "validation must keep the empty form open")
	require.NoError(t, dom.CloseModal(page))

	// Create.
	_, err = dom.OpenModal(page, "Add Experience")
	require.NoError(t, err)
	require.NoError(t, dom.FillInput(page, "company name", company))
	require.NoError(t, dom.FillInput(page, "job position", "Software Engineer"))
	require.NoError(t, dom.FillTextarea(page, "responsibilities", "Built and operated the platform."))
	require.NoError(t, dom.FillDate(page, 0, "2022-03-01"))
	require.NoError(t, dom.ToggleSwitch(page, "Currently working here"))
	require.NoError(t, dom.SaveModalAndWaitClosed(page), "create experience entry")

	row, err := dom.WaitRowVisible(page, company)
	require.NoError(t, err, "new entry not in table")

	// Edit.
	_, err = dom.OpenEditModal(page, row)
	require.NoError(t, err)
	loaded, err := dom.InputValue(page, "company name")
	require.NoError(t, err)
	require.Equal(t, company, loaded, "edit form did not load existing data")

	require.NoError(t, dom.FillInput(page, "company name", updatedCompany))
	require.NoError(t, dom.SaveModalAndWaitClosed(page), "update experience entry")

	_, err = dom.WaitRowVisible(page, updatedCompany)
	require.NoError(t, err, "updated entry not in table")

	// Persistence and cleanup.
	require.NoError(t, dom.Reload(page))
	_, err = dom.WaitRowVisible(page, updatedCompany)
	require.NoError(t, err, "entry lost after reload")

	require.NoError(t, dom.DeleteRow(page, updatedCompany))
	assert.True(t, dom.RowAbsent(page, updatedCompany))
}
