// Package dom is a flat library of stateless helpers over playwright-go
// for driving the portfolio admin and public web applications. Each helper
// takes the page or modal handle explicitly, performs one interaction, and
// waits on an explicit condition rather than sleeping.
//
// Failure modes follow the suite convention: helpers for hard dependencies
// (open a named modal, fill a required field) return an error when the
// element cannot be located; soft checks (does this row exist) return a
// boolean.
package dom

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/GunarsK-portfolio/e2e-tests/internal/errs"
)

// =============================================================================
// Form field helpers
// =============================================================================

// FillInput fills the first input whose placeholder contains the substring.
func FillInput(page playwright.Page, placeholder, value string) error {
	locator, err := WaitVisible(page, inputByPlaceholder(placeholder))
	if err != nil {
		return err
	}
	if err := locator.Fill(value); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to fill input %q", placeholder), err)
	}
	return nil
}

// FillLabeled fills the input inside the form item with the given label.
// Forms without placeholders (Recipients, some profile cards) are driven
// through their labels instead.
func FillLabeled(page playwright.Page, label, value string) error {
	locator, err := WaitVisible(page, inputByLabel(label))
	if err != nil {
		return err
	}
	if err := locator.Fill(value); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to fill field %q", label), err)
	}
	return nil
}

// LabeledValue reads back the value of the input inside a labeled form item.
func LabeledValue(page playwright.Page, label string) (string, error) {
	locator, err := WaitVisible(page, inputByLabel(label))
	if err != nil {
		return "", err
	}
	value, err := locator.InputValue()
	if err != nil {
		return "", errs.Wrap(errs.Internal, fmt.Sprintf("failed to read field %q", label), err)
	}
	return value, nil
}

// FillLabeledTextarea fills the textarea inside a labeled form item.
func FillLabeledTextarea(page playwright.Page, label, value string) error {
	locator, err := WaitVisible(page, textareaByLabel(label))
	if err != nil {
		return err
	}
	if err := locator.Fill(value); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to fill textarea %q", label), err)
	}
	return nil
}

// FillLabeledDate fills the date-picker input inside a labeled form item.
// Dates are yyyy-mm-dd.
func FillLabeledDate(page playwright.Page, label, value string) error {
	locator, err := WaitVisible(page, dateByLabel(label))
	if err != nil {
		return err
	}
	if err := locator.Fill(value); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to fill date %q", label), err)
	}
	return nil
}

// SelectFirstOption opens the labeled select and picks its first option.
func SelectFirstOption(page playwright.Page, label string) error {
	sel, err := WaitVisible(page, selectByLabel(label))
	if err != nil {
		return err
	}
	if err := sel.Click(); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to open select %q", label), err)
	}
	option, err := WaitVisible(page, ".n-base-select-option")
	if err != nil {
		return err
	}
	if err := option.Click(); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to pick first option of %q", label), err)
	}
	return nil
}

// FillTextarea fills the first textarea matched by placeholder substring.
func FillTextarea(page playwright.Page, placeholder, value string) error {
	locator, err := WaitVisible(page, textareaByPlaceholder(placeholder))
	if err != nil {
		return err
	}
	if err := locator.Fill(value); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to fill textarea %q", placeholder), err)
	}
	return nil
}

// FillDate fills the nth date-picker input on the page (issue date is 0,
// expiry date is 1 on forms with two pickers). Dates are yyyy-mm-dd.
func FillDate(page playwright.Page, index int, value string) error {
	inputs := page.Locator(dateSelector)
	count, err := inputs.Count()
	if err != nil {
		return errs.Wrap(errs.Internal, "failed to count date inputs", err)
	}
	if count <= index {
		return errs.New(errs.ElementMissing,
			fmt.Sprintf("date input %d not found (have %d)", index, count))
	}
	if err := inputs.Nth(index).Fill(value); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to fill date input %d", index), err)
	}
	return nil
}

// DateInputCount reports how many date-picker inputs the current form has.
func DateInputCount(page playwright.Page) int {
	count, err := page.Locator(dateSelector).Count()
	if err != nil {
		return 0
	}
	return count
}

// FillNumber fills a numeric input located by placeholder substring.
func FillNumber(page playwright.Page, placeholder string, value int) error {
	return FillInput(page, placeholder, fmt.Sprintf("%d", value))
}

// FillColor sets a color picker's value by typing into its text input.
func FillColor(page playwright.Page, hex string) error {
	trigger, err := WaitVisible(page, ".n-color-picker")
	if err != nil {
		return err
	}
	if err := trigger.Click(); err != nil {
		return errs.Wrap(errs.Internal, "failed to open color picker", err)
	}
	input, err := WaitVisible(page, ".n-color-picker-panel input")
	if err != nil {
		return err
	}
	if err := input.Fill(hex); err != nil {
		return errs.Wrap(errs.Internal, "failed to fill color value", err)
	}
	// Close the panel so it does not cover the form.
	if err := page.Keyboard().Press("Escape"); err != nil {
		return errs.Wrap(errs.Internal, "failed to close color picker", err)
	}
	return nil
}

// InputValue reads back the value of an input located by placeholder substring.
func InputValue(page playwright.Page, placeholder string) (string, error) {
	locator, err := WaitVisible(page, inputByPlaceholder(placeholder))
	if err != nil {
		return "", err
	}
	value, err := locator.InputValue()
	if err != nil {
		return "", errs.Wrap(errs.Internal, fmt.Sprintf("failed to read input %q", placeholder), err)
	}
	return value, nil
}

// SelectOption opens the first Naive UI select on the form and picks the
// option with the given visible text.
func SelectOption(page playwright.Page, optionLabel string) error {
	sel, err := WaitVisible(page, ".n-select")
	if err != nil {
		return err
	}
	if err := sel.Click(); err != nil {
		return errs.Wrap(errs.Internal, "failed to open select", err)
	}
	option, err := WaitVisible(page, optionByText(optionLabel))
	if err != nil {
		return err
	}
	if err := option.Click(); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to pick option %q", optionLabel), err)
	}
	return nil
}

// ToggleSwitch flips the switch scoped to a form item label.
func ToggleSwitch(page playwright.Page, label string) error {
	sw, err := WaitVisible(page, switchByLabel(label))
	if err != nil {
		return err
	}
	if err := sw.Click(); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to toggle switch %q", label), err)
	}
	return nil
}

// UploadFile attaches a file from disk to the first file input on the page.
func UploadFile(page playwright.Page, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrap(errs.Internal, "failed to read upload file", err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	input := page.Locator(`input[type="file"]`).First()
	err = input.SetInputFiles([]playwright.InputFile{{
		Name:     filepath.Base(path),
		MimeType: mimeType,
		Buffer:   data,
	}})
	if err != nil {
		return errs.Wrap(errs.Internal, "failed to set upload file", err)
	}
	return nil
}

// =============================================================================
// Modal helpers
// =============================================================================

// OpenModal clicks a button by visible text and waits for the dialog.
func OpenModal(page playwright.Page, buttonText string) (playwright.Locator, error) {
	btn, err := WaitVisible(page, buttonByText(buttonText))
	if err != nil {
		return nil, err
	}
	if err := btn.Click(); err != nil {
		return nil, errs.Wrap(errs.Internal, fmt.Sprintf("failed to click %q", buttonText), err)
	}
	return WaitVisible(page, modalSelector)
}

// OpenEditModal clicks a row's edit action and waits for the dialog.
func OpenEditModal(page playwright.Page, row playwright.Locator) (playwright.Locator, error) {
	editBtn := row.Locator(buttonByAriaLabel("Edit")).First()
	if err := editBtn.Click(); err != nil {
		return nil, errs.Wrap(errs.ElementMissing, "row edit button not clickable", err)
	}
	return WaitVisible(page, modalSelector)
}

// SaveModal submits the open modal. The modal is expected to close; use
// ModalVisible afterwards when asserting a validation rejection instead.
func SaveModal(page playwright.Page) error {
	btn, err := WaitVisible(page, buttonByText("Save", "Create", "Update"))
	if err != nil {
		return err
	}
	if err := btn.Click(); err != nil {
		return errs.Wrap(errs.Internal, "failed to click save", err)
	}
	return nil
}

// SaveModalAndWaitClosed submits the open modal and waits for it to close.
func SaveModalAndWaitClosed(page playwright.Page) error {
	if err := SaveModal(page); err != nil {
		return err
	}
	return WaitHidden(page, modalSelector)
}

// CloseModal dismisses the open modal via its Cancel button.
func CloseModal(page playwright.Page) error {
	btn, err := WaitVisible(page, buttonByText("Cancel"))
	if err != nil {
		return err
	}
	if err := btn.Click(); err != nil {
		return errs.Wrap(errs.Internal, "failed to click cancel", err)
	}
	return WaitHidden(page, modalSelector)
}

// ModalVisible is a soft check for whether a dialog is currently open.
func ModalVisible(page playwright.Page) bool {
	visible, err := page.Locator(modalSelector).First().IsVisible()
	return err == nil && visible
}

// =============================================================================
// Table helpers
// =============================================================================

// Row returns the locator for the table row containing the given text.
func Row(page playwright.Page, text string) playwright.Locator {
	return page.Locator(rowByText(text)).First()
}

// WaitRowVisible waits for a row containing the text to appear.
func WaitRowVisible(page playwright.Page, text string) (playwright.Locator, error) {
	return WaitVisible(page, rowByText(text))
}

// RowAbsent is a soft check that no visible row contains the text.
func RowAbsent(page playwright.Page, text string) bool {
	visible, err := Row(page, text).IsVisible()
	return err != nil || !visible
}

// WaitRowAbsent waits for a row containing the text to disappear.
func WaitRowAbsent(page playwright.Page, text string) error {
	return WaitHidden(page, rowByText(text))
}

// CellContains is a soft check that a row has a cell containing the text.
func CellContains(row playwright.Locator, text string) bool {
	count, err := row.Locator(fmt.Sprintf(`td:has-text("%s")`, text)).Count()
	return err == nil && count > 0
}

// RowHasAction is a soft check for a row-level action button (Edit, Delete,
// View). The RBAC tests use this to verify read-only rendering.
func RowHasAction(row playwright.Locator, action string) bool {
	count, err := row.Locator(buttonByAriaLabel(action)).Count()
	return err == nil && count > 0
}

// DeleteRow clicks a row's delete action and confirms the prompt.
func DeleteRow(page playwright.Page, rowText string) error {
	row, err := WaitRowVisible(page, rowText)
	if err != nil {
		return err
	}
	deleteBtn := row.Locator(buttonByAriaLabel("Delete")).First()
	if err := deleteBtn.Click(); err != nil {
		return errs.Wrap(errs.ElementMissing, "row delete button not clickable", err)
	}
	confirm, err := WaitVisible(page, confirmSelector)
	if err != nil {
		return err
	}
	if err := confirm.Click(); err != nil {
		return errs.Wrap(errs.Internal, "failed to confirm deletion", err)
	}
	return WaitRowAbsent(page, rowText)
}

// SearchTable fills the table search box with the query.
func SearchTable(page playwright.Page, query string) error {
	search, err := WaitVisible(page, searchSelector)
	if err != nil {
		return err
	}
	if err := search.Fill(query); err != nil {
		return errs.Wrap(errs.Internal, "failed to fill search input", err)
	}
	return nil
}

// ClearSearch empties the table search box.
func ClearSearch(page playwright.Page) error {
	return SearchTable(page, "")
}

// SearchAndVerify searches for a query and waits for the expected row.
func SearchAndVerify(page playwright.Page, query, expectRowText string) error {
	if err := SearchTable(page, query); err != nil {
		return err
	}
	if _, err := WaitRowVisible(page, expectRowText); err != nil {
		return errs.Wrap(errs.ElementMissing,
			fmt.Sprintf("search %q did not surface row %q", query, expectRowText), err)
	}
	return ClearSearch(page)
}

// HasSearchBox is a soft check for pages without search.
func HasSearchBox(page playwright.Page) bool {
	count, err := page.Locator(searchSelector).Count()
	return err == nil && count > 0
}

// NextPage clicks the table pagination's next control.
func NextPage(page playwright.Page) error {
	next, err := WaitVisible(page, ".n-pagination-item--button:last-child, button[aria-label*='next' i]")
	if err != nil {
		return err
	}
	if err := next.Click(); err != nil {
		return errs.Wrap(errs.Internal, "failed to paginate", err)
	}
	return WaitSettled(page)
}

// PrevPage clicks the table pagination's previous control.
func PrevPage(page playwright.Page) error {
	prev, err := WaitVisible(page, ".n-pagination-item--button:first-child, button[aria-label*='prev' i]")
	if err != nil {
		return err
	}
	if err := prev.Click(); err != nil {
		return errs.Wrap(errs.Internal, "failed to paginate", err)
	}
	return WaitSettled(page)
}

// =============================================================================
// Navigation helpers
// =============================================================================

// NavigateToTab clicks a tab header and waits for the switch to settle.
func NavigateToTab(page playwright.Page, label string) error {
	tab, err := WaitVisible(page, tabByText(label))
	if err != nil {
		return err
	}
	if err := tab.Click(); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to open tab %q", label), err)
	}
	return WaitSettled(page)
}

// ExpandSection clicks a collapsible form section header by its title.
func ExpandSection(page playwright.Page, title string) error {
	section, err := WaitVisible(page, sectionByTitle(title))
	if err != nil {
		return err
	}
	if err := section.Click(); err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to expand section %q", title), err)
	}
	return nil
}

// SectionPresent is a soft check for optional form sections.
func SectionPresent(page playwright.Page, title string) bool {
	count, err := page.Locator(sectionByTitle(title)).Count()
	return err == nil && count > 0
}

// ElementVisible is a soft check for arbitrary selectors.
func ElementVisible(page playwright.Page, selector string) bool {
	visible, err := page.Locator(selector).First().IsVisible()
	return err == nil && visible
}

// ElementCount returns how many elements match the selector.
func ElementCount(page playwright.Page, selector string) int {
	count, err := page.Locator(selector).Count()
	if err != nil {
		return 0
	}
	return count
}

// =============================================================================
// Artifacts
// =============================================================================

// Screenshot writes a full-page capture under dir with consistent naming
// and returns the path.
func Screenshot(page playwright.Page, dir, name string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("test_%s.png", sanitizeName(name)))
	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return "", errs.Wrap(errs.Internal, "failed to capture screenshot", err)
	}
	return path, nil
}

func sanitizeName(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "_", `\`, "_", ":", "_")
	return replacer.Replace(strings.ToLower(name))
}
