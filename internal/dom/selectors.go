package dom

import (
	"fmt"
	"strings"
)

// Selector construction is deliberately coupled to the admin UI's rendered
// markup (Naive UI components, placeholder-based field lookup). The
// coupling lives here, in one place, rather than being generalized away.

const (
	modalSelector   = `[role="dialog"]`
	searchSelector  = `input[placeholder*="Search" i]`
	dateSelector    = `input[placeholder*="Select Date" i]`
	confirmSelector = `button:has-text("Confirm"), button:has-text("Delete"), button:has-text("Yes")`
)

// inputByPlaceholder matches an input whose placeholder contains substr,
// case-insensitively.
func inputByPlaceholder(substr string) string {
	return fmt.Sprintf(`input[placeholder*="%s" i]`, substr)
}

// textareaByPlaceholder matches a textarea by placeholder substring.
func textareaByPlaceholder(substr string) string {
	return fmt.Sprintf(`textarea[placeholder*="%s" i]`, substr)
}

// rowByText matches a table row containing the given text.
func rowByText(text string) string {
	return fmt.Sprintf(`tr:has-text("%s")`, text)
}

// buttonByText matches buttons by one or more visible labels.
func buttonByText(labels ...string) string {
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = fmt.Sprintf(`button:has-text("%s")`, label)
	}
	return strings.Join(parts, ", ")
}

// buttonByAriaLabel matches row action buttons by aria-label substring.
func buttonByAriaLabel(substr string) string {
	return fmt.Sprintf(`button[aria-label*="%s" i]`, substr)
}

// tabByText matches a tab header by its label.
func tabByText(label string) string {
	return fmt.Sprintf(`[role="tab"]:has-text("%s"), .n-tabs-tab:has-text("%s")`, label, label)
}

// inputByLabel scopes an input to its Naive UI form item label.
func inputByLabel(label string) string {
	return fmt.Sprintf(`.n-form-item:has(.n-form-item-label:has-text("%s")) input`, label)
}

// textareaByLabel scopes a textarea to its form item label.
func textareaByLabel(label string) string {
	return fmt.Sprintf(`.n-form-item:has(.n-form-item-label:has-text("%s")) textarea`, label)
}

// dateByLabel scopes a date-picker input to its form item label.
func dateByLabel(label string) string {
	return fmt.Sprintf(`.n-form-item:has(.n-form-item-label:has-text("%s")) input[placeholder*="Select Date" i]`, label)
}

// selectByLabel scopes a Naive UI select to its form item label.
func selectByLabel(label string) string {
	return fmt.Sprintf(`.n-form-item:has(.n-form-item-label:has-text("%s")) .n-select`, label)
}

// switchByLabel scopes a Naive UI switch to its form item label.
func switchByLabel(label string) string {
	return fmt.Sprintf(`.n-form-item:has(.n-form-item-label:has-text("%s")) .n-switch`, label)
}

// optionByText matches a dropdown option by its visible text.
func optionByText(label string) string {
	return fmt.Sprintf(`.n-base-select-option:has-text("%s")`, label)
}

// sectionByTitle matches a collapsible form section header.
func sectionByTitle(title string) string {
	return fmt.Sprintf(`text=%s`, title)
}
