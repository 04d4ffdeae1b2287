package dom

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/GunarsK-portfolio/e2e-tests/internal/errs"
)

// pollInterval is the step between condition checks in bounded waits.
const pollInterval = 100 * time.Millisecond

// Navigate opens baseURL+path and waits for DOM content to load.
func Navigate(page playwright.Page, baseURL, path string) error {
	_, err := page.Goto(baseURL+path, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return errs.Wrap(errs.Internal, fmt.Sprintf("failed to navigate to %s", path), err)
	}
	return nil
}

// Reload reloads the page and waits for the network to settle, for
// persistence checks after create/update/delete.
func Reload(page playwright.Page) error {
	if _, err := page.Reload(); err != nil {
		return errs.Wrap(errs.Internal, "failed to reload page", err)
	}
	return WaitSettled(page)
}

// WaitSettled waits until the page reports no in-flight network activity.
func WaitSettled(page playwright.Page) error {
	err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
	if err != nil {
		return errs.Wrap(errs.StageTimeout, "page never reached network idle", err)
	}
	return nil
}

// WaitURL polls the current URL until pred accepts it or the timeout
// elapses. This replaces the fixed post-submit sleeps the suite used to
// rely on with an explicit timeout-vs-success outcome.
func WaitURL(page playwright.Page, timeout time.Duration, pred func(url string) bool) error {
	deadline := time.Now().Add(timeout)
	for {
		if pred(page.URL()) {
			return nil
		}
		if time.Now().After(deadline) {
			return errs.New(errs.StageTimeout,
				fmt.Sprintf("URL condition not met within %s (current: %s)", timeout, page.URL()))
		}
		time.Sleep(pollInterval)
	}
}

// WaitVisible waits for the first match of selector to become visible and
// returns its locator. Hard dependency: missing elements are an error.
func WaitVisible(page playwright.Page, selector string) (playwright.Locator, error) {
	locator := page.Locator(selector).First()
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ElementMissing,
			fmt.Sprintf("element %q did not become visible", selector), err)
	}
	return locator, nil
}

// WaitHidden waits for the selector to be hidden or detached.
func WaitHidden(page playwright.Page, selector string) error {
	err := page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateHidden,
	})
	if err != nil {
		return errs.Wrap(errs.StageTimeout,
			fmt.Sprintf("element %q did not disappear", selector), err)
	}
	return nil
}

// WaitCondition polls an arbitrary condition with an explicit timeout.
func WaitCondition(timeout time.Duration, what string, cond func() bool) error {
	deadline := time.Now().Add(timeout)
	for {
		if cond() {
			return nil
		}
		if time.Now().After(deadline) {
			return errs.New(errs.StageTimeout,
				fmt.Sprintf("condition %q not met within %s", what, timeout))
		}
		time.Sleep(pollInterval)
	}
}
