// Package testenv owns the shared browser fixture for feature test
// packages. Each package's TestMain delegates to Run; individual tests
// obtain the process-wide environment through Get and its session
// accessors. The browser launches lazily on first use so short-mode
// runs never touch Playwright.
package testenv

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/playwright-community/playwright-go"

	"github.com/GunarsK-portfolio/e2e-tests/internal/config"
	"github.com/GunarsK-portfolio/e2e-tests/internal/dom"
	"github.com/GunarsK-portfolio/e2e-tests/internal/errs"
	"github.com/GunarsK-portfolio/e2e-tests/internal/obs"
	"github.com/GunarsK-portfolio/e2e-tests/internal/session"
)

// Env is the process-wide browser environment shared by every test in a
// feature package. Sessions are cached so a package logs in at most once
// per account.
type Env struct {
	Cfg     *config.Config
	Browser playwright.Browser

	pw *playwright.Playwright

	adminOnce sync.Once
	admin     *session.Session
	adminErr  error

	demoOnce sync.Once
	demo     *session.Session
	demoErr  error
}

var (
	mu          sync.Mutex
	shared      *Env
	sharedErr   error
	initialized bool
)

// Run wraps testing.M for feature package TestMains and tears down the
// shared environment after the package's tests complete.
func Run(m *testing.M) int {
	obs.Init()
	code := m.Run()

	mu.Lock()
	defer mu.Unlock()
	if shared != nil {
		shared.close()
		shared = nil
	}
	return code
}

// Get returns the shared environment, starting it on first use. Tests
// skip in short mode and when no browser can be launched; an environment
// that starts but cannot authenticate is reported by the session accessors.
func Get(t *testing.T) *Env {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	mu.Lock()
	defer mu.Unlock()
	if !initialized {
		shared, sharedErr = start()
		initialized = true
	}
	if sharedErr != nil {
		t.Skipf("browser environment unavailable: %v", sharedErr)
	}
	return shared
}

func start() (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("playwright driver not available: %w", err)
	}

	var browserType playwright.BrowserType
	switch cfg.Browser {
	case config.BrowserFirefox:
		browserType = pw.Firefox
	case config.BrowserWebKit:
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch %s: %w", cfg.Browser, err)
	}

	return &Env{Cfg: cfg, Browser: browser, pw: pw}, nil
}

func (e *Env) close() {
	if e.admin != nil {
		e.admin.Close()
	}
	if e.demo != nil {
		e.demo.Close()
	}
	if e.Browser != nil {
		_ = e.Browser.Close()
	}
	if e.pw != nil {
		_ = e.pw.Stop()
	}
}

// Admin returns the authenticated admin page, logging in on first call.
// Missing preconditions (no credentials, no saved session, no terminal)
// skip the test; rejected credentials fail it.
func (e *Env) Admin(t *testing.T) playwright.Page {
	t.Helper()
	e.adminOnce.Do(func() {
		mgr := session.NewManager(e.Cfg)
		e.admin, e.adminErr = mgr.Authenticate(e.Browser, session.StrategyAuto)
	})
	if e.adminErr != nil {
		switch errs.CodeOf(e.adminErr) {
		case errs.Unattended, errs.StateMissing:
			t.Skipf("no admin session available: %v", e.adminErr)
		default:
			t.Fatalf("admin authentication failed: %v", e.adminErr)
		}
	}
	return e.admin.Page
}

// Demo returns a page authenticated as the restricted demo account.
func (e *Env) Demo(t *testing.T) playwright.Page {
	t.Helper()
	if !e.Cfg.HasDemoCredentials() {
		t.Skip("TEST_DEMO_USERNAME/TEST_DEMO_PASSWORD not configured")
	}
	e.demoOnce.Do(func() {
		mgr := session.NewManager(e.Cfg,
			session.WithCredentials(e.Cfg.DemoUsername, e.Cfg.DemoPassword),
			// The demo session must not clobber the admin session cache.
			session.WithStatePath(e.Cfg.StatePath+".demo"),
		)
		e.demo, e.demoErr = mgr.Authenticate(e.Browser, session.StrategyCredentials)
	})
	if e.demoErr != nil {
		t.Fatalf("demo authentication failed: %v", e.demoErr)
	}
	return e.demo.Page
}

// Public opens a fresh unauthenticated page on the public website,
// closed automatically when the test finishes.
func (e *Env) Public(t *testing.T) playwright.Page {
	t.Helper()
	ctx, err := e.Browser.NewContext(playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(e.Cfg.IgnoreHTTPSErrors),
	})
	if err != nil {
		t.Fatalf("could not create public context: %v", err)
	}
	ctx.SetDefaultTimeout(float64(e.Cfg.Timeout.Milliseconds()))
	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		t.Fatalf("could not create public page: %v", err)
	}
	t.Cleanup(func() {
		_ = page.Close()
		_ = ctx.Close()
	})
	if err := dom.Navigate(page, e.Cfg.PublicWebURL, "/"); err != nil {
		t.Fatalf("public site unreachable: %v", err)
	}
	return page
}

// NavigateAdmin opens an admin route on the shared admin session.
func (e *Env) NavigateAdmin(t *testing.T, path string) playwright.Page {
	t.Helper()
	page := e.Admin(t)
	if err := dom.Navigate(page, e.Cfg.AdminWebURL, path); err != nil {
		t.Fatalf("could not open %s: %v", path, err)
	}
	if err := dom.WaitSettled(page); err != nil {
		t.Fatalf("page did not settle on %s: %v", path, err)
	}
	return page
}

// CaptureOnFailure screenshots the page after a failed test.
func CaptureOnFailure(t *testing.T, page playwright.Page) {
	t.Helper()
	e := shared
	if e == nil {
		return
	}
	t.Cleanup(func() {
		if !t.Failed() {
			return
		}
		path, err := dom.Screenshot(page, e.Cfg.ScreenshotDir, t.Name())
		if err != nil {
			t.Logf("screenshot failed: %v", err)
			return
		}
		t.Logf("failure screenshot: %s", path)
	})
}

// WriteTempImage creates a small valid PNG on disk for upload tests.
func WriteTempImage(t *testing.T) string {
	t.Helper()
	// 1x1 transparent PNG.
	png := []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
		0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
		0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x62, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
		0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
	}
	path := os.TempDir() + "/e2e_upload_fixture.png"
	if err := os.WriteFile(path, png, 0o644); err != nil {
		t.Fatalf("could not write upload fixture: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	return path
}
