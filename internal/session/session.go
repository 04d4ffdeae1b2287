// Package session produces an authenticated browser session for test
// scripts, trying cheaper strategies before expensive ones and persisting
// successful logins to disk for reuse across runs.
//
// Strategy semantics:
//
//   - credentials: submit the configured username/password on the login
//     route. A rejected login is terminal; it is never masked by falling
//     back to cached session state.
//   - context: load the saved storage-state file into a fresh browser
//     context and verify a protected route does not bounce to /login.
//   - manual: print instructions and block on a line read. Requires an
//     interactive stdin; unattended processes fail immediately.
//   - auto: credentials when configured (terminal on failure), otherwise
//     cached context, then manual.
package session

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/playwright-community/playwright-go"

	"github.com/GunarsK-portfolio/e2e-tests/internal/config"
	"github.com/GunarsK-portfolio/e2e-tests/internal/dom"
	"github.com/GunarsK-portfolio/e2e-tests/internal/errs"
	"github.com/GunarsK-portfolio/e2e-tests/internal/logutil"
	"github.com/GunarsK-portfolio/e2e-tests/internal/obs"
)

// Strategy names one of the four authentication approaches.
type Strategy string

const (
	StrategyAuto        Strategy = "auto"
	StrategyContext     Strategy = "context"
	StrategyCredentials Strategy = "credentials"
	StrategyManual      Strategy = "manual"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case StrategyAuto:
		return StrategyAuto, nil
	case StrategyContext:
		return StrategyContext, nil
	case StrategyCredentials:
		return StrategyCredentials, nil
	case StrategyManual:
		return StrategyManual, nil
	default:
		return "", errs.New(errs.Internal, fmt.Sprintf("unknown auth strategy %q", name))
	}
}

// stage is one attemptable step of an authentication plan.
type stage string

const (
	stageCredentials stage = "credentials"
	stageContext     stage = "context"
	stageManual      stage = "manual"
)

// plan returns the ordered stages to attempt for a strategy given the
// current preconditions. A stage whose precondition fails is skipped
// entirely, never retried.
//
// For auto, configured credentials preempt everything else: a credential
// failure must surface as a credential failure, not be papered over by a
// stale cached session.
func plan(strategy Strategy, hasCredentials, stateExists, interactive bool) []stage {
	switch strategy {
	case StrategyCredentials:
		if hasCredentials {
			return []stage{stageCredentials}
		}
		return nil
	case StrategyContext:
		if stateExists {
			return []stage{stageContext}
		}
		return nil
	case StrategyManual:
		if interactive {
			return []stage{stageManual}
		}
		return nil
	case StrategyAuto:
		if hasCredentials {
			return []stage{stageCredentials}
		}
		var stages []stage
		if stateExists {
			stages = append(stages, stageContext)
		}
		if interactive {
			stages = append(stages, stageManual)
		}
		return stages
	default:
		return nil
	}
}

// emptyPlanError explains why no stage was attemptable.
func emptyPlanError(strategy Strategy, hasCredentials, stateExists, interactive bool) error {
	switch strategy {
	case StrategyCredentials:
		return errs.New(errs.CredentialsRejected, "credentials strategy requested but TEST_ADMIN_USERNAME/TEST_ADMIN_PASSWORD are not configured")
	case StrategyContext:
		return errs.New(errs.StateMissing, "context strategy requested but no saved session file exists")
	case StrategyManual:
		return errs.New(errs.Unattended, "manual strategy requested but stdin is not a terminal")
	default:
		if !hasCredentials && !stateExists && !interactive {
			return errs.New(errs.Unattended, "no credentials configured, no saved session, and no terminal for manual login")
		}
		return errs.New(errs.Internal, "all authentication strategies exhausted")
	}
}

// Session is an authenticated page plus its owning browser context.
type Session struct {
	Page    playwright.Page
	Context playwright.BrowserContext
}

// Close tears down the page and its context. Safe on partially built sessions.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.Page != nil {
		_ = s.Page.Close()
	}
	if s.Context != nil {
		_ = s.Context.Close()
	}
}

// Manager chooses and executes an authentication strategy.
type Manager struct {
	cfg       *config.Config
	baseURL   string
	statePath string
	username  string
	password  string

	stdin       io.Reader
	stdout      io.Writer
	interactive bool
	log         *slog.Logger
}

// Option customizes a Manager, mostly for tests.
type Option func(*Manager)

// WithCredentials overrides the configured admin credentials, used by the
// RBAC tests to log in as the restricted demo account.
func WithCredentials(username, password string) Option {
	return func(m *Manager) {
		m.username = username
		m.password = password
	}
}

// WithStdin replaces the interactive input stream.
func WithStdin(r io.Reader, interactive bool) Option {
	return func(m *Manager) {
		m.stdin = r
		m.interactive = interactive
	}
}

// WithStatePath overrides the saved-session file location.
func WithStatePath(path string) Option {
	return func(m *Manager) {
		m.statePath = path
	}
}

// NewManager builds a Manager from suite configuration.
func NewManager(cfg *config.Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:         cfg,
		baseURL:     strings.TrimRight(cfg.AdminWebURL, "/"),
		statePath:   cfg.StatePath,
		username:    cfg.AdminUsername,
		password:    cfg.AdminPassword,
		stdin:       os.Stdin,
		stdout:      os.Stderr,
		interactive: isatty.IsTerminal(os.Stdin.Fd()),
		log:         obs.Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StatePath returns where successful logins are persisted.
func (m *Manager) StatePath() string { return m.statePath }

func (m *Manager) hasCredentials() bool {
	return m.username != "" && m.password != ""
}

func (m *Manager) stateExists() bool {
	_, err := os.Stat(m.statePath)
	return err == nil
}

// Authenticate produces an authenticated session using the given strategy.
// On any successful credential or manual login the resulting storage state
// overwrites the saved session file; cached-context reuse does not re-persist.
func (m *Manager) Authenticate(browser playwright.Browser, strategy Strategy) (*Session, error) {
	stages := plan(strategy, m.hasCredentials(), m.stateExists(), m.interactive)
	if len(stages) == 0 {
		return nil, emptyPlanError(strategy, m.hasCredentials(), m.stateExists(), m.interactive)
	}

	m.log.Info("authenticating",
		"base_url", logutil.SanitizeURL(m.baseURL),
		"strategy", string(strategy),
		"stages", len(stages))

	var lastErr error
	for _, st := range stages {
		var (
			sess *Session
			err  error
		)
		switch st {
		case stageCredentials:
			sess, err = m.loginWithCredentials(browser)
			if err != nil {
				// Terminal: never mask a credential failure with stale state.
				return nil, err
			}
		case stageContext:
			sess, err = m.loadCachedContext(browser)
		case stageManual:
			sess, err = m.loginManual(browser)
		}
		if err == nil {
			return sess, nil
		}
		m.log.Warn("auth stage failed",
			"stage", string(st),
			"error", logutil.TruncateForLog(err.Error(), 300))
		lastErr = err
	}

	return nil, errs.Wrap(errs.Internal, "all authentication strategies exhausted", lastErr)
}

// loginWithCredentials drives the login form and persists the session on success.
func (m *Manager) loginWithCredentials(browser playwright.Browser) (*Session, error) {
	ctx, page, err := m.newContext(browser, "")
	if err != nil {
		return nil, err
	}
	sess := &Session{Page: page, Context: ctx}

	m.log.Info("attempting credential login", "username", m.username)

	if err := dom.Navigate(page, m.baseURL, "/login"); err != nil {
		sess.Close()
		return nil, errs.Wrap(errs.Internal, "failed to open login route", err)
	}

	// Field lookup is deliberately coupled to the admin UI's rendered
	// markup: username by input type or placeholder, password by type.
	usernameInput := page.Locator(`input[type="text"], input[placeholder*="username" i]`).First()
	passwordInput := page.Locator(`input[type="password"]`).First()

	if n, _ := usernameInput.Count(); n == 0 {
		sess.Close()
		return nil, errs.New(errs.ElementMissing, "login form username input not found")
	}
	if n, _ := passwordInput.Count(); n == 0 {
		sess.Close()
		return nil, errs.New(errs.ElementMissing, "login form password input not found")
	}

	if err := usernameInput.Fill(m.username); err != nil {
		sess.Close()
		return nil, errs.Wrap(errs.Internal, "failed to fill username", err)
	}
	if err := passwordInput.Fill(m.password); err != nil {
		sess.Close()
		return nil, errs.Wrap(errs.Internal, "failed to fill password", err)
	}

	submit := page.Locator(`button[type="submit"], button:has-text("Login"), button:has-text("Sign in")`).First()
	if n, _ := submit.Count(); n == 0 {
		sess.Close()
		return nil, errs.New(errs.ElementMissing, "login form submit button not found")
	}
	if err := submit.Click(); err != nil {
		sess.Close()
		return nil, errs.Wrap(errs.Internal, "failed to submit login form", err)
	}

	// Success is leaving the login route for the authenticated area.
	err = dom.WaitURL(page, m.cfg.Timeout, func(url string) bool {
		return strings.Contains(url, "dashboard") || !strings.Contains(url, "login")
	})
	if err != nil {
		sess.Close()
		return nil, errs.Wrap(errs.CredentialsRejected,
			fmt.Sprintf("login rejected for user %q: still on login route", m.username), err)
	}

	if err := m.saveState(ctx); err != nil {
		m.log.Warn("could not persist session state", "error", err.Error())
	}
	m.log.Info("credential login succeeded", "state_path", m.statePath)
	return sess, nil
}

// loadCachedContext opens a saved storage state and verifies it still
// grants access to a protected route. Expired state is discarded, not deleted.
func (m *Manager) loadCachedContext(browser playwright.Browser) (*Session, error) {
	if !m.stateExists() {
		return nil, errs.New(errs.StateMissing, "no saved session file at "+m.statePath)
	}

	ctx, page, err := m.newContext(browser, m.statePath)
	if err != nil {
		return nil, err
	}
	sess := &Session{Page: page, Context: ctx}

	if err := dom.Navigate(page, m.baseURL, "/dashboard"); err != nil {
		sess.Close()
		return nil, errs.Wrap(errs.Internal, "failed to open protected route", err)
	}

	err = dom.WaitURL(page, m.cfg.Timeout, func(url string) bool {
		return !strings.Contains(url, "login")
	})
	if err != nil {
		sess.Close()
		return nil, errs.Wrap(errs.StateExpired, "saved session redirected to login route", err)
	}

	m.log.Info("authenticated from saved session", "state_path", m.statePath)
	return sess, nil
}

// loginManual opens the login page and blocks until the operator confirms.
func (m *Manager) loginManual(browser playwright.Browser) (*Session, error) {
	if !m.interactive {
		return nil, errs.New(errs.Unattended, "manual login requires an interactive terminal")
	}

	ctx, page, err := m.newContext(browser, "")
	if err != nil {
		return nil, err
	}
	sess := &Session{Page: page, Context: ctx}

	if err := dom.Navigate(page, m.baseURL, "/login"); err != nil {
		sess.Close()
		return nil, errs.Wrap(errs.Internal, "failed to open login route", err)
	}

	fmt.Fprintln(m.stdout, strings.Repeat("=", 60))
	fmt.Fprintln(m.stdout, "MANUAL LOGIN REQUIRED")
	fmt.Fprintln(m.stdout, strings.Repeat("=", 60))
	fmt.Fprintf(m.stdout, "1. A browser window is open at: %s\n", logutil.SanitizeURL(page.URL()))
	fmt.Fprintln(m.stdout, "2. Log in manually in the browser")
	fmt.Fprintln(m.stdout, "3. Press Enter here once you are logged in")
	fmt.Fprintln(m.stdout, strings.Repeat("=", 60))

	if _, err := bufio.NewReader(m.stdin).ReadString('\n'); err != nil {
		sess.Close()
		return nil, errs.Wrap(errs.Unattended, "manual login confirmation read failed", err)
	}

	err = dom.WaitURL(page, m.cfg.Timeout, func(url string) bool {
		return !strings.Contains(url, "login")
	})
	if err != nil {
		sess.Close()
		return nil, errs.Wrap(errs.Internal, "still on login route after manual login", err)
	}

	if err := m.saveState(ctx); err != nil {
		m.log.Warn("could not persist session state", "error", err.Error())
	}
	return sess, nil
}

func (m *Manager) newContext(browser playwright.Browser, statePath string) (playwright.BrowserContext, playwright.Page, error) {
	opts := playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(m.cfg.IgnoreHTTPSErrors),
	}
	if statePath != "" {
		opts.StorageStatePath = playwright.String(statePath)
	}

	ctx, err := browser.NewContext(opts)
	if err != nil {
		return nil, nil, errs.Wrap(errs.Internal, "could not create browser context", err)
	}
	ctx.SetDefaultTimeout(float64(m.cfg.Timeout.Milliseconds()))
	ctx.SetDefaultNavigationTimeout(float64(m.cfg.Timeout.Milliseconds()))

	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		return nil, nil, errs.Wrap(errs.Internal, "could not create page", err)
	}
	return ctx, page, nil
}

// saveState overwrites the saved session file with the context's storage state.
func (m *Manager) saveState(ctx playwright.BrowserContext) error {
	if err := os.MkdirAll(filepath.Dir(m.statePath), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	if _, err := ctx.StorageState(m.statePath); err != nil {
		return fmt.Errorf("write storage state: %w", err)
	}
	return nil
}
