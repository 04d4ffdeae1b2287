// Package runner spawns each feature test package as a subprocess with a
// wall-clock timeout, captures exit codes, and prints an aggregated
// pass/fail summary. Execution is strictly sequential; the suite drives a
// single shared application instance and a single on-disk session cache.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/GunarsK-portfolio/e2e-tests/internal/obs"
)

// DefaultTimeout is the per-subprocess wall-clock limit.
const DefaultTimeout = 300 * time.Second

// Spec names one runnable feature test package.
type Spec struct {
	Name    string // human-readable, e.g. "Certifications CRUD"
	Package string // go package path, e.g. "./tests/admin/certifications"
}

// Result records the outcome of one spec.
type Result struct {
	Spec     Spec
	Passed   bool
	TimedOut bool
	ExitCode int
	Duration time.Duration
	Err      string
}

// Suite is an ordered list of specs to run sequentially.
type Suite struct {
	Title   string
	Specs   []Spec
	Timeout time.Duration
	Dir     string    // working directory for subprocesses (repo root)
	Out     io.Writer // defaults to os.Stdout

	// Command builds the subprocess for a spec. Overridable in tests;
	// defaults to `go test -count=1 <package>`.
	Command func(ctx context.Context, spec Spec) *exec.Cmd
}

func (s *Suite) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

func (s *Suite) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}

func (s *Suite) command(ctx context.Context, spec Spec) *exec.Cmd {
	if s.Command != nil {
		return s.Command(ctx, spec)
	}
	cmd := exec.CommandContext(ctx, "go", "test", "-count=1", spec.Package)
	cmd.Dir = s.Dir
	cmd.Stdout = s.out()
	cmd.Stderr = s.out()
	return cmd
}

// Run executes every spec in order and returns all results. A timeout
// kills the subprocess and records a failure; later specs still run.
func (s *Suite) Run(ctx context.Context) []Result {
	log := obs.Logger()
	results := make([]Result, 0, len(s.Specs))

	for _, spec := range s.Specs {
		fmt.Fprintln(s.out(), strings.Repeat("=", 70))
		fmt.Fprintf(s.out(), "Running: %s\n", spec.Name)
		fmt.Fprintln(s.out(), strings.Repeat("=", 70))

		results = append(results, s.runOne(ctx, spec))
		last := results[len(results)-1]
		log.Info("test finished",
			"name", spec.Name,
			"passed", last.Passed,
			"duration", last.Duration.String())
	}
	return results
}

func (s *Suite) runOne(ctx context.Context, spec Spec) Result {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	start := time.Now()
	cmd := s.command(runCtx, spec)
	err := cmd.Run()
	result := Result{
		Spec:     spec,
		Duration: time.Since(start),
	}

	switch {
	case err == nil:
		result.Passed = true
	case runCtx.Err() == context.DeadlineExceeded:
		result.TimedOut = true
		result.ExitCode = -1
		result.Err = fmt.Sprintf("timed out after %s", s.timeout())
	default:
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			result.Err = fmt.Sprintf("exit code %d", exitErr.ExitCode())
		} else {
			result.ExitCode = -1
			result.Err = err.Error()
		}
	}
	return result
}

// AllPassed reports whether every result succeeded.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// Summarize prints the aggregated table and returns AllPassed.
func Summarize(w io.Writer, title string, results []Result, elapsed time.Duration) bool {
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	failed := len(results) - passed

	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "%s SUMMARY\n", strings.ToUpper(title))
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Total tests: %d\n", len(results))
	fmt.Fprintf(w, "Passed: %d\n", passed)
	fmt.Fprintf(w, "Failed: %d\n", failed)
	fmt.Fprintf(w, "Duration: %.2f seconds\n", elapsed.Seconds())

	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	if failed > 0 {
		fmt.Fprintln(w, "\nFailed tests:")
		for _, r := range results {
			if !r.Passed {
				fmt.Fprintf(w, "  %s %s: %s\n", fail("[FAIL]"), r.Spec.Name, r.Err)
			}
		}
	}

	fmt.Fprintln(w, "\nPassed tests:")
	for _, r := range results {
		if r.Passed {
			fmt.Fprintf(w, "  %s %s (%.1fs)\n", pass("[PASS]"), r.Spec.Name, r.Duration.Seconds())
		}
	}
	fmt.Fprintln(w, strings.Repeat("=", 70))

	return failed == 0
}

// Confirm prints the prompt and blocks for Enter when the run is
// interactive and confirmation was not skipped. Returns false when the
// operator cancels with an input error (closed stdin).
func Confirm(in io.Reader, out io.Writer, interactive, noConfirm bool, prompt string) bool {
	if noConfirm || !interactive {
		return true
	}
	fmt.Fprintln(out, prompt)
	fmt.Fprintln(out, "Press Enter to continue or Ctrl+C to cancel...")
	_, err := bufio.NewReader(in).ReadString('\n')
	return err == nil
}
