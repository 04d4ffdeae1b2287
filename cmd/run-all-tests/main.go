// Command run-all-tests executes the full end-to-end suite: admin portal
// tests first, then the public website tests, with one summary per suite.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/GunarsK-portfolio/e2e-tests/internal/config"
	"github.com/GunarsK-portfolio/e2e-tests/internal/obs"
	"github.com/GunarsK-portfolio/e2e-tests/internal/runner"
)

func main() {
	noConfirm := flag.Bool("no-confirm", false, "skip the confirmation prompt")
	flag.Parse()

	obs.Init()
	log := obs.Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	fmt.Println(cfg)

	interactive := isatty.IsTerminal(os.Stdin.Fd())
	prompt := fmt.Sprintf(
		"This will run ALL end-to-end tests against %s and %s.",
		cfg.AdminWebURL, cfg.PublicWebURL,
	)
	if !runner.Confirm(os.Stdin, os.Stdout, interactive, *noConfirm, prompt) {
		os.Exit(130)
	}

	root := config.RepositoryRoot()
	ctx := context.Background()
	allPassed := true

	for _, suite := range []*runner.Suite{
		{Title: "Admin Portal", Specs: runner.AdminSpecs(), Dir: root},
		{Title: "Public Website", Specs: runner.PublicSpecs(), Dir: root},
	} {
		start := time.Now()
		results := suite.Run(ctx)
		if !runner.Summarize(os.Stdout, suite.Title, results, time.Since(start)) {
			allPassed = false
		}
	}

	if !allPassed {
		os.Exit(1)
	}
}
