// Command run-public-tests executes the public website suite only.
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
	prompt := fmt.Sprintf("This will run the public website tests against %s.", cfg.PublicWebURL)
	if !runner.Confirm(os.Stdin, os.Stdout, interactive, *noConfirm, prompt) {
		os.Exit(130)
	}

	root := config.RepositoryRoot()
	suite := &runner.Suite{Title: "Public Website", Specs: runner.PublicSpecs(), Dir: root}
	start := time.Now()
	results := suite.Run(context.Background())
	if !runner.Summarize(os.Stdout, suite.Title, results, time.Since(start)) {
		os.Exit(1)
	}
}
