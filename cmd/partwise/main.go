// Package main provides the CLI entry point for Partwise.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"partwise/internal/config"
	"partwise/internal/discovery"
	"partwise/internal/orchestrator"
	"partwise/internal/output"
)

const usage = `Usage: partwise [options] <score>...
       partwise watch [options]
       partwise discover [options] <score>...
       partwise history [options] [run-id]

Normalizes part and instrument names in MusicXML scores and writes the
result next to each input with a suffix (score.musicxml -> score_cleanup.musicxml).
Directories are scanned recursively for scores.

Options:
  -c, --config <file>   Configuration file (JSON)
  -o, --output <file>   Output path (single input only)
  -n, --dry-run         Show the rename plan without writing anything
  -v, --verbose         Verbose output
      --version         Print version and exit
  -h, --help            Show this help
`

type cliArgs struct {
	command    string
	configPath string
	outputPath string
	dryRun     bool
	verbose    bool
	positional []string
}

func main() {
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s", err, usage)
		os.Exit(1)
	}

	outConfig := output.DefaultConfig()
	outConfig.Verbose = args.verbose
	out := output.New(outConfig)

	o, err := orchestrator.NewFromPath(args.configPath, out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := orchestrator.Options{
		ConfigPath: args.configPath,
		Inputs:     args.positional,
		OutputPath: args.outputPath,
		DryRun:     args.dryRun,
		Verbose:    args.verbose,
	}

	switch args.command {
	case "run":
		runCommand(o, opts, out)
	case "watch":
		watchCommand(o, opts, out)
	case "discover":
		discoverCommand(o, args, out)
	case "history":
		historyCommand(o, args)
	}
}

// parseArgs parses the command line into a cliArgs. The first
// non-option argument selects a subcommand when it names one; anything
// else is treated as a score for the default run command.
func parseArgs(argv []string) (*cliArgs, error) {
	args := &cliArgs{command: "run"}

	if len(argv) > 0 {
		switch argv[0] {
		case "watch", "discover", "history":
			args.command = argv[0]
			argv = argv[1:]
		}
	}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "-c", "--config":
			i++
			if i >= len(argv) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			args.configPath = argv[i]
		case "-o", "--output":
			i++
			if i >= len(argv) {
				return nil, fmt.Errorf("%s requires a value", arg)
			}
			args.outputPath = argv[i]
		case "-n", "--dry-run":
			args.dryRun = true
		case "-v", "--verbose":
			args.verbose = true
		case "--version":
			fmt.Printf("partwise %s\n", orchestrator.Version)
			os.Exit(0)
		case "-h", "--help":
			fmt.Print(usage)
			os.Exit(0)
		default:
			if len(arg) > 1 && arg[0] == '-' {
				return nil, fmt.Errorf("unknown option: %s", arg)
			}
			args.positional = append(args.positional, arg)
		}
	}

	switch args.command {
	case "run", "discover":
		if len(args.positional) == 0 {
			return nil, fmt.Errorf("no input scores given")
		}
	case "history":
		if len(args.positional) > 1 {
			return nil, fmt.Errorf("history takes at most one run id")
		}
	}
	if args.outputPath != "" && args.command != "run" {
		return nil, fmt.Errorf("--output only applies to the run command")
	}

	return args, nil
}

func runCommand(o *orchestrator.Orchestrator, opts orchestrator.Options, out *output.Output) {
	summary, err := o.Run(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out.Info("%s", summary.PrintSummary())
	if summary.HasErrors() {
		os.Exit(1)
	}
}

func watchCommand(o *orchestrator.Orchestrator, opts orchestrator.Options, out *output.Output) {
	stop := make(chan struct{})
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		close(stop)
	}()

	summary, err := o.Watch(opts, stop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out.Info("Watched for %s: %d scores normalized, %d skipped, %d failures",
		summary.Duration.Round(time.Second), summary.ScoresNormalized, summary.FilesSkipped, summary.Failures)
	if summary.Failures > 0 {
		os.Exit(1)
	}
}

// discoverCommand scans the given scores for names the table cannot
// resolve and interactively adds accepted aliases to the configuration.
func discoverCommand(o *orchestrator.Orchestrator, args *cliArgs, out *output.Output) {
	cfg := o.Config()
	existing := make(map[string]bool, len(cfg.Aliases))
	for _, rule := range cfg.Aliases {
		existing[rule.Pattern] = true
	}

	files, err := o.ExpandInputs(args.positional)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := discovery.Discover(files, cfg.Table(), existing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out.Verbose("Scanned %d scores (%d failed), analyzed %d names",
		result.ScoresScanned, result.ScoresFailed, result.NamesAnalyzed)
	for _, skipped := range result.SkippedAliases {
		out.Verbose("Skipping %q: already configured", skipped.Pattern)
	}

	if len(result.NewAliases) == 0 {
		out.Info("No unmatched names found.")
		return
	}

	accepted := selectAliases(result.NewAliases, args.dryRun, out)
	if len(accepted) == 0 {
		out.Info("No aliases added.")
		return
	}
	if args.dryRun {
		return
	}

	for _, rule := range accepted {
		cfg.AddAliasRule(rule)
	}
	if args.configPath == "" {
		fmt.Fprintln(os.Stderr, "Warning: no configuration file given, aliases not persisted")
		os.Exit(1)
	}
	if err := config.Save(cfg, args.configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out.Info("Added %d aliases to %s", len(accepted), args.configPath)
}

// selectAliases prompts for each candidate, or just lists them in
// dry-run and non-interactive modes.
func selectAliases(candidates []discovery.ProposedAlias, dryRun bool, out *output.Output) []config.AliasRule {
	if dryRun || !discovery.IsInteractive() {
		for _, alias := range candidates {
			line := fmt.Sprintf("Unmatched: %q (%d occurrences)", alias.Pattern, alias.Occurrences)
			if alias.Suggested != "" {
				line += fmt.Sprintf(", suggestion: %q", alias.Suggested)
			}
			out.Info("%s", line)
		}
		return nil
	}

	prompter := discovery.NewInteractivePrompter(os.Stdin, os.Stdout)
	var accepted []config.AliasRule
	acceptAll := false

	for _, alias := range candidates {
		if acceptAll {
			if alias.Suggested != "" {
				accepted = append(accepted, config.AliasRule{Pattern: alias.Pattern, Family: alias.Suggested})
			}
			continue
		}

		result, family, err := prompter.PromptForAlias(alias)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		switch result {
		case discovery.PromptAccept:
			accepted = append(accepted, config.AliasRule{Pattern: alias.Pattern, Family: family})
		case discovery.PromptAcceptAll:
			acceptAll = true
			if alias.Suggested != "" {
				accepted = append(accepted, config.AliasRule{Pattern: alias.Pattern, Family: alias.Suggested})
			}
		case discovery.PromptRejectAll, discovery.PromptQuit:
			return accepted
		}
	}
	return accepted
}

func historyCommand(o *orchestrator.Orchestrator, args *cliArgs) {
	runID := ""
	if len(args.positional) == 1 {
		runID = args.positional[0]
	}
	if err := o.History(runID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
