// Package orchestrator coordinates the score normalization workflow for
// Partwise: expanding inputs, parsing scores, computing and applying
// rename plans, writing outputs and recording the audit trail.
package orchestrator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"partwise/internal/audit"
	"partwise/internal/canon"
	"partwise/internal/config"
	"partwise/internal/musicxml"
	"partwise/internal/output"
	"partwise/internal/renamer"
	"partwise/internal/scanner"
)

// Version is reported in RUN_START audit events and by the version flag.
const Version = "0.1.0"

// Options controls a normalization run.
type Options struct {
	ConfigPath string   // Path to the configuration file, empty for defaults
	Inputs     []string // Score files or directories to normalize
	OutputPath string   // Explicit output path, only valid for a single input
	DryRun     bool     // Compute and show plans without writing anything
	Verbose    bool     // Verbose output
}

// ScoreResult represents the outcome of normalizing a single score.
type ScoreResult struct {
	Input              string
	Output             string
	PartsRenamed       int
	InstrumentsRenamed int
	Unmatched          int
	ByFamily           map[string]int // Parts per family, populated on success
	Err                error
}

// Orchestrator wires configuration, output and the audit log together
// for run, watch and history operations.
type Orchestrator struct {
	config *config.Configuration
	out    *output.Output
	audit  *audit.Writer
}

// New creates an Orchestrator with the given configuration and output.
func New(cfg *config.Configuration, out *output.Output) *Orchestrator {
	return &Orchestrator{config: cfg, out: out}
}

// NewFromPath creates an Orchestrator by loading configuration from a
// file. A missing file falls back to the built-in defaults.
func NewFromPath(configPath string, out *output.Output) (*Orchestrator, error) {
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return New(cfg, out), nil
}

// Config returns the configuration the orchestrator runs with.
func (o *Orchestrator) Config() *config.Configuration {
	return o.config
}

// Run normalizes every score named by the options and returns a summary.
// Directories are scanned recursively for score files; existing outputs
// are skipped. Failures on individual scores are recorded in the summary
// and do not abort the rest of the run.
func (o *Orchestrator) Run(opts Options) (*RunSummary, error) {
	start := time.Now()

	files, err := o.ExpandInputs(opts.Inputs)
	if err != nil {
		return nil, err
	}
	if opts.OutputPath != "" && len(files) != 1 {
		return nil, fmt.Errorf("output path requires exactly one input score, got %d", len(files))
	}

	if !opts.DryRun {
		if err := o.openAudit(); err != nil {
			return nil, err
		}
		defer o.closeAudit()
		if o.audit != nil {
			if _, err := o.audit.StartRun(Version); err != nil {
				return nil, fmt.Errorf("failed to start audit run: %w", err)
			}
		}
	}

	table := o.config.Table()
	summary := &RunSummary{}

	o.out.StartProgress(len(files))
	for i, file := range files {
		o.out.UpdateProgress(i+1, "")
		result := o.normalizeScore(file, opts, table)
		summary.add(result)
	}
	o.out.EndProgress()

	summary.Duration = time.Since(start)
	if opts.Verbose {
		summary.fillByFamily()
	}

	if !opts.DryRun && o.audit != nil {
		status := audit.RunStatusCompleted
		if summary.Failures > 0 {
			status = audit.RunStatusFailed
		}
		if err := o.audit.EndRun(status, summary.totals()); err != nil {
			return summary, fmt.Errorf("failed to finish audit run: %w", err)
		}
	}

	return summary, nil
}

// normalizeScore parses, normalizes and writes a single score.
func (o *Orchestrator) normalizeScore(path string, opts Options, table *canon.Table) ScoreResult {
	result := ScoreResult{Input: path}

	doc, err := musicxml.ParseFile(path)
	if err != nil {
		result.Err = err
		o.out.Error("%s: %v", path, err)
		o.logFailure(audit.EventParseFailure, path, "parse", err)
		return result
	}

	res := renamer.Discover(doc, table)
	renamer.Cleanup(res.Parts, res.PartCounts)
	renamer.Cleanup(res.Instruments, res.InstrumentCounts)

	result.PartsRenamed, result.InstrumentsRenamed = res.Renamed()
	result.Unmatched = len(res.Unmatched)
	result.ByFamily = res.PartCounts

	for _, u := range res.Unmatched {
		o.out.Verbose("%s: no canonical name for %s %s %q", path, u.Kind, u.ID, u.Name)
	}

	if opts.DryRun {
		o.out.Info("%s (dry run):", path)
		o.out.DumpPlans(res.Parts, res.Instruments)
		return result
	}

	if err := renamer.Apply(doc, res.Parts, res.Instruments); err != nil {
		result.Err = err
		o.out.Error("%s: %v", path, err)
		eventType := audit.EventError
		var cerr *renamer.ConsistencyError
		if errors.As(err, &cerr) {
			eventType = audit.EventConsistencyFailure
		}
		o.logFailure(eventType, path, "apply", err)
		return result
	}

	outPath := opts.OutputPath
	if outPath == "" {
		outPath = OutputPathFor(path, o.config.OutputSuffix)
	}
	if err := doc.WriteFile(outPath); err != nil {
		result.Err = err
		o.out.Error("%s: %v", path, err)
		o.logFailure(audit.EventError, path, "write", err)
		return result
	}
	result.Output = outPath

	o.logScore(path, res)
	o.out.Verbose("%s -> %s (%d parts, %d instruments renamed)",
		path, outPath, result.PartsRenamed, result.InstrumentsRenamed)

	return result
}

// OutputPathFor derives the output path for an input score by inserting
// the suffix before the extension.
func OutputPathFor(input, suffix string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + suffix + ext
}

// ExpandInputs resolves the given files and directories into a flat list
// of score files. Directories are scanned recursively; previously written
// outputs are excluded.
func (o *Orchestrator) ExpandInputs(inputs []string) ([]string, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input scores given")
	}

	scanOpts := scanner.Options{
		MaxDepth:     -1,
		OutputSuffix: o.config.OutputSuffix,
	}

	var files []string
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", input, err)
		}
		if info.IsDir() {
			entries, err := scanner.ScanWithOptions(input, scanOpts)
			if err != nil {
				return nil, err
			}
			for _, entry := range entries {
				files = append(files, entry.FullPath)
			}
			continue
		}
		files = append(files, input)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no score files found in %s", strings.Join(inputs, ", "))
	}
	return files, nil
}

// openAudit opens the audit log unless auditing is disabled.
func (o *Orchestrator) openAudit() error {
	if o.config.Audit == nil || o.config.Audit.Disabled {
		return nil
	}
	w, err := audit.NewWriter(*o.config.Audit)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	o.audit = w
	return nil
}

func (o *Orchestrator) closeAudit() {
	if o.audit == nil {
		return
	}
	if err := o.audit.Close(); err != nil {
		o.out.Error("failed to close audit log: %v", err)
	}
	o.audit = nil
}

// logScore writes the per-entity audit events for a normalized score.
func (o *Orchestrator) logScore(path string, res *renamer.Result) {
	if o.audit == nil {
		return
	}
	for id, entry := range res.Parts {
		if entry.Original == entry.Proposed {
			continue
		}
		if err := o.audit.LogRename(path, string(renamer.KindPart), id, entry.Original, entry.Proposed); err != nil {
			o.out.Error("audit: %v", err)
		}
	}
	for id, entry := range res.Instruments {
		if entry.Original == entry.Proposed {
			continue
		}
		if err := o.audit.LogRename(path, string(renamer.KindInstrument), id, entry.Original, entry.Proposed); err != nil {
			o.out.Error("audit: %v", err)
		}
	}
	for _, u := range res.Unmatched {
		if err := o.audit.LogSkipUnmatched(path, string(u.Kind), u.ID, u.Name); err != nil {
			o.out.Error("audit: %v", err)
		}
	}
}

func (o *Orchestrator) logFailure(eventType audit.EventType, path, operation string, opErr error) {
	if o.audit == nil {
		return
	}
	if err := o.audit.LogFailure(eventType, path, operation, opErr); err != nil {
		o.out.Error("audit: %v", err)
	}
}
