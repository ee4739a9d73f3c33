package orchestrator

import (
	"fmt"

	"partwise/internal/audit"
)

// History prints past runs from the audit log. With an empty runID it
// lists every recorded run; otherwise it prints the events of that run.
func (o *Orchestrator) History(runID string) error {
	if o.config.Audit == nil || o.config.Audit.Disabled {
		return fmt.Errorf("audit logging is disabled, no history available")
	}

	reader := audit.NewReader(o.config.Audit.LogDirectory)

	if runID == "" {
		return o.listRuns(reader)
	}
	return o.showRun(reader, audit.RunID(runID))
}

func (o *Orchestrator) listRuns(reader *audit.Reader) error {
	runs, err := reader.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}
	if len(runs) == 0 {
		o.out.Info("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		line := fmt.Sprintf("%s  %s  %-12s %d scores, %d parts, %d instruments renamed",
			run.StartTime.Format("2006-01-02 15:04:05"),
			run.RunID,
			run.Status,
			run.Totals.Scores,
			run.Totals.PartsRenamed,
			run.Totals.InstrumentsRenamed)
		if run.Totals.Errors > 0 {
			line += fmt.Sprintf(", %d errors", run.Totals.Errors)
		}
		o.out.Info("%s", line)
	}
	return nil
}

func (o *Orchestrator) showRun(reader *audit.Reader, runID audit.RunID) error {
	events, err := reader.GetRun(runID)
	if err != nil {
		return err
	}

	for _, e := range events {
		switch e.EventType {
		case audit.EventRename:
			o.out.Info("%s  %-8s %-12s %-8s %q -> %q",
				e.Timestamp.Format("15:04:05"), e.EventType, e.EntityKind, e.EntityID,
				e.OriginalName, e.ProposedName)
		case audit.EventSkipUnmatched:
			o.out.Info("%s  %-8s %-12s %-8s %q",
				e.Timestamp.Format("15:04:05"), e.EventType, e.EntityKind, e.EntityID,
				e.OriginalName)
		case audit.EventParseFailure, audit.EventConsistencyFailure, audit.EventError:
			msg := ""
			if e.ErrorDetails != nil {
				msg = e.ErrorDetails.ErrorMessage
			}
			o.out.Info("%s  %-8s %s: %s",
				e.Timestamp.Format("15:04:05"), e.EventType, e.Score, msg)
		default:
			o.out.Info("%s  %-8s", e.Timestamp.Format("15:04:05"), e.EventType)
		}
	}
	return nil
}
