// Package discovery handles auto-discovery of alias rules from unmatched
// names in existing scores.
package discovery

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// IsInteractive returns true if the terminal supports interactive input.
// It checks if stdin is a TTY (terminal) by examining the file mode.
// Returns false if stdin is not a terminal (e.g., piped input, redirected from file).
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// PromptResult represents the user's choice when prompted for an alias.
type PromptResult int

const (
	// PromptAccept indicates the user accepted this alias.
	PromptAccept PromptResult = iota
	// PromptReject indicates the user rejected this alias.
	PromptReject
	// PromptAcceptAll indicates the user wants to accept all remaining aliases.
	PromptAcceptAll
	// PromptRejectAll indicates the user wants to reject all remaining aliases.
	PromptRejectAll
	// PromptQuit indicates the user wants to quit without processing remaining aliases.
	PromptQuit
)

// InteractivePrompter handles user prompts for alias selection.
type InteractivePrompter struct {
	reader *bufio.Scanner
	writer io.Writer
}

// NewInteractivePrompter creates a new InteractivePrompter with the given reader and writer.
// Use os.Stdin and os.Stdout for normal operation, or buffers for testing.
func NewInteractivePrompter(reader io.Reader, writer io.Writer) *InteractivePrompter {
	return &InteractivePrompter{
		reader: bufio.NewScanner(reader),
		writer: writer,
	}
}

// PromptForAlias asks the user whether to map an unmatched name to a family.
// It displays the name, its occurrence count and the suggested family, then
// prompts for a choice. Returns the user's choice and, on accept, the family
// to map the name to.
func (p *InteractivePrompter) PromptForAlias(alias ProposedAlias) (PromptResult, string, error) {
	fmt.Fprintf(p.writer, "\nUnmatched name:\n")
	fmt.Fprintf(p.writer, "  Name:        %s\n", alias.Pattern)
	fmt.Fprintf(p.writer, "  Occurrences: %d\n", alias.Occurrences)
	if alias.Suggested != "" {
		fmt.Fprintf(p.writer, "  Suggestion:  %s\n", alias.Suggested)
	}

	fmt.Fprintf(p.writer, "\nAdd an alias for this name? (y)es, (n)o, (a)ccept all suggestions, (r)eject all, (q)uit: ")

	input, err := p.readLine()
	if err == io.EOF {
		return PromptQuit, "", nil
	}
	if err != nil {
		return PromptQuit, "", err
	}

	switch strings.ToLower(input) {
	case "y", "yes":
		family, err := p.promptFamily(alias)
		if err == io.EOF {
			return PromptQuit, "", nil
		}
		if err != nil {
			return PromptQuit, "", err
		}
		if family == "" {
			fmt.Fprintf(p.writer, "No family given, skipping.\n")
			return PromptReject, "", nil
		}
		return PromptAccept, family, nil
	case "n", "no":
		return PromptReject, "", nil
	case "a", "accept all":
		return PromptAcceptAll, alias.Suggested, nil
	case "r", "reject all":
		return PromptRejectAll, "", nil
	case "q", "quit":
		return PromptQuit, "", nil
	default:
		// Invalid input, default to reject for safety
		fmt.Fprintf(p.writer, "Invalid input '%s', treating as reject.\n", input)
		return PromptReject, "", nil
	}
}

// promptFamily asks for the family name the alias should resolve to. An
// empty answer takes the suggestion when one exists.
func (p *InteractivePrompter) promptFamily(alias ProposedAlias) (string, error) {
	if alias.Suggested != "" {
		fmt.Fprintf(p.writer, "Family name [%s]: ", alias.Suggested)
	} else {
		fmt.Fprintf(p.writer, "Family name: ")
	}

	input, err := p.readLine()
	if err != nil {
		return "", err
	}
	if input == "" {
		return alias.Suggested, nil
	}
	return input, nil
}

func (p *InteractivePrompter) readLine() (string, error) {
	if !p.reader.Scan() {
		if err := p.reader.Err(); err != nil {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.reader.Text()), nil
}
