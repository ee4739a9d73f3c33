// Package discovery handles auto-discovery of alias rules from unmatched
// names in existing scores.
package discovery

import "regexp"

// leadingNumberPattern matches a track-number prefix such as "03 - " or
// "12. " that some exporters prepend to part names.
var leadingNumberPattern = regexp.MustCompile(`^\d+\s*[-.]\s*(.+)$`)

// parenPattern matches parenthesized annotations like "(div.)" or "(a2)".
var parenPattern = regexp.MustCompile(`\s*\([^)]*\)`)

// trailingNumberPattern matches a trailing desk or chair number, which is
// stripped so "Flugelhorn 2" suggests the family "Flugelhorn".
var trailingNumberPattern = regexp.MustCompile(`^(.+?)\s+\d+$`)
