// Package report writes CLI output in several formats:
//   - SimpleWriter: aligned text for the terminal
//   - JSONWriter: JSON for scripts
//   - MarkdownWriter: Markdown tables, with a mermaid pie chart of
//     population share for multi-country output
//
// Every writer implements Writer, so the CLI picks one by flag and writes
// countries, country details or navigation history through the same calls.
package report
