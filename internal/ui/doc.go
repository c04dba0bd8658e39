// Package ui provides styled terminal output for kilm commands.
//
// Commands emit short status lines (success, warning, error, plain info)
// and occasional section headers; this package centralizes the lipgloss
// styles and markers so output stays consistent across commands. Styling
// degrades gracefully: lipgloss detects non-TTY output and drops colors,
// so piped output stays plain.
package ui
