package ui

import (
	"fmt"
	"os"
)

// Success prints a green checkmarked status line.
func Success(format string, args ...any) {
	fmt.Println(SuccessStyle.Render(SuccessMarker + " " + fmt.Sprintf(format, args...)))
}

// Warning prints an orange warning line to stderr.
func Warning(format string, args ...any) {
	fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: "+fmt.Sprintf(format, args...)))
}

// Error prints a red error line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render(FailureMarker+" "+fmt.Sprintf(format, args...)))
}

// Info prints a plain status line.
func Info(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

// Muted prints a secondary detail line.
func Muted(format string, args ...any) {
	fmt.Println(MutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Header prints a section header with a blank line above it.
func Header(text string) {
	fmt.Println()
	fmt.Println(HeaderStyle.Render(text))
}

// Item prints an indented bullet line.
func Item(format string, args ...any) {
	fmt.Println("  " + BulletMarker + " " + fmt.Sprintf(format, args...))
}

// KeyValue prints an aligned key/value detail line.
func KeyValue(key, value string) {
	fmt.Println("  " + KeyStyle.Render(key) + value)
}
