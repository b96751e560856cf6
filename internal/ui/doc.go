// Package ui provides terminal UI components for netlab's CLI output.
//
// The package includes the action spinner, styled text output via Lip Gloss,
// the interactive host picker, and the password prompt.
//
// # Components Overview
//
//	Spinner        - Animated status indicator for long-running actions
//	HostPicker     - Interactive management-host selection (Bubble Tea list)
//	PromptPassword - Terminal password prompt with no echo
//
// # Color Scheme
//
//	ColorSuccess   (green)  - Successful actions
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings and skipped items
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - In-progress indicators
//
// Use DisableColors() to switch to monochrome output (for --no-color).
//
// # Spinner Usage
//
//	s := ui.NewSpinner("Cloning web01")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail() or s.Skip()
//
// The spinner handles terminal output, clearing lines, and timing display.
package ui
