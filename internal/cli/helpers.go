package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/auctionpost/auctionpost/pkg/export"
)

// Confirm prompts the user for confirmation. The prompt goes to stderr so
// structured output on stdout stays parseable. --yes answers for the user.
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}

	fmt.Fprint(stderr, prompt+suffix)

	reader := bufio.NewReader(stdin)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

var (
	successMark = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
	infoMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("ℹ")
	warnMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("⚠")
	errorMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
)

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		if !noColor {
			fmt.Fprintf(stdout, "%s %s\n", successMark, msg)
		} else {
			fmt.Fprintf(stdout, "OK: %s\n", msg)
		}
	}
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	if !quiet {
		msg := fmt.Sprintf(format, args...)
		if !noColor {
			fmt.Fprintf(stdout, "%s %s\n", infoMark, msg)
		} else {
			fmt.Fprintf(stdout, "INFO: %s\n", msg)
		}
	}
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !noColor {
		fmt.Fprintf(stderr, "%s %s\n", warnMark, msg)
	} else {
		fmt.Fprintf(stderr, "WARNING: %s\n", msg)
	}
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !noColor {
		fmt.Fprintf(stderr, "%s %s\n", errorMark, msg)
	} else {
		fmt.Fprintf(stderr, "ERROR: %s\n", msg)
	}
}

// Notifier prints export notifications as they arrive. Loading
// notifications are informational; the terminal cannot replace a line
// in place once other output follows, so keys are ignored.
type Notifier struct{}

func (Notifier) Notify(n export.Notification) {
	switch n.Kind {
	case export.KindSuccess:
		PrintSuccess("%s", n.Message)
	case export.KindError:
		PrintError("%s", n.Message)
	default:
		PrintInfo("%s", n.Message)
	}
}

// Global flags (will be set from cmd package)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}

// SetInput sets where Confirm reads answers from
func SetInput(r io.Reader) {
	stdin = r
}

// NoColor reports whether --no-color is in effect
func NoColor() bool {
	return noColor
}
