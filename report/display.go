package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexandercampbell/rust-cc/common"
	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fmt.Print("\n")
	ErrorStyleBG.Print(" internal compiler error ")
	ErrorColorFG.Println(" " + message)
	fmt.Print("This error was not supposed to happen: please open an issue.\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fmt.Print("\n")
	ErrorStyleBG.Print(" fatal error ")
	ErrorColorFG.Println(" " + message)
	fmt.Println()
}

// displayInfo displays a tagged informational message.
func displayInfo(tag, message string) {
	InfoStyleBG.Print(" " + tag + " ")
	InfoColorFG.Println(" " + message)
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	fmt.Print(reprPath, ": ")
	ErrorColorFG.Print("error: ")
	fmt.Printf("%s\n\n", err)
}

// displayCompileMessage displays a compilation error or warning.  The label is
// the kind of message displayed in the banner: eg. `parse error`.
func displayCompileMessage(label string, isError bool, absPath, reprPath string, span *TextSpan, message string) {
	displayBanner(label, isError, reprPath)

	if span == nil {
		fmt.Printf("%s: %s\n\n", reprPath, message)
		return
	}

	fmt.Printf("%s:%d:%d: %s\n\n", reprPath, span.StartLine+1, span.StartCol+1, message)

	if absPath != "" {
		displaySourceText(absPath, span)
	}
}

// displayBanner displays the banner on top of all compilation messages.
func displayBanner(label string, isError bool, reprPath string) {
	fmt.Print("\n-- ")

	tag := " " + label + " "
	if isError {
		ErrorStyleBG.Print(tag)
	} else {
		WarnStyleBG.Print(tag)
	}

	fmt.Print(" ")

	fileName := filepath.Base(reprPath)
	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - len(tag) - 1
	if dashCount < 3 {
		dashCount = 3
	}

	fmt.Print(strings.Repeat("-", dashCount) + " ")
	InfoColorFG.Println(fileName)
}

// -----------------------------------------------------------------------------

// displaySourceText displays a segment of source text defined by a text span.
func displaySourceText(absPath string, span *TextSpan) {
	file, err := os.Open(absPath)
	if err != nil {
		// The source text is only decoration: the message has already been
		// printed.
		return
	}
	defer file.Close()

	// Collect all the source lines containing the given source text.  The
	// span's columns index the raw lines: tabs are only expanded for display.
	var rawLines, lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			rawLines = append(rawLines, sc.Text())
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", tabString))
		}
	}

	if sc.Err() != nil || len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := len(line) - len(strings.TrimLeft(line, " "))
		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		InfoColorFG.Print(fmt.Sprintf(lineNumFmtStr, i+span.StartLine+1))
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// Underlining starts at the start column on the first line and at the
		// trimmed indent on all subsequent lines.
		caretStart := 0
		if i == 0 {
			caretStart = displayCol(rawLines[i], span.StartCol) - minIndent
		}

		// Underlining runs to the end column on the last line and to the end
		// of the line on all others.
		caretEnd := len(line) - minIndent
		if i == len(lines)-1 {
			caretEnd = displayCol(rawLines[i], span.EndCol) - minIndent
		}

		caretStart = clampZero(caretStart)
		fmt.Print(strings.Repeat(" ", caretStart))
		ErrorColorFG.Println(strings.Repeat("^", clampZero(caretEnd-caretStart)))
	}

	fmt.Println()
}

// tabString is the text a tab is expanded to when source is displayed.
const tabString = "    "

// displayCol converts a column of a raw source line into the column at which
// it is displayed once the line's tabs are expanded.
func displayCol(line string, col int) int {
	runes := []rune(line)
	if col > len(runes) {
		return col + strings.Count(line, "\t")*(len(tabString)-1)
	}

	return col + strings.Count(string(runes[:col]), "\t")*(len(tabString)-1)
}

func clampZero(n int) int {
	if n < 0 {
		return 0
	}

	return n
}

// -----------------------------------------------------------------------------

// displayCompileHeader displays the compiler information before compilation.
func displayCompileHeader(target string) {
	fmt.Print("subc ")
	InfoColorFG.Print("v" + common.SubcVersion)
	fmt.Print(" -- target: ")
	InfoColorFG.Println(target)
}

const maxPhaseLength = len("Generating")

// displayEndPhase displays the end of a compilation phase.
func displayEndPhase(phase string, success bool, elapsed time.Duration) {
	phaseText := phase + strings.Repeat(" ", clampZero(maxPhaseLength-len(phase))+2)

	if success {
		SuccessStyleBG.Print(" Done ")
		fmt.Printf(" %s(%.3fs)\n", phaseText, elapsed.Seconds())
	} else {
		ErrorStyleBG.Print(" Fail ")
		fmt.Printf(" %s\n", phaseText)
	}
}

// displayCompilationFinished displays a compilation finished message.
func displayCompilationFinished(success bool, outputPath string, errorCount, warningCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Print("All done! ")
	} else {
		ErrorColorFG.Print("Oh no! ")
	}

	fmt.Print("(")

	switch errorCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Print(" errors, ")
	case 1:
		ErrorColorFG.Print(1)
		fmt.Print(" error, ")
	default:
		ErrorColorFG.Print(errorCount)
		fmt.Print(" errors, ")
	}

	switch warningCount {
	case 0:
		SuccessColorFG.Print(0)
		fmt.Println(" warnings)")
	case 1:
		WarnColorFG.Print(1)
		fmt.Println(" warning)")
	default:
		WarnColorFG.Print(warningCount)
		fmt.Println(" warnings)")
	}

	if success && outputPath != "" {
		fmt.Print("output written to ")
		InfoColorFG.Println(outputPath)
	}
}
