package report

import (
	"errors"
	"fmt"
	"time"
)

// NOTE: All report functions will only display if the appropriate log level is
// set.  Most report functions will simply fail silently if below their
// appropriate log level.

// ReportICE reports an internal compiler error.  These are errors that
// specifically result for a bug or unexpected condition occurring with the
// compiler: they are not intended to ever happen.  These errors are always
// displayed regardless of log level.
func ReportICE(message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++
	displayICE(fmt.Sprintf(message, args...))

	exit(-1)
}

// CatchICE reports any panic which escapes the compiler as an internal
// compiler error.
// NB: This function must ALWAYS be deferred.
func CatchICE() {
	if x := recover(); x != nil {
		ReportICE("%v", x)
	}
}

// ReportFatal reports a fatal error.  These are errors that should cause all
// compilation to stop immediately: missing backend tools, unreadable source
// files, invalid project files, etc.
func ReportFatal(message string, args ...interface{}) {
	if rep.logLevel > LogLevelSilent {
		rep.m.Lock()
		defer rep.m.Unlock()

		rep.endPhase(false)
		displayFatal(fmt.Sprintf(message, args...))
	}

	exit(1)
}

// ReportCompileError reports a compilation error: ie. erroneous input code. The
// absPath is the absolute path to the erroneous source file and is used to
// display the offending source text.  The reprPath is the path displayed to
// the user.
func ReportCompileError(absPath, reprPath string, cerr *CompileError) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		rep.endPhase(false)
		displayCompileMessage(cerr.Kind.String(), true, absPath, reprPath, cerr.Span, cerr.Message)
	}
}

// ReportCompileWarning reports a compilation warning.
func ReportCompileWarning(absPath, reprPath string, span *TextSpan, message string, args ...interface{}) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.warningCount++

	if rep.logLevel >= LogLevelWarn {
		displayCompileMessage("warning", false, absPath, reprPath, span, fmt.Sprintf(message, args...))
	}
}

// ReportStdError reports a non-fatal, standard Go error.
func ReportStdError(reprPath string, err error) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.errorCount++

	if rep.logLevel > LogLevelSilent {
		rep.endPhase(false)
		displayStdError(reprPath, err)
	}
}

// ReportError reports an error returned from the compilation pipeline as a
// compile error if it is one and as a standard error otherwise.
func ReportError(absPath, reprPath string, err error) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		ReportCompileError(absPath, reprPath, cerr)
	} else {
		ReportStdError(reprPath, err)
	}
}

// ReportInfo displays an informational message regardless of log level.
func ReportInfo(tag, message string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	displayInfo(tag, message)
}

// -----------------------------------------------------------------------------
// Below are all the "aesthetic" reporting functions that will only run if the
// log level is to verbose.  These provide additional information about the
// compilation process to the user so as to make the compiler more friendly.

// ReportCompileHeader reports the pre-compilation header: the compiler version
// and the target being compiled for.
func ReportCompileHeader(target string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayCompileHeader(target)
	}
}

// ReportBeginPhase reports the start of a compilation phase.
func ReportBeginPhase(phase string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.currentPhase = phase
	rep.phaseStartTime = time.Now()
}

// ReportEndPhase reports the successful end of the current compilation phase.
func ReportEndPhase() {
	rep.m.Lock()
	defer rep.m.Unlock()

	rep.endPhase(true)
}

// endPhase closes the current phase if there is one.  The reporter must already
// be locked.
func (r *Reporter) endPhase(success bool) {
	if r.currentPhase == "" {
		return
	}

	if r.logLevel == LogLevelVerbose {
		displayEndPhase(r.currentPhase, success, time.Since(r.phaseStartTime))
	}

	r.currentPhase = ""
}

// ReportCompilationFinished reports the concluding message for compilation.
func ReportCompilationFinished(outputPath string) {
	rep.m.Lock()
	defer rep.m.Unlock()

	if rep.logLevel == LogLevelVerbose {
		displayCompilationFinished(rep.errorCount == 0, outputPath, rep.errorCount, rep.warningCount)
	}
}

// AnyErrors returns whether or not any errors were reported.
func AnyErrors() bool {
	rep.m.Lock()
	defer rep.m.Unlock()

	return rep.errorCount > 0
}
