package vm

import (
	"io"
	"log"
)

// Logger is the package-level diagnostic logger, used by the interactive
// step debugger and the CLI to trace instruction dispatch. It writes
// nowhere by default (io.Discard); callers that want tracing call
// SetLogOutput, mirroring the teacher's pattern of an optional, injectable
// debug sink (there it was a *strings.Builder; here it's any io.Writer).
var Logger = log.New(io.Discard, "", 0)

// SetLogOutput redirects the package logger's output, e.g. to os.Stderr
// from a CLI's --trace flag.
func SetLogOutput(w io.Writer) {
	Logger.SetOutput(w)
}
