/*------------------------------------------------------------------------------
* trace.go : diagnostic trace sink
*
*          Copyright (C) 2022-2026 by feng xuebin, All rights reserved.
*-----------------------------------------------------------------------------*/
package rtcmmsm

import (
	"fmt"
	"os"
)

// Trace is a process-global diagnostic sink, kept global by design (it is
// peripheral to correctness, unlike the per-call Selector — see
// SPEC_FULL.md §9) and ported from FengXuebin-gnssgo/src/common.go's own
// fp_trace/level_trace/Trace facility.
var (
	fpTrace    *os.File
	levelTrace int
)

// dropObserver, when non-nil, is notified of every signal dropped during
// decode/encode (unknown signal, not-selected band, slot overflow). It is
// wired by the caller via SetDropObserver — e.g. cmd/rtcmfilter wires it to
// Metrics.ObserveSignalDropped — and left nil (a no-op) by default, so the
// trace/metrics facility never affects transcoding correctness.
var dropObserver func(sys Constellation, reason string)

// SetDropObserver installs f as the process-wide signal-drop observer, or
// clears it if f is nil.
func SetDropObserver(f func(sys Constellation, reason string)) {
	dropObserver = f
}

func observeDrop(sys Constellation, reason string) {
	if dropObserver != nil {
		dropObserver(sys, reason)
	}
}

// TraceOpen directs trace output to file ("" or "stdout" selects os.Stdout).
func TraceOpen(file string) {
	if file == "" || file == "stdout" {
		fpTrace = os.Stdout
		return
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		fpTrace = os.Stderr
		return
	}
	fpTrace = f
}

// TraceClose stops trace output.
func TraceClose() {
	if fpTrace != nil && fpTrace != os.Stderr && fpTrace != os.Stdout {
		fpTrace.Close()
	}
	fpTrace = nil
}

// TraceLevel sets the trace verbosity threshold: calls to Trace with a
// higher level are suppressed.
func TraceLevel(level int) {
	levelTrace = level
}

// Trace writes a diagnostic message if level is within the configured
// threshold and a sink is open. Level 1 messages always mirror to stderr,
// even when the configured sink is a file or the threshold would otherwise
// suppress them, per SPEC_FULL.md §6's log-sink contract.
func Trace(level int, format string, v ...interface{}) {
	if level == 1 && (fpTrace != os.Stderr || level > levelTrace) {
		fmt.Fprintf(os.Stderr, "%d ", level)
		fmt.Fprintf(os.Stderr, format, v...)
	}
	if fpTrace == nil || level > levelTrace {
		return
	}
	fmt.Fprintf(fpTrace, "%d ", level)
	fmt.Fprintf(fpTrace, format, v...)
}
