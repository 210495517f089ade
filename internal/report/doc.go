// Package report presents the progress of a batch run.
//
// The engine emits exactly one Pending event before invoking gpt for an input
// and exactly one Succeeded or Failed event after. How that is shown is up to
// the Reporter: Terminal draws a status line that is rewritten in place when
// the sink is a terminal and the event allows it, Log writes structured
// records, Multi fans out to several reporters and Nop discards everything.
package report
