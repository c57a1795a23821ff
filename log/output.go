// Copyright Safing ICS Technologies GmbH. Use of this source code is governed by the AGPL license that can be found in the LICENSE file.

package log

import (
	"fmt"
	"os"
	"time"
)

var (
	lastLine        *logLine
	duplicates      uint64
	lastWrittenTime time.Time
)

func writeLine(line *logLine, duplicates uint64) {
	fmt.Fprintln(os.Stdout, formatLine(line, duplicates, true))
}

func startWriter() {
	shutdownWaitGroup.Add(1)
	fmt.Fprintln(os.Stdout, formatLine(&logLine{
		msg:       "===== LOGGING STARTED =====",
		level:     InfoLevel,
		timestamp: time.Now(),
	}, 0, true))
	go writer()
}

func writer() {
	defer shutdownWaitGroup.Done()

	for {
		// wait until logs need to be processed
		select {
		case <-logsWaiting:
			logsWaitingFlag.UnSet()
		case <-forceEmptyingOfBuffer:
		case <-shutdownSignal:
			finalizeWriting()
			return
		}

		// give the system a moment to batch lines, unless the buffer is full
		select {
		case <-time.After(10 * time.Millisecond):
		case <-forceEmptyingOfBuffer:
		case <-shutdownSignal:
			finalizeWriting()
			return
		}

		writeBuffered()
	}
}

// writeBuffered writes all lines in the buffer and collapses consecutive
// duplicates into one line.
func writeBuffered() {
	for {
		select {
		case line := <-logBuffer:
			if lastLine != nil && line.Equal(lastLine) && line.timestamp.Sub(lastWrittenTime) < time.Second {
				duplicates++
				continue
			}
			if duplicates > 0 {
				writeLine(lastLine, duplicates)
				duplicates = 0
			}
			writeLine(line, 0)
			lastLine = line
			lastWrittenTime = line.timestamp
		default:
			if duplicates > 0 {
				writeLine(lastLine, duplicates)
				duplicates = 0
			}
			return
		}
	}
}

func finalizeWriting() {
	writeBuffered()
	writeLine(&logLine{
		msg:       "===== LOGGING STOPPED =====",
		level:     WarningLevel,
		timestamp: time.Now(),
	}, 0)
}

// Equal reports whether both lines carry the same message from the same
// location.
func (ll *logLine) Equal(ol *logLine) bool {
	switch {
	case ll.msg != ol.msg:
		return false
	case ll.file != ol.file:
		return false
	case ll.line != ol.line:
		return false
	case ll.level != ol.level:
		return false
	}
	return true
}
