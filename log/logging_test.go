// Copyright Safing ICS Technologies GmbH. Use of this source code is governed by the AGPL license that can be found in the LICENSE file.

package log

import (
	"testing"
	"time"
)

func init() {
	err := Start()
	if err != nil {
		panic("start failed: " + err.Error())
	}
}

func TestLogging(t *testing.T) {
	// skip
	if testing.Short() {
		t.Skip()
	}

	// set levels (static random)
	SetLogLevel(WarningLevel)
	SetLogLevel(InfoLevel)
	SetLogLevel(ErrorLevel)
	SetLogLevel(DebugLevel)
	SetLogLevel(CriticalLevel)
	SetLogLevel(TraceLevel)

	// log
	Trace("Trace")
	Debug("Debug")
	Info("Info")
	Warning("Warning")
	Error("Error")
	Critical("Critical")

	// logf
	Tracef("Trace %s", "f")
	Debugf("Debug %s", "f")
	Infof("Info %s", "f")
	Warningf("Warning %s", "f")
	Errorf("Error %s", "f")
	Criticalf("Critical %s", "f")

	// play with levels
	SetLogLevel(CriticalLevel)
	Warning("Warning")
	SetLogLevel(TraceLevel)

	// log invalid level
	log(0xFF, "msg")

	// duplicates
	for i := 0; i < 5; i++ {
		Info("same line")
	}

	// wait logs to be written
	time.Sleep(20 * time.Millisecond)

	// just for show
	SetPkgLevels(map[string]Severity{"log": DebugLevel})
	Debug("package level")
	UnSetPkgLevels()
}

func TestParseLevel(t *testing.T) {
	for name, level := range map[string]Severity{
		"trace":    TraceLevel,
		"DEBUG":    DebugLevel,
		"info":     InfoLevel,
		"warning":  WarningLevel,
		"Error":    ErrorLevel,
		"critical": CriticalLevel,
		"verbose":  0,
	} {
		if got := ParseLevel(name); got != level {
			t.Errorf("ParseLevel(%q) = %s, expected %s", name, got, level)
		}
	}
}

func TestFormatDuplicates(t *testing.T) {
	line := &logLine{msg: "x", level: InfoLevel, timestamp: time.Now(), file: "portcrypt/log/logging_test", line: 12}
	if formatDuplicates(0) != "" {
		t.Error("no duplicates must not be marked")
	}
	if formatDuplicates(2) != " [3x]" {
		t.Errorf("unexpected duplicate marker %q", formatDuplicates(2))
	}
	if !line.Equal(&logLine{msg: "x", level: InfoLevel, file: "portcrypt/log/logging_test", line: 12}) {
		t.Error("lines should be equal regardless of timestamp")
	}
	if formatLine(line, 0, false) == "" {
		t.Error("empty formatted line")
	}
}
