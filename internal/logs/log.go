// Package logs provides the per-subsystem slog.Logger handles used across
// peerconn and mixsession, in the dcrd/exccd convention: one backendLog
// writing to stdout and/or a rotated log file, with independent level
// control per subsystem tag.
package logs

import (
	"os"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

var backendLog = slog.NewBackend(logWriter{})

// logRotator, once initialized by InitLogRotator, also receives everything
// written to backendLog.
var logRotator *rotator.Rotator

// logWriter sends logged output to stdout and, if one has been initialized,
// to the active log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// InitLogRotator initializes a rotating log file at logFile. It must be
// called before the first log line is emitted if file logging is desired.
func InitLogRotator(logFile string, maxRolls int) error {
	r, err := rotator.New(logFile, 10*1024, false, maxRolls)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// Subsystem tags used across the wire codec, peer connection, mixing
// session, and probe CLI packages.
const (
	SubsystemPeer  = "PEER"
	SubsystemMix   = "MIX"
	SubsystemWire  = "WIRE"
	SubsystemProbe = "PRBE"
)

var subsystems = map[string]slog.Logger{
	SubsystemPeer:  backendLog.Logger(SubsystemPeer),
	SubsystemMix:   backendLog.Logger(SubsystemMix),
	SubsystemWire:  backendLog.Logger(SubsystemWire),
	SubsystemProbe: backendLog.Logger(SubsystemProbe),
}

// Logger returns the slog.Logger for the named subsystem tag.
func Logger(subsystem string) slog.Logger {
	if l, ok := subsystems[subsystem]; ok {
		return l
	}
	l := backendLog.Logger(subsystem)
	subsystems[subsystem] = l
	return l
}

// SetLevel sets the logging level for a subsystem by name (TRCE, DBUG,
// INFO, WARN, ERRO, CRIT, OFF), matching slog.LevelFromString.
func SetLevel(subsystem, levelName string) {
	level, ok := slog.LevelFromString(levelName)
	if !ok {
		return
	}
	Logger(subsystem).SetLevel(level)
}
