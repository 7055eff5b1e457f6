package utils

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// RunLogEntry is one line of the JSON run log. The log doubles as the
// pipeline's completion registry: stage skip decisions are driven by file
// presence, but the log makes resumability auditable after the fact.
type RunLogEntry struct {
	Timestamp string `json:"time"`
	Level     string `json:"level"`
	Msg       string `json:"msg"`
	Stage     string `json:"STAGE"`
	Ticket    string `json:"TICKET"`
	Sample    string `json:"SAMPLE"`
	Status    string `json:"STATUS"`
}

// NewRunLogger opens the run log for appending and returns a logger that
// writes JSON lines to it and human-readable lines to stderr.
func NewRunLogger(logPath string) (*slog.Logger, func() error, error) {
	logFile, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slogmulti.Fanout(
		slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}),
	))
	return logger, logFile.Close, nil
}

// ParseRunLog reads the JSON run log and returns its entries. A missing
// log file is an empty history, not an error. Unparseable lines are
// ignored so a partially written trailing line cannot poison a resume.
func ParseRunLog(logPath string) ([]RunLogEntry, error) {
	file, err := os.Open(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var entries []RunLogEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry RunLogEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// StageHasCompleted reports whether the log records a COMPLETED entry for
// the given stage of a ticket/sample pair.
func StageHasCompleted(entries []RunLogEntry, stage string, ticket string, sample string) bool {
	for _, entry := range entries {
		if entry.Level == "INFO" && entry.Stage == stage && entry.Ticket == ticket && entry.Sample == sample && entry.Status == "COMPLETED" {
			return true
		}
	}
	return false
}
