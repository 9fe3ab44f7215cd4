package telemetry

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

const maxLineSize = 16 * 1024 * 1024

// ReadRecording reads a JSON Lines recording of telemetry messages and calls fn with the cumulative
// snapshot after every message. Blank lines are skipped. Returning an error from fn stops reading.
func ReadRecording(r io.Reader, fn func(Snapshot) error) error {
	return ReadRecordingFrom(r, Snapshot{}, fn)
}

// ReadRecordingFrom is ReadRecording starting from an already known snapshot, e.g. one seeded from a replay.
func ReadRecordingFrom(r io.Reader, initial Snapshot, fn func(Snapshot) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	snapshot := initial
	line := 0

	for scanner.Scan() {
		line++

		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		next, err := DecodeInto(data, snapshot)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		snapshot = next

		if err = fn(snapshot); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read recording: %w", err)
	}

	return nil
}
