package main

import (
	"fmt"
	"strings"
)

// DebugOverlay collects status lines, printed to the console once a second
type DebugOverlay struct {
	lines []string
}

func (do *DebugOverlay) AddLine(format string, args ...any) {
	do.lines = append(do.lines, fmt.Sprintf(format, args...))
}

func (do *DebugOverlay) Clear() {
	do.lines = do.lines[:0]
}

func (do *DebugOverlay) GetText() string {
	var b strings.Builder
	for _, line := range do.lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
