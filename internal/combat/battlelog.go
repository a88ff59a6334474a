package combat

import (
	"fmt"
	"strings"
)

// LogEventType is the closed set of battle-log entry types exposed to
// collaborators. Replay verification compares logs entry by entry, so
// the set never grows silently.
type LogEventType string

const (
	LogDamage      LogEventType = "Damage"
	LogMiss        LogEventType = "Miss"
	LogSuppression LogEventType = "Suppression"
	LogMovement    LogEventType = "Movement"
	LogInfo        LogEventType = "Info"
)

// BattleLogEntry is one line of the deterministic combat record. Two
// executions of the same (snapshot, seed) produce identical entries in
// identical order.
type BattleLogEntry struct {
	Type    LogEventType `json:"type"`
	TimeMs  int64        `json:"timeMs"`
	Message string       `json:"message"`
}

// String formats the entry as a fixed-width log line.
//
//	[T=001200] Damage       Reyes hit Vostok upper torso for 29.0
func (e BattleLogEntry) String() string {
	return fmt.Sprintf("[T=%06d] %-12s %s", e.TimeMs, e.Type, e.Message)
}

// BattleLog collects the structured combat record for one session.
// Unlike operational logging it is domain data: entry count and
// ordering are part of the engine's correctness contract.
type BattleLog struct {
	entries []BattleLogEntry
}

// NewBattleLog creates an empty log.
func NewBattleLog() *BattleLog {
	return &BattleLog{}
}

// Add records an entry.
func (bl *BattleLog) Add(t LogEventType, timeMs int64, format string, args ...any) {
	bl.entries = append(bl.entries, BattleLogEntry{
		Type:    t,
		TimeMs:  timeMs,
		Message: fmt.Sprintf(format, args...),
	})
}

// Entries returns all recorded entries.
func (bl *BattleLog) Entries() []BattleLogEntry {
	return bl.entries
}

// Len returns the number of entries.
func (bl *BattleLog) Len() int {
	return len(bl.entries)
}

// CountType returns how many entries have the given type.
func (bl *BattleLog) CountType(t LogEventType) int {
	n := 0
	for _, e := range bl.entries {
		if e.Type == t {
			n++
		}
	}
	return n
}

// HasEntry reports whether any entry of the given type contains the
// substring.
func (bl *BattleLog) HasEntry(t LogEventType, substr string) bool {
	for _, e := range bl.entries {
		if e.Type != t {
			continue
		}
		if substr == "" || strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// Format returns the full log as a single string for reports.
func (bl *BattleLog) Format() string {
	var sb strings.Builder
	for _, e := range bl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
