package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateRunID creates a unique, time-ordered run ID.
// Format: run-<timestamp>-<hash>
// Example: run-20251021T143052Z-a3f9c2
func GenerateRunID(timestamp time.Time, targetDir string) string {
	ts := timestamp.UTC().Format("20060102T150405Z")

	// Short hash from the target dir and nanoseconds for uniqueness
	input := fmt.Sprintf("%s|%d", targetDir, timestamp.UnixNano())
	hash := sha256.Sum256([]byte(input))
	shortHash := hex.EncodeToString(hash[:3])

	return fmt.Sprintf("run-%s-%s", ts, shortHash)
}

// StripModeString renders a strip setting for the runs table: "auto" for
// detection, the decimal level otherwise.
func StripModeString(strip int) string {
	if strip < 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", strip)
}
