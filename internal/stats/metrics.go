// Package stats contains statistics calculations and reporting.
package stats

// SessionMetrics computes LPM, WPM, CPM, and accuracy for a session. A word
// is the conventional five characters; LPM counts completed lines.
func SessionMetrics(lines, correct, incorrect int, durationMs int64) (lpm, wpm, cpm, accuracy float64) {
	if durationMs <= 0 {
		return 0, 0, 0, 0
	}
	minutes := float64(durationMs) / 60000.0
	lpm = float64(lines) / minutes
	wpm = (float64(correct) / 5.0) / minutes
	cpm = float64(correct) / minutes
	den := float64(correct + incorrect)
	if den > 0 {
		accuracy = float64(correct) / den
	}
	return lpm, wpm, cpm, accuracy
}
