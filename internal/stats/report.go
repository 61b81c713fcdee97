package stats

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jaymody/lpm/internal/model"
	"github.com/jaymody/lpm/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Sessions  []model.SessionAggregate
	Languages []model.LanguageAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	languages, err := st.AggregateByLanguage(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{Sessions: sessions, Languages: languages}, nil
}

// RenderSummary prints lifetime totals for the given sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions recorded.")
		return err
	}
	var lines, correct, incorrect int
	var durationMs int64
	bestLPM := 0.0
	for _, s := range sessions {
		lines += s.Lines
		correct += s.Correct
		incorrect += s.Incorrect
		durationMs += s.DurationMs
		if lpm, _, _, _ := SessionMetrics(s.Lines, s.Correct, s.Incorrect, s.DurationMs); lpm > bestLPM {
			bestLPM = lpm
		}
	}
	lpm, wpm, cpm, acc := SessionMetrics(lines, correct, incorrect, durationMs)

	if _, err := fmt.Fprintln(w, "Lifetime"); err != nil {
		return err
	}
	rows := [][]string{
		{"Sessions", fmt.Sprintf("%d", len(sessions))},
		{"Elapsed", fmt.Sprintf("%.1fs", float64(durationMs)/1000)},
		{"Avg LPM", fmt.Sprintf("%.2f", lpm)},
		{"Best LPM", fmt.Sprintf("%.2f", bestLPM)},
		{"Avg WPM", fmt.Sprintf("%.2f", wpm)},
		{"Avg CPM", fmt.Sprintf("%.2f", cpm)},
		{"Avg Accuracy", fmt.Sprintf("%.2f%%", acc*100)},
	}
	for _, line := range formatTable(nil, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRecent prints the most recent n sessions, newest last.
func RenderRecent(w io.Writer, sessions []model.SessionAggregate, n int) error {
	if len(sessions) == 0 {
		return nil
	}
	if n > 0 && len(sessions) > n {
		sessions = sessions[len(sessions)-n:]
	}
	if _, err := fmt.Fprintf(w, "Last %d sessions\n", len(sessions)); err != nil {
		return err
	}
	headers := []string{"Finished", "Language", "LPM", "WPM", "Accuracy"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		lpm, wpm, _, acc := SessionMetrics(s.Lines, s.Correct, s.Incorrect, s.DurationMs)
		rows = append(rows, []string{
			s.EndedAt.Format(time.DateTime),
			s.Language,
			fmt.Sprintf("%.2f", lpm),
			fmt.Sprintf("%.2f", wpm),
			fmt.Sprintf("%.2f%%", acc*100),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderLanguageTable prints per-language totals.
func RenderLanguageTable(w io.Writer, aggs []model.LanguageAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Per-Language"); err != nil {
		return err
	}
	headers := []string{"Language", "Sessions", "Lines", "Avg LPM", "Avg WPM", "Avg Accuracy"}
	rows := make([][]string, 0, len(aggs))
	for _, agg := range aggs {
		lpm, wpm, _, acc := SessionMetrics(agg.Lines, agg.Correct, agg.Incorrect, agg.DurationMs)
		rows = append(rows, []string{
			agg.Language,
			fmt.Sprintf("%d", agg.Sessions),
			fmt.Sprintf("%d", agg.Lines),
			fmt.Sprintf("%.2f", lpm),
			fmt.Sprintf("%.2f", wpm),
			fmt.Sprintf("%.2f%%", acc*100),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderReport prints the full plain-text report sized to totalWidth.
func RenderReport(w io.Writer, report Report, window, totalWidth int) error {
	if err := RenderSummary(w, report.Sessions); err != nil {
		return err
	}
	if err := RenderRecent(w, report.Sessions, 5); err != nil {
		return err
	}
	if err := RenderLanguageTable(w, report.Languages); err != nil {
		return err
	}
	return RenderCurves(w, report.Sessions, window, totalWidth)
}
