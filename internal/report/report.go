// Package report renders console summaries for ADBackup runs.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/galra/adbackup/internal/backup"
	"github.com/galra/adbackup/internal/bridge"
	"github.com/galra/adbackup/internal/types"
	"github.com/galra/adbackup/internal/verifier"
)

// truncateSize caps printed file lists; media trees easily run to thousands
// of entries.
const truncateSize = 20

// timeRound keeps durations readable in summaries.
const timeRound = 10 * time.Millisecond

// TruncateList returns at most max items, appending a "... (total: N)"
// marker when the list was cut.
func TruncateList(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	out := make([]string, 0, max+1)
	out = append(out, items[:max]...)
	out = append(out, fmt.Sprintf("... (total: %d)", len(items)))
	return out
}

// Renderer writes human-readable summaries to a writer, normally stdout.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Devices prints the bridge tool's device list.
func (r *Renderer) Devices(devices []bridge.Device) {
	if len(devices) == 0 {
		fmt.Fprintln(r.w, "No devices found.")
		return
	}

	width := runewidth.StringWidth("SERIAL")
	for _, d := range devices {
		if w := runewidth.StringWidth(d.Serial); w > width {
			width = w
		}
	}

	fmt.Fprintf(r.w, "%s  STATE\n", runewidth.FillRight("SERIAL", width))
	for _, d := range devices {
		state := d.State
		if d.State == "device" {
			state = color.Green.Sprint(state)
		} else {
			state = color.Yellow.Sprint(state)
		}
		fmt.Fprintf(r.w, "%s  %s\n", runewidth.FillRight(d.Serial, width), state)
	}
	fmt.Fprintf(r.w, "\nTotal: %d device(s)\n", len(devices))
}

// Plan prints the dry-run execution plan.
func (r *Renderer) Plan(est *backup.EstimateResult) {
	fmt.Fprintf(r.w, "\n=== Backup Plan ===\n\n")
	fmt.Fprintf(r.w, "Source:      %s\n", est.Source)
	fmt.Fprintf(r.w, "Destination: %s\n\n", est.Destination)

	fmt.Fprintf(r.w, "Existing files: %d\n", est.ExistingFiles)
	fmt.Fprintf(r.w, "Missing dirs:   %d\n", len(est.MissingDirs))
	fmt.Fprintf(r.w, "Missing files:  %d (%.2f MB)\n", len(est.MissingFiles), mb(est.TotalBytes))

	if len(est.MissingFiles) > 0 {
		fmt.Fprintf(r.w, "\nFiles to pull:\n")
		width := 0
		shown := TruncateList(est.MissingFiles, truncateSize)
		for _, f := range shown {
			if w := runewidth.StringWidth(f); w > width {
				width = w
			}
		}
		for _, f := range shown {
			if size, ok := est.FileSizes.Get(f); ok {
				fmt.Fprintf(r.w, "  %s  %10d\n", runewidth.FillRight(f, width), size)
			} else {
				fmt.Fprintf(r.w, "  %s\n", f)
			}
		}
	}

	fmt.Fprintf(r.w, "\nVerification method: %s\n", est.Config.Verification.Method)
	fmt.Fprintf(r.w, "Override existing:   %v\n", est.Config.Backup.Override)
	fmt.Fprintln(r.w, "\n=== End of Plan ===")
	fmt.Fprintln(r.w, "\nNo data was copied. Use 'backup' to execute.")
}

// RunResult prints the summary of a backup or verify-only run.
func (r *Renderer) RunResult(res *backup.Result) {
	if res.VerifyOnly {
		fmt.Fprintf(r.w, "\n=== Verify Complete ===\n")
	} else {
		fmt.Fprintf(r.w, "\n=== Backup Complete ===\n")
	}
	fmt.Fprintf(r.w, "Source:      %s\n", res.Source)
	fmt.Fprintf(r.w, "Destination: %s\n", res.Destination)
	fmt.Fprintf(r.w, "Duration:    %s\n\n", res.Duration.Round(timeRound))

	r.list("Missing files", res.MissingFiles)

	if res.VerifyStats != nil {
		r.verifySummary(res.VerifyStats, res.VerifyResults)
		if res.DeletedFaulty > 0 {
			fmt.Fprintf(r.w, "Deleted faulty copies: %d\n", res.DeletedFaulty)
		}
	}

	if !res.VerifyOnly {
		fmt.Fprintf(r.w, "\nPulled successfully %d files (%.2f MB).\n", res.Pulled, mb(res.PulledBytes))
		if len(res.FailedFiles) > 0 {
			fmt.Fprintf(r.w, "%s\n", color.Red.Sprintf("Failed to pull %d files:", len(res.FailedFiles)))
			for _, f := range TruncateList(res.FailedFiles, truncateSize) {
				fmt.Fprintf(r.w, "\t%s\n", f)
			}
		} else {
			fmt.Fprintln(r.w, "Failed to pull 0 files.")
		}
	}

	if res.Success {
		fmt.Fprintf(r.w, "\n%s\n", color.Green.Sprint("Success"))
	} else {
		fmt.Fprintf(r.w, "\n%s\n", color.Red.Sprint("Completed with failures"))
	}
}

// verifySummary prints verification statistics and faulty file details.
func (r *Renderer) verifySummary(stats *verifier.Stats, results *verifier.Results) {
	fmt.Fprintf(r.w, "Verification (%d files checked):\n", stats.FilesChecked)
	fmt.Fprintf(r.w, "  Valid:           %s\n", color.Green.Sprintf("%d", stats.Valid))
	fmt.Fprintf(r.w, "  Size mismatches: %d\n", stats.SizeMismatches)
	fmt.Fprintf(r.w, "  Hash mismatches: %d\n", stats.HashMismatches)
	fmt.Fprintf(r.w, "  Errors:          %d\n", stats.Errors)

	if results == nil || stats.Faulty() == 0 {
		return
	}

	fmt.Fprintf(r.w, "\nFaulty backed files:\n")
	shown := 0
	for el := results.Front(); el != nil; el = el.Next() {
		fr := el.Value
		if fr.Result == types.ResultValid || fr.Result == types.ResultMissing {
			continue
		}
		if shown == truncateSize {
			fmt.Fprintf(r.w, "\t... (total: %d)\n", stats.Faulty())
			break
		}
		fmt.Fprintf(r.w, "\t%s [%s] %s\n", fr.RelPath, resultLabel(fr.Result), fr.Detail)
		shown++
	}
}

// list prints a named, truncated file list, or "None".
func (r *Renderer) list(title string, items []string) {
	fmt.Fprintf(r.w, "%s:\n", title)
	if len(items) == 0 {
		fmt.Fprintln(r.w, "\tNone")
		return
	}
	for _, item := range TruncateList(items, truncateSize) {
		fmt.Fprintf(r.w, "\t%s\n", item)
	}
}

// resultLabel colors a comparison result for display.
func resultLabel(res types.ComparisonResult) string {
	switch res {
	case types.ResultValid:
		return color.Green.Sprint(string(res))
	case types.ResultError:
		return color.Red.Sprint(string(res))
	default:
		return color.Yellow.Sprint(string(res))
	}
}

func mb(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024)
}
