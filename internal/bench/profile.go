package bench

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/pprof/profile"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/KaramelBytes/wxstats-cli/internal/analysis"
	"github.com/KaramelBytes/wxstats-cli/internal/logger"
)

// Profile is the summary of one engine's measured pipeline run.
type Profile struct {
	Engine     string
	RunID      string
	Recorded   time.Time
	Duration   time.Duration
	Iterations int
	Rows       int
	Samples    int64
	Interval   time.Duration
	CPUTime    time.Duration
	Top        []FuncStat
	Stats      *analysis.Stats
}

// FuncStat is the CPU time attributed to one function.
type FuncStat struct {
	Name string
	Flat time.Duration
	Cum  time.Duration
}

// summarize totals samples and CPU time and ranks functions by flat time.
func summarize(p *profile.Profile, top int) *Profile {
	out := &Profile{Interval: time.Duration(p.Period)}
	if p.PeriodType != nil && p.PeriodType.Unit != "nanoseconds" {
		out.Interval = 0
	}
	countIdx, cpuIdx := -1, -1
	for i, st := range p.SampleType {
		switch {
		case st.Type == "samples":
			countIdx = i
		case st.Type == "cpu" && st.Unit == "nanoseconds":
			cpuIdx = i
		}
	}

	flat := map[string]int64{}
	cum := map[string]int64{}
	for _, s := range p.Sample {
		if countIdx >= 0 {
			out.Samples += s.Value[countIdx]
		}
		if cpuIdx < 0 {
			continue
		}
		v := s.Value[cpuIdx]
		out.CPUTime += time.Duration(v)
		seen := map[string]bool{}
		for li, loc := range s.Location {
			for fi, line := range loc.Line {
				if line.Function == nil {
					continue
				}
				name := line.Function.Name
				if li == 0 && fi == 0 {
					flat[name] += v
				}
				if !seen[name] {
					seen[name] = true
					cum[name] += v
				}
			}
		}
	}

	for name, c := range cum {
		out.Top = append(out.Top, FuncStat{Name: name, Flat: time.Duration(flat[name]), Cum: time.Duration(c)})
	}
	sort.Slice(out.Top, func(i, j int) bool {
		a, b := out.Top[i], out.Top[j]
		if a.Flat != b.Flat {
			return a.Flat > b.Flat
		}
		if a.Cum != b.Cum {
			return a.Cum > b.Cum
		}
		return a.Name < b.Name
	})
	if len(out.Top) > top {
		out.Top = out.Top[:top]
	}
	return out
}

// Text renders the profile as a human-readable report. Every summary line
// starts with its label so that line filters can select them.
func (p *Profile) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Engine: %s\n", p.Engine)
	fmt.Fprintf(&b, "Run: %s\n", p.RunID)
	fmt.Fprintf(&b, "Recorded: %s\n", p.Recorded.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Rows: %d\n", p.Rows)
	fmt.Fprintf(&b, "Iterations: %d\n", p.Iterations)
	fmt.Fprintf(&b, "Duration: %v\n", logger.Round(p.Duration))
	fmt.Fprintf(&b, "Samples: %d\n", p.Samples)
	fmt.Fprintf(&b, "Sampling interval: %v\n", p.Interval)
	fmt.Fprintf(&b, "CPU time: %v", p.CPUTime)
	if p.Duration > 0 {
		fmt.Fprintf(&b, " (%.2f%% of Duration)", 100*float64(p.CPUTime)/float64(p.Duration))
	}
	b.WriteString("\n")

	if len(p.Top) == 0 {
		b.WriteString("No CPU samples recorded.\n")
		return b.String()
	}
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"flat", "flat%", "cum", "cum%", "function"})
	for _, f := range p.Top {
		tw.AppendRow(table.Row{f.Flat, percent(f.Flat, p.CPUTime), f.Cum, percent(f.Cum, p.CPUTime), f.Name})
	}
	b.WriteString("\n")
	b.WriteString(tw.Render())
	b.WriteString("\n")
	return b.String()
}

func percent(part, total time.Duration) string {
	if total <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", 100*float64(part)/float64(total))
}
