// Package bench runs the load and statistics pipeline once per engine under
// the Go CPU profiler and summarizes each recorded profile.
package bench

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/google/pprof/profile"
	"github.com/google/uuid"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/KaramelBytes/wxstats-cli/internal/analysis"
	"github.com/KaramelBytes/wxstats-cli/internal/engine"
	"github.com/KaramelBytes/wxstats-cli/internal/utils"
)

var log = logging.MustGetLogger("bench")

// Options controls a benchmark run.
type Options struct {
	// Columns summarized by the measured pipeline.
	Columns []string
	// Iterations of load and summarize per engine.
	Iterations int
	// TopFunctions is the number of hottest functions listed per profile.
	TopFunctions int
	// ProfileDir, when set, receives the raw <engine>.pprof files.
	ProfileDir string
}

// DefaultOptions measures one pass over the weather columns.
func DefaultOptions() Options {
	return Options{Columns: analysis.DefaultColumns, Iterations: 1, TopFunctions: 10}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if len(o.Columns) == 0 {
		o.Columns = d.Columns
	}
	if o.Iterations <= 0 {
		o.Iterations = d.Iterations
	}
	if o.TopFunctions <= 0 {
		o.TopFunctions = d.TopFunctions
	}
	return o
}

// Run measures each engine in order. A failing engine does not stop the
// others; its error is combined into the returned error and it has no profile.
func Run(ctx context.Context, path string, engines []engine.Engine, opt Options) ([]*Profile, error) {
	var (
		profiles []*Profile
		errs     error
	)
	for _, e := range engines {
		if err := ctx.Err(); err != nil {
			return profiles, multierr.Append(errs, err)
		}
		p, err := Measure(ctx, path, e, opt)
		if err != nil {
			log.Warningf("engine %s failed: %v", e.Name(), err)
			errs = multierr.Append(errs, errors.Wrapf(err, "benchmark %s", e.Name()))
			continue
		}
		log.Noticef("engine %s: %d iteration(s) in %v, %d samples", p.Engine, p.Iterations, p.Duration, p.Samples)
		profiles = append(profiles, p)
	}
	return profiles, errs
}

// Measure profiles the pipeline for a single engine.
func Measure(ctx context.Context, path string, e engine.Engine, opt Options) (*Profile, error) {
	opt = opt.withDefaults()

	var buf bytes.Buffer
	if err := pprof.StartCPUProfile(&buf); err != nil {
		return nil, &engine.Error{Kind: engine.ErrProfiling, Op: "start cpu profile", Err: err}
	}
	stopped := false
	stop := func() {
		if !stopped {
			pprof.StopCPUProfile()
			stopped = true
		}
	}
	defer stop()

	recorded := time.Now()
	var (
		stats *analysis.Stats
		err   error
	)
	for i := 0; i < opt.Iterations; i++ {
		if stats, err = pipeline(ctx, path, e, opt.Columns); err != nil {
			return nil, err
		}
	}
	elapsed := time.Since(recorded)
	stop()

	raw := buf.Bytes()
	prof, err := profile.ParseData(raw)
	if err != nil {
		return nil, &engine.Error{Kind: engine.ErrProfiling, Op: "parse cpu profile", Err: err}
	}
	if opt.ProfileDir != "" {
		out := filepath.Join(opt.ProfileDir, e.Name()+".pprof")
		if err := utils.SafeWriteFile(out, raw); err != nil {
			return nil, &engine.Error{Kind: engine.ErrFileWrite, Op: "save cpu profile", Path: out, Err: err}
		}
	}

	p := summarize(prof, opt.TopFunctions)
	p.Engine = e.Name()
	p.RunID = uuid.NewString()
	p.Recorded = recorded
	p.Duration = elapsed
	p.Iterations = opt.Iterations
	p.Rows = stats.Rows
	p.Stats = stats
	return p, nil
}

func pipeline(ctx context.Context, path string, e engine.Engine, columns []string) (*analysis.Stats, error) {
	t, err := e.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return analysis.Calculate(ctx, t, columns)
}
