package main

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/momentics/hioload-mem/control"
	"github.com/momentics/hioload-mem/pool"
	"github.com/momentics/hioload-mem/record"
	"github.com/momentics/hioload-mem/sequence"
	"github.com/spf13/pflag"
)

func simulateFlags(fs *pflag.FlagSet) func(env *cmdEnv) error {
	def := control.DefaultLimits()
	var (
		mode        = fs.StringP("mode", "m", "accumulate", "sequence mode (accumulate, replace)")
		records     = fs.IntP("records", "n", 1000, "number of data points to generate")
		batch       = fs.IntP("batch", "b", 100, "data points per commit")
		initialSize = fs.Int("initial-size", def.InitialSize, "preallocated arena slots (accumulate)")
		freeListCap = fs.Int("free-list-cap", def.FreeListCap, "free ranges retained by the scratch arena")
		maxLen      = fs.Int("max-len", def.MaxLen, "arena length cap, 0 for unbounded (accumulate)")
		retain      = fs.Int("retain", def.Retain, "containers retained by the recycling pool (replace)")
		output      = fs.StringP("output", "o", "-", "output file, - for stdout")
		compress    = fs.StringP("compress", "z", "none", "output compression (none, gzip, zstd)")
	)
	return func(env *cmdEnv) error {
		if len(env.args) != 0 {
			return fmt.Errorf("%w: unexpected arguments", errUsage)
		}
		if *records < 0 {
			return fmt.Errorf("%w: --records must not be negative", errUsage)
		}
		if *batch <= 0 {
			return fmt.Errorf("%w: --batch must be positive", errUsage)
		}
		switch *compress {
		case "none", "gzip", "zstd":
		default:
			return fmt.Errorf("%w: unknown compression %q", errUsage, *compress)
		}

		cfg := control.NewConfigStore()
		cfg.SetLimits(control.Limits{
			InitialSize: *initialSize,
			FreeListCap: *freeListCap,
			MaxLen:      *maxLen,
			Retain:      *retain,
		})
		sim := &simulation{
			cfg:     cfg,
			metrics: control.NewMetricsRegistry(),
			probes:  control.NewDebugProbes(),
		}
		control.RegisterPlatformProbes(sim.probes)

		seq, err := sim.sequence(*mode, *records)
		if err != nil {
			return err
		}
		env.log.Info("simulating", "mode", *mode, "records", *records, "batch", *batch, "limits", cfg.Limits())

		if err := sim.feed(env, seq, *records, *batch); err != nil {
			return err
		}

		n, err := writeOutput(*output, *compress, env.stdout, seq.Current())
		if err != nil {
			return err
		}
		env.log.Info("wrote data points", "count", n, "output", *output, "compress", *compress, "step", seq.Step())
		env.log.Debug("metrics", "snapshot", sim.metrics.GetSnapshot())
		env.log.Debug("probes", "state", sim.probes.DumpState())
		return nil
	}
}

type simulation struct {
	cfg     *control.ConfigStore
	metrics *control.MetricsRegistry
	probes  *control.DebugProbes
}

// sequence builds the sequence for mode from the configured limits.
func (s *simulation) sequence(mode string, records int) (sequence.Sequence[record.DataPoint], error) {
	l := s.cfg.Limits()
	switch mode {
	case "accumulate":
		var opts []pool.ArenaOption
		if l.MaxLen > 0 {
			if records > l.MaxLen {
				return nil, fmt.Errorf("%d records exceed --max-len %d", records, l.MaxLen)
			}
			opts = append(opts, pool.WithMaxLen(l.MaxLen))
		}
		seq := sequence.NewAccumulating[record.DataPoint](l.InitialSize, opts...)
		s.probes.RegisterStats("sequence", seq)
		return seq, nil
	case "replace":
		seq := sequence.NewReplacing[record.DataPoint](l.Retain)
		s.cfg.BindRecycler(seq.Buffer().Pool())
		s.probes.RegisterStats("sequence", seq)
		return seq, nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", errUsage, mode)
	}
}

// feed adds records generated points to seq, committing every batch. Each
// batch is staged in a scratch arena and released once added.
func (s *simulation) feed(env *cmdEnv, seq sequence.Sequence[record.DataPoint], records, batch int) error {
	l := s.cfg.Limits()
	scratch := pool.NewArenaPool[record.DataPoint](batch, l.FreeListCap)
	s.probes.RegisterStats("scratch", scratch)

	for done := 0; done < records; {
		n := min(batch, records-done)
		r, err := scratch.TryAcquire(n)
		if err != nil {
			return fmt.Errorf("stage batch: %w", err)
		}
		for i := r.Begin; i < r.End; i++ {
			scratch.Set(i, record.Generate())
		}
		seq.AddAll(scratch.Slice(r.Begin, r.End)...)
		scratch.ReleaseRange(r)
		seq.Commit()
		done += n

		s.metrics.Observe("sequence", seq)
		s.metrics.Observe("scratch", scratch)
		env.log.Debug("committed batch", "step", seq.Step(), "size", n, "len", seq.Len())
	}
	return nil
}

func writeOutput(path, compress string, stdout io.Writer, points []record.DataPoint) (int, error) {
	var (
		w io.Writer = stdout
		f *os.File
	)
	if path != "-" {
		var err error
		if f, err = os.Create(path); err != nil {
			return 0, fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	var zc io.WriteCloser
	switch compress {
	case "gzip":
		zc = gzip.NewWriter(w)
	case "zstd":
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return 0, fmt.Errorf("zstd: %w", err)
		}
		zc = zw
	}

	enc := record.NewEncoder(w)
	if zc != nil {
		enc = record.NewEncoder(zc)
		defer zc.Close()
	}
	if err := enc.EncodeAll(points); err != nil {
		return enc.Count(), fmt.Errorf("write output: %w", err)
	}
	if zc != nil {
		if err := zc.Close(); err != nil {
			return enc.Count(), fmt.Errorf("flush %s: %w", compress, err)
		}
	}
	if f != nil {
		if err := f.Close(); err != nil {
			return enc.Count(), fmt.Errorf("close output: %w", err)
		}
	}
	return enc.Count(), nil
}
