package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hupe1980/kmedoids"
	"github.com/hupe1980/kmedoids/codec"
	"github.com/hupe1980/kmedoids/config"
	"github.com/hupe1980/kmedoids/internal/cpu"
	"github.com/hupe1980/kmedoids/matrix"
	"github.com/hupe1980/kmedoids/output"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Cluster a distance matrix",
		Example: `  kmedoids run -i dist.txt -k 8 --output-labels labels.txt
  kmedoids run -i s3://bucket/dist.csv.zst --input-sep , --dist-type triu -k 20 \
      --output-medoids s3://bucket/out/medoids.txt --output-summary -`,
		Args: cobra.NoArgs,
		RunE: runRun,
	}

	f := runCmd.Flags()
	f.String("config", "", "YAML configuration file")
	f.StringP("input", "i", "", "Distance matrix location")
	f.String("dist-type", "sym", "Matrix form: sym, triu or tril")
	f.String("input-sep", "", "Value delimiter (default: any whitespace)")
	f.String("output-medoids", "", "Medoids destination, - for stdout")
	f.String("output-labels", "", "Labels destination, - for stdout")
	f.String("output-summary", "", "JSON run summary destination, - for stdout")
	f.Bool("summary-labels", false, "Include labels in the run summary")
	f.IntP("num-clusters", "k", 0, "Number of clusters")
	f.Int("max-iter", 100, "Maximum number of iterations")
	f.IntP("num-threads", "n", 0, "Number of workers (0: all available CPUs)")
	f.Uint64("seed", 0, "Random seed")
	f.String("init", "farthest", "Initialization: farthest or random")
	f.String("empty-cluster", "retain", "Empty cluster policy: retain, reseed or fail")
	f.Bool("skip-validation", false, "Do not check the matrix for symmetry and zero diagonal")
	f.BoolP("verbose", "v", false, "Log progress")
	f.String("log-level", "warn", "Log level: debug, info, warn or error")
	f.String("log-format", "text", "Log format: text or json")
	return runCmd
}

// loadConfig layers flags over environment over file over defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")

	cfg, err := config.LoadConfigOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	strs := map[string]*string{
		"input":          &cfg.Input.Path,
		"dist-type":      &cfg.Input.Form,
		"input-sep":      &cfg.Input.Delimiter,
		"output-medoids": &cfg.Output.Medoids,
		"output-labels":  &cfg.Output.Labels,
		"output-summary": &cfg.Output.Summary,
		"init":           &cfg.Clustering.Init,
		"empty-cluster":  &cfg.Clustering.EmptyCluster,
		"log-level":      &cfg.Logging.Level,
		"log-format":     &cfg.Logging.Format,
	}
	for name, dst := range strs {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}

	ints := map[string]*int{
		"num-clusters": &cfg.Clustering.K,
		"max-iter":     &cfg.Clustering.MaxIter,
		"num-threads":  &cfg.Clustering.Workers,
	}
	for name, dst := range ints {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}

	bools := map[string]*bool{
		"summary-labels":  &cfg.Output.SummaryLabels,
		"skip-validation": &cfg.Clustering.SkipValidation,
		"verbose":         &cfg.Logging.Verbose,
	}
	for name, dst := range bools {
		if f.Changed(name) {
			*dst, _ = f.GetBool(name)
		}
	}

	if f.Changed("seed") {
		cfg.Clustering.Seed, _ = f.GetUint64("seed")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg config.LoggingConfig) (*kmedoids.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	if cfg.Verbose && level > slog.LevelInfo {
		level = slog.LevelInfo
	}
	if cfg.Format == "json" {
		return kmedoids.NewJSONLogger(level), nil
	}
	return kmedoids.NewTextLogger(level), nil
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	form, err := matrix.ParseForm(cfg.Input.Form)
	if err != nil {
		return err
	}
	initStrategy, err := kmedoids.ParseInit(cfg.Clustering.Init)
	if err != nil {
		return err
	}
	policy, err := kmedoids.ParseEmptyClusterPolicy(cfg.Clustering.EmptyCluster)
	if err != nil {
		return err
	}
	c, ok := codec.ByName(cfg.Output.Codec)
	if !ok {
		return fmt.Errorf("unknown codec %q", cfg.Output.Codec)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}

	r := newResolver(cfg.MinIO, cmd.OutOrStdout())

	loadStart := time.Now()
	store, name, err := r.resolve(ctx, cfg.Input.Path)
	if err != nil {
		return err
	}
	m, err := matrix.Load(ctx, store, name, matrix.ReadOptions{Form: form, Delimiter: cfg.Input.Delimiter})
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "matrix loaded",
		"input", cfg.Input.Path,
		"n", m.Len(),
		"form", form.String(),
		"elapsed", time.Since(loadStart),
	)

	opts := []kmedoids.Option{
		kmedoids.WithWorkers(cfg.Clustering.Workers),
		kmedoids.WithMaxIter(cfg.Clustering.MaxIter),
		kmedoids.WithSeed(cfg.Clustering.Seed),
		kmedoids.WithInit(initStrategy),
		kmedoids.WithEmptyClusterPolicy(policy),
		kmedoids.WithLogger(logger),
	}
	if cfg.Clustering.SkipValidation {
		opts = append(opts, kmedoids.WithoutValidation())
	}
	if cfg.Logging.Verbose {
		opts = append(opts, kmedoids.WithObserver(kmedoids.NewLogObserver(logger, cfg.Logging.ProgressInterval)))
	}

	start := time.Now()
	res, err := kmedoids.Cluster(ctx, m, cfg.Clustering.K, opts...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var targets []output.Target
	add := func(loc string, data []byte) error {
		if loc == "" {
			return nil
		}
		s, n, err := r.resolve(ctx, loc)
		if err != nil {
			return err
		}
		targets = append(targets, output.Target{Store: s, Name: n, Data: data})
		return nil
	}

	if err := add(cfg.Output.Medoids, output.Ints(res.Medoids)); err != nil {
		return err
	}
	if err := add(cfg.Output.Labels, output.Ints(res.Labels)); err != nil {
		return err
	}
	if cfg.Output.Summary != "" {
		workers := cpu.Workers(cfg.Clustering.Workers)
		workers = min(workers, m.Len())

		s := output.Summary{
			N:          m.Len(),
			K:          cfg.Clustering.K,
			Workers:    workers,
			Seed:       cfg.Clustering.Seed,
			Init:       initStrategy.String(),
			Converged:  res.Converged,
			Iterations: res.Iterations,
			Cost:       res.Cost,
			Medoids:    res.Medoids,
		}
		if cfg.Output.SummaryLabels {
			s.Labels = res.Labels
		}
		s.SetElapsed(elapsed)

		data, err := output.EncodeSummary(c, s)
		if err != nil {
			return err
		}
		if err := add(cfg.Output.Summary, data); err != nil {
			return err
		}
	}

	return output.WriteAll(ctx, targets...)
}
