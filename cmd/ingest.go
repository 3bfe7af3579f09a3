package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnobs/internal/iofeature"
	"github.com/gnames/gnobs/pkg/feature"
	"github.com/gnames/gnobs/pkg/geodesy"
	"github.com/gnames/gnobs/pkg/ingest"
	"github.com/gnames/gnobs/pkg/om"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// getIngestCmd returns the ingest command.
func getIngestCmd() *cobra.Command {
	ingestCmd := &cobra.Command{
		Use:   "ingest [flags] file...",
		Short: "Store sensor locations and sampling points of files",
		Long: `Extract observations from delimited files and store their features.

For every file:
  - each procedure with coordinates becomes a sensor location (a point,
    or the envelope of a moving sensor)
  - each observation with positions becomes a sampling point (a point,
    or the path of a moving sensor)

Identifiers are generated from store.sensor_id_base and
store.sampling_id_base. Feature tables must exist, see 'gnobs create'.

Examples:
  gnobs ingest -m buoy.yaml buoy1.csv buoy2.csv
  gnobs ingest -d postgres --schema buoys -m buoy.yaml data/*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(ingestFlagOptions(cmd))
			err := runIngest(args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	ingestFlags(ingestCmd)
	return ingestCmd
}

func runIngest(paths []string) error {
	ctx := context.Background()
	start := time.Now()

	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	op, err := connect(ctx)
	if err != nil {
		return err
	}
	exists, err := hasFeatureTables(ctx, op, cfg.Database.Schema)
	if err == nil && !exists {
		err = EmptyDatabaseError(cfg.Database.Schema)
	}
	if err != nil {
		op.Close()
		return err
	}

	store, err := iofeature.New(op, cfg, geodesy.New())
	if err != nil {
		op.Close()
		return err
	}
	defer store.Close()

	results, err := extractAll(ctx, ext, paths)
	if err != nil {
		return err
	}

	var sensors, samplings []feature.Feature
	for _, v := range results {
		sensors = append(sensors, feature.SensorLocations(v.Procedures)...)
		samplings = append(samplings, feature.SamplingPoints(v.Observations)...)
	}

	sensorNum, sensorSkip, err := writeFeatures(ctx, store, feature.Sensor, sensors)
	if err != nil {
		return err
	}
	sampNum, sampSkip, err := writeFeatures(ctx, store, feature.Sampling, samplings)
	if err != nil {
		return err
	}

	slog.Info("Ingest finished",
		"files", len(paths),
		"sensor-locations", sensorNum,
		"sampling-points", sampNum,
		"skipped", sensorSkip+sampSkip,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Stored <em>%s</em> sensor locations and <em>%s</em> sampling points in %s",
		humanize.Comma(int64(sensorNum)),
		humanize.Comma(int64(sampNum)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	if skipped := sensorSkip + sampSkip; skipped > 0 {
		gn.Warn("<warn>%s features could not be stored, see the log for details</warn>",
			humanize.Comma(int64(skipped)))
	}
	return nil
}

// extractAll runs full extraction over files, jobs_number at a time.
// Results keep the order of paths.
func extractAll(
	ctx context.Context,
	ext ingest.Extractor,
	paths []string,
) ([]*om.ExtractionResult, error) {
	res := make([]*om.ExtractionResult, len(paths))
	f := extractFilter(cfg)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.JobsNumber)
	for i, path := range paths {
		g.Go(func() error {
			r, err := ext.Results(ctx, ingest.FileSource(path), f)
			if err != nil {
				return err
			}
			if n := r.Skipped.DroppedRows(); n > 0 {
				slog.Warn("Rows dropped", "file", path, "rows", n)
			}
			res[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// writeFeatures stores features in batches of database.batch_size and
// returns the number of stored and skipped ones.
func writeFeatures(
	ctx context.Context,
	store feature.Store,
	k feature.Kind,
	fs []feature.Feature,
) (int, int, error) {
	if len(fs) == 0 {
		return 0, 0, nil
	}

	w, err := store.Writer(ctx, k)
	if err != nil {
		return 0, 0, err
	}
	defer w.Close()

	bar := pb.Full.Start(len(fs))
	bar.Set("prefix", "Storing "+k.String()+" features: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var stored int
	size := cfg.Database.BatchSize
	for i := 0; i < len(fs); i += size {
		batch := fs[i:min(i+size, len(fs))]
		ids, err := w.Add(ctx, batch)
		stored += len(ids)
		bar.Add(len(batch))
		if err != nil {
			return stored, w.Skipped(), err
		}
	}
	return stored, w.Skipped(), nil
}
