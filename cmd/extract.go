package cmd

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnobs/pkg/ingest"
	"github.com/gnames/gnobs/pkg/om"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// showModes are the values of the extract --show flag.
var showModes = []string{"results", "procedures", "phenomena", "bounds", "tree"}

// fileOutput is what extract prints for one input file.
type fileOutput struct {
	File       string               `json:"file"`
	Results    *om.ExtractionResult `json:"results,omitempty"`
	Procedures []string             `json:"procedures,omitempty"`
	Phenomena  []string             `json:"phenomena,omitempty"`
	Bounds     *om.TimePrimitive    `json:"bounds,omitempty"`
	Tree       []*om.ProcedureTree  `json:"tree,omitempty"`
}

// getExtractCmd returns the extract command.
func getExtractCmd() *cobra.Command {
	var (
		show   string
		pretty bool
	)

	extractCmd := &cobra.Command{
		Use:   "extract [flags] file...",
		Short: "Print observations found in delimited files",
		Long: `Read delimited observation files and print what they contain as JSON.

The column mapping comes from --mapping or ingest.mapping_file of the
configuration. Files are processed concurrently, up to jobs_number at
a time.

What is printed depends on --show:
  results     observations with their result matrices (default)
  procedures  procedure identifiers
  phenomena   measure columns that have values
  bounds      time extent of each file
  tree        procedures with their spatial and temporal bounds

Examples:
  gnobs extract -m buoy.yaml buoy1.csv buoy2.csv
  gnobs extract -m ctd.yaml -t profile --show tree --pretty cast.csv
  gnobs extract -m buoy.yaml --sensors urn:buoy:7 --phenomena temp buoy.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update(ingestFlagOptions(cmd))
			err := runExtract(args, show, pretty)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	ingestFlags(extractCmd)
	extractCmd.Flags().StringVarP(&show, "show", "s", "results",
		"what to print: results, procedures, phenomena, bounds, tree")
	extractCmd.Flags().BoolVarP(&pretty, "pretty", "p", false,
		"print indented JSON")

	return extractCmd
}

func runExtract(paths []string, show string, pretty bool) error {
	if !slices.Contains(showModes, show) {
		return InvalidFlagError("show", show, showModes)
	}

	ext, err := newExtractor(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	res := make([]fileOutput, len(paths))
	f := extractFilter(cfg)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.JobsNumber)
	for i, path := range paths {
		g.Go(func() error {
			out, err := extractFile(ctx, ext, path, show, f)
			if err != nil {
				return err
			}
			res[i] = out
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return err
	}

	enc := gnfmt.GNjson{Pretty: pretty}
	bs, err := enc.Encode(res)
	if err != nil {
		return err
	}
	fmt.Println(string(bs))

	gn.Info("Extracted %s file(s) in %s",
		humanize.Comma(int64(len(paths))),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// extractFile runs one entry point of the extractor over a file.
func extractFile(
	ctx context.Context,
	ext ingest.Extractor,
	path, show string,
	f ingest.Filter,
) (fileOutput, error) {
	src := ingest.FileSource(path)
	res := fileOutput{File: path}
	var err error

	switch show {
	case "procedures":
		res.Procedures, err = ext.ExtractProcedures(ctx, src)
	case "phenomena":
		res.Phenomena, err = ext.PhenomenonNames(ctx, src)
	case "bounds":
		res.Bounds, err = ext.TemporalBounds(ctx, src)
	case "tree":
		res.Tree, err = ext.Procedures(ctx, src)
	default:
		res.Results, err = ext.Results(ctx, src, f)
	}
	return res, err
}
