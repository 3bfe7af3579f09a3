package cmd

import (
	"github.com/gnames/gnobs/internal/ioingest"
	"github.com/gnames/gnobs/internal/iomapping"
	"github.com/gnames/gnobs/pkg/config"
	"github.com/gnames/gnobs/pkg/ingest"
	"github.com/spf13/cobra"
)

// dbFlags adds database flags shared by all subcommands.
func dbFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringP("dialect", "d", "", "database engine: postgres, duckdb or sqlite")
	pf.String("db-path", "", "database file of duckdb and sqlite")
	pf.String("schema", "", "prefix of feature table names")
}

// dbFlagOptions converts database flags set by the user to options.
func dbFlagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("dialect") {
		s, _ := flags.GetString("dialect")
		res = append(res, config.OptDatabaseDialect(s))
	}
	if flags.Changed("db-path") {
		s, _ := flags.GetString("db-path")
		res = append(res, config.OptDatabasePath(s))
	}
	if flags.Changed("schema") {
		s, _ := flags.GetString("schema")
		res = append(res, config.OptDatabaseSchema(s))
	}
	return res
}

// ingestFlags adds mapping and filter flags of extract and ingest.
func ingestFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("mapping", "m", "", "YAML file with the column mapping")
	f.String("separator", "", "token separator of input files")
	f.StringP("type", "t", "", "observation type: timeseries or profile")
	f.StringSlice("sensors", nil, "procedure identifiers to keep")
	f.StringSlice("phenomena", nil, "measure columns to read")
	f.StringSlice("foi", nil, "features of interest to keep")
}

// ingestFlagOptions converts ingest flags set by the user to options.
func ingestFlagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	str := func(name string, fn func(string) config.Option) {
		if flags.Changed(name) {
			s, _ := flags.GetString(name)
			res = append(res, fn(s))
		}
	}
	list := func(name string, fn func([]string) config.Option) {
		if flags.Changed(name) {
			ss, _ := flags.GetStringSlice(name)
			res = append(res, fn(ss))
		}
	}
	str("mapping", config.OptIngestMappingFile)
	str("separator", config.OptIngestSeparator)
	str("type", config.OptIngestObservationType)
	list("sensors", config.OptExtractSensors)
	list("phenomena", config.OptExtractPhenomena)
	list("foi", config.OptExtractFeaturesOfInterest)
	return res
}

// newExtractor loads the configured mapping and creates an extractor.
func newExtractor(cfg *config.Config) (ingest.Extractor, error) {
	path := cfg.Ingest.MappingFile
	if path == "" {
		return nil, MappingNotSetError()
	}
	m, err := iomapping.Load(path)
	if err != nil {
		return nil, err
	}
	return ioingest.New(iomapping.ApplyConfig(m, cfg.Ingest))
}

func extractFilter(cfg *config.Config) ingest.Filter {
	return ingest.Filter{
		Sensors:            cfg.Extract.Sensors,
		Phenomena:          cfg.Extract.Phenomena,
		FeaturesOfInterest: cfg.Extract.FeaturesOfInterest,
	}
}
