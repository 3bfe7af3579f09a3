// Package iomapping loads column mappings of delimited observation files
// from YAML.
//
// A mapping file looks like:
//
//	main_column: time
//	latitude_column: lat
//	longitude_column: lon
//	procedure_column: station
//	measure_columns: [temp, sal]
//	quality_columns: [qc]
//
// Settings the file leaves empty are taken from the ingest section of the
// configuration with ApplyConfig.
package iomapping

import (
	"bytes"
	"errors"
	"io"

	"github.com/gnames/gnobs/internal/iofs"
	"github.com/gnames/gnobs/pkg/config"
	"github.com/gnames/gnobs/pkg/ingest"
	"gopkg.in/yaml.v3"
)

// Load reads a mapping file.
func Load(path string) (ingest.Mapping, error) {
	bs, err := iofs.ReadFile(path)
	if err != nil {
		return ingest.Mapping{}, err
	}
	return Parse(path, bs)
}

// Parse decodes a mapping. Unknown keys are refused so that a misspelled
// column setting does not silently drop data.
func Parse(name string, data []byte) (ingest.Mapping, error) {
	var res ingest.Mapping
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(&res)
	if errors.Is(err, io.EOF) {
		err = errors.New("mapping is empty")
	}
	if err != nil {
		return ingest.Mapping{}, ParseError(name, err)
	}
	return res, nil
}

// ApplyConfig fills settings the mapping leaves empty from the ingest
// configuration.
func ApplyConfig(m ingest.Mapping, c config.IngestConfig) ingest.Mapping {
	fill := func(dst *string, val string) {
		if *dst == "" {
			*dst = val
		}
	}
	fill(&m.Separator, c.Separator)
	fill(&m.Quote, c.Quote)
	fill(&m.DateFormat, c.DateFormat)
	fill(&m.ObservationType, c.ObservationType)
	fill(&m.ProcedurePrefix, c.ProcedurePrefix)
	fill(&m.ProcedureID, c.ProcedureID)
	return m
}
