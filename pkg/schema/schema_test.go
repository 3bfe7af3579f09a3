package schema_test

import (
	"testing"

	"github.com/gnames/gnobs/pkg/dialect"
	"github.com/gnames/gnobs/pkg/schema"
	"github.com/stretchr/testify/assert"
)

// TestSamplingFeatureTableDDL tests DDL generation per dialect.
func TestSamplingFeatureTableDDL(t *testing.T) {
	sf := schema.SamplingFeature{}
	tests := []struct {
		d     dialect.Dialect
		shape string
	}{
		{dialect.Postgres, "shape GEOMETRY"},
		{dialect.DuckDB, "shape VARCHAR"},
		{dialect.SQLite, "shape BLOB"},
	}
	for _, v := range tests {
		ddl := sf.TableDDL(v.d, "")
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS sampling_features (", v.d)
		assert.Contains(t, ddl, "id VARCHAR(255) PRIMARY KEY", v.d)
		assert.Contains(t, ddl, "sampled_feature VARCHAR(255)", v.d)
		assert.Contains(t, ddl, "srid INTEGER", v.d)
		assert.Contains(t, ddl, v.shape, v.d)
	}
}

// TestSensorLocationTableDDL tests prefixed DDL and indexes.
func TestSensorLocationTableDDL(t *testing.T) {
	sl := schema.SensorLocation{}
	ddl := sl.TableDDL(dialect.SQLite, "obs")
	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS obs_sensor_locations")
	assert.NotContains(t, ddl, "name")
	assert.Empty(t, sl.IndexDDL("obs"))

	idx := schema.SamplingFeature{}.IndexDDL("obs")
	assert.Len(t, idx, 1)
	assert.Contains(t, idx[0], "ON obs_sampling_features(sampled_feature)")
}

func TestAllModels(t *testing.T) {
	var names []string
	for _, m := range schema.AllModels() {
		names = append(names, m.TableName())
	}
	assert.Equal(t, []string{"sampling_features", "sensor_locations"}, names)
}

func TestPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		valid  bool
	}{
		{"", true},
		{"obs", true},
		{"_tmp2", true},
		{"2obs", false},
		{"obs;drop table x", false},
		{"a.b", false},
	}
	for _, v := range tests {
		assert.Equal(t, v.valid, schema.IsValidPrefix(v.prefix), v.prefix)
	}
	assert.Equal(t, "sensor_locations", schema.Table("", "sensor_locations"))
	assert.Equal(t, "x_sensor_locations", schema.Table("x", "sensor_locations"))
}
