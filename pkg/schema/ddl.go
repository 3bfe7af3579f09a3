package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gnames/gnobs/pkg/dialect"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string, d dialect.Dialect) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")
		if ddlTag == geometryType {
			ddlTag = d.GeometryColumnType()
		}

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// SamplingFeature DDL methods
func (sf SamplingFeature) TableDDL(d dialect.Dialect, prefix string) string {
	return generateDDL(sf, Table(prefix, sf.TableName()), d)
}

func (sf SamplingFeature) IndexDDL(prefix string) []string {
	table := Table(prefix, sf.TableName())
	return []string{
		fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_%s_sampled ON %s(sampled_feature);",
			table, table,
		),
	}
}

func (sf SamplingFeature) TableName() string {
	return "sampling_features"
}

// SensorLocation DDL methods
func (sl SensorLocation) TableDDL(d dialect.Dialect, prefix string) string {
	return generateDDL(sl, Table(prefix, sl.TableName()), d)
}

func (sl SensorLocation) IndexDDL(prefix string) []string {
	return []string{}
}

func (sl SensorLocation) TableName() string {
	return "sensor_locations"
}
