package ioschema

import "github.com/gnames/gnobs/pkg/schema"

// tableNames returns prefixed names of all feature tables.
func tableNames(prefix string) []string {
	models := schema.AllModels()
	res := make([]string, len(models))
	for i, m := range models {
		res[i] = schema.Table(prefix, m.TableName())
	}
	return res
}
