package lifecycle_test

import (
	"testing"

	"github.com/gnames/gnobs/internal/iodb"
	"github.com/gnames/gnobs/internal/ioschema"
	"github.com/gnames/gnobs/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestSchemaManagerContract checks that ioschema.NewManager
// satisfies the lifecycle.SchemaManager interface.
func TestSchemaManagerContract(t *testing.T) {
	var sm lifecycle.SchemaManager = ioschema.NewManager(iodb.New())
	assert.NotNil(t, sm)
}
