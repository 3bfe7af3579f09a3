package db_test

import (
	"testing"

	"github.com/gnames/gnobs/internal/iodb"
	"github.com/gnames/gnobs/pkg/db"
)

// TestOperatorImplementsInterface verifies that the iodb operator
// implements the db.Operator interface.
func TestOperatorImplementsInterface(t *testing.T) {
	var _ db.Operator = iodb.New()
}
