package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBUnknownDialectError
	DBSchemaPrefixError
	DBTableCheckError
	DBDropTableError
	DBEmptyDatabaseError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaExtensionError
	SchemaOptimizeError

	// Ingest errors
	IngestMappingError
	IngestOpenSourceError
	IngestReadSourceError
	IngestMissingHeaderError
	IngestMissingColumnError
	IngestMappingParseError
	IngestCanceledError

	// Geometry errors
	GeometryEncodeError
	GeometryDecodeError
	GeodesyUnknownCRSError
	GeodesyTransformError

	// Feature store errors
	FeatureQueryError
	FeatureScanError
	FeatureReprojectError
	FeatureRemoveError
	FeatureIDAllocationError
	FeatureCursorClosedError
	FeatureUnknownKindError

	// CLI errors
	InvalidFlagError
)
