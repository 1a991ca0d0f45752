package backup

import "errors"

var (
	// ErrMalformedBackupFile means the file is not JSON, or is JSON but is
	// neither a backup document nor an envelope.
	ErrMalformedBackupFile = errors.New("malformed backup file")
	// ErrUnsupportedVersion means the document declares a schema version with
	// no registered decoder.
	ErrUnsupportedVersion = errors.New("unsupported backup version")
	// ErrEmptyImport means nothing survived availability and selection filtering.
	ErrEmptyImport = errors.New("nothing to import")
	// ErrMerge means the live data store rejected the import payload.
	ErrMerge = errors.New("merge failed")
)
