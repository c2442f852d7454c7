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
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Input errors
	SubmissionIDError
	WorkbookReadError
	MissingSheetError
	VCFReadError
	VCFFormatError

	// Reference data errors
	ReferenceLoadError
	ReferenceFormatError

	// Ledger errors
	LedgerReadError
	LedgerFormatError
	LedgerRangeError
	LedgerNamespaceError
	LedgerDuplicateSubmissionError
	LedgerCollisionError
	LedgerImpossibleRangeError
	LedgerBackupError
	LedgerWriteError

	// Pipeline errors
	BlockingFindingsError
	ExportError
	AccessionIndexError
)
