package harvest

import "github.com/jonathan/aardvark-harvest/internal/aardvark"

// Status is the three-way result of processing one dataset.
type Status int

const (
	// Accepted records passed validation and are ready to write.
	Accepted Status = iota
	// Skipped datasets were excluded on purpose, such as a skip-list hit.
	Skipped
	// Rejected datasets failed a pipeline stage.
	Rejected
)

func (s Status) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Skipped:
		return "skipped"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Pipeline stages named in rejections.
const (
	StageExtract    = "extract"
	StageReferences = "references"
	StageValidate   = "validate"
	StageWrite      = "write"
)

// Outcome is the result of processing one dataset.
type Outcome struct {
	Status Status
	// ID is the record id, empty when the dataset was rejected before one existed.
	ID     string
	Record *aardvark.Record
	// Reason explains a skip.
	Reason string
	// Stage and Err describe a rejection.
	Stage string
	Err   error
}

func accepted(rec aardvark.Record) Outcome {
	return Outcome{Status: Accepted, ID: rec.ID, Record: &rec}
}

func skipped(id, reason string) Outcome {
	return Outcome{Status: Skipped, ID: id, Reason: reason}
}

func rejected(id, stage string, err error) Outcome {
	return Outcome{Status: Rejected, ID: id, Stage: stage, Err: err}
}
