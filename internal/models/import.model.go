package models

import "time"

const (
	// ImportModeBestEffort commits every record that survives validation and
	// dedup even when other records hit store-level errors.
	ImportModeBestEffort = "bestEffortBatch"
	// ImportModeAtomic rolls the whole batch back on any store-level error.
	ImportModeAtomic = "atomicBatch"

	ImportBatchStatusRunning    = "running"
	ImportBatchStatusCommitted  = "committed"
	ImportBatchStatusRolledBack = "rolled_back"
	ImportBatchStatusFailed     = "failed"
)

// RawRow is one data row as it appeared in the source file: original header
// labels, values coerced to string. Never persisted.
type RawRow struct {
	Number int               `json:"number"` // 1-based row number in the source file
	Cells  map[string]string `json:"cells"`
}

// CanonicalRecord is the normalized employee payload produced by the schema
// normalizer. All fields are trimmed; absent columns leave the empty string.
type CanonicalRecord struct {
	EmployeeID           string `json:"employeeId"`
	FirstName            string `json:"firstName"`
	LastName             string `json:"lastName"`
	Email                string `json:"email"`
	JobTitle             string `json:"jobTitle"`
	MainFunction         string `json:"mainFunction"`
	SubFunction          string `json:"subFunction"`
	LevelIdentification  string `json:"levelIdentification"`
	ManagerID            string `json:"managerId"`
	SecondLevelManagerID string `json:"secondLevelManagerId"`
	Role                 string `json:"role"`

	SourceRowNumber int               `json:"sourceRowNumber"`
	RawOriginal     map[string]string `json:"-"`
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type DuplicateEntry struct {
	Row        int    `json:"row"`
	EmployeeID string `json:"employeeId"`
	Message    string `json:"message"`
}

type ImportResult struct {
	BatchToken       string           `json:"batchToken"`
	TotalRecords     int              `json:"totalRecords"`
	NewEmployees     int              `json:"newEmployees"`
	UpdatedEmployees int              `json:"updatedEmployees"`
	Errors           []RowError       `json:"errors"`
	Duplicates       []DuplicateEntry `json:"duplicates"`
}

// ImportOptions carries caller-supplied knobs for one import run. Mapping, if
// non-nil, switches the normalizer to explicit-mapping mode (canonical field
// name -> source column label).
type ImportOptions struct {
	FileName       string
	StartRow       int
	Mapping        map[string]string
	UpdateExisting bool
	Mode           string

	// ColumnMode reads a spreadsheet headerlessly, keying cells by column
	// letter. Meant to be paired with an explicit Mapping whose source
	// labels are column letters.
	ColumnMode bool
}

func DefaultImportOptions(fileName string) ImportOptions {
	return ImportOptions{
		FileName:       fileName,
		StartRow:       1,
		UpdateExisting: true,
		Mode:           ImportModeBestEffort,
	}
}

// ImportBatch is the persisted audit record of one import run. The per-row
// error and duplicate lists are stored as JSON text.
type ImportBatch struct {
	BaseUUIDModel
	BatchToken       string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"batchToken"`
	FileName         string     `gorm:"type:varchar(255)"                     json:"fileName"`
	Mode             string     `gorm:"type:varchar(20);not null"             json:"mode"`
	Status           string     `gorm:"type:varchar(20);not null"             json:"status"`
	TotalRecords     int        `gorm:"not null"                              json:"totalRecords"`
	NewEmployees     int        `gorm:"not null"                              json:"newEmployees"`
	UpdatedEmployees int        `gorm:"not null"                              json:"updatedEmployees"`
	ErrorCount       int        `gorm:"not null"                              json:"errorCount"`
	DuplicateCount   int        `gorm:"not null"                              json:"duplicateCount"`
	Errors           string     `gorm:"type:text"                             json:"errors"`
	Duplicates       string     `gorm:"type:text"                             json:"duplicates"`
	StartedAt        time.Time  `gorm:"type:datetime"                         json:"startedAt"`
	CompletedAt      *time.Time `gorm:"type:datetime"                         json:"completedAt"`
}
