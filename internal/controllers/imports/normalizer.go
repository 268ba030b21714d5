package importsController

import (
	"errors"
	"fmt"
	"pulse360/internal/logger"
	. "pulse360/internal/models"
	"pulse360/internal/utils"
	"strings"
)

var ErrMissingRequiredMapping = errors.New("missing required field mapping")

// Canonical field names the normalizer can produce.
const (
	FieldEmployeeID           = "employeeId"
	FieldFirstName            = "firstName"
	FieldLastName             = "lastName"
	FieldEmail                = "email"
	FieldJobTitle             = "jobTitle"
	FieldMainFunction         = "mainFunction"
	FieldSubFunction          = "subFunction"
	FieldLevelIdentification  = "levelIdentification"
	FieldManagerID            = "managerId"
	FieldSecondLevelManagerID = "secondLevelManagerId"
	FieldRole                 = "role"
)

// requiredMappingFields must all be present in explicit-mapping mode. The
// inference mode has no upfront check; row validation catches missing data.
var requiredMappingFields = []string{
	FieldEmployeeID,
	FieldFirstName,
	FieldLastName,
	FieldEmail,
}

// headerSynonyms maps header spellings (lowercased, space/underscore/hyphen
// stripped) to canonical fields. Unknown headers are dropped silently.
var headerSynonyms = map[string]string{
	"id":         FieldEmployeeID,
	"employeeid": FieldEmployeeID,

	"firstname": FieldFirstName,
	"fname":     FieldFirstName,

	"lastname":   FieldLastName,
	"lname":      FieldLastName,
	"secondname": FieldLastName,

	"email":        FieldEmail,
	"emailaddress": FieldEmail,

	"jobtitle": FieldJobTitle,
	"title":    FieldJobTitle,
	"position": FieldJobTitle,

	"department":   FieldMainFunction,
	"function":     FieldMainFunction,
	"mainfunction": FieldMainFunction,

	"subfunction": FieldSubFunction,

	"managerid": FieldManagerID,

	"level":               FieldLevelIdentification,
	"levelidentification": FieldLevelIdentification,

	"secondlevelmanagerid": FieldSecondLevelManagerID,
	"2ndlevelmanagerid":    FieldSecondLevelManagerID,

	"role": FieldRole,
}

// SchemaNormalizer translates arbitrary header spellings into the canonical
// field set, either by synonym inference or an explicit caller-supplied
// mapping.
type SchemaNormalizer struct {
	log logger.Logger
}

func NewSchemaNormalizer() *SchemaNormalizer {
	return &SchemaNormalizer{log: logger.New("SchemaNormalizer")}
}

// normalizeHeader lowercases a header and strips whitespace, underscores and
// hyphens so `Job Title`, `job_title` and `JobTitle` all collide.
func normalizeHeader(header string) string {
	s := strings.ToLower(strings.TrimSpace(header))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

// inferColumnMapping walks headers in file order and resolves each one against
// the synonym table. The first header claiming a canonical field wins; later
// synonyms for the same field are dropped.
func (n *SchemaNormalizer) inferColumnMapping(headers []string) map[string]string {
	mapping := make(map[string]string, len(headers))
	claimed := make(map[string]bool)

	for _, header := range headers {
		if header == "" {
			continue
		}
		target, ok := headerSynonyms[normalizeHeader(header)]
		if !ok || claimed[target] {
			continue
		}
		mapping[header] = target
		claimed[target] = true
	}

	return mapping
}

// Normalize maps parsed rows onto canonical records using synonym inference.
func (n *SchemaNormalizer) Normalize(file *utils.ParsedFile) []CanonicalRecord {
	columnMapping := n.inferColumnMapping(file.Headers)

	_, hasTitleColumn := n.claimedFields(columnMapping)[FieldJobTitle]

	records := make([]CanonicalRecord, 0, len(file.Rows))
	for _, row := range file.Rows {
		record := CanonicalRecord{
			SourceRowNumber: row.Number,
			RawOriginal:     row.Cells,
		}
		for source, target := range columnMapping {
			setCanonicalField(&record, target, row.Cells[source])
		}
		// A role column backfills jobTitle when the file has no title column.
		if !hasTitleColumn && record.JobTitle == "" {
			record.JobTitle = record.Role
		}
		records = append(records, record)
	}

	return records
}

// NormalizeWithMapping uses a caller-supplied mapping of canonical field ->
// source column label instead of synonym inference. Fails upfront when a
// required field has no source column.
func (n *SchemaNormalizer) NormalizeWithMapping(file *utils.ParsedFile, mapping map[string]string) ([]CanonicalRecord, error) {
	log := n.log.Function("NormalizeWithMapping")

	var missing []string
	for _, field := range requiredMappingFields {
		if strings.TrimSpace(mapping[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, log.Err("explicit mapping is incomplete",
			fmt.Errorf("%w: %s", ErrMissingRequiredMapping, strings.Join(missing, ", ")))
	}

	hasTitleColumn := strings.TrimSpace(mapping[FieldJobTitle]) != ""

	records := make([]CanonicalRecord, 0, len(file.Rows))
	for _, row := range file.Rows {
		record := CanonicalRecord{
			SourceRowNumber: row.Number,
			RawOriginal:     row.Cells,
		}
		for target, source := range mapping {
			setCanonicalField(&record, target, row.Cells[source])
		}
		// Same backfill rule as inference: role fills jobTitle only when
		// the mapping has no title column of its own.
		if !hasTitleColumn && record.JobTitle == "" {
			record.JobTitle = record.Role
		}
		records = append(records, record)
	}

	return records, nil
}

func (n *SchemaNormalizer) claimedFields(columnMapping map[string]string) map[string]bool {
	claimed := make(map[string]bool, len(columnMapping))
	for _, target := range columnMapping {
		claimed[target] = true
	}
	return claimed
}

// setCanonicalField assigns a trimmed cell value to the record field named by
// target. Unknown targets are dropped at this boundary rather than spread
// into the record.
func setCanonicalField(record *CanonicalRecord, target, value string) {
	value = strings.TrimSpace(value)

	switch target {
	case FieldEmployeeID:
		record.EmployeeID = value
	case FieldFirstName:
		record.FirstName = value
	case FieldLastName:
		record.LastName = value
	case FieldEmail:
		record.Email = value
	case FieldJobTitle:
		record.JobTitle = value
	case FieldMainFunction:
		record.MainFunction = value
	case FieldSubFunction:
		record.SubFunction = value
	case FieldLevelIdentification:
		record.LevelIdentification = value
	case FieldManagerID:
		record.ManagerID = value
	case FieldSecondLevelManagerID:
		record.SecondLevelManagerID = value
	case FieldRole:
		record.Role = value
	}
}
