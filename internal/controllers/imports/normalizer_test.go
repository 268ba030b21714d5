package importsController

import (
	"testing"

	. "pulse360/internal/models"
	"pulse360/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Employee ID", "employeeid"},
		{"employee_id", "employeeid"},
		{"EMPLOYEE-ID", "employeeid"},
		{"  First Name  ", "firstname"},
		{"Job_Title", "jobtitle"},
		{"2nd Level Manager ID", "2ndlevelmanagerid"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeHeader(tt.input), "input %q", tt.input)
	}
}

func TestSchemaNormalizer_InferColumnMapping(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	mapping := normalizer.inferColumnMapping([]string{
		"Employee ID", "First Name", "Last Name", "Email Address",
		"Title", "Department", "Level", "Manager ID", "Favorite Color",
	})

	assert.Equal(t, FieldEmployeeID, mapping["Employee ID"])
	assert.Equal(t, FieldFirstName, mapping["First Name"])
	assert.Equal(t, FieldLastName, mapping["Last Name"])
	assert.Equal(t, FieldEmail, mapping["Email Address"])
	assert.Equal(t, FieldJobTitle, mapping["Title"])
	assert.Equal(t, FieldMainFunction, mapping["Department"])
	assert.Equal(t, FieldLevelIdentification, mapping["Level"])
	assert.Equal(t, FieldManagerID, mapping["Manager ID"])

	// Unknown headers are dropped, not guessed at.
	_, ok := mapping["Favorite Color"]
	assert.False(t, ok)
}

func TestSchemaNormalizer_InferColumnMapping_FirstWins(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	// "ID" and "Employee ID" both resolve to employeeId; the leftmost column
	// claims the field and the later one is ignored.
	mapping := normalizer.inferColumnMapping([]string{"ID", "Employee ID", "First Name"})

	assert.Equal(t, FieldEmployeeID, mapping["ID"])
	_, ok := mapping["Employee ID"]
	assert.False(t, ok)
}

func parsedFile(headers []string, rows ...[]string) *utils.ParsedFile {
	file := &utils.ParsedFile{Headers: headers}
	for i, row := range rows {
		cells := make(map[string]string, len(headers))
		for j, header := range headers {
			if j < len(row) {
				cells[header] = row[j]
			} else {
				cells[header] = ""
			}
		}
		file.Rows = append(file.Rows, RawRow{Number: i + 2, Cells: cells})
	}
	return file
}

func TestSchemaNormalizer_Normalize(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	file := parsedFile(
		[]string{"Employee ID", "fname", "lname", "E-Mail Address", "Position"},
		[]string{"E1", " John ", "Smith", "john@example.com", "Engineer"},
	)
	// "E-Mail Address" normalizes to "emailaddress" after hyphen stripping.

	records := normalizer.Normalize(file)
	require.Len(t, records, 1)

	record := records[0]
	assert.Equal(t, "E1", record.EmployeeID)
	assert.Equal(t, "John", record.FirstName, "cell values are trimmed")
	assert.Equal(t, "Smith", record.LastName)
	assert.Equal(t, "john@example.com", record.Email)
	assert.Equal(t, "Engineer", record.JobTitle)
	assert.Equal(t, 2, record.SourceRowNumber)
}

func TestSchemaNormalizer_Normalize_RoleBackfillsTitle(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	t.Run("no title column", func(t *testing.T) {
		file := parsedFile(
			[]string{"Employee ID", "First Name", "Last Name", "Role"},
			[]string{"E1", "John", "Smith", "Manager"},
		)
		records := normalizer.Normalize(file)
		require.Len(t, records, 1)
		assert.Equal(t, "Manager", records[0].JobTitle)
		assert.Equal(t, "Manager", records[0].Role)
	})

	t.Run("title column present", func(t *testing.T) {
		file := parsedFile(
			[]string{"Employee ID", "First Name", "Last Name", "Title", "Role"},
			[]string{"E1", "John", "Smith", "", "Manager"},
		)
		records := normalizer.Normalize(file)
		require.Len(t, records, 1)
		// The file has a title column, so an empty title stays empty.
		assert.Equal(t, "", records[0].JobTitle)
	})
}

func TestSchemaNormalizer_NormalizeWithMapping(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	file := parsedFile(
		[]string{"Col1", "Col2", "Col3", "Col4"},
		[]string{"E1", "John", "Smith", "john@example.com"},
	)

	records, err := normalizer.NormalizeWithMapping(file, map[string]string{
		FieldEmployeeID: "Col1",
		FieldFirstName:  "Col2",
		FieldLastName:   "Col3",
		FieldEmail:      "Col4",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "E1", records[0].EmployeeID)
	assert.Equal(t, "John", records[0].FirstName)
	assert.Equal(t, "john@example.com", records[0].Email)
}

func TestSchemaNormalizer_NormalizeWithMapping_RoleBackfillsTitle(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	t.Run("no title column mapped", func(t *testing.T) {
		file := parsedFile(
			[]string{"A", "B", "C", "D", "E"},
			[]string{"E1", "John", "Smith", "john@example.com", "Manager"},
		)
		records, err := normalizer.NormalizeWithMapping(file, map[string]string{
			FieldEmployeeID: "A",
			FieldFirstName:  "B",
			FieldLastName:   "C",
			FieldEmail:      "D",
			FieldRole:       "E",
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Manager", records[0].JobTitle)
		assert.Equal(t, "Manager", records[0].Role)
	})

	t.Run("title column mapped", func(t *testing.T) {
		file := parsedFile(
			[]string{"A", "B", "C", "D", "E", "F"},
			[]string{"E1", "John", "Smith", "john@example.com", "", "Manager"},
		)
		records, err := normalizer.NormalizeWithMapping(file, map[string]string{
			FieldEmployeeID: "A",
			FieldFirstName:  "B",
			FieldLastName:   "C",
			FieldEmail:      "D",
			FieldJobTitle:   "E",
			FieldRole:       "F",
		})
		require.NoError(t, err)
		require.Len(t, records, 1)
		// The mapping names a title column, so an empty title stays empty.
		assert.Equal(t, "", records[0].JobTitle)
		assert.Equal(t, "Manager", records[0].Role)
	})
}

func TestSchemaNormalizer_NormalizeWithMapping_MissingRequired(t *testing.T) {
	normalizer := NewSchemaNormalizer()

	file := parsedFile([]string{"Col1"}, []string{"E1"})

	_, err := normalizer.NormalizeWithMapping(file, map[string]string{
		FieldEmployeeID: "Col1",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredMapping)
	assert.Contains(t, err.Error(), FieldFirstName)
	assert.Contains(t, err.Error(), FieldLastName)
	assert.Contains(t, err.Error(), FieldEmail)
}
