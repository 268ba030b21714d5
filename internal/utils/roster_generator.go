package utils

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"pulse360/internal/logger"
)

var rosterHeaders = []string{
	"Employee ID",
	"First Name",
	"Last Name",
	"Email",
	"Job Title",
	"Department",
	"Sub Function",
	"Level",
	"Manager ID",
}

var (
	rosterFirstNames = []string{"John", "Jane", "Michael", "Sarah", "David", "Lisa", "Robert", "Mary", "James", "Jennifer"}
	rosterLastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	rosterTitles     = []string{"Software Engineer", "Manager", "Analyst", "Coordinator", "Specialist", "Director", "Associate", "Consultant"}
	rosterFunctions  = []string{"Engineering", "Sales", "Marketing", "HR", "Finance", "Operations", "IT", "Legal"}
	rosterLevels     = []string{"IC1", "IC2", "IC3", "M1", "M2"}
)

// WriteSampleRoster writes a synthetic employee roster CSV for development
// seeding and manual import testing. Headers use mixed spellings on purpose so
// the synonym table gets exercised.
func WriteSampleRoster(path string, rows int, seed int64) error {
	log := logger.New("utils").Function("WriteSampleRoster")

	file, err := os.Create(path)
	if err != nil {
		return log.Err("failed to create roster file", err, "path", path)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warn("failed to close roster file", "error", err)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(rosterHeaders); err != nil {
		return log.Err("failed to write roster headers", err)
	}

	r := rand.New(rand.NewSource(seed))
	for i := 0; i < rows; i++ {
		first := rosterFirstNames[r.Intn(len(rosterFirstNames))]
		last := rosterLastNames[r.Intn(len(rosterLastNames))]
		row := []string{
			fmt.Sprintf("E%04d", i+1),
			first,
			last,
			fmt.Sprintf("%s.%s%d@example.com", first, last, i+1),
			rosterTitles[r.Intn(len(rosterTitles))],
			rosterFunctions[r.Intn(len(rosterFunctions))],
			"",
			rosterLevels[r.Intn(len(rosterLevels))],
			fmt.Sprintf("E%04d", r.Intn(rows)+1),
		}
		if err := writer.Write(row); err != nil {
			return log.Err("failed to write roster row", err, "row", i+1)
		}
	}

	log.Info("sample roster written", "path", path, "rows", rows)
	return nil
}
