package seed

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"pulse360/config"
	importsController "pulse360/internal/controllers/imports"
	"pulse360/internal/database"
	"pulse360/internal/logger"
	. "pulse360/internal/models"
	"pulse360/internal/repositories"
	"pulse360/internal/services"
	"pulse360/internal/utils"

	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	now := time.Now().UTC()
	employees := []Employee{
		{
			EmployeeID: "E1001",
			FirstName:  "Maria",
			LastName:   "Santos",
			Email:      "maria.santos@example.com",
			JobTitle:   "Engineering Manager",
			Role:       "manager",
			Status:     EmployeeStatusActive,
			ImportedAt: &now,
		}, {
			EmployeeID: "E1002",
			FirstName:  "James",
			LastName:   "Okafor",
			Email:      "james.okafor@example.com",
			JobTitle:   "Software Engineer",
			ManagerID:  "E1001",
			Role:       "employee",
			Status:     EmployeeStatusActive,
			ImportedAt: &now,
		}, {
			EmployeeID: "E1003",
			FirstName:  "Priya",
			LastName:   "Raman",
			Email:      "priya.raman@example.com",
			JobTitle:   "Product Designer",
			ManagerID:  "E1001",
			Role:       "employee",
			Status:     EmployeeStatusActive,
			ImportedAt: &now,
		},
	}

	for _, employee := range employees {
		var existing Employee
		if err := db.First(&existing, "employee_id = ?", employee.EmployeeID).Error; err == nil {
			log.Info("Employee already exists", "employeeId", employee.EmployeeID)
			continue
		}
		log.Info("Seeding employee", "employeeId", employee.EmployeeID)
		if err := db.Create(&employee).Error; err != nil {
			log.Er("failed to create employee", err, "employeeId", employee.EmployeeID)
		}
	}

	// Generate a sample roster and run it through the import pipeline so a
	// dev database starts out with a realistically imported population.
	if err := os.MkdirAll(config.UploadTempDir, 0o755); err != nil {
		return log.Err("failed to create upload temp dir", err, "dir", config.UploadTempDir)
	}
	rosterPath := filepath.Join(config.UploadTempDir, "sample_roster.csv")
	if err := utils.WriteSampleRoster(rosterPath, 50, 42); err != nil {
		return log.Err("failed to write sample roster", err, "path", rosterPath)
	}
	log.Info("Sample roster written", "path", rosterPath)

	rosterData, err := os.ReadFile(rosterPath)
	if err != nil {
		return log.Err("failed to read sample roster", err, "path", rosterPath)
	}

	// No cache or websocket clients during seeding; the pipeline degrades to
	// plain database access and silent progress.
	seedDB := database.DB{SQL: db}
	controller := importsController.New(
		repositories.NewEmployee(seedDB),
		repositories.NewImportBatch(seedDB),
		services.NewTransactionService(seedDB),
		silentNotifier{},
	)

	result, err := controller.ImportFile(context.Background(), rosterData, DefaultImportOptions("sample_roster.csv"))
	if err != nil {
		return log.Err("failed to import sample roster", err)
	}
	log.Info("Sample roster imported",
		"newEmployees", result.NewEmployees,
		"updatedEmployees", result.UpdatedEmployees,
		"errors", len(result.Errors))

	return nil
}

type silentNotifier struct{}

func (silentNotifier) SendImportProgress(string, map[string]any) {}
func (silentNotifier) SendImportComplete(string, map[string]any) {}
func (silentNotifier) SendImportError(string, string)            {}
