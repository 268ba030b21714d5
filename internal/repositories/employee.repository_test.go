package repositories

import (
	"context"
	"testing"

	"pulse360/internal/database"
	. "pulse360/internal/models"
	"pulse360/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormDB.AutoMigrate(&Employee{}, &ImportBatch{}))

	return database.DB{SQL: gormDB}
}

func TestEmployeeRepository_CreateAndFind(t *testing.T) {
	repo := NewEmployee(newTestDB(t))
	ctx := context.Background()

	employee := &Employee{
		EmployeeID: "E1",
		FirstName:  "John",
		LastName:   "Smith",
		Email:      "john@example.com",
		Status:     EmployeeStatusActive,
	}
	require.NoError(t, repo.Create(ctx, employee))
	assert.NotEmpty(t, employee.ID, "BeforeSave assigns a uuid")

	found, err := repo.FindByEmployeeID(ctx, "E1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, employee.ID, found.ID)
	assert.Equal(t, "John", found.FirstName)

	byID, err := repo.GetByID(ctx, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "E1", byID.EmployeeID)
}

func TestEmployeeRepository_FindByEmployeeID_NotFound(t *testing.T) {
	repo := NewEmployee(newTestDB(t))

	// Not-found is a nil result, not an error.
	found, err := repo.FindByEmployeeID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestEmployeeRepository_Update(t *testing.T) {
	repo := NewEmployee(newTestDB(t))
	ctx := context.Background()

	employee := &Employee{
		EmployeeID: "E1",
		FirstName:  "John",
		LastName:   "Smith",
		Status:     EmployeeStatusActive,
	}
	require.NoError(t, repo.Create(ctx, employee))

	employee.JobTitle = "Engineer"
	require.NoError(t, repo.Update(ctx, employee))

	found, err := repo.FindByEmployeeID(ctx, "E1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Engineer", found.JobTitle)
}

func TestEmployeeRepository_Delete(t *testing.T) {
	repo := NewEmployee(newTestDB(t))
	ctx := context.Background()

	employee := &Employee{
		EmployeeID: "E1",
		FirstName:  "John",
		LastName:   "Smith",
		Status:     EmployeeStatusActive,
	}
	require.NoError(t, repo.Create(ctx, employee))
	require.NoError(t, repo.Delete(ctx, employee.ID))

	found, err := repo.FindByEmployeeID(ctx, "E1")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestEmployeeRepository_GetAll_OrderedByEmployeeID(t *testing.T) {
	repo := NewEmployee(newTestDB(t))
	ctx := context.Background()

	for _, id := range []string{"E3", "E1", "E2"} {
		require.NoError(t, repo.Create(ctx, &Employee{
			EmployeeID: id,
			FirstName:  "Test",
			LastName:   "User",
			Status:     EmployeeStatusActive,
		}))
	}

	employees, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 3)
	assert.Equal(t, "E1", employees[0].EmployeeID)
	assert.Equal(t, "E3", employees[2].EmployeeID)
}

func TestEmployeeRepository_GetByImportBatch(t *testing.T) {
	repo := NewEmployee(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Employee{
		EmployeeID: "E1", FirstName: "A", LastName: "B",
		Status: EmployeeStatusActive, ImportBatchID: "batch-1",
	}))
	require.NoError(t, repo.Create(ctx, &Employee{
		EmployeeID: "E2", FirstName: "C", LastName: "D",
		Status: EmployeeStatusActive, ImportBatchID: "batch-2",
	}))

	employees, err := repo.GetByImportBatch(ctx, "batch-1")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "E1", employees[0].EmployeeID)
}

func TestEmployeeRepository_UsesAmbientTransaction(t *testing.T) {
	db := newTestDB(t)
	repo := NewEmployee(db)
	transactionService := services.NewTransactionService(db)
	ctx := context.Background()

	// A write inside a rolled-back transaction never becomes visible.
	err := transactionService.Execute(ctx, func(txCtx context.Context) error {
		if err := repo.Create(txCtx, &Employee{
			EmployeeID: "E1", FirstName: "John", LastName: "Smith",
			Status: EmployeeStatusActive,
		}); err != nil {
			return err
		}

		// The transaction sees its own write.
		found, err := repo.FindByEmployeeID(txCtx, "E1")
		if err != nil {
			return err
		}
		require.NotNil(t, found)

		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	found, err := repo.FindByEmployeeID(ctx, "E1")
	require.NoError(t, err)
	assert.Nil(t, found)
}
