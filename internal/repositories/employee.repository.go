package repositories

import (
	"context"
	"errors"
	"pulse360/internal/database"
	"pulse360/internal/logger"
	. "pulse360/internal/models"
	"pulse360/internal/services"
	"time"

	"gorm.io/gorm"
)

const (
	EMPLOYEE_CACHE_EXPIRY = 1 * time.Hour
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*Employee, error)
	FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error)
	Create(ctx context.Context, employee *Employee) error
	Update(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]*Employee, error)
	GetByImportBatch(ctx context.Context, batchToken string) ([]*Employee, error)
}

type employeeRepository struct {
	db  database.DB
	log logger.Logger
}

func NewEmployee(db database.DB) EmployeeRepository {
	return &employeeRepository{
		db:  db,
		log: logger.New("employeeRepository"),
	}
}

func (r *employeeRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *employeeRepository) inTransaction(ctx context.Context) bool {
	_, ok := services.GetTransaction(ctx)
	return ok
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*Employee, error) {
	log := r.log.Function("GetByID")

	var employee Employee
	if err := r.getDB(ctx).First(&employee, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get employee by id", err, "id", id)
	}

	return &employee, nil
}

// FindByEmployeeID looks up an employee by the business key. Not-found is not
// an error here: the reconciliation engine branches on the nil result.
// Cache is bypassed while a transaction is in flight so lookups see the
// transaction's own writes.
func (r *employeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*Employee, error) {
	log := r.log.Function("FindByEmployeeID")

	var employee Employee
	if !r.inTransaction(ctx) {
		if err := r.getCacheByEmployeeID(ctx, employeeID, &employee); err == nil {
			return &employee, nil
		}
	}

	if err := r.getDB(ctx).First(&employee, "employee_id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to find employee by employeeId", err, "employeeId", employeeID)
	}

	if !r.inTransaction(ctx) {
		if err := r.addEmployeeToCache(ctx, &employee); err != nil {
			log.Warn("failed to add employee to cache", "employeeId", employeeID, "error", err)
		}
	}

	return &employee, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *Employee) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(employee).Error; err != nil {
		return log.Err("failed to create employee", err, "employeeId", employee.EmployeeID)
	}

	if !r.inTransaction(ctx) {
		if err := r.addEmployeeToCache(ctx, employee); err != nil {
			log.Warn("failed to add employee to cache", "employeeId", employee.EmployeeID, "error", err)
		}
	}

	return nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *Employee) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(employee).Error; err != nil {
		return log.Err("failed to update employee", err, "employeeId", employee.EmployeeID)
	}

	if !r.inTransaction(ctx) {
		if err := r.addEmployeeToCache(ctx, employee); err != nil {
			log.Warn("failed to update employee in cache", "employeeId", employee.EmployeeID, "error", err)
		}
	} else if err := database.NewCacheBuilder(r.db.Cache.Employee, employee.EmployeeID).Delete(); err != nil {
		log.Warn("failed to invalidate employee cache", "employeeId", employee.EmployeeID, "error", err)
	}

	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	var employee Employee
	if err := r.getDB(ctx).First(&employee, "id = ?", id).Error; err != nil {
		return log.Err("failed to get employee for delete", err, "id", id)
	}

	if err := r.getDB(ctx).Delete(&Employee{}, "id = ?", id).Error; err != nil {
		return log.Err("failed to delete employee", err, "id", id)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Employee, employee.EmployeeID).Delete(); err != nil {
		log.Warn("failed to remove employee from cache", "employeeId", employee.EmployeeID, "error", err)
	}

	return nil
}

func (r *employeeRepository) GetAll(ctx context.Context) ([]*Employee, error) {
	log := r.log.Function("GetAll")

	var employees []*Employee
	if err := r.getDB(ctx).Order("employee_id ASC").Find(&employees).Error; err != nil {
		return nil, log.Err("failed to get all employees", err)
	}

	return employees, nil
}

func (r *employeeRepository) GetByImportBatch(ctx context.Context, batchToken string) ([]*Employee, error) {
	log := r.log.Function("GetByImportBatch")

	var employees []*Employee
	if err := r.getDB(ctx).Where("import_batch_id = ?", batchToken).Find(&employees).Error; err != nil {
		return nil, log.Err("failed to get employees by import batch", err, "batchToken", batchToken)
	}

	return employees, nil
}

func (r *employeeRepository) getCacheByEmployeeID(ctx context.Context, employeeID string, employee *Employee) error {
	found, err := database.NewCacheBuilder(r.db.Cache.Employee, employeeID).
		WithContext(ctx).
		Get(employee)
	if err != nil {
		return r.log.Function("getCacheByEmployeeID").
			Err("failed to get employee from cache", err, "employeeId", employeeID)
	}

	if !found {
		return r.log.Function("getCacheByEmployeeID").
			Error("employee not found in cache", "employeeId", employeeID)
	}

	return nil
}

func (r *employeeRepository) addEmployeeToCache(ctx context.Context, employee *Employee) error {
	if err := database.NewCacheBuilder(r.db.Cache.Employee, employee.EmployeeID).
		WithStruct(employee).
		WithTTL(EMPLOYEE_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addEmployeeToCache").
			Err("failed to add employee to cache", err, "employeeId", employee.EmployeeID)
	}
	return nil
}
