package employeesController

import (
	"context"
	"errors"
	"pulse360/internal/logger"
	. "pulse360/internal/models"
	"pulse360/internal/repositories"
	"pulse360/internal/utils"
	"time"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeExists   = errors.New("employee already exists")
	ErrInvalidEmail     = errors.New("invalid email address")
)

type EmployeeController struct {
	employeeRepo repositories.EmployeeRepository
	emailVal     *utils.EmailValidator
	log          logger.Logger
}

func New(employeeRepo repositories.EmployeeRepository) *EmployeeController {
	return &EmployeeController{
		employeeRepo: employeeRepo,
		emailVal:     utils.NewEmailValidator(),
		log:          logger.New("EmployeeController"),
	}
}

func (c *EmployeeController) GetAll(ctx context.Context) ([]*Employee, error) {
	return c.employeeRepo.GetAll(ctx)
}

func (c *EmployeeController) GetByID(ctx context.Context, id string) (*Employee, error) {
	return c.employeeRepo.GetByID(ctx, id)
}

func (c *EmployeeController) GetByEmployeeID(ctx context.Context, employeeID string) (*Employee, error) {
	employee, err := c.employeeRepo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return employee, nil
}

func (c *EmployeeController) GetByImportBatch(ctx context.Context, batchToken string) ([]*Employee, error) {
	return c.employeeRepo.GetByImportBatch(ctx, batchToken)
}

func (c *EmployeeController) Create(ctx context.Context, request CreateEmployeeRequest) (*Employee, error) {
	log := c.log.Function("Create")

	existing, err := c.employeeRepo.FindByEmployeeID(ctx, request.EmployeeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, log.Err("employee id already in use", ErrEmployeeExists, "employeeId", request.EmployeeID)
	}

	if request.Email != "" {
		check := c.emailVal.Validate(request.Email)
		if !check.IsValid {
			return nil, ErrInvalidEmail
		}
		request.Email = check.Normalized
	}

	now := time.Now().UTC()
	employee := &Employee{
		EmployeeID:           request.EmployeeID,
		FirstName:            request.FirstName,
		LastName:             request.LastName,
		Email:                request.Email,
		JobTitle:             request.JobTitle,
		MainFunction:         request.MainFunction,
		SubFunction:          request.SubFunction,
		LevelIdentification:  request.LevelIdentification,
		ManagerID:            request.ManagerID,
		SecondLevelManagerID: request.SecondLevelManagerID,
		Role:                 request.Role,
		Status:               EmployeeStatusActive,
		ImportedAt:           &now,
	}

	if err := c.employeeRepo.Create(ctx, employee); err != nil {
		return nil, log.Err("failed to create employee", err, "employeeId", request.EmployeeID)
	}

	return employee, nil
}

// Update applies a partial update: nil fields in the request keep the stored
// value, non-nil fields overwrite it (empty string clears). This differs from
// the bulk import path, which always overwrites.
func (c *EmployeeController) Update(ctx context.Context, id string, request UpdateEmployeeRequest) (*Employee, error) {
	log := c.log.Function("Update")

	employee, err := c.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get employee", err, "id", id)
	}

	if request.Email != nil && *request.Email != "" {
		check := c.emailVal.Validate(*request.Email)
		if !check.IsValid {
			return nil, ErrInvalidEmail
		}
		request.Email = &check.Normalized
	}

	applyIfSet(&employee.FirstName, request.FirstName)
	applyIfSet(&employee.LastName, request.LastName)
	applyIfSet(&employee.Email, request.Email)
	applyIfSet(&employee.JobTitle, request.JobTitle)
	applyIfSet(&employee.MainFunction, request.MainFunction)
	applyIfSet(&employee.SubFunction, request.SubFunction)
	applyIfSet(&employee.LevelIdentification, request.LevelIdentification)
	applyIfSet(&employee.ManagerID, request.ManagerID)
	applyIfSet(&employee.SecondLevelManagerID, request.SecondLevelManagerID)
	applyIfSet(&employee.Role, request.Role)
	applyIfSet(&employee.Status, request.Status)

	now := time.Now().UTC()
	employee.LastUpdatedAt = &now

	if err := c.employeeRepo.Update(ctx, employee); err != nil {
		return nil, log.Err("failed to update employee", err, "id", id)
	}

	return employee, nil
}

func (c *EmployeeController) Delete(ctx context.Context, id string) error {
	log := c.log.Function("Delete")

	if err := c.employeeRepo.Delete(ctx, id); err != nil {
		return log.Err("failed to delete employee", err, "id", id)
	}
	return nil
}

func applyIfSet(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
