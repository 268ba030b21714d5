package handlers

import (
	"errors"

	"pulse360/internal/app"
	employeesController "pulse360/internal/controllers/employees"
	"pulse360/internal/logger"
	. "pulse360/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	Handler
	controller *employeesController.EmployeeController
}

func NewEmployeeHandler(app app.App, router fiber.Router) *EmployeeHandler {
	log := logger.New("handlers").File("employee_handler")
	return &EmployeeHandler{
		controller: app.EmployeeController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *EmployeeHandler) Register() {
	employees := h.router.Group("/employees")
	employees.Post("/", h.createEmployee)
	employees.Get("/", h.getEmployees)
	employees.Get("/:id", h.getEmployee)
	employees.Put("/:id", h.updateEmployee)
	employees.Delete("/:id", h.deleteEmployee)
}

func (h *EmployeeHandler) createEmployee(c *fiber.Ctx) error {
	log := h.log.Function("createEmployee")

	var request CreateEmployeeRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse employee request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse employee request"})
	}

	employee, err := h.controller.Create(c.Context(), request)
	if err != nil {
		log.Er("failed to create employee", err)

		status := fiber.StatusInternalServerError
		if errors.Is(err, employeesController.ErrEmployeeExists) ||
			errors.Is(err, employeesController.ErrInvalidEmail) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).
			JSON(fiber.Map{"message": "failed to create employee", "error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "employee": employee})
}

func (h *EmployeeHandler) getEmployees(c *fiber.Ctx) error {
	log := h.log.Function("getEmployees")

	if batchToken := c.Query("importBatch"); batchToken != "" {
		employees, err := h.controller.GetByImportBatch(c.Context(), batchToken)
		if err != nil {
			log.Er("failed to get employees by import batch", err, "batchToken", batchToken)
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"message": "failed to get employees", "error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "success", "employees": employees})
	}

	employees, err := h.controller.GetAll(c.Context())
	if err != nil {
		log.Er("failed to get employees", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get employees", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "employees": employees})
}

func (h *EmployeeHandler) getEmployee(c *fiber.Ctx) error {
	log := h.log.Function("getEmployee")

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "employee ID is required"})
	}

	employee, err := h.controller.GetByID(c.Context(), id)
	if err != nil {
		log.Er("failed to get employee", err, "id", id)
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "employee not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "employee": employee})
}

func (h *EmployeeHandler) updateEmployee(c *fiber.Ctx) error {
	log := h.log.Function("updateEmployee")

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "employee ID is required"})
	}

	var request UpdateEmployeeRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse employee request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse employee request"})
	}

	employee, err := h.controller.Update(c.Context(), id, request)
	if err != nil {
		log.Er("failed to update employee", err, "id", id)

		status := fiber.StatusInternalServerError
		if errors.Is(err, employeesController.ErrInvalidEmail) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).
			JSON(fiber.Map{"message": "failed to update employee", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "employee": employee})
}

func (h *EmployeeHandler) deleteEmployee(c *fiber.Ctx) error {
	log := h.log.Function("deleteEmployee")

	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "employee ID is required"})
	}

	if err := h.controller.Delete(c.Context(), id); err != nil {
		log.Er("failed to delete employee", err, "id", id)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to delete employee", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success"})
}
