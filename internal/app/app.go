package app

import (
	"pulse360/config"
	"pulse360/internal/database"
	"pulse360/internal/events"
	"pulse360/internal/handlers/middleware"
	"pulse360/internal/logger"
	"pulse360/internal/repositories"
	"pulse360/internal/services"
	"pulse360/internal/websockets"

	employeesController "pulse360/internal/controllers/employees"
	importsController "pulse360/internal/controllers/imports"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Config     config.Config

	// Services
	TransactionService *services.TransactionService

	// Repositories
	EmployeeRepo repositories.EmployeeRepository
	BatchRepo    repositories.ImportBatchRepository

	// Controllers
	ImportController   *importsController.ImportController
	EmployeeController *employeesController.EmployeeController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	// Initialize services
	transactionService := services.NewTransactionService(db)

	// Initialize repositories
	employeeRepo := repositories.NewEmployee(db)
	batchRepo := repositories.NewImportBatch(db)

	middleware := middleware.New(db, eventBus, config)

	websocket, err := websockets.New(db, eventBus, config)
	if err != nil {
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	// Initialize controllers with repositories and services
	importController := importsController.New(employeeRepo, batchRepo, transactionService, websocket)
	employeeController := employeesController.New(employeeRepo)

	app := &App{
		Database:           db,
		Config:             config,
		Middleware:         middleware,
		TransactionService: transactionService,
		EmployeeRepo:       employeeRepo,
		BatchRepo:          batchRepo,
		ImportController:   importController,
		EmployeeController: employeeController,
		Websocket:          websocket,
		EventBus:           eventBus,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Websocket,
		a.EventBus,
		a.TransactionService,
		a.ImportController,
		a.EmployeeController,
		a.EmployeeRepo,
		a.BatchRepo,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
