package importsController

import (
	"context"
	"encoding/json"
	"pulse360/internal/logger"
	. "pulse360/internal/models"
	"pulse360/internal/repositories"
	"pulse360/internal/services"
	"pulse360/internal/utils"
	"time"

	"github.com/google/uuid"
)

// ProgressNotifier pushes import lifecycle events to interested clients.
// Declared here to avoid an import cycle with the websocket manager.
type ProgressNotifier interface {
	SendImportProgress(batchToken string, data map[string]any)
	SendImportComplete(batchToken string, result map[string]any)
	SendImportError(batchToken string, errorMsg string)
}

type ImportController struct {
	parser             *utils.FileParser
	normalizer         *SchemaNormalizer
	validator          *RowValidator
	employeeRepo       repositories.EmployeeRepository
	batchRepo          repositories.ImportBatchRepository
	transactionService *services.TransactionService
	notifier           ProgressNotifier
	log                logger.Logger
}

func New(
	employeeRepo repositories.EmployeeRepository,
	batchRepo repositories.ImportBatchRepository,
	transactionService *services.TransactionService,
	notifier ProgressNotifier,
) *ImportController {
	return &ImportController{
		parser:             utils.NewFileParser(),
		normalizer:         NewSchemaNormalizer(),
		validator:          NewRowValidator(),
		employeeRepo:       employeeRepo,
		batchRepo:          batchRepo,
		transactionService: transactionService,
		notifier:           notifier,
		log:                logger.New("ImportController"),
	}
}

// ImportFile runs the full pipeline for one uploaded file: parse, normalize,
// validate, dedupe, reconcile. Parsing and mapping failures are batch-level
// and abort the run; row-level failures accumulate into the result. Rows are
// processed strictly in file order so the first occurrence of an employeeId
// wins and row numbers in diagnostics stay stable.
func (c *ImportController) ImportFile(ctx context.Context, data []byte, opts ImportOptions) (*ImportResult, error) {
	log := c.log.Function("ImportFile")

	batchToken := uuid.New().String()
	batch := &ImportBatch{
		BatchToken: batchToken,
		FileName:   opts.FileName,
		Mode:       opts.Mode,
		Status:     ImportBatchStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	if err := c.batchRepo.Create(ctx, batch); err != nil {
		return nil, log.Err("failed to create import batch", err, "fileName", opts.FileName)
	}

	result, err := c.runPipeline(ctx, data, opts, batchToken)
	if err != nil {
		c.finalizeBatch(ctx, batch, result, err)
		c.notifier.SendImportError(batchToken, err.Error())
		return nil, err
	}

	c.finalizeBatch(ctx, batch, result, nil)
	c.notifier.SendImportComplete(batchToken, map[string]any{
		"batchToken":       batchToken,
		"totalRecords":     result.TotalRecords,
		"newEmployees":     result.NewEmployees,
		"updatedEmployees": result.UpdatedEmployees,
		"errors":           len(result.Errors),
		"duplicates":       len(result.Duplicates),
	})

	log.Info("import completed",
		"batchToken", batchToken,
		"totalRecords", result.TotalRecords,
		"newEmployees", result.NewEmployees,
		"updatedEmployees", result.UpdatedEmployees,
		"errors", len(result.Errors),
		"duplicates", len(result.Duplicates))

	return result, nil
}

func (c *ImportController) runPipeline(ctx context.Context, data []byte, opts ImportOptions, batchToken string) (*ImportResult, error) {
	log := c.log.Function("runPipeline")

	c.notifier.SendImportProgress(batchToken, map[string]any{
		"phase":   "parsing",
		"message": "Parsing uploaded file...",
	})

	startRow := opts.StartRow
	if startRow < 1 {
		startRow = 1
	}

	var (
		parsed *utils.ParsedFile
		err    error
	)
	if opts.ColumnMode {
		parsed, err = c.parser.ParseExcelColumns(data, startRow)
	} else {
		parsed, err = c.parser.ParseFile(data, opts.FileName, startRow)
	}
	if err != nil {
		return nil, log.Err("failed to parse file", err, "fileName", opts.FileName)
	}

	c.notifier.SendImportProgress(batchToken, map[string]any{
		"phase":   "normalizing",
		"message": "Normalizing column headers...",
		"rows":    len(parsed.Rows),
	})

	var records []CanonicalRecord
	if opts.Mapping != nil {
		records, err = c.normalizer.NormalizeWithMapping(parsed, opts.Mapping)
		if err != nil {
			return nil, err
		}
	} else {
		records = c.normalizer.Normalize(parsed)
	}

	result := &ImportResult{
		BatchToken:   batchToken,
		TotalRecords: len(records),
		Errors:       []RowError{},
		Duplicates:   []DuplicateEntry{},
	}

	c.notifier.SendImportProgress(batchToken, map[string]any{
		"phase":   "validating",
		"message": "Validating and deduplicating records...",
	})

	// Validation then intra-batch dedup, in file order. First occurrence of
	// an employeeId wins; later rows are rejected, not merged.
	seen := make(map[string]bool, len(records))
	var survivors []*CanonicalRecord
	for i := range records {
		record := &records[i]

		if err := c.validator.Validate(record); err != nil {
			result.Errors = append(result.Errors, RowError{
				Row:   record.SourceRowNumber,
				Error: err.Error(),
			})
			continue
		}

		if seen[record.EmployeeID] {
			result.Duplicates = append(result.Duplicates, DuplicateEntry{
				Row:        record.SourceRowNumber,
				EmployeeID: record.EmployeeID,
				Message:    "duplicate employeeId within batch",
			})
			continue
		}
		seen[record.EmployeeID] = true

		survivors = append(survivors, record)
	}

	c.notifier.SendImportProgress(batchToken, map[string]any{
		"phase":   "reconciling",
		"message": "Reconciling records against the employee store...",
		"records": len(survivors),
	})

	// The whole reconciliation step runs on one transaction lease. In atomic
	// mode any store error inside rolls everything back; in best-effort mode
	// store errors are recorded per row and the rest of the batch commits.
	err = c.transactionService.Execute(ctx, func(txCtx context.Context) error {
		return c.reconcile(txCtx, survivors, opts, batchToken, result)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *ImportController) reconcile(ctx context.Context, records []*CanonicalRecord, opts ImportOptions, batchToken string, result *ImportResult) error {
	log := c.log.Function("reconcile")

	for _, record := range records {
		existing, err := c.employeeRepo.FindByEmployeeID(ctx, record.EmployeeID)
		if err != nil {
			if opts.Mode == ImportModeAtomic {
				return log.Err("atomic batch aborted by row error", err,
					"row", record.SourceRowNumber, "employeeId", record.EmployeeID)
			}
			result.Errors = append(result.Errors, RowError{
				Row:   record.SourceRowNumber,
				Error: "store lookup failed: " + err.Error(),
			})
			continue
		}

		if existing == nil {
			if err := c.createEmployee(ctx, record, batchToken); err != nil {
				if opts.Mode == ImportModeAtomic {
					return log.Err("atomic batch aborted by row error", err,
						"row", record.SourceRowNumber, "employeeId", record.EmployeeID)
				}
				log.Warn("failed to create employee, skipping row",
					"row", record.SourceRowNumber, "employeeId", record.EmployeeID, "error", err)
				result.Errors = append(result.Errors, RowError{
					Row:   record.SourceRowNumber,
					Error: "failed to create employee: " + err.Error(),
				})
				continue
			}
			result.NewEmployees++
			continue
		}

		if !opts.UpdateExisting {
			result.Duplicates = append(result.Duplicates, DuplicateEntry{
				Row:        record.SourceRowNumber,
				EmployeeID: record.EmployeeID,
				Message:    "employee already exists",
			})
			continue
		}

		if err := c.updateEmployee(ctx, existing, record, batchToken); err != nil {
			if opts.Mode == ImportModeAtomic {
				return log.Err("atomic batch aborted by row error", err,
					"row", record.SourceRowNumber, "employeeId", record.EmployeeID)
			}
			log.Warn("failed to update employee, skipping row",
				"row", record.SourceRowNumber, "employeeId", record.EmployeeID, "error", err)
			result.Errors = append(result.Errors, RowError{
				Row:   record.SourceRowNumber,
				Error: "failed to update employee: " + err.Error(),
			})
			continue
		}
		result.UpdatedEmployees++
	}

	return nil
}

func (c *ImportController) createEmployee(ctx context.Context, record *CanonicalRecord, batchToken string) error {
	now := time.Now().UTC()
	employee := &Employee{
		EmployeeID:           record.EmployeeID,
		FirstName:            record.FirstName,
		LastName:             record.LastName,
		Email:                record.Email,
		JobTitle:             record.JobTitle,
		MainFunction:         record.MainFunction,
		SubFunction:          record.SubFunction,
		LevelIdentification:  record.LevelIdentification,
		ManagerID:            record.ManagerID,
		SecondLevelManagerID: record.SecondLevelManagerID,
		Role:                 record.Role,
		Status:               EmployeeStatusActive,
		ImportBatchID:        batchToken,
		ImportedAt:           &now,
	}
	return c.employeeRepo.Create(ctx, employee)
}

// updateEmployee overwrites every mutable field with the normalized values,
// empty ones included: in the bulk path an absent cell cannot be told apart
// from an intentional clearing. The per-record update API keeps prior values
// instead (employees controller).
func (c *ImportController) updateEmployee(ctx context.Context, existing *Employee, record *CanonicalRecord, batchToken string) error {
	now := time.Now().UTC()
	existing.FirstName = record.FirstName
	existing.LastName = record.LastName
	existing.Email = record.Email
	existing.JobTitle = record.JobTitle
	existing.MainFunction = record.MainFunction
	existing.SubFunction = record.SubFunction
	existing.LevelIdentification = record.LevelIdentification
	existing.ManagerID = record.ManagerID
	existing.SecondLevelManagerID = record.SecondLevelManagerID
	existing.Role = record.Role
	existing.ImportBatchID = batchToken
	existing.LastUpdatedAt = &now
	return c.employeeRepo.Update(ctx, existing)
}

// finalizeBatch records the run outcome on the persisted batch. Called on
// every exit path; a failed run still leaves an audit row behind.
func (c *ImportController) finalizeBatch(ctx context.Context, batch *ImportBatch, result *ImportResult, runErr error) {
	log := c.log.Function("finalizeBatch")

	now := time.Now().UTC()
	batch.CompletedAt = &now

	if runErr != nil {
		if batch.Mode == ImportModeAtomic {
			batch.Status = ImportBatchStatusRolledBack
		} else {
			batch.Status = ImportBatchStatusFailed
		}
	} else {
		batch.Status = ImportBatchStatusCommitted
		batch.TotalRecords = result.TotalRecords
		batch.NewEmployees = result.NewEmployees
		batch.UpdatedEmployees = result.UpdatedEmployees
		batch.ErrorCount = len(result.Errors)
		batch.DuplicateCount = len(result.Duplicates)

		if encoded, err := json.Marshal(result.Errors); err == nil {
			batch.Errors = string(encoded)
		}
		if encoded, err := json.Marshal(result.Duplicates); err == nil {
			batch.Duplicates = string(encoded)
		}
	}

	if err := c.batchRepo.Update(ctx, batch); err != nil {
		log.Er("failed to finalize import batch", err, "batchToken", batch.BatchToken)
	}
}

// GetBatchByToken returns the persisted summary of a past import run.
func (c *ImportController) GetBatchByToken(ctx context.Context, batchToken string) (*ImportBatch, error) {
	return c.batchRepo.GetByToken(ctx, batchToken)
}

// GetAllBatches lists past import runs, newest first.
func (c *ImportController) GetAllBatches(ctx context.Context) ([]*ImportBatch, error) {
	return c.batchRepo.GetAll(ctx)
}
