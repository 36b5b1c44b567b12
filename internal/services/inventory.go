package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndinv/sql-inventory/internal/models"
	"github.com/ndinv/sql-inventory/internal/store"
)

// Recorder receives build events. The metrics package implements it.
type Recorder interface {
	BuildFinished(inv *models.Inventory, duration time.Duration, err error)
	InputFailed(input string)
	RowSkipped(input string, reason string)
}

type noopRecorder struct{}

func (noopRecorder) BuildFinished(*models.Inventory, time.Duration, error) {}
func (noopRecorder) InputFailed(string)                                    {}
func (noopRecorder) RowSkipped(string, string)                             {}

type InventoryService struct {
	store    *store.Store
	inputs   []models.Input
	mapper   *RowMapper
	recorder Recorder
}

func NewInventoryService(st *store.Store, inputs []models.Input) *InventoryService {
	return &InventoryService{
		store:    st,
		inputs:   inputs,
		mapper:   NewRowMapper(),
		recorder: noopRecorder{},
	}
}

func (s *InventoryService) WithRecorder(r Recorder) *InventoryService {
	if r != nil {
		s.recorder = r
	}
	return s
}

func (s *InventoryService) Inputs() []models.Input {
	return s.inputs
}

// Build runs every input in order on one connection and folds the rows into
// an inventory. A failed required input aborts the build with its QueryError;
// a failed optional input is logged and contributes nothing.
func (s *InventoryService) Build(ctx context.Context) (inv *models.Inventory, err error) {
	log := zap.S().Named("inventory").With("build_id", uuid.NewString())
	start := time.Now()
	defer func() {
		s.recorder.BuildFinished(inv, time.Since(start), err)
	}()

	conn, err := s.store.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire database connection: %w", err)
	}
	defer conn.Close()

	builder := NewInventoryBuilder()
	for _, input := range s.inputs {
		rows, err := s.store.Executor().Execute(ctx, conn, input)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if input.IsRequired() {
				log.Errorw("required input failed", "input", input.Name, "error", err)
				return nil, err
			}
			log.Warnw("optional input failed, skipping", "input", input.Name, "error", err)
			builder.RecordFailedInput(input.Name)
			s.recorder.InputFailed(input.Name)
			continue
		}

		builder.RecordInput(len(rows))
		skippedRows := 0
		for _, row := range rows {
			res := s.mapper.Map(input, row)
			if res.Skipped() {
				skippedRows++
				builder.Skip(res.Skip)
				s.recorder.RowSkipped(input.Name, string(res.Skip.Reason))
				log.Debugw("row skipped", "input", input.Name, "reason", res.Skip.Reason, "detail", res.Skip.Detail)
				continue
			}
			builder.Add(res.Host, res.Groups)
		}
		log.Debugw("input processed", "input", input.Name, "rows", len(rows), "skipped", skippedRows)
	}

	inv = builder.Finalize()
	log.Infow("inventory built",
		"hosts", len(inv.Hosts),
		"groups", len(inv.Groups),
		"rows", inv.Stats.Rows,
		"skipped_rows", inv.Stats.SkippedRows,
		"failed_inputs", inv.Stats.FailedInputs,
		"duration", time.Since(start))

	return inv, nil
}
