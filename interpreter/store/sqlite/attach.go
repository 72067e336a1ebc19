package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/interpreter"
	"github.com/frobware/go-ipa/interpreter/store"
)

// SaveAttach appends an attach record.
func (s *sqliteStore) SaveAttach(ctx context.Context, rec interpreter.AttachRecord) error {
	attached := rec.AttachedAt
	if attached.IsZero() {
		attached = time.Now()
	}

	start := time.Now()
	_, err := s.stmtSaveAttach.ExecContext(ctx,
		rec.Revision.String(), uint32(rec.HWType), rec.Mode.String(), rec.Session,
		attached.UTC().Format(time.RFC3339Nano))
	if err != nil {
		s.logger.Debug("sql", "stmt", "SaveAttach", "args", []any{rec.Revision, rec.HWType, rec.Mode, rec.Session}, "duration_ms", msec(time.Since(start)), "error", err)
		return fmt.Errorf("save attach: %w", err)
	}
	s.logger.Debug("sql", "stmt", "SaveAttach", "args", []any{rec.Revision, rec.HWType, rec.Mode, rec.Session}, "duration_ms", msec(time.Since(start)))
	return nil
}

// LatestAttach returns the most recent attach record.
func (s *sqliteStore) LatestAttach(ctx context.Context) (interpreter.AttachRecord, error) {
	start := time.Now()
	var (
		rec                 interpreter.AttachRecord
		revStr, modeStr, at string
		hw                  uint32
	)
	err := s.stmtLatestAttach.QueryRowContext(ctx).Scan(&revStr, &hw, &modeStr, &rec.Session, &at)
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug("sql", "stmt", "LatestAttach", "duration_ms", msec(time.Since(start)), "rows", 0)
		return interpreter.AttachRecord{}, fmt.Errorf("attach record: %w", store.ErrNotFound)
	}
	if err != nil {
		s.logger.Debug("sql", "stmt", "LatestAttach", "duration_ms", msec(time.Since(start)), "error", err)
		return interpreter.AttachRecord{}, err
	}
	s.logger.Debug("sql", "stmt", "LatestAttach", "duration_ms", msec(time.Since(start)), "rows", 1)

	if rec.Revision, err = ipa.ParseRevision(revStr); err != nil {
		return interpreter.AttachRecord{}, err
	}
	if rec.Mode, err = ipa.ParseHWMode(modeStr); err != nil {
		return interpreter.AttachRecord{}, err
	}
	if rec.AttachedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
		return interpreter.AttachRecord{}, fmt.Errorf("parse attached_at: %w", err)
	}
	rec.HWType = ipa.HWType(hw)
	return rec, nil
}
