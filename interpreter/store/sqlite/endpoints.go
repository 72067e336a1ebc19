package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/frobware/go-ipa"
	"github.com/frobware/go-ipa/interpreter/store"
)

// ----------------------------------------------------------------------------
// Endpoint Journal Operations
// ----------------------------------------------------------------------------

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEndpoint(r rowScanner) (ipa.EndpointStatus, error) {
	var (
		st                   ipa.EndpointStatus
		clientStr, stateStr  string
		configJSON, updated  string
		suspended, keepAwake bool
	)
	if err := r.Scan(&st.Pipe, &st.Handle, &clientStr, &st.Channel, &stateStr,
		&suspended, &keepAwake, &st.Session, &configJSON, &updated); err != nil {
		return ipa.EndpointStatus{}, err
	}

	client, err := ipa.ParseClient(clientStr)
	if err != nil {
		return ipa.EndpointStatus{}, fmt.Errorf("pipe %d: %w", st.Pipe, err)
	}
	state, err := ipa.ParseEndpointState(stateStr)
	if err != nil {
		return ipa.EndpointStatus{}, fmt.Errorf("pipe %d: %w", st.Pipe, err)
	}
	if err := json.Unmarshal([]byte(configJSON), &st.Config); err != nil {
		return ipa.EndpointStatus{}, fmt.Errorf("pipe %d: unmarshal config: %w", st.Pipe, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return ipa.EndpointStatus{}, fmt.Errorf("pipe %d: parse updated_at: %w", st.Pipe, err)
	}

	st.Client = client
	st.State = state
	st.Suspended = suspended
	st.KeepAwake = keepAwake
	st.UpdatedAt = updatedAt
	return st, nil
}

// GetEndpoint retrieves the endpoint journalled for pipe.
func (s *sqliteStore) GetEndpoint(ctx context.Context, pipe int) (ipa.EndpointStatus, error) {
	start := time.Now()
	st, err := scanEndpoint(s.stmtGetEndpoint.QueryRowContext(ctx, pipe))
	if errors.Is(err, sql.ErrNoRows) {
		s.logger.Debug("sql", "stmt", "GetEndpoint", "args", []any{pipe}, "duration_ms", msec(time.Since(start)), "rows", 0)
		return ipa.EndpointStatus{}, fmt.Errorf("endpoint on pipe %d: %w", pipe, store.ErrNotFound)
	}
	if err != nil {
		s.logger.Debug("sql", "stmt", "GetEndpoint", "args", []any{pipe}, "duration_ms", msec(time.Since(start)), "error", err)
		return ipa.EndpointStatus{}, err
	}
	s.logger.Debug("sql", "stmt", "GetEndpoint", "args", []any{pipe}, "duration_ms", msec(time.Since(start)), "rows", 1)
	return st, nil
}

// ListEndpoints returns every journalled endpoint ordered by pipe.
func (s *sqliteStore) ListEndpoints(ctx context.Context) ([]ipa.EndpointStatus, error) {
	start := time.Now()
	rows, err := s.stmtListEndpoints.QueryContext(ctx)
	if err != nil {
		s.logger.Debug("sql", "stmt", "ListEndpoints", "duration_ms", msec(time.Since(start)), "error", err)
		return nil, err
	}
	defer rows.Close()

	var result []ipa.EndpointStatus
	for rows.Next() {
		st, err := scanEndpoint(rows)
		if err != nil {
			s.logger.Debug("sql", "stmt", "ListEndpoints", "duration_ms", msec(time.Since(start)), "error", err)
			return nil, err
		}
		result = append(result, st)
	}
	if err := rows.Err(); err != nil {
		s.logger.Debug("sql", "stmt", "ListEndpoints", "duration_ms", msec(time.Since(start)), "error", err)
		return nil, err
	}

	s.logger.Debug("sql", "stmt", "ListEndpoints", "duration_ms", msec(time.Since(start)), "rows", len(result))
	return result, nil
}

// SaveEndpoint creates or replaces the journal entry for the
// endpoint's pipe.
func (s *sqliteStore) SaveEndpoint(ctx context.Context, st ipa.EndpointStatus) error {
	config, err := json.Marshal(st.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	updated := st.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	start := time.Now()
	result, err := s.stmtSaveEndpoint.ExecContext(ctx,
		st.Pipe, st.Handle, st.Client.String(), st.Channel, st.State.String(),
		st.Suspended, st.KeepAwake, st.Session, string(config),
		updated.UTC().Format(time.RFC3339Nano))
	if err != nil {
		s.logger.Debug("sql", "stmt", "SaveEndpoint", "args", []any{st.Pipe, st.Handle, st.Client, st.Channel, st.State}, "duration_ms", msec(time.Since(start)), "error", err)
		return fmt.Errorf("save endpoint: %w", err)
	}
	rows, _ := result.RowsAffected()
	s.logger.Debug("sql", "stmt", "SaveEndpoint", "args", []any{st.Pipe, st.Handle, st.Client, st.Channel, st.State}, "duration_ms", msec(time.Since(start)), "rows_affected", rows)

	return nil
}

// DeleteEndpoint removes the journal entry for pipe.
func (s *sqliteStore) DeleteEndpoint(ctx context.Context, pipe int) error {
	start := time.Now()
	result, err := s.stmtDeleteEndpoint.ExecContext(ctx, pipe)
	if err != nil {
		s.logger.Debug("sql", "stmt", "DeleteEndpoint", "args", []any{pipe}, "duration_ms", msec(time.Since(start)), "error", err)
		return fmt.Errorf("delete endpoint: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	s.logger.Debug("sql", "stmt", "DeleteEndpoint", "args", []any{pipe}, "duration_ms", msec(time.Since(start)), "rows_affected", rows)
	if rows == 0 {
		return fmt.Errorf("endpoint on pipe %d: %w", pipe, store.ErrNotFound)
	}

	return nil
}
