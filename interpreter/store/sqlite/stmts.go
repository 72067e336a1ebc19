package sqlite

import (
	"context"
	"fmt"
)

// prepareStatements prepares all SQL statements for reuse.
func (s *sqliteStore) prepareStatements(ctx context.Context) error {
	if err := s.prepareEndpointStatements(ctx); err != nil {
		return err
	}
	return s.prepareAttachStatements(ctx)
}

// prepareEndpointStatements prepares all endpoint journal SQL statements.
func (s *sqliteStore) prepareEndpointStatements(ctx context.Context) error {
	var err error

	const sqlGetEndpoint = `
		SELECT pipe, handle, client, channel, state, suspended, keep_awake, session, config, updated_at
		FROM endpoints
		WHERE pipe = ?`
	if s.stmtGetEndpoint, err = s.db.PrepareContext(ctx, sqlGetEndpoint); err != nil {
		return fmt.Errorf("prepare GetEndpoint: %w", err)
	}

	const sqlSaveEndpoint = `
		INSERT INTO endpoints
		(pipe, handle, client, channel, state, suspended, keep_awake, session, config, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(pipe) DO UPDATE SET
		  handle = excluded.handle,
		  client = excluded.client,
		  channel = excluded.channel,
		  state = excluded.state,
		  suspended = excluded.suspended,
		  keep_awake = excluded.keep_awake,
		  session = excluded.session,
		  config = excluded.config,
		  updated_at = excluded.updated_at`
	if s.stmtSaveEndpoint, err = s.db.PrepareContext(ctx, sqlSaveEndpoint); err != nil {
		return fmt.Errorf("prepare SaveEndpoint: %w", err)
	}

	const sqlDeleteEndpoint = "DELETE FROM endpoints WHERE pipe = ?"
	if s.stmtDeleteEndpoint, err = s.db.PrepareContext(ctx, sqlDeleteEndpoint); err != nil {
		return fmt.Errorf("prepare DeleteEndpoint: %w", err)
	}

	const sqlListEndpoints = `
		SELECT pipe, handle, client, channel, state, suspended, keep_awake, session, config, updated_at
		FROM endpoints
		ORDER BY pipe`
	if s.stmtListEndpoints, err = s.db.PrepareContext(ctx, sqlListEndpoints); err != nil {
		return fmt.Errorf("prepare ListEndpoints: %w", err)
	}

	return nil
}

// prepareAttachStatements prepares the attach history SQL statements.
func (s *sqliteStore) prepareAttachStatements(ctx context.Context) error {
	var err error

	const sqlSaveAttach = `
		INSERT INTO attaches (revision, hw_type, mode, session, attached_at)
		VALUES (?, ?, ?, ?, ?)`
	if s.stmtSaveAttach, err = s.db.PrepareContext(ctx, sqlSaveAttach); err != nil {
		return fmt.Errorf("prepare SaveAttach: %w", err)
	}

	const sqlLatestAttach = `
		SELECT revision, hw_type, mode, session, attached_at
		FROM attaches
		ORDER BY id DESC
		LIMIT 1`
	if s.stmtLatestAttach, err = s.db.PrepareContext(ctx, sqlLatestAttach); err != nil {
		return fmt.Errorf("prepare LatestAttach: %w", err)
	}

	return nil
}
