package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/aifa-auth/internal/logger"
	"github.com/MKhiriev/aifa-auth/models"
	"github.com/google/uuid"
)

// sessionColumns is the column order shared by every session query here.
var sessionColumns = []string{
	"session_id", "user_id", "token", "expires_at", "ip_address", "user_agent", "created_at",
}

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. Queries are built with squirrel; the delete paths
// take criteria that vary per caller (token, owner, expiry cutoff).
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
	sq     sq.StatementBuilderType
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
		sq:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// CreateSession persists one session row. The session id is assigned here
// (UUID); the token must already be generated by the caller — the store
// never invents credentials.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	session.SessionID = uuid.NewString()

	query, args, err := r.sq.
		Insert(session.TableName()).
		Columns(sessionColumns[:len(sessionColumns)-1]...).
		Values(session.SessionID, session.UserID, session.Token, session.ExpiresAt, session.IPAddress, session.UserAgent).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&session.CreatedAt); err != nil {
		log.Err(err).Str("func", "*sessionRepository.CreateSession").Msg("error: inserting session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return session, nil
}

// FindSessionByToken resolves a bearer token. A matching row past its
// expiry cutoff yields [ErrSessionExpired], never the session itself —
// expiry is an absolute cutoff, not advisory.
func (r *sessionRepository) FindSessionByToken(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sq.
		Select(sessionColumns...).
		From(models.Session{}.TableName()).
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.Session
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&found.SessionID,
		&found.UserID,
		&found.Token,
		&found.ExpiresAt,
		&found.IPAddress,
		&found.UserAgent,
		&found.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrNoSessionWasFound
		}
		log.Err(err).Str("func", "*sessionRepository.FindSessionByToken").Msg("error: scanning session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if found.Expired(time.Now()) {
		return models.Session{}, ErrSessionExpired
	}

	return found, nil
}

// DeleteSession removes the session for the given token. Zero rows affected
// is not an error: the token was already gone, which is what the caller
// wanted.
func (r *sessionRepository) DeleteSession(ctx context.Context, token string) error {
	_, err := r.deleteWhere(ctx, sq.Eq{"token": token})
	return err
}

// DeleteSessionsForUser removes every session owned by userID.
func (r *sessionRepository) DeleteSessionsForUser(ctx context.Context, userID int64) (int64, error) {
	return r.deleteWhere(ctx, sq.Eq{"user_id": userID})
}

// DeleteExpiredSessions removes every session expiring at or before the
// cutoff. Called by the periodic sweeper.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	return r.deleteWhere(ctx, sq.LtOrEq{"expires_at": before})
}

// deleteWhere runs a DELETE with the given predicate and returns the number
// of rows removed.
func (r *sessionRepository) deleteWhere(ctx context.Context, pred any) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sq.
		Delete(models.Session{}.TableName()).
		Where(pred).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*sessionRepository.deleteWhere").Msg("error: executing delete")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
