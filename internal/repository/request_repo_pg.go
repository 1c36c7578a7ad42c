package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avidato/farehold/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrRequestNotFound is returned for updates against an unknown request id.
var ErrRequestNotFound = errors.New("flight request not found")

type RequestRepository interface {
	Insert(ctx context.Context, req *domain.FlightRequest) error
	// List returns requests newest-first; pass "" to skip the status filter.
	List(ctx context.Context, status domain.RequestStatus) ([]domain.FlightRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.FlightRequest, error)
	UpdateTravelerInfo(ctx context.Context, id string, travelerInfo json.RawMessage) (*domain.FlightRequest, error)
	UpdateSearchQuery(ctx context.Context, id string, query json.RawMessage) (*domain.FlightRequest, error)
	UpdatePreferences(ctx context.Context, id string, prefs []domain.BookingPreference) (*domain.FlightRequest, error)
	// FindActiveByDedupKey returns an existing active or held request with the
	// same dedup key, or nil when there is none.
	FindActiveByDedupKey(ctx context.Context, key string) (*domain.FlightRequest, error)
}

type PGRequestRepository struct {
	db *pgxpool.Pool
}

func NewRequestRepository(db *pgxpool.Pool) RequestRepository {
	return &PGRequestRepository{db: db}
}

const requestColumns = `id, submitted_by, search_query, traveler_info, booking_preferences, matched_preference, status, pnr_number, dedup_key, last_checked_at, submitted_at`

func (r *PGRequestRepository) Insert(ctx context.Context, req *domain.FlightRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	prefs, err := json.Marshal(req.BookingPreferences)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	var matched []byte
	if req.MatchedPreference != nil {
		if matched, err = json.Marshal(req.MatchedPreference); err != nil {
			return fmt.Errorf("encode matched preference: %w", err)
		}
	}

	err = r.db.QueryRow(ctx, `INSERT INTO flight_requests
		(id, submitted_by, search_query, traveler_info, booking_preferences, matched_preference, status, pnr_number, dedup_key, last_checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING submitted_at`,
		req.ID, req.SubmittedBy, req.SearchQuery, req.TravelerInfo, prefs, matched,
		req.Status, req.PNRNumber, req.DedupKey, req.LastCheckedAt).
		Scan(&req.SubmittedAt)
	if err != nil {
		return fmt.Errorf("insert flight request: %w", err)
	}
	return nil
}

func (r *PGRequestRepository) List(ctx context.Context, status domain.RequestStatus) ([]domain.FlightRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM flight_requests ORDER BY submitted_at DESC`
	args := []any{}
	if status != "" {
		query = `SELECT ` + requestColumns + ` FROM flight_requests WHERE status=$1 ORDER BY submitted_at DESC`
		args = append(args, status)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list flight requests: %w", err)
	}
	defer rows.Close()

	var requests []domain.FlightRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func (r *PGRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.FlightRequest, error) {
	return r.updateReturning(ctx, `UPDATE flight_requests SET status=$1 WHERE id=$2 RETURNING `+requestColumns, status, id)
}

func (r *PGRequestRepository) UpdateTravelerInfo(ctx context.Context, id string, travelerInfo json.RawMessage) (*domain.FlightRequest, error) {
	return r.updateReturning(ctx, `UPDATE flight_requests SET traveler_info=$1 WHERE id=$2 RETURNING `+requestColumns, travelerInfo, id)
}

func (r *PGRequestRepository) UpdateSearchQuery(ctx context.Context, id string, query json.RawMessage) (*domain.FlightRequest, error) {
	return r.updateReturning(ctx, `UPDATE flight_requests SET search_query=$1 WHERE id=$2 RETURNING `+requestColumns, query, id)
}

func (r *PGRequestRepository) UpdatePreferences(ctx context.Context, id string, prefs []domain.BookingPreference) (*domain.FlightRequest, error) {
	encoded, err := json.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("encode preferences: %w", err)
	}
	return r.updateReturning(ctx, `UPDATE flight_requests SET booking_preferences=$1 WHERE id=$2 RETURNING `+requestColumns, encoded, id)
}

func (r *PGRequestRepository) FindActiveByDedupKey(ctx context.Context, key string) (*domain.FlightRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM flight_requests
		WHERE dedup_key=$1 AND status = ANY($2) ORDER BY submitted_at DESC LIMIT 1`,
		key, []string{string(domain.StatusActive), string(domain.StatusHeld)})
	req, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return req, nil
}

func (r *PGRequestRepository) updateReturning(ctx context.Context, query string, args ...any) (*domain.FlightRequest, error) {
	req, err := scanRequest(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

func scanRequest(row pgx.Row) (*domain.FlightRequest, error) {
	var (
		req     domain.FlightRequest
		prefs   []byte
		matched []byte
	)
	if err := row.Scan(&req.ID, &req.SubmittedBy, &req.SearchQuery, &req.TravelerInfo,
		&prefs, &matched, &req.Status, &req.PNRNumber, &req.DedupKey,
		&req.LastCheckedAt, &req.SubmittedAt); err != nil {
		return nil, err
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &req.BookingPreferences); err != nil {
			return nil, fmt.Errorf("decode preferences: %w", err)
		}
	}
	if len(matched) > 0 {
		if err := json.Unmarshal(matched, &req.MatchedPreference); err != nil {
			return nil, fmt.Errorf("decode matched preference: %w", err)
		}
	}
	return &req, nil
}

var _ RequestRepository = (*PGRequestRepository)(nil)
