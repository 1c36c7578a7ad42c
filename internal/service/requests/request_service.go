package requests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avidato/farehold/internal/amadeus"
	"github.com/avidato/farehold/internal/domain"
	"github.com/avidato/farehold/internal/kafka"
	"github.com/avidato/farehold/internal/metrics"
	"github.com/avidato/farehold/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// Submission error taxonomy. Handlers map these onto the user-facing result
// vocabulary; underlying detail stays in the server logs.
var (
	ErrInvalidForm   = errors.New("invalid form data")
	ErrDuplicate     = errors.New("duplicate active request")
	ErrSearchFailed  = errors.New("flight search failed")
	ErrBookingFailed = errors.New("booking failed")
	ErrStore         = errors.New("store operation failed")
)

type RequestUseCase interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
	List(ctx context.Context, status domain.RequestStatus) ([]domain.FlightRequest, error)
	UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.FlightRequest, error)
	UpdateTravelers(ctx context.Context, id string, travelerInfo json.RawMessage) (*domain.FlightRequest, error)
	UpdateSearchQuery(ctx context.Context, id string, query json.RawMessage) (*domain.FlightRequest, error)
	UpdatePreferences(ctx context.Context, id string, prefs []domain.BookingPreference) (*domain.FlightRequest, error)
}

// Provider is the slice of the flight-provider client the pipeline needs.
type Provider interface {
	Token(ctx context.Context) (string, error)
	SearchOffers(ctx context.Context, token string, query json.RawMessage) ([]amadeus.FlightOffer, error)
	CreateOrder(ctx context.Context, token string, offer json.RawMessage, travelers json.RawMessage) (*amadeus.Order, error)
}

type Cache interface {
	GetRequests(ctx context.Context, status domain.RequestStatus) ([]domain.FlightRequest, error)
	SetRequests(ctx context.Context, status domain.RequestStatus, requests []domain.FlightRequest) error
	InvalidateRequests(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Notifier interface {
	SendHeldNotification(ctx context.Context, recipient, pnr string, order *amadeus.Order)
}

// SubmitInput carries the raw form fields of one submission. Either
// BookingPreferences (JSON array) or the deprecated single-preference
// triple must be present.
type SubmitInput struct {
	Email              string
	SearchQuery        string
	TravelerInfo       string
	BookingPreferences string

	// Deprecated single-preference fields, folded into a one-element
	// preference list when BookingPreferences is empty.
	BookingClass string
	FlightNumber string
	CarrierCode  string
}

type SubmitResult struct {
	Status            string                    `json:"status"`
	Message           string                    `json:"message"`
	PNR               string                    `json:"pnr,omitempty"`
	MatchedPreference *domain.BookingPreference `json:"matched_preference,omitempty"`
}

type RequestService struct {
	requests    repository.RequestRepository
	provider    Provider
	cache       Cache
	producer    Producer
	notifier    Notifier
	metrics     *metrics.Metrics
	eventsTopic string
	validate    *validator.Validate
}

type RequestServiceOption func(*RequestService)

func WithCache(cache Cache) RequestServiceOption {
	return func(s *RequestService) { s.cache = cache }
}

func WithProducer(producer Producer, topic string) RequestServiceOption {
	return func(s *RequestService) { s.producer = producer; s.eventsTopic = topic }
}

func WithNotifier(notifier Notifier) RequestServiceOption {
	return func(s *RequestService) { s.notifier = notifier }
}

func WithMetrics(m *metrics.Metrics) RequestServiceOption {
	return func(s *RequestService) { s.metrics = m }
}

func NewRequestService(requests repository.RequestRepository, provider Provider, opts ...RequestServiceOption) *RequestService {
	service := &RequestService{
		requests: requests,
		provider: provider,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// submission is a validated, decoded form submission.
type submission struct {
	email       string
	searchQuery json.RawMessage
	travelers   json.RawMessage
	prefs       []domain.BookingPreference
}

// Submit runs the whole pipeline synchronously: validate, dedup-check,
// exchange credentials, search, match, book, persist, notify. Nothing is
// persisted before validation succeeds or when authentication fails; any
// failure after a token was obtained leaves an auditable error row.
func (s *RequestService) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	sub, err := s.parseSubmission(input)
	if err != nil {
		return nil, err
	}

	dedupKey := domain.ComputeDedupKey(sub.email, sub.searchQuery, sub.prefs)
	existing, err := s.requests.FindActiveByDedupKey(ctx, dedupKey)
	if err != nil {
		log.Error().Err(err).Msg("dedup lookup failed")
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: request %s", ErrDuplicate, existing.ID)
	}

	token, err := s.provider.Token(ctx)
	if err != nil {
		s.countError("auth")
		return nil, err
	}

	started := time.Now()
	offers, err := s.provider.SearchOffers(ctx, token, sub.searchQuery)
	s.observeProvider(started)
	if err != nil {
		s.countError("search")
		_, _ = s.persistOutcome(ctx, sub, dedupKey, domain.StatusError, nil, nil)
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	offer, matched := amadeus.FindMatch(offers, sub.prefs)
	if offer == nil {
		if _, err := s.persistOutcome(ctx, sub, dedupKey, domain.StatusActive, nil, nil); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStore, err)
		}
		s.countSubmission(string(domain.StatusQueued))
		return &SubmitResult{
			Status:  string(domain.StatusQueued),
			Message: "Flight not available right now in any of your preferred options. Your request has been queued for future checking.",
		}, nil
	}

	started = time.Now()
	order, err := s.provider.CreateOrder(ctx, token, offer.Raw, sub.travelers)
	s.observeProvider(started)
	if err != nil {
		s.countError("booking")
		_, _ = s.persistOutcome(ctx, sub, dedupKey, domain.StatusError, matched, nil)
		return nil, fmt.Errorf("%w: %v", ErrBookingFailed, err)
	}

	pnr := order.PNR()
	var pnrValue *string
	if pnr != "" {
		pnrValue = &pnr
	}
	// The order exists with the provider at this point; an insert failure is
	// logged but must not turn a held booking into a user-facing error.
	if _, err := s.persistOutcome(ctx, sub, dedupKey, domain.StatusHeld, matched, pnrValue); err != nil {
		log.Error().Err(err).Str("pnr", pnr).Msg("persisting held request failed")
	}

	if pnr != "" && s.notifier != nil {
		s.notifier.SendHeldNotification(ctx, sub.email, pnr, order)
	}

	s.countSubmission(string(domain.StatusHeld))
	if s.metrics != nil {
		s.metrics.BookingsHeld.Inc()
	}

	message := "Ticket held, but no PNR returned."
	if pnr != "" {
		message = fmt.Sprintf("The ticket has been successfully held for your matched preference. PNR: %s. Confirmation email sent.", pnr)
	}
	return &SubmitResult{
		Status:            string(domain.StatusHeld),
		Message:           message,
		PNR:               pnr,
		MatchedPreference: matched,
	}, nil
}

func (s *RequestService) List(ctx context.Context, status domain.RequestStatus) ([]domain.FlightRequest, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRequests(ctx, status); err == nil && cached != nil {
			return cached, nil
		}
	}

	listed, err := s.requests.List(ctx, status)
	if err != nil {
		log.Error().Err(err).Str("status", string(status)).Msg("list flight requests failed")
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if s.cache != nil {
		_ = s.cache.SetRequests(ctx, status, listed)
	}
	return listed, nil
}

func (s *RequestService) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.FlightRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidForm, status)
	}
	return s.applyUpdate(ctx, "status", func() (*domain.FlightRequest, error) {
		return s.requests.UpdateStatus(ctx, id, status)
	})
}

func (s *RequestService) UpdateTravelers(ctx context.Context, id string, travelerInfo json.RawMessage) (*domain.FlightRequest, error) {
	if err := s.validateTravelers(travelerInfo); err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, "traveler_info", func() (*domain.FlightRequest, error) {
		return s.requests.UpdateTravelerInfo(ctx, id, travelerInfo)
	})
}

func (s *RequestService) UpdateSearchQuery(ctx context.Context, id string, query json.RawMessage) (*domain.FlightRequest, error) {
	if !json.Valid(query) {
		return nil, fmt.Errorf("%w: search query must be valid JSON", ErrInvalidForm)
	}
	return s.applyUpdate(ctx, "search_query", func() (*domain.FlightRequest, error) {
		return s.requests.UpdateSearchQuery(ctx, id, query)
	})
}

func (s *RequestService) UpdatePreferences(ctx context.Context, id string, prefs []domain.BookingPreference) (*domain.FlightRequest, error) {
	if err := s.validatePreferences(prefs); err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, "booking_preferences", func() (*domain.FlightRequest, error) {
		return s.requests.UpdatePreferences(ctx, id, prefs)
	})
}

func (s *RequestService) applyUpdate(ctx context.Context, field string, update func() (*domain.FlightRequest, error)) (*domain.FlightRequest, error) {
	updated, err := update()
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, err
		}
		log.Error().Err(err).Str("field", field).Msg("flight request update failed")
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRequests(ctx); err != nil {
			log.Warn().Err(err).Msg("cache invalidation failed")
		}
	}
	s.publish(ctx, kafkaEventType(updated.Status, true), updated)
	return updated, nil
}

// persistOutcome creates the single durable record of this submission and
// notifies downstream consumers. Called exactly once per submission.
func (s *RequestService) persistOutcome(ctx context.Context, sub *submission, dedupKey string, status domain.RequestStatus, matched *domain.BookingPreference, pnr *string) (*domain.FlightRequest, error) {
	req := &domain.FlightRequest{
		SubmittedBy:        sub.email,
		SearchQuery:        sub.searchQuery,
		TravelerInfo:       sub.travelers,
		BookingPreferences: sub.prefs,
		MatchedPreference:  matched,
		Status:             status,
		PNRNumber:          pnr,
		DedupKey:           dedupKey,
		LastCheckedAt:      time.Now().UTC(),
	}
	if err := s.requests.Insert(ctx, req); err != nil {
		log.Error().Err(err).Str("status", string(status)).Str("submitted_by", sub.email).Msg("insert flight request failed")
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateRequests(ctx); err != nil {
			log.Warn().Err(err).Msg("cache invalidation failed")
		}
	}
	s.publish(ctx, kafkaEventType(status, false), req)
	return req, nil
}

func (s *RequestService) parseSubmission(input SubmitInput) (*submission, error) {
	if err := s.validate.Var(input.Email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrInvalidForm)
	}

	query := json.RawMessage(input.SearchQuery)
	if len(query) == 0 || !json.Valid(query) {
		return nil, fmt.Errorf("%w: search query must be valid JSON", ErrInvalidForm)
	}

	travelers := json.RawMessage(input.TravelerInfo)
	if err := s.validateTravelers(travelers); err != nil {
		return nil, err
	}

	prefs, err := s.parsePreferences(input)
	if err != nil {
		return nil, err
	}

	return &submission{
		email:       input.Email,
		searchQuery: query,
		travelers:   travelers,
		prefs:       prefs,
	}, nil
}

func (s *RequestService) parsePreferences(input SubmitInput) ([]domain.BookingPreference, error) {
	if input.BookingPreferences == "" {
		// Deprecated convenience path: one preference from three flat fields.
		if input.BookingClass == "" || input.FlightNumber == "" || input.CarrierCode == "" {
			return nil, fmt.Errorf("%w: booking preferences are required", ErrInvalidForm)
		}
		return []domain.BookingPreference{{
			ID:           1,
			BookingClass: input.BookingClass,
			FlightNumber: input.FlightNumber,
			CarrierCode:  input.CarrierCode,
		}}, nil
	}

	var prefs []domain.BookingPreference
	if err := json.Unmarshal([]byte(input.BookingPreferences), &prefs); err != nil {
		return nil, fmt.Errorf("%w: booking preferences must be a valid array", ErrInvalidForm)
	}
	if err := s.validatePreferences(prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (s *RequestService) validatePreferences(prefs []domain.BookingPreference) error {
	if len(prefs) == 0 {
		return fmt.Errorf("%w: booking preferences must not be empty", ErrInvalidForm)
	}
	for _, pref := range prefs {
		if err := s.validate.Struct(pref); err != nil {
			return fmt.Errorf("%w: booking preferences must be a valid array", ErrInvalidForm)
		}
	}
	return nil
}

func (s *RequestService) validateTravelers(travelerInfo json.RawMessage) error {
	var travelers []domain.Traveler
	if err := json.Unmarshal(travelerInfo, &travelers); err != nil {
		return fmt.Errorf("%w: traveler info must be a valid JSON array", ErrInvalidForm)
	}
	if len(travelers) == 0 {
		return fmt.Errorf("%w: at least one traveler is required", ErrInvalidForm)
	}
	for _, traveler := range travelers {
		if err := s.validate.Struct(traveler); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
	}
	return nil
}

func (s *RequestService) publish(ctx context.Context, eventType string, req *domain.FlightRequest) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	pnr := ""
	if req.PNRNumber != nil {
		pnr = *req.PNRNumber
	}
	event := kafka.RequestEvent{
		Type:        eventType,
		RequestID:   req.ID,
		SubmittedBy: req.SubmittedBy,
		Status:      string(req.Status),
		PNR:         pnr,
		At:          time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, req.ID, event); err != nil {
		log.Warn().Err(err).Str("request_id", req.ID).Str("event", eventType).Msg("publish request event failed")
	}
}

func kafkaEventType(status domain.RequestStatus, update bool) string {
	if update {
		return kafka.EventRequestUpdated
	}
	switch status {
	case domain.StatusHeld:
		return kafka.EventRequestHeld
	case domain.StatusError:
		return kafka.EventRequestError
	default:
		return kafka.EventRequestCreated
	}
}

func (s *RequestService) countSubmission(status string) {
	if s.metrics != nil {
		s.metrics.Submissions.WithLabelValues(status).Inc()
	}
}

func (s *RequestService) countError(operation string) {
	if s.metrics != nil {
		s.metrics.Errors.WithLabelValues(operation).Inc()
	}
}

func (s *RequestService) observeProvider(started time.Time) {
	if s.metrics != nil {
		s.metrics.ProviderLatency.Observe(time.Since(started).Seconds())
	}
}

var _ RequestUseCase = (*RequestService)(nil)
