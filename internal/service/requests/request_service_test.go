package requests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/avidato/farehold/internal/amadeus"
	"github.com/avidato/farehold/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Insert(ctx context.Context, req *domain.FlightRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) List(ctx context.Context, status domain.RequestStatus) ([]domain.FlightRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateStatus(ctx context.Context, id string, status domain.RequestStatus) (*domain.FlightRequest, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateTravelerInfo(ctx context.Context, id string, travelerInfo json.RawMessage) (*domain.FlightRequest, error) {
	args := m.Called(ctx, id, travelerInfo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdateSearchQuery(ctx context.Context, id string, query json.RawMessage) (*domain.FlightRequest, error) {
	args := m.Called(ctx, id, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightRequest), args.Error(1)
}

func (m *MockRequestRepository) UpdatePreferences(ctx context.Context, id string, prefs []domain.BookingPreference) (*domain.FlightRequest, error) {
	args := m.Called(ctx, id, prefs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightRequest), args.Error(1)
}

func (m *MockRequestRepository) FindActiveByDedupKey(ctx context.Context, key string) (*domain.FlightRequest, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FlightRequest), args.Error(1)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) SearchOffers(ctx context.Context, token string, query json.RawMessage) ([]amadeus.FlightOffer, error) {
	args := m.Called(ctx, token, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]amadeus.FlightOffer), args.Error(1)
}

func (m *MockProvider) CreateOrder(ctx context.Context, token string, offer json.RawMessage, travelers json.RawMessage) (*amadeus.Order, error) {
	args := m.Called(ctx, token, offer, travelers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*amadeus.Order), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetRequests(ctx context.Context, status domain.RequestStatus) ([]domain.FlightRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightRequest), args.Error(1)
}

func (m *MockCache) SetRequests(ctx context.Context, status domain.RequestStatus, requests []domain.FlightRequest) error {
	args := m.Called(ctx, status, requests)
	return args.Error(0)
}

func (m *MockCache) InvalidateRequests(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendHeldNotification(ctx context.Context, recipient, pnr string, order *amadeus.Order) {
	m.Called(ctx, recipient, pnr, order)
}

// Fixtures

const validTravelers = `[{"dateOfBirth":"1990-01-15","name":{"firstName":"JORGE","lastName":"GONZALES"},"gender":"MALE","contact":{"emailAddress":"jorge@example.com","phones":[{"deviceType":"MOBILE","countryCallingCode":"34","number":"480080076"}]},"documents":[{"documentType":"PASSPORT","birthPlace":"ES","issuanceLocation":"ES","issuanceDate":"2015-04-14","number":"00000000","expiryDate":"2027-04-14","issuanceCountry":"ES","validityCountry":"ES","nationality":"ES","holder":true}]}]`

const validQuery = `{"originLocationCode":"DXB","destinationLocationCode":"BOM","departureDate":"2026-09-10","adults":1}`

const validPreferences = `[{"id":1,"bookingClass":"K","flightNumber":"511","carrierCode":"EK"}]`

func validInput() SubmitInput {
	return SubmitInput{
		Email:              "agent@example.com",
		SearchQuery:        validQuery,
		TravelerInfo:       validTravelers,
		BookingPreferences: validPreferences,
	}
}

func matchingOffer() amadeus.FlightOffer {
	return amadeus.FlightOffer{
		Raw: json.RawMessage(`{"id":"offer-1"}`),
		TravelerPricings: []amadeus.TravelerPricing{
			{FareDetailsBySegment: []amadeus.FareDetail{{SegmentID: "1", Class: "K"}}},
		},
		Itineraries: []amadeus.Itinerary{
			{Segments: []amadeus.Segment{{ID: "1", CarrierCode: "EK", Number: "511"}}},
		},
	}
}

func heldOrder() *amadeus.Order {
	order := &amadeus.Order{}
	order.Data.AssociatedRecords = []amadeus.AssociatedRecord{{Reference: "ABC123"}}
	return order
}

func newTestService(repo *MockRequestRepository, provider *MockProvider, cache *MockCache, producer *MockProducer, notifier *MockNotifier) *RequestService {
	return &RequestService{
		requests:    repo,
		provider:    provider,
		cache:       cache,
		producer:    producer,
		notifier:    notifier,
		eventsTopic: "request_events",
		validate:    validator.New(),
	}
}

func TestRequestService_Submit_HeldWithPNR(t *testing.T) {
	repo := &MockRequestRepository{}
	provider := &MockProvider{}
	cache := &MockCache{}
	producer := &MockProducer{}
	notifier := &MockNotifier{}
	service := newTestService(repo, provider, cache, producer, notifier)

	ctx := context.Background()

	repo.On("FindActiveByDedupKey", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()
	provider.On("Token", ctx).Return("test-token", nil).Once()
	provider.On("SearchOffers", ctx, "test-token", mock.Anything).Return([]amadeus.FlightOffer{matchingOffer()}, nil).Once()
	provider.On("CreateOrder", ctx, "test-token", mock.Anything, mock.Anything).Return(heldOrder(), nil).Once()
	repo.On("Insert", ctx, mock.MatchedBy(func(req *domain.FlightRequest) bool {
		return req.Status == domain.StatusHeld &&
			req.PNRNumber != nil && *req.PNRNumber == "ABC123" &&
			req.MatchedPreference != nil && req.MatchedPreference.ID == 1
	})).Return(nil).Once()
	cache.On("InvalidateRequests", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "request_events", mock.Anything, mock.Anything).Return(nil).Once()
	notifier.On("SendHeldNotification", ctx, "agent@example.com", "ABC123", mock.Anything).Once()

	result, err := service.Submit(ctx, validInput())

	require.NoError(t, err)
	assert.Equal(t, "held", result.Status)
	assert.Equal(t, "ABC123", result.PNR)
	require.NotNil(t, result.MatchedPreference)
	assert.Equal(t, "K", result.MatchedPreference.BookingClass)

	repo.AssertExpectations(t)
	provider.AssertExpectations(t)
	cache.AssertExpectations(t)
	producer.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRequestService_Submit_HeldWithoutPNR(t *testing.T) {
	repo := &MockRequestRepository{}
	provider := &MockProvider{}
	cache := &MockCache{}
	producer := &MockProducer{}
	notifier := &MockNotifier{}
	service := newTestService(repo, provider, cache, producer, notifier)

	ctx := context.Background()

	repo.On("FindActiveByDedupKey", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()
	provider.On("Token", ctx).Return("test-token", nil).Once()
	provider.On("SearchOffers", ctx, "test-token", mock.Anything).Return([]amadeus.FlightOffer{matchingOffer()}, nil).Once()
	provider.On("CreateOrder", ctx, "test-token", mock.Anything, mock.Anything).Return(&amadeus.Order{}, nil).Once()
	repo.On("Insert", ctx, mock.MatchedBy(func(req *domain.FlightRequest) bool {
		return req.Status == domain.StatusHeld && req.PNRNumber == nil
	})).Return(nil).Once()
	cache.On("InvalidateRequests", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "request_events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.Submit(ctx, validInput())

	require.NoError(t, err)
	assert.Equal(t, "held", result.Status)
	assert.Equal(t, "", result.PNR)
	assert.Contains(t, result.Message, "no PNR returned")

	// No PNR, no email.
	notifier.AssertNotCalled(t, "SendHeldNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestRequestService_Submit_NoMatchQueued(t *testing.T) {
	repo := &MockRequestRepository{}
	provider := &MockProvider{}
	cache := &MockCache{}
	producer := &MockProducer{}
	notifier := &MockNotifier{}
	service := newTestService(repo, provider, cache, producer, notifier)

	ctx := context.Background()

	repo.On("FindActiveByDedupKey", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()
	provider.On("Token", ctx).Return("test-token", nil).Once()
	provider.On("SearchOffers", ctx, "test-token", mock.Anything).Return([]amadeus.FlightOffer{}, nil).Once()
	repo.On("Insert", ctx, mock.MatchedBy(func(req *domain.FlightRequest) bool {
		return req.Status == domain.StatusActive &&
			req.PNRNumber == nil &&
			req.MatchedPreference == nil &&
			len(req.BookingPreferences) == 1
	})).Return(nil).Once()
	cache.On("InvalidateRequests", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "request_events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.Submit(ctx, validInput())

	require.NoError(t, err)
	assert.Equal(t, "queued", result.Status)
	assert.Empty(t, result.PNR)
	assert.Nil(t, result.MatchedPreference)

	provider.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestRequestService_Submit_BookingFails(t *testing.T) {
	repo := &MockRequestRepository{}
	provider := &MockProvider{}
	cache := &MockCache{}
	producer := &MockProducer{}
	notifier := &MockNotifier{}
	service := newTestService(repo, provider, cache, producer, notifier)

	ctx := context.Background()

	repo.On("FindActiveByDedupKey", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()
	provider.On("Token", ctx).Return("test-token", nil).Once()
	provider.On("SearchOffers", ctx, "test-token", mock.Anything).Return([]amadeus.FlightOffer{matchingOffer()}, nil).Once()
	provider.On("CreateOrder", ctx, "test-token", mock.Anything, mock.Anything).
		Return(nil, &amadeus.RequestError{Op: "create order", Status: 422, Body: "offer expired"}).Once()
	// The matched request is retained for audit; never as held.
	repo.On("Insert", ctx, mock.MatchedBy(func(req *domain.FlightRequest) bool {
		return req.Status == domain.StatusError && req.PNRNumber == nil && req.MatchedPreference != nil
	})).Return(nil).Once()
	cache.On("InvalidateRequests", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "request_events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.Submit(ctx, validInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBookingFailed))
	assert.Nil(t, result)

	notifier.AssertNotCalled(t, "SendHeldNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestRequestService_Submit_SearchFails(t *testing.T) {
	repo := &MockRequestRepository{}
	provider := &MockProvider{}
	cache := &MockCache{}
	producer := &MockProducer{}
	service := newTestService(repo, provider, cache, producer, &MockNotifier{})

	ctx := context.Background()

	repo.On("FindActiveByDedupKey", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()
	provider.On("Token", ctx).Return("test-token", nil).Once()
	provider.On("SearchOffers", ctx, "test-token", mock.Anything).
		Return(nil, &amadeus.RequestError{Op: "search offers", Status: 500, Body: "upstream down"}).Once()
	repo.On("Insert", ctx, mock.MatchedBy(func(req *domain.FlightRequest) bool {
		return req.Status == domain.StatusError
	})).Return(nil).Once()
	cache.On("InvalidateRequests", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "request_events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.Submit(ctx, validInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSearchFailed))
	assert.Nil(t, result)
	repo.AssertExpectations(t)
}

func TestRequestService_Submit_AuthFails(t *testing.T) {
	repo := &MockRequestRepository{}
	provider := &MockProvider{}
	service := newTestService(repo, provider, &MockCache{}, &MockProducer{}, &MockNotifier{})

	ctx := context.Background()

	repo.On("FindActiveByDedupKey", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()
	provider.On("Token", ctx).Return("", amadeus.ErrAuth).Once()

	result, err := service.Submit(ctx, validInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, amadeus.ErrAuth))
	assert.Nil(t, result)

	// Nothing may be persisted when the credential exchange is rejected.
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRequestService_Submit_ValidationErrors(t *testing.T) {
	repo := &MockRequestRepository{}
	service := newTestService(repo, &MockProvider{}, &MockCache{}, &MockProducer{}, &MockNotifier{})

	ctx := context.Background()

	testCases := []struct {
		name   string
		mangle func(*SubmitInput)
	}{
		{"invalid email", func(in *SubmitInput) { in.Email = "not-an-email" }},
		{"empty email", func(in *SubmitInput) { in.Email = "" }},
		{"search query not JSON", func(in *SubmitInput) { in.SearchQuery = "{broken" }},
		{"traveler info not JSON", func(in *SubmitInput) { in.TravelerInfo = "nope" }},
		{"empty traveler array", func(in *SubmitInput) { in.TravelerInfo = "[]" }},
		{"traveler missing name", func(in *SubmitInput) {
			in.TravelerInfo = `[{"dateOfBirth":"1990-01-15","gender":"MALE"}]`
		}},
		{"preferences not an array", func(in *SubmitInput) { in.BookingPreferences = `{"bookingClass":"K"}` }},
		{"empty preferences array", func(in *SubmitInput) { in.BookingPreferences = "[]" }},
		{"preference missing carrier", func(in *SubmitInput) {
			in.BookingPreferences = `[{"id":1,"bookingClass":"K","flightNumber":"511"}]`
		}},
		{"no preferences at all", func(in *SubmitInput) { in.BookingPreferences = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mangle(&input)

			result, err := service.Submit(ctx, input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidForm))
			assert.Nil(t, result)
		})
	}

	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "FindActiveByDedupKey", mock.Anything, mock.Anything)
}

func TestRequestService_Submit_LegacySinglePreference(t *testing.T) {
	repo := &MockRequestRepository{}
	provider := &MockProvider{}
	cache := &MockCache{}
	producer := &MockProducer{}
	service := newTestService(repo, provider, cache, producer, &MockNotifier{})

	ctx := context.Background()

	input := validInput()
	input.BookingPreferences = ""
	input.BookingClass = "K"
	input.FlightNumber = "511"
	input.CarrierCode = "EK"

	repo.On("FindActiveByDedupKey", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()
	provider.On("Token", ctx).Return("test-token", nil).Once()
	provider.On("SearchOffers", ctx, "test-token", mock.Anything).Return([]amadeus.FlightOffer{}, nil).Once()
	repo.On("Insert", ctx, mock.MatchedBy(func(req *domain.FlightRequest) bool {
		return len(req.BookingPreferences) == 1 &&
			req.BookingPreferences[0].BookingClass == "K" &&
			req.BookingPreferences[0].FlightNumber == "511" &&
			req.BookingPreferences[0].CarrierCode == "EK"
	})).Return(nil).Once()
	cache.On("InvalidateRequests", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "request_events", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := service.Submit(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "queued", result.Status)
	repo.AssertExpectations(t)
}

func TestRequestService_Submit_Duplicate(t *testing.T) {
	repo := &MockRequestRepository{}
	provider := &MockProvider{}
	service := newTestService(repo, provider, &MockCache{}, &MockProducer{}, &MockNotifier{})

	ctx := context.Background()

	existing := &domain.FlightRequest{ID: "req-1", Status: domain.StatusActive}
	repo.On("FindActiveByDedupKey", ctx, mock.AnythingOfType("string")).Return(existing, nil).Once()

	result, err := service.Submit(ctx, validInput())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Nil(t, result)

	provider.AssertNotCalled(t, "Token", mock.Anything)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestRequestService_UpdateStatus_RoundTrip(t *testing.T) {
	repo := &MockRequestRepository{}
	cache := &MockCache{}
	producer := &MockProducer{}
	service := newTestService(repo, &MockProvider{}, cache, producer, &MockNotifier{})

	ctx := context.Background()

	updated := &domain.FlightRequest{ID: "req-1", Status: domain.StatusSuccess, SubmittedBy: "agent@example.com"}
	repo.On("UpdateStatus", ctx, "req-1", domain.StatusSuccess).Return(updated, nil).Once()
	cache.On("InvalidateRequests", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "request_events", "req-1", mock.Anything).Return(nil).Once()

	result, err := service.UpdateStatus(ctx, "req-1", domain.StatusSuccess)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, result.Status)
	assert.Equal(t, "req-1", result.ID)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestRequestService_UpdateStatus_InvalidValue(t *testing.T) {
	repo := &MockRequestRepository{}
	service := newTestService(repo, &MockProvider{}, &MockCache{}, &MockProducer{}, &MockNotifier{})

	_, err := service.UpdateStatus(context.Background(), "req-1", "confirmed")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidForm))
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_UpdateTravelers_InvalidSchema(t *testing.T) {
	repo := &MockRequestRepository{}
	service := newTestService(repo, &MockProvider{}, &MockCache{}, &MockProducer{}, &MockNotifier{})

	_, err := service.UpdateTravelers(context.Background(), "req-1", json.RawMessage(`[{"gender":"MALE"}]`))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidForm))
	repo.AssertNotCalled(t, "UpdateTravelerInfo", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestService_List_CacheHit(t *testing.T) {
	repo := &MockRequestRepository{}
	cache := &MockCache{}
	service := newTestService(repo, &MockProvider{}, cache, &MockProducer{}, &MockNotifier{})

	ctx := context.Background()

	cached := []domain.FlightRequest{{ID: "req-1", Status: domain.StatusHeld}}
	cache.On("GetRequests", ctx, domain.StatusHeld).Return(cached, nil).Once()

	listed, err := service.List(ctx, domain.StatusHeld)

	require.NoError(t, err)
	assert.Equal(t, cached, listed)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestRequestService_List_CacheMiss(t *testing.T) {
	repo := &MockRequestRepository{}
	cache := &MockCache{}
	service := newTestService(repo, &MockProvider{}, cache, &MockProducer{}, &MockNotifier{})

	ctx := context.Background()

	stored := []domain.FlightRequest{{ID: "req-1", Status: domain.StatusActive}}
	cache.On("GetRequests", ctx, domain.RequestStatus("")).Return(nil, nil).Once()
	repo.On("List", ctx, domain.RequestStatus("")).Return(stored, nil).Once()
	cache.On("SetRequests", ctx, domain.RequestStatus(""), stored).Return(nil).Once()

	listed, err := service.List(ctx, "")

	require.NoError(t, err)
	assert.Equal(t, stored, listed)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestRequestService_ExampleScenario_HeldEK511(t *testing.T) {
	// agent@example.com, single preference EK 511 class K, provider returns a
	// matching offer: expect held + non-empty PNR and one held store record.
	repo := &MockRequestRepository{}
	provider := &MockProvider{}
	cache := &MockCache{}
	producer := &MockProducer{}
	notifier := &MockNotifier{}
	service := newTestService(repo, provider, cache, producer, notifier)

	ctx := context.Background()

	var inserted *domain.FlightRequest
	repo.On("FindActiveByDedupKey", ctx, mock.AnythingOfType("string")).Return(nil, nil).Once()
	provider.On("Token", ctx).Return("test-token", nil).Once()
	provider.On("SearchOffers", ctx, "test-token", mock.Anything).Return([]amadeus.FlightOffer{matchingOffer()}, nil).Once()
	provider.On("CreateOrder", ctx, "test-token", mock.Anything, mock.Anything).Return(heldOrder(), nil).Once()
	repo.On("Insert", ctx, mock.MatchedBy(func(req *domain.FlightRequest) bool {
		inserted = req
		return true
	})).Return(nil).Once()
	cache.On("InvalidateRequests", ctx).Return(nil).Once()
	producer.On("Publish", ctx, "request_events", mock.Anything, mock.Anything).Return(nil).Once()
	notifier.On("SendHeldNotification", ctx, "agent@example.com", "ABC123", mock.Anything).Once()

	result, err := service.Submit(ctx, validInput())

	require.NoError(t, err)
	assert.Equal(t, "held", result.Status)
	assert.NotEmpty(t, result.PNR)

	require.NotNil(t, inserted)
	assert.Equal(t, domain.StatusHeld, inserted.Status)
	assert.Equal(t, "agent@example.com", inserted.SubmittedBy)
}
