package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venugopalchepuri/SAARTHI-SURAKSHA/module/core/domain"
)

func newTestTripService(repo *mockTripRepo) *TripService {
	svc := NewTripService(repo, newTestCredentialService("secret"))
	svc.now = func() time.Time { return fixedNow }
	svc.newID = func() string { return "trip-1" }
	return svc
}

func validTripRequest() CreateTripRequest {
	return CreateTripRequest{
		UserID:    "user-1",
		KYCDigest: "sha256:abc",
		Itinerary: json.RawMessage(`["Agra","Jaipur"]`),
		Emergency: json.RawMessage(`{"name":"Asha","phone":"+911234567890"}`),
		ValidFrom: fixedNow,
		ValidTo:   fixedNow.AddDate(0, 0, 7),
	}
}

func TestCreateTrip_Success(t *testing.T) {
	var (
		inserted   *domain.Trip
		hashedTrip string
		storedHash string
	)
	repo := &mockTripRepo{
		insertFn: func(_ context.Context, trip *domain.Trip) error {
			inserted = trip
			return nil
		},
		setVCHashFn: func(_ context.Context, id, hash string) error {
			hashedTrip, storedHash = id, hash
			return nil
		},
	}
	svc := newTestTripService(repo)

	trip, cred, err := svc.Create(context.Background(), validTripRequest())
	require.NoError(t, err)

	require.NotNil(t, inserted)
	assert.Equal(t, "trip-1", trip.ID)
	assert.Equal(t, domain.DefaultSafetyScore, trip.SafetyScore)
	assert.Equal(t, fixedNow, trip.CreatedAt)
	assert.Equal(t, "did:uuid:user-1", cred.VC.CredentialSubject.ID)
	assert.Equal(t, "trip-1", cred.VC.CredentialSubject.TripID)
	assert.Equal(t, "trip-1", hashedTrip)
	assert.Equal(t, cred.VCHash, storedHash)
	require.NotNil(t, trip.VCHash)
	assert.Equal(t, cred.VCHash, *trip.VCHash)
}

func TestCreateTrip_InvalidRequest(t *testing.T) {
	svc := newTestTripService(&mockTripRepo{})

	noUser := validTripRequest()
	noUser.UserID = ""
	_, _, err := svc.Create(context.Background(), noUser)
	assert.ErrorIs(t, err, ErrInvalidInput)

	backwards := validTripRequest()
	backwards.ValidTo = backwards.ValidFrom.Add(-time.Hour)
	_, _, err = svc.Create(context.Background(), backwards)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateTrip_InsertError(t *testing.T) {
	repo := &mockTripRepo{
		insertFn: func(_ context.Context, _ *domain.Trip) error {
			return errors.New("db error")
		},
	}
	svc := newTestTripService(repo)

	_, _, err := svc.Create(context.Background(), validTripRequest())
	assert.Error(t, err)
}

func TestCreateTrip_SetHashError(t *testing.T) {
	repo := &mockTripRepo{
		insertFn: func(_ context.Context, _ *domain.Trip) error { return nil },
		setVCHashFn: func(_ context.Context, _, _ string) error {
			return domain.ErrNotFound
		},
	}
	svc := newTestTripService(repo)

	_, _, err := svc.Create(context.Background(), validTripRequest())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetTrip(t *testing.T) {
	repo := &mockTripRepo{
		getFn: func(_ context.Context, id string) (*domain.Trip, error) {
			if id == "trip-1" {
				return &domain.Trip{ID: id, SafetyScore: 100}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestTripService(repo)

	trip, err := svc.Get(context.Background(), "trip-1")
	require.NoError(t, err)
	assert.Equal(t, 100, trip.SafetyScore)

	_, err = svc.Get(context.Background(), "trip-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
