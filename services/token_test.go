package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService("")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	userID := primitive.NewObjectID()
	token, expiresAt, err := svc.Issue(userID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, 5*time.Second)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyExpiredToken(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)
	svc.WithClock(func() time.Time { return issued })

	token, _, err := svc.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	svc.WithClock(func() time.Time { return issued.Add(TokenTTL + time.Minute) })
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	svc.WithClock(func() time.Time { return issued.Add(TokenTTL - time.Minute) })
	_, err = svc.Verify(token)
	assert.NoError(t, err)
}

func TestVerifyInvalidSignature(t *testing.T) {
	issuer, err := NewTokenService("secret-one")
	require.NoError(t, err)
	verifier, err := NewTokenService("secret-two")
	require.NoError(t, err)

	token, _, err := issuer.Issue(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyMalformedToken(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrMalformedToken, token)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	claims := Claims{
		UserID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyRejectsNonObjectIDSubject(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	claims := Claims{
		UserID: "user-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrMalformedToken)
}
