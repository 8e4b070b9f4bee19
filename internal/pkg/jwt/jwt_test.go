package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify_RoundTrip(t *testing.T) {
	svc := New("test-secret", time.Hour, 168*time.Hour)

	userID := uuid.New()
	tenantID := uuid.New()

	token, err := svc.Generate(userID, &tenantID, "member", KindAccess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token, KindAccess)
	require.NoError(t, err)

	gotUser, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	require.NotNil(t, claims.Tenant())
	assert.Equal(t, tenantID, *claims.Tenant())
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, KindAccess, claims.Kind)
}

func TestVerify_WrongKind(t *testing.T) {
	svc := New("test-secret", time.Hour, 168*time.Hour)

	refresh, err := svc.Generate(uuid.New(), nil, "member", KindRefresh)
	require.NoError(t, err)

	_, err = svc.Verify(refresh, KindAccess)
	assert.ErrorIs(t, err, ErrWrongTokenKind)
}

func TestVerify_Expired(t *testing.T) {
	svc := New("test-secret", -time.Minute, 168*time.Hour)

	token, err := svc.Generate(uuid.New(), nil, "member", KindAccess)
	require.NoError(t, err)

	_, err = svc.Verify(token, KindAccess)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := New("secret-a", time.Hour, time.Hour).Generate(uuid.New(), nil, "member", KindAccess)
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour, time.Hour).Verify(token, KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	svc := New("test-secret", time.Hour, time.Hour)

	_, err := svc.Verify("not.a.token", KindAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_TenantEmptyForOperator(t *testing.T) {
	svc := New("test-secret", time.Hour, time.Hour)

	token, err := svc.Generate(uuid.New(), nil, "super_admin", KindAccess)
	require.NoError(t, err)

	claims, err := svc.Verify(token, KindAccess)
	require.NoError(t, err)
	assert.Nil(t, claims.Tenant())
}

func TestGenerate_SameSecondMintsDistinctTokens(t *testing.T) {
	svc := New("test-secret", time.Hour, 168*time.Hour)

	userID := uuid.New()
	first, err := svc.Generate(userID, nil, "member", KindRefresh)
	require.NoError(t, err)
	second, err := svc.Generate(userID, nil, "member", KindRefresh)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	claims, err := svc.Verify(second, KindRefresh)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}
