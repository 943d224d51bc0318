package util

import (
	"english_app_backend/internal/model"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in     string
		want   uint
		wantOK bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseID(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionalID(t *testing.T) {
	id, ok := OptionalID("")
	assert.True(t, ok)
	assert.Nil(t, id)

	id, ok = OptionalID("7")
	assert.True(t, ok)
	require.NotNil(t, id)
	assert.Equal(t, uint(7), *id)

	_, ok = OptionalID("seven")
	assert.False(t, ok)
}

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{BaseModel: model.BaseModel{ID: 9}, Email: "a@example.com", Role: model.Admin, Level: model.Advanced}

	token, err := GenerateJWT(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
	assert.Equal(t, model.Admin, claims.Role)
	assert.Equal(t, model.Advanced, claims.Level)
	assert.Equal(t, "9", claims.Subject)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)

	expired, err := GenerateJWT(user, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWTRejectsForeignTokens(t *testing.T) {
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"},
	})
	token, err := foreign.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		UserID:           1,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer},
	})
	token, err = hs512.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = ParseJWT(token, "secret")
	assert.Error(t, err)
}

func TestGetUserFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetUserFromContext(c))

	c.Set("user", "not claims")
	assert.Nil(t, GetUserFromContext(c))

	c.Set("user", &Claims{UserID: 3})
	require.NotNil(t, GetUserFromContext(c))
	assert.Equal(t, uint(3), GetUserFromContext(c).UserID)
}
