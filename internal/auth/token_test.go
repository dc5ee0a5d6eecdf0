// Copyright (c) 2025 Taskdeck
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestInspectToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	iat := time.Now().Add(-time.Minute).Truncate(time.Second)
	tok := signed(t, jwt.MapClaims{"sub": 42, "exp": exp.Unix(), "iat": iat.Unix()})

	info, ok := InspectToken(tok)
	require.True(t, ok)
	assert.Equal(t, "42", info.Subject)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.True(t, info.IssuedAt.Equal(iat))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Second)))
}

func TestInspectTokenStringSubjectNoExpiry(t *testing.T) {
	info, ok := InspectToken(signed(t, jwt.MapClaims{"sub": "user-7"}))
	require.True(t, ok)
	assert.Equal(t, "user-7", info.Subject)
	assert.True(t, info.ExpiresAt.IsZero())
	assert.False(t, info.Expired(time.Now().Add(100*365*24*time.Hour)))
}

func TestInspectTokenOpaque(t *testing.T) {
	for _, tok := range []string{"", "tok1", "1|laravelsanctumtoken", "a.b"} {
		_, ok := InspectToken(tok)
		assert.False(t, ok, tok)
	}
}
