package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := GenerateToken(userID, "donor", "test-secret")
	require.NoError(t, err)

	claims, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims.UserID)
	assert.Equal(t, "donor", claims.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(primitive.NewObjectID(), "receiver", "right-secret")
	require.NoError(t, err)

	_, err = ParseToken(token, "wrong-secret")
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "test-secret")
	assert.Error(t, err)
}
