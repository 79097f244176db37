package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipupy/tesoreria_backend/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	transactionDate := time.Date(2025, 3, 15, 10, 30, 0, 123456789, time.UTC)
	createdAt := time.Date(2025, 3, 15, 10, 30, 1, 0, time.UTC)

	token := pagination.EncodeToken(transactionDate, createdAt)
	decodedDate, decodedCreatedAt, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, transactionDate.Equal(decodedDate))
	assert.True(t, createdAt.Equal(decodedCreatedAt))
}

func TestDecodeTokenInvalidBase64(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-valid-base64!!!")
	assert.Error(t, err)
}

func TestDecodeTokenMissingSeparator(t *testing.T) {
	_, _, err := pagination.DecodeToken("MjAyNS0wMy0xNVQxMDozMDowMFo=") // no separator
	assert.Error(t, err)
}
