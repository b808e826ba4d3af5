package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradegate/trading_erp/internal/utils/pagination"
)

func TestTokenRoundTrip(t *testing.T) {
	entryDate := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, time.March, 10, 14, 30, 45, 123456789, time.UTC)

	token := pagination.EncodeToken(entryDate, createdAt)
	gotDate, gotCreated, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, gotDate.Equal(entryDate))
	assert.True(t, gotCreated.Equal(createdAt))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not base64 !!!")
	assert.Error(t, err)

	// Valid base64 but no separator.
	_, _, err = pagination.DecodeToken(base64.StdEncoding.EncodeToString([]byte("garbage")))
	assert.Error(t, err)

	// Separator present but timestamps unparseable.
	_, _, err = pagination.DecodeToken(base64.StdEncoding.EncodeToString([]byte("abc|def")))
	assert.Error(t, err)
}
