package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderValue(t *testing.T) {
	headers := map[string]string{"x-telegram-bot-api-secret-token": "s3cret", "content-type": "application/json"}

	assert.Equal(t, "s3cret", HeaderValue(headers, SecretHeader))
	assert.Equal(t, "", HeaderValue(headers, "X-Missing"))
	assert.Equal(t, "", HeaderValue(nil, SecretHeader))
}

func TestValidSecret(t *testing.T) {
	assert.True(t, ValidSecret("s3cret", "s3cret"))
	assert.False(t, ValidSecret("s3cre", "s3cret"))
	assert.False(t, ValidSecret("", "s3cret"))
}
