package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorIs_MatchesByCodeAndMessage(t *testing.T) {
	wrapped := fmt.Errorf("find script: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrVoiceNotFound))
}

func TestErrorUnwrap_ExposesCause(t *testing.T) {
	cause := errors.New("timeout")
	err := NewGenerationError("timeout", cause)

	assert.True(t, errors.Is(err, cause))
	var appErr *Error
	if assert.True(t, errors.As(err, &appErr)) {
		assert.Equal(t, StatusBadGateway, appErr.StatusCode)
		assert.Equal(t, ErrCodeAIGeneration.Code, appErr.Code.Code)
	}
}

func TestConvertMongoError(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil))
	assert.Equal(t, ErrNotFound, ConvertMongoError(mongo.ErrNoDocuments))
	assert.Equal(t, ErrInvalidState, ConvertMongoError(ErrInvalidState))

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "dup key"}}}
	assert.Equal(t, ErrMongoDuplicate, ConvertMongoError(dup))

	generic := ConvertMongoError(errors.New("boom"))
	var appErr *Error
	if assert.True(t, errors.As(generic, &appErr)) {
		assert.Equal(t, StatusInternalServerError, appErr.StatusCode)
	}
}

func TestConvertMongoError_DeadlineIsUnavailable(t *testing.T) {
	err := ConvertMongoError(fmt.Errorf("find: %w", context.DeadlineExceeded))

	var appErr *Error
	if assert.True(t, errors.As(err, &appErr)) {
		assert.Equal(t, StatusServiceUnavailable, appErr.StatusCode)
		assert.Equal(t, ErrCodeDatabaseConnection.Code, appErr.Code.Code)
	}
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
