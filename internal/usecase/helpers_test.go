package usecase_test

import (
	"errors"
	"testing"

	"interview-prep-backend/pkg/apperror"

	"github.com/stretchr/testify/require"
)

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
	return appErr
}
