package postgres

import (
	"context"
	"errors"
	"net"
	"syscall"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planday/backend/domain"
)

func TestStorageErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   domain.ErrorCode
		passThrough bool
	}{
		{
			name:     "refused connection is unavailable",
			err:      &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
			wantCode: domain.ErrCodeUnavailable,
		},
		{
			name:     "reset connection is unavailable",
			err:      &net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET},
			wantCode: domain.ErrCodeUnavailable,
		},
		{
			name:     "connection exception class is unavailable",
			err:      &pgconn.PgError{Code: "08006"},
			wantCode: domain.ErrCodeUnavailable,
		},
		{
			name:       "constraint violation passes through",
			err:        &pgconn.PgError{Code: "23505"},
			passThrough: true,
		},
		{
			name:       "deadline passes through for the caller to classify",
			err:        context.DeadlineExceeded,
			passThrough: true,
		},
		{
			name:       "domain error keeps its code",
			err:        domain.ErrScheduleNotFound,
			passThrough: true,
		},
		{
			name:       "plain error passes through",
			err:        errors.New("scan failed"),
			passThrough: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := storageError(tc.err)
			if tc.passThrough {
				assert.Equal(t, tc.err, got)
				return
			}
			require.Error(t, got)
			assert.True(t, domain.IsDomainError(got, tc.wantCode))
			assert.True(t, errors.Is(got, tc.err), "original error must stay unwrappable")
		})
	}
}

func TestStorageErrorNil(t *testing.T) {
	assert.NoError(t, storageError(nil))
}
