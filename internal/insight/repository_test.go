package insight

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapStorageErr(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error // sentinel expected via errors.Is, or nil for passthrough
	}{
		{
			name: "deadline exceeded",
			in:   fmt.Errorf("query: %w", context.DeadlineExceeded),
			want: ErrStorageTimeout,
		},
		{
			name: "statement timeout",
			in:   &pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"},
			want: ErrStorageTimeout,
		},
		{
			name: "serialization failure",
			in:   &pgconn.PgError{Code: "40001", Message: "could not serialize access"},
			want: ErrStorageConflict,
		},
		{
			name: "deadlock detected",
			in:   &pgconn.PgError{Code: "40P01", Message: "deadlock detected"},
			want: ErrStorageConflict,
		},
		{
			name: "wrapped driver error still classified",
			in:   fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40001"}),
			want: ErrStorageConflict,
		},
		{
			name: "unique violation passes through",
			in:   &pgconn.PgError{Code: "23505", Message: "duplicate key value"},
		},
		{
			name: "plain error passes through",
			in:   errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapStorageErr(tt.in)
			if tt.want == nil {
				if got != tt.in {
					t.Errorf("mapStorageErr() = %v, want the input unchanged", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("mapStorageErr() = %v, want errors.Is %v", got, tt.want)
			}
		})
	}
}
