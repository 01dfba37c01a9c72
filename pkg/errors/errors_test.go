package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNotFound(t *testing.T) {
	err := NotFound(EntityUser, 42)

	if err.Code != ErrCodeNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeNotFound)
	}
	if err.Entity != EntityUser || err.ID != 42 {
		t.Errorf("Entity, ID = %q, %d, want %q, 42", err.Entity, err.ID, EntityUser)
	}

	want := "NOT_FOUND: user with id 42 not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, ErrCodeInternalError, "failed to get user")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is() = false, want true for wrapped cause")
	}

	want := "INTERNAL_ERROR: failed to get user (connection refused)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "Nil error",
			err:  nil,
			want: "",
		},
		{
			name: "Plain error",
			err:  stderrors.New("boom"),
			want: "",
		},
		{
			name: "Direct app error",
			err:  InvalidArgument("count must be positive"),
			want: ErrCodeInvalidArgument,
		},
		{
			name: "App error wrapped with fmt",
			err:  fmt.Errorf("add like: %w", NotFound(EntityFilm, 7)),
			want: ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
			if got := Is(tt.err, tt.want); tt.want != "" && !got {
				t.Errorf("Is(%q) = false, want true", tt.want)
			}
		})
	}
}
