package apierror

import (
	"errors"
	"net/http"
	"testing"
)

func TestClientErrorStatus(t *testing.T) {
	tests := []struct {
		code ClientCode
		want int
	}{
		{CodeBadRequest, http.StatusBadRequest},
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeInvalidMethod, http.StatusMethodNotAllowed},
		{CodeInvalidToken, http.StatusUnauthorized},
		{CodeUnknownToken, http.StatusUnauthorized},
		{CodeMapNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		e := &ClientError{Code: tt.code, Message: "x"}
		if got := e.Status(); got != tt.want {
			t.Errorf("%s: Status() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestIOErrorStatus(t *testing.T) {
	notFound := &IOError{Kind: IOFileNotFound, Path: "x"}
	if notFound.Status() != http.StatusNotFound {
		t.Errorf("IOFileNotFound Status() = %d, want 404", notFound.Status())
	}

	readFailure := &IOError{Kind: IOReadFailure, Path: "x", Err: errors.New("boom")}
	if readFailure.Status() != http.StatusInternalServerError {
		t.Errorf("IOReadFailure Status() = %d, want 500", readFailure.Status())
	}
}

func TestConfigErrorUnwraps(t *testing.T) {
	inner := errors.New("bad json")
	e := &ConfigError{Path: "config.json", Err: inner}

	if !errors.Is(e, inner) {
		t.Fatalf("errors.Is(e, inner) = false, want true")
	}
}
