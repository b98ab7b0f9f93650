package youtube

import (
	"errors"
	"net/http"
	"testing"

	"google.golang.org/api/googleapi"

	"shortsmith/internal/errs"
)

func TestClassifyAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unauthorized", &googleapi.Error{Code: http.StatusUnauthorized, Message: "invalid credentials"}, errs.ErrAuthorization},
		{"forbidden", &googleapi.Error{Code: http.StatusForbidden, Message: "quota exceeded"}, errs.ErrAuthorization},
		{"bad request", &googleapi.Error{Code: http.StatusBadRequest, Message: "invalid snippet"}, errs.ErrProviderTransport},
		{"transport", errors.New("connection reset"), errs.ErrProviderTransport},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := classifyAPIError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Fatalf("classifyAPIError(%v) = %v, want marker %v", tt.err, got, tt.want)
			}
		})
	}
}
