package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapKeepsMarkerAndCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("exit status 1")
	err := Wrap(ErrRender, "rendering", "ffmpeg failed", cause)

	if !errors.Is(err, ErrRender) {
		t.Fatalf("expected render marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be wrapped, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{Wrap(ErrSourceUnavailable, "fetching-info", "video is private", nil), "source_unavailable"},
		{Wrap(ErrRender, "rendering", "", nil), "render"},
		{Wrap(ErrMetadataFormat, "generating-metadata", "bad json", nil), "metadata_format"},
		{Wrap(ErrPrecondition, "publish", "artifact missing", nil), "precondition"},
		{Wrap(ErrProviderTransport, "generating-metadata", "timeout", nil), "provider_transport"},
		{Wrap(ErrAuthorization, "publish", "token expired", nil), "authorization"},
		{errors.New("plain"), "internal"},
		{fmt.Errorf("wrapped: %w", ErrRender), "render"},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Fatalf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestWrapWithoutDetailStillReadable(t *testing.T) {
	t.Parallel()

	err := Wrap(ErrPrecondition, "", "", nil)
	if err.Error() != "precondition failed: pipeline failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
