// Package errs defines the error taxonomy shared across pipeline stages and
// the publisher. Errors are tagged with a sentinel marker via Wrap so callers
// can branch with errors.Is and surface a stable classification string.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable marks an unresolvable, private, or unreachable
	// source video.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRender marks a transcoding tool failure.
	ErrRender = errors.New("render failure")

	// ErrMetadataFormat marks an unparseable generative-provider response.
	ErrMetadataFormat = errors.New("metadata format")

	// ErrPrecondition marks a publish attempt without a valid credential or
	// artifact. Raised before any network call.
	ErrPrecondition = errors.New("precondition failed")

	// ErrProviderTransport marks a network or timeout failure talking to any
	// external API.
	ErrProviderTransport = errors.New("provider transport")

	// ErrAuthorization marks a missing or expired credential at publish time.
	ErrAuthorization = errors.New("authorization")
)

// Wrap tags err with the given marker and stage context. The marker should be
// one of the exported sentinels above.
func Wrap(marker error, stage, message string, err error) error {
	detail := buildDetail(stage, message)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an error to its taxonomy name for user-visible reporting.
// Unknown errors classify as "internal".
func Classify(err error) string {
	switch {
	case errors.Is(err, ErrSourceUnavailable):
		return "source_unavailable"
	case errors.Is(err, ErrRender):
		return "render"
	case errors.Is(err, ErrMetadataFormat):
		return "metadata_format"
	case errors.Is(err, ErrPrecondition):
		return "precondition"
	case errors.Is(err, ErrProviderTransport):
		return "provider_transport"
	case errors.Is(err, ErrAuthorization):
		return "authorization"
	default:
		return "internal"
	}
}

func buildDetail(stage, message string) string {
	parts := make([]string, 0, 2)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
