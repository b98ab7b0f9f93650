// Package youtube adapts the YouTube Data API v3 to the VideoHost port.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"shortsmith/internal/errs"
	"shortsmith/internal/ports"
	"shortsmith/internal/types"
)

type Adapter struct {
	clientID     string
	clientSecret string
}

func New(clientID, clientSecret string) *Adapter {
	return &Adapter{clientID: clientID, clientSecret: clientSecret}
}

// Upload sends the artifact to YouTube with the given metadata. The token is
// an explicit argument and a fresh service is built per call, so concurrent
// uploads for different users never share credential state.
func (a *Adapter) Upload(ctx context.Context, artifactPath string, md types.UploadMetadata, token *oauth2.Token) (ports.UploadResult, error) {
	conf := &oauth2.Config{
		ClientID:     a.clientID,
		ClientSecret: a.clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{yt.YoutubeUploadScope, yt.YoutubeScope},
	}

	svc, err := yt.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, token)))
	if err != nil {
		return ports.UploadResult{}, errs.Wrap(errs.ErrProviderTransport, "publish", "build youtube service", err)
	}

	categoryID := md.CategoryID
	if categoryID == "" {
		categoryID = "22" // People & Blogs
	}
	privacy := md.PrivacyStatus
	if privacy == "" {
		privacy = "public"
	}

	video := &yt.Video{
		Snippet: &yt.VideoSnippet{
			Title:       md.Title,
			Description: md.Description,
			Tags:        md.Tags,
			CategoryId:  categoryID,
		},
		Status: &yt.VideoStatus{
			PrivacyStatus:           privacy,
			SelfDeclaredMadeForKids: false,
			ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
		},
	}

	f, err := os.Open(artifactPath)
	if err != nil {
		return ports.UploadResult{}, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	uploaded, err := svc.Videos.Insert([]string{"snippet", "status"}, video).Media(f).Context(ctx).Do()
	if err != nil {
		return ports.UploadResult{}, classifyAPIError(err)
	}

	return ports.UploadResult{
		VideoID: uploaded.Id,
		URL:     fmt.Sprintf("https://youtube.com/shorts/%s", uploaded.Id),
	}, nil
}

func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errs.Wrap(errs.ErrAuthorization, "publish", apiErr.Message, err)
		}
		return errs.Wrap(errs.ErrProviderTransport, "publish",
			fmt.Sprintf("youtube status %d: %s", apiErr.Code, apiErr.Message), err)
	}
	return errs.Wrap(errs.ErrProviderTransport, "publish", "youtube upload", err)
}
