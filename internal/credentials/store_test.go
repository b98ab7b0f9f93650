package credentials

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour).UTC(),
	}
	if err := store.Save("user-1", tok); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load("user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.AccessToken != "access" || got.RefreshToken != "refresh" {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestStore_MissingUser(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	if _, err := store.Load("nobody"); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestUsable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tok  *oauth2.Token
		want bool
	}{
		{"nil", nil, false},
		{"refreshable", &oauth2.Token{RefreshToken: "r", Expiry: time.Now().Add(-time.Hour)}, true},
		{"valid access", &oauth2.Token{AccessToken: "a", Expiry: time.Now().Add(time.Hour)}, true},
		{"expired no refresh", &oauth2.Token{AccessToken: "a", Expiry: time.Now().Add(-time.Minute)}, false},
		{"empty", &oauth2.Token{}, false},
		{"no expiry", &oauth2.Token{AccessToken: "a"}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Usable(tt.tok); got != tt.want {
				t.Fatalf("Usable(%+v) = %v, want %v", tt.tok, got, tt.want)
			}
		})
	}
}
