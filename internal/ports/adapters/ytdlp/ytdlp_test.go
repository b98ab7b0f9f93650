package ytdlp

import (
	"encoding/json"
	"testing"
)

func TestInfoJSON_AuthorFallsBackToChannel(t *testing.T) {
	t.Parallel()

	var info infoJSON
	payload := `{"title":"Long talk","duration":4521.3,"channel":"GopherCon","thumbnail":"https://i.ytimg.com/x.jpg"}`
	if err := json.Unmarshal([]byte(payload), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.Uploader != "" || info.Channel != "GopherCon" {
		t.Fatalf("unexpected parse: %+v", info)
	}
}

func TestTail(t *testing.T) {
	t.Parallel()

	if got := tail("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	long := "0123456789abcdef"
	got := tail(long, 4)
	if got != "...cdef" {
		t.Fatalf("got %q", got)
	}
}
