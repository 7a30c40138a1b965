package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/todolists/internal/services/todolists/platform/requestmeta"
)

func TestWriteAndReadAndClearRoundTrip(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/lists", nil)
	writeRR := httptest.NewRecorder()

	Write(writeRR, req, Success("lists.notice.created"), requestmeta.SchemePolicy{})
	setCookieHeader := writeRR.Header().Get("Set-Cookie")
	if setCookieHeader == "" {
		t.Fatalf("expected Set-Cookie header")
	}
	cookie, err := http.ParseSetCookie(setCookieHeader)
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}

	next := httptest.NewRequest(http.MethodGet, "/lists", nil)
	next.AddCookie(cookie)
	readRR := httptest.NewRecorder()
	notice, ok := ReadAndClear(readRR, next, requestmeta.SchemePolicy{})
	if !ok {
		t.Fatalf("ReadAndClear() ok = false, want true")
	}
	if notice.Kind != KindSuccess {
		t.Fatalf("notice.Kind = %q, want %q", notice.Kind, KindSuccess)
	}
	if notice.Key != "lists.notice.created" {
		t.Fatalf("notice.Key = %q", notice.Key)
	}
	cleared, err := http.ParseSetCookie(readRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cleared.MaxAge >= 0 {
		t.Fatalf("cleared max-age = %d, want < 0", cleared.MaxAge)
	}
}

func TestReadAndClearInvalidCookieValueStillClears(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/lists", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-base64!"})
	rr := httptest.NewRecorder()

	if _, ok := ReadAndClear(rr, req, requestmeta.SchemePolicy{}); ok {
		t.Fatalf("ReadAndClear() ok = true, want false")
	}
	if rr.Header().Get("Set-Cookie") == "" {
		t.Fatalf("expected clear Set-Cookie header")
	}
}

func TestReadWithoutCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	if _, ok := ReadAndClear(rr, httptest.NewRequest(http.MethodGet, "/lists", nil), requestmeta.SchemePolicy{}); ok {
		t.Fatal("ReadAndClear() ok = true, want false")
	}
	if got := rr.Header().Get("Set-Cookie"); got != "" {
		t.Fatalf("Set-Cookie = %q, want empty", got)
	}
}

func TestWriteIgnoresInvalidNotice(t *testing.T) {
	t.Parallel()

	tests := []Notice{
		{Kind: KindSuccess, Key: ""},
		{Kind: Kind("loud"), Key: "lists.notice.created"},
	}
	for _, notice := range tests {
		rr := httptest.NewRecorder()
		Write(rr, httptest.NewRequest(http.MethodPost, "/lists", nil), notice, requestmeta.SchemePolicy{})
		if got := rr.Header().Get("Set-Cookie"); got != "" {
			t.Fatalf("Set-Cookie = %q, want empty for %+v", got, notice)
		}
	}
}

func TestErrorNotice(t *testing.T) {
	t.Parallel()

	if got := Error("lists.error.not_found"); got.Kind != KindError {
		t.Fatalf("Kind = %q, want %q", got.Kind, KindError)
	}
}
