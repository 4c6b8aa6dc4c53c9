package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Success("saved")
	r.Error("failed")
	r.Error("failed again")

	if r.Count(LevelSuccess) != 1 || r.Count(LevelError) != 2 {
		t.Fatalf("unexpected counts: %+v", r.Notifications())
	}
	got := r.Notifications()
	if got[0] != (Notification{Level: LevelSuccess, Message: "saved"}) {
		t.Fatalf("unexpected first notification %+v", got[0])
	}
	r.Reset()
	if len(r.Notifications()) != 0 {
		t.Fatal("expected reset to clear notifications")
	}
}

func TestMultiAndLog(t *testing.T) {
	var buf bytes.Buffer
	var r Recorder
	n := Multi(&r, NewLog(zerolog.New(&buf)))
	n.Error("boom")
	if r.Count(LevelError) != 1 {
		t.Fatal("recorder did not receive the notification")
	}
	if !strings.Contains(buf.String(), `"message":"boom"`) {
		t.Fatalf("log output missing message: %s", buf.String())
	}
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Success("Product created")
	c.Error("Invoice could not be exported")
	out := buf.String()
	if !strings.Contains(out, "Product created") || !strings.Contains(out, "Invoice could not be exported") {
		t.Fatalf("unexpected console output %q", out)
	}
}
