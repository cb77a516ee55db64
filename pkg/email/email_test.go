package email

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSendDisabled(t *testing.T) {
	client, err := New(Config{Enabled: false})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if client.IsEnabled() {
		t.Error("Expected client to be disabled")
	}

	err = client.Send(context.Background(), Message{
		To:      []string{"user@example.com"},
		Subject: "test",
	})
	if !errors.As(err, &ErrDisabled{}) {
		t.Errorf("err = %v, want ErrDisabled", err)
	}
}

func TestBuildResultEmail(t *testing.T) {
	m := BuildResultEmail(ResultEmailData{
		Email:      "user@example.com",
		MBTIType:   "INFP",
		Confidence: 72,
		BaseURL:    "https://kokoro.example.com",
	})

	if len(m.To) != 1 || m.To[0] != "user@example.com" {
		t.Errorf("To = %v, want the recipient", m.To)
	}
	if !strings.Contains(m.Subject, "INFP") {
		t.Errorf("subject %q does not mention the type", m.Subject)
	}
	for _, body := range []string{m.TextBody, m.HTMLBody} {
		if !strings.Contains(body, "INFP") {
			t.Error("body does not mention the type")
		}
		if !strings.Contains(body, "72") {
			t.Error("body does not mention the confidence")
		}
		if !strings.Contains(body, "https://kokoro.example.com/mbti/result") {
			t.Error("body does not link to the result page")
		}
	}
}
