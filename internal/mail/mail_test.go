package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbright/canvass/internal/report"
	"github.com/rbright/canvass/internal/store"
)

func validConfig() Config {
	return Config{
		Host:     "smtp.example.com",
		Port:     587,
		Login:    "bot@example.com",
		Password: "secret",
		From:     "bot@example.com",
		FromName: "Canvass Bot",
		To:       []string{"hiring@example.com", "ops@example.com"},
	}
}

func sampleReport() report.Report {
	return report.Report{
		SessionID:   "s1",
		SubjectName: "Ada Lovelace",
		TotalScore:  25,
		MaxScore:    50,
		GeneratedAt: time.Date(2026, time.March, 14, 9, 30, 5, 0, time.UTC),
		Lines: []report.Line{
			{Question: "What is your name?", Answer: "Ada Lovelace"},
			{Question: "Describe a plan.", Answer: "spoken answer", RemoteRef: "https://files.example/a.mp3", Score: store.ScoreOf(10)},
		},
	}
}

func TestNewSMTPSenderValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing host", func(c *Config) { c.Host = "" }},
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"missing from", func(c *Config) { c.From = "" }},
		{"no recipients", func(c *Config) { c.To = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			_, err := NewSMTPSender(cfg)
			require.Error(t, err)
		})
	}
}

func TestSendBuildsMessage(t *testing.T) {
	sender, err := NewSMTPSender(validConfig())
	require.NoError(t, err)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg string
	sender.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotFrom = from
		gotTo = append(gotTo, to...)
		gotMsg = string(msg)
		assert.NotNil(t, a)
		return nil
	}

	require.NoError(t, sender.Send(context.Background(), sampleReport()))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "bot@example.com", gotFrom)
	assert.Equal(t, []string{"hiring@example.com", "ops@example.com"}, gotTo)
	assert.Contains(t, gotMsg, "From: Canvass Bot <bot@example.com>\r\n")
	assert.Contains(t, gotMsg, "To: hiring@example.com, ops@example.com\r\n")
	assert.Contains(t, gotMsg, "Subject: Ada Lovelace 25 (14-03-2026 09:30:05)\r\n")
	assert.Contains(t, gotMsg, "Content-Type: text/html")
	assert.Contains(t, gotMsg, "<h2>Total Score: 25/50</h2>")
}

func TestSendNoAuthWithoutLogin(t *testing.T) {
	cfg := validConfig()
	cfg.Login = ""
	sender, err := NewSMTPSender(cfg)
	require.NoError(t, err)

	sender.send = func(_ string, a smtp.Auth, _ string, _ []string, _ []byte) error {
		assert.Nil(t, a)
		return nil
	}
	require.NoError(t, sender.Send(context.Background(), sampleReport()))
}

func TestSendRefusedRecipientDoesNotBlockOthers(t *testing.T) {
	sender, err := NewSMTPSender(validConfig())
	require.NoError(t, err)

	var delivered []string
	sender.send = func(_ string, _ smtp.Auth, _ string, to []string, _ []byte) error {
		require.Len(t, to, 1)
		if to[0] == "hiring@example.com" {
			return errors.New("550 mailbox unavailable")
		}
		delivered = append(delivered, to[0])
		return nil
	}

	err = sender.Send(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Equal(t, []string{"ops@example.com"}, delivered)
	assert.Contains(t, err.Error(), "send report to hiring@example.com")
	assert.NotContains(t, err.Error(), "send report to ops@example.com")
}

func TestSendWrapsTransportError(t *testing.T) {
	sender, err := NewSMTPSender(validConfig())
	require.NoError(t, err)

	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection reset")
	}
	err = sender.Send(context.Background(), sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hiring@example.com")
}

func TestSendHonorsCancelledContext(t *testing.T) {
	sender, err := NewSMTPSender(validConfig())
	require.NoError(t, err)
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send should not be reached")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, sender.Send(ctx, sampleReport()), context.Canceled)
}

func TestRenderHTML(t *testing.T) {
	body := RenderHTML(sampleReport())
	assert.Contains(t, body, "<b>Question:</b> What is your name?<br><b>Answer:</b> Ada Lovelace<br><br>")
	assert.Contains(t, body, "<br><b>Remote Path:</b> https://files.example/a.mp3<br><b>Score:</b> 10<br><br>")
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	r := sampleReport()
	r.Lines = []report.Line{{Question: "Why?", Answer: "<script>alert(1)</script>"}}
	body := RenderHTML(r)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}
