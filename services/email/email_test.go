package emailsvc

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/mail"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/clubboard/core"
)

func testMessage() *core.EmailMessage {
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: "Coach", Address: "coach@sttoms.edu"}},
		Cc:      []mail.Address{{Address: "office@sttoms.edu"}},
		Subject: "Progress report",
		Body:    "See attached.",
	}
	msg.Attach([]byte("student,team\n"), "progress.csv", "text/csv")
	return msg
}

func TestConsoleService_Send(t *testing.T) {
	var out bytes.Buffer
	svc := NewConsoleService(&out, core.NewTestConfig())

	assert.Equal(t, errNoRecipients, svc.Send(&core.EmailMessage{Subject: "nobody"}))
	assert.Equal(t, errEmptyMessage, svc.Send(&core.EmailMessage{
		To:      []mail.Address{{Address: "coach@sttoms.edu"}},
		Subject: "blank",
	}))
	assert.Empty(t, svc.Sent)

	attachmentOnly := &core.EmailMessage{To: []mail.Address{{Address: "coach@sttoms.edu"}}, Subject: "csv"}
	attachmentOnly.Attach([]byte("a,b\n"), "report.csv", "text/csv")
	require.NoError(t, svc.Send(attachmentOnly))
	svc.Sent = nil
	out.Reset()

	require.NoError(t, svc.Send(testMessage()))
	assert.Contains(t, out.String(), "Subject: [Club Board] Progress report\r\n")
	assert.Contains(t, out.String(), `To: "Coach" <coach@sttoms.edu>`)
	assert.Contains(t, out.String(), "CC: <office@sttoms.edu>")
	assert.Contains(t, out.String(), "[attachment progress.csv (text/csv, 13 bytes)]")
	require.Len(t, svc.Sent, 1)
	assert.Equal(t, "Progress report", svc.Sent[0].Subject)
}

func TestSendgridService_Send(t *testing.T) {
	conf := core.NewTestConfig()
	conf.SendgridApiKey = "SG.key"
	svc := NewSendgridService(conf)

	var sent rest.Request
	svc.api = func(req rest.Request) (*rest.Response, error) {
		sent = req
		return &rest.Response{StatusCode: http.StatusAccepted}, nil
	}
	require.NoError(t, svc.Send(testMessage()))

	assert.Equal(t, rest.Post, sent.Method)
	assert.Equal(t, "https://api.sendgrid.com/v3/mail/send", sent.BaseURL)
	assert.Equal(t, "Bearer SG.key", sent.Headers["Authorization"])

	var body struct {
		Personalizations []struct {
			Subject string `json:"subject"`
			To      []struct {
				Email string `json:"email"`
			} `json:"to"`
		} `json:"personalizations"`
		Attachments []struct {
			Content  string `json:"content"`
			Filename string `json:"filename"`
		} `json:"attachments"`
	}
	require.NoError(t, json.Unmarshal(sent.Body, &body))
	require.Len(t, body.Personalizations, 1)
	assert.Equal(t, "[Club Board] Progress report", body.Personalizations[0].Subject)
	assert.Equal(t, "coach@sttoms.edu", body.Personalizations[0].To[0].Email)
	require.Len(t, body.Attachments, 1)
	assert.Equal(t, "progress.csv", body.Attachments[0].Filename)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("student,team\n")), body.Attachments[0].Content)

	t.Run("api error status", func(t *testing.T) {
		svc.api = func(req rest.Request) (*rest.Response, error) {
			return &rest.Response{StatusCode: http.StatusUnauthorized, Body: "bad key"}, nil
		}
		assert.EqualError(t, svc.Send(testMessage()), "sending email - status: 401 - body: bad key")
	})

	t.Run("no recipients", func(t *testing.T) {
		assert.Equal(t, errNoRecipients, svc.Send(&core.EmailMessage{}))
	})

	t.Run("empty message", func(t *testing.T) {
		called := false
		svc.api = func(req rest.Request) (*rest.Response, error) {
			called = true
			return &rest.Response{StatusCode: http.StatusAccepted}, nil
		}
		msg := &core.EmailMessage{To: []mail.Address{{Address: "coach@sttoms.edu"}}, Subject: "blank"}
		assert.Equal(t, errEmptyMessage, svc.Send(msg))
		assert.False(t, called)
	})
}

func TestNew(t *testing.T) {
	conf := core.NewTestConfig()
	console := NewConsoleService(&bytes.Buffer{}, conf)
	assert.Equal(t, console, New(conf, console))

	conf.SendgridApiKey = "SG.key"
	conf.Debug = false
	_, ok := New(conf, console).(*SendgridService)
	assert.True(t, ok)
}
