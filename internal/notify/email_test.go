package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/asbestos-leads/pkg/logging"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{FromEmail: "alerts@asbestos.example"}, nil)
	assert.Nil(t, sender)
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{APIKey: "test-key", FromEmail: "alerts@asbestos.example"}, nil)
	require.NotNil(t, sender)
	assert.Equal(t, defaultFromName, sender.from.Name)
}

func TestSendGridSender_Send(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sender := NewSendGridSender(SendGridConfig{APIKey: "test-key", FromEmail: "alerts@asbestos.example"}, logging.Discard())
	require.NotNil(t, sender)
	sender.client.Request.BaseURL = srv.URL + "/v3/mail/send"

	err := sender.Send(context.Background(), EmailMessage{
		To:       "intake@lawfirm.example",
		ReplyTo:  "mparker@yahoo.com",
		Subject:  "New lead",
		Body:     "details",
		Category: alertCategory,
	})
	require.NoError(t, err)
	assert.Equal(t, "New lead", payload["subject"])
	assert.Equal(t, map[string]any{"email": "mparker@yahoo.com"}, payload["reply_to"])
	assert.Equal(t, []any{alertCategory}, payload["categories"])
}

func TestSendGridSender_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sender := NewSendGridSender(SendGridConfig{APIKey: "bad-key", FromEmail: "alerts@asbestos.example"}, logging.Discard())
	sender.client.Request.BaseURL = srv.URL

	err := sender.Send(context.Background(), EmailMessage{To: "intake@lawfirm.example", Subject: "x", Body: "y"})
	assert.ErrorContains(t, err, "status 401")
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{}
	assert.Error(t, sender.Send(context.Background(), EmailMessage{To: "a@b.co"}))
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
}

func TestSESSender_Send(t *testing.T) {
	fake := &fakeSES{}
	sender := NewSESSender(fake, SESConfig{FromEmail: "alerts@asbestos.example"}, logging.Discard())

	err := sender.Send(context.Background(), EmailMessage{To: "intake@lawfirm.example", Subject: "New lead", Body: "details"})
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, `"Asbestos Lead Desk" <alerts@asbestos.example>`, aws.ToString(fake.input.FromEmailAddress))
	assert.Equal(t, []string{"intake@lawfirm.example"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "details", aws.ToString(fake.input.Content.Simple.Body.Text.Data))
	assert.Nil(t, fake.input.Content.Simple.Body.Html)
	assert.Empty(t, fake.input.ReplyToAddresses)
	assert.Empty(t, fake.input.EmailTags)
}

func TestSESSender_ReplyToAndCategory(t *testing.T) {
	fake := &fakeSES{}
	sender := NewSESSender(fake, SESConfig{FromEmail: "alerts@asbestos.example", FromName: "Intake"}, logging.Discard())

	err := sender.Send(context.Background(), EmailMessage{To: "intake@lawfirm.example", ReplyTo: "mparker@yahoo.com", Subject: "s", HTML: "<p>x</p>", Category: alertCategory})
	require.NoError(t, err)

	assert.Equal(t, `"Intake" <alerts@asbestos.example>`, aws.ToString(fake.input.FromEmailAddress))
	assert.Equal(t, []string{"mparker@yahoo.com"}, fake.input.ReplyToAddresses)
	require.Len(t, fake.input.EmailTags, 1)
	assert.Equal(t, alertCategory, aws.ToString(fake.input.EmailTags[0].Value))
	assert.Nil(t, fake.input.Content.Simple.Body.Text)
}

func TestSESSender_Error(t *testing.T) {
	sender := NewSESSender(&fakeSES{err: errors.New("throttled")}, SESConfig{FromEmail: "alerts@asbestos.example"}, logging.Discard())
	assert.ErrorContains(t, sender.Send(context.Background(), EmailMessage{To: "a@b.co", Body: "x"}), "throttled")
}

func TestStubEmailSender_Send(t *testing.T) {
	assert.NoError(t, NewStubEmailSender(nil).Send(context.Background(), EmailMessage{To: "a@b.co", Subject: "s"}))
}
