package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResendEmailService_Validation(t *testing.T) {
	_, err := NewResendEmailService("", "SpaceSnap <no-reply@spacesnap.app>", time.Minute)
	assert.Error(t, err)

	_, err = NewResendEmailService("re_test", "", time.Minute)
	assert.Error(t, err)

	svc, err := NewResendEmailService("re_test", "SpaceSnap <no-reply@spacesnap.app>", 0)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, svc.codeTTL)
}

func TestResendEmailService_RequiresRecipientAndCode(t *testing.T) {
	svc, err := NewResendEmailService("re_test", "SpaceSnap <no-reply@spacesnap.app>", time.Minute)
	require.NoError(t, err)

	assert.Error(t, svc.SendVerificationCode(context.Background(), "", "123456", ""))
	assert.Error(t, svc.SendVerificationCode(context.Background(), "user@example.com", "", ""))
}

func TestVerificationBodies_ContainCodeAndTTL(t *testing.T) {
	text := verificationText("482913", 15*time.Minute)
	html := verificationHTML("482913", 15*time.Minute)

	assert.Contains(t, text, "482913")
	assert.Contains(t, text, "15 minutes")
	assert.Contains(t, html, "<strong>482913</strong>")
}

func TestResendRetryDelay(t *testing.T) {
	wait, ok := resendRetryDelay(&resend.RateLimitError{RetryAfter: "2"}, 0)
	assert.True(t, ok)
	assert.Equal(t, 2*time.Second, wait)

	wait, ok = resendRetryDelay(&resend.RateLimitError{RetryAfter: "120"}, 0)
	assert.True(t, ok)
	assert.Equal(t, 30*time.Second, wait)

	wait, ok = resendRetryDelay(errors.New("i/o timeout"), 1)
	assert.True(t, ok)
	assert.Equal(t, time.Second, wait)

	_, ok = resendRetryDelay(errors.New("invalid from address"), 0)
	assert.False(t, ok)
}

func TestNoopEmailService_NeverFails(t *testing.T) {
	svc := &NoopEmailService{}
	assert.NoError(t, svc.SendVerificationCode(context.Background(), "user@example.com", "123456", "key"))
}
