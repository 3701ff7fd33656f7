package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// EmailService отправляет служебные письма
type EmailService interface {
	SendVerificationCode(ctx context.Context, toEmail, code, idempotencyKey string) error
}

// NoopEmailService используется, когда ключ Resend не задан. Код пишется в лог.
type NoopEmailService struct{}

func (s *NoopEmailService) SendVerificationCode(ctx context.Context, toEmail, code, idempotencyKey string) error {
	log.Printf("[EmailService] Отправка отключена, код для %s: %s", toEmail, code)
	return nil
}

// ResendEmailService отправляет письма через Resend API
type ResendEmailService struct {
	from     string
	client   *resend.Client
	codeTTL  time.Duration
	attempts int
}

// NewResendEmailService создает отправщика. codeTTL попадает в текст письма.
func NewResendEmailService(apiKey, from string, codeTTL time.Duration) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	if codeTTL <= 0 {
		codeTTL = 15 * time.Minute
	}
	return &ResendEmailService{
		from:     from,
		client:   resend.NewClient(apiKey),
		codeTTL:  codeTTL,
		attempts: 3,
	}, nil
}

func (s *ResendEmailService) SendVerificationCode(ctx context.Context, toEmail, code, idempotencyKey string) error {
	if toEmail == "" || code == "" {
		return fmt.Errorf("toEmail and code are required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "SpaceSnap: confirm your email",
		Text:    verificationText(code, s.codeTTL),
		Html:    verificationHTML(code, s.codeTTL),
	}

	options := &resend.SendEmailOptions{}
	if strings.TrimSpace(idempotencyKey) != "" {
		options.IdempotencyKey = strings.TrimSpace(idempotencyKey)
	}

	var lastErr error
	for attempt := 0; attempt < s.attempts; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	log.Printf("[EmailService] Resend не принял письмо для %s после %d попыток", toEmail, s.attempts)
	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func verificationText(code string, ttl time.Duration) string {
	return fmt.Sprintf("Welcome to SpaceSnap! Your confirmation code is %s. It is valid for %d minutes.",
		code, int(ttl.Minutes()))
}

func verificationHTML(code string, ttl time.Duration) string {
	return fmt.Sprintf("<p>Welcome to SpaceSnap!</p><p>Your confirmation code is <strong>%s</strong>.</p><p>It is valid for %d minutes.</p>",
		code, int(ttl.Minutes()))
}

// resendRetryDelay решает, стоит ли повторять отправку, и сколько ждать
func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && (netErr.Timeout() || netErr.Temporary()) {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
