package application

import (
	"context"
	"errors"
	"expvar"
	"time"
	"unicode/utf8"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"

	"github.com/skmohanty2628/Finverse-AI-Finance/internal/infrastructure/genai"
)

// FallbackReply is what clients see whenever the assistant upstream fails.
// Provider error details stay in server logs.
const FallbackReply = "Sorry, I couldn't generate a response."

var (
	ErrMessageTooLong = errors.New("message too long")
	ErrUpstream       = errors.New("assistant upstream failed")
)

var (
	chatRelayTotal    = expvar.NewInt("chat_relay_total")
	chatRelayFailures = expvar.NewInt("chat_relay_failures")
)

type ChatService struct {
	Provider genai.Provider
	Logger   *logrus.Logger
	Timeout  time.Duration
	MaxChars int
}

func NewChatService(p genai.Provider, logger *logrus.Logger, timeout time.Duration, maxChars int) *ChatService {
	return &ChatService{Provider: p, Logger: logger, Timeout: timeout, MaxChars: maxChars}
}

// Relay forwards one user message to the provider and returns its reply.
// The whole exchange, retry included, is bounded by s.Timeout so a slow
// upstream cannot hold the request handler hostage. Only transport-class
// failures get the single retry; provider rejections fail straight away.
func (s *ChatService) Relay(ctx context.Context, userID, message string) (string, error) {
	if s.MaxChars > 0 && utf8.RuneCountInString(message) > s.MaxChars {
		return "", ErrMessageTooLong
	}

	chatRelayTotal.Add(1)

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	var reply string
	backoff := retry.WithMaxRetries(1, retry.NewConstant(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := s.Provider.GenerateReply(ctx, message)
		if err != nil {
			if errors.Is(err, genai.ErrUnavailable) {
				return retry.RetryableError(err)
			}
			return err
		}
		reply = r
		return nil
	})
	if err != nil {
		chatRelayFailures.Add(1)
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", userID).Error("chat relay failed")
		}
		return "", ErrUpstream
	}
	return reply, nil
}
