// Package chatbot answers investor questions through the AI client.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/kimheonningg/KB-ai-challenge-BE/internal/common"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/interfaces"
	"github.com/kimheonningg/KB-ai-challenge-BE/internal/models"
)

// maxContextMessages bounds how much history is replayed into the prompt.
const maxContextMessages = 20

// Service implements ChatService
type Service struct {
	ai     interfaces.AIClient
	logger *common.Logger
}

// NewService creates a new chatbot service
func NewService(ai interfaces.AIClient, logger *common.Logger) *Service {
	return &Service{ai: ai, logger: logger}
}

// Reply answers the newest user message and returns the conversation with
// the AI turn appended.
func (s *Service) Reply(ctx context.Context, userID string, previous []models.ChatMessage) ([]models.ChatMessage, error) {
	if len(previous) == 0 {
		return nil, fmt.Errorf("conversation is empty")
	}
	last := previous[len(previous)-1]
	if last.From != "user" || strings.TrimSpace(last.Text) == "" {
		return nil, fmt.Errorf("last message must be a non-empty user message")
	}

	answer, err := s.ai.GenerateContent(ctx, buildChatPrompt(previous))
	if err != nil {
		return nil, fmt.Errorf("failed to generate reply: %w", err)
	}

	nextID := 1
	for _, m := range previous {
		if m.ID >= nextID {
			nextID = m.ID + 1
		}
	}

	s.logger.Debug().Str("user_id", userID).Int("turns", len(previous)).Msg("Chat reply generated")
	return append(previous, models.ChatMessage{
		ID:   nextID,
		From: "ai",
		Text: strings.TrimSpace(answer),
	}), nil
}

func buildChatPrompt(previous []models.ChatMessage) string {
	if len(previous) > maxContextMessages {
		previous = previous[len(previous)-maxContextMessages:]
	}

	var sb strings.Builder
	sb.WriteString("You are a Korean financial assistant chatbot. Answer the last user message in Korean, concisely.\n\nConversation so far:\n")
	for _, m := range previous {
		sb.WriteString(m.From)
		sb.WriteString(": ")
		sb.WriteString(m.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Ensure Service implements ChatService
var _ interfaces.ChatService = (*Service)(nil)
