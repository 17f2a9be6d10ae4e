package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/plcforge/plcforge/ent"
	"github.com/plcforge/plcforge/ent/conversationmessage"
	"github.com/plcforge/plcforge/internal/domain"
)

// MessageService is the ent-backed persistence for ConversationMessage
// rows, the turn-by-turn record of the conversational interface a
// project's users drive stages and regenerations through (spec.md §9).
type MessageService struct {
	client *ent.Client
}

// NewMessageService wraps an ent client.
func NewMessageService(client *ent.Client) *MessageService {
	return &MessageService{client: client}
}

// Create inserts a ConversationMessage row. Messages are immutable once
// written.
func (s *MessageService) Create(ctx context.Context, msg domain.ConversationMessage) (domain.ConversationMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	row, err := s.client.ConversationMessage.Create().
		SetID(msg.ID).
		SetProjectID(msg.ProjectID).
		SetRole(conversationmessage.Role(msg.Role)).
		SetContent(msg.Content).
		Save(ctx)
	if err != nil {
		return domain.ConversationMessage{}, fmt.Errorf("services: create conversation message: %w", err)
	}
	return messageFromEnt(row), nil
}

// ListByProject returns a project's conversation history ordered oldest
// first.
func (s *MessageService) ListByProject(ctx context.Context, projectID string) ([]domain.ConversationMessage, error) {
	rows, err := s.client.ConversationMessage.Query().
		Where(conversationmessage.ProjectIDEQ(projectID)).
		Order(ent.Asc(conversationmessage.FieldCreatedAt)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("services: list conversation messages for project %s: %w", projectID, err)
	}
	out := make([]domain.ConversationMessage, len(rows))
	for i, row := range rows {
		out[i] = messageFromEnt(row)
	}
	return out, nil
}

func messageFromEnt(row *ent.ConversationMessage) domain.ConversationMessage {
	return domain.ConversationMessage{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		Role:      domain.MessageRole(row.Role),
		Content:   row.Content,
		CreatedAt: row.CreatedAt,
	}
}
