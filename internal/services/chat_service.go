package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"lakshmi/internal/assistant"
	apperrors "lakshmi/internal/errors"
	"lakshmi/internal/logger"
	"lakshmi/internal/models"
	"lakshmi/internal/pagination"
)

const chatTitleLimit = 30

// Replier produces the assistant's answer for a user query. Satisfied by
// *assistant.Assistant; handlers and tests may substitute their own.
type Replier interface {
	Reply(ctx context.Context, in assistant.Input) string
}

// ChatService handles chat threads and the message exchange flow.
type ChatService struct {
	db      *gorm.DB
	replier Replier
}

// NewChatService creates a new ChatService.
func NewChatService(db *gorm.DB, replier Replier) *ChatService {
	return &ChatService{db: db, replier: replier}
}

// CreateChat starts a new, empty chat thread.
func (s *ChatService) CreateChat(userID string) (*models.Chat, error) {
	chat := &models.Chat{UserID: userID}
	if err := s.db.Create(chat).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	chat.Messages = []models.ChatMessage{}
	return chat, nil
}

// GetChatHistory lists the user's chats newest first, without message bodies.
func (s *ChatService) GetChatHistory(userID string, page pagination.PageRequest) (*pagination.PageResponse[ChatSummary], error) {
	page.Defaults()

	var total int64
	if err := s.db.Model(&models.Chat{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var chats []models.Chat
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Scopes(pagination.Paginate(page)).
		Find(&chats).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summaries := make([]ChatSummary, 0, len(chats))
	for _, c := range chats {
		summaries = append(summaries, ChatSummary{ID: c.ID, Title: c.Title, CreatedAt: c.CreatedAt})
	}

	resp := pagination.NewPageResponse(summaries, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetChat returns an owned chat with its messages in conversation order.
func (s *ChatService) GetChat(userID, chatID string) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ? AND user_id = ?", chatID, userID).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if chat.Messages == nil {
		chat.Messages = []models.ChatMessage{}
	}
	return &chat, nil
}

// RenameChat sets an owned chat's title.
func (s *ChatService) RenameChat(userID, chatID, title string) (*models.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Title is required")
	}

	result := s.db.Model(&models.Chat{}).
		Where("id = ? AND user_id = ?", chatID, userID).
		Update("title", title)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrChatNotFound
	}
	return s.GetChat(userID, chatID)
}

// DeleteChat removes an owned chat and all of its messages.
func (s *ChatService) DeleteChat(userID, chatID string) error {
	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", chatID, userID).Delete(&models.Chat{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		if deleted == 0 {
			return nil
		}
		return tx.Where("chat_id = ?", chatID).Delete(&models.ChatMessage{}).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if deleted == 0 {
		return apperrors.ErrChatNotFound
	}

	logger.Get().Infow("chat deleted", "chat_id", chatID, "user_id", userID)
	return nil
}

// SendMessage records a user message (or applies an edit to an earlier one),
// computes the assistant's reply, and stores it. An edited message's AI reply
// is overwritten in place when one directly follows it, so a conversation
// never grows from an edit alone. Returns the assistant reply text.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID, text string, edited bool, editedMessageID string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.ErrEmptyMessage
	}

	var chat models.Chat
	if err := s.db.Where("id = ? AND user_id = ?", chatID, userID).First(&chat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrChatNotFound
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var messages []models.ChatMessage
	if err := s.db.Where("chat_id = ?", chatID).Order("position ASC").Find(&messages).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// An edit targets an existing user message; a stale or foreign ID
	// degrades to a normal append rather than failing the exchange.
	editIndex := -1
	if edited && editedMessageID != "" {
		for i, m := range messages {
			if m.ID == editedMessageID && m.Sender == models.SenderUser {
				editIndex = i
				break
			}
		}
	}

	reply := s.reply(ctx, userID, text)
	now := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		userPos := editIndex
		if editIndex >= 0 {
			err := tx.Model(&models.ChatMessage{}).
				Where("id = ?", messages[editIndex].ID).
				Updates(map[string]any{"text": text, "edited": true, "timestamp": now}).Error
			if err != nil {
				return err
			}
		} else {
			userPos = len(messages)
			userMsg := models.ChatMessage{
				ChatID:    chatID,
				Sender:    models.SenderUser,
				Text:      text,
				Position:  userPos,
				Timestamp: now,
			}
			if err := tx.Create(&userMsg).Error; err != nil {
				return err
			}
		}

		replyPos := userPos + 1
		if replyPos < len(messages) && messages[replyPos].Sender == models.SenderAI {
			// Reuse the existing reply slot instead of growing the thread.
			err := tx.Model(&models.ChatMessage{}).
				Where("id = ?", messages[replyPos].ID).
				Updates(map[string]any{"text": reply, "timestamp": now}).Error
			if err != nil {
				return err
			}
		} else {
			if replyPos < len(messages) {
				err := tx.Model(&models.ChatMessage{}).
					Where("chat_id = ? AND position >= ?", chatID, replyPos).
					Update("position", gorm.Expr("position + 1")).Error
				if err != nil {
					return err
				}
			}
			aiMsg := models.ChatMessage{
				ChatID:    chatID,
				Sender:    models.SenderAI,
				Text:      reply,
				Position:  replyPos,
				Timestamp: now,
			}
			if err := tx.Create(&aiMsg).Error; err != nil {
				return err
			}
		}

		if chat.Title == "" {
			return tx.Model(&chat).Update("title", deriveTitle(text)).Error
		}
		return nil
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return reply, nil
}

// reply assembles the user's finance data and asks the assistant for an
// answer. Missing profile or data never blocks a reply.
func (s *ChatService) reply(ctx context.Context, userID, query string) string {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		logger.Get().Warnw("chat reply: user lookup failed", "user_id", userID, "error", err)
	}

	var profile *models.OnboardingProfile
	var p models.OnboardingProfile
	if err := s.db.Where("user_id = ?", userID).First(&p).Error; err == nil {
		profile = &p
	}

	var goals []models.Goal
	if err := s.db.Where("user_id = ?", userID).Order("deadline ASC").Find(&goals).Error; err != nil {
		logger.Get().Warnw("chat reply: goal lookup failed", "user_id", userID, "error", err)
	}

	var transactions []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&transactions).Error; err != nil {
		logger.Get().Warnw("chat reply: transaction lookup failed", "user_id", userID, "error", err)
	}

	return s.replier.Reply(ctx, assistant.Input{
		UserName:     user.Name,
		Profile:      profile,
		Goals:        goals,
		Transactions: transactions,
		Query:        query,
	})
}

// deriveTitle builds a chat title from the first message text.
func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= chatTitleLimit {
		return text
	}
	return string(runes[:chatTitleLimit]) + "..."
}
