package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "lakshmi/internal/errors"
	"lakshmi/internal/pagination"
	"lakshmi/internal/services"
)

// ChatHandler handles assistant chat requests.
type ChatHandler struct {
	chatService services.ChatServicer
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService services.ChatServicer) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessageRequest represents a message exchange payload. Set Edited and
// EditedMessageID to rewrite an earlier user message instead of appending.
type SendMessageRequest struct {
	Text            string `json:"text" binding:"required"`
	Edited          bool   `json:"edited"`
	EditedMessageID string `json:"editedMessageId"`
}

// RenameChatRequest represents the chat rename payload.
type RenameChatRequest struct {
	Title string `json:"title" binding:"required,max=100"`
}

// ReplyResponse represents the assistant's reply.
type ReplyResponse struct {
	Reply string `json:"reply"`
}

// NewChat starts an empty chat thread
// @Summary     Start a new chat
// @Description Create an empty chat thread with the assistant
// @Tags        chats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     201 {object} models.Chat "Chat created"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /chats/new [post]
func (h *ChatHandler) NewChat(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chat, err := h.chatService.CreateChat(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"chat": chat})
}

// SendMessage exchanges a message with the assistant
// @Summary     Send a message
// @Description Record a user message (or an edit of an earlier one) and return the assistant's reply
// @Tags        chats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       chatId path string true "Chat ID"
// @Param       request body SendMessageRequest true "Message text"
// @Success     200 {object} ReplyResponse "Assistant reply"
// @Failure     400 {object} ErrorResponse "Message text required"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Chat not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /chats/{chatId}/message [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.ErrEmptyMessage)
		return
	}

	reply, err := h.chatService.SendMessage(
		c.Request.Context(), userID, c.Param("chatId"), req.Text, req.Edited, req.EditedMessageID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// GetChatHistory lists the user's chats
// @Summary     List chats
// @Description Get the user's chat threads newest first, without message bodies
// @Tags        chats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page query int false "Page number (default 1)"
// @Param       page_size query int false "Page size (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[services.ChatSummary] "Paginated chat summaries"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /chats/history [get]
func (h *ChatHandler) GetChatHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.chatService.GetChatHistory(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetChat returns a chat with its messages
// @Summary     Get chat by ID
// @Description Get a chat and its messages in conversation order
// @Tags        chats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       chatId path string true "Chat ID"
// @Success     200 {object} models.Chat "Chat with messages"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Chat not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /chats/{chatId} [get]
func (h *ChatHandler) GetChat(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chat, err := h.chatService.GetChat(userID, c.Param("chatId"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat": chat})
}

// RenameChat sets a chat's title
// @Summary     Rename chat
// @Description Set the title of a chat thread
// @Tags        chats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       chatId path string true "Chat ID"
// @Param       request body RenameChatRequest true "New title"
// @Success     200 {object} models.Chat "Updated chat"
// @Failure     400 {object} ErrorResponse "Title is required"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Chat not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /chats/{chatId}/title [put]
func (h *ChatHandler) RenameChat(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RenameChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Title is required"))
		return
	}

	chat, err := h.chatService.RenameChat(userID, c.Param("chatId"), req.Title)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat": chat})
}

// DeleteChat removes a chat and its messages
// @Summary     Delete chat
// @Description Delete a chat thread and every message in it
// @Tags        chats
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       chatId path string true "Chat ID"
// @Success     200 {object} MessageResponse "Chat deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Chat not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /chats/{chatId} [delete]
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.chatService.DeleteChat(userID, c.Param("chatId")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Chat deleted successfully"})
}
