package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/lumagram/backend/internal/models"
	"github.com/lumagram/backend/internal/repositories"
	"gorm.io/gorm"
)

// ConversationHandler handles direct-message HTTP requests
type ConversationHandler struct {
	conversationRepository repositories.ConversationRepository
	messageRepository      repositories.MessageRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(
	conversationRepo repositories.ConversationRepository,
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
) *ConversationHandler {
	return &ConversationHandler{
		conversationRepository: conversationRepo,
		messageRepository:      messageRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterConversationRoutes registers conversation and message routes
func (h *ConversationHandler) RegisterConversationRoutes(g *echo.Group) {
	g.GET("/conversations", h.GetConversations)
	g.POST("/conversations", h.CreateConversation)
	g.GET("/conversations/:id/messages", h.GetMessages)
	g.POST("/conversations/:id/messages", h.SendMessage)
	g.POST("/messages/:id/seen", h.MarkMessageSeen)
}

// GetConversations returns the current user's conversations, most recently
// active first
func (h *ConversationHandler) GetConversations(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conversations, err := h.conversationRepository.GetUserConversations(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, conversations)
}

// CreateConversation finds or creates the conversation for the given
// participants plus the current user. Repeated calls with the same member
// set, in any order, return the same conversation.
func (h *ConversationHandler) CreateConversation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	for _, id := range req.ParticipantIDs {
		if _, err := h.userRepository.GetUserByID(id); err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Participant not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	participants := append(req.ParticipantIDs, currentUserID)
	conversation, err := h.conversationRepository.GetOrCreateConversation(participants)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, conversation)
}

// GetMessages returns a conversation's messages, newest first, with cursor
// pagination; only participants may read them
func (h *ConversationHandler) GetMessages(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid conversation ID")
	}

	isParticipant, err := h.conversationRepository.IsParticipant(uint(conversationID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isParticipant {
		return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
	}

	limit := parseLimit(c, 50, 100)
	cursor := parseCursor(c)

	messages, err := h.messageRepository.GetConversationMessages(uint(conversationID), limit, cursor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, messages)
}

// SendMessage posts a message into a conversation the current user belongs to
func (h *ConversationHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid conversation ID")
	}

	var req models.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	isParticipant, err := h.conversationRepository.IsParticipant(uint(conversationID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isParticipant {
		return echo.NewHTTPError(http.StatusNotFound, "Conversation not found")
	}

	message := &models.Message{
		ConversationID: uint(conversationID),
		SenderID:       currentUserID,
		Text:           req.Text,
		Media:          req.Media,
	}

	if err := h.messageRepository.CreateMessage(message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.notifyParticipants(uint(conversationID), currentUserID)

	return c.JSON(http.StatusCreated, message)
}

// MarkMessageSeen records that the current user has seen a message
func (h *ConversationHandler) MarkMessageSeen(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	messageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid message ID")
	}

	message, err := h.messageRepository.GetMessageByID(uint(messageID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Message not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	isParticipant, err := h.conversationRepository.IsParticipant(message.ConversationID, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isParticipant {
		return echo.NewHTTPError(http.StatusNotFound, "Message not found")
	}

	if err := h.messageRepository.MarkMessageSeen(uint(messageID), currentUserID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// notifyParticipants records a message notification for every other
// participant; failures do not fail the request
func (h *ConversationHandler) notifyParticipants(conversationID, senderID uint) {
	participantIDs, err := h.conversationRepository.GetParticipantIDs(conversationID)
	if err != nil {
		log.Printf("failed to load conversation participants: %v", err)
		return
	}
	for _, id := range participantIDs {
		if id == senderID {
			continue
		}
		entityID := conversationID
		notification := &models.Notification{
			RecipientID: id,
			Type:        models.NotificationTypeMessage,
			ActorID:     senderID,
			EntityID:    &entityID,
		}
		if err := h.notificationRepository.CreateNotification(notification); err != nil {
			log.Printf("failed to create message notification: %v", err)
		}
	}
}
