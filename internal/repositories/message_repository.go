package repositories

import (
	"time"

	"github.com/lumagram/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetMessageByID(id uint) (*models.Message, error)
	GetConversationMessages(conversationID uint, limit int, cursor uint) ([]models.MessageWithSender, error)
	MarkMessageSeen(messageID, userID uint) error
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

// CreateMessage inserts the message and bumps the conversation's last-message
// pointer and activity timestamp in one transaction
func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).Where("id = ?", message.ConversationID).
			UpdateColumns(map[string]interface{}{
				"last_message_id": message.ID,
				"updated_at":      time.Now(),
			}).Error
	})
}

// GetMessageByID retrieves a message by ID
func (r *PostgresMessageRepository) GetMessageByID(id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, err
	}
	if err := r.loadSeenBy(&message); err != nil {
		return nil, err
	}
	return &message, nil
}

// GetConversationMessages returns a conversation's messages with their
// senders, newest first, with cursor pagination
func (r *PostgresMessageRepository) GetConversationMessages(conversationID uint, limit int, cursor uint) ([]models.MessageWithSender, error) {
	q := r.db.Where("conversation_id = ?", conversationID)
	if cursor != 0 {
		q = q.Where("messages.created_at < (?)",
			r.db.Model(&models.Message{}).Select("created_at").Where("id = ?", cursor),
		)
	}

	var messages []models.Message
	if err := q.Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, err
	}

	userCache := make(map[uint]models.UserCompact)
	result := make([]models.MessageWithSender, len(messages))
	for i, m := range messages {
		if err := r.loadSeenBy(&m); err != nil {
			return nil, err
		}
		result[i] = models.MessageWithSender{Message: m}
		if sender, ok := userCache[m.SenderID]; ok {
			result[i].Sender = sender
			continue
		}
		var user models.User
		if err := r.db.First(&user, m.SenderID).Error; err == nil {
			compact := user.ToCompact()
			userCache[m.SenderID] = compact
			result[i].Sender = compact
		}
	}
	return result, nil
}

// MarkMessageSeen records that the user has seen the message. The unique
// index on (message_id, user_id) makes repeated calls a no-op.
func (r *PostgresMessageRepository) MarkMessageSeen(messageID, userID uint) error {
	var count int64
	err := r.db.Model(&models.MessageRead{}).
		Where("message_id = ? AND user_id = ?", messageID, userID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	read := &models.MessageRead{MessageID: messageID, UserID: userID, SeenAt: time.Now()}
	return r.db.Create(read).Error
}

func (r *PostgresMessageRepository) loadSeenBy(message *models.Message) error {
	var ids []uint
	err := r.db.Model(&models.MessageRead{}).
		Where("message_id = ?", message.ID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return err
	}
	message.SeenBy = ids
	return nil
}
