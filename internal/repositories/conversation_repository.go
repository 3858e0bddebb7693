package repositories

import (
	"sort"
	"strconv"
	"strings"

	"github.com/lumagram/backend/internal/models"
	"gorm.io/gorm"
)

// ConversationRepository defines the interface for conversation data operations
type ConversationRepository interface {
	GetOrCreateConversation(participantIDs []uint) (*models.Conversation, error)
	GetConversationByID(id uint) (*models.Conversation, error)
	GetUserConversations(userID uint) ([]models.ConversationWithLastMessage, error)
	IsParticipant(conversationID, userID uint) (bool, error)
	GetParticipantIDs(conversationID uint) ([]uint, error)
}

// PostgresConversationRepository implements ConversationRepository for PostgreSQL
type PostgresConversationRepository struct {
	db *gorm.DB
}

// NewPostgresConversationRepository creates a new PostgresConversationRepository
func NewPostgresConversationRepository(db *gorm.DB) *PostgresConversationRepository {
	return &PostgresConversationRepository{db: db}
}

// participantKey is the canonical representation of a participant set:
// deduplicated IDs, ascending, joined with ":". The unique index on it is
// what makes GetOrCreateConversation race-safe.
func participantKey(ids []uint) (string, []uint) {
	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i] < unique[j] })

	parts := make([]string, len(unique))
	for i, id := range unique {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ":"), unique
}

// GetOrCreateConversation finds the conversation for the given participant
// set or creates it. The set is canonicalized first, so two calls with the
// same members in any order resolve to the same conversation; if two callers
// race on creation the unique key rejects the loser, which then re-reads the
// winner's row.
func (r *PostgresConversationRepository) GetOrCreateConversation(participantIDs []uint) (*models.Conversation, error) {
	key, ids := participantKey(participantIDs)

	existing, err := r.getByKey(key)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	conversation := &models.Conversation{ParticipantKey: key}
	for _, id := range ids {
		conversation.Participants = append(conversation.Participants, models.ConversationParticipant{UserID: id})
	}
	if createErr := r.db.Create(conversation).Error; createErr != nil {
		// Lost a creation race: the unique key exists now, return the winner.
		if existing, err := r.getByKey(key); err == nil {
			return existing, nil
		}
		return nil, createErr
	}
	conversation.ParticipantIDs = ids
	return conversation, nil
}

func (r *PostgresConversationRepository) getByKey(key string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.Where("participant_key = ?", key).First(&conversation).Error; err != nil {
		return nil, err
	}
	ids, err := r.GetParticipantIDs(conversation.ID)
	if err != nil {
		return nil, err
	}
	conversation.ParticipantIDs = ids
	return &conversation, nil
}

// GetConversationByID retrieves a conversation with its participant IDs
func (r *PostgresConversationRepository) GetConversationByID(id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := r.db.First(&conversation, id).Error; err != nil {
		return nil, err
	}
	ids, err := r.GetParticipantIDs(id)
	if err != nil {
		return nil, err
	}
	conversation.ParticipantIDs = ids
	return &conversation, nil
}

// GetUserConversations returns the conversations the user participates in,
// most recently active first, each with its last message
func (r *PostgresConversationRepository) GetUserConversations(userID uint) ([]models.ConversationWithLastMessage, error) {
	var conversations []models.Conversation
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.ConversationParticipant{}).Select("conversation_id").Where("user_id = ?", userID),
	).Order("updated_at DESC").Find(&conversations).Error
	if err != nil {
		return nil, err
	}

	result := make([]models.ConversationWithLastMessage, len(conversations))
	for i, c := range conversations {
		ids, err := r.GetParticipantIDs(c.ID)
		if err != nil {
			return nil, err
		}
		c.ParticipantIDs = ids
		result[i] = models.ConversationWithLastMessage{Conversation: c}
		if c.LastMessageID != nil {
			var msg models.Message
			if err := r.db.First(&msg, *c.LastMessageID).Error; err == nil {
				result[i].LastMessage = &msg
			}
		}
	}
	return result, nil
}

// IsParticipant reports whether the user belongs to the conversation
func (r *PostgresConversationRepository) IsParticipant(conversationID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetParticipantIDs returns the user IDs participating in the conversation
func (r *PostgresConversationRepository) GetParticipantIDs(conversationID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.ConversationParticipant{}).
		Where("conversation_id = ?", conversationID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}
