package entities

import "time"

// Message is a direct message between two users. ConversationID is always
// derived from the participant pair via ConversationID(); it is stored only as
// an index column and is never assignable by callers.
type Message struct {
	ID             string `gorm:"primaryKey"`
	SenderID       string `gorm:"index"`
	ReceiverID     string `gorm:"index"`
	Content        string
	ConversationID string `gorm:"index"`
	JobID          string
	ApplicationID  string
	AttachmentURL  string
	AttachmentName string
	Read           bool `gorm:"default:false"`
	ReadAt         *time.Time
	CreatedAt      time.Time
}

// ConversationID derives the grouping key for the pair (a, b). The two
// identities are sorted before joining so both participants derive the same
// key no matter who initiates.
func ConversationID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

func (m *Message) IsParticipant(userID string) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}
