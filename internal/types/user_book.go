package types

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBook interaction statuses.
const (
	StatusPending = "pending"
	StatusToRead  = "to_read"
	StatusReading = "reading"
	StatusRead    = "read"
)

// Feedback values recorded against a recommendation.
const (
	FeedbackAccept = "accept"
	FeedbackReject = "reject"
)

// UserBook links a book to the user's interaction state. The table does
// not enforce one row per book; lookups take the first match.
type UserBook struct {
	ID       string  `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	BookID   string  `gorm:"type:uuid;not null;column:book_id" json:"book_id"`
	Status   string  `gorm:"not null;default:pending;column:status" json:"status"`
	Opinion  *string `gorm:"type:text;column:opinion" json:"opinion,omitempty"`
	Feedback *string `gorm:"column:feedback" json:"feedback,omitempty"`
}

func (UserBook) TableName() string {
	return "user_books"
}

func (ub *UserBook) BeforeCreate(tx *gorm.DB) error {
	if ub.ID == "" {
		ub.ID = uuid.NewString()
	}
	if ub.Status == "" {
		ub.Status = StatusPending
	}
	return nil
}

// HasFeedback reports whether the record carries the given feedback value.
func (ub *UserBook) HasFeedback(feedback string) bool {
	return ub.Feedback != nil && *ub.Feedback == feedback
}
