package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Report описывает обращение жителя о городской проблеме.
// Инвариант: Upvotes всегда равен длине UserUpvoted, пара меняется атомарно.
type Report struct {
	ID          int64          `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Category    string         `db:"category" json:"category"`
	Status      string         `db:"status" json:"status"`
	Location    *string        `db:"location" json:"location,omitempty"`
	PhotoID     *uuid.UUID     `db:"photo_id" json:"photo_id,omitempty"`
	UserID      uuid.UUID      `db:"user_id" json:"user_id"`
	UserName    string         `db:"user_name" json:"user_name"`
	Upvotes     int            `db:"upvotes" json:"upvotes"`
	UserUpvoted pq.StringArray `db:"user_upvoted" json:"user_upvoted"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`

	// CommentCount вычисляется при выборке и не хранится в таблице.
	CommentCount int `db:"comment_count" json:"comment_count"`
}

// HasUpvoteFrom сообщает, есть ли у пользователя активный голос.
func (r *Report) HasUpvoteFrom(userID uuid.UUID) bool {
	id := userID.String()
	for _, v := range r.UserUpvoted {
		if v == id {
			return true
		}
	}
	return false
}
