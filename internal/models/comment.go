package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Comment описывает комментарий к обращению, опционально адресованный
// автору другого комментария (ReplyTo — имя, а не ссылка по id).
// Инвариант: Likes всегда равен длине LikedBy.
type Comment struct {
	ID        int64          `db:"id" json:"id"`
	ReportID  int64          `db:"report_id" json:"report_id"`
	Text      string         `db:"text" json:"text"`
	Author    string         `db:"author" json:"author"`
	AuthorID  uuid.UUID      `db:"author_id" json:"author_id"`
	Likes     int            `db:"likes" json:"likes"`
	LikedBy   pq.StringArray `db:"liked_by" json:"liked_by"`
	ReplyTo   *string        `db:"reply_to" json:"reply_to,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"date"`
}

// HasLikeFrom сообщает, лайкнул ли пользователь комментарий.
func (c *Comment) HasLikeFrom(userID uuid.UUID) bool {
	id := userID.String()
	for _, v := range c.LikedBy {
		if v == id {
			return true
		}
	}
	return false
}
