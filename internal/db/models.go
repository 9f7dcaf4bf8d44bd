package db

import "time"

// User is a voter identity. Usernames and emails are unique within the
// users table only; admins form a separate identity space.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"size:100;not null" json:"-"`
	FirstName string         `gorm:"size:50;not null" json:"firstName"`
	LastName  string         `gorm:"size:50;not null" json:"lastName"`
	CreatedAt time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null" json:"updatedAt"`
	Responses []PollResponse `gorm:"foreignKey:UserID" json:"-"`
}

type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	FirstName string    `gorm:"size:50;not null" json:"firstName"`
	LastName  string    `gorm:"size:50;not null" json:"lastName"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
	Polls     []Poll    `gorm:"foreignKey:AdminID" json:"-"`
}

// Poll ownership is fixed at creation; only title, description and the
// expiry are mutable afterwards.
type Poll struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"not null;default:true" json:"isActive"`
	EndsAt      *time.Time     `json:"endsAt,omitempty"`
	AdminID     uint           `gorm:"index;not null" json:"adminId"`
	CreatedAt   time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updatedAt"`
	Options     []PollOption   `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
	Responses   []PollResponse `gorm:"foreignKey:PollID;constraint:OnDelete:CASCADE" json:"-"`
}

// Open reports whether the poll accepts votes at the given instant.
func (p *Poll) Open(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	return p.EndsAt == nil || p.EndsAt.After(now)
}

type PollOption struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	PollID     uint           `gorm:"index;not null" json:"pollId"`
	OptionText string         `gorm:"size:100;not null" json:"optionText"`
	VoteCount  int            `gorm:"not null;default:0" json:"voteCount"`
	CreatedAt  time.Time      `gorm:"not null" json:"createdAt"`
	Responses  []PollResponse `gorm:"foreignKey:PollOptionID;constraint:OnDelete:CASCADE" json:"-"`
}

// PollResponse records a single vote. The composite unique index over
// (user_id, poll_id) is what serializes concurrent duplicate votes.
type PollResponse struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_poll_responses_user_poll" json:"userId"`
	PollID       uint      `gorm:"not null;index;uniqueIndex:idx_poll_responses_user_poll" json:"pollId"`
	PollOptionID uint      `gorm:"not null;index" json:"pollOptionId"`
	ResponseDate time.Time `gorm:"not null" json:"responseDate"`
}
