package store

import (
	"time"

	"github.com/goliatone/portfolio-api/auth"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is an administrator account able to manage the blog and read contact
// messages. Passwords are stored as bcrypt hashes only.
type User struct {
	bun.BaseModel  `bun:"table:users,alias:usr"`
	ID             uuid.UUID     `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role           auth.UserRole `bun:"user_role,notnull" json:"user_role,omitempty"`
	Username       string        `bun:"username,notnull,unique" json:"username,omitempty"`
	Email          string        `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash   string        `bun:"password_hash,notnull" json:"-"`
	LoginAttempts  int           `bun:"login_attempts" json:"login_attempts,omitempty"`
	LoginAttemptAt *time.Time    `bun:"login_attempt_at" json:"login_attempt_at,omitempty"`
	CreatedAt      *time.Time    `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time    `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// BlogPost is a blog entry. Reads are public once published; writes go
// through the authenticated surface.
type BlogPost struct {
	bun.BaseModel `bun:"table:blog_posts,alias:post"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Excerpt       string     `bun:"excerpt" json:"excerpt,omitempty"`
	Content       string     `bun:"content,notnull" json:"content,omitempty"`
	Category      string     `bun:"category" json:"category,omitempty"`
	Tags          []string   `bun:"tags,type:jsonb" json:"tags,omitempty"`
	ReadTime      string     `bun:"read_time" json:"read_time,omitempty"`
	Published     bool       `bun:"published,notnull,default:false" json:"published"`
	AuthorID      uuid.UUID  `bun:"author_id,notnull,type:uuid" json:"author_id,omitempty"`
	Author        *User      `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// ContactMessage is a message submitted through the public contact form
type ContactMessage struct {
	bun.BaseModel `bun:"table:contact_messages,alias:msg"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Email         string     `bun:"email,notnull" json:"email,omitempty"`
	Subject       string     `bun:"subject,notnull" json:"subject,omitempty"`
	Message       string     `bun:"message,notnull" json:"message,omitempty"`
	IsRead        bool       `bun:"is_read,notnull,default:false" json:"is_read"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// MarkAsRead flags the message as handled
func (m *ContactMessage) MarkAsRead() *ContactMessage {
	m.IsRead = true
	return m
}
