package server

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/store"
)

// LoginRequest carries login credentials. Username takes either the account
// username or its email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse is returned on a successful login
type LoginResponse struct {
	Token string  `json:"token"`
	Type  string  `json:"type"`
	User  UserDTO `json:"user"`
}

// UserDTO is the public projection of a user account. It never carries the
// password hash.
type UserDTO struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toUserDTO(u *store.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserDTOs(users []*store.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, toUserDTO(u))
	}
	return out
}

// BlogPostDTO flattens the author relation into display fields
type BlogPostDTO struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Excerpt    string     `json:"excerpt,omitempty"`
	Content    string     `json:"content"`
	Category   string     `json:"category,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	ReadTime   string     `json:"read_time,omitempty"`
	Published  bool       `json:"published"`
	AuthorID   string     `json:"author_id"`
	AuthorName string     `json:"author_name,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func toPostDTO(p *store.BlogPost) BlogPostDTO {
	dto := BlogPostDTO{
		ID:        p.ID.String(),
		Title:     p.Title,
		Excerpt:   p.Excerpt,
		Content:   p.Content,
		Category:  p.Category,
		Tags:      p.Tags,
		ReadTime:  p.ReadTime,
		Published: p.Published,
		AuthorID:  p.AuthorID.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Author != nil {
		dto.AuthorName = p.Author.Username
	}
	return dto
}

func toPostDTOs(posts []*store.BlogPost) []BlogPostDTO {
	out := make([]BlogPostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p))
	}
	return out
}

// CreatePostRequest carries a new blog post. The author is taken from the
// authenticated identity, never from the payload.
type CreatePostRequest struct {
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	ReadTime  string   `json:"read_time"`
	Published bool     `json:"published"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Category, validation.Length(0, 100)),
	)
}

// UpdatePostRequest is a partial update: nil fields keep their current value
type UpdatePostRequest struct {
	Title     *string   `json:"title"`
	Excerpt   *string   `json:"excerpt"`
	Content   *string   `json:"content"`
	Category  *string   `json:"category"`
	Tags      *[]string `json:"tags"`
	ReadTime  *string   `json:"read_time"`
	Published *bool     `json:"published"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Content, validation.NilOrNotEmpty),
	)
}

// ContactRequest is the public contact form payload
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r ContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Subject, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// CreateUserRequest provisions an account. Role defaults to "user" when
// omitted.
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 60)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.Role, validation.In(auth.RoleUser, auth.RoleAdmin)),
	)
}

// UpdateUserRequest is a partial update; a nil Password keeps the current
// hash untouched.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.NilOrNotEmpty, validation.Length(3, 60)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.Email),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.Length(8, 128)),
		validation.Field(&r.Role, validation.In(auth.RoleUser, auth.RoleAdmin)),
	)
}
