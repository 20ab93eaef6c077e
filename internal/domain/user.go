package domain

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUserNotFound 只有 Update 会把“不存在”当作错误返回
var ErrUserNotFound = errors.New("user not found")

// User 用户（Mongo 文档）
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Email     string             `json:"email" bson:"email"`
	FirstName string             `json:"firstName" bson:"firstName"`
	LastName  string             `json:"lastName" bson:"lastName"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserRepository 读操作查不到时返回 (nil, nil)，不是错误
type UserRepository interface {
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByFirstNameContaining(ctx context.Context, firstName string) ([]User, error)
	FindByEmailRegex(ctx context.Context, pattern string) ([]User, error)
	Insert(ctx context.Context, u *User) error
	Replace(ctx context.Context, u *User) error
	DeleteByID(ctx context.Context, id string) error
}
