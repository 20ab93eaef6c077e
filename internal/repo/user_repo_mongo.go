package repo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-crud-portal/internal/domain"
)

type UserRepo struct{ col *mongo.Collection }

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection("users")}
}

func (r *UserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	cur, err := r.col.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByID 非法的 ObjectID 十六进制也按“不存在”处理
func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByFirstNameContaining 子串匹配，不区分大小写；输入按字面量转义
func (r *UserRepo) FindByFirstNameContaining(ctx context.Context, firstName string) ([]domain.User, error) {
	return r.find(ctx, bson.M{"firstName": primitive.Regex{
		Pattern: regexp.QuoteMeta(firstName),
		Options: "i",
	}})
}

// FindByEmailRegex pattern 原样交给 Mongo，$options: i
func (r *UserRepo) FindByEmailRegex(ctx context.Context, pattern string) ([]domain.User, error) {
	return r.find(ctx, bson.M{"email": primitive.Regex{
		Pattern: pattern,
		Options: "i",
	}})
}

func (r *UserRepo) Insert(ctx context.Context, u *domain.User) error {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *UserRepo) Replace(ctx context.Context, u *domain.User) error {
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	return err
}

// DeleteByID 不存在不算错误
func (r *UserRepo) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var u domain.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) find(ctx context.Context, filter bson.M) ([]domain.User, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
