package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/veridian/identity-service/internal/core/domain"
)

const userCollection = "users"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserUUID     string             `bson:"user_uuid"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	RoleName     string             `bson:"role_name"`
	RoleUUID     string             `bson:"role_uuid"`

	Enabled               bool `bson:"is_enabled"`
	CredentialsNonExpired bool `bson:"is_credentials_non_expired"`
	AccountNonLocked      bool `bson:"is_account_non_locked"`
	AccountNonExpired     bool `bson:"is_account_non_expired"`

	CreatedAt int64 `bson:"created_at"`
	UpdatedAt int64 `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	res, err := r.coll.InsertOne(ctx, toUserDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, mapUserDuplicate(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	update := bson.M{"$set": bson.M{
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"updated_at": user.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"user_uuid": user.UUID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, mapUserDuplicate(err)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}

	return r.FindByUUID(ctx, user.UUID)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByUUID(ctx context.Context, uuid string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"user_uuid": uuid})
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username})
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.M{"email": email})
}

func (r *UserRepository) DeleteByUUID(ctx context.Context, uuid string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"user_uuid": uuid})
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromUserDoc(&doc), nil
}

func (r *UserRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

// mapUserDuplicate resolves which unique index rejected the write so the
// caller gets the field-specific duplicate error.
func mapUserDuplicate(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return domain.ErrDuplicateEmail
	default:
		return domain.ErrDuplicateUsername
	}
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		UserUUID:     u.UUID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		RoleName:     u.Role.Name,
		RoleUUID:     u.Role.UUID,

		Enabled:               u.Enabled,
		CredentialsNonExpired: u.CredentialsNonExpired,
		AccountNonLocked:      u.AccountNonLocked,
		AccountNonExpired:     u.AccountNonExpired,

		CreatedAt: u.CreatedAt.Unix(),
		UpdatedAt: u.UpdatedAt.Unix(),
	}
}

func fromUserDoc(doc *userDoc) *domain.User {
	return &domain.User{
		ID:           doc.ID.Hex(),
		UUID:         doc.UserUUID,
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		FirstName:    doc.FirstName,
		LastName:     doc.LastName,
		Role:         domain.Role{UUID: doc.RoleUUID, Name: doc.RoleName},

		Enabled:               doc.Enabled,
		CredentialsNonExpired: doc.CredentialsNonExpired,
		AccountNonLocked:      doc.AccountNonLocked,
		AccountNonExpired:     doc.AccountNonExpired,

		CreatedAt: unixToTime(doc.CreatedAt),
		UpdatedAt: unixToTime(doc.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
