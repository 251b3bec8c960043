package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/veridian/identity-service/internal/core/domain"
)

const profileCollection = "profiles"

type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profileCollection)}
}

type profileDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ProfileUUID string             `bson:"profile_uuid"`
	UserUUID    string             `bson:"user_uuid"`
	CreatedAt   int64              `bson:"created_at"`
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	doc := profileDoc{
		ProfileUUID: profile.UUID,
		UserUUID:    profile.UserUUID,
		CreatedAt:   profile.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProfileExists
		}
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	created := *profile
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ProfileRepository) FindByUserUUID(ctx context.Context, userUUID string) (*domain.Profile, error) {
	var doc profileDoc
	if err := r.coll.FindOne(ctx, bson.M{"user_uuid": userUUID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	return &domain.Profile{
		ID:        doc.ID.Hex(),
		UUID:      doc.ProfileUUID,
		UserUUID:  doc.UserUUID,
		CreatedAt: unixToTime(doc.CreatedAt),
	}, nil
}
