package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/veridian/identity-service/internal/core/domain"
)

const roleCollection = "roles"

type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(roleCollection)}
}

type roleDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	RoleUUID  string             `bson:"role_uuid"`
	Name      string             `bson:"name"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	doc := roleDoc{
		RoleUUID:  role.UUID,
		Name:      role.Name,
		CreatedAt: role.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert role: %w", err)
	}

	created := *role
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var doc roleDoc
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}

	return &domain.Role{
		ID:        doc.ID.Hex(),
		UUID:      doc.RoleUUID,
		Name:      doc.Name,
		CreatedAt: unixToTime(doc.CreatedAt),
	}, nil
}

func (r *RoleRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("count roles: %w", err)
	}
	return n > 0, nil
}
