package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/apiecommerce/catalog-api/internal/core/domain"
)

const rolesCollection = "roles"

// RoleRepository manages the role registry. Role creation is an upsert at
// the store layer so two registrations referencing the same new role
// concurrently cannot create duplicates.
type RoleRepository struct {
	roles *mongo.Collection
	users *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{
		roles: db.Collection(rolesCollection),
		users: db.Collection(usersCollection),
	}
}

type roleDoc struct {
	Name      string `bson:"_id"`
	CreatedAt int64  `bson:"created_at"`
}

// EnsureRole gets or creates the named role. The $setOnInsert upsert makes
// the second concurrent caller observe the role as already existing.
func (r *RoleRepository) EnsureRole(ctx context.Context, name string) (*domain.Role, error) {
	filter := bson.M{"_id": name}
	update := bson.M{"$setOnInsert": bson.M{"created_at": time.Now().UTC().Unix()}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc roleDoc
	if err := r.roles.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		// A concurrent upsert can still race on the _id; the role exists
		// in that case, so read it back.
		if mongo.IsDuplicateKeyError(err) {
			if ferr := r.roles.FindOne(ctx, filter).Decode(&doc); ferr == nil {
				return &domain.Role{Name: doc.Name, CreatedAt: unixToTime(doc.CreatedAt)}, nil
			}
		}
		return nil, fmt.Errorf("ensure role: %w", err)
	}

	return &domain.Role{Name: doc.Name, CreatedAt: unixToTime(doc.CreatedAt)}, nil
}

// AssignRole adds the role to the user's role set; a no-op when present.
func (r *RoleRepository) AssignRole(ctx context.Context, userID, roleName string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.users.UpdateByID(ctx, oid, bson.M{"$addToSet": bson.M{"roles": roleName}})
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
