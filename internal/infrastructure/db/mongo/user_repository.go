package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/novalabs/landing-api/internal/core/domain"
	"github.com/novalabs/landing-api/internal/core/ports"
)

// userCollection is the directory written by the external auth provider on
// sign-up. Field names follow that provider's schema.
const userCollection = "user"

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(userCollection)}
}

type userDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name,omitempty"`
	Email      string             `bson:"email"`
	Role       string             `bson:"role,omitempty"`
	Banned     bool               `bson:"banned,omitempty"`
	BanReason  string             `bson:"banReason,omitempty"`
	BanExpires *time.Time         `bson:"banExpires,omitempty"`
	CreatedAt  *time.Time         `bson:"createdAt,omitempty"`
}

func (d userDoc) toDomain() domain.User {
	role := d.Role
	if role == "" {
		role = domain.RoleUser
	}
	return domain.User{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Email:      d.Email,
		Role:       role,
		Banned:     d.Banned,
		BanReason:  d.BanReason,
		BanExpires: d.BanExpires,
		CreatedAt:  d.CreatedAt,
	}
}

// idFilter matches a record by identity. Identities are ObjectID hex strings;
// anything unparseable is matched verbatim, which simply matches nothing and
// keeps blind updates a no-op instead of an error.
func idFilter(userID string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": userID}
}

// ListByCreatedDesc returns the whole collection sorted by createdAt
// descending. No pagination by design.
func (r *UserRepository) ListByCreatedDesc(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]domain.User, 0)
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetRole overwrites the role field. Matched count is deliberately ignored:
// an absent identity is a no-op, not an error.
func (r *UserRepository) SetRole(ctx context.Context, userID, role string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, idFilter(userID), bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

// Ban sets banned=true with reason and optional expiry in a single write.
func (r *UserRepository) Ban(ctx context.Context, userID string, update ports.BanUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"banned": true, "banReason": update.Reason}
	if update.Expires != nil {
		set["banExpires"] = update.Expires
	}
	_, err := r.coll.UpdateOne(ctx, idFilter(userID), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("ban user: %w", err)
	}
	return nil
}

// Unban clears only the banned flag; banReason and banExpires stay as they
// were.
func (r *UserRepository) Unban(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx, idFilter(userID), bson.M{"$set": bson.M{"banned": false}})
	if err != nil {
		return fmt.Errorf("unban user: %w", err)
	}
	return nil
}

// Delete removes the record by identity.
func (r *UserRepository) Delete(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, idFilter(userID))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// FindByID returns a single record or domain.ErrUserNotFound.
func (r *UserRepository) FindByID(ctx context.Context, userID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, idFilter(userID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u := doc.toDomain()
	return &u, nil
}

// EnsureIndexes creates the indexes the admin listing and session resolution
// rely on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
