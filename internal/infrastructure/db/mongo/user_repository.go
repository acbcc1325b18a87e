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

	"github.com/mongotech/users-api/internal/api/metrics"
	"github.com/mongotech/users-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository is the MongoDB adapter for the users collection. Records
// are keyed by _id, which doubles as the login username.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// userDoc is the stored shape of a user record. There is no password
// field: the credential is written under hashed_pass from the start.
type userDoc struct {
	ID         string `bson:"_id"`
	FirstName  string `bson:"first_name"`
	LastName   string `bson:"last_name"`
	Role       string `bson:"role"`
	IsActive   bool   `bson:"is_active"`
	CreatedAt  string `bson:"created_at,omitempty"`
	LastLogin  string `bson:"last_login,omitempty"`
	HashedPass string `bson:"hashed_pass"`
}

func toDomain(d userDoc) domain.User {
	return domain.User{
		ID:         d.ID,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Role:       d.Role,
		IsActive:   d.IsActive,
		CreatedAt:  d.CreatedAt,
		LastLogin:  d.LastLogin,
		HashedPass: d.HashedPass,
	}
}

// Insert persists a new record and returns its id. A missing id gets a
// generated ObjectID hex so the record stays addressable.
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (string, error) {
	defer observe("insert user", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := user.ID
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}

	doc := userDoc{
		ID:         id,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       user.Role,
		IsActive:   user.IsActive,
		CreatedAt:  user.CreatedAt,
		LastLogin:  user.LastLogin,
		HashedPass: user.HashedPass,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", classify("insert user", err)
	}
	return id, nil
}

func (r *UserRepository) FindOne(ctx context.Context, id string) (*domain.User, error) {
	defer observe("find user", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classify("find user", err)
	}

	u := toDomain(d)
	return &u, nil
}

func (r *UserRepository) FindAll(ctx context.Context, limit int64) ([]domain.User, error) {
	defer observe("list users", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, findLimit(limit))
	if err != nil {
		return nil, classify("list users", err)
	}
	defer cur.Close(ctx)

	users := []domain.User{}
	for cur.Next(ctx) {
		var d userDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, toDomain(d))
	}
	if err := cur.Err(); err != nil {
		return nil, classify("list users", err)
	}
	return users, nil
}

// UpdateOne applies a partial $set and returns the modified count. An
// unknown id yields a zero count, not an error.
func (r *UserRepository) UpdateOne(ctx context.Context, id string, fields map[string]any) (int64, error) {
	defer observe("update user", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, classify("update user", err)
	}
	return res.ModifiedCount, nil
}

func (r *UserRepository) DeleteOne(ctx context.Context, id string) (int64, error) {
	defer observe("delete user", time.Now())
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, classify("delete user", err)
	}
	return res.DeletedCount, nil
}

func findLimit(limit int64) *options.FindOptions {
	return options.Find().SetLimit(limit)
}

// observe records the duration of a store operation under its op label.
// Meant to be deferred with the start time captured at entry.
func observe(op string, start time.Time) {
	metrics.StoreOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// classify wraps driver errors, marking connectivity failures with
// domain.ErrStoreUnavailable so they are never mistaken for not-found.
func classify(op string, err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
