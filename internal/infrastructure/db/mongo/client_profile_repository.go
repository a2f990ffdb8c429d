package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/consultly/marketplace-api/internal/core/domain"
)

const clientProfileCollection = "client_profiles"

type MongoClientProfileRepository struct {
	coll *mongo.Collection
}

func NewClientProfileRepository(db *mongo.Database) *MongoClientProfileRepository {
	return &MongoClientProfileRepository{coll: db.Collection(clientProfileCollection)}
}

type mongoClientProfile struct {
	UserID             string   `bson:"user_id"`
	Email              string   `bson:"email"`
	ProjectTitle       string   `bson:"project_title,omitempty"`
	ProjectDescription string   `bson:"project_description,omitempty"`
	Budget             *float64 `bson:"budget,omitempty"`
	CreatedAt          int64    `bson:"created_at"`
	UpdatedAt          int64    `bson:"updated_at"`
}

func (r *MongoClientProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.ClientProfile, error) {
	var mp mongoClientProfile
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find client profile: %w", err)
	}
	return mp.toDomain(), nil
}

// EnsureStub inserts {user_id, email} only when no row exists. $setOnInsert
// under an upsert is a single atomic operation, so concurrent first logins
// cannot produce duplicates or clobber an existing profile.
func (r *MongoClientProfileRepository) EnsureStub(ctx context.Context, userID, email string) error {
	now := time.Now().UTC().Unix()
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":    userID,
		"email":      email,
		"created_at": now,
		"updated_at": now,
	}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("ensure client profile: %w", err)
	}
	return nil
}

// Save replaces the whole document for user_id; last write wins.
func (r *MongoClientProfileRepository) Save(ctx context.Context, profile *domain.ClientProfile) error {
	doc := mongoClientProfile{
		UserID:             profile.UserID,
		Email:              profile.Email,
		ProjectTitle:       profile.ProjectTitle,
		ProjectDescription: profile.ProjectDescription,
		Budget:             profile.Budget,
		CreatedAt:          profile.CreatedAt.Unix(),
		UpdatedAt:          profile.UpdatedAt.Unix(),
	}
	if doc.CreatedAt <= 0 {
		doc.CreatedAt = doc.UpdatedAt
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"user_id": profile.UserID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save client profile: %w", err)
	}
	return nil
}

func (mp *mongoClientProfile) toDomain() *domain.ClientProfile {
	return &domain.ClientProfile{
		UserID:             mp.UserID,
		Email:              mp.Email,
		ProjectTitle:       mp.ProjectTitle,
		ProjectDescription: mp.ProjectDescription,
		Budget:             mp.Budget,
		CreatedAt:          unixToTime(mp.CreatedAt),
		UpdatedAt:          unixToTime(mp.UpdatedAt),
	}
}
