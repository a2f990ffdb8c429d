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

const consultantProfileCollection = "consultant_profiles"

type MongoConsultantProfileRepository struct {
	coll *mongo.Collection
}

func NewConsultantProfileRepository(db *mongo.Database) *MongoConsultantProfileRepository {
	return &MongoConsultantProfileRepository{coll: db.Collection(consultantProfileCollection)}
}

type mongoConsultantProfile struct {
	UserID           string   `bson:"user_id"`
	Email            string   `bson:"email"`
	ConsultationType string   `bson:"consultation_type,omitempty"`
	HourlyRate       *float64 `bson:"hourly_rate,omitempty"`
	ExperienceYears  *float64 `bson:"experience_years,omitempty"`
	AvailableTime    string   `bson:"available_time,omitempty"`
	Picture          string   `bson:"picture,omitempty"`
	CreatedAt        int64    `bson:"created_at"`
	UpdatedAt        int64    `bson:"updated_at"`
}

func (r *MongoConsultantProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.ConsultantProfile, error) {
	var mp mongoConsultantProfile
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find consultant profile: %w", err)
	}
	return mp.toDomain(), nil
}

// EnsureStub inserts {user_id, email} only when no row exists. $setOnInsert
// under an upsert is a single atomic operation, so concurrent first logins
// cannot produce duplicates or clobber an existing profile.
func (r *MongoConsultantProfileRepository) EnsureStub(ctx context.Context, userID, email string) error {
	now := time.Now().UTC().Unix()
	update := bson.M{"$setOnInsert": bson.M{
		"user_id":    userID,
		"email":      email,
		"created_at": now,
		"updated_at": now,
	}}
	_, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("ensure consultant profile: %w", err)
	}
	return nil
}

// Save replaces the whole document for user_id; last write wins.
func (r *MongoConsultantProfileRepository) Save(ctx context.Context, profile *domain.ConsultantProfile) error {
	doc := mongoConsultantProfile{
		UserID:           profile.UserID,
		Email:            profile.Email,
		ConsultationType: profile.ConsultationType,
		HourlyRate:       profile.HourlyRate,
		ExperienceYears:  profile.ExperienceYears,
		AvailableTime:    profile.AvailableTime,
		Picture:          profile.Picture,
		CreatedAt:        profile.CreatedAt.Unix(),
		UpdatedAt:        profile.UpdatedAt.Unix(),
	}
	if doc.CreatedAt <= 0 {
		doc.CreatedAt = doc.UpdatedAt
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"user_id": profile.UserID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save consultant profile: %w", err)
	}
	return nil
}

// ListAll returns every consultant profile ordered by user_id ascending, the
// directory's stable ordering.
func (r *MongoConsultantProfileRepository) ListAll(ctx context.Context) ([]domain.ConsultantProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "user_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list consultants: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.ConsultantProfile
	for cursor.Next(ctx) {
		var mp mongoConsultantProfile
		if err := cursor.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode consultant profile: %w", err)
		}
		out = append(out, *mp.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list consultants: %w", err)
	}
	return out, nil
}

func (mp *mongoConsultantProfile) toDomain() *domain.ConsultantProfile {
	return &domain.ConsultantProfile{
		UserID:           mp.UserID,
		Email:            mp.Email,
		ConsultationType: mp.ConsultationType,
		HourlyRate:       mp.HourlyRate,
		ExperienceYears:  mp.ExperienceYears,
		AvailableTime:    mp.AvailableTime,
		Picture:          mp.Picture,
		CreatedAt:        unixToTime(mp.CreatedAt),
		UpdatedAt:        unixToTime(mp.UpdatedAt),
	}
}
