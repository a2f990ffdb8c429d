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

const accountCollection = "accounts"

// MongoAccountRepository stores accounts keyed by the identity subject id
// (the credential's hex id), so _id doubles as the foreign key target for
// profile rows.
type MongoAccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection(accountCollection)}
}

type mongoAccount struct {
	ID        string `bson:"_id"`
	Email     string `bson:"email"`
	Role      string `bson:"role,omitempty"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	doc := mongoAccount{
		ID:        account.ID,
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: account.CreatedAt.Unix(),
		UpdatedAt: account.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var ma mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return ma.toDomain(), nil
}

// AdoptRole sets the role on a still role-less account. The filter carries
// the empty-role guard, so only one of two concurrent adoptions can match;
// the loser gets the already-updated document back with ok=false.
func (r *MongoAccountRepository) AdoptRole(ctx context.Context, id, role string) (*domain.Account, bool, error) {
	filter := bson.M{
		"_id": id,
		"$or": bson.A{
			bson.M{"role": bson.M{"$exists": false}},
			bson.M{"role": ""},
		},
	}
	update := bson.M{"$set": bson.M{"role": role, "updated_at": time.Now().UTC().Unix()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ma mongoAccount
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ma)
	if err == nil {
		return ma.toDomain(), true, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, false, fmt.Errorf("adopt role: %w", err)
	}

	// guard did not match: either the account vanished or a role is already
	// set; re-read to tell the two apart
	current, findErr := r.FindByID(ctx, id)
	if findErr != nil {
		return nil, false, findErr
	}
	return current, false, nil
}

func (ma *mongoAccount) toDomain() *domain.Account {
	return &domain.Account{
		ID:        ma.ID,
		Email:     ma.Email,
		Role:      ma.Role,
		CreatedAt: unixToTime(ma.CreatedAt),
		UpdatedAt: unixToTime(ma.UpdatedAt),
	}
}
