package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
	"github.com/lifedrop/lifedrop-backend/internal/domain/repository"
)

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(CollAccounts)}
}

func (r *AccountRepository) Insert(ctx context.Context, a *entity.Account) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var a entity.Account
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]entity.Account, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	accounts := []entity.Account{}
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *AccountRepository) UpdateStatusByEmail(ctx context.Context, email string, status entity.AccountStatus) error {
	return r.setByEmail(ctx, email, bson.M{"status": status})
}

func (r *AccountRepository) UpdateRoleByEmail(ctx context.Context, email string, role entity.Role) error {
	return r.setByEmail(ctx, email, bson.M{"role": role})
}

func (r *AccountRepository) UpdateAvatarByEmail(ctx context.Context, email, avatarURL string) error {
	return r.setByEmail(ctx, email, bson.M{"avatar_url": avatarURL})
}

func (r *AccountRepository) setByEmail(ctx context.Context, email string, set bson.M) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
