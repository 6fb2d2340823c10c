package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
	"github.com/lifedrop/lifedrop-backend/internal/domain/repository"
)

type PaymentRepository struct {
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{coll: db.Collection(CollPayments)}
}

func (r *PaymentRepository) Insert(ctx context.Context, p *entity.Payment) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, txID string) (*entity.Payment, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	var p entity.Payment
	err := r.coll.FindOne(ctx, bson.M{"transaction_id": txID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) FindAll(ctx context.Context) ([]entity.Payment, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "paid_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	payments := []entity.Payment{}
	if err := cur.All(ctx, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)
