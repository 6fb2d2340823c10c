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

type RequestRepository struct {
	coll *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{coll: db.Collection(CollRequests)}
}

func (r *RequestRepository) Insert(ctx context.Context, req *entity.DonationRequest) error {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	_, err := r.coll.InsertOne(ctx, req)
	return err
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*entity.DonationRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a document.
		return nil, repository.ErrNotFound
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	var req entity.DonationRequest
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepository) FindRecent(ctx context.Context, limit int64) ([]entity.DonationRequest, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodeRequests(ctx, cur)
}

func (r *RequestRepository) FindByRequester(ctx context.Context, email string, status *entity.RequestStatus, page, size int64) ([]entity.DonationRequest, int64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{"requester_email": email}
	if status != nil {
		filter["request_status"] = *status
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(page * size).
		SetLimit(size)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	reqs, err := decodeRequests(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return reqs, total, nil
}

func (r *RequestRepository) UpdateStatusByID(ctx context.Context, id string, status entity.RequestStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return repository.ErrNotFound
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"request_status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) Search(ctx context.Context, f repository.RequestFilter) ([]entity.DonationRequest, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{}
	if f.BloodGroup != "" {
		filter["blood_group"] = f.BloodGroup
	}
	if f.District != "" {
		filter["district"] = f.District
	}
	if f.Upazila != "" {
		filter["upazila"] = f.Upazila
	}
	if f.Status != "" {
		filter["request_status"] = f.Status
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeRequests(ctx, cur)
}

func (r *RequestRepository) FindAll(ctx context.Context) ([]entity.DonationRequest, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	return decodeRequests(ctx, cur)
}

func decodeRequests(ctx context.Context, cur *mongo.Cursor) ([]entity.DonationRequest, error) {
	reqs := []entity.DonationRequest{}
	if err := cur.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

var _ repository.RequestRepository = (*RequestRepository)(nil)
