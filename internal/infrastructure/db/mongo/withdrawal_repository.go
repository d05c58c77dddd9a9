package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

const collectionWithdrawals = "withdrawals"

// WithdrawalRepository appends withdrawal requests.
type WithdrawalRepository struct {
	col *mongo.Collection
}

func NewWithdrawalRepository(db *mongo.Database) *WithdrawalRepository {
	return &WithdrawalRepository{col: db.Collection(collectionWithdrawals)}
}

type withdrawalDoc struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	Amount      int64     `bson:"amount"`
	Method      string    `bson:"method"`
	Status      string    `bson:"status"`
	RequestedAt time.Time `bson:"requested_at"`
}

func (d withdrawalDoc) toDomain() *domain.Withdrawal {
	return &domain.Withdrawal{
		ID:          d.ID,
		UserID:      d.UserID,
		Amount:      d.Amount,
		Method:      d.Method,
		Status:      domain.WithdrawalStatus(d.Status),
		RequestedAt: d.RequestedAt,
	}
}

func (r *WithdrawalRepository) Create(ctx context.Context, w *domain.Withdrawal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := withdrawalDoc{
		ID:          w.ID,
		UserID:      w.UserID,
		Amount:      w.Amount,
		Method:      w.Method,
		Status:      string(w.Status),
		RequestedAt: w.RequestedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

func (r *WithdrawalRepository) List(ctx context.Context) ([]*domain.Withdrawal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Withdrawal
	for cur.Next(ctx) {
		var d withdrawalDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode withdrawal: %w", err)
		}
		out = append(out, d.toDomain())
	}
	return out, cur.Err()
}

// EnsureIndexes creates the lookup index for per-user listings.
func (r *WithdrawalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "requested_at", Value: -1}},
	})
	return err
}
