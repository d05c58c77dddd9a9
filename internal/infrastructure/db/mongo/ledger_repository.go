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

const collectionLedger = "ledger_entries"

// LedgerRepository stores the append-only balance audit trail.
type LedgerRepository struct {
	col *mongo.Collection
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{col: db.Collection(collectionLedger)}
}

type ledgerDoc struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	Type       string    `bson:"type"`
	Amount     int64     `bson:"amount"`
	Reference  string    `bson:"reference,omitempty"`
	RecordedAt time.Time `bson:"recorded_at"`
}

func (r *LedgerRepository) Insert(ctx context.Context, entry *domain.LedgerEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := ledgerDoc{
		ID:         entry.ID,
		UserID:     entry.UserID,
		Type:       string(entry.Type),
		Amount:     entry.Amount,
		Reference:  entry.Reference,
		RecordedAt: entry.RecordedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func (r *LedgerRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]*domain.LedgerEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "recorded_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer cur.Close(ctx)

	entries := []*domain.LedgerEntry{}
	for cur.Next(ctx) {
		var d ledgerDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode ledger entry: %w", err)
		}
		entries = append(entries, &domain.LedgerEntry{
			ID:         d.ID,
			UserID:     d.UserID,
			Type:       domain.LedgerEntryType(d.Type),
			Amount:     d.Amount,
			Reference:  d.Reference,
			RecordedAt: d.RecordedAt,
		})
	}
	return entries, cur.Err()
}

// EnsureIndexes creates the per-user history index.
func (r *LedgerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "recorded_at", Value: -1}},
	})
	return err
}
