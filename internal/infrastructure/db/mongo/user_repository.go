package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

const collectionUsers = "users"

// UserRepository persists user aggregates. All balance mutations are single
// filtered updates so concurrent requests cannot produce lost updates.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID                 string    `bson:"_id"`
	Name               string    `bson:"name"`
	Email              string    `bson:"email"`
	PasswordHash       string    `bson:"password_hash"`
	Role               string    `bson:"role"`
	ReferralCode       string    `bson:"referral_code"`
	ReferredBy         string    `bson:"referred_by,omitempty"`
	ReferredByResolved bool      `bson:"referred_by_resolved"`
	Balance            int64     `bson:"balance"`
	TasksCompleted     []string  `bson:"tasks_completed"`
	CreatedAt          time.Time `bson:"created_at"`
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		Role:               u.Role,
		ReferralCode:       u.ReferralCode,
		ReferredBy:         u.ReferredBy,
		ReferredByResolved: u.ReferredByResolved,
		Balance:            u.Balance,
		TasksCompleted:     u.TasksCompleted,
		CreatedAt:          u.CreatedAt,
	}
}

func (d userDoc) toDomain() *domain.User {
	tasks := d.TasksCompleted
	if tasks == nil {
		tasks = []string{}
	}
	return &domain.User{
		ID:                 d.ID,
		Name:               d.Name,
		Email:              d.Email,
		PasswordHash:       d.PasswordHash,
		Role:               d.Role,
		ReferralCode:       d.ReferralCode,
		ReferredBy:         d.ReferredBy,
		ReferredByResolved: d.ReferredByResolved,
		Balance:            d.Balance,
		TasksCompleted:     tasks,
		CreatedAt:          d.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toUserDoc(user))
	if err != nil {
		// Referral codes are reserved by the service before insert, so a
		// duplicate key here is the email index.
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"referral_code": code})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return d.toDomain(), nil
}

// CreditBalance unconditionally adds amount to the user's balance.
func (r *UserRepository) CreditBalance(ctx context.Context, userID string, amount int64) (*domain.User, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"balance": amount}},
		func(context.Context) error { return domain.ErrUserNotFound },
	)
}

// CompleteTask adds taskID to the completion set and credits the reward in
// one update. The $ne filter makes the operation a no-match when the task is
// already completed, which is reported as domain.ErrTaskAlreadyCompleted.
func (r *UserRepository) CompleteTask(ctx context.Context, userID, taskID string, reward int64) (*domain.User, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": userID, "tasks_completed": bson.M{"$ne": taskID}},
		bson.M{
			"$addToSet": bson.M{"tasks_completed": taskID},
			"$inc":      bson.M{"balance": reward},
		},
		func(ctx context.Context) error {
			if _, err := r.FindByID(ctx, userID); err != nil {
				return err
			}
			return domain.ErrTaskAlreadyCompleted
		},
	)
}

// DebitBalance subtracts amount guarded by a balance >= amount filter, so the
// balance can never go negative even under concurrent requests.
func (r *UserRepository) DebitBalance(ctx context.Context, userID string, amount int64) (*domain.User, error) {
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": userID, "balance": bson.M{"$gte": amount}},
		bson.M{"$inc": bson.M{"balance": -amount}},
		func(ctx context.Context) error {
			if _, err := r.FindByID(ctx, userID); err != nil {
				return err
			}
			return domain.ErrInsufficientFunds
		},
	)
}

// findOneAndUpdate applies update to the document matching filter and returns
// the post-update state. onNoMatch disambiguates a missed filter: the
// document may be absent entirely or fail a guard condition.
func (r *UserRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M, onNoMatch func(context.Context) error) (*domain.User, error) {
	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var d userDoc
	err := r.col.FindOneAndUpdate(opCtx, filter, update, opts).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, onNoMatch(ctx)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return d.toDomain(), nil
}

func (r *UserRepository) CountReferred(ctx context.Context, referralCode string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"referred_by": referralCode})
	if err != nil {
		return 0, fmt.Errorf("count referred: %w", err)
	}
	return n, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var d userDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, d.toDomain())
	}
	return users, cur.Err()
}

// EnsureIndexes creates the uniqueness indexes the account invariants rely on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "referral_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "referred_by", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
