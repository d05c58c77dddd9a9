package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wahho/rewards-platform/internal/core/domain"
)

const collectionTasks = "tasks"

// TaskRepository reads the reward catalog.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

type taskDoc struct {
	ID          string `bson:"_id"`
	Title       string `bson:"title"`
	Description string `bson:"desc"`
	Reward      int64  `bson:"reward"`
}

func (d taskDoc) toDomain() domain.Task {
	return domain.Task{ID: d.ID, Title: d.Title, Description: d.Description, Reward: d.Reward}
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	tasks := []domain.Task{}
	for cur.Next(ctx) {
		var d taskDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, d.toDomain())
	}
	return tasks, cur.Err()
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d taskDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	task := d.toDomain()
	return &task, nil
}

// Seed populates the catalog when the collection is empty. An existing
// catalog is left untouched.
func (r *TaskRepository) Seed(ctx context.Context, tasks []domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}
	if n > 0 || len(tasks) == 0 {
		return nil
	}

	docs := make([]any, 0, len(tasks))
	for _, t := range tasks {
		docs = append(docs, taskDoc{ID: t.ID, Title: t.Title, Description: t.Description, Reward: t.Reward})
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("seed tasks: %w", err)
	}
	return nil
}
