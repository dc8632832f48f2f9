package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blogsphere/blogsphere/internal/posts"
)

// MongoRepository implements a MongoDB-backed repository for posts. Posts are
// keyed by a generated "id" string field; ownership scoping happens inside
// the query filters so a mismatch is indistinguishable from absence.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	idIdx := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	listIdx := mongo.IndexModel{Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: -1}}}
	col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{idIdx, listIdx})
	return &MongoRepository{col: col}
}

func (m *MongoRepository) Create(ctx context.Context, p *posts.Post) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := m.col.InsertOne(ctx, p)
	return err
}

func (m *MongoRepository) ListByAuthor(ctx context.Context, author string) ([]*posts.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{"author": author}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*posts.Post{}
	for cur.Next(ctx) {
		var p posts.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (m *MongoRepository) GetOwned(ctx context.Context, author, id string) (*posts.Post, error) {
	var p posts.Post
	err := m.col.FindOne(ctx, bson.M{"id": id, "author": author}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoRepository) Update(ctx context.Context, author, id string, upd posts.Update) (*posts.Post, error) {
	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Shared != nil {
		set["shared"] = *upd.Shared
	}
	if len(set) == 0 {
		return m.GetOwned(ctx, author, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p posts.Post
	err := m.col.FindOneAndUpdate(ctx, bson.M{"id": id, "author": author}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (m *MongoRepository) Delete(ctx context.Context, author, id string) error {
	res, err := m.col.DeleteOne(ctx, bson.M{"id": id, "author": author})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoRepository) GetShared(ctx context.Context, id string) (*posts.Post, error) {
	var p posts.Post
	err := m.col.FindOne(ctx, bson.M{"id": id, "shared": true}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
