package mongo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vidshare/platform/internal/core/domain"
	"github.com/vidshare/platform/internal/core/ports"
)

const collectionVideos = "videos"

// VideoRepository implements ports.VideoRepository using MongoDB.
type VideoRepository struct {
	col *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{col: db.Collection(collectionVideos)}
}

type mongoVideo struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Description   string             `bson:"description"`
	Filename      string             `bson:"filename"`
	OwnerID       string             `bson:"owner_id"`
	OwnerUsername string             `bson:"owner_username"`
	Views         int64              `bson:"views"`
	UploadedAt    time.Time          `bson:"uploaded_at"`
	Code          string             `bson:"code,omitempty"`
}

func (mv *mongoVideo) toDomain() *domain.Video {
	return &domain.Video{
		ID:            mv.ID.Hex(),
		Title:         mv.Title,
		Description:   mv.Description,
		Filename:      mv.Filename,
		OwnerID:       mv.OwnerID,
		OwnerUsername: mv.OwnerUsername,
		Views:         mv.Views,
		UploadedAt:    mv.UploadedAt.UTC(),
		Code:          mv.Code,
	}
}

func (r *VideoRepository) Create(ctx context.Context, v *domain.Video) (*domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoVideo{
		ID:            primitive.NewObjectID(),
		Title:         v.Title,
		Description:   v.Description,
		Filename:      v.Filename,
		OwnerID:       v.OwnerID,
		OwnerUsername: v.OwnerUsername,
		Views:         v.Views,
		UploadedAt:    v.UploadedAt,
		Code:          v.Code,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, storageErr("insert video", err)
	}
	return doc.toDomain(), nil
}

func (r *VideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	oid, err := objectID(id, domain.ErrVideoNotFound)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mv mongoVideo
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mv); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, storageErr("find video", err)
	}
	return mv.toDomain(), nil
}

// List returns the videos matching f. Title matching escapes the query, so it
// is always a literal, case-insensitive substring match.
func (r *VideoRepository) List(ctx context.Context, f ports.VideoFilter) ([]*domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.OwnerID != "" {
		filter["owner_id"] = f.OwnerID
	}
	if f.TitleContains != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.TitleContains), Options: "i"}
	}
	if f.ExcludeID != "" {
		if oid, err := primitive.ObjectIDFromHex(f.ExcludeID); err == nil {
			filter["_id"] = bson.M{"$ne": oid}
		}
	}

	opts := options.Find()
	switch f.Sort {
	case ports.SortNewest:
		opts.SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	case ports.SortMostViewed:
		opts.SetSort(bson.D{{Key: "views", Value: -1}, {Key: "uploaded_at", Value: -1}})
	}
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("list videos", err)
	}
	var docs []mongoVideo
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("decode videos", err)
	}

	videos := make([]*domain.Video, 0, len(docs))
	for i := range docs {
		videos = append(videos, docs[i].toDomain())
	}
	return videos, nil
}

func (r *VideoRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, storageErr("count videos", err)
	}
	return n, nil
}

func (r *VideoRepository) Update(ctx context.Context, id string, update domain.VideoUpdate) error {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if len(set) == 0 {
		return nil
	}
	return r.update(ctx, id, bson.M{"$set": set})
}

func (r *VideoRepository) SetCode(ctx context.Context, id string, code string) error {
	if code == "" {
		return r.update(ctx, id, bson.M{"$unset": bson.M{"code": ""}})
	}
	return r.update(ctx, id, bson.M{"$set": bson.M{"code": code}})
}

// IncrementViews bumps the counter atomically on the server.
func (r *VideoRepository) IncrementViews(ctx context.Context, id string) error {
	return r.update(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
}

func (r *VideoRepository) update(ctx context.Context, id string, update bson.M) error {
	oid, err := objectID(id, domain.ErrVideoNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return storageErr("update video", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrVideoNotFound)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storageErr("delete video", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the feeds and owner listings.
func (r *VideoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "uploaded_at", Value: -1}}},
		{Keys: bson.D{{Key: "uploaded_at", Value: -1}}},
		{Keys: bson.D{{Key: "views", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
