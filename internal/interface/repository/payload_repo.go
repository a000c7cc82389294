// internal/interface/repository/payload_repo.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightsnap-service/internal/domain/entity"
	"flightsnap-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPayloadRepository implements the PayloadRepository interface
type MongoPayloadRepository struct {
	collection *mongo.Collection
}

// NewMongoPayloadRepository creates a new MongoDB raw payload repository
func NewMongoPayloadRepository(ctx context.Context, db *mongo.Database) (repository.PayloadRepository, error) {
	collection := db.Collection("searchPayloads")

	searchIDIndex := mongo.IndexModel{
		Keys:    bson.M{"searchId": 1},
		Options: options.Index().SetUnique(true),
	}

	// Compound index for replaying pending payloads oldest first
	unprocessedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "processStatus", Value: 1},
			{Key: "fetchedAt", Value: 1},
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		searchIDIndex,
		unprocessedIndex,
	}); err != nil {
		return nil, fmt.Errorf("failed to create payload indexes: %w", err)
	}

	return &MongoPayloadRepository{
		collection: collection,
	}, nil
}

// Save archives a payload. A payload already archived for the same search id is kept.
func (r *MongoPayloadRepository) Save(ctx context.Context, payload *entity.RawPayload) error {
	if payload.ProcessStatus == "" {
		payload.ProcessStatus = entity.StatusPending
	}

	_, err := r.collection.InsertOne(ctx, payload)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// FindBySearchID finds an archived payload by search id
func (r *MongoPayloadRepository) FindBySearchID(ctx context.Context, searchID string) (*entity.RawPayload, error) {
	var payload entity.RawPayload
	err := r.collection.FindOne(ctx, bson.M{"searchId": searchID}).Decode(&payload)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// FindUnprocessed finds archived payloads still PENDING, oldest first
func (r *MongoPayloadRepository) FindUnprocessed(ctx context.Context, limit int) ([]*entity.RawPayload, error) {
	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"processStatus": entity.StatusPending}, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "fetchedAt", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var payloads []*entity.RawPayload
	if err := cursor.All(ctx, &payloads); err != nil {
		return nil, err
	}

	return payloads, nil
}

// MarkAsProcessed records the ingest outcome of an archived payload
func (r *MongoPayloadRepository) MarkAsProcessed(ctx context.Context, searchID, status, errorDetail string) error {
	set := bson.M{
		"processedAt":   time.Now(),
		"processStatus": status,
	}
	if errorDetail != "" {
		set["errorDetail"] = errorDetail
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"searchId": searchID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to mark as processed: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no payload found with search id: %s", searchID)
	}

	return nil
}
