package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
	"github.com/bernaba123/E-Commerce-sub001/internal/domain/repositories"
	"github.com/bernaba123/E-Commerce-sub001/internal/infrastructure/logger"
)

type RequestRepositoryMongo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewRequestRepositoryMongo(db *mongo.Database, logger *logger.Logger) (*RequestRepositoryMongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("requests")

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "request_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "request_number", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create request indexes: %w", err)
	}

	return &RequestRepositoryMongo{collection: collection, logger: logger}, nil
}

func (r *RequestRepositoryMongo) Create(ctx context.Context, request *entities.Request) error {
	doc := toRequestDocument(request)

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrRequestAlreadyExists
		}
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}

func (r *RequestRepositoryMongo) GetByID(ctx context.Context, requestID string) (*entities.Request, error) {
	return r.findOne(ctx, bson.M{"request_id": requestID})
}

func (r *RequestRepositoryMongo) GetByNumber(ctx context.Context, requestNumber string) (*entities.Request, error) {
	return r.findOne(ctx, bson.M{"request_number": requestNumber})
}

func (r *RequestRepositoryMongo) findOne(ctx context.Context, filter bson.M) (*entities.Request, error) {
	var doc RequestDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repositories.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to find request: %w", err)
	}
	return toRequestEntity(&doc), nil
}

func (r *RequestRepositoryMongo) Update(ctx context.Context, request *entities.Request) error {
	doc := toRequestDocument(request)

	result, err := r.collection.ReplaceOne(ctx, bson.M{"request_id": request.ID}, doc)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepositoryMongo) ListByUser(ctx context.Context, userID string) ([]*entities.Request, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*entities.Request
	for cursor.Next(ctx) {
		var doc RequestDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode request: %w", err)
		}
		out = append(out, toRequestEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return out, nil
}

func (r *RequestRepositoryMongo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
	if err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}
	return count, nil
}

func toRequestDocument(request *entities.Request) *RequestDocument {
	return &RequestDocument{
		RequestID:      request.ID,
		RequestNumber:  request.RequestNumber,
		UserID:         request.UserID,
		ProductName:    request.ProductName,
		SourceURL:      request.SourceURL,
		Category:       request.Category,
		Description:    request.Description,
		Quantity:       request.Quantity,
		Urgency:        string(request.Urgency),
		EstimatedPrice: request.EstimatedPrice,
		FinalPrice:     request.FinalPrice,
		ServiceFee:     request.ServiceFee,
		ShippingCost:   request.ShippingCost,
		TotalAmount:    request.TotalAmount,
		Status:         string(request.Status),
		AdminNotes:     request.AdminNotes,
		Tracking:       toTrackingDocument(request.Tracking),
		ApprovedAt:     request.ApprovedAt,
		ProcessedAt:    request.ProcessedAt,
		DeliveredAt:    request.DeliveredAt,
		CreatedAt:      request.CreatedAt,
		UpdatedAt:      request.UpdatedAt,
	}
}

func toRequestEntity(doc *RequestDocument) *entities.Request {
	return &entities.Request{
		ID:             doc.RequestID,
		RequestNumber:  doc.RequestNumber,
		UserID:         doc.UserID,
		ProductName:    doc.ProductName,
		SourceURL:      doc.SourceURL,
		Category:       doc.Category,
		Description:    doc.Description,
		Quantity:       doc.Quantity,
		Urgency:        entities.Urgency(doc.Urgency),
		EstimatedPrice: doc.EstimatedPrice,
		FinalPrice:     doc.FinalPrice,
		ServiceFee:     doc.ServiceFee,
		ShippingCost:   doc.ShippingCost,
		TotalAmount:    doc.TotalAmount,
		Status:         entities.RequestStatus(doc.Status),
		AdminNotes:     doc.AdminNotes,
		Tracking:       toTrackingEntity(doc.Tracking),
		ApprovedAt:     doc.ApprovedAt,
		ProcessedAt:    doc.ProcessedAt,
		DeliveredAt:    doc.DeliveredAt,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}
