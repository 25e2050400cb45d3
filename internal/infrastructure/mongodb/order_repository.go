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

type OrderRepositoryMongo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewOrderRepositoryMongo(db *mongo.Database, logger *logger.Logger) (*OrderRepositoryMongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("orders")

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "order_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "order_number", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order indexes: %w", err)
	}

	return &OrderRepositoryMongo{collection: collection, logger: logger}, nil
}

func (r *OrderRepositoryMongo) Create(ctx context.Context, order *entities.Order) error {
	doc := toOrderDocument(order)

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrOrderAlreadyExists
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *OrderRepositoryMongo) GetByID(ctx context.Context, orderID string) (*entities.Order, error) {
	return r.findOne(ctx, bson.M{"order_id": orderID})
}

func (r *OrderRepositoryMongo) GetByNumber(ctx context.Context, orderNumber string) (*entities.Order, error) {
	return r.findOne(ctx, bson.M{"order_number": orderNumber})
}

func (r *OrderRepositoryMongo) findOne(ctx context.Context, filter bson.M) (*entities.Order, error) {
	var doc OrderDocument
	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repositories.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return toOrderEntity(&doc), nil
}

// Update replaces the whole document. The financial invariant is re-derived
// here so no write path can persist totals that disagree with their parts.
func (r *OrderRepositoryMongo) Update(ctx context.Context, order *entities.Order) error {
	doc := toOrderDocument(order)

	result, err := r.collection.ReplaceOne(ctx, bson.M{"order_id": order.ID}, doc)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepositoryMongo) ListByUser(ctx context.Context, userID string) ([]*entities.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return decodeOrders(ctx, cursor)
}

func (r *OrderRepositoryMongo) ListActive(ctx context.Context, limit int) ([]*entities.Order, error) {
	filter := bson.M{"status": bson.M{"$nin": bson.A{
		string(entities.OrderStatusDelivered),
		string(entities.OrderStatusCancelled),
	}}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active orders: %w", err)
	}
	return decodeOrders(ctx, cursor)
}

func (r *OrderRepositoryMongo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"created_at": bson.M{"$gte": since}})
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func decodeOrders(ctx context.Context, cursor *mongo.Cursor) ([]*entities.Order, error) {
	defer cursor.Close(ctx)

	var out []*entities.Order
	for cursor.Next(ctx) {
		var doc OrderDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		out = append(out, toOrderEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return out, nil
}

func toOrderDocument(order *entities.Order) *OrderDocument {
	doc := &OrderDocument{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		Subtotal:      order.Subtotal,
		ShippingCost:  order.ShippingCost,
		TaxAmount:     order.TaxAmount,
		FinalAmount:   order.Subtotal + order.ShippingCost + order.TaxAmount,
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		PaymentMethod: string(order.PaymentMethod),
		PaymentRef:    order.PaymentRef,
		ShippingAddr:  toAddressDocument(order.ShippingAddr),
		BillingAddr:   toAddressDocument(order.BillingAddr),
		Notes:         order.Notes,
		AdminCreated:  order.AdminCreated,
		Tracking:      toTrackingDocument(order.Tracking),
		CancelReason:  order.CancelReason,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
		Items:         make([]ItemDocument, len(order.Items)),
	}
	for i, item := range order.Items {
		doc.Items[i] = ItemDocument(item)
	}
	return doc
}

func toOrderEntity(doc *OrderDocument) *entities.Order {
	items := make([]entities.OrderItem, len(doc.Items))
	for i, item := range doc.Items {
		items[i] = entities.OrderItem(item)
	}

	return &entities.Order{
		ID:            doc.OrderID,
		OrderNumber:   doc.OrderNumber,
		UserID:        doc.UserID,
		Items:         items,
		Subtotal:      doc.Subtotal,
		ShippingCost:  doc.ShippingCost,
		TaxAmount:     doc.TaxAmount,
		FinalAmount:   doc.FinalAmount,
		Status:        entities.OrderStatus(doc.Status),
		PaymentStatus: entities.PaymentStatus(doc.PaymentStatus),
		PaymentMethod: entities.PaymentMethod(doc.PaymentMethod),
		PaymentRef:    doc.PaymentRef,
		ShippingAddr:  toAddressEntity(doc.ShippingAddr),
		BillingAddr:   toAddressEntity(doc.BillingAddr),
		Notes:         doc.Notes,
		AdminCreated:  doc.AdminCreated,
		Tracking:      toTrackingEntity(doc.Tracking),
		CancelReason:  doc.CancelReason,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
