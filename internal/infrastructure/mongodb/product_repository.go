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

type ProductRepositoryMongo struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewProductRepositoryMongo(db *mongo.Database, logger *logger.Logger) (*ProductRepositoryMongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection("products")

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product index: %w", err)
	}

	return &ProductRepositoryMongo{collection: collection, logger: logger}, nil
}

func (r *ProductRepositoryMongo) Create(ctx context.Context, product *entities.Product) error {
	product.Refresh()
	_, err := r.collection.InsertOne(ctx, toProductDocument(product))
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *ProductRepositoryMongo) GetByID(ctx context.Context, productID string) (*entities.Product, error) {
	var doc ProductDocument
	err := r.collection.FindOne(ctx, bson.M{"product_id": productID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, repositories.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return toProductEntity(&doc), nil
}

func (r *ProductRepositoryMongo) Update(ctx context.Context, product *entities.Product) error {
	product.Refresh()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"product_id": product.ID}, toProductDocument(product))
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepositoryMongo) List(ctx context.Context) ([]*entities.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*entities.Product
	for cursor.Next(ctx) {
		var doc ProductDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		out = append(out, toProductEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return out, nil
}

// AdjustStock uses a guarded findAndModify so a negative delta can never push
// stock below zero, then rewrites the derived fields from the new count.
func (r *ProductRepositoryMongo) AdjustStock(ctx context.Context, productID string, delta int) (*entities.Product, error) {
	filter := bson.M{"product_id": productID}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc ProductDocument
	err := r.collection.FindOneAndUpdate(ctx, filter,
		bson.M{
			"$inc": bson.M{"stock": delta},
			"$set": bson.M{"updated_at": time.Now()},
		}, opts).Decode(&doc)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			return nil, fmt.Errorf("failed to adjust stock: %w", err)
		}
		// Distinguish a missing product from a guard miss.
		if _, getErr := r.GetByID(ctx, productID); getErr != nil {
			return nil, getErr
		}
		return nil, repositories.ErrInsufficientStock
	}

	product := toProductEntity(&doc)
	product.Refresh()

	_, err = r.collection.UpdateOne(ctx, bson.M{"product_id": productID},
		bson.M{"$set": bson.M{
			"in_stock":     product.InStock,
			"stock_status": string(product.StockStatus),
		}})
	if err != nil {
		r.logger.Warn("Failed to refresh derived stock fields",
			"product_id", productID,
			"error", err)
	}

	return product, nil
}

func toProductDocument(product *entities.Product) *ProductDocument {
	return &ProductDocument{
		ProductID:   product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Image:       product.Image,
		Category:    product.Category,
		Stock:       product.Stock,
		InStock:     product.InStock,
		StockStatus: string(product.StockStatus),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toProductEntity(doc *ProductDocument) *entities.Product {
	return &entities.Product{
		ID:          doc.ProductID,
		Name:        doc.Name,
		Description: doc.Description,
		Price:       doc.Price,
		Image:       doc.Image,
		Category:    doc.Category,
		Stock:       doc.Stock,
		InStock:     doc.InStock,
		StockStatus: entities.StockStatus(doc.StockStatus),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
