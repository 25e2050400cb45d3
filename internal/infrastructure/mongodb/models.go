package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/entities"
)

type OrderDocument struct {
	ID            primitive.ObjectID       `bson:"_id,omitempty"`
	OrderID       string                   `bson:"order_id"`
	OrderNumber   string                   `bson:"order_number"`
	UserID        string                   `bson:"user_id"`
	Items         []ItemDocument           `bson:"items"`
	Subtotal      float64                  `bson:"subtotal"`
	ShippingCost  float64                  `bson:"shipping_cost"`
	TaxAmount     float64                  `bson:"tax_amount"`
	FinalAmount   float64                  `bson:"final_amount"`
	Status        string                   `bson:"status"`
	PaymentStatus string                   `bson:"payment_status"`
	PaymentMethod string                   `bson:"payment_method"`
	PaymentRef    string                   `bson:"payment_ref,omitempty"`
	ShippingAddr  AddressDocument          `bson:"shipping_address"`
	BillingAddr   AddressDocument          `bson:"billing_address"`
	Notes         string                   `bson:"notes,omitempty"`
	AdminCreated  bool                     `bson:"admin_created,omitempty"`
	Tracking      TrackingDocument         `bson:"tracking"`
	CancelReason  string                   `bson:"cancel_reason,omitempty"`
	CreatedAt     time.Time                `bson:"created_at"`
	UpdatedAt     time.Time                `bson:"updated_at"`
}

type ItemDocument struct {
	ProductID string  `bson:"product_id"`
	Name      string  `bson:"name"`
	Image     string  `bson:"image,omitempty"`
	UnitPrice float64 `bson:"unit_price"`
	Quantity  int     `bson:"quantity"`
}

type AddressDocument struct {
	FullName   string `bson:"full_name"`
	Street     string `bson:"street"`
	City       string `bson:"city"`
	PostalCode string `bson:"postal_code"`
	Country    string `bson:"country"`
	Phone      string `bson:"phone,omitempty"`
}

type TrackingDocument struct {
	Carrier           string                   `bson:"carrier,omitempty"`
	TrackingNumber    string                   `bson:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time               `bson:"estimated_delivery,omitempty"`
	Updates           []TrackingUpdateDocument `bson:"updates"`
}

type TrackingUpdateDocument struct {
	Status    string    `bson:"status"`
	Message   string    `bson:"message"`
	Location  string    `bson:"location,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

type RequestDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	RequestID      string             `bson:"request_id"`
	RequestNumber  string             `bson:"request_number"`
	UserID         string             `bson:"user_id"`
	ProductName    string             `bson:"product_name"`
	SourceURL      string             `bson:"source_url"`
	Category       string             `bson:"category,omitempty"`
	Description    string             `bson:"description,omitempty"`
	Quantity       int                `bson:"quantity"`
	Urgency        string             `bson:"urgency"`
	EstimatedPrice float64            `bson:"estimated_price"`
	FinalPrice     float64            `bson:"final_price,omitempty"`
	ServiceFee     float64            `bson:"service_fee"`
	ShippingCost   float64            `bson:"shipping_cost"`
	TotalAmount    float64            `bson:"total_amount"`
	Status         string             `bson:"status"`
	AdminNotes     string             `bson:"admin_notes,omitempty"`
	Tracking       TrackingDocument   `bson:"tracking"`
	ApprovedAt     *time.Time         `bson:"approved_at,omitempty"`
	ProcessedAt    *time.Time         `bson:"processed_at,omitempty"`
	DeliveredAt    *time.Time         `bson:"delivered_at,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

type ProductDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ProductID   string             `bson:"product_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Price       float64            `bson:"price"`
	Image       string             `bson:"image,omitempty"`
	Category    string             `bson:"category,omitempty"`
	Stock       int                `bson:"stock"`
	InStock     bool               `bson:"in_stock"`
	StockStatus string             `bson:"stock_status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toTrackingDocument(t entities.Tracking) TrackingDocument {
	doc := TrackingDocument{
		Carrier:           t.Carrier,
		TrackingNumber:    t.TrackingNumber,
		EstimatedDelivery: t.EstimatedDelivery,
		Updates:           make([]TrackingUpdateDocument, len(t.Updates)),
	}
	for i, u := range t.Updates {
		doc.Updates[i] = TrackingUpdateDocument(u)
	}
	return doc
}

func toTrackingEntity(doc TrackingDocument) entities.Tracking {
	t := entities.Tracking{
		Carrier:           doc.Carrier,
		TrackingNumber:    doc.TrackingNumber,
		EstimatedDelivery: doc.EstimatedDelivery,
		Updates:           make([]entities.TrackingUpdate, len(doc.Updates)),
	}
	for i, u := range doc.Updates {
		t.Updates[i] = entities.TrackingUpdate(u)
	}
	return t
}

func toAddressDocument(a entities.Address) AddressDocument {
	return AddressDocument(a)
}

func toAddressEntity(doc AddressDocument) entities.Address {
	return entities.Address(doc)
}
