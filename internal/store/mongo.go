package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"elstore/internal/model"
)

// ConnectMongo opens a client against uri and returns a handle to database.
func ConnectMongo(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

type mongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) OrderStore {
	return &mongoStore{collection: db.Collection("orders")}
}

// orderDoc mirrors model.Order with the store-assigned ObjectID.
type orderDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Email         string             `bson:"email"`
	Plan          string             `bson:"plan"`
	PaymentMethod string             `bson:"payment_method"`
	ProofImage    string             `bson:"proof_image,omitempty"`
	Status        model.Status       `bson:"status"`
	Note          string             `bson:"note,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

func (d orderDoc) toOrder() model.Order {
	return model.Order{
		ID:            d.ID.Hex(),
		Email:         d.Email,
		Plan:          d.Plan,
		PaymentMethod: d.PaymentMethod,
		ProofImage:    d.ProofImage,
		Status:        d.Status,
		Note:          d.Note,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func (m *mongoStore) Insert(ctx context.Context, order *model.Order) (string, error) {
	doc := orderDoc{
		Email:         order.Email,
		Plan:          order.Plan,
		PaymentMethod: order.PaymentMethod,
		ProofImage:    order.ProofImage,
		Status:        order.Status,
		Note:          order.Note,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}

	res, err := m.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	order.ID = oid.Hex()

	return order.ID, nil
}

func (m *mongoStore) FindByID(ctx context.Context, id string) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var doc orderDoc
	err = m.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order := doc.toOrder()
	return &order, nil
}

func (m *mongoStore) List(ctx context.Context, email string, limit int) ([]model.Order, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}

	cursor, err := m.collection.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []model.Order
	for cursor.Next(ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		orders = append(orders, doc.toOrder())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor iteration failed: %w", err)
	}

	return orders, nil
}

func (m *mongoStore) UpdateStatus(ctx context.Context, id string, next model.Status, note string) (*model.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	// Compare-and-set: only a non-terminal order may transition. This is
	// what makes a racing admin decision and webhook safe against each
	// other.
	filter := bson.M{
		"_id": oid,
		"status": bson.M{
			"$nin": bson.A{model.StatusVerified, model.StatusRejected},
		},
	}

	set := bson.M{
		"status":     next,
		"updated_at": time.Now().UTC(),
	}
	if note != "" {
		set["note"] = note
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDoc
	err = m.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Either the order does not exist or it is already terminal.
			if _, ferr := m.FindByID(ctx, id); ferr != nil {
				return nil, ferr
			}
			return nil, ErrTerminal
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	order := doc.toOrder()
	return &order, nil
}

func (m *mongoStore) Ping(ctx context.Context) error {
	return m.collection.Database().Client().Ping(ctx, nil)
}
