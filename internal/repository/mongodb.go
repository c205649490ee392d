package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type slotDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoSlot хранит ячейки документами {_id: key, value, updated_at}
type MongoSlot struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoSlot подключается к MongoDB и проверяет соединение
func NewMongoSlot(ctx context.Context, uri string, dbName string) (*MongoSlot, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoSlot{
		client:   client,
		dbName:   dbName,
		collName: "slots",
	}, nil
}

func (r *MongoSlot) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

func (r *MongoSlot) Get(ctx context.Context, key string) (string, bool, error) {
	var doc slotDocument
	err := r.collection().FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return doc.Value, true, nil
}

func (r *MongoSlot) Set(ctx context.Context, key, value string) error {
	doc := slotDocument{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := r.collection().ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// Close закрывает соединение с MongoDB
func (r *MongoSlot) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
