// mongo.go - MongoDB contact sink

package sink

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cardscanbot/cardscan/internal/extract"
)

// contactDocument is the persisted shape of one scanned card.
type contactDocument struct {
	ChatID    int64                 `bson:"chat_id"`
	Timestamp string                `bson:"timestamp"`
	CreatedAt time.Time             `bson:"created_at"`
	Contact   extract.ContactRecord `bson:"contact"`
}

// MongoSink appends contact records to the "cards" collection. It is the
// config-selectable alternative to the Sheets backend.
type MongoSink struct {
	client     *mongo.Client
	collection *mongo.Collection
	location   *time.Location
	now        func() time.Time
}

// NewMongoSink connects to MongoDB and pings it to verify the connection.
func NewMongoSink(ctx context.Context, uri, dbName, timezone string) (*MongoSink, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid sink timezone %q: %w", timezone, err)
	}

	log.Println("✅ Connected to MongoDB successfully!")
	return &MongoSink{
		client:     client,
		collection: client.Database(dbName).Collection("cards"),
		location:   location,
		now:        time.Now,
	}, nil
}

// Name returns "mongo"
func (s *MongoSink) Name() string { return "mongo" }

// Append inserts one contact document.
func (s *MongoSink) Append(ctx context.Context, chatID int64, rec extract.ContactRecord) error {
	now := s.now().In(s.location)
	doc := contactDocument{
		ChatID:    chatID,
		Timestamp: now.Format("2006-01-02 15:04:05"),
		CreatedAt: now,
		Contact:   rec,
	}

	insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.collection.InsertOne(insertCtx, doc); err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}

// RecentContacts returns the newest contacts for a chat, most recent first.
func (s *MongoSink) RecentContacts(ctx context.Context, chatID int64, limit int64) ([]contactDocument, error) {
	findCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)
	cursor, err := s.collection.Find(findCtx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer cursor.Close(findCtx)

	var results []contactDocument
	if err := cursor.All(findCtx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Close disconnects the underlying client.
func (s *MongoSink) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		log.Printf("⚠️ MongoDB disconnect: %v", err)
		return
	}
	log.Println("MongoDB connection closed")
}
