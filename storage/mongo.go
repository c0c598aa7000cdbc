package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	rates "github.com/malusev998/privatbank-rates"
)

type mongoStorage struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStorage(ctx context.Context, c MongoDBConfig) (rates.Storage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.ConnectionString))
	if err != nil {
		return nil, fmt.Errorf("error in mongo configuration: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("error while connecting to mongodb: %w", err)
	}

	collection := c.Collection
	if collection == "" {
		collection = "exchange_rates"
	}

	st := mongoStorage{
		client:     client,
		collection: client.Database(c.Database).Collection(collection),
	}

	if c.Migrate {
		if err := st.Migrate(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}

	return st, nil
}

// NewMongoCollectionStorage stores into an existing collection. Close leaves
// the client connected.
func NewMongoCollectionStorage(collection *mongo.Collection) rates.Storage {
	return mongoStorage{collection: collection}
}

func (m mongoStorage) GetStorageProviderName() string {
	return string(MongoDB)
}

func (m mongoStorage) Migrate(ctx context.Context) error {
	_, err := m.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}, {Key: "currency", Value: 1}},
	})

	return err
}

func (m mongoStorage) Drop(ctx context.Context) error {
	return m.collection.Drop(ctx)
}

func (m mongoStorage) Close() error {
	if m.client == nil {
		return nil
	}

	return m.client.Disconnect(context.Background())
}

func decimal128(d decimal.NullDecimal) (interface{}, error) {
	if !d.Valid {
		return nil, nil
	}

	return primitive.ParseDecimal128(d.Decimal.String())
}

func toDocument(r rates.RateRecord, createdAt time.Time) (bson.M, error) {
	date, err := time.Parse(rates.DateLayout, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}

	sale, err := decimal128(r.SaleRate)
	if err != nil {
		return nil, err
	}

	purchase, err := decimal128(r.PurchaseRate)
	if err != nil {
		return nil, err
	}

	return bson.M{
		"date":         date,
		"currency":     r.Currency,
		"provider":     string(rates.PrivatBankProvider),
		"saleRate":     sale,
		"purchaseRate": purchase,
		"createdAt":    createdAt,
	}, nil
}

func (m mongoStorage) Store(ctx context.Context, records []rates.RateRecord) ([]rates.RateRecordWithID, error) {
	if len(records) == 0 {
		return []rates.RateRecordWithID{}, nil
	}

	createdAt := time.Now().UTC()
	documents := make([]interface{}, 0, len(records))

	for _, r := range records {
		doc, err := toDocument(r, createdAt)
		if err != nil {
			return nil, err
		}

		documents = append(documents, doc)
	}

	result, err := m.collection.InsertMany(ctx, documents)
	if err != nil {
		return nil, err
	}

	saved := make([]rates.RateRecordWithID, 0, len(records))
	for i, r := range records {
		saved = append(saved, rates.RateRecordWithID{RateRecord: r, ID: result.InsertedIDs[i]})
	}

	return saved, nil
}
