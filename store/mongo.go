package store

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/safestreets-inc/routesafety-api/schema"
)

const (
	mongoLogPrefix = "mongo"
	defaultTimeout = 5 * time.Second
	loadTimeout    = 2 * time.Minute
)

// DatasetStore - operations against the canonical accident dataset kept in
// mongodb. The serving process only loads from it; the ingest binary
// writes it.
type DatasetStore interface {
	LoadAccidents() ([]schema.AccidentRecord, error)
	ReplaceAccidents([]schema.AccidentRecord) error
	Ping() error
	Close()
}

type mongoDB struct {
	client   *mongo.Client
	database string
}

// NewMongoDatasetStore - return mongo-backed dataset operations
func NewMongoDatasetStore(client *mongo.Client, database string) DatasetStore {
	return &mongoDB{
		client:   client,
		database: database,
	}
}

// Ping - ping mongo db
func (m *mongoDB) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return m.client.Ping(ctx, nil)
}

// Close - close mongo db connections
func (m *mongoDB) Close() {
	log.WithField("prefix", mongoLogPrefix).Info("closing mongo db connections")
	_ = m.client.Disconnect(context.Background())
}

func (m *mongoDB) collection() *mongo.Collection {
	return m.client.Database(m.database).Collection(schema.AccidentCollection)
}

// LoadAccidents reads the whole canonical record set. Records whose
// coordinates fall outside valid ranges are skipped with a warning instead
// of failing the load.
func (m *mongoDB) LoadAccidents() ([]schema.AccidentRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	cursor, err := m.collection().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []schema.AccidentRecord{}
	skipped := 0
	for cursor.Next(ctx) {
		var record schema.AccidentRecord
		if err := cursor.Decode(&record); err != nil {
			skipped++
			continue
		}
		loc := record.Location
		if loc.Latitude < -90 || loc.Latitude > 90 ||
			loc.Longitude < -180 || loc.Longitude > 180 {
			skipped++
			continue
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	if skipped > 0 {
		log.WithFields(log.Fields{
			"prefix":  mongoLogPrefix,
			"skipped": skipped,
		}).Warn("skipped invalid accident records")
	}
	log.WithFields(log.Fields{
		"prefix":  mongoLogPrefix,
		"records": len(records),
	}).Info("loaded accident dataset")

	return records, nil
}

// ReplaceAccidents upserts the given record set keyed by collision id.
func (m *mongoDB) ReplaceAccidents(records []schema.AccidentRecord) error {
	if len(records) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	models := make([]mongo.WriteModel, 0, len(records))
	for _, record := range records {
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": record.ID}).
			SetReplacement(record).
			SetUpsert(true))
	}

	result, err := m.collection().BulkWrite(ctx, models)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"prefix":   mongoLogPrefix,
		"upserted": result.UpsertedCount,
		"modified": result.ModifiedCount,
	}).Info("replaced accident dataset")

	return nil
}
