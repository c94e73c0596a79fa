package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MongoDBIndexer) IndexAll() {
	panicIfError(m.IndexAccidentCollection())
}

func (m *MongoDBIndexer) IndexAccidentCollection() error {
	// coordinate index supports bounding-box queries over the dataset
	if err := m.createIndex(AccidentCollection, mongo.IndexModel{
		Keys: bson.D{
			{Key: "location.latitude", Value: 1},
			{Key: "location.longitude", Value: 1},
		},
	}); err != nil {
		return err
	}

	if err := m.createIndex(AccidentCollection, mongo.IndexModel{
		Keys: bson.M{
			"borough": 1,
		},
	}); err != nil {
		return err
	}

	return m.createIndex(AccidentCollection, mongo.IndexModel{
		Keys: bson.M{
			"yearmonth": 1,
		},
	})
}
