package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookshop/config"
)

var Client *mongo.Client
var DB *mongo.Database

var BookCollection *mongo.Collection
var OrderCollection *mongo.Collection
var AdminCollection *mongo.Collection

func ConnectMongo() {
	uri := config.MustGetEnv("MONGO_URI")
	dbName := config.MustGetEnv("DB_NAME")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("MongoDB ping error:", err)
	}

	Client = client
	DB = client.Database(dbName)

	log.Println("Connected to MongoDB")
}

func InitCollections() {
	BookCollection = DB.Collection("books")
	OrderCollection = DB.Collection("orders")
	AdminCollection = DB.Collection("admins")
}

// EnsureIndexes creates the unique indexes lookups depend on: orders are
// tracked by orderId and admins log in by email.
func EnsureIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := OrderCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orderId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatal("Failed to create order index:", err)
	}

	_, err = AdminCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatal("Failed to create admin index:", err)
	}
}
