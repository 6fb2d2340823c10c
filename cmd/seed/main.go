package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifedrop/lifedrop-backend/config"
	"github.com/lifedrop/lifedrop-backend/internal/domain/entity"
	"github.com/lifedrop/lifedrop-backend/internal/infrastructure/mongodb"
)

// Seeds the initial admin account. Safe to run repeatedly: the upsert only
// creates the document when missing and always restores the Admin role.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}

	email := "admin@lifedrop.example"
	res, err := db.Collection(mongodb.CollAccounts).UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{
			"$set": bson.M{"role": entity.RoleAdmin},
			"$setOnInsert": bson.M{
				"name":       "LifeDrop Admin",
				"email":      email,
				"status":     entity.AccountActive,
				"created_at": time.Now().UTC(),
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	if res.UpsertedCount > 0 {
		fmt.Printf("seeded admin account: %s\n", email)
	} else {
		fmt.Printf("admin account already present: %s\n", email)
	}
}
