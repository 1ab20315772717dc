package services

import (
	"context"
	"crypto/tls"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectMongo dials the cluster once at startup; the returned database
// handle is shared by every service.
func ConnectMongo(ctx context.Context, mongoURI, dbName string) (*mongo.Database, error) {
	opts := options.Client().ApplyURI(mongoURI)

	// Atlas occasionally fails TLS negotiation in some environments
	// unless we force TLS 1.2.
	if strings.HasPrefix(mongoURI, "mongodb+srv://") {
		opts = opts.SetTLSConfig(&tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS12,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Printf("MongoDB connected: db=%s", dbName)
	return client.Database(dbName), nil
}
