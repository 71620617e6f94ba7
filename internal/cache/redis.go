package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"dairy-backend/internal/models"
)

const (
	productListKey = "products:active"
	productListTTL = 10 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. A failed connection leaves the
// cache disabled; every accessor degrades to a miss.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetProductList returns the cached active product list, if present.
func GetProductList(ctx context.Context) ([]*models.Product, bool) {
	if client == nil {
		return nil, false
	}
	raw, err := client.Get(ctx, productListKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []*models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false
	}
	return products, true
}

// SetProductList caches the active product list.
func SetProductList(ctx context.Context, products []*models.Product) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return
	}
	client.Set(ctx, productListKey, raw, productListTTL)
}

// InvalidateProductList drops the cached product list after a mutation.
func InvalidateProductList(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, productListKey)
}
