//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/mountain-explorer/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	lat := flag.Float64("lat", 28.2723, "latitude")
	lon := flag.Float64("lon", -16.6425, "longitude")
	radius := flag.Int("radius", 20000, "search radius in meters")
	limit := flag.Int("limit", 10, "max results")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.MountainSearchEvent{
		RequestID:    uuid.New(),
		Latitude:     lat,
		Longitude:    lon,
		RadiusMeters: *radius,
		MaxResults:   *limit,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	lastID := "0"

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamMountainSearch,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamMountainSearch)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("   Coordinates: %.6f, %.6f (radius %d m)\n", *lat, *lon, *radius)

	fmt.Printf("\nWaiting for response in %s...\n", domain.StreamMountainFound)

	deadline := time.Now().Add(2 * time.Minute)
	for time.Now().Before(deadline) {
		results, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamMountainFound, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Printf("read failed: %v", err)
			}
			continue
		}

		for _, stream := range results {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				dataStr, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}

				var done domain.MountainSearchDoneEvent
				if err := json.Unmarshal([]byte(dataStr), &done); err != nil {
					continue
				}
				if done.RequestID != event.RequestID {
					continue
				}

				if done.Error != "" {
					fmt.Printf("\nSearch failed (%s): %s\n", done.Reason, done.Error)
					return
				}

				fmt.Printf("\nFound %d mountains\n", done.Total)
				for _, m := range done.Mountains {
					ele := "n/a"
					if m.ElevationMeters != nil {
						ele = fmt.Sprintf("%d m", *m.ElevationMeters)
					}
					fmt.Printf("   %-30s %-8s %8s %7.2f km\n", m.Name, m.Kind, ele, m.DistanceKm)
				}
				return
			}
		}
	}

	fmt.Println("Timeout waiting for response")
}
