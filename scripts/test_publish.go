// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

type EvaluateTriggerEvent struct {
	Type   string `json:"type,omitempty"`
	Source string `json:"source,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	alertType := flag.String("type", "", "Alert type to evaluate (empty = full pass)")
	wait := flag.Duration("wait", 30*time.Second, "How long to watch the alert feed")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Subscribe before publishing so no alert slips through the gap
	sub := client.Subscribe(ctx, "alerts:all")
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		log.Fatalf("Failed to subscribe to alerts:all: %v", err)
	}

	event := EvaluateTriggerEvent{
		Type:   *alertType,
		Source: "test-publish-script",
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:alerts:evaluate",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Trigger published successfully!\n")
	fmt.Printf("   Stream: stream:alerts:evaluate\n")
	fmt.Printf("   Message ID: %s\n", result)
	if *alertType != "" {
		fmt.Printf("   Alert type: %s\n", *alertType)
	} else {
		fmt.Printf("   Alert type: (all)\n")
	}

	// Ожидание ответа
	fmt.Printf("\n⏳ Watching alerts:all for %s...\n", *wait)

	timeout := time.After(*wait)
	ch := sub.Channel()
	received := 0

	for {
		select {
		case <-timeout:
			if received == 0 {
				fmt.Println("❌ No alerts arrived. Either no rule fired or the worker is not running.")
			} else {
				fmt.Printf("\n✅ Done, %d alert(s) received\n", received)
			}
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var alertEvent map[string]interface{}
			if err := json.Unmarshal([]byte(msg.Payload), &alertEvent); err != nil {
				continue
			}

			received++
			prettyJSON, _ := json.MarshalIndent(alertEvent, "", "  ")
			fmt.Printf("\n🔔 Alert #%d:\n%s\n", received, prettyJSON)
		}
	}
}
