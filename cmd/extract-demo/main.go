// README: One-shot extraction demo against a live provider.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"venuescout/internal/ai"
	"venuescout/internal/extraction"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	query := "conference room for 50 people in Madrid next Wednesday with WiFi and projector, budget around 800 euros"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	ctx := context.Background()
	client, err := ai.NewGeminiClient(ctx, apiKey, "", 0)
	if err != nil {
		log.Fatalf("Failed to initialize AI client: %v", err)
	}
	defer client.Close()

	svc := extraction.NewService(extraction.ServiceDeps{Client: client})

	fmt.Printf("Query: %s\n\n", query)
	result, err := svc.ExtractEntities(ctx, query, nil)
	if err != nil {
		log.Fatalf("Extraction error: %v", err)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
}
