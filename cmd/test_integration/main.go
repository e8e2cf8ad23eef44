package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/agenthands/eventlens/internal/client"
)

// Smoke-tests a running server: submit a tweet, read it back, check the
// facets and stats, then delete what was added.
func main() {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5002"
	}
	c := client.New(baseURL, 2*time.Minute)
	ctx := context.Background()

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	fmt.Println("1. Submitting tweet...")
	out, err := c.SubmitTweet(ctx, "Flash floods in Sylhet have left 12 people dead and hundreds stranded, rescue teams deployed.")
	if err != nil {
		fmt.Printf("FAILED: Submit tweet: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("PASSED: Submit tweet (%s)\n", out.Message)
	if out.Result == nil {
		fmt.Println("Tweet was classified as not informative, nothing more to check")
		return
	}
	id := out.Result.ID

	fmt.Println("2. Fetching event...")
	ev, err := c.Event(ctx, id)
	if err != nil {
		fmt.Printf("FAILED: Fetch event: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("PASSED: Fetch event (%s at %s)\n", ev.EventType, ev.Locations)

	fmt.Println("3. Facets and stats...")
	types, err := c.EventTypes(ctx)
	if err != nil {
		fmt.Printf("FAILED: Event types: %v\n", err)
		os.Exit(1)
	}
	st, err := c.Stats(ctx)
	if err != nil {
		fmt.Printf("FAILED: Stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("PASSED: %d event types, %d events total\n", len(types), st.TotalEvents)

	if out.Result.Action == "added" {
		fmt.Println("4. Cleaning up...")
		if user := os.Getenv("ADMIN_USERNAME"); user != "" {
			if _, err := c.Login(ctx, user, os.Getenv("ADMIN_PASSWORD")); err != nil {
				fmt.Printf("FAILED: Login: %v\n", err)
				os.Exit(1)
			}
		}
		if _, err := c.DeleteEvent(ctx, id); err != nil {
			fmt.Printf("FAILED: Delete: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("PASSED: Delete")
	}
}
