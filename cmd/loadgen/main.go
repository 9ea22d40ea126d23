package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// loadgen hammers a running server with concurrent placements for one
// product and checks that successes match the available stock exactly.

type placeOrderRequest struct {
	RequestID string      `json:"request_id"`
	Items     []placeItem `json:"items"`
}

type placeItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "server base URL")
	productID := flag.String("product", "", "product ID to order (required)")
	stock := flag.Int("stock", 20, "expected available stock of the product")
	requests := flag.Int("requests", 50, "number of concurrent placements")
	flag.Parse()

	if *productID == "" {
		fmt.Println("missing -product")
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}

	var success, soldOut, failed atomic.Int32

	g, ctx := errgroup.WithContext(context.Background())

	start := time.Now()
	for i := 0; i < *requests; i++ {
		g.Go(func() error {
			status, err := placeOrder(ctx, client, *baseURL, *productID)
			switch {
			case err != nil:
				failed.Add(1)
			case status == http.StatusCreated:
				success.Add(1)
			case status == http.StatusBadRequest:
				soldOut.Add(1)
			default:
				failed.Add(1)
			}
			return nil
		})
	}
	g.Wait()
	elapsed := time.Since(start)

	fmt.Println("========== LOAD TEST RESULTS ==========")
	fmt.Printf("Available Stock:  %d\n", *stock)
	fmt.Printf("Total Requests:   %d\n", *requests)
	fmt.Printf("Placed:           %d\n", success.Load())
	fmt.Printf("Rejected:         %d\n", soldOut.Load())
	fmt.Printf("Errors:           %d\n", failed.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("=======================================")

	if success.Load() == int32(*stock) && soldOut.Load() == int32(*requests-*stock) {
		fmt.Println("PASS: successes exactly exhausted the stock")
	} else {
		fmt.Printf("FAIL: expected %d placed/%d rejected, got %d/%d\n",
			*stock, *requests-*stock, success.Load(), soldOut.Load())
	}
}

func placeOrder(ctx context.Context, client *http.Client, baseURL, productID string) (int, error) {
	body, err := json.Marshal(placeOrderRequest{
		RequestID: uuid.New().String(),
		Items:     []placeItem{{ProductID: productID, Quantity: 1}},
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
