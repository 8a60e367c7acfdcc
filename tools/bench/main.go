package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Load smoke tool: registers a pool of users, logs them in and pairs them
// off to exchange direct messages through the HTTP API, then reports
// latency percentiles. Meant for a dev instance, not for production.

var (
	baseURL = flag.String("url", "http://localhost:8080", "server base url")
	users   = flag.Int("users", 10, "number of users (even)")
	rounds  = flag.Int("rounds", 20, "messages per pair")
)

type account struct {
	ID    string
	Token string
}

func main() {
	flag.Parse()
	if *users%2 != 0 {
		fmt.Println("users must be even")
		return
	}

	run := time.Now().UnixNano()
	accounts := make([]account, *users)
	for i := range accounts {
		acc, err := register(fmt.Sprintf("bench_%d_%d", run, i))
		if err != nil {
			fmt.Printf("register failed: %v\n", err)
			return
		}
		accounts[i] = acc
	}
	fmt.Printf("registered %d users\n", len(accounts))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		latencies []time.Duration
		errCount  int
	)

	start := time.Now()
	for i := 0; i < len(accounts); i += 2 {
		wg.Add(1)
		go func(a, b account) {
			defer wg.Done()
			for r := 0; r < *rounds; r++ {
				t0 := time.Now()
				err := sendMessage(a, b.ID)
				d := time.Since(t0)
				mu.Lock()
				if err != nil {
					errCount++
				} else {
					latencies = append(latencies, d)
				}
				mu.Unlock()
			}
		}(accounts[i], accounts[i+1])
	}
	wg.Wait()
	elapsed := time.Since(start)

	if len(latencies) == 0 {
		fmt.Printf("all %d requests failed\n", errCount)
		return
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	pct := func(p float64) time.Duration {
		return latencies[int(float64(len(latencies)-1)*p)]
	}

	fmt.Printf("sent %d messages in %s (%d errors)\n", len(latencies), elapsed, errCount)
	fmt.Printf("throughput: %.1f msg/s\n", float64(len(latencies))/elapsed.Seconds())
	fmt.Printf("latency p50=%s p90=%s p99=%s max=%s\n",
		pct(0.50), pct(0.90), pct(0.99), latencies[len(latencies)-1])
}

func register(name string) (account, error) {
	body := map[string]interface{}{
		"username":   name,
		"email":      name + "@bench.local",
		"password":   "bench-password",
		"public_key": "bench-key-" + name,
	}
	if _, err := post("/api/v1/users/register", "", body); err != nil {
		return account{}, err
	}

	resp, err := post("/api/v1/users/login", "", map[string]interface{}{
		"usernameOrEmail": name,
		"password":        "bench-password",
	})
	if err != nil {
		return account{}, err
	}

	var envelope struct {
		Data struct {
			User struct {
				ID string `json:"id"`
			} `json:"user"`
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp, &envelope); err != nil {
		return account{}, err
	}
	return account{ID: envelope.Data.User.ID, Token: envelope.Data.AccessToken}, nil
}

func sendMessage(from account, toID string) error {
	_, err := post("/api/v1/messages", from.Token, map[string]interface{}{
		"recipient_id": toID,
		"content":      []byte("bench payload"),
	})
	return err
}

func post(path, token string, body interface{}) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, *baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s: %s", resp.Status, buf.String())
	}
	return buf.Bytes(), nil
}
