package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
)

var (
	kinds    = []string{"all", "寺社", "自然", "城", "街並み"}
	keywords = []string{"", "temple", "garden", "castle", "kyoto", "river"}
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

// lastID is the highest id handed out by POST /sights during the run.
var lastID atomic.Int64

func main() {
	fmt.Println("=== sightd Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", numWorkers, testDuration)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: every request rewrites the whole document
	fmt.Println("\n--- Phase 1: Adding sights (POST /sights) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doAdd(rng)
	})

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (20% writes, 80% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.15:
			return doAdd(rng)
		case r < 0.20:
			return doDelete(rng)
		case r < 0.60:
			return doList(rng)
		case r < 0.80:
			return doMap(rng)
		case r < 0.95:
			return doGetSight(rng)
		default:
			return doGet("GET /kinds", "/kinds")
		}
	})

	// Phase 3: Read-heavy load, mostly served from the response cache
	fmt.Println("\n--- Phase 3: Read-heavy load (100% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doList(rng)
		case r < 0.90:
			return doMap(rng)
		default:
			return doGetSight(rng)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doAdd(rng *rand.Rand) result {
	body := map[string]interface{}{
		"name":        fmt.Sprintf("Sight %d", rng.Intn(100000)),
		"description": keywords[rng.Intn(len(keywords))] + " spot",
		"kind":        kinds[1+rng.Intn(len(kinds)-1)],
		"imageName":   "kinkakuji",
		"lat":         34.9 + rng.Float64()*0.2,
		"lng":         fmt.Sprintf("%.5f", 135.6+rng.Float64()*0.2),
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/sights", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /sights", 0, lat, true}
	}
	defer resp.Body.Close()
	var created struct {
		ID int64 `json:"id"`
	}
	if resp.StatusCode == http.StatusCreated && json.NewDecoder(resp.Body).Decode(&created) == nil {
		for {
			cur := lastID.Load()
			if created.ID <= cur || lastID.CompareAndSwap(cur, created.ID) {
				break
			}
		}
	}
	io.Copy(io.Discard, resp.Body)
	return result{"POST /sights", resp.StatusCode, lat, resp.StatusCode != http.StatusCreated}
}

func randomID(rng *rand.Rand) int64 {
	return rng.Int63n(lastID.Load()+6) + 1
}

func doDelete(rng *rand.Rand) result {
	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/sight?id=%d", baseURL, randomID(rng)), nil)
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{"DELETE /sight", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	ok := resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound
	return result{"DELETE /sight", resp.StatusCode, lat, !ok}
}

func filterQuery(rng *rand.Rand) string {
	q := url.Values{}
	q.Set("kind", kinds[rng.Intn(len(kinds))])
	if kw := keywords[rng.Intn(len(keywords))]; kw != "" {
		q.Set("q", kw)
	}
	return q.Encode()
}

func doList(rng *rand.Rand) result {
	return doGet("GET /sights", "/sights?"+filterQuery(rng))
}

func doMap(rng *rand.Rand) result {
	return doGet("GET /map", "/map?"+filterQuery(rng))
}

func doGetSight(rng *rand.Rand) result {
	start := time.Now()
	resp, err := httpClient.Get(fmt.Sprintf("%s/sight?id=%d", baseURL, randomID(rng)))
	lat := time.Since(start)
	if err != nil {
		return result{"GET /sight", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	ok := resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNotFound
	return result{"GET /sight", resp.StatusCode, lat, !ok}
}

func doGet(endpoint, path string) result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + path)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
