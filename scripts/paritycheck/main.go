// Command paritycheck replays read endpoints against the legacy record
// keeper and this API and reports response differences. Used while cutting
// traffic over from the old deployment.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type endpoint struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type endpointsFile struct {
	Endpoints []endpoint `json:"endpoints"`
}

type result struct {
	Endpoint     endpoint
	NewStatus    int
	LegacyStatus int
	StatusMatch  bool
	BodyMatch    bool
	NewLatency   time.Duration
	OldLatency   time.Duration
	Err          error
}

func main() {
	var (
		newBase    string
		legacyBase string
		listPath   string
		timeout    time.Duration
	)

	flag.StringVar(&newBase, "new-base", "http://localhost:8080", "new API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:5000", "legacy record keeper base URL")
	flag.StringVar(&listPath, "endpoints", filepath.Join("scripts", "paritycheck", "endpoints.json"), "path to JSON endpoint list")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	endpoints, err := loadEndpoints(listPath)
	if err != nil {
		log.Fatalf("failed to load endpoints: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		results  []result
		breaking int
		minor    int
	)

	for _, ep := range endpoints {
		res := compare(client, newBase, legacyBase, ep)
		if res.Err != nil || !res.StatusMatch || !res.BodyMatch {
			if ep.Critical {
				breaking++
			} else {
				minor++
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Breaking diffs: %d, minor diffs: %d\n", breaking, minor)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadEndpoints(path string) ([]endpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file endpointsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints defined in %s", path)
	}
	return file.Endpoints, nil
}

func compare(client *http.Client, newBase, legacyBase string, ep endpoint) result {
	res := result{Endpoint: ep}

	newResp, newLatency, err := request(client, newBase, ep)
	if err != nil {
		res.Err = fmt.Errorf("new api request failed: %w", err)
		return res
	}
	defer newResp.Body.Close()
	legacyResp, oldLatency, err := request(client, legacyBase, ep)
	if err != nil {
		res.Err = fmt.Errorf("legacy request failed: %w", err)
		return res
	}
	defer legacyResp.Body.Close()

	res.NewLatency = newLatency
	res.OldLatency = oldLatency
	res.NewStatus = newResp.StatusCode
	res.LegacyStatus = legacyResp.StatusCode
	res.StatusMatch = res.NewStatus == res.LegacyStatus

	newBody, err := io.ReadAll(newResp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read new api body: %w", err)
		return res
	}
	legacyBody, err := io.ReadAll(legacyResp.Body)
	if err != nil {
		res.Err = fmt.Errorf("read legacy body: %w", err)
		return res
	}
	res.BodyMatch = bodiesEqual(newBody, legacyBody)

	return res
}

func request(client *http.Client, base string, ep endpoint) (*http.Response, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(ep.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := ep.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return nil, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp, time.Since(start), nil
}

// bodiesEqual falls back to structural JSON comparison so whitespace and
// number formatting differences between the two stacks do not count as diffs.
func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []result) {
	fmt.Println("Cutover Parity Report")
	fmt.Println("=====================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Endpoint.Method, res.Endpoint.Path)
		if res.Err != nil {
			fmt.Printf("  error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  new: %d (%s) | legacy: %d (%s)\n", res.NewStatus, res.NewLatency, res.LegacyStatus, res.OldLatency)
		fmt.Printf("  status match: %t | body match: %t | critical: %t\n", res.StatusMatch, res.BodyMatch, res.Endpoint.Critical)
	}
}
