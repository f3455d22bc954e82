package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/olekukonko/tablewriter"
)

const (
	baseURL     = "http://localhost:8080"
	numRequests = 1000
	concurrent  = 50
	targetRPS   = 100
	duration    = 30 * time.Second
	numProjects = 300
)

var (
	roles   = []string{"Sales Lead", "Sales Head", "ID", "DM", "SPM/PM", "SS", "MEP"}
	sbus    = []string{"Central", "North", "South", "West"}
	people  = []string{"Asha", "Bram", "Chen", "Dina", "Eli", "Farah", "Goran", "Hiro"}
	stages  = []string{"Design", "Pre Sales", "Execution", "Handover"}
	windows = [][2]string{{"2024-01-01", "2024-03-31"}, {"2024-04-01", "2024-06-30"}, {"2024-01-01", "2024-12-31"}}
)

type LoadTestResult struct {
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	TotalDuration      time.Duration
	AvgResponseTime    time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	P50ResponseTime    time.Duration
	P95ResponseTime    time.Duration
	P99ResponseTime    time.Duration
	ErrorRate          float64
	RequestsPerSecond  float64
	StatusCodes        map[int]int64
	EndpointStats      map[string]*EndpointStat
}

type EndpointStat struct {
	Total   int64
	Success int64
	Failed  int64
	Times   []time.Duration
}

type RequestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Endpoint     string
}

type EndpointFunc func(reqNum int64) (method string, url string, body []byte)

func main() {
	fmt.Println("=== Project score service load test ===")
	fmt.Printf("Base URL:     %s\n", baseURL)
	fmt.Printf("Requests:     %d\n", numRequests)
	fmt.Printf("Concurrency:  %d\n", concurrent)
	fmt.Printf("Target RPS:   %d\n", targetRPS)
	fmt.Printf("Max duration: %v\n\n", duration)

	jar, err := cookiejar.New(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cookie jar:", err)
		os.Exit(1)
	}
	client := &http.Client{Timeout: 10 * time.Second, Jar: jar}

	fmt.Printf("Seeding %d projects...\n", numProjects)
	if err := seedProjects(client); err != nil {
		fmt.Fprintln(os.Stderr, "seeding failed:", err)
		os.Exit(1)
	}

	result := runLoadTest(client)
	printResults(result)
}

// seedProjects replaces the project table with a synthetic batch so the read
// endpoints have something to rank.
func seedProjects(client *http.Client) error {
	projects := make([]map[string]interface{}, 0, numProjects)
	for i := 0; i < numProjects; i++ {
		login := time.Date(2024, time.Month(i%12+1), i%28+1, 0, 0, 0, 0, time.UTC)
		projects = append(projects, map[string]interface{}{
			"projectCode": fmt.Sprintf("LT-%04d", i),
			"projectName": fmt.Sprintf("Load project %d", i),
			"sbu":         sbus[i%len(sbus)],
			"stage":       stages[i%len(stages)],
			"loginDate":   login,
			"startDate":   login.AddDate(0, 0, 14),
			"salesLead":   people[i%len(people)],
			"salesHead":   people[(i+3)%len(people)],
			"designId":    people[(i+1)%len(people)],
			"designDm":    people[(i+2)%len(people)],
			"opsPm":       people[(i+4)%len(people)],
			"opsSs":       people[(i+5)%len(people)],
			"opsMep":      people[(i+6)%len(people)],

			"boq_uploaded": float64(i % 7),
			"renders":      float64(i % 15),
			"invoices":     float64(i % 9),
			"site_images":  float64(i % 20),
			"wpr_ratio":    float64(i%10) / 10,
		})
	}

	body, err := json.Marshal(map[string]interface{}{"projects": projects})
	if err != nil {
		return err
	}
	resp, err := client.Post(baseURL+"/projects/import", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("import returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}

func runLoadTest(client *http.Client) *LoadTestResult {
	var (
		totalRequests int64
		successful    int64
		failed        int64
		requestNum    int64
		mu            sync.Mutex
		wg            sync.WaitGroup
		responseTimes = make([]time.Duration, 0, numRequests)
		statusCodes   = make(map[int]int64)
		endpointStats = make(map[string]*EndpointStat)
	)

	semaphore := make(chan struct{}, concurrent)
	ticker := time.NewTicker(time.Second / time.Duration(targetRPS))
	defer ticker.Stop()
	deadline := time.After(duration)

	startTime := time.Now()

loop:
	for {
		select {
		case <-deadline:
			break loop
		case <-ticker.C:
			reqNum := atomic.AddInt64(&requestNum, 1)
			if reqNum > numRequests {
				break loop
			}

			wg.Add(1)
			semaphore <- struct{}{}
			go func(reqNum int64) {
				defer wg.Done()
				defer func() { <-semaphore }()

				result := makeRequest(client, reqNum)
				atomic.AddInt64(&totalRequests, 1)
				if result.Success {
					atomic.AddInt64(&successful, 1)
				} else {
					atomic.AddInt64(&failed, 1)
				}

				mu.Lock()
				defer mu.Unlock()
				responseTimes = append(responseTimes, result.ResponseTime)
				statusCodes[result.StatusCode]++
				stat := endpointStats[result.Endpoint]
				if stat == nil {
					stat = &EndpointStat{}
					endpointStats[result.Endpoint] = stat
				}
				stat.Total++
				stat.Times = append(stat.Times, result.ResponseTime)
				if result.Success {
					stat.Success++
				} else {
					stat.Failed++
				}
			}(reqNum)
		}
	}

	wg.Wait()
	totalTime := time.Since(startTime)

	sort.Slice(responseTimes, func(i, j int) bool { return responseTimes[i] < responseTimes[j] })

	result := &LoadTestResult{
		TotalRequests:      totalRequests,
		SuccessfulRequests: successful,
		FailedRequests:     failed,
		TotalDuration:      totalTime,
		StatusCodes:        statusCodes,
		EndpointStats:      endpointStats,
	}
	if totalRequests == 0 {
		return result
	}

	var sum time.Duration
	for _, rt := range responseTimes {
		sum += rt
	}
	result.AvgResponseTime = sum / time.Duration(len(responseTimes))
	result.ErrorRate = float64(failed) / float64(totalRequests)
	result.RequestsPerSecond = float64(totalRequests) / totalTime.Seconds()
	result.MinResponseTime = responseTimes[0]
	result.MaxResponseTime = responseTimes[len(responseTimes)-1]
	result.P50ResponseTime = percentile(responseTimes, 50)
	result.P95ResponseTime = percentile(responseTimes, 95)
	result.P99ResponseTime = percentile(responseTimes, 99)
	return result
}

func makeRequest(client *http.Client, reqNum int64) RequestResult {
	method, url, body := selectEndpoint(reqNum)(reqNum)
	endpoint := method + " " + extractEndpointPath(url)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	start := time.Now()
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return RequestResult{ResponseTime: time.Since(start), Endpoint: endpoint}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	responseTime := time.Since(start)
	if err != nil {
		return RequestResult{ResponseTime: responseTime, Endpoint: endpoint}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return RequestResult{
		Success:      resp.StatusCode >= 200 && resp.StatusCode < 300,
		ResponseTime: responseTime,
		StatusCode:   resp.StatusCode,
		Endpoint:     endpoint,
	}
}

// extractEndpointPath drops scheme, host and query, and folds project codes
// so every scorecard lands in one bucket.
func extractEndpointPath(url string) string {
	if idx := strings.Index(url, "://"); idx != -1 {
		url = url[idx+3:]
	}
	if idx := strings.Index(url, "/"); idx != -1 {
		url = url[idx:]
	}
	if idx := strings.Index(url, "?"); idx != -1 {
		url = url[:idx]
	}
	if strings.HasPrefix(url, "/projects/") && strings.HasSuffix(url, "/scorecard") {
		return "/projects/{code}/scorecard"
	}
	return url
}

func selectEndpoint(reqNum int64) EndpointFunc {
	switch reqNum % 10 {
	case 0, 1, 2:
		return leaderboardRequest
	case 3, 4:
		return scorecardRequest
	case 5:
		return hallOfFameRequest
	case 6, 7:
		return dashboardRequest
	case 8:
		return thresholdRequest
	default:
		return metricsRequest
	}
}

func leaderboardRequest(reqNum int64) (string, string, []byte) {
	role := roles[reqNum%int64(len(roles))]
	window := windows[reqNum%int64(len(windows))]
	q := fmt.Sprintf("role=%s&start=%s&end=%s", urlEscape(role), window[0], window[1])
	if reqNum%4 == 0 {
		q += "&thresh_pre_renders=" + strconv.FormatInt(reqNum%5+1, 10)
	}
	return http.MethodGet, fmt.Sprintf("%s/leaderboard?%s", baseURL, q), nil
}

func scorecardRequest(reqNum int64) (string, string, []byte) {
	code := fmt.Sprintf("LT-%04d", reqNum%numProjects)
	role := roles[reqNum%int64(len(roles))]
	return http.MethodGet, fmt.Sprintf("%s/projects/%s/scorecard?role=%s", baseURL, code, urlEscape(role)), nil
}

func hallOfFameRequest(reqNum int64) (string, string, []byte) {
	window := windows[reqNum%int64(len(windows))]
	return http.MethodGet, fmt.Sprintf("%s/leaderboard/summary?start=%s&end=%s", baseURL, window[0], window[1]), nil
}

func dashboardRequest(reqNum int64) (string, string, []byte) {
	departments := []string{"Sales", "Design", "Operations"}
	dept := departments[reqNum%int64(len(departments))]
	window := windows[reqNum%int64(len(windows))]
	return http.MethodGet, fmt.Sprintf("%s/dashboard/summary?department=%s&role=all+roles&start=%s&end=%s",
		baseURL, dept, window[0], window[1]), nil
}

func thresholdRequest(reqNum int64) (string, string, []byte) {
	if reqNum%3 == 0 {
		return http.MethodPost, baseURL + "/thresholds/reset", nil
	}
	body, _ := json.Marshal(map[string]interface{}{
		"overrides": map[string]float64{"renders": float64(reqNum % 6), "invoices": float64(reqNum % 4)},
	})
	return http.MethodPost, baseURL + "/thresholds", body
}

func metricsRequest(reqNum int64) (string, string, []byte) {
	stage := "Pre"
	if reqNum%2 == 0 {
		stage = "Post"
	}
	return http.MethodGet, fmt.Sprintf("%s/metrics?stage=%s", baseURL, stage), nil
}

func urlEscape(s string) string {
	return strings.NewReplacer(" ", "+", "/", "%2F").Replace(s)
}

func percentile(sortedTimes []time.Duration, p int) time.Duration {
	if len(sortedTimes) == 0 {
		return 0
	}
	index := (p * len(sortedTimes)) / 100
	if index >= len(sortedTimes) {
		index = len(sortedTimes) - 1
	}
	return sortedTimes[index]
}

func printResults(result *LoadTestResult) {
	fmt.Println("\n=== Results ===")
	fmt.Printf("Requests:   %d total, %d ok, %d failed (%.2f%% errors)\n",
		result.TotalRequests, result.SuccessfulRequests, result.FailedRequests, result.ErrorRate*100)
	fmt.Printf("Duration:   %v (%.2f RPS)\n", result.TotalDuration, result.RequestsPerSecond)
	fmt.Printf("Latency:    min %v, avg %v, max %v\n", result.MinResponseTime, result.AvgResponseTime, result.MaxResponseTime)
	fmt.Printf("Percentile: p50 %v, p95 %v, p99 %v\n\n", result.P50ResponseTime, result.P95ResponseTime, result.P99ResponseTime)

	codes := make([]int, 0, len(result.StatusCodes))
	for code := range result.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Printf("  HTTP %d: %d\n", code, result.StatusCodes[code])
	}
	fmt.Println()

	endpoints := make([]string, 0, len(result.EndpointStats))
	for endpoint := range result.EndpointStats {
		endpoints = append(endpoints, endpoint)
	}
	sort.Strings(endpoints)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Endpoint", "Total", "OK", "Failed", "P95"})
	var data [][]string
	for _, endpoint := range endpoints {
		stat := result.EndpointStats[endpoint]
		sort.Slice(stat.Times, func(i, j int) bool { return stat.Times[i] < stat.Times[j] })
		data = append(data, []string{
			endpoint,
			strconv.FormatInt(stat.Total, 10),
			strconv.FormatInt(stat.Success, 10),
			strconv.FormatInt(stat.Failed, 10),
			percentile(stat.Times, 95).String(),
		})
	}
	if err := table.Bulk(data); err != nil {
		fmt.Fprintln(os.Stderr, "table:", err)
	}
	if err := table.Render(); err != nil {
		fmt.Fprintln(os.Stderr, "table:", err)
	}

	fmt.Println("\n=== SLI check ===")
	printCheck("P95 latency < 300ms", result.P95ResponseTime < 300*time.Millisecond,
		fmt.Sprintf("%.2fms", float64(result.P95ResponseTime.Nanoseconds())/1e6))
	printCheck("Success rate > 99.9%", result.ErrorRate < 0.001,
		fmt.Sprintf("%.4f%% errors", result.ErrorRate*100))
	printCheck("Throughput >= 80% of target", result.RequestsPerSecond >= float64(targetRPS)*0.8,
		fmt.Sprintf("%.2f RPS of %d", result.RequestsPerSecond, targetRPS))
}

func printCheck(name string, ok bool, detail string) {
	mark := "FAIL"
	if ok {
		mark = "PASS"
	}
	fmt.Printf("[%s] %s (%s)\n", mark, name, detail)
}
