package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nulzo/greencode-advisor/internal/llm"
	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	upstreamPort = 9091
	appPort      = 8081
)

const snippet = "result = []\nfor i in range(1000000):\n    result.append(i * 2)\n"

var (
	openAIResp = []byte(`{"id":"bench-123","choices":[{"message":{"role":"assistant","content":"## Summary\nUse a list comprehension."}}]}`)
	geminiList = []byte(`{"models":[{"name":"models/gemini-1.5-flash","supportedGenerationMethods":["generateContent"]}]}`)
	geminiResp = []byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"## Summary\nUse a generator."}]}}]}`)
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Duration of the test")
	rate := flag.Int("rate", 50, "Requests per second")
	provider := flag.String("provider", llm.Grok.String(), "Provider to analyze with")
	mockDelay := flag.Duration("mock-delay", 20*time.Millisecond, "Delay of the mock providers")
	chaos := flag.Bool("chaos", false, "Simulate random client disconnections")
	flag.Parse()

	if _, err := llm.ParseProvider(*provider); err != nil {
		log.Fatalf("%s: %q", err, *provider)
	}

	// fake OpenAI and Gemini upstreams
	go startUpstream()

	fmt.Println("Building application...")
	buildCmd := exec.Command("go", "build", "-o", "bin/server", "./cmd/server")
	buildCmd.Stdout = os.Stdout
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	configFile := "bench_config.yaml"
	if err := os.WriteFile(configFile, []byte(benchConfig(*mockDelay)), 0o644); err != nil {
		log.Fatalf("Failed to write config: %v", err)
	}
	defer os.Remove(configFile)

	fmt.Println("Starting application...")
	cmd := exec.Command("./bin/server")
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("CONFIG_FILE=%s", configFile),
		fmt.Sprintf("SERVER_PORT=%d", appPort),
		"LOG_LEVEL=error",
	)

	logFile, _ := os.Create("bench_server.log")
	defer logFile.Close()
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}
	defer func() {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}()

	waitForApp(fmt.Sprintf("http://localhost:%d/health", appPort))

	done := make(chan struct{})
	go monitorCPU(cmd.Process.Pid, done)

	fmt.Printf("Running benchmark against %q: %s duration, %d req/s\n", *provider, *duration, *rate)

	url := fmt.Sprintf("http://localhost:%d/v1/analyze", appPort)
	body, _ := json.Marshal(map[string]string{
		"code":     snippet,
		"provider": *provider,
		"api_key":  "bench-key-12345",
	})

	targeter := func(t *vegeta.Target) error {
		t.Method = http.MethodPost
		t.URL = url
		t.Body = body
		t.Header = http.Header{"Content-Type": []string{"application/json"}}
		return nil
	}

	if *chaos {
		concurrency := min(max(*rate/10, 5), 50)
		fmt.Println("CHAOS MODE ENABLED: Starting Chaos Monkey sidecar...")
		go startChaosMonkey(url, body, concurrency, done)
	}

	attacker := vegeta.NewAttacker(vegeta.KeepAlive(true))
	var metrics vegeta.Metrics

	for res := range attacker.Attack(targeter, vegeta.Rate{Freq: *rate, Per: time.Second}, *duration, "Benchmark") {
		metrics.Add(res)
	}
	metrics.Close()
	close(done)

	fmt.Println("--------------------------------------------------")
	fmt.Println("99th percentile: ", metrics.Latencies.P99)
	fmt.Println("Mean:            ", metrics.Latencies.Mean)
	fmt.Println("Max:             ", metrics.Latencies.Max)
	fmt.Printf("Success:         %.2f%%\n", metrics.Success*100)
	fmt.Printf("Throughput:      %.2f req/s\n", metrics.Throughput)
	fmt.Println("Status codes:    ", metrics.StatusCodes)
	fmt.Println("--------------------------------------------------")

	if len(metrics.Errors) > 0 {
		fmt.Println("Error Set (first 5 unique):")
		seen := make(map[string]bool)
		for _, msg := range metrics.Errors {
			if len(seen) == 5 {
				break
			}
			if !seen[msg] {
				fmt.Println(msg)
				seen[msg] = true
			}
		}
	}
}

// startChaosMonkey cancels analyze requests at random points so the
// dispatcher's context handling is exercised under load.
func startChaosMonkey(url string, payload []byte, concurrency int, done chan struct{}) {
	fmt.Printf("Starting Chaos Monkey with %d concurrent disrupters (random disconnects 1-200ms)\n", concurrency)
	var wg sync.WaitGroup
	wg.Add(concurrency)

	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			client := &http.Client{}

			for {
				select {
				case <-done:
					return
				default:
				}

				timeout := time.Duration(rand.Intn(200)+1) * time.Millisecond
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(payload)))
				req.Header.Set("Content-Type", "application/json")

				resp, err := client.Do(req)
				if err == nil {
					resp.Body.Close()
				}
				cancel()

				time.Sleep(time.Duration(rand.Intn(50)) * time.Millisecond)
			}
		}()
	}
	wg.Wait()
}

func startUpstream() {
	mux := http.NewServeMux()

	mux.HandleFunc("/openai/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(10 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(openAIResp)
	})

	mux.HandleFunc("/gemini/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			_, _ = w.Write(geminiList)
			return
		}
		time.Sleep(10 * time.Millisecond)
		_, _ = w.Write(geminiResp)
	})

	_ = http.ListenAndServe(fmt.Sprintf(":%d", upstreamPort), mux)
}

func monitorCPU(pid int, done chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	fmt.Println("\n--- Resource Usage (ps) ---")
	fmt.Printf("% -10s % -10s % -10s\n", "Time", "RSS(MB)", "CPU(%)")

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			out, err := exec.Command("ps", "-p", strconv.Itoa(pid), "-o", "rss=,%cpu=").Output()
			if err != nil {
				continue
			}
			fields := strings.Fields(string(out))
			if len(fields) < 2 {
				continue
			}
			rss, _ := strconv.ParseFloat(fields[0], 64)
			cpu, _ := strconv.ParseFloat(fields[1], 64)
			fmt.Printf("% -10s % -10.2f % -10.2f\n", time.Now().Format("15:04:05"), rss/1024, cpu)
		}
	}
}

func waitForApp(url string) {
	for i := 0; i < 20; i++ {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	log.Fatal("App timed out")
}

func benchConfig(mockDelay time.Duration) string {
	return fmt.Sprintf(`
server:
  port: "%d"
  env: production
log:
  level: error
  format: json
openai:
  base_url: "http://localhost:%d/openai/v1"
gemini:
  base_url: "http://localhost:%d/gemini"
mock:
  delay: %s
updates:
  check: false
`, appPort, upstreamPort, upstreamPort, mockDelay)
}
