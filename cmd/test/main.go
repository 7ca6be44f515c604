package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BerylCAtieno/style-advisor-agent/internal/models"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// processCase is a /process request and what the response must contain.
type processCase struct {
	name       string
	body       map[string]any
	status     int
	group      string
	errMessage string
}

var processCases = []processCase{
	{
		name:   "group a",
		body:   scores(30, 90, 20, 85),
		status: http.StatusOK,
		group:  "Group A",
	},
	{
		name:   "group b",
		body:   scores(50, 50, 50, 50),
		status: http.StatusOK,
		group:  "Group B",
	},
	{
		name:   "group c",
		body:   scores(90, 10, 80, 20),
		status: http.StatusOK,
		group:  "Group C",
	},
	{
		name:   "group d",
		body:   scores(10, 10, 10, 10),
		status: http.StatusOK,
		group:  "Group D",
	},
	{
		name: "missing field",
		body: map[string]any{
			models.FieldPersuasionReceptivity:   50,
			models.FieldDeceptionSusceptibility: 50,
			models.FieldEmotionalResponseBias:   50,
		},
		status:     http.StatusBadRequest,
		errMessage: "Missing field: cognitive_bias_awareness",
	},
	{
		name:       "out of range",
		body:       scores(150, 50, 50, 50),
		status:     http.StatusBadRequest,
		errMessage: "Invalid value for cognitive_bias_awareness. Must be an integer between 0 and 100.",
	},
}

func scores(cba, pr, ds, erb int) map[string]any {
	return map[string]any{
		models.FieldCognitiveBiasAwareness:  cba,
		models.FieldPersuasionReceptivity:   pr,
		models.FieldDeceptionSusceptibility: ds,
		models.FieldEmotionalResponseBias:   erb,
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, process, a2a, custom")
	scoreList := flag.String("scores", "", "Comma separated scores in field order (for custom test), e.g. 30,90,20,85")
	prompt := flag.String("prompt", "", "Optional prompt to render in the advised style (for custom test)")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Style Advisor Agent - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	var ok bool
	switch *testType {
	case "all":
		client.runAllTests()
		return
	case "health":
		ok = client.testHealthCheck()
	case "agent-card":
		ok = client.testAgentCard()
	case "process":
		ok = client.testProcess()
	case "a2a":
		ok = client.testA2A()
	case "custom":
		body, err := parseScores(*scoreList)
		if err != nil {
			printError(err.Error())
			os.Exit(1)
		}
		ok = client.testCustom(body, *prompt)
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, process, a2a, custom")
		os.Exit(1)
	}

	if !ok {
		os.Exit(1)
	}
}

func parseScores(list string) (map[string]any, error) {
	if list == "" {
		return nil, fmt.Errorf("scores are required for custom test. Use -scores flag")
	}
	values := strings.Split(list, ",")
	if len(values) != len(models.FieldNames) {
		return nil, fmt.Errorf("expected %d scores, got %d", len(models.FieldNames), len(values))
	}

	body := make(map[string]any, len(values))
	for i, v := range values {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid score %q: %w", v, err)
		}
		body[models.FieldNames[i]] = n
	}
	return body, nil
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Process", tc.testProcess},
		{"A2A", tc.testA2A},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.get("/health")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK || string(body) != "OK" {
		printError(fmt.Sprintf("Expected 200 'OK', got %d '%s'", status, string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	status, body, err := tc.get("/.well-known/agent.json")
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var agentCard map[string]any
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	for _, field := range []string{"name", "description", "version", "capabilities", "skills"} {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testProcess() bool {
	printTestHeader("Testing Process Endpoint")

	ok := true
	for _, pc := range processCases {
		status, body, err := tc.postJSON("/process", pc.body)
		if err != nil {
			printError(fmt.Sprintf("%s: request failed: %v", pc.name, err))
			ok = false
			continue
		}
		if status != pc.status {
			printError(fmt.Sprintf("%s: expected status %d, got %d", pc.name, pc.status, status))
			ok = false
			continue
		}

		if pc.errMessage != "" {
			var e struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(body, &e); err != nil || e.Error != pc.errMessage {
				printError(fmt.Sprintf("%s: expected error %q, got %s", pc.name, pc.errMessage, string(body)))
				ok = false
				continue
			}
		} else {
			var a models.Assessment
			if err := json.Unmarshal(body, &a); err != nil || a.UserGroup.Name != pc.group {
				printError(fmt.Sprintf("%s: expected %s, got %s", pc.name, pc.group, string(body)))
				ok = false
				continue
			}
		}
		printSuccess(pc.name)
	}
	return ok
}

func (tc *TestClient) testA2A() bool {
	printTestHeader("Testing A2A Endpoint")
	text := "cognitive_bias_awareness: 30, persuasion_receptivity: 90, deception_susceptibility: 20, emotional_response_bias: 85"
	return tc.sendA2A(text)
}

func (tc *TestClient) testCustom(body map[string]any, prompt string) bool {
	printTestHeader("Testing Custom Scores")

	status, resp, err := tc.postJSON("/process", body)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		printJSON(resp)
		return false
	}
	printJSON(resp)

	if prompt == "" {
		return true
	}

	parts := make([]string, 0, len(models.FieldNames)+1)
	for _, name := range models.FieldNames {
		parts = append(parts, fmt.Sprintf("%s: %v", name, body[name]))
	}
	return tc.sendA2A(strings.Join(parts, ", ") + ". " + prompt)
}

func (tc *TestClient) sendA2A(text string) bool {
	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind": "message",
				"role": "user",
				"parts": []map[string]any{
					{"kind": "text", "text": text},
				},
			},
			"configuration": map[string]any{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	status, body, err := tc.postJSON("/a2a/advisor", request)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var response struct {
		Error  any `json:"error"`
		Result struct {
			Status struct {
				State   string `json:"state"`
				Message struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if response.Error != nil {
		printError("Request returned an error")
		printJSON(body)
		return false
	}
	if response.Result.Status.State != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", response.Result.Status.State))
		return false
	}

	printSuccess("A2A task completed")
	fmt.Println(strings.Repeat("=", 80))
	for _, p := range response.Result.Status.Message.Parts {
		fmt.Println(p.Text)
	}
	fmt.Println(strings.Repeat("=", 80))
	return true
}

func (tc *TestClient) get(path string) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func (tc *TestClient) postJSON(path string, payload any) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Printf("POST %s\n", url)

	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	resp, err := tc.client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
