package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

const (
	baseURL = "http://localhost:3000/api"
)

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, guestID string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-ID", guestID)

	client := &http.Client{} // No timeout, the tutor can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func show(body []byte) {
	var parsed map[string]interface{}
	json.Unmarshal(body, &parsed)
	prettyPrint(parsed)
}

func main() {
	color.Cyan("🚀 Starting Guest Homework Flow Test\n")
	guestID := uuid.NewString()
	color.Cyan("Guest ID: %s", guestID)

	// 1. Create Session
	color.Yellow("\n[GUEST] 1. Create Session")
	resp, body, err := sendRequest("POST", "/guest/v1/session", guestID, map[string]string{
		"title": "Algebra homework",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 2. Create a second session - must be rejected
	color.Yellow("\n[GUEST] 2. Create Second Session (expect 409)")
	resp, body, err = sendRequest("POST", "/guest/v1/session", guestID, map[string]string{
		"title": "Another one",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 3. Choose Input Method
	color.Yellow("\n[GUEST] 3. Choose Input Method (text)")
	resp, body, err = sendRequest("PUT", "/guest/v1/session/input-method", guestID, map[string]string{
		"input_method": "text",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 4. Submit Input (triggers subject detection)
	color.Yellow("\n[GUEST] 4. Submit Homework Input")
	resp, body, err = sendRequest("POST", "/guest/v1/session/input", guestID, map[string]string{
		"text": "Solve: 2x + 3 = 7",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 5. Ask for a hint
	color.Yellow("\n[GUEST] 5. Ask Tutor (hint)")
	resp, body, err = sendRequest("POST", "/guest/v1/session/ask", guestID, map[string]string{
		"mode":     "hint",
		"question": "Where do I start?",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 6. Transcript
	color.Yellow("\n[GUEST] 6. Get Transcript")
	resp, body, err = sendRequest("GET", "/guest/v1/session", guestID, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 7. Progress
	color.Yellow("\n[GUEST] 7. Get Progress")
	resp, body, err = sendRequest("GET", "/guest/v1/progress", guestID, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	// 8. Delete and recreate
	color.Yellow("\n[GUEST] 8. Delete Session")
	resp, body, err = sendRequest("DELETE", "/guest/v1/session", guestID, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	show(body)

	color.Cyan("\n✅ Guest flow test finished")
}
