// Command chat_smoke drives a running backend through the selection round trip and
// prints every exchange. It is a manual check, not part of the test suite.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"portfolio-chat-be/internal/dto"
	"portfolio-chat-be/internal/pkg/serverutils"
	"portfolio-chat-be/pkg/ai/state"

	"github.com/fatih/color"
)

func baseURL() string {
	if v := os.Getenv("CHAT_SMOKE_BASE_URL"); v != "" {
		return v
	}
	return "http://localhost:8000/api"
}

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
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, nil, err
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL()+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

type conversation struct {
	messages []dto.ChatMessageDTO
	state    *state.DialogueState
}

func (c *conversation) say(content string) *dto.ChatResponse {
	c.messages = append(c.messages, dto.ChatMessageDTO{Role: "user", Content: content})
	color.Yellow("\n> %s", content)

	resp, body, err := sendRequest("POST", "/chat", dto.ChatRequest{Messages: c.messages, State: c.state})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusOK {
		color.Red("Status: %s", resp.Status)
		fmt.Println(string(body))
		os.Exit(1)
	}

	var chat dto.ChatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		color.Red("Bad response: %v", err)
		os.Exit(1)
	}

	color.Green("%s", chat.Response)
	color.HiBlack("needsSelection=%v", chat.NeedsSelection)
	prettyPrint(chat.State)

	c.messages = append(c.messages, dto.ChatMessageDTO{Role: "assistant", Content: chat.Response})
	c.state = chat.State
	return &chat
}

func main() {
	color.Cyan("Starting portfolio chat round trip against %s\n", baseURL())

	conv := &conversation{}
	conv.say("Hi! What do you do?")

	first := conv.say("Give me a deep dive into one of your projects")
	if !first.NeedsSelection {
		color.Magenta("Model resolved an item without a picker; skipping selection step")
		return
	}

	color.Yellow("\n[OPTIONS] Fetching project options")
	_, body, err := sendRequest("GET", "/chat/options?type=project", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	var options serverutils.BaseResponse[dto.SelectionOptionsResponse]
	if err := json.Unmarshal(body, &options); err != nil || len(options.Data.Options) == 0 {
		color.Red("No options returned: %s", string(body))
		os.Exit(1)
	}
	prettyPrint(options.Data.Options)

	pick := options.Data.Options[0]
	conv.say(fmt.Sprintf(`Selected: {"type":%q,"id":%d}`, pick.Type, pick.ID))
	conv.say("What was the hardest part?")

	color.Cyan("\nDone.")
}
