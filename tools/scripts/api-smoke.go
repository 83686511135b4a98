// Package main provides a CI-friendly HTTP smoke test for a running
// parley server.
//
// It validates:
//   - signup for two fresh accounts -> tokens
//   - signin with the same credentials
//   - start conversation (and 409 with the existing id on the reverse pair)
//   - send -> fetch ordered messages
//   - incremental fetch with ?after=
package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

func main() {
	var (
		baseURL = flag.String("url", "http://127.0.0.1:8080", "Base URL of the server")
		timeout = flag.Duration("timeout", 7*time.Second, "Per-request timeout")
		verbose = flag.Bool("v", false, "Verbose output")
	)
	flag.Parse()

	c := &smokeClient{
		base:    *baseURL,
		http:    &http.Client{Timeout: *timeout},
		verbose: *verbose,
	}

	// Fresh emails per run so the script is rerunnable against a
	// persistent database.
	run := uuid.NewString()[:8]
	aliceEmail := "smoke-alice-" + run + "@example.com"
	bobEmail := "smoke-bob-" + run + "@example.com"
	pw := "SmokeTest123!"

	aliceTok := c.signup(aliceEmail, pw)
	bobTok := c.signup(bobEmail, pw)
	c.signin(aliceEmail, pw)

	convID := c.startConversation(aliceTok, c.accountID(bobTok))
	c.expectConflict(bobTok, c.accountID(aliceTok), convID)

	c.send(aliceTok, convID, "first")
	c.send(bobTok, convID, "second")

	msgs := c.messages(aliceTok, convID, "")
	if len(msgs) != 2 || msgs[0].Content != "first" || msgs[1].Content != "second" {
		fatalf("messages: got %+v, want [first second]", msgs)
	}

	after := msgs[0].SentAt.Format(time.RFC3339)
	tail := c.messages(aliceTok, convID, after)
	if len(tail) != 1 || tail[0].Content != "second" {
		fatalf("messages after %s: got %+v, want [second]", after, tail)
	}

	fmt.Println("SMOKE OK")
}

type smokeClient struct {
	base    string
	http    *http.Client
	verbose bool
}

type message struct {
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

func (c *smokeClient) signup(email, pw string) string {
	var resp struct {
		Token string `json:"token"`
	}
	c.do(http.MethodPost, "/auth/signup", "", map[string]string{"email": email, "password": pw}, http.StatusCreated, &resp)
	if resp.Token == "" {
		fatalf("signup %s: empty token", email)
	}
	c.logf("signup ok: %s", email)
	return resp.Token
}

func (c *smokeClient) signin(email, pw string) {
	var resp struct {
		Token string `json:"token"`
	}
	c.do(http.MethodPost, "/auth/signin", "", map[string]string{"email": email, "password": pw}, http.StatusOK, &resp)
	if resp.Token == "" {
		fatalf("signin %s: empty token", email)
	}
	c.logf("signin ok: %s", email)
}

// accountID extracts the uid claim without verifying the signature;
// good enough for a smoke script talking to its own server.
func (c *smokeClient) accountID(tok string) string {
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		fatalf("token is not a JWT")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		fatalf("token payload: %v", err)
	}
	var claims struct {
		UID string `json:"uid"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		fatalf("token claims: %v", err)
	}
	return claims.UID
}

func (c *smokeClient) startConversation(tok, receiverID string) string {
	var resp struct {
		ConversationID string `json:"conversation_id"`
	}
	c.do(http.MethodPost, "/conversations", tok, map[string]string{"receiver_id": receiverID}, http.StatusCreated, &resp)
	c.logf("conversation started: %s", resp.ConversationID)
	return resp.ConversationID
}

func (c *smokeClient) expectConflict(tok, receiverID, wantID string) {
	var resp struct {
		ConversationID string `json:"conversation_id"`
	}
	c.do(http.MethodPost, "/conversations", tok, map[string]string{"receiver_id": receiverID}, http.StatusConflict, &resp)
	if resp.ConversationID != wantID {
		fatalf("conflict id = %q, want %q", resp.ConversationID, wantID)
	}
	c.logf("reverse pair conflict carries existing id: ok")
}

func (c *smokeClient) send(tok, convID, content string) {
	var resp struct {
		MessageID string `json:"message_id"`
	}
	c.do(http.MethodPost, "/conversations/"+convID+"/messages", tok, map[string]string{"content": content}, http.StatusCreated, &resp)
	if resp.MessageID == "" {
		fatalf("send: empty message id")
	}
}

func (c *smokeClient) messages(tok, convID, after string) []message {
	path := "/conversations/" + convID + "/messages"
	if after != "" {
		path += "?after=" + after
	}
	var resp struct {
		Messages []message `json:"messages"`
	}
	c.do(http.MethodGet, path, tok, nil, http.StatusOK, &resp)
	return resp.Messages
}

func (c *smokeClient) do(method, path, bearer string, body any, wantStatus int, out any) {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			fatalf("%s %s: marshal: %v", method, path, err)
		}
		rd = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.base+path, rd)
	if err != nil {
		fatalf("%s %s: %v", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res, err := c.http.Do(req)
	if err != nil {
		fatalf("%s %s: %v", method, path, err)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		fatalf("%s %s: read body: %v", method, path, err)
	}
	if res.StatusCode != wantStatus {
		fatalf("%s %s: status %d, want %d (body %s)", method, path, res.StatusCode, wantStatus, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			fatalf("%s %s: decode: %v (body %s)", method, path, err, raw)
		}
	}
}

func (c *smokeClient) logf(format string, args ...any) {
	if c.verbose {
		fmt.Printf(format+"\n", args...)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "SMOKE FAIL: "+format+"\n", args...)
	os.Exit(1)
}
