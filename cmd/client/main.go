// Command client is an interactive terminal client for the topichat server.
// It joins a topic, prints every incoming frame, and sends each stdin line
// as a chat message ("/list" requests the topic listing).
//
// Usage:
//
//	go run ./cmd/client -addr ws://localhost:8080/ws -username alice -topic sports
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "websocket endpoint")
	username := flag.String("username", "", "requested username")
	topic := flag.String("topic", "", "topic to join")
	flag.Parse()

	if *username == "" || *topic == "" {
		fmt.Fprintln(os.Stderr, "usage: client -username alice -topic sports [-addr ws://host:port/ws]")
		os.Exit(2)
	}

	conn, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		log.Fatalf("dial %s: %v", *addr, err)
	}
	defer conn.Close()

	join, _ := json.Marshal(map[string]string{"username": *username, "topic": *topic})
	if err := conn.WriteMessage(websocket.TextMessage, join); err != nil {
		log.Fatalf("send join: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				fmt.Fprintln(os.Stderr, "connection closed:", err)
				return
			}
			fmt.Println("<<", string(frame))
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var payload []byte
		if line == "/list" {
			payload = []byte(line)
		} else {
			payload, _ = json.Marshal(map[string]string{"message": line})
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Fatalf("send: %v", err)
		}
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	<-done
}
