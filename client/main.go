// Interactive test client. Commands:
//
//	create <name>
//	join <code> <name>
//	chat <text>
//	start | next | lobby
//	vote <tag> | select <tag>
//	send <event> <json>
package main

import (
	"bufio"
	"encoding/json"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

type message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func send(c *websocket.Conn, event string, data any) error {
	msg := message{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		msg.Data = raw
	}
	return c.WriteJSON(&msg)
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			var msg message
			if err := c.ReadJSON(&msg); err != nil {
				log.Println("Read error:", err)
				return
			}
			log.Printf("<- RECV (%s): %s", msg.Event, string(msg.Data))
		}
	}()

	log.Println("Client started. Try: create Alice")

	go func() {
		<-interrupt
		log.Println("Interrupt received, closing connection.")
		c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
		os.Exit(0)
	}()

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		default:
		}
		line, _ := reader.ReadString('\n')
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "create":
			err = send(c, "createRoom", map[string]string{"name": strings.Join(fields[1:], " ")})
		case "join":
			if len(fields) < 3 {
				log.Println("usage: join <code> <name>")
				continue
			}
			err = send(c, "joinRoom", map[string]string{
				"code": fields[1],
				"name": strings.Join(fields[2:], " "),
			})
		case "chat":
			err = send(c, "sendChat", map[string]string{"text": strings.Join(fields[1:], " ")})
		case "start":
			err = send(c, "startGame", nil)
		case "next":
			err = send(c, "nextRound", nil)
		case "lobby":
			err = send(c, "backToLobby", nil)
		case "vote":
			if len(fields) < 2 {
				log.Println("usage: vote <tag>")
				continue
			}
			err = send(c, "voteGame", map[string]string{"gameTag": fields[1]})
		case "select":
			if len(fields) < 2 {
				log.Println("usage: select <tag>")
				continue
			}
			err = send(c, "selectGame", map[string]string{"gameTag": fields[1]})
		case "send":
			if len(fields) < 2 {
				log.Println("usage: send <event> [json]")
				continue
			}
			var raw json.RawMessage
			if len(fields) > 2 {
				raw = json.RawMessage(strings.Join(fields[2:], " "))
			}
			err = c.WriteJSON(&message{Event: fields[1], Data: raw})
		default:
			log.Println("unknown command:", fields[0])
			continue
		}
		if err != nil {
			log.Println("Write error:", err)
			return
		}
	}
}
