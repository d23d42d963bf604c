// Package player drives an external mpv process as a media element over its JSON IPC socket.
package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/melodeck/melodeck/log"
)

// EventCallback receives mpv notifications. For property changes name is the property,
// for other events it is the event name and data is the whole event.
type EventCallback func(name string, data any)

// observed are the properties the media element is built from.
var observed = []string{
	"duration",
	"time-pos",
	"pause",
	"seeking",
	"eof-reached",
	"paused-for-cache",
	"volume",
	"demuxer-cache-time",
}

// EventListener holds a persistent IPC connection on which the observed properties are reported.
type EventListener struct {
	socketPath string
	callback   EventCallback

	mu        sync.Mutex
	conn      net.Conn
	listening bool
	done      chan struct{}
}

// NewEventListener creates a new event listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
	}
}

// Start connects and subscribes. mpv scopes observers to the connection that registered them,
// so the subscriptions are sent on the same connection the read loop uses.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	if err := subscribe(conn); err != nil {
		conn.Close()
		return err
	}

	el.conn = conn
	el.listening = true
	el.done = make(chan struct{})

	go el.readLoop(conn, el.done)

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Stop closes the connection and waits for the read loop to return.
func (el *EventListener) Stop() {
	el.mu.Lock()
	if !el.listening {
		el.mu.Unlock()
		return
	}
	el.listening = false
	el.conn.Close()
	done := el.done
	el.mu.Unlock()

	<-done
}

func subscribe(conn net.Conn) error {
	for i, name := range observed {
		payload, err := json.Marshal(ipcCommand{
			Command:   []any{"observe_property", i + 1, name},
			RequestID: requestIDs.Add(1),
		})
		if err != nil {
			return fmt.Errorf("marshal observe %s: %w", name, err)
		}

		if _, err := conn.Write(append(payload, '\n')); err != nil {
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}
	return nil
}

func (el *EventListener) readLoop(conn net.Conn, done chan struct{}) {
	defer close(done)

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		el.processEvent(scanner.Bytes())
	}

	el.mu.Lock()
	stopped := !el.listening
	el.listening = false
	el.mu.Unlock()

	if !stopped {
		log.Warnf("mpv event listener closed: %v", scanner.Err())
	}
}

// processEvent dispatches a single event line. Command replies carry no event and are skipped.
func (el *EventListener) processEvent(line []byte) {
	var event map[string]any
	if err := json.Unmarshal(line, &event); err != nil {
		log.Debugf("skipping mpv line: %v", err)
		return
	}

	kind, ok := event["event"].(string)
	if !ok || el.callback == nil {
		return
	}

	if kind == "property-change" {
		if name, _ := event["name"].(string); name != "" {
			el.callback(name, event["data"])
		}
		return
	}

	el.callback(kind, event)
}
