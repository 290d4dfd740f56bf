// Package push fans out refresh commands to screens over MQTT so devices
// re-poll their playlist immediately instead of waiting for the next cycle.
package push

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/castell-digital/marquee/internal/model"
)

// Commands understood by the player app.
const (
	CommandRefresh = "refresh"
	CommandRestart = "restart"
)

var (
	mu     sync.RWMutex
	client mqtt.Client
)

type message struct {
	Command string `json:"command"`
	SentAt  string `json:"sent_at"`
}

// Init connects the shared publisher client. When no broker is configured
// the package stays disabled and every Notify call is a no-op; playlist
// changes then simply surface on the next poll.
func Init(brokerURL, clientID string) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	}

	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	mu.Lock()
	client = c
	mu.Unlock()
	return nil
}

// NotifyScreen publishes a command to one screen's topic.
func NotifyScreen(screenID int, command string) {
	mu.RLock()
	c := client
	mu.RUnlock()
	if c == nil {
		return
	}

	payload, _ := json.Marshal(message{
		Command: command,
		SentAt:  time.Now().Format(time.RFC3339),
	})
	topic := fmt.Sprintf("screens/%d/commands", screenID)
	token := c.Publish(topic, 1, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		log.Warn().Err(err).Int("screen_id", screenID).Msg("failed to publish screen command")
		return
	}
	log.Debug().Int("screen_id", screenID).Str("command", command).Msg("published screen command")
}

// NotifyScreens publishes a command to every screen in the list.
func NotifyScreens(screens []model.Screen, command string) {
	for _, s := range screens {
		NotifyScreen(s.ID, command)
	}
}

// Shutdown disconnects the publisher.
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	if client != nil {
		client.Disconnect(250)
		client = nil
	}
}
