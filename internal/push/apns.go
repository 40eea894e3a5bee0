// Package push sends APNs notifications for events the user is not
// connected to see live.
package push

import (
	"fmt"

	"roa-marketplace-backend/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// APNsSender sends notifications through Apple's push service using
// token-based authentication.
type APNsSender struct {
	client *apns2.Client
	topic  string
}

// NewAPNsSender creates an APNs sender from config. Returns nil without
// error when push is disabled.
func NewAPNsSender(cfg config.APNsConfig) (*APNsSender, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	authKey, err := token.AuthKeyFromFile(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs auth key: %w", err)
	}

	t := &token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	}

	client := apns2.NewTokenClient(t)
	if cfg.Sandbox {
		client = client.Development()
	} else {
		client = client.Production()
	}

	return &APNsSender{
		client: client,
		topic:  cfg.Topic,
	}, nil
}

// Send delivers a push notification to a device token
func (s *APNsSender) Send(deviceToken, title, body string) error {
	p := payload.NewPayload().
		AlertTitle(title).
		AlertBody(body).
		Sound("default")

	notification := &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       s.topic,
		Payload:     p,
	}

	res, err := s.client.Push(notification)
	if err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}

	if !res.Sent() {
		return fmt.Errorf("apns rejected notification: %s", res.Reason)
	}

	log.Debug().Str("apns_id", res.ApnsID).Msg("Push notification sent")

	return nil
}
