package notification

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// SessionPropertyKey là key trong melody session chứa propertyID của operator
const SessionPropertyKey = "propertyID"

// Broadcaster đẩy sự kiện qua websocket tới operator cùng property
type Broadcaster struct {
	m *melody.Melody
}

func NewBroadcaster(m *melody.Melody) *Broadcaster {
	return &Broadcaster{m: m}
}

func (b *Broadcaster) Name() string { return "websocket" }

type wsMessage struct {
	Type             Kind   `json:"type"`
	ReservationID    string `json:"reservationId"`
	ConfirmationCode string `json:"confirmationCode"`
	Status           string `json:"status"`
	From             string `json:"from,omitempty"`
	CheckIn          string `json:"checkIn"`
	CheckOut         string `json:"checkOut"`
	At               string `json:"at"`
}

func (b *Broadcaster) Handle(ctx context.Context, e Event) error {
	if b.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	r := e.Subject()
	if r == nil {
		return nil
	}

	msg := wsMessage{
		Type:             e.Kind(),
		ReservationID:    r.ID,
		ConfirmationCode: r.ConfirmationCode,
		Status:           string(r.Status),
		CheckIn:          r.CheckIn,
		CheckOut:         r.CheckOut,
		At:               e.At().Format("2006-01-02T15:04:05Z07:00"),
	}
	if sc, ok := e.(StatusChanged); ok {
		msg.From = string(sc.From)
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return b.m.BroadcastFilter(payload, func(s *melody.Session) bool {
		pid, ok := s.Get(SessionPropertyKey)
		// operator không gắn property (admin) nhận mọi sự kiện
		return ok && (pid == "" || pid == r.PropertyID)
	})
}
