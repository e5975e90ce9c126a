package websocket

import (
	"encoding/json"
	"time"

	"github.com/solarcast/solarcast/pkg/models"
)

type MessageType string

const (
	MessageTypePrediction MessageType = "prediction"
)

type OutgoingMessage struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewMessage(msgType MessageType, data interface{}) *OutgoingMessage {
	return &OutgoingMessage{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

func (m *OutgoingMessage) JSON() []byte {
	data, _ := json.Marshal(m)
	return data
}

type PredictionData struct {
	RecordID        int64    `json:"record_id"`
	City            string   `json:"city"`
	Hour            int      `json:"hour"`
	ModelUsed       string   `json:"model_used"`
	PredictedEnergy float64  `json:"predicted_energy_kwh"`
	Unit            string   `json:"unit"`
	Temperature     *float64 `json:"temperature,omitempty"`
	Irradiance      *float64 `json:"irradiance,omitempty"`
}

// BroadcastPrediction pushes a freshly persisted prediction to every
// connected client.
func BroadcastPrediction(hub *Hub, recordID int64, result *models.PredictionResult) {
	if hub == nil {
		return
	}
	data := PredictionData{
		RecordID:        recordID,
		City:            result.City,
		Hour:            result.Hour,
		ModelUsed:       result.ModelUsed,
		PredictedEnergy: result.PredictedEnergy,
		Unit:            result.Unit,
		Temperature:     result.Temperature,
		Irradiance:      result.Irradiance,
	}
	msg := NewMessage(MessageTypePrediction, data)
	hub.Broadcast(msg.JSON())
}
