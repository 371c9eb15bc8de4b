package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bst-coder/irrigation-last/models"
)

// Lookback window and sample cap for the chat context snapshot. Wider
// than the suggestions endpoint on purpose: the assistant gets a day of
// history, the rule engine only the last two hours.
const (
	chatLookback     = 24 * time.Hour
	chatReadingLimit = 50
)

// Keywords that, when present in the assistant's reply, trigger one
// synthetic critical suggestion. Coarse by design: this is best-effort
// triage, not rule evaluation.
var alertKeywords = []string{"urgent", "critique", "critical"}

const chatSystemPromptFmt = `You are an AI assistant specialized in automated irrigation and precision agriculture.

User context:
- Zones: %s
- Recent sensor data: %s

You can:
1. Analyze sensor data and give irrigation advice
2. Suggest optimizations for each zone
3. Alert on anomalies (soil too dry/wet, extreme temperatures)
4. Give advice specific to the plant and soil type
5. Propose watering schedule adjustments

Answer concisely and practically. If you detect critical problems, propose concrete actions.`

// TextGenerator is the boundary to the external text-generation service.
type TextGenerator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

type zoneContext struct {
	Name       string  `json:"name"`
	PlantType  string  `json:"plantType"`
	SoilType   string  `json:"soilType"`
	Area       float64 `json:"area"`
	PlantCount int     `json:"plantCount"`
	AIEnabled  bool    `json:"aiEnabled"`
	Status     string  `json:"status"`
}

type readingContext struct {
	ZoneName     string    `json:"zoneName"`
	Timestamp    time.Time `json:"timestamp"`
	SoilMoisture float64   `json:"soilMoisture"`
	Temperature  float64   `json:"temperature"`
	Humidity     float64   `json:"humidity"`
}

// ChatService forwards a user message plus a context snapshot of their
// zones and recent readings to the text generator, and scans the reply
// for alert keywords.
type ChatService struct {
	zones    ZoneSource
	readings ReadingSource
	gen      TextGenerator
	clock    func() time.Time
}

func NewChatService(zones ZoneSource, readings ReadingSource, gen TextGenerator, clock func() time.Time) *ChatService {
	if clock == nil {
		clock = time.Now
	}
	return &ChatService{zones: zones, readings: readings, gen: gen, clock: clock}
}

// Converse builds the context snapshot, relays the message, and derives
// at most one synthetic suggestion from the reply: keyword present means
// exactly one critical suggestion, keyword absent means none.
func (s *ChatService) Converse(ctx context.Context, userID uint, message string) (string, []models.Suggestion, error) {
	zones, err := s.zones.ZonesOwnedBy(userID)
	if err != nil {
		return "", nil, err
	}

	zoneNames := make(map[uint]string, len(zones))
	zoneIDs := make([]uint, len(zones))
	zoneCtx := make([]zoneContext, len(zones))
	for i, z := range zones {
		zoneIDs[i] = z.ID
		zoneNames[z.ID] = z.Name
		zoneCtx[i] = zoneContext{
			Name:       z.Name,
			PlantType:  z.PlantType,
			SoilType:   z.SoilType,
			Area:       z.Area,
			PlantCount: z.PlantCount,
			AIEnabled:  z.AIEnabled,
			Status:     z.Status,
		}
	}

	since := s.clock().Add(-chatLookback)
	readings, err := s.readings.ReadingsSince(zoneIDs, since, chatReadingLimit)
	if err != nil {
		return "", nil, err
	}

	readingCtx := make([]readingContext, len(readings))
	for i := range readings {
		r := &readings[i]
		readingCtx[i] = readingContext{
			ZoneName:     zoneNames[r.ZoneID],
			Timestamp:    r.Timestamp,
			SoilMoisture: r.SoilMoisture(),
			Temperature:  r.Temperature(),
			Humidity:     r.Humidity(),
		}
	}

	zonesJSON, _ := json.MarshalIndent(zoneCtx, "", "  ")
	readingsJSON, _ := json.MarshalIndent(readingCtx, "", "  ")
	system := fmt.Sprintf(chatSystemPromptFmt, zonesJSON, readingsJSON)

	reply, err := s.gen.Generate(ctx, system, message)
	if err != nil {
		return "", nil, err
	}

	return reply, s.deriveSuggestions(reply), nil
}

func (s *ChatService) deriveSuggestions(reply string) []models.Suggestion {
	lowered := strings.ToLower(reply)
	for _, kw := range alertKeywords {
		if strings.Contains(lowered, kw) {
			// Bucketing the id to the hour keeps it stable across
			// repeated exchanges, so a client acknowledgment holds
			// until the bucket rolls over.
			bucket := s.clock().Truncate(time.Hour).Unix()
			return []models.Suggestion{{
				ID:       fmt.Sprintf("chat_alert_%d", bucket),
				Type:     models.SuggestionCritical,
				Message:  "Urgent action flagged by the assistant",
				ZoneName: "Multiple",
				Priority: models.PriorityHigh,
			}}
		}
	}
	return []models.Suggestion{}
}
