package alert

import (
	"encoding/json"
	"time"

	"weathertracker.app/internal/core/location"
	"weathertracker.app/internal/core/weather"
	"weathertracker.app/internal/ports"
)

// Severity is the ordered urgency of an alert
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityLow
	SeverityModerate
	SeverityHigh
	SeverityExtreme
)

// String returns the string representation of severity
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityModerate:
		return "moderate"
	case SeverityHigh:
		return "high"
	case SeverityExtreme:
		return "extreme"
	default:
		return "unknown"
	}
}

// Rank returns the ordinal position of the severity, low being 1
func (s Severity) Rank() int {
	return int(s)
}

// IsValid checks if the severity value is valid
func (s Severity) IsValid() bool {
	return s >= SeverityLow && s <= SeverityExtreme
}

// SeverityFromString converts string to Severity enum
func SeverityFromString(s string) Severity {
	switch s {
	case "low":
		return SeverityLow
	case "moderate":
		return SeverityModerate
	case "high":
		return SeverityHigh
	case "extreme":
		return SeverityExtreme
	default:
		return SeverityUnknown
	}
}

// MarshalJSON implements json.Marshaler interface
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler interface
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = SeverityFromString(str)
	return nil
}

// Condition is the weather phenomenon an alert is about
type Condition string

const (
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionExtremeHeat  Condition = "extreme_heat"
	ConditionExtremeCold  Condition = "extreme_cold"
	ConditionHighWind     Condition = "high_wind"
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionFog          Condition = "fog"
	ConditionUVWarning    Condition = "uv_warning"
)

// IsValid checks the condition against the closed set of known conditions
func (c Condition) IsValid() bool {
	switch c {
	case ConditionRain, ConditionSnow, ConditionExtremeHeat, ConditionExtremeCold,
		ConditionHighWind, ConditionThunderstorm, ConditionFog, ConditionUVWarning:
		return true
	}
	return false
}

// Candidate is an evaluator output that is not yet tied to any user
type Candidate struct {
	Severity  Severity
	Condition Condition
	Message   string
}

// Alert is a persisted, user-scoped record derived from one candidate for one reading
type Alert struct {
	ID                   uint       `json:"id"`
	UserID               uint       `json:"user_id"`
	LocationID           uint       `json:"location_id"`
	ReadingID            uint       `json:"reading_id"`
	Severity             Severity   `json:"severity"`
	Condition            Condition  `json:"condition"`
	Message              string     `json:"message"`
	IsActive             bool       `json:"is_active"`
	IsRead               bool       `json:"is_read"`
	IsForDefaultLocation bool       `json:"is_for_default_location"`
	EmailSent            bool       `json:"email_sent"`
	EmailSentAt          *time.Time `json:"email_sent_at,omitempty"`
	StartTime            time.Time  `json:"start_time"`
	EndTime              *time.Time `json:"end_time,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// View is an alert joined with its location and reading at query time
type View struct {
	Alert
	Location  *location.Location `json:"location,omitempty"`
	Reading   *weather.Reading   `json:"reading,omitempty"`
	UserEmail string             `json:"-"`
	UserName  string             `json:"-"`
}

// MaterializeResult reports the outcome of materializing one reading
type MaterializeResult struct {
	Alerts []*Alert
	Failed int
}

// CreatedEvent is the payload published for every materialized alert
type CreatedEvent struct {
	AlertID              uint      `json:"alert_id"`
	UserID               uint      `json:"user_id"`
	LocationID           uint      `json:"location_id"`
	ReadingID            uint      `json:"reading_id"`
	Severity             string    `json:"severity"`
	Condition            string    `json:"condition"`
	Message              string    `json:"message"`
	IsForDefaultLocation bool      `json:"is_for_default_location"`
	StartTime            time.Time `json:"start_time"`
}

// EventTypeCreated is the event type emitted after an alert is stored
const EventTypeCreated = "alert.created"

// EndOfTomorrow returns 23:59:59.999 of the day after now, in now's time zone
func EndOfTomorrow(now time.Time) time.Time {
	y, m, d := now.AddDate(0, 0, 1).Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), now.Location())
}

func (a *Alert) toData() *ports.AlertData {
	return &ports.AlertData{
		ID:                   a.ID,
		UserID:               a.UserID,
		LocationID:           a.LocationID,
		ReadingID:            a.ReadingID,
		Severity:             a.Severity.String(),
		Condition:            string(a.Condition),
		Message:              a.Message,
		IsActive:             a.IsActive,
		IsRead:               a.IsRead,
		IsForDefaultLocation: a.IsForDefaultLocation,
		EmailSent:            a.EmailSent,
		EmailSentAt:          a.EmailSentAt,
		StartTime:            a.StartTime,
		EndTime:              a.EndTime,
	}
}

// FromData converts a persisted alert to the domain type
func FromData(data *ports.AlertData) *Alert {
	return &Alert{
		ID:                   data.ID,
		UserID:               data.UserID,
		LocationID:           data.LocationID,
		ReadingID:            data.ReadingID,
		Severity:             SeverityFromString(data.Severity),
		Condition:            Condition(data.Condition),
		Message:              data.Message,
		IsActive:             data.IsActive,
		IsRead:               data.IsRead,
		IsForDefaultLocation: data.IsForDefaultLocation,
		EmailSent:            data.EmailSent,
		EmailSentAt:          data.EmailSentAt,
		StartTime:            data.StartTime,
		EndTime:              data.EndTime,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

// ViewFromData converts a joined alert row to a view
func ViewFromData(data *ports.AlertDetailsData) *View {
	return &View{
		Alert:     *FromData(&data.Alert),
		Location:  location.FromData(data.Location),
		Reading:   weather.ReadingFromData(data.Reading),
		UserEmail: data.UserEmail,
		UserName:  data.UserName,
	}
}

func (a *Alert) createdEvent() ports.Event {
	return ports.Event{
		Type:       EventTypeCreated,
		Key:        formatID(a.UserID),
		OccurredAt: a.StartTime,
		Payload: CreatedEvent{
			AlertID:              a.ID,
			UserID:               a.UserID,
			LocationID:           a.LocationID,
			ReadingID:            a.ReadingID,
			Severity:             a.Severity.String(),
			Condition:            string(a.Condition),
			Message:              a.Message,
			IsForDefaultLocation: a.IsForDefaultLocation,
			StartTime:            a.StartTime,
		},
	}
}
