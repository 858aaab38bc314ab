// Package voice translates Alexa Skills Kit request envelopes into canonical
// domain events and renders the response envelopes the platform expects.
package voice

// RequestType discriminates the inbound envelope.
type RequestType string

const (
	TypeLaunch       RequestType = "LaunchRequest"
	TypeIntent       RequestType = "IntentRequest"
	TypeSessionEnded RequestType = "SessionEndedRequest"
)

// Intent names the skill understands.
const (
	IntentLogWorkout = "LogWorkoutIntent"
	IntentLogMeal    = "LogMealIntent"
	IntentHelp       = "AMAZON.HelpIntent"
	IntentStop       = "AMAZON.StopIntent"
	IntentCancel     = "AMAZON.CancelIntent"
)

// Slot is a named, optionally-valued field extracted from the platform's
// parsed utterance.
type Slot struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// Slots is the slot bag of an intent request.
type Slots map[string]Slot

// Envelope is the inbound voice-platform request. It is consumed per request
// and never persisted.
type Envelope struct {
	Version string          `json:"version,omitempty"`
	Request Request         `json:"request"`
	Context *RequestContext `json:"context,omitempty"`
}

// Request carries the type tag and, for intents, the intent payload.
type Request struct {
	Type   RequestType `json:"type"`
	Intent *Intent     `json:"intent,omitempty"`
}

// Intent is the parsed utterance: a name plus its slot bag.
type Intent struct {
	Name  string `json:"name"`
	Slots Slots  `json:"slots,omitempty"`
}

// RequestContext mirrors the platform's context block; only the user access
// token is consumed.
type RequestContext struct {
	System System `json:"System"`
}

type System struct {
	User SystemUser `json:"user"`
}

type SystemUser struct {
	AccessToken string `json:"accessToken,omitempty"`
}

// IsVoiceRequest reports whether the payload is a platform envelope rather
// than a direct API body.
func (e *Envelope) IsVoiceRequest() bool { return e.Request.Type != "" }

// AccessToken returns the account-linking token carried on the envelope, or
// "" when absent.
func (e *Envelope) AccessToken() string {
	if e.Context == nil {
		return ""
	}
	return e.Context.System.User.AccessToken
}

// IntentName returns the intent name or "" for non-intent requests.
func (e *Envelope) IntentName() string {
	if e.Request.Intent == nil {
		return ""
	}
	return e.Request.Intent.Name
}

// IntentSlots returns the slot bag, never nil.
func (e *Envelope) IntentSlots() Slots {
	if e.Request.Intent == nil || e.Request.Intent.Slots == nil {
		return Slots{}
	}
	return e.Request.Intent.Slots
}
