package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Limits for a recipient list
const (
	MinRecipients     = 1
	MaxRecipients     = 5
	MaxMessageLength  = 500
	recipientsVersion = 1
)

var (
	ErrNoRecipients        = errors.New("at least one recipient is required")
	ErrTooManyRecipients   = errors.New("a message supports at most 5 recipients")
	ErrRecipientIncomplete = errors.New("every recipient needs a name and a message")
	ErrMessageTooLong      = errors.New("recipient message exceeds 500 characters")
	ErrNoContactMethod     = errors.New("at least one recipient needs an email or phone")
	ErrFlightNumberMissing = errors.New("flight number is required")
	ErrFlightDateInvalid   = errors.New("flight date must be a valid calendar date")
	ErrUnknownGiftCategory = errors.New("unknown gift category")
	ErrGiftsRequirePremium = errors.New("gift selections require the premium upgrade")
)

// Recipient is one loved one a message is addressed to.
type Recipient struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// RecipientList is the ordered set of recipients collected on the
// recipients screen.
type RecipientList []Recipient

// Validate enforces the form-level invariants: 1-5 entries, every entry
// named with a message of at most 500 characters, and at least one entry
// reachable by email or phone.
func (l RecipientList) Validate() error {
	if len(l) < MinRecipients {
		return ErrNoRecipients
	}
	if len(l) > MaxRecipients {
		return ErrTooManyRecipients
	}

	reachable := false
	for _, r := range l {
		if r.Name == "" || r.Message == "" {
			return ErrRecipientIncomplete
		}
		if len([]rune(r.Message)) > MaxMessageLength {
			return ErrMessageTooLong
		}
		if r.Email != "" || r.Phone != "" {
			reachable = true
		}
	}
	if !reachable {
		return ErrNoContactMethod
	}

	return nil
}

// EnsureIDs assigns an opaque identifier to any recipient missing one.
func (l RecipientList) EnsureIDs() {
	for i := range l {
		if l[i].ID == "" {
			l[i].ID = uuid.New().String()
		}
	}
}

// recipientEnvelope is the stored shape of a recipient list. The version
// field lets the storage boundary reject payloads it does not understand
// instead of trusting them implicitly.
type recipientEnvelope struct {
	Version    int           `json:"version"`
	Recipients RecipientList `json:"recipients"`
}

// EncodeRecipients serializes a validated recipient list into its
// versioned stored form.
func EncodeRecipients(l RecipientList) ([]byte, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(recipientEnvelope{
		Version:    recipientsVersion,
		Recipients: l,
	})
}

// DecodeRecipients parses and re-validates a stored recipient envelope.
func DecodeRecipients(data []byte) (RecipientList, error) {
	var env recipientEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed recipient envelope: %w", err)
	}
	if env.Version != recipientsVersion {
		return nil, fmt.Errorf("unsupported recipient envelope version %d", env.Version)
	}
	if err := env.Recipients.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stored recipients: %w", err)
	}
	return env.Recipients, nil
}

// FlightInfo is the flight a message is tied to.
type FlightInfo struct {
	FlightNumber string `json:"flight_number"`
	FlightDate   string `json:"flight_date"`
	Route        string `json:"route,omitempty"`
}

// Validate requires a flight number and, when set, a parseable date.
func (f FlightInfo) Validate() error {
	if f.FlightNumber == "" {
		return ErrFlightNumberMissing
	}
	if f.FlightDate != "" {
		if _, err := time.Parse("2006-01-02", f.FlightDate); err != nil {
			return ErrFlightDateInvalid
		}
	}
	return nil
}

// ParsedDate returns the flight date as a time value, or nil when unset.
func (f FlightInfo) ParsedDate() *time.Time {
	if f.FlightDate == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", f.FlightDate)
	if err != nil {
		return nil
	}
	return &t
}

// UpgradeSelection is the choice made on the upgrade screen.
type UpgradeSelection struct {
	Premium bool           `json:"premium"`
	Gifts   []GiftCategory `json:"gifts,omitempty"`
}

// Validate checks the gift categories against the fixed enumeration.
// Gift selections without the premium flag are meaningless and rejected.
func (u UpgradeSelection) Validate() error {
	if !u.Premium && len(u.Gifts) > 0 {
		return ErrGiftsRequirePremium
	}
	for _, g := range u.Gifts {
		if !ValidGiftCategory(g) {
			return fmt.Errorf("%w: %s", ErrUnknownGiftCategory, g)
		}
	}
	return nil
}

// Amount derives the total charge: the base fee, plus the upgrade fee
// when premium was selected. The gift subset does not change the price.
func (u UpgradeSelection) Amount(baseFee, upgradeFee int) int {
	if u.Premium {
		return baseFee + upgradeFee
	}
	return baseFee
}

// GiftValues converts the selection for storage in a JSON array column.
func (u UpgradeSelection) GiftValues() JSONArray {
	if !u.Premium || len(u.Gifts) == 0 {
		return nil
	}
	out := make(JSONArray, 0, len(u.Gifts))
	for _, g := range u.Gifts {
		out = append(out, string(g))
	}
	return out
}
