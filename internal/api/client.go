// Package api is the REST client for the TravelSync backend. Every failure
// shape (transport error, non-2xx status, non-JSON body) is normalized into
// an *Error result so callers branch once instead of handling several fault
// types. Nothing in this package panics or surfaces a raw HTTP error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/Sebo-the-tramp/travelsync/internal/trip"
)

// userCookie is the opaque identity cookie set by the backend on the first
// create-trip or join-trip call and replayed on every request afterwards.
const userCookie = "user_id"

// Kind classifies a normalized failure so views can choose a treatment:
// inline notice, full-page error state, or "try again later".
type Kind int

const (
	// KindNetwork is a transport failure: no response at all.
	KindNetwork Kind = iota
	// KindValidation is a rejected input; locally recoverable.
	KindValidation
	// KindNotFound is a missing resource (trip does not exist).
	KindNotFound
	// KindServer is a backend fault; the user's input was fine.
	KindServer
)

// Error is the uniform failure result of every client call.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Client talks to the backend over its JSON REST surface.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the given base URL (e.g. "http://localhost:5000/api").
// A cookie jar carries the backend-issued identity cookie across calls.
func New(baseURL string, timeout time.Duration) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}
}

// SetUserID seeds the identity cookie from a previous session so the backend
// recognizes this client without a fresh create/join round trip.
func (c *Client) SetUserID(userID string) {
	if userID == "" {
		return
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return
	}
	c.httpClient.Jar.SetCookies(u, []*http.Cookie{{Name: userCookie, Value: userID, Path: "/"}})
}

// UserID returns the backend-issued identity cookie, if any.
func (c *Client) UserID() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(u) {
		if cookie.Name == userCookie {
			return cookie.Value
		}
	}
	return ""
}

// Membership is returned by create-trip and join-trip.
type Membership struct {
	TripID    int `json:"trip_id"`
	UserID    int `json:"user_id"`
	ProfileID int `json:"profile_id"`
}

// CreateTripRequest creates a trip and the caller's profile in it. Name may
// be empty when the identity cookie already references a known user.
type CreateTripRequest struct {
	Name      string                `json:"name,omitempty"`
	TripName  string                `json:"trip_name"`
	Questions []trip.QuestionAnswer `json:"questions"`
}

// JoinTripRequest adds the caller to an existing trip.
type JoinTripRequest struct {
	TripID    int                   `json:"trip_id"`
	Name      string                `json:"name,omitempty"`
	Questions []trip.QuestionAnswer `json:"questions"`
}

// HistoryMessage is one chat message as returned by trip-info. CreatedAt is
// kept as the wire string because the backend emits ISO timestamps both with
// and without a zone offset.
type HistoryMessage struct {
	SenderName string `json:"sender_name"`
	IsAI       bool   `json:"is_ai"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

// Time parses the message timestamp via ParseTime.
func (m HistoryMessage) Time() time.Time {
	return ParseTime(m.CreatedAt)
}

// ParseTime parses a backend timestamp, accepting RFC3339 and zone-less ISO
// forms. A zero time is returned for anything unparseable.
func ParseTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// TripInfo is the full trip view.
type TripInfo struct {
	TripName    string           `json:"trip_name"`
	CreatorName string           `json:"creator_name"`
	IsMember    bool             `json:"is_member"`
	Members     []trip.Member    `json:"members"`
	Messages    []HistoryMessage `json:"messages"`
}

// SendReceipt acknowledges an accepted message.
type SendReceipt struct {
	MessageID int    `json:"message_id"`
	Status    string `json:"status"`
}

// LeaveResult reports the outcome of leaving a trip.
type LeaveResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Me returns the trips the current user belongs to.
func (c *Client) Me(ctx context.Context) ([]trip.Summary, *Error) {
	var response struct {
		Trips []trip.Summary `json:"trips"`
	}
	if err := c.get(ctx, "/my-trips", nil, &response); err != nil {
		return nil, err
	}
	return response.Trips, nil
}

// CreateTrip creates a new trip and returns the caller's membership.
func (c *Client) CreateTrip(ctx context.Context, request CreateTripRequest) (*Membership, *Error) {
	membership := &Membership{}
	if err := c.post(ctx, "/create-trip", request, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// JoinTrip joins an existing trip and returns the caller's membership.
func (c *Client) JoinTrip(ctx context.Context, request JoinTripRequest) (*Membership, *Error) {
	membership := &Membership{}
	if err := c.post(ctx, "/join-trip", request, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// TripInfo fetches the trip view: name, creator, members and chat history.
func (c *Client) TripInfo(ctx context.Context, tripID int) (*TripInfo, *Error) {
	info := &TripInfo{}
	query := url.Values{"trip_id": []string{strconv.Itoa(tripID)}}
	if err := c.get(ctx, "/trip-info", query, info); err != nil {
		return nil, err
	}
	return info, nil
}

// SendMessage posts a chat message to a trip. The client key travels with
// the request so the realtime echo can be suppressed by key rather than by
// fuzzy content matching.
func (c *Client) SendMessage(ctx context.Context, tripID int, content, clientKey string) (*SendReceipt, *Error) {
	body := struct {
		TripID    int    `json:"trip_id"`
		Content   string `json:"content"`
		ClientKey string `json:"client_key,omitempty"`
	}{TripID: tripID, Content: content, ClientKey: clientKey}

	receipt := &SendReceipt{}
	if err := c.post(ctx, "/send-message", body, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// LeaveTrip removes the caller from a trip.
func (c *Client) LeaveTrip(ctx context.Context, tripID int) (*LeaveResult, *Error) {
	body := struct {
		TripID int `json:"trip_id"`
	}{TripID: tripID}

	result := &LeaveResult{}
	if err := c.post(ctx, "/leave-trip", body, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) *Error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	return c.do(request, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) *Error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	request.Header.Set("Content-Type", "application/json")
	return c.do(request, out)
}

// do executes the request and normalizes every failure shape into *Error.
func (c *Client) do(request *http.Request, out any) *Error {
	response, err := c.httpClient.Do(request)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "Network error. Please check your connection."}
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "Network error. Please check your connection."}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return normalizeFailure(response.StatusCode, response.Status, body)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindServer, Message: "Error: unexpected response from server"}
	}
	return nil
}

// normalizeFailure builds the uniform error from a non-2xx response,
// preferring the server's own message when the body is JSON.
func normalizeFailure(statusCode int, status string, body []byte) *Error {
	message := fmt.Sprintf("Error: %s", status)
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			message = payload.Error
		} else if payload.Message != "" {
			message = payload.Message
		}
	}

	kind := KindValidation
	switch {
	case statusCode == http.StatusNotFound:
		kind = KindNotFound
	case statusCode >= 500:
		kind = KindServer
	}
	return &Error{Kind: kind, Message: message}
}
