package transfer

import (
	"fmt"
	"time"
)

// InstagramShortLivedToken is the response of the code exchange.
type InstagramShortLivedToken struct {
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
}

// InstagramLongLivedToken is returned by both the exchange and refresh calls.
type InstagramLongLivedToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type InstagramProfile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	AccountType string `json:"account_type"`
	MediaCount  int    `json:"media_count"`
}

type InstagramMedia struct {
	ID           string `json:"id"`
	Caption      string `json:"caption,omitempty"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url,omitempty"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

type InstagramMediaPage struct {
	Data   []InstagramMedia `json:"data"`
	Paging *struct {
		Cursors struct {
			Before string `json:"before"`
			After  string `json:"after"`
		} `json:"cursors"`
		Next string `json:"next,omitempty"`
	} `json:"paging,omitempty"`
}

// InstagramErrorResponse covers both error shapes: the OAuth endpoint returns
// top-level error_message, the graph API nests error.message.
type InstagramErrorResponse struct {
	ErrorType    string `json:"error_type"`
	Code         int    `json:"code"`
	ErrorMessage string `json:"error_message"`
	Error        *struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FbtraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

func (r InstagramErrorResponse) Message() string {
	if r.ErrorMessage != "" {
		return r.ErrorMessage
	}
	if r.Error != nil {
		return r.Error.Message
	}
	return ""
}

// ProviderError is a non-2xx answer from the Instagram API.
type ProviderError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("instagram %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("instagram %s: %s (status %d)", e.Op, e.Message, e.StatusCode)
}

type SyncResult struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	PostsCount int    `json:"posts_count"`
	Username   string `json:"-"`
}

type ConnectToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VisibilityUpdate struct {
	Hidden bool `json:"hidden"`
}
