package backend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/glowmart/storefront/core/remote"
)

// ErrInvalidBaseURL is returned by New when the configured base URL cannot
// be parsed into an absolute URL.
var ErrInvalidBaseURL = errors.New("invalid base URL")

// apiMessage is the error body shape the storefront API uses for
// rejections.
type apiMessage struct {
	Message string `json:"message"`
}

// networkError wraps a transport failure. No response arrived, so the
// caller's cached state stays valid.
func networkError(cause error) error {
	return remote.New(remote.KindNetwork, 0, "", cause)
}

// isNotFound reports whether err is a 404 rejection. Some endpoints use
// 404 to mean "nothing stored yet" rather than an error.
func isNotFound(err error) bool {
	var re *remote.Error
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}

// classifyStatus maps a non-2xx response onto the remote taxonomy. The
// server's message is carried verbatim for business rejections so the UI
// can show it unchanged.
func classifyStatus(status int, body []byte) error {
	var msg apiMessage
	_ = json.Unmarshal(body, &msg)

	switch {
	case status == http.StatusUnauthorized:
		return remote.New(remote.KindAuthentication, status, msg.Message, nil)
	case status == http.StatusForbidden:
		return remote.New(remote.KindAuthorization, status, msg.Message, nil)
	case status >= http.StatusInternalServerError:
		return remote.New(remote.KindServer, status, msg.Message, nil)
	default:
		return remote.New(remote.KindBusiness, status, msg.Message, nil)
	}
}
