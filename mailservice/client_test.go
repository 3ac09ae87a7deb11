package mailservice

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dhbw-wi22a/B2B-Backend/config"
	"github.com/dhbw-wi22a/B2B-Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	path string
	body payload
}

func newCapturingServer(t *testing.T, captured *[]capturedRequest) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		*captured = append(*captured, capturedRequest{path: r.URL.Path, body: body})
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSendRegistrationMailPayload(t *testing.T) {
	var captured []capturedRequest
	server := newCapturingServer(t, &captured)

	client := NewClient(config.MailServiceConfig{
		BaseURL:              server.URL,
		RegistrationEndpoint: "registration",
		ShopBaseURL:          "https://shop.example.com",
	})

	client.SendRegistrationMail(&models.User{
		Email:     "new@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}, "token-123")

	require.Len(t, captured, 1)
	assert.Equal(t, "/registration", captured[0].path)
	require.Len(t, captured[0].body.Recipients, 1)

	recipient := captured[0].body.Recipients[0]
	assert.Equal(t, "new@example.com", recipient.Email)
	assert.Equal(t, "Ada", recipient.FirstName)
	assert.Equal(t, "Lovelace", recipient.LastName)
	assert.Equal(t, "https://shop.example.com/web/api/verify-email/token-123", recipient.VerificationLink)
}

func TestSendGroupInvitationMailPayload(t *testing.T) {
	var captured []capturedRequest
	server := newCapturingServer(t, &captured)

	client := NewClient(config.MailServiceConfig{
		BaseURL:             server.URL,
		GroupInviteEndpoint: "invitation",
		ShopBaseURL:         "https://shop.example.com",
	})

	client.SendGroupInvitationMail(&models.GroupInvitation{
		Email:       "invitee@example.com",
		InviteToken: "token-456",
		Group:       models.CompanyGroup{Name: "Procurement"},
		InvitedBy: models.User{
			FirstName: "Grace",
			LastName:  "Hopper",
		},
	})

	require.Len(t, captured, 1)
	recipient := captured[0].body.Recipients[0]
	assert.Equal(t, "invitee@example.com", recipient.Email)
	assert.Equal(t, "Procurement", recipient.GroupName)
	assert.Equal(t, "Grace Hopper", recipient.InvitedBy)
	assert.Equal(t, "https://shop.example.com/web/api/invitations/token-456", recipient.InvitationLink)
}

// Transport failures and error statuses are logged, never surfaced: the
// calls below must simply return.
func TestDispatchFailuresAreSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	serverURL := server.URL
	user := &models.User{Email: "a@b.com"}

	client := NewClient(config.MailServiceConfig{
		BaseURL:              serverURL,
		RegistrationEndpoint: "registration",
	})
	client.SendRegistrationMail(user, "token")

	// Same with the server gone entirely.
	server.Close()
	client.SendRegistrationMail(user, "token")
}

func TestUnconfiguredClientSkipsDispatch(t *testing.T) {
	client := NewClient(config.MailServiceConfig{})
	client.SendRegistrationMail(&models.User{Email: "a@b.com"}, "token")
	client.SendOrderConfirmationMail(&models.Order{})
}
