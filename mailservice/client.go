// Package mailservice sends transactional mails through the external mail
// service. Every call is fire-and-forget: failures are logged and swallowed
// so a mail outage can never fail the workflow that triggered it.
package mailservice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/dhbw-wi22a/B2B-Backend/config"
	"github.com/dhbw-wi22a/B2B-Backend/models"
)

type Recipient struct {
	Email            string `json:"email"`
	FirstName        string `json:"fname"`
	LastName         string `json:"lname"`
	VerificationLink string `json:"verification_link,omitempty"`
	InvitationLink   string `json:"invitation_link,omitempty"`
	ResetLink        string `json:"reset_link,omitempty"`
	GroupName        string `json:"group_name,omitempty"`
	InvitedBy        string `json:"invited_by,omitempty"`
	OrderID          uint   `json:"order_id,omitempty"`
}

type payload struct {
	Recipients []Recipient `json:"recipients"`
}

type Client struct {
	cfg        config.MailServiceConfig
	httpClient *http.Client
}

func NewClient(cfg config.MailServiceConfig) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SendRegistrationMail mails the email-verification link to a freshly
// registered user.
func (c *Client) SendRegistrationMail(user *models.User, verificationToken string) {
	verificationLink := fmt.Sprintf("%s/web/api/verify-email/%s", c.cfg.ShopBaseURL, verificationToken)

	c.post(c.cfg.RegistrationEndpoint, payload{
		Recipients: []Recipient{{
			Email:            user.Email,
			FirstName:        user.FirstName,
			LastName:         user.LastName,
			VerificationLink: verificationLink,
		}},
	})
}

// SendGroupInvitationMail mails the invitation link to the invited address.
// The invitation must have its Group and InvitedBy associations loaded.
func (c *Client) SendGroupInvitationMail(invitation *models.GroupInvitation) {
	invitationLink := fmt.Sprintf("%s/web/api/invitations/%s", c.cfg.ShopBaseURL, invitation.InviteToken)

	c.post(c.cfg.GroupInviteEndpoint, payload{
		Recipients: []Recipient{{
			Email:          invitation.Email,
			FirstName:      invitation.InvitedBy.FirstName,
			LastName:       invitation.InvitedBy.LastName,
			GroupName:      invitation.Group.Name,
			InvitedBy:      invitation.InvitedBy.FullName(),
			InvitationLink: invitationLink,
		}},
	})
}

// SendPasswordResetMail mails the reset link for a requested password reset.
func (c *Client) SendPasswordResetMail(user *models.User, resetToken string) {
	resetLink := fmt.Sprintf("%s/web/api/selfservice/password-reset/%s", c.cfg.ShopBaseURL, resetToken)

	c.post(c.cfg.PasswordResetEndpoint, payload{
		Recipients: []Recipient{{
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			ResetLink: resetLink,
		}},
	})
}

// SendOrderConfirmationMail mails the buyer after an order committed.
func (c *Client) SendOrderConfirmationMail(order *models.Order) {
	c.post(c.cfg.OrderConfirmEndpoint, payload{
		Recipients: []Recipient{{
			Email:   order.OrderInfo.BuyerEmail,
			OrderID: order.ID,
		}},
	})
}

func (c *Client) post(endpoint string, body payload) {
	if c.cfg.BaseURL == "" || endpoint == "" {
		log.Println("mail service not configured, skipping dispatch")
		return
	}

	url := fmt.Sprintf("%s/%s", c.cfg.BaseURL, endpoint)

	data, err := json.Marshal(body)
	if err != nil {
		log.Printf("error encoding mail payload: %v", err)
		return
	}

	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		log.Printf("error sending email: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Printf("mail service returned %d for %s", resp.StatusCode, endpoint)
		return
	}

	log.Println("email sent successfully")
}
