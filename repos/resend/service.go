package resend

import (
	"context"
	"fmt"
	"log"
	"os"

	resend "github.com/resend/resend-go/v2"
)

// Service sends organizer notification mail through Resend.
type Service struct {
	client  *resend.Client
	hostURL string
	from    string
}

func NewService(hostURL string) *Service {
	resendKey := os.Getenv("RESEND_KEY")
	return &Service{
		client:  resend.NewClient(resendKey),
		hostURL: hostURL,
		from:    "tournaments@campusarena.dev",
	}
}

// SendDecisionMail notifies the organizer that their tournament was
// approved or rejected. Approved tournaments include the invite deep link.
func (s *Service) SendDecisionMail(ctx context.Context, email string, decision Decision) error {
	subject := fmt.Sprintf("Tournament %q approved", decision.TournamentName)
	body := approvedTemplate(decision.TournamentName, fmt.Sprintf("%s/tournaments/invite/%s", s.hostURL, decision.InviteCode))
	if !decision.Approved {
		subject = fmt.Sprintf("Tournament %q rejected", decision.TournamentName)
		body = rejectedTemplate(decision.TournamentName, decision.Reason)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{email},
		Subject: subject,
		Html:    body,
	}

	_, err := s.client.Emails.Send(params)
	if err != nil {
		log.Printf("Failed to send mail request: %v\n", err)
		return err
	}
	return nil
}

func approvedTemplate(name, inviteURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>Your tournament was approved</h2>
        <p>%s is now open for registration. Share the invite link below with participants:</p>
        <a href="%s" style="display: block; width: 220px; margin: 20px auto; background-color: #007BFF; color: #ffffff; text-align: center; line-height: 50px; text-decoration: none; border-radius: 5px;">Open tournament</a>
    </div>
</body>
</html>`, name, inviteURL)
}

func rejectedTemplate(name, reason string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>Your tournament was rejected</h2>
        <p>%s was not approved by the faculty reviewer.</p>
        <p>Reason: %s</p>
    </div>
</body>
</html>`, name, reason)
}
