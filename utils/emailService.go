package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"coursebase/config"
)

// SendCoursePublishedEmail notifies the author that their course went live.
// Skipped silently when no sendgrid key is configured.
func SendCoursePublishedEmail(toEmail, toName, courseTitle string) error {
	if config.AppConfig.SendgridKey == "" {
		log.Println("Skipping publish notification: sendgrid is not configured")
		return nil
	}

	from := mail.NewEmail("Coursebase", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	subject := fmt.Sprintf("Your course %q is now published", courseTitle)

	plain := fmt.Sprintf("Hi %s,\n\nYour course %q is now live and visible in the catalog.\n\nThe Coursebase team", toName, courseTitle)
	html := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Course Published</h2>
					<p style="font-size: 16px; color: #555555;">Hi %s,</p>
					<p style="font-size: 16px; color: #555555;">Your course <strong>%s</strong> is now live and visible in the catalog.</p>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">The Coursebase team</p>
				</div>
			</body>
		</html>
	`, toName, courseTitle)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	client := sendgrid.NewSendClient(config.AppConfig.SendgridKey)

	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected publish notification: status %d", resp.StatusCode)
	}

	log.Printf("Publish notification sent to %s for course %q", toEmail, courseTitle)
	return nil
}
