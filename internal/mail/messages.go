package mail

import "fmt"

// SubjectChangePassword is the subject of every reset mail.
const SubjectChangePassword = "Change password"

// ResetCodeBody is the first mail of a reset: it links to the reset page.
func ResetCodeBody(fullName, resetURL, code string) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"We received a request to change the password of your account.\n"+
			"Open %s and enter the confirmation code below.\n\n"+
			"Confirmation code: %s\n\n"+
			"If you did not ask for this, you can ignore this mail.\n",
		fullName, resetURL, code,
	)
}

// ResendCodeBody is sent when the user asks for another code from the reset page.
func ResendCodeBody(fullName, code string) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your new confirmation code is: %s\n\n"+
			"Codes sent earlier no longer work.\n",
		fullName, code,
	)
}
