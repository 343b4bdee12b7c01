package email

import "fmt"

func verificationCodeTemplate(code int) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #151619;">Bookworm Library</h2>
  <p>Dear user,</p>
  <p>Use the verification code below to confirm your email address:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 4px; text-align: center;">%06d</p>
  <p>This code expires shortly. If you did not request it, you can ignore this email.</p>
</div>`, code)
}

func passwordResetTemplate(resetURL string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #151619;">Bookworm Library</h2>
  <p>Dear user,</p>
  <p>You requested a password reset. Click the button below to choose a new password:</p>
  <p style="text-align: center;">
    <a href="%s" style="background: #151619; color: #ffffff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Reset Password</a>
  </p>
  <p>Or open this link: <a href="%s">%s</a></p>
  <p>The link expires shortly. If you did not request a reset, ignore this email and your password stays unchanged.</p>
</div>`, resetURL, resetURL, resetURL)
}
