package email

// Mailer is the notification boundary the auth service depends on. It has
// no built-in timeout or retry; callers needing resilience wrap it here.
type Mailer interface {
	SendVerificationCode(to string, code int) error
	SendPasswordReset(to string, resetURL string) error
}
