package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFiles embed.FS

var templates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

type linkData struct {
	Name      string
	Link      string
	ExpiresIn string
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("mail: render %s: %w", name, err)
	}
	return buf.String(), nil
}

// VerificationEmail builds the message sent after signup.
func VerificationEmail(to, name, link string, ttl time.Duration) (Message, error) {
	body, err := render("verify_email.html", linkData{Name: name, Link: link, ExpiresIn: humanize(ttl)})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Verify your email address", HTML: body}, nil
}

// PasswordResetEmail builds the message carrying a reset link.
func PasswordResetEmail(to, name, link string, ttl time.Duration) (Message, error) {
	body, err := render("password_reset.html", linkData{Name: name, Link: link, ExpiresIn: humanize(ttl)})
	if err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: "Reset your password", HTML: body}, nil
}

// VerifiedPage is the HTML shown after a verification link is followed.
func VerifiedPage(homeLink string) (string, error) {
	return render("verified.html", linkData{Link: homeLink})
}

func humanize(d time.Duration) string {
	switch {
	case d >= 24*time.Hour && d%(24*time.Hour) == 0:
		return plural(int(d/(24*time.Hour)), "day")
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d.Round(time.Minute)/time.Minute), "minute")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
