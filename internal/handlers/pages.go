package handlers

import (
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"

	"feedback-app/internal/models"
)

// The app serves a handful of small server-rendered pages. They are built
// with Fprintf rather than a template engine; all user-supplied values go
// through html.EscapeString.

const pageShell = `<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>Feedback</title>
	<style>
		body { font-family: -apple-system, sans-serif; display: flex; justify-content: center; margin: 0; padding: 40px 16px; background: #f5f3ff; }
		.card { padding: 32px; background: white; border-radius: 16px; box-shadow: 0 4px 24px rgba(0,0,0,0.1); width: 100%%; max-width: 480px; }
		h1 { color: #333; font-size: 24px; }
		p { color: #666; font-size: 16px; line-height: 1.5; }
		label { display: block; color: #666; font-size: 14px; margin-top: 12px; }
		input, textarea { width: 100%%; box-sizing: border-box; padding: 10px; margin-top: 4px; border: 1px solid #e5e7eb; border-radius: 8px; font-size: 16px; }
		.btn { display: inline-block; background: #6366f1; color: white; padding: 10px 24px; border: none; border-radius: 10px; text-decoration: none; font-weight: 600; font-size: 16px; margin-top: 16px; cursor: pointer; }
		.btn-danger { background: #ef4444; }
		.error { color: #b91c1c; background: #fee2e2; padding: 10px; border-radius: 8px; margin-top: 12px; font-size: 14px; }
		ul { padding-left: 0; list-style: none; }
		li { border-top: 1px solid #e5e7eb; padding: 12px 0; }
		form.inline { display: inline; }
	</style>
</head>
<body>
	<div class="card">
%s	</div>
</body>
</html>
`

func renderPage(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, pageShell, body)
}

func errorBanner(messages []string) string {
	var b strings.Builder
	for _, msg := range messages {
		fmt.Fprintf(&b, "<p class=\"error\">%s</p>\n", html.EscapeString(msg))
	}
	return b.String()
}

func registerForm(errs []string, username, email, firstName, lastName string) string {
	return fmt.Sprintf(`<h1>Create Your Account</h1>
%s<form method="POST" action="/register">
	<label>Username <input name="username" maxlength="20" value="%s"></label>
	<label>Password <input name="password" type="password"></label>
	<label>Email <input name="email" maxlength="50" value="%s"></label>
	<label>First name <input name="first_name" maxlength="30" value="%s"></label>
	<label>Last name <input name="last_name" maxlength="30" value="%s"></label>
	<button class="btn" type="submit">Register</button>
</form>
<p>Already have an account? <a href="/login">Log in</a></p>
`,
		errorBanner(errs),
		html.EscapeString(username),
		html.EscapeString(email),
		html.EscapeString(firstName),
		html.EscapeString(lastName))
}

func loginForm(errs []string, username string) string {
	return fmt.Sprintf(`<h1>Welcome Back</h1>
%s<form method="POST" action="/login">
	<label>Username <input name="username" maxlength="20" value="%s"></label>
	<label>Password <input name="password" type="password"></label>
	<button class="btn" type="submit">Log In</button>
</form>
<p>No account yet? <a href="/register">Register</a></p>
`,
		errorBanner(errs),
		html.EscapeString(username))
}

func feedbackForm(action, heading string, errs []string, title, content string) string {
	return fmt.Sprintf(`<h1>%s</h1>
%s<form method="POST" action="%s">
	<label>Title <input name="title" maxlength="100" value="%s"></label>
	<label>Content <textarea name="content" rows="6">%s</textarea></label>
	<button class="btn" type="submit">Save</button>
</form>
`,
		html.EscapeString(heading),
		errorBanner(errs),
		action,
		html.EscapeString(title),
		html.EscapeString(content))
}

func profilePage(user *models.User, entries []models.Feedback) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(user.FullName()))
	fmt.Fprintf(&b, "<p>@%s &middot; %s</p>\n", html.EscapeString(user.Username), html.EscapeString(user.Email))
	fmt.Fprintf(&b, "<p><a class=\"btn\" href=\"/users/%s/feedback/add\">Add Feedback</a> <a href=\"/logout\">Log out</a></p>\n", url.PathEscape(user.Username))

	b.WriteString("<ul>\n")
	for _, f := range entries {
		fmt.Fprintf(&b, `<li><strong>%s</strong>
<p>%s</p>
<a href="/feedback/%d/edit">Edit</a>
<form class="inline" method="POST" action="/feedback/%d/delete"><button class="btn btn-danger" type="submit">Delete</button></form>
</li>
`,
			html.EscapeString(f.Title),
			html.EscapeString(f.Content),
			f.ID, f.ID)
	}
	b.WriteString("</ul>\n")

	fmt.Fprintf(&b, "<form method=\"POST\" action=\"/users/%s/delete\"><button class=\"btn btn-danger\" type=\"submit\">Delete Account</button></form>\n", url.PathEscape(user.Username))
	return b.String()
}
