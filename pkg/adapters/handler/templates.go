package handler

import "html/template"

// Markup mirrors the minimal pages the service has always served: a password
// form, a post-validation redirect page, and the analytics report.

var challengeTmpl = template.Must(template.New("challenge").Parse(`<!DOCTYPE html>
<html>
<body>
    <h2>{{.Heading}}</h2>
    <form action="{{.Action}}" method="post">
        <label for="password">Enter Password:</label><br><br>
        <input type="password" id="password" name="password" required><br><br>
        <input type="submit" value="Submit">
    </form>
</body>
</html>
`))

var validatedTmpl = template.Must(template.New("validated").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Redirecting...</title>
</head>
<body>
    <h2>Password validated successfully! Redirecting...</h2>
    <script>
        setTimeout(function() {
            window.location.href = {{.OriginalURL}};
        }, 1000);
    </script>
</body>
</html>
`))

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Analytics</title>
</head>
<body>
    <h2>Analytics for Short URL</h2>
    <p><strong>Short URL:</strong> {{.ShortURL}}</p>
    <p><strong>Original URL:</strong> {{.Report.OriginalURL}}</p>
    <p><strong>Created At:</strong> {{.Report.CreatedAt}}</p>
    <p><strong>Expires At:</strong> {{.Report.ExpiresAt}}</p>
    <p><strong>Access Count:</strong> {{.Report.AccessCount}}</p>
    <h3>Access Logs:</h3>
    <ul>
    {{range .Report.AccessLogs}}    <li>Accessed At: {{.AccessedAt}}, IP Address: {{.IPAddress}}</li>
    {{end}}</ul>
</body>
</html>
`))

type challengeData struct {
	Heading string
	Action  string
}

type validatedData struct {
	OriginalURL string
}
