package smtp

// emailTemplates holds the embedded HTML mail bodies.
const emailTemplates = `
{{define "verification"}}
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Verify your email</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            background-color: #ffffff;
            border-radius: 12px;
            padding: 40px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
        }
        .logo {
            font-size: 28px;
            font-weight: bold;
            color: #2563EB;
            text-align: center;
            margin-bottom: 30px;
        }
        h1 {
            color: #1a1a1a;
            font-size: 24px;
            margin-bottom: 20px;
            text-align: center;
        }
        .code-container {
            background: #2563EB;
            border-radius: 12px;
            padding: 30px;
            text-align: center;
            margin: 30px 0;
        }
        .code {
            font-size: 42px;
            font-weight: bold;
            letter-spacing: 8px;
            color: #ffffff;
            font-family: 'Courier New', monospace;
        }
        .message {
            color: #666;
            font-size: 16px;
            text-align: center;
        }
        .footer {
            color: #999;
            font-size: 13px;
            text-align: center;
            margin-top: 30px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">{{.AppName}}</div>
        <h1>Verify your email address</h1>
        <p class="message">Enter this code to finish creating your account:</p>
        <div class="code-container">
            <div class="code">{{.Code}}</div>
        </div>
        <p class="message">The code expires in {{.TTL}}.</p>
        <p class="footer">If you did not sign up for {{.AppName}}, you can safely ignore this email.</p>
    </div>
</body>
</html>
{{end}}
`
