// Command export logs in, fetches the account's resume and writes it out as
// pdf, html, or word. By default the server renders the artifact; -local
// runs the template renderer and headless Chrome on this machine instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"resume-forge/internal/client/api"
	"resume-forge/internal/export"
	"resume-forge/internal/render"
	"resume-forge/internal/services/auth"
	"resume-forge/internal/services/resumes"
)

var (
	baseURL  = flag.String("url", envOr("API_BASE_URL", "http://localhost:5000"), "Server base URL")
	email    = flag.String("email", os.Getenv("EMAIL"), "Account e-mail")
	pass     = flag.String("pass", os.Getenv("PASSWORD"), "Account password")
	format   = flag.String("format", "pdf", "Output format: pdf, html or word")
	template = flag.String("template", "", "Template override (default: the resume's own)")
	outPath  = flag.String("out", "", "Output file (default: resume.<ext>)")
	local    = flag.Bool("local", false, "Render locally instead of on the server")
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	flag.Parse()

	if *email == "" || *pass == "" {
		fmt.Fprintln(os.Stderr, "FATAL: -email and -pass are required")
		os.Exit(1)
	}
	if _, err := export.ParseFormat(*format); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	client := api.New(*baseURL)

	if _, err := client.Login(ctx, auth.LoginRequest{Email: *email, Password: *pass}); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	list, err := client.ListResumes(ctx)
	if err != nil {
		return fmt.Errorf("list resumes: %w", err)
	}
	if len(list) == 0 {
		return fmt.Errorf("account %s has no resume to export", *email)
	}
	resume := list[0]

	var artifact *export.Artifact
	if *local {
		artifact, err = exportLocally(ctx, resume)
	} else {
		var remote *api.Artifact
		remote, err = client.Export(ctx, resume.ID.Hex(), api.ExportOptions{
			Format:   *format,
			Template: *template,
		})
		if remote != nil {
			artifact = &export.Artifact{
				Data:        remote.Data,
				ContentType: remote.ContentType,
				Filename:    remote.Filename,
			}
		}
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	path := *outPath
	if path == "" {
		path = artifact.Filename
	}
	if path == "" {
		path = "resume." + strings.ToLower(*format)
	}

	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return err
	}

	fmt.Printf("✔ wrote %s (%d bytes, %s)\n", path, len(artifact.Data), artifact.ContentType)
	return nil
}

func exportLocally(ctx context.Context, resume *resumes.Resume) (*export.Artifact, error) {
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}

	templateID := *template
	if templateID == "" {
		templateID = resume.Template
	}

	html, err := renderer.Render(resume, nil, templateID)
	if err != nil {
		return nil, err
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		return nil, err
	}

	exporter := export.New(export.NewChromeRenderer(os.Getenv("CHROME_PATH")), 60*time.Second)
	return exporter.Export(ctx, html, f)
}
