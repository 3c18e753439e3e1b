// Command seed fills a running server with fake users and resumes for local
// development. Signup tokens are usable before email verification, so the
// seeder never needs a mailbox.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"resume-forge/internal/client/api"
	"resume-forge/internal/services/auth"
	"resume-forge/internal/services/resumes"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	baseURL = flag.String("url", env("API_BASE_URL", "http://localhost:5000"), "Server base URL")
	email   = flag.String("email", env("EMAIL", ""), "Seed a single user with this e-mail instead of fakes")
	pass    = flag.String("pass", env("PASSWORD", "Password123"), "User password")
	nUsers  = flag.Int("n", envInt("COUNT", 5), "How many fake users to create")
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscan(v, &i); err == nil && i > 0 {
			return i
		}
	}
	return def
}

func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	emails := make([]string, 0, *nUsers)
	if *email != "" {
		emails = append(emails, *email)
	} else {
		for i := 0; i < *nUsers; i++ {
			emails = append(emails, gofakeit.Email())
		}
	}

	fmt.Printf("Seeding %d user(s) on %s\n", len(emails), *baseURL)

	for _, addr := range emails {
		if err := seedUser(ctx, addr); err != nil {
			fmt.Fprintln(os.Stderr, "FATAL:", err)
			os.Exit(1)
		}
	}

	fmt.Println("✔ done")
}

func seedUser(ctx context.Context, addr string) error {
	client := api.New(*baseURL)

	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	name := first + " " + last
	_, err := client.SignUp(ctx, auth.SignUpRequest{
		Name:     name,
		Email:    addr,
		Password: *pass,
	})
	if err != nil {
		// Existing account: fall back to login. Works only once verified.
		if _, err := client.Login(ctx, auth.LoginRequest{Email: addr, Password: *pass}); err != nil {
			return fmt.Errorf("seed %s: %w", addr, err)
		}
		fmt.Printf("• logged in existing user %s\n", addr)
	} else {
		fmt.Printf("• signed up %s (%s)\n", addr, name)
	}

	resp, err := client.SaveResume(ctx, fakeResume(first, last, addr))
	if err != nil {
		return fmt.Errorf("save resume for %s: %w", addr, err)
	}
	fmt.Printf("  %s\n", resp.Message)
	return nil
}

func fakeResume(first, last, addr string) resumes.SaveResumeRequest {
	job := gofakeit.JobTitle()

	education := []resumes.Education{{
		Institution: gofakeit.Company() + " University",
		Degree:      "B.Sc.",
		Field:       gofakeit.JobDescriptor(),
		StartDate:   "2014-09",
		EndDate:     "2018-06",
	}}

	experience := make([]resumes.Experience, 0, 3)
	year := 2018
	for i := 0; i < 3; i++ {
		experience = append(experience, resumes.Experience{
			Company:     gofakeit.Company(),
			Position:    gofakeit.JobTitle(),
			Location:    gofakeit.City(),
			StartDate:   fmt.Sprintf("%d-01", year),
			EndDate:     fmt.Sprintf("%d-12", year+1),
			Current:     i == 2,
			Description: gofakeit.Paragraph(1, 2, 12, " "),
		})
		year += 2
	}

	skills := make([]resumes.Skill, 0, 6)
	for i := 0; i < 6; i++ {
		skills = append(skills, resumes.Skill{
			Name:  gofakeit.ProgrammingLanguage(),
			Level: gofakeit.Number(2, 5),
		})
	}

	projects := []resumes.Project{{
		Name:        gofakeit.AppName(),
		Description: gofakeit.Sentence(10),
		Link:        gofakeit.URL(),
	}}

	certifications := []resumes.Certification{{
		Name:   gofakeit.JobDescriptor() + " Certification",
		Issuer: gofakeit.Company(),
		Date:   "2023-05",
	}}

	template := "minimal"
	return resumes.SaveResumeRequest{
		PersonalDetails: &resumes.PersonalDetails{
			FirstName: first,
			LastName:  last,
			Title:     job,
			Email:     addr,
			Phone:     gofakeit.Phone(),
			City:      gofakeit.City(),
			Summary:   gofakeit.Paragraph(1, 2, 14, " "),
		},
		Education:      &education,
		Experience:     &experience,
		Skills:         &skills,
		Projects:       &projects,
		Certifications: &certifications,
		Template:       &template,
		Name:           first + "'s Resume",
	}
}
