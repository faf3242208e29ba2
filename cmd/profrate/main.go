package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// session is the client state persisted between invocations.
type session struct {
	BaseURL      string `json:"baseUrl"`
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func sessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profrate", "session.json"), nil
}

func loadSession() *session {
	s := &session{BaseURL: "http://127.0.0.1:8080"}
	path, err := sessionPath()
	if err != nil {
		return s
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	_ = json.Unmarshal(data, s)
	if s.BaseURL == "" {
		s.BaseURL = "http://127.0.0.1:8080"
	}
	return s
}

func (s *session) save() error {
	path, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// apiEnvelope mirrors the server's response wrapper.
type apiEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field,omitempty"`
		Details any    `json:"details,omitempty"`
	} `json:"error"`
}

type client struct {
	session *session
	http    *http.Client
}

func newClient() *client {
	return &client{
		session: loadSession(),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *client) do(method, path string, body any, authenticated bool) (*apiEnvelope, int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.session.BaseURL+path, reqBody)
	if err != nil {
		return nil, 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.session.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("could not reach %s: %w", c.session.BaseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	envelope := &apiEnvelope{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, envelope); err != nil {
			return nil, resp.StatusCode, fmt.Errorf("unexpected response from server: %s", strings.TrimSpace(string(raw)))
		}
	}
	return envelope, resp.StatusCode, nil
}

func (c *client) decode(envelope *apiEnvelope, status int, out any) error {
	if envelope.Error != nil {
		return fmt.Errorf("%s", envelope.Error.Message)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("server returned status %d", status)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(envelope.Data, out)
}

func normalizeURL(url string) string {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return strings.TrimRight(url, "/")
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	value, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(password), nil
}

// authPayload is the token portion of a register/login response.
type authPayload struct {
	Token struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"token"`
	User struct {
		Username string `json:"username"`
	} `json:"user"`
}

func (c *client) register(ctx *cli.Context) error {
	if url := ctx.String("url"); url != "" {
		c.session.BaseURL = normalizeURL(url)
	}

	username, err := prompt("Enter username: ")
	if err != nil {
		return err
	}
	email, err := prompt("Enter email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Enter password: ")
	if err != nil {
		return err
	}

	envelope, status, err := c.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		return err
	}

	var payload authPayload
	if err := c.decode(envelope, status, &payload); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	c.session.AccessToken = payload.Token.AccessToken
	c.session.RefreshToken = payload.Token.RefreshToken
	if err := c.session.save(); err != nil {
		return err
	}
	fmt.Println("Registration successful! You are now logged in.")
	return nil
}

func (c *client) login(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return cli.Exit("usage: profrate login <url>", 1)
	}
	c.session.BaseURL = normalizeURL(ctx.Args().First())

	username, err := prompt("Enter username: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("Enter password: ")
	if err != nil {
		return err
	}

	envelope, status, err := c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, false)
	if err != nil {
		return err
	}

	var payload authPayload
	if err := c.decode(envelope, status, &payload); err != nil {
		return cli.Exit("Login failed. Please check your username and password.", 1)
	}

	c.session.AccessToken = payload.Token.AccessToken
	c.session.RefreshToken = payload.Token.RefreshToken
	if err := c.session.save(); err != nil {
		return err
	}
	fmt.Println("Login successful!")
	return nil
}

func (c *client) logout(ctx *cli.Context) error {
	if c.session.AccessToken == "" {
		return cli.Exit("You are not logged in!", 1)
	}

	envelope, status, err := c.do(http.MethodPost, "/api/v1/auth/logout", map[string]string{
		"refreshToken": c.session.RefreshToken,
	}, true)
	if err != nil {
		return err
	}
	if err := c.decode(envelope, status, nil); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.session.AccessToken = ""
	c.session.RefreshToken = ""
	if err := c.session.save(); err != nil {
		return err
	}
	fmt.Println("Logout successful!")
	return nil
}

func (c *client) listModules(ctx *cli.Context) error {
	envelope, status, err := c.do(http.MethodGet, "/api/v1/modules", nil, false)
	if err != nil {
		return err
	}

	var modules []struct {
		Code       string `json:"code"`
		Name       string `json:"name"`
		Year       int    `json:"year"`
		Semester   int    `json:"semester"`
		Professors []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"professors"`
	}
	if err := c.decode(envelope, status, &modules); err != nil {
		return fmt.Errorf("failed to retrieve module list: %w", err)
	}

	if len(modules) == 0 {
		fmt.Println("No module instances found.")
		return nil
	}

	for _, m := range modules {
		fmt.Printf("Code: %s\n", m.Code)
		fmt.Printf("Name: %s\n", m.Name)
		fmt.Printf("Year: %d\n", m.Year)
		fmt.Printf("Semester: %d\n", m.Semester)

		var taughtBy []string
		for _, p := range m.Professors {
			taughtBy = append(taughtBy, fmt.Sprintf("%s, %s", p.ID, p.Name))
		}
		fmt.Printf("Taught by: %s\n", strings.Join(taughtBy, ", "))
		fmt.Println(strings.Repeat("-", 70))
	}
	return nil
}

func (c *client) viewRatings(ctx *cli.Context) error {
	envelope, status, err := c.do(http.MethodGet, "/api/v1/professors/ratings", nil, false)
	if err != nil {
		return err
	}

	var ratings []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Rating int    `json:"rating"`
	}
	if err := c.decode(envelope, status, &ratings); err != nil {
		return fmt.Errorf("failed to retrieve ratings: %w", err)
	}

	if len(ratings) == 0 {
		fmt.Println("No professor ratings found.")
		return nil
	}

	for _, prof := range ratings {
		fmt.Printf("The rating of Professor %s (%s) is %s\n",
			prof.Name, prof.ID, strings.Repeat("*", prof.Rating))
	}
	return nil
}

func (c *client) viewAverage(ctx *cli.Context) error {
	if ctx.NArg() < 2 {
		return cli.Exit("usage: profrate average <professor_id> <module_code>", 1)
	}
	professorID := ctx.Args().Get(0)
	moduleCode := ctx.Args().Get(1)

	path := fmt.Sprintf("/api/v1/professors/%s/modules/%s/rating", professorID, moduleCode)
	envelope, status, err := c.do(http.MethodGet, path, nil, false)
	if err != nil {
		return err
	}

	var result struct {
		Rating int `json:"rating"`
	}
	if err := c.decode(envelope, status, &result); err != nil {
		return fmt.Errorf("failed to retrieve average rating: %w", err)
	}

	fmt.Printf("The rating of Professor %s in module %s is %s\n",
		professorID, moduleCode, strings.Repeat("*", result.Rating))
	return nil
}

func (c *client) rate(ctx *cli.Context) error {
	if ctx.NArg() < 5 {
		return cli.Exit("usage: profrate rate <professor_id> <module_code> <year> <semester> <rating>", 1)
	}
	if c.session.AccessToken == "" {
		return cli.Exit("You need to log in first to rate professors!", 1)
	}

	year, err := strconv.Atoi(ctx.Args().Get(2))
	if err != nil {
		return cli.Exit("Year must be a number.", 1)
	}
	semester, err := strconv.Atoi(ctx.Args().Get(3))
	if err != nil {
		return cli.Exit("Semester must be a number.", 1)
	}
	rating, err := strconv.Atoi(ctx.Args().Get(4))
	if err != nil || rating < 1 || rating > 5 {
		return cli.Exit("Rating must be between 1 and 5.", 1)
	}

	envelope, status, err := c.do(http.MethodPost, "/api/v1/ratings", map[string]any{
		"professor_id": ctx.Args().Get(0),
		"module_code":  ctx.Args().Get(1),
		"year":         year,
		"semester":     semester,
		"rating":       rating,
	}, true)
	if err != nil {
		return err
	}
	if err := c.decode(envelope, status, nil); err != nil {
		return fmt.Errorf("failed to submit rating: %w", err)
	}

	fmt.Println("Rating submitted successfully!")
	return nil
}

func main() {
	c := newClient()

	app := &cli.App{
		Name:  "profrate",
		Usage: "Professor rating client",
		Commands: []*cli.Command{
			{
				Name:   "register",
				Usage:  "Register a new user",
				Action: c.register,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "URL of the service (e.g. ratings.example.com)",
					},
				},
			},
			{
				Name:      "login",
				Usage:     "Log in to the service",
				ArgsUsage: "<url>",
				Action:    c.login,
			},
			{
				Name:   "logout",
				Usage:  "Log out from the service",
				Action: c.logout,
			},
			{
				Name:   "list",
				Usage:  "List all module instances",
				Action: c.listModules,
			},
			{
				Name:   "view",
				Usage:  "View ratings of all professors",
				Action: c.viewRatings,
			},
			{
				Name:      "average",
				Usage:     "View average rating of a professor in a module",
				ArgsUsage: "<professor_id> <module_code>",
				Action:    c.viewAverage,
			},
			{
				Name:      "rate",
				Usage:     "Rate a professor",
				ArgsUsage: "<professor_id> <module_code> <year> <semester> <rating>",
				Action:    c.rate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
