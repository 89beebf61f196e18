//go:build integration

// Package steps holds the godog step definitions for the API feature suite.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/savings-ledger/config"
	"github.com/finance-tracker/savings-ledger/internal/infra/dependency"
	"github.com/finance-tracker/savings-ledger/test/integration/mock"
)

const (
	testPassword = "SecurePass123!"
	nbpTablePath = "/api/exchangerates/tables/a/"
)

var placeholder = regexp.MustCompile(`\{\{([a-z_]+)\}\}`)

// suite holds the state shared by every scenario.
type suite struct {
	server   *httptest.Server
	injector *dependency.Injector
	db       *mock.Db
	redis    *redis.Client
	upstream *mock.Upstream
}

var shared *suite

// testContext holds state for a single scenario.
type testContext struct {
	*suite
	accessToken string
	statusCode  int
	body        []byte
	headers     http.Header
	vars        map[string]string
}

// InitializeTestSuite starts the API once for the whole run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		s := &suite{
			db:       mock.NewDb(),
			redis:    mock.NewRedis(),
			upstream: mock.NewUpstream(),
		}

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = "integration-test-secret"
		cfg.JWT.BcryptCost = 4
		cfg.Email.ResendAPIKey = ""
		cfg.Market.NBPBaseURL = s.upstream.URL()
		cfg.Market.HTTPTimeout = 2 * time.Second
		cfg.RateLimit.LoginAttempts = 3
		cfg.RateLimit.LoginWindow = time.Minute

		injector, err := dependency.NewInjector(cfg, s.db.Database, s.redis)
		if err != nil {
			panic("failed to build injector: " + err.Error())
		}
		s.injector = injector
		s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
		shared = s
	})

	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		shared.upstream.Close()
	})
}

// InitializeScenario registers the steps and resets state before each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &testContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.suite = shared
		tc.accessToken = ""
		tc.statusCode = 0
		tc.body = nil
		tc.headers = nil
		tc.vars = map[string]string{}

		if err := tc.db.ClearDB(); err != nil {
			return c, err
		}
		if err := mock.ClearRedis(tc.redis); err != nil {
			return c, err
		}
		tc.upstream.Reset()
		return c, nil
	})

	// Authentication
	ctx.Step(`^I am registered as "([^"]*)"$`, tc.iAmRegisteredAs)
	ctx.Step(`^I am not authenticated$`, tc.iAmNotAuthenticated)

	// Requests
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, tc.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, tc.iSendARequestToWithBody)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, tc.iSaveTheResponseFieldAs)

	// Response assertions
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, tc.theResponseFieldShouldHaveItems)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, tc.theResponseHeaderShouldContain)

	// Database assertions
	ctx.Step(`^the table "([^"]*)" should contain (\d+) rows?$`, tc.theTableShouldContainRows)
	ctx.Step(`^the table "([^"]*)" should contain (\d+) rows? where "([^"]*)" is "([^"]*)"$`, tc.theTableShouldContainRowsWhere)

	// Background jobs and upstream services
	ctx.Step(`^the goal "([^"]*)" is due for auto-save today$`, tc.theGoalIsDueForAutoSaveToday)
	ctx.Step(`^the auto-save scheduler runs$`, tc.theAutoSaveSchedulerRuns)
	ctx.Step(`^the email worker runs$`, tc.theEmailWorkerRuns)
	ctx.Step(`^the exchange rate service responds with status (\d+) and body:$`, tc.theExchangeRateServiceRespondsWithBody)
	ctx.Step(`^the exchange rate service responds with status (\d+)$`, tc.theExchangeRateServiceRespondsWith)
	ctx.Step(`^the exchange rate service should have received (\d+) requests?$`, tc.theExchangeRateServiceShouldHaveReceived)
}

func (tc *testContext) iAmRegisteredAs(email string) error {
	body := fmt.Sprintf(`{"email":%q,"name":"Test User","password":%q}`, email, testPassword)
	if err := tc.executeRequest(http.MethodPost, "/api/v1/auth/register", body); err != nil {
		return err
	}
	if tc.statusCode != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d: %s", tc.statusCode, tc.body)
	}

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(tc.body, &resp); err != nil {
		return fmt.Errorf("failed to parse auth response: %w", err)
	}
	tc.accessToken = resp.AccessToken
	tc.vars["refresh_token"] = resp.RefreshToken
	return nil
}

func (tc *testContext) iAmNotAuthenticated() error {
	tc.accessToken = ""
	return nil
}

func (tc *testContext) iSendARequestTo(method, path string) error {
	return tc.executeRequest(method, path, "")
}

func (tc *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return tc.executeRequest(method, path, body.Content)
}

func (tc *testContext) executeRequest(method, path, body string) error {
	path = tc.replacePlaceholders(path)
	body = tc.replacePlaceholders(body)

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, tc.server.URL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	tc.body, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	tc.statusCode = resp.StatusCode
	tc.headers = resp.Header
	return nil
}

func (tc *testContext) replacePlaceholders(s string) string {
	now := time.Now().UTC()
	return placeholder.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		switch name {
		case "today":
			return now.Format(time.DateOnly)
		case "yesterday":
			return now.AddDate(0, 0, -1).Format(time.DateOnly)
		case "month":
			return now.Format("2006-01")
		}
		if v, ok := tc.vars[name]; ok {
			return v
		}
		return match
	})
}

func (tc *testContext) iSaveTheResponseFieldAs(field, name string) error {
	value, err := tc.fieldValue(field)
	if err != nil {
		return err
	}
	tc.vars[name] = value
	return nil
}

func (tc *testContext) theResponseStatusShouldBe(expected int) error {
	if tc.statusCode != expected {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expected, tc.statusCode, tc.body)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldBe(field, expected string) error {
	expected = tc.replacePlaceholders(expected)
	actual, err := tc.fieldValue(field)
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("expected field %q to be %q, got %q", field, expected, actual)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldHaveItems(field string, expected int) error {
	value, err := tc.lookup(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		if value == nil && expected == 0 {
			return nil
		}
		return fmt.Errorf("field %q is not an array: %v", field, value)
	}
	if len(items) != expected {
		return fmt.Errorf("expected field %q to have %d items, got %d", field, expected, len(items))
	}
	return nil
}

func (tc *testContext) theResponseHeaderShouldContain(header, expected string) error {
	actual := tc.headers.Get(header)
	if !strings.Contains(actual, expected) {
		return fmt.Errorf("expected header %q to contain %q, got %q", header, expected, actual)
	}
	return nil
}

func (tc *testContext) theTableShouldContainRows(table string, expected int) error {
	if _, ok := tc.db.GetModel(table); !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	var count int64
	if err := tc.db.DbConn.Table(table).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}

func (tc *testContext) theTableShouldContainRowsWhere(table string, expected int, column, value string) error {
	if _, ok := tc.db.GetModel(table); !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	var count int64
	err := tc.db.DbConn.Table(table).
		Where(fmt.Sprintf("%s = ?", column), tc.replacePlaceholders(value)).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s where %s = %q, got %d", expected, table, column, value, count)
	}
	return nil
}

func (tc *testContext) theGoalIsDueForAutoSaveToday(goalID string) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	result := tc.db.DbConn.Table("savings_goals").
		Where("id = ?", tc.replacePlaceholders(goalID)).
		Update("next_auto_save_date", today)
	if result.Error != nil {
		return fmt.Errorf("failed to schedule goal: %w", result.Error)
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("goal %s not found", goalID)
	}
	return nil
}

func (tc *testContext) theAutoSaveSchedulerRuns() error {
	tc.injector.AutoSaveWorker.ProcessNow(context.Background())
	return nil
}

func (tc *testContext) theEmailWorkerRuns() error {
	tc.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (tc *testContext) theExchangeRateServiceRespondsWithBody(status int, body *godog.DocString) error {
	tc.upstream.SetResponse(http.MethodGet, nbpTablePath, status, tc.replacePlaceholders(body.Content))
	return nil
}

func (tc *testContext) theExchangeRateServiceRespondsWith(status int) error {
	tc.upstream.SetResponse(http.MethodGet, nbpTablePath, status, `{"error":"unavailable"}`)
	return nil
}

func (tc *testContext) theExchangeRateServiceShouldHaveReceived(expected int) error {
	if got := tc.upstream.Hits(http.MethodGet, nbpTablePath); got != expected {
		return fmt.Errorf("expected %d requests to the exchange rate service, got %d", expected, got)
	}
	return nil
}

// fieldValue resolves a dotted path and renders the value the way it reads
// in a feature file.
func (tc *testContext) fieldValue(path string) (string, error) {
	value, err := tc.lookup(path)
	if err != nil {
		return "", err
	}
	switch v := value.(type) {
	case nil:
		return "null", nil
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
}

// lookup walks a dotted path such as "goals.0.name" through the response body.
func (tc *testContext) lookup(path string) (any, error) {
	var current any
	if err := json.Unmarshal(tc.body, &current); err != nil {
		return nil, fmt.Errorf("failed to parse response body: %w. Body: %s", err, tc.body)
	}
	if path == "" {
		return current, nil
	}

	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response: %s", path, tc.body)
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("invalid index %q for field %q", part, path)
			}
			current = node[idx]
		default:
			return nil, fmt.Errorf("cannot descend into %q for field %q", part, path)
		}
	}
	return current, nil
}
