// Package steps provides step definitions for the BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/finance-tracker/dashboard/config"
	"github.com/finance-tracker/dashboard/internal/application/adapter"
	"github.com/finance-tracker/dashboard/internal/infra/db"
	"github.com/finance-tracker/dashboard/internal/infra/dependency"
	"github.com/finance-tracker/dashboard/internal/integration/cache"
	"github.com/finance-tracker/dashboard/internal/integration/persistence/model"
	"github.com/finance-tracker/dashboard/test/integration/mock"
)

const (
	testJWTSecret   = "test-jwt-secret-key-for-testing-purposes"
	testTokenIssuer = "finance-dashboard"
	testInstanceID  = "bdd-instance"
	otherInstanceID = "other-instance"
	defaultPassword = "DefaultPass123!"
	defaultUserName = "Test User"
)

// suite holds the resources shared by every scenario.
var suite struct {
	cfg       *config.Config
	db        *mock.Db
	redis     *mock.Redis
	publisher *mock.Publisher
	injector  *dependency.Injector
	server    *httptest.Server
}

type testContext struct {
	uri          string
	headers      map[string]string
	client       *http.Client
	response     *response
	accessToken  string
	refreshToken string
	lastRecordID uuid.UUID
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite starts the API once, backed by SQLite, miniredis and a recording publisher.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = testJWTSecret
		cfg.JWT.BcryptCost = bcrypt.MinCost
		cfg.Redis.SnapshotTTL = 5 * time.Minute
		cfg.Dashboard.CurrencyPrefix = "Rs."
		cfg.AI.GeminiAPIKey = ""
		cfg.RateLimit.Enabled = true

		suite.cfg = cfg
		suite.db = mock.NewDb("finance_dashboard", db.Models()...)
		suite.redis = mock.NewRedis()
		suite.publisher = mock.NewPublisher()
		suite.injector = dependency.NewInjector(cfg, suite.db.DbConn, dependency.Infrastructure{
			Redis:      suite.redis.Client,
			Publisher:  suite.publisher,
			InstanceID: testInstanceID,
		})
		suite.server = httptest.NewServer(suite.injector.Router.Setup(cfg.Server.Environment))
	})

	ctx.AfterSuite(func() {
		if suite.server != nil {
			suite.server.Close()
		}
		if suite.redis != nil {
			suite.redis.Close()
		}
		if suite.db != nil {
			_ = suite.db.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	for _, def := range test.definitions() {
		ctx.Step(def.pattern, def.handler)
	}
}

type stepDefinition struct {
	pattern string
	handler any
}

// definitions lists every step. Steps are keyword agnostic, so a phrase
// works after Given, When, Then or And alike.
func (t *testContext) definitions() []stepDefinition {
	return []stepDefinition{
		// Background steps
		{`^the API server is running$`, t.theAPIServerIsRunning},

		// User setup steps
		{`^a user exists with email "([^"]*)" and password "([^"]*)"$`, t.aUserExistsWithEmailAndPassword},
		{`^a user "([^"]*)" named "([^"]*)" exists$`, t.aUserNamedExists},
		{`^I am logged in as "([^"]*)"$`, t.iAmLoggedInAs},
		{`^the user "([^"]*)" is deleted$`, t.theUserIsDeleted},

		// Record setup steps
		{`^the following records exist for "([^"]*)":$`, t.theFollowingRecordsExistFor},
		{`^another instance reports a record change for "([^"]*)"$`, t.anotherInstanceReportsARecordChangeFor},
		{`^the snapshot cache expires$`, t.theSnapshotCacheExpires},

		// Header steps
		{`^the header is empty$`, t.theHeaderIsEmpty},
		{`^the header contains the key "([^"]*)" with "([^"]*)"$`, t.theHeaderContainsTheKeyWith},

		// Request steps
		{`^I send a "([^"]*)" request to "([^"]*)"$`, t.iSendARequestTo},
		{`^I send a "([^"]*)" request to "([^"]*)" with body:$`, t.iSendARequestToWithBody},

		// Response assertion steps
		{`^the response status should be (\d+)$`, t.theResponseStatusShouldBe},
		{`^the response should be JSON$`, t.theResponseShouldBeJSON},
		{`^the response should contain "([^"]*)"$`, t.theResponseShouldContain},
		{`^the response should not contain "([^"]*)"$`, t.theResponseShouldNotContain},
		{`^the response field "([^"]*)" should be "([^"]*)"$`, t.theResponseFieldShouldBe},
		{`^the response field "([^"]*)" should exist$`, t.theResponseFieldShouldExist},
		{`^the response field "([^"]*)" should have (\d+) items?$`, t.theResponseFieldShouldHaveItems},

		// Cache and event assertion steps
		{`^the snapshot of "([^"]*)" should be cached$`, t.theSnapshotShouldBeCached},
		{`^the snapshot of "([^"]*)" should not be cached$`, t.theSnapshotShouldNotBeCached},
		{`^(\d+) record changes? should have been published$`, t.recordChangesShouldHaveBeenPublished},

		// Database assertion steps
		{`^the db should contain (\d+) objects in the "([^"]*)" table$`, t.theDbShouldContainObjectsInTheTable},
		{`^the db should contain (\d+) objects in "([^"]*)" with the values$`, t.theDbShouldContainObjectsInWithTheValues},
	}
}

func (t *testContext) before() error {
	t.uri = suite.server.URL
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.lastRecordID = uuid.Nil

	suite.redis.Clear()
	suite.publisher.Reset()
	return suite.db.ClearDB()
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.uri + "/health")
	if err != nil {
		return fmt.Errorf("API server is not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	_, err := createUser(email, password, defaultUserName)
	return err
}

func (t *testContext) aUserNamedExists(email, name string) error {
	_, err := createUser(email, defaultPassword, name)
	return err
}

func createUser(email, password, name string) (*model.UserModel, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return user, suite.db.DbConn.Create(user).Error
}

func findUser(email string) (*model.UserModel, error) {
	var user model.UserModel
	if err := suite.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user %q not found: %w", email, err)
	}
	return &user, nil
}

// iAmLoggedInAs mints tokens for the user, creating it when missing.
func (t *testContext) iAmLoggedInAs(email string) error {
	user, err := findUser(email)
	if err != nil {
		if user, err = createUser(email, defaultPassword, defaultUserName); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	if t.accessToken, err = signToken(user.ID, email, "access", now, 15*time.Minute); err != nil {
		return err
	}
	if t.refreshToken, err = signToken(user.ID, email, "refresh", now, 7*24*time.Hour); err != nil {
		return err
	}

	return suite.db.DbConn.Create(&model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     t.refreshToken,
		UserID:    user.ID,
		ExpiresAt: now.Add(7 * 24 * time.Hour),
		CreatedAt: now,
	}).Error
}

func signToken(userID uuid.UUID, email, tokenType string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID.String(),
		"email":      email,
		"token_type": tokenType,
		"jti":        uuid.NewString(),
		"exp":        jwt.NewNumericDate(now.Add(ttl)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        testTokenIssuer,
		"sub":        userID.String(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (t *testContext) theUserIsDeleted(email string) error {
	user, err := findUser(email)
	if err != nil {
		return err
	}
	if err := suite.db.DbConn.Where("user_id = ?", user.ID).Delete(&model.RefreshTokenModel{}).Error; err != nil {
		return err
	}
	return suite.db.DbConn.Delete(user).Error
}

// theFollowingRecordsExistFor inserts records straight into the database,
// the way another instance would, without touching the snapshot cache.
// Columns: text | amount | category | type | date.
func (t *testContext) theFollowingRecordsExistFor(email string, table *godog.Table) error {
	user, err := findUser(email)
	if err != nil {
		return err
	}
	if len(table.Rows) < 2 {
		return errors.New("records table needs a header and at least one row")
	}

	header := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		header[i] = cell.Value
	}

	for _, row := range table.Rows[1:] {
		value := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			if i < len(header) {
				value[header[i]] = cell.Value
			}
		}

		amount, err := decimal.NewFromString(value["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", value["amount"], err)
		}

		date := time.Now().UTC()
		if raw := value["date"]; raw != "" {
			if date, err = time.Parse(time.RFC3339, raw); err != nil {
				return fmt.Errorf("invalid date %q: %w", raw, err)
			}
		}

		now := time.Now().UTC()
		record := &model.RecordModel{
			ID:        uuid.New(),
			UserID:    user.ID,
			Text:      value["text"],
			Amount:    amount,
			Category:  value["category"],
			Type:      value["type"],
			Date:      date,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := suite.db.DbConn.Create(record).Error; err != nil {
			return err
		}
		t.lastRecordID = record.ID
	}
	return nil
}

func (t *testContext) anotherInstanceReportsARecordChangeFor(email string) error {
	user, err := findUser(email)
	if err != nil {
		return err
	}
	return suite.injector.RecordSource.HandleRecordChange(context.Background(), adapter.RecordChange{
		UserID:     user.ID,
		RecordID:   t.lastRecordID,
		Kind:       adapter.RecordCreated,
		OccurredAt: time.Now().UTC(),
		Origin:     otherInstanceID,
	})
}

func (t *testContext) theSnapshotCacheExpires() error {
	suite.redis.FastForward(suite.cfg.Redis.SnapshotTTL + time.Second)
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{record_id}}", t.lastRecordID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	// Remember the record a create call returned.
	if idStr, ok := responseBody["id"].(string); ok && method == http.MethodPost {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastRecordID = id
		}
	}
	if token, ok := responseBody["access_token"].(string); ok && token != "" {
		t.accessToken = token
	}
	if token, ok := responseBody["refresh_token"].(string); ok && token != "" {
		t.refreshToken = token
	}
	return nil
}

func (t *testContext) jsonBody() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	_, err := t.jsonBody()
	return err
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseShouldNotContain(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if _, exists := body[field]; exists {
		return fmt.Errorf("response unexpectedly contains field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.jsonBody()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d: %v", field, count, len(items), items)
	}
	return nil
}

func (t *testContext) theSnapshotShouldBeCached(email string) error {
	cached, err := snapshotCached(email)
	if err != nil {
		return err
	}
	if !cached {
		return fmt.Errorf("expected a cached snapshot for %s, keys: %v", email, suite.redis.Keys())
	}
	return nil
}

func (t *testContext) theSnapshotShouldNotBeCached(email string) error {
	cached, err := snapshotCached(email)
	if err != nil {
		return err
	}
	if cached {
		return fmt.Errorf("expected no cached snapshot for %s", email)
	}
	return nil
}

func snapshotCached(email string) (bool, error) {
	user, err := findUser(email)
	if err != nil {
		return false, err
	}
	return suite.redis.Server.Exists(cache.SnapshotKey(user.ID)), nil
}

func (t *testContext) recordChangesShouldHaveBeenPublished(count int) error {
	changes := suite.publisher.Changes()
	if len(changes) != count {
		return fmt.Errorf("expected %d published record changes, got %d: %+v", count, len(changes), changes)
	}
	for _, change := range changes {
		if change.Origin != testInstanceID {
			return fmt.Errorf("expected origin %q, got %q", testInstanceID, change.Origin)
		}
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(content.Content), &criteria); err != nil {
		return err
	}
	return countRows(quantity, table, criteria)
}

func countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := suite.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := suite.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

// getFieldValue resolves dot separated paths such as "categories.0.amount".
func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}
	return field
}
