// Package origin provides the live HTTP implementation of the Origin
// contract. Successful GET bodies are written through the raw
// ServiceResponse cache as an opaque fallback.
package origin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/nephrolog/nephrolog-sync/config"
	"github.com/nephrolog/nephrolog-sync/internal/apperrors"
	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/repository"
	"github.com/nephrolog/nephrolog-sync/internal/service"
)

// Client talks to the remote origin over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	responses  *repository.ServiceResponseCache
}

// Interface assertion to ensure Client implements service.Origin
var _ service.Origin = (*Client)(nil)

// NewClient builds an HTTP origin client. The response cache is optional;
// when present, GET responses are stored through it.
func NewClient(cfg *config.Config, responses *repository.ServiceResponseCache) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.OriginURL, "/"),
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		responses:  responses,
	}
}

type accountPayload struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	SetupCompleted bool   `json:"setup_completed"`
}

type profilePayload struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Birthdate      time.Time `json:"birthdate"`
	HeightCM       float64   `json:"height_cm"`
	WeightKG       float64   `json:"weight_kg"`
	OnDialysis     bool      `json:"on_dialysis"`
	DiseaseStage   string    `json:"disease_stage"`
	Comorbidities  []string  `json:"comorbidities"`
	SetupCompleted bool      `json:"setup_completed"`
}

type goalPayload struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Frequency     string   `json:"frequency"`
	TargetValue   float64  `json:"target_value"`
	InitialValue  float64  `json:"initial_value"`
	CurrentValue  float64  `json:"current_value"`
	SortIndex     int      `json:"sort_index"`
	RewardPoints  int      `json:"reward_points"`
	MinValue      *float64 `json:"min_value"`
	MaxValue      *float64 `json:"max_value"`
	Color         string   `json:"color"`
	Icon          string   `json:"icon"`
	DeviceSourced bool     `json:"device_sourced"`
}

type foodItemPayload struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Kind   string  `json:"kind"`
}

type foodPayload struct {
	ID        string            `json:"id"`
	Meal      string            `json:"meal"`
	Date      time.Time         `json:"date"`
	ImageRefs []string          `json:"image_refs"`
	Items     []foodItemPayload `json:"items"`
}

type recommendationPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	ImageRef    string `json:"image_ref"`
	Kind        string `json:"kind"`
	TintColor   string `json:"tint_color"`
	RelatedFood string `json:"related_food"`
}

type sessionPayload struct {
	Token   string          `json:"token"`
	Account accountPayload  `json:"account"`
	Profile *profilePayload `json:"profile"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// Login authenticates against the origin.
func (c *Client) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decodeSession(body, "login")
}

// Register creates an account at the origin; the origin assigns canonical
// identifiers.
func (c *Client) Register(ctx context.Context, email, password string, profile *models.Profile) (*service.LoginResult, error) {
	req := map[string]any{
		"email":    email,
		"password": password,
	}
	if profile != nil {
		req["profile"] = toProfilePayload(profile)
	}
	body, err := c.do(ctx, http.MethodPost, "/v1/auth/register", "", req)
	if err != nil {
		return nil, err
	}
	return decodeSession(body, "register")
}

func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/v1/auth/logout", token, nil)
	return err
}

func (c *Client) SaveProfile(ctx context.Context, token string, profile *models.Profile) (*models.Profile, error) {
	body, err := c.do(ctx, http.MethodPut, "/v1/profile", token, toProfilePayload(profile))
	if err != nil {
		return nil, err
	}
	var payload profilePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &apperrors.OriginError{Op: "saveProfile", Err: err}
	}
	return fromProfilePayload(&payload), nil
}

func (c *Client) FetchGoals(ctx context.Context, token string) ([]*models.Goal, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/goals", token, nil)
	if err != nil {
		return nil, err
	}
	var payloads []goalPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, &apperrors.OriginError{Op: "fetchGoals", Err: err}
	}
	goals := make([]*models.Goal, 0, len(payloads))
	for _, p := range payloads {
		goals = append(goals, &models.Goal{
			CacheMeta:     models.CacheMeta{ID: p.ID},
			Title:         p.Title,
			Frequency:     p.Frequency,
			TargetValue:   p.TargetValue,
			InitialValue:  p.InitialValue,
			CurrentValue:  p.CurrentValue,
			SortIndex:     p.SortIndex,
			RewardPoints:  p.RewardPoints,
			MinValue:      p.MinValue,
			MaxValue:      p.MaxValue,
			Color:         p.Color,
			Icon:          p.Icon,
			DeviceSourced: p.DeviceSourced,
		})
	}
	return goals, nil
}

func (c *Client) FetchFood(ctx context.Context, token string, day time.Time) ([]*models.Food, error) {
	path := "/v1/food?date=" + url.QueryEscape(day.Format("2006-01-02"))
	body, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	var payloads []foodPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, &apperrors.OriginError{Op: "fetchFood", Err: err}
	}
	foods := make([]*models.Food, 0, len(payloads))
	for _, p := range payloads {
		food := &models.Food{
			CacheMeta: models.CacheMeta{ID: p.ID},
			Meal:      models.ParseMealOfDay(p.Meal),
			Date:      p.Date,
			ImageRefs: datatypes.JSONSlice[string](p.ImageRefs),
		}
		for _, ip := range p.Items {
			food.Items = append(food.Items, &models.FoodItem{
				CacheMeta: models.CacheMeta{ID: ip.ID},
				Title:     ip.Title,
				Amount:    ip.Amount,
				Unit:      ip.Unit,
				Kind:      models.ParseFoodItemKind(ip.Kind),
			})
		}
		foods = append(foods, food)
	}
	return foods, nil
}

func (c *Client) FetchRecommendations(ctx context.Context, token string, kinds []models.RecommendationKind) ([]*models.Recommendation, error) {
	tags := make([]string, 0, len(kinds))
	for _, k := range kinds {
		tags = append(tags, string(k))
	}
	path := "/v1/recommendations?kinds=" + url.QueryEscape(strings.Join(tags, ","))
	body, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	var payloads []recommendationPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, &apperrors.OriginError{Op: "fetchRecommendations", Err: err}
	}
	recs := make([]*models.Recommendation, 0, len(payloads))
	for _, p := range payloads {
		recs = append(recs, &models.Recommendation{
			CacheMeta:   models.CacheMeta{ID: p.ID},
			Title:       p.Title,
			Text:        p.Text,
			ImageRef:    p.ImageRef,
			Kind:        models.ParseRecommendationKind(p.Kind),
			TintColor:   p.TintColor,
			RelatedFood: p.RelatedFood,
		})
	}
	return recs, nil
}

func (c *Client) FetchCategories(ctx context.Context, token string) (map[string]string, error) {
	body, err := c.do(ctx, http.MethodGet, "/v1/recommendations/categories", token, nil)
	if err != nil {
		return nil, err
	}
	var categories map[string]string
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, &apperrors.OriginError{Op: "fetchCategories", Err: err}
	}
	return categories, nil
}

// do executes one origin request and returns the response body. Non-2xx
// responses become OriginError with the origin-supplied message.
func (c *Client) do(ctx context.Context, method, path, token string, payload any) ([]byte, error) {
	op := method + " " + path

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, &apperrors.OriginError{Op: op, Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	fullURL := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, &apperrors.OriginError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.OriginError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.OriginError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := originMessage(body)
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return nil, &apperrors.OriginError{Op: op, Status: resp.StatusCode, Message: message}
	}

	if method == http.MethodGet && c.responses != nil {
		c.cacheResponse(ctx, fullURL, resp, body)
	}
	return body, nil
}

// cacheResponse stores a raw GET response; failures are logged, a cache
// write must not fail the read that produced it.
func (c *Client) cacheResponse(ctx context.Context, fullURL string, resp *http.Response, body []byte) {
	_, err := c.responses.Put(ctx, &models.ServiceResponse{
		URL:         fullURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	})
	if err != nil {
		slog.Warn("failed to cache origin response", "url", fullURL, "error", err)
	}
}

func originMessage(body []byte) string {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Error
}

func decodeSession(body []byte, op string) (*service.LoginResult, error) {
	var payload sessionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &apperrors.OriginError{Op: op, Err: err}
	}

	result := &service.LoginResult{
		Token: payload.Token,
		Account: &models.Account{
			CacheMeta: models.CacheMeta{
				ID:     payload.Account.ID,
				UserID: payload.Account.UserID,
			},
			Email:          payload.Account.Email,
			SetupCompleted: payload.Account.SetupCompleted,
		},
	}
	if payload.Profile != nil {
		result.Profile = fromProfilePayload(payload.Profile)
	}
	return result, nil
}

func toProfilePayload(p *models.Profile) profilePayload {
	return profilePayload{
		ID:             p.ID,
		UserID:         p.UserID,
		Name:           p.Name,
		Birthdate:      p.Birthdate,
		HeightCM:       p.HeightCM,
		WeightKG:       p.WeightKG,
		OnDialysis:     p.OnDialysis,
		DiseaseStage:   p.DiseaseStage,
		Comorbidities:  []string(p.Comorbidities),
		SetupCompleted: p.SetupCompleted,
	}
}

func fromProfilePayload(p *profilePayload) *models.Profile {
	return &models.Profile{
		CacheMeta: models.CacheMeta{
			ID:     p.ID,
			UserID: p.UserID,
		},
		Name:           p.Name,
		Birthdate:      p.Birthdate,
		HeightCM:       p.HeightCM,
		WeightKG:       p.WeightKG,
		OnDialysis:     p.OnDialysis,
		DiseaseStage:   p.DiseaseStage,
		Comorbidities:  datatypes.JSONSlice[string](p.Comorbidities),
		SetupCompleted: p.SetupCompleted,
	}
}
