// SwipeEats - Swipe-Based Restaurant Discovery Engine
// Copyright 2026 SwipeEats contributors
// SPDX-License-Identifier: MIT
// https://github.com/swipeeats/swipeeats

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/swipeeats/swipeeats/internal/logging"
	"github.com/swipeeats/swipeeats/internal/recommend"
	"github.com/swipeeats/swipeeats/internal/recommend/storage"
	"github.com/swipeeats/swipeeats/internal/session"
)

func testRouter(t *testing.T, sprintSize int) http.Handler {
	t.Helper()

	logger := logging.NewTestLogger(io.Discard)

	cfg := recommend.DefaultConfig()
	cfg.Seed = 1
	engine, err := recommend.NewEngine(cfg, storage.NewMemoryStore(), logger)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	engine.SetCatalog([]recommend.Restaurant{
		{ID: "italian-0", Name: "Trattoria", Cuisine: "Italian", Rating: 4.6, Distance: 2},
		{ID: "chinese-1", Name: "Dragon Bowl", Cuisine: "Chinese", Rating: 4.1, Distance: 4},
		{ID: "dessert-2", Name: "Sugar Rush", Cuisine: "Desserts", Rating: 3.8, Distance: 1},
	})

	handler := NewHandler(engine, session.NewManager(sprintSize, logger), logger)
	return NewRouter(handler, RouterConfig{
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   1000,
		RateLimitWindow: time.Minute,
	})
}

// envelope mirrors APIResponse with raw data for per-test decoding.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *APIError       `json:"error"`
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("unmarshal envelope: %v (body %q)", err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("unmarshal data: %v (data %q)", err, string(env.Data))
	}
}

func TestHealth(t *testing.T) {
	router := testRouter(t, 20)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Status != "ok" {
		t.Errorf("envelope status = %q, want ok", env.Status)
	}

	var data struct {
		Status      string `json:"status"`
		Restaurants int    `json:"restaurants"`
		TotalSwipes int    `json:"total_swipes"`
	}
	decodeData(t, env, &data)
	if data.Status != "healthy" || data.Restaurants != 3 || data.TotalSwipes != 0 {
		t.Errorf("health = %+v, want healthy/3/0", data)
	}
}

func TestRestaurants(t *testing.T) {
	router := testRouter(t, 20)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/restaurants", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var data struct {
		Restaurants []recommend.Restaurant `json:"restaurants"`
	}
	decodeData(t, env, &data)
	if len(data.Restaurants) != 3 {
		t.Errorf("restaurants = %d, want 3", len(data.Restaurants))
	}
}

func TestDeck(t *testing.T) {
	router := testRouter(t, 20)

	t.Run("full deck", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/deck", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var data struct {
			Deck    []recommend.ScoredRestaurant `json:"deck"`
			Context recommend.SwipeContext       `json:"context"`
		}
		decodeData(t, env, &data)
		if len(data.Deck) != 3 {
			t.Fatalf("deck = %d cards, want 3", len(data.Deck))
		}
		for i := 1; i < len(data.Deck); i++ {
			if data.Deck[i].Score > data.Deck[i-1].Score {
				t.Errorf("deck not descending at %d", i)
			}
		}
	})

	t.Run("exclusion", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/deck?exclude=italian-0,chinese-1", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var data struct {
			Deck []recommend.ScoredRestaurant `json:"deck"`
		}
		decodeData(t, env, &data)
		if len(data.Deck) != 1 || data.Deck[0].ID != "dessert-2" {
			t.Errorf("deck = %+v, want only dessert-2", data.Deck)
		}
	})

	t.Run("unknown sprint", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodGet, "/api/v1/deck?sprint_id=nope", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if env.Error == nil || env.Error.Code != "SPRINT_NOT_FOUND" {
			t.Errorf("error = %+v, want SPRINT_NOT_FOUND", env.Error)
		}
	})
}

func TestRecordSwipe(t *testing.T) {
	router := testRouter(t, 20)

	t.Run("records", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodPost, "/api/v1/swipes", swipeRequest{
			RestaurantID: "italian-0",
			Liked:        true,
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var data struct {
			TotalSwipes int `json:"total_swipes"`
		}
		decodeData(t, env, &data)
		if data.TotalSwipes != 1 {
			t.Errorf("total_swipes = %d, want 1", data.TotalSwipes)
		}
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodPost, "/api/v1/swipes", swipeRequest{
			RestaurantID: "nope",
		})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
		if env.Error == nil || env.Error.Code != "RESTAURANT_NOT_FOUND" {
			t.Errorf("error = %+v, want RESTAURANT_NOT_FOUND", env.Error)
		}
	})

	t.Run("missing restaurant id", func(t *testing.T) {
		rec, env := doRequest(t, router, http.MethodPost, "/api/v1/swipes", swipeRequest{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if env.Error == nil || env.Error.Code != "MISSING_RESTAURANT_ID" {
			t.Errorf("error = %+v, want MISSING_RESTAURANT_ID", env.Error)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/swipes", bytes.NewReader([]byte("{broken")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestModelEndpoints(t *testing.T) {
	router := testRouter(t, 20)

	doRequest(t, router, http.MethodPost, "/api/v1/swipes", swipeRequest{RestaurantID: "italian-0", Liked: true})

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/model", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var model recommend.UserModel
	decodeData(t, env, &model)
	if model.TotalLikes != 1 {
		t.Errorf("TotalLikes = %d, want 1", model.TotalLikes)
	}

	rec, _ = doRequest(t, router, http.MethodPost, "/api/v1/model/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d, want 200", rec.Code)
	}

	_, env = doRequest(t, router, http.MethodGet, "/api/v1/model", nil)
	decodeData(t, env, &model)
	if model.TotalSwipes() != 0 {
		t.Errorf("TotalSwipes after reset = %d, want 0", model.TotalSwipes())
	}
}

func TestSprintLifecycle(t *testing.T) {
	router := testRouter(t, 2)

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/sprints", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("start status = %d, want 201", rec.Code)
	}
	var sprint session.Sprint
	decodeData(t, env, &sprint)
	if sprint.ID == "" || sprint.Number != 1 || sprint.Size != 2 {
		t.Fatalf("sprint = %+v, want fresh number 1 size 2", sprint)
	}

	// First swipe: a like carrying its deal-time score.
	rec, env = doRequest(t, router, http.MethodPost, "/api/v1/sprints/"+sprint.ID+"/swipes", swipeRequest{
		RestaurantID: "italian-0",
		Liked:        true,
		Score:        0.9,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("swipe status = %d, want 200", rec.Code)
	}
	decodeData(t, env, &sprint)
	if sprint.SwipeCount != 1 || sprint.Complete {
		t.Fatalf("sprint after first swipe = %+v", sprint)
	}

	// The deck for this sprint must exclude the swiped card.
	rec, env = doRequest(t, router, http.MethodGet, "/api/v1/deck?sprint_id="+sprint.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("deck status = %d, want 200", rec.Code)
	}
	var deckData struct {
		Deck []recommend.ScoredRestaurant `json:"deck"`
	}
	decodeData(t, env, &deckData)
	if len(deckData.Deck) != 2 {
		t.Fatalf("deck = %d cards, want 2 after one swipe", len(deckData.Deck))
	}
	for _, card := range deckData.Deck {
		if card.ID == "italian-0" {
			t.Error("swiped card redealt within the sprint")
		}
	}

	// Final swipe completes the sprint; the like wins best match.
	rec, env = doRequest(t, router, http.MethodPost, "/api/v1/sprints/"+sprint.ID+"/swipes", swipeRequest{
		RestaurantID: "chinese-1",
		Liked:        false,
		Score:        0.95,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("final swipe status = %d, want 200", rec.Code)
	}
	decodeData(t, env, &sprint)
	if !sprint.Complete {
		t.Fatal("sprint not complete after final swipe")
	}
	if sprint.BestMatch == nil || sprint.BestMatch.ID != "italian-0" {
		t.Errorf("best match = %+v, want italian-0", sprint.BestMatch)
	}

	// Completion folds into the persisted model's sprint tally.
	var model recommend.UserModel
	_, env = doRequest(t, router, http.MethodGet, "/api/v1/model", nil)
	decodeData(t, env, &model)
	if model.SprintCount != 1 {
		t.Errorf("SprintCount = %d, want 1", model.SprintCount)
	}

	// Further swipes conflict.
	rec, env = doRequest(t, router, http.MethodPost, "/api/v1/sprints/"+sprint.ID+"/swipes", swipeRequest{
		RestaurantID: "dessert-2",
		Liked:        true,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("post-complete swipe status = %d, want 409", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "SPRINT_COMPLETE" {
		t.Errorf("error = %+v, want SPRINT_COMPLETE", env.Error)
	}

	// Sprint state remains retrievable.
	rec, env = doRequest(t, router, http.MethodGet, "/api/v1/sprints/"+sprint.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get sprint status = %d, want 200", rec.Code)
	}
	decodeData(t, env, &sprint)
	if !sprint.Complete {
		t.Error("persisted sprint not complete")
	}
}

func TestSprintSwipeErrors(t *testing.T) {
	router := testRouter(t, 20)

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/sprints/nope/swipes", swipeRequest{
		RestaurantID: "italian-0",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "SPRINT_NOT_FOUND" {
		t.Errorf("error = %+v, want SPRINT_NOT_FOUND", env.Error)
	}

	_, env = doRequest(t, router, http.MethodPost, "/api/v1/sprints", nil)
	var sprint session.Sprint
	decodeData(t, env, &sprint)

	rec, env = doRequest(t, router, http.MethodPost, "/api/v1/sprints/"+sprint.ID+"/swipes", swipeRequest{
		RestaurantID: "nope",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "RESTAURANT_NOT_FOUND" {
		t.Errorf("error = %+v, want RESTAURANT_NOT_FOUND", env.Error)
	}
}

func TestSprintSwipeAfterCompleteDoesNotTrainModel(t *testing.T) {
	router := testRouter(t, 1)

	_, env := doRequest(t, router, http.MethodPost, "/api/v1/sprints", nil)
	var sprint session.Sprint
	decodeData(t, env, &sprint)

	rec, _ := doRequest(t, router, http.MethodPost, "/api/v1/sprints/"+sprint.ID+"/swipes", swipeRequest{
		RestaurantID: "italian-0",
		Liked:        true,
		Score:        0.8,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("completing swipe status = %d, want 200", rec.Code)
	}

	var model recommend.UserModel
	_, env = doRequest(t, router, http.MethodGet, "/api/v1/model", nil)
	decodeData(t, env, &model)
	before := model.TotalSwipes()

	rec, env = doRequest(t, router, http.MethodPost, "/api/v1/sprints/"+sprint.ID+"/swipes", swipeRequest{
		RestaurantID: "chinese-1",
		Liked:        false,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "SPRINT_COMPLETE" {
		t.Errorf("error = %+v, want SPRINT_COMPLETE", env.Error)
	}

	// The rejected swipe must leave the model untouched.
	_, env = doRequest(t, router, http.MethodGet, "/api/v1/model", nil)
	decodeData(t, env, &model)
	if got := model.TotalSwipes(); got != before {
		t.Errorf("TotalSwipes after rejected swipe = %d, want %d", got, before)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := testRouter(t, 20)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestParseCommaSeparated(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a,b,c", 3},
		{" a , , b ", 2},
	}

	for _, tt := range tests {
		if got := parseCommaSeparated(tt.in); len(got) != tt.want {
			t.Errorf("parseCommaSeparated(%q) = %v, want %d entries", tt.in, got, tt.want)
		}
	}
}
