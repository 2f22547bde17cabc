// Package catalog fetches the read-only room reference data: two JSON
// collections (rooms and availability rules) served as static files,
// joined by roomId. The fetch is one-shot per session; there is no
// pagination, no auth and no retry.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"roomdesk/internal/metrics"
	"roomdesk/internal/models"
)

// Client fetches the room catalog over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger

	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient constructs a catalog client for the given base URL.
func NewClient(baseURL string, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// UseRedisCache configures optional Redis caching for catalog reads.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// roomRecord is the wire shape of one room.
type roomRecord struct {
	RoomID               int64   `json:"roomId"`
	LocationID           int64   `json:"locationId"`
	LocationName         string  `json:"locationName"`
	RoomName             string  `json:"roomName"`
	PricePerDayPerPerson float64 `json:"pricePerDayPerPerson"`
	GuestCapacity        int     `json:"guestCapacity"`
}

// ruleRecord is the wire shape of one availability rule. Optional fields
// are pointers so that absence is distinguishable from zero.
type ruleRecord struct {
	RuleID                   int64    `json:"ruleId"`
	RoomID                   int64    `json:"roomId"`
	StayWindowStart          string   `json:"stayWindowStart"`
	StayWindowEnd            string   `json:"stayWindowEnd"`
	BookingWindowStart       *string  `json:"bookingWindowStart,omitempty"`
	BookingWindowEnd         *string  `json:"bookingWindowEnd,omitempty"`
	AllowedArrivalWeekdays   []string `json:"allowedArrivalWeekdays,omitempty"`
	AllowedDepartureWeekdays []string `json:"allowedDepartureWeekdays,omitempty"`
	MinStayNights            int      `json:"minStayNights"`
	MaxStayNights            int      `json:"maxStayNights"`
	MinDeviationDays         *int     `json:"minDeviationDays,omitempty"`
	MaxDeviationDays         *int     `json:"maxDeviationDays,omitempty"`
}

// FetchCatalog loads rooms and rules and joins them by roomId. Records
// that fail validation are skipped with a warning; a transport or parse
// failure fails the whole fetch and the caller falls back to an empty
// room set.
func (c *Client) FetchCatalog(ctx context.Context) ([]models.Room, error) {
	var roomRecs []roomRecord
	if err := c.fetchJSON(ctx, "rooms.json", "catalog:rooms", &roomRecs); err != nil {
		metrics.IncCatalogFetchError()
		return nil, fmt.Errorf("fetch rooms: %w", err)
	}

	var ruleRecs []ruleRecord
	if err := c.fetchJSON(ctx, "availability-rules.json", "catalog:rules", &ruleRecs); err != nil {
		metrics.IncCatalogFetchError()
		return nil, fmt.Errorf("fetch availability rules: %w", err)
	}

	rulesByRoom := make(map[int64][]models.AvailabilityRule)
	for _, rr := range ruleRecs {
		rule, err := c.convertRule(rr)
		if err != nil {
			c.logger.Warn().Err(err).Int64("rule_id", rr.RuleID).Msg("skipping invalid availability rule")
			continue
		}
		rulesByRoom[rule.RoomID] = append(rulesByRoom[rule.RoomID], *rule)
	}

	rooms := make([]models.Room, 0, len(roomRecs))
	for _, rr := range roomRecs {
		room := models.Room{
			RoomID:               rr.RoomID,
			LocationID:           rr.LocationID,
			LocationName:         rr.LocationName,
			RoomName:             rr.RoomName,
			PricePerDayPerPerson: rr.PricePerDayPerPerson,
			GuestCapacity:        rr.GuestCapacity,
			Rules:                rulesByRoom[rr.RoomID],
		}
		if err := room.Validate(); err != nil {
			c.logger.Warn().Err(err).Int64("room_id", rr.RoomID).Msg("skipping invalid room")
			continue
		}
		rooms = append(rooms, room)
	}

	c.logger.Info().Int("rooms", len(rooms)).Int("rules", len(ruleRecs)).Msg("catalog loaded")
	return rooms, nil
}

func (c *Client) convertRule(rr ruleRecord) (*models.AvailabilityRule, error) {
	start, err := models.ParseDate(rr.StayWindowStart)
	if err != nil {
		return nil, fmt.Errorf("stay window start: %w", err)
	}
	end, err := models.ParseDate(rr.StayWindowEnd)
	if err != nil {
		return nil, fmt.Errorf("stay window end: %w", err)
	}

	rule := &models.AvailabilityRule{
		RuleID:          rr.RuleID,
		RoomID:          rr.RoomID,
		StayWindowStart: start,
		StayWindowEnd:   end,
		MinStayNights:   rr.MinStayNights,
		MaxStayNights:   rr.MaxStayNights,
	}

	if rr.BookingWindowStart != nil {
		t, err := models.ParseDate(*rr.BookingWindowStart)
		if err != nil {
			return nil, fmt.Errorf("booking window start: %w", err)
		}
		rule.BookingWindow.Start = &t
	}
	if rr.BookingWindowEnd != nil {
		t, err := models.ParseDate(*rr.BookingWindowEnd)
		if err != nil {
			return nil, fmt.Errorf("booking window end: %w", err)
		}
		rule.BookingWindow.End = &t
	}

	if rule.AllowedArrivalWeekdays, err = models.ParseWeekdays(rr.AllowedArrivalWeekdays); err != nil {
		return nil, err
	}
	if rule.AllowedDepartureWeekdays, err = models.ParseWeekdays(rr.AllowedDepartureWeekdays); err != nil {
		return nil, err
	}

	// Deviation defaults: min 0, max 999 when absent.
	if rr.MinDeviationDays != nil {
		rule.MinDeviationDays = *rr.MinDeviationDays
	}
	if rr.MaxDeviationDays != nil {
		rule.MaxDeviationDays = *rr.MaxDeviationDays
	} else {
		rule.MaxDeviationDays = models.DefaultMaxDeviationDays
	}

	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

func (c *Client) fetchJSON(ctx context.Context, path, cacheKey string, out any) error {
	if c.readCache(ctx, cacheKey, out) {
		return nil
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return err
	}

	c.writeCache(ctx, cacheKey, out)
	return nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}
