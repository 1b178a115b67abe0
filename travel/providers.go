package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// Provider is an external, non-generative activity source. Implementations
// return loose records whose key names are not guaranteed; the normalizer
// deals with that. Any transport-level failure is equivalent to zero
// results for the caller.
type Provider interface {
	Name() string
	FetchActivities(ctx context.Context, destination string, day Date, budget float64, mood string) ([]map[string]any, error)
}

const providerCacheTTL = 10 * time.Minute

// SupabaseProvider queries a curated activity listing filtered by
// destination, mood and budget.
type SupabaseProvider struct {
	BaseURL string
	APIKey  string

	httpClient *http.Client
	cache      *cache.Cache
}

// NewSupabaseProvider reads SUPABASE_URL and SUPABASE_KEY from the
// environment. Returns nil when the provider is not configured.
func NewSupabaseProvider() *SupabaseProvider {
	baseURL := os.Getenv("SUPABASE_URL")
	if baseURL == "" {
		return nil
	}
	return &SupabaseProvider{
		BaseURL:    baseURL,
		APIKey:     os.Getenv("SUPABASE_KEY"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache.New(providerCacheTTL, 2*providerCacheTTL),
	}
}

func (p *SupabaseProvider) Name() string { return "supabase" }

func (p *SupabaseProvider) FetchActivities(ctx context.Context, destination string, day Date, budget float64, mood string) ([]map[string]any, error) {
	cacheKey := fmt.Sprintf("%s|%s|%.2f", destination, mood, budget)
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached.([]map[string]any), nil
	}

	query := url.Values{}
	query.Set("destination", destination)
	query.Set("mood", mood)
	query.Set("max_budget", strconv.FormatFloat(budget, 'f', 2, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/activities?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", p.APIKey)

	records, err := fetchRecordList(p.httpClient, req, nil)
	if err != nil {
		return nil, err
	}
	p.cache.Set(cacheKey, records, cache.DefaultExpiration)
	return records, nil
}

// ViatorProvider queries the Viator products API by destination and date.
type ViatorProvider struct {
	BaseURL string
	APIKey  string

	httpClient *http.Client
	cache      *cache.Cache
}

const viatorBaseURL = "https://api.viator.com/v1"

// NewViatorProvider reads VIATOR_API_KEY from the environment. Returns nil
// when the provider is not configured.
func NewViatorProvider() *ViatorProvider {
	apiKey := os.Getenv("VIATOR_API_KEY")
	if apiKey == "" {
		return nil
	}
	return &ViatorProvider{
		BaseURL:    viatorBaseURL,
		APIKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cache:      cache.New(providerCacheTTL, 2*providerCacheTTL),
	}
}

func (p *ViatorProvider) Name() string { return "viator" }

func (p *ViatorProvider) FetchActivities(ctx context.Context, destination string, day Date, budget float64, mood string) ([]map[string]any, error) {
	cacheKey := destination + "|" + day.String()
	if cached, ok := p.cache.Get(cacheKey); ok {
		return cached.([]map[string]any), nil
	}

	query := url.Values{}
	query.Set("destId", destination)
	query.Set("date", day.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/products?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("exp-api-key", p.APIKey)

	records, err := fetchRecordList(p.httpClient, req, func(body map[string]any) []any {
		products, _ := body["products"].([]any)
		return products
	})
	if err != nil {
		return nil, err
	}
	p.cache.Set(cacheKey, records, cache.DefaultExpiration)
	return records, nil
}

// fetchRecordList runs a request and decodes a list of loose records.
// When unwrap is nil the body itself must be a JSON array; otherwise the
// body is an object and unwrap picks the list out of it.
func fetchRecordList(client *http.Client, req *http.Request, unwrap func(map[string]any) []any) ([]map[string]any, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("provider error: %s", resp.Status)
	}

	var items []any
	if unwrap == nil {
		if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
			return nil, err
		}
	} else {
		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, err
		}
		items = unwrap(body)
	}

	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records, nil
}

// LodgingService simulates an accommodation search. A real marketplace
// integration would replace it without changing the call sites.
type LodgingService struct{}

func (LodgingService) Find(destination string, checkIn, checkOut Date, budget float64) Accommodation {
	return Accommodation{
		Name:          "Hotel " + destination,
		Type:          "hotel",
		Location:      destination,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		PricePerNight: budget / 2,
		BookingURL:    "https://example.com",
	}
}

// TransportService simulates an intercity transport search.
type TransportService struct{}

func (TransportService) Find(fromCity, toCity string, day Date) Transportation {
	departure, _ := ParseClockTime("10:00")
	arrival, _ := ParseClockTime("12:00")
	return Transportation{
		Type:          "train",
		FromLocation:  fromCity,
		ToLocation:    toCity,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		Cost:          50.0,
		BookingURL:    "https://example.com",
	}
}

func providerNames(providers []Provider) []string {
	names := make([]string, 0, len(providers)+1)
	for _, p := range providers {
		names = append(names, p.Name())
	}
	names = append(names, SourceLLM)
	return names
}
