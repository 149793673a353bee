// Package assist talks to the Gemini API to turn free text and receipt
// photos into structured trip suggestions.
package assist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"

	"github.com/romanwintercz/kniha-jizd-api/internal/domain"
)

// ErrNotConfigured is returned when no API key was provided. Handlers map
// it to a distinct status so the client can hide the AI features instead
// of retrying.
var ErrNotConfigured = errors.New("assist: GEMINI_API_KEY is not configured")

const (
	defaultModel   = "gemini-2.5-flash"
	defaultTimeout = 30 * time.Second

	// Suggestions for identical input are served from memory for a while;
	// the model is slow and the same dictation retry is common.
	cacheTTL     = 10 * time.Minute
	cacheCleanup = 30 * time.Minute
)

// Gemini parses natural language and receipt images through the Gemini
// API with a constrained JSON response schema.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	cache   *cache.Cache
	now     func() time.Time
}

// Option customizes a Gemini parser.
type Option func(*Gemini)

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(g *Gemini) {
		if model != "" {
			g.model = model
		}
	}
}

// WithTimeout overrides the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(g *Gemini) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// NewGemini constructs a parser. Returns ErrNotConfigured when apiKey is
// empty so the caller can degrade gracefully.
func NewGemini(ctx context.Context, apiKey string, opts ...Option) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("assist: create genai client: %w", err)
	}

	g := &Gemini{
		client:  client,
		model:   defaultModel,
		timeout: defaultTimeout,
		cache:   cache.New(cacheTTL, cacheCleanup),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// tripSchema constrains the model to the fields the trip form can prefill.
// Descriptions are in Czech to match the prompt language.
var tripSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"origin":      {Type: genai.TypeString, Description: "Místo výjezdu"},
		"destination": {Type: genai.TypeString, Description: "Cíl nebo popis trasy"},
		"distanceKm":  {Type: genai.TypeInteger, Description: "Ujetá vzdálenost v km (pokud je uvedena přímo)"},
		"endOdometer": {Type: genai.TypeInteger, Description: "Konečný stav tachometru (pokud je uveden)"},
		"fuelLiters":  {Type: genai.TypeNumber, Description: "Počet natankovaných litrů paliva"},
		"orderName":   {Type: genai.TypeString, Description: "Název zakázky"},
		"date":        {Type: genai.TypeString, Description: "Datum jízdy YYYY-MM-DD"},
		"vehicleName": {Type: genai.TypeString, Description: "Název vozidla"},
		"driverName":  {Type: genai.TypeString, Description: "Jméno řidiče"},
	},
	Required: []string{"origin", "destination"},
}

var receiptSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"date":       {Type: genai.TypeString, Description: "Datum tankování YYYY-MM-DD"},
		"fuelLiters": {Type: genai.TypeNumber, Description: "Počet natankovaných litrů paliva"},
		"fuelPrice":  {Type: genai.TypeNumber, Description: "Celková cena v Kč"},
	},
}

// ParseTripText extracts trip fields from free Czech text.
func (g *Gemini) ParseTripText(ctx context.Context, text string) (domain.TripSuggestion, error) {
	key := "trip:" + hashKey([]byte(text))
	if hit, ok := g.cache.Get(key); ok {
		return hit.(domain.TripSuggestion), nil
	}

	today := g.now().Format(domain.DateLayout)
	prompt := fmt.Sprintf(`Dnešní datum je: %s.

Analyzuj následující text a extrahuj informace o jízdě autem pro knihu jízd.

Pravidla pro trasu:
1. Pokud jde o jednoduchou cestu (A -> B), 'origin' je A a 'destination' je B.
2. Pokud jde o okružní jízdu nebo trasu s více body (např. "Teplice - Praha - Teplice"),
   nastav 'origin' jako počáteční bod ("Teplice") a do 'destination' napiš zbytek celé trasy ("Praha - Teplice").

Pravidla pro tachometr a tankování:
1. Hledej informace o konečném stavu tachometru (např. "tachometr 150500", "stav 20000", "konec 1500").
2. Hledej informace o tankování (např. "tankováno 40l", "40 litrů", "plná nádrž 55l").
3. Pokud je uvedena jen vzdálenost, použij ji pro 'distanceKm'. Pokud je uveden tachometr, použij 'endOdometer'.

Ostatní:
- Datum, řidič, vozidlo, zakázka (projekt).

Text: %q`, today, text)

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	var out domain.TripSuggestion
	if err := g.generate(ctx, contents, tripSchema, &out); err != nil {
		return domain.TripSuggestion{}, err
	}
	g.cache.Set(key, out, cache.DefaultExpiration)
	return out, nil
}

// ParseReceipt extracts date, liters, and total price from a photographed
// fuel receipt.
func (g *Gemini) ParseReceipt(ctx context.Context, image []byte, mimeType string) (domain.ReceiptSuggestion, error) {
	key := "receipt:" + hashKey(image)
	if hit, ok := g.cache.Get(key); ok {
		return hit.(domain.ReceiptSuggestion), nil
	}

	prompt := `Na obrázku je účtenka z čerpací stanice. Extrahuj datum tankování,
počet natankovaných litrů a celkovou cenu v Kč. Pokud některý údaj na
účtence není, vynech ho.`

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(image, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var out domain.ReceiptSuggestion
	if err := g.generate(ctx, contents, receiptSchema, &out); err != nil {
		return domain.ReceiptSuggestion{}, err
	}
	g.cache.Set(key, out, cache.DefaultExpiration)
	return out, nil
}

// generate runs one constrained-JSON completion and unmarshals the result
// into out.
func (g *Gemini) generate(ctx context.Context, contents []*genai.Content, schema *genai.Schema, out any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return fmt.Errorf("assist: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		// An empty completion means "nothing recognized", not an error.
		return nil
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("assist: decode model response: %w", err)
	}
	return nil
}

func hashKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
