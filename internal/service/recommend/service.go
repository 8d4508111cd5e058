// Package recommend produces bouquet suggestions for an occasion and
// budget, backed by an LLM chain when one is configured and by a static
// catalog-driven fallback when not.
package recommend

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/floralab/bloombot/internal/config"
	"github.com/floralab/bloombot/internal/model/catalog"
)

// Catalog supplies the live flower list for prompt context.
type Catalog interface {
	Flowers(ctx context.Context, category string) ([]catalog.Flower, error)
}

// Service generates recommendations. With no model configured it degrades
// to the fallback suggestion instead of failing.
type Service struct {
	catalog Catalog
	chain   compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the recommendation service. The LLM chain is optional:
// when cfg carries no credentials the service still works via the fallback.
func NewService(ctx context.Context, cat Catalog, cfg config.AIConfig) (*Service, error) {
	s := &Service{catalog: cat}

	if !cfg.Enabled() {
		return s, nil
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	template := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(template)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile recommendation chain: %w", err)
	}

	s.chain = runnable
	return s, nil
}

// ModelEnabled reports whether an LLM chain is wired in.
func (s *Service) ModelEnabled() bool { return s.chain != nil }

// Recommend suggests a bouquet for the given occasion and budget. Model
// errors degrade to the fallback suggestion; the caller always gets text.
func (s *Service) Recommend(ctx context.Context, occasion, budget string) (string, error) {
	flowers, err := s.catalog.Flowers(ctx, "")
	if err != nil {
		return "", fmt.Errorf("load catalog: %w", err)
	}

	if s.chain == nil {
		return fallback(occasion, budget, flowers), nil
	}

	response, err := s.chain.Invoke(ctx, map[string]any{
		"system": systemPrompt(flowers),
		"query":  fmt.Sprintf("Recommend a bouquet for: occasion %s, budget %s", occasion, budget),
	})
	if err != nil {
		log.Printf("[recommend] model call failed, using fallback: %v", err)
		return fallback(occasion, budget, flowers), nil
	}

	return response.Content, nil
}

func systemPrompt(flowers []catalog.Flower) string {
	var b strings.Builder
	b.WriteString("You are a florist consultant. Available bouquets:\n")
	for _, f := range flowers {
		fmt.Fprintf(&b, "- %s: %s, price %d\n", f.Name, f.Description, f.Price)
	}
	b.WriteString("Recommend one bouquet from the list and explain briefly why it fits.")
	return b.String()
}

func fallback(occasion, budget string, flowers []catalog.Flower) string {
	if occasion == "" {
		occasion = "unspecified"
	}
	if budget == "" {
		budget = "unspecified"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on your wishes (occasion: %s, budget: %s) we suggest:\n", occasion, budget)
	if len(flowers) == 0 {
		b.WriteString("the catalog is being restocked, please check back soon.")
		return b.String()
	}
	fmt.Fprintf(&b, "%s — %s, price %d.\n", flowers[0].Name, flowers[0].Description, flowers[0].Price)
	if len(flowers) > 1 {
		b.WriteString("Also worth a look:\n")
		for _, f := range flowers[1:min(3, len(flowers))] {
			fmt.Fprintf(&b, "- %s, %d\n", f.Name, f.Price)
		}
	}
	return b.String()
}
