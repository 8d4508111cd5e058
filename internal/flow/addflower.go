package flow

import (
	"fmt"
	"strconv"
	"strings"
)

// NewAddFlowerDefinition describes the admin catalog-entry flow: name,
// description, price, category, then an optional photo URL ("skip" to omit).
// It runs on the same machinery as the bouquet builder and is only reachable
// from the admin area.
func NewAddFlowerDefinition() *Definition {
	return &Definition{
		Name: "add_flower",
		Steps: []Step{
			{Tag: "name", Prompt: "Flower name"},
			{Tag: "description", Prompt: "Short description"},
			{
				Tag:    "price",
				Prompt: "Price, whole number",
				Validate: func(v string) error {
					n, err := strconv.Atoi(v)
					if err != nil || n <= 0 {
						return fmt.Errorf("price must be a positive number, got %q", v)
					}
					return nil
				},
			},
			{
				Tag:     "category",
				Prompt:  "Category",
				Options: []string{"roses", "tulips", "peonies", "chrysanthemums", "mixed", "other"},
			},
			{
				Tag:    "photo",
				Prompt: "Photo URL, or \"skip\"",
				Validate: func(v string) error {
					if v == "skip" || strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
						return nil
					}
					return fmt.Errorf("expected a photo URL or \"skip\", got %q", v)
				},
			},
		},
	}
}
