package flow

import (
	"encoding/json"
	"fmt"
)

// BouquetBasePrice is the price of a custom bouquet before addons, in minor
// currency units.
const BouquetBasePrice = 2000

// addonSurcharge is the fixed per-option surcharge table. The derived price
// is base plus the sum over selected addons, independent of selection order.
var addonSurcharge = map[string]int{
	"ribbon": 100,
	"luxury": 300,
	"toy":    400,
	"candy":  200,
	"none":   0,
}

// Bouquet is the outcome of a completed bouquet flow.
type Bouquet struct {
	Color    string   `json:"color"`
	Quantity string   `json:"quantity"`
	Addons   []string `json:"addons"`
	Price    int      `json:"price"`
}

// NewBouquetDefinition describes the three-step custom bouquet builder:
// color, then stem count, then a multi-select of addons.
func NewBouquetDefinition() *Definition {
	return &Definition{
		Name: "bouquet",
		Steps: []Step{
			{
				Tag:     "color",
				Prompt:  "Pick the main color of your bouquet",
				Options: []string{"red", "yellow", "blue", "purple", "green", "white", "orange", "mix"},
			},
			{
				Tag:     "quantity",
				Prompt:  "How many stems?",
				Options: []string{"5", "7", "11", "15", "21", "25"},
			},
			{
				Tag:     "addons",
				Prompt:  "Any addons? Pick one or more, comma separated",
				Options: []string{"ribbon", "luxury", "toy", "candy", "none"},
				Multi:   true,
			},
		},
	}
}

// BouquetPrice derives the price for a set of selected addons.
func BouquetPrice(addons []string) int {
	price := BouquetBasePrice
	for _, a := range addons {
		price += addonSurcharge[a]
	}
	return price
}

// BouquetFromFields assembles the priced bouquet from finalized flow fields.
func BouquetFromFields(f Fields) (Bouquet, error) {
	color, _ := f["color"].(string)
	quantity, _ := f["quantity"].(string)
	addons, _ := f["addons"].([]string)
	if color == "" || quantity == "" || len(addons) == 0 {
		return Bouquet{}, fmt.Errorf("incomplete bouquet fields: %v", f)
	}
	return Bouquet{
		Color:    color,
		Quantity: quantity,
		Addons:   addons,
		Price:    BouquetPrice(addons),
	}, nil
}

// Summary renders the one-line cart description for a bouquet.
func (b Bouquet) Summary() string {
	addons, _ := json.Marshal(b.Addons)
	return fmt.Sprintf("custom bouquet: %s, %s stems, addons %s, %d", b.Color, b.Quantity, addons, b.Price)
}
