package validation

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"catalog-desk/internal/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormInput is a product draft as it arrives from a form: every field a raw
// string, untouched by any parsing.
type FormInput struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Stock       string `json:"stock"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// pricePattern caps prices at two decimal digits; the check is textual on
// purpose, so "10.999" fails even though it is numerically in range.
var pricePattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

var usd = message.NewPrinter(language.AmericanEnglish)

// ValidateDraft checks every field of a draft independently and returns a
// field name to message mapping. An empty map means the draft is valid.
func ValidateDraft(in FormInput) map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		errs["name"] = "Product name is required"
	case len([]rune(name)) < domain.NameMinLength:
		errs["name"] = fmt.Sprintf("Name must be at least %d characters", domain.NameMinLength)
	case len([]rune(name)) > domain.NameMaxLength:
		errs["name"] = fmt.Sprintf("Name must be no more than %d characters", domain.NameMaxLength)
	}

	rawPrice := strings.TrimSpace(in.Price)
	if rawPrice == "" {
		errs["price"] = "Price is required"
	} else if price, err := strconv.ParseFloat(rawPrice, 64); err != nil {
		errs["price"] = "Price must be a valid number"
	} else if price < domain.PriceMin {
		errs["price"] = fmt.Sprintf("Price must be at least $%v", domain.PriceMin)
	} else if price > domain.PriceMax {
		errs["price"] = fmt.Sprintf("Price cannot exceed $%v", domain.PriceMax)
	} else if !pricePattern.MatchString(rawPrice) {
		errs["price"] = "Price can have at most 2 decimal places"
	}

	if strings.TrimSpace(in.Category) == "" {
		errs["category"] = "Category is required"
	}

	rawStock := strings.TrimSpace(in.Stock)
	if rawStock == "" {
		errs["stock"] = "Stock quantity is required"
	} else if stock, err := strconv.ParseFloat(rawStock, 64); err != nil {
		errs["stock"] = "Stock must be a valid number"
	} else if whole := int(math.Trunc(stock)); whole < domain.StockMin {
		errs["stock"] = "Stock cannot be negative"
	} else if whole > domain.StockMax {
		errs["stock"] = "Stock value is too large"
	} else if stock != math.Trunc(stock) {
		errs["stock"] = "Stock must be a whole number"
	}

	if in.Description != "" && len([]rune(in.Description)) > domain.DescriptionMaxLength {
		errs["description"] = fmt.Sprintf("Description must be no more than %d characters", domain.DescriptionMaxLength)
	}

	if in.ImageURL != "" && !isValidURL(in.ImageURL) {
		errs["image_url"] = "Please enter a valid URL"
	}

	return errs
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}

// ParseDraft converts a form input into a typed draft. It assumes ValidateDraft
// returned no errors; numeric parse failures at this point yield zero values.
func ParseDraft(in FormInput) domain.Draft {
	price, _ := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	stock, _ := strconv.ParseFloat(strings.TrimSpace(in.Stock), 64)
	return domain.Draft{
		Name:        strings.TrimSpace(in.Name),
		Price:       price,
		Category:    strings.TrimSpace(in.Category),
		Stock:       int(math.Trunc(stock)),
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
}

// FormatPrice renders a price as US dollars with thousands separators,
// e.g. 1234.5 becomes "$1,234.50".
func FormatPrice(price float64) string {
	return usd.Sprintf("$%.2f", price)
}

// TruncateText cuts text to at most maxLength characters and appends an
// ellipsis, trimming whitespace left dangling at the cut.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}
