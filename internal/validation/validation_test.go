package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() FormInput {
	return FormInput{
		Name:     "Mechanical Keyboard",
		Price:    "79.99",
		Category: "Electronics",
		Stock:    "25",
	}
}

func TestValidateDraft_CleanDraftHasNoErrors(t *testing.T) {
	errs := ValidateDraft(validInput())
	assert.Empty(t, errs)
}

func TestValidateDraft_OptionalFieldsMayBeEmpty(t *testing.T) {
	in := validInput()
	in.Description = ""
	in.ImageURL = ""

	assert.Empty(t, ValidateDraft(in))
}

func TestValidateDraft_Name(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		message string
	}{
		{"empty", "", "Product name is required"},
		{"blank", "   ", "Product name is required"},
		{"too short", "ab", "Name must be at least 3 characters"},
		{"too short after trim", "  ab  ", "Name must be at least 3 characters"},
		{"too long", strings.Repeat("x", 51), "Name must be no more than 50 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Name = tt.value

			errs := ValidateDraft(in)
			assert.Equal(t, tt.message, errs["name"])
			assert.Len(t, errs, 1)
		})
	}
}

func TestValidateDraft_NameBoundaries(t *testing.T) {
	for _, value := range []string{"abc", strings.Repeat("x", 50)} {
		in := validInput()
		in.Name = value
		assert.Empty(t, ValidateDraft(in), "name %q should be valid", value)
	}
}

func TestValidateDraft_Price(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		message string
	}{
		{"empty", "", "Price is required"},
		{"not a number", "abc", "Price must be a valid number"},
		{"below minimum", "0", "Price must be at least $0.01"},
		{"above maximum", "1000000", "Price cannot exceed $999999.99"},
		{"three decimals", "10.999", "Price can have at most 2 decimal places"},
		{"negative", "-5", "Price must be at least $0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Price = tt.value

			errs := ValidateDraft(in)
			assert.Equal(t, tt.message, errs["price"])
			assert.Len(t, errs, 1)
		})
	}
}

func TestValidateDraft_PriceBoundaries(t *testing.T) {
	for _, value := range []string{"0.01", "999999.99", "10", "10.5", "10.55"} {
		in := validInput()
		in.Price = value
		assert.Empty(t, ValidateDraft(in), "price %q should be valid", value)
	}
}

func TestValidateDraft_Category(t *testing.T) {
	in := validInput()
	in.Category = ""

	errs := ValidateDraft(in)
	assert.Equal(t, "Category is required", errs["category"])
	assert.Len(t, errs, 1)
}

func TestValidateDraft_Stock(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		message string
	}{
		{"empty", "", "Stock quantity is required"},
		{"not a number", "many", "Stock must be a valid number"},
		{"negative", "-1", "Stock cannot be negative"},
		{"too large", "1000000", "Stock value is too large"},
		{"fractional", "3.7", "Stock must be a whole number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			in.Stock = tt.value

			errs := ValidateDraft(in)
			assert.Equal(t, tt.message, errs["stock"])
			assert.Len(t, errs, 1)
		})
	}
}

func TestValidateDraft_StockBoundaries(t *testing.T) {
	for _, value := range []string{"0", "999999"} {
		in := validInput()
		in.Stock = value
		assert.Empty(t, ValidateDraft(in), "stock %q should be valid", value)
	}
}

func TestValidateDraft_Description(t *testing.T) {
	in := validInput()
	in.Description = strings.Repeat("d", 201)

	errs := ValidateDraft(in)
	assert.Equal(t, "Description must be no more than 200 characters", errs["description"])

	in.Description = strings.Repeat("d", 200)
	assert.Empty(t, ValidateDraft(in))
}

func TestValidateDraft_ImageURL(t *testing.T) {
	in := validInput()
	in.ImageURL = "not a url"

	errs := ValidateDraft(in)
	assert.Equal(t, "Please enter a valid URL", errs["image_url"])

	in.ImageURL = "https://example.com/keyboard.png"
	assert.Empty(t, ValidateDraft(in))
}

func TestValidateDraft_MultipleFailuresReportEveryField(t *testing.T) {
	errs := ValidateDraft(FormInput{})

	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "price")
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "stock")
}

func TestParseDraft(t *testing.T) {
	in := FormInput{
		Name:        "  Desk Lamp  ",
		Price:       "19.90",
		Category:    "Home",
		Stock:       "12",
		Description: "Warm light",
		ImageURL:    "https://example.com/lamp.png",
	}

	draft := ParseDraft(in)
	assert.Equal(t, "Desk Lamp", draft.Name)
	assert.Equal(t, 19.90, draft.Price)
	assert.Equal(t, "Home", draft.Category)
	assert.Equal(t, 12, draft.Stock)
	assert.Equal(t, "Warm light", draft.Description)
	assert.Equal(t, "https://example.com/lamp.png", draft.ImageURL)
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{1234.5, "$1,234.50"},
		{0.01, "$0.01"},
		{999999.99, "$999,999.99"},
		{10, "$10.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.price))
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxLength int
		want      string
	}{
		{"longer than limit", "hello world", 5, "hello..."},
		{"shorter than limit", "hi", 5, "hi"},
		{"exactly at limit", "hello", 5, "hello"},
		{"trailing space trimmed", "hello world", 6, "hello..."},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateText(tt.text, tt.maxLength))
		})
	}
}
