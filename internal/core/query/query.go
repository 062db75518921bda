// Package query turns a free-text shopping message into a structured
// [domain.FilterSet]. Extraction is vocabulary and pattern driven:
// each dimension walks its ordered token list once and the first
// substring hit wins, so list order is part of the contract.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vastrakart/assistant/internal/core/domain"
)

var categories = []string{
	"kurta", "saree", "jeans", "jacket", "t-shirt", "tshirt", "shirt",
	"dress", "sneakers", "shoes", "blazer", "trousers", "pants",
}

var colors = []string{
	"red", "blue", "black", "white", "green", "yellow", "pink",
	"purple", "orange", "brown", "grey", "gray", "beige", "maroon",
	"navy", "golden",
}

var brands = []string{
	"nike", "adidas", "puma", "manyavar", "fabindia", "zara", "h&m",
	"levis", "levi's", "raymond", "biba", "sabyasachi",
}

var materials = []string{
	"cotton", "silk", "khaadi", "khadi", "leather", "denim", "wool",
	"linen", "polyester", "canvas", "synthetic",
}

var maxPricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)under ₹?(\d+)`),
	regexp.MustCompile(`(?i)below ₹?(\d+)`),
	regexp.MustCompile(`(?i)less than ₹?(\d+)`),
	regexp.MustCompile(`(?i)max ₹?(\d+)`),
	regexp.MustCompile(`(?i)₹?(\d+) or less`),
	regexp.MustCompile(`(?i)up to ₹?(\d+)`),
}

var minPricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)above ₹?(\d+)`),
	regexp.MustCompile(`(?i)over ₹?(\d+)`),
	regexp.MustCompile(`(?i)more than ₹?(\d+)`),
	regexp.MustCompile(`(?i)min ₹?(\d+)`),
}

var rangePattern = regexp.MustCompile(`(?i)₹?(\d+)\s*(?:to|-)\s*₹?(\d+)`)

// Interpret extracts catalog filters from text. It is pure and total:
// any input, including the empty string, yields a FilterSet with zero
// or more populated dimensions.
func Interpret(text string) domain.FilterSet {
	var f domain.FilterSet
	lower := strings.ToLower(text)

	f.Category = firstToken(lower, categories)
	f.Color = firstToken(lower, colors)
	f.Brand = firstToken(lower, brands)
	f.Material = firstToken(lower, materials)
	f.Gender = gender(lower)

	if n, ok := firstNumber(text, maxPricePatterns); ok {
		f.MaxPrice = &n
	}
	if n, ok := firstNumber(text, minPricePatterns); ok {
		f.MinPrice = &n
	}

	// A range overwrites both bounds regardless of what the single
	// bound patterns matched.
	if m := rangePattern.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		f.MinPrice = &lo
		f.MaxPrice = &hi
	}

	return f
}

func firstToken(lower string, vocabulary []string) string {
	for _, token := range vocabulary {
		if strings.Contains(lower, token) {
			return token
		}
	}
	return ""
}

// gender keeps the shipped condition exactly, && binding tighter
// than ||. Note "women" contains "men", so the first branch also
// fires for female queries.
func gender(lower string) string {
	if strings.Contains(lower, "men") ||
		strings.Contains(lower, "male") && !strings.Contains(lower, "female") {
		return "men"
	}
	if strings.Contains(lower, "women") || strings.Contains(lower, "female") {
		return "women"
	}
	return ""
}

func firstNumber(text string, patterns []*regexp.Regexp) (int, bool) {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}
