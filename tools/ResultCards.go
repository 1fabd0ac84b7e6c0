package tools

/*
Reads metric cards ("Overall profit", "Expectancy", ...) out of the rendered result view
*/

import (
	"errors"
	"fmt"
	"stocksweep/config"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var ErrMetricNotFound = errors.New("metric card not found")

// ResultCard is one title/value pair shown after a strategy run
type ResultCard struct {
	Title string
	Value string
}

// ParseResultCards extracts every result card from an HTML fragment, in page order
func ParseResultCards(html string) ([]ResultCard, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse result view: %w", err)
	}

	var cards []ResultCard
	doc.Find(config.ResultCardQuery).Each(func(i int, card *goquery.Selection) {
		title := card.Find(config.ResultTitleQuery).First()
		if title.Length() == 0 {
			return
		}
		cards = append(cards, ResultCard{
			Title: collapseSpace(title.Text()),
			Value: collapseSpace(card.Find(config.ResultValueQuery).First().Text()),
		})
	})
	return cards, nil
}

// FindMetric picks the card whose title contains name, preferring an exact-case match
func FindMetric(cards []ResultCard, name string) (string, error) {
	for _, c := range cards {
		if strings.Contains(c.Title, name) {
			return c.Value, nil
		}
	}
	lower := strings.ToLower(name)
	for _, c := range cards {
		if strings.Contains(strings.ToLower(c.Title), lower) {
			return c.Value, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrMetricNotFound, name)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
