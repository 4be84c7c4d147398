package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tmorel/finsight/backend/internal/contracts"
)

const maxNewsItems = 10

// News fetches recent headlines for a ticker by scraping the provider's
// quote news page.
func (c *Client) News(ctx context.Context, symbol string) ([]contracts.NewsItem, error) {
	fullURL := fmt.Sprintf("%s/quote/%s/news", c.newsBaseURL, url.PathEscape(symbol))

	html, err := c.fetchHTML(ctx, fullURL)
	if err != nil {
		return nil, fmt.Errorf("news %s: %w", symbol, err)
	}

	items := c.parseNewsHTML(html)

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"items":  len(items),
	}).Debug("Fetched news")

	return items, nil
}

// parseNewsHTML extracts headline items from a quote news page.
func (c *Client) parseNewsHTML(html string) []contracts.NewsItem {
	items := make([]contracts.NewsItem, 0, maxNewsItems)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return items
	}

	doc.Find("li.stream-item, li.js-stream-content").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("h3").First().Text())
		href, _ := sel.Find("a").First().Attr("href")
		if title == "" || href == "" {
			return true
		}

		if strings.HasPrefix(href, "/") {
			href = c.newsBaseURL + href
		}

		item := contracts.NewsItem{
			Title: title,
			URL:   href,
		}

		// Footer holds "Publisher • 2 hours ago".
		footer := strings.TrimSpace(sel.Find("div.publishing").First().Text())
		if footer != "" {
			parts := strings.SplitN(footer, "•", 2)
			item.Publisher = strings.TrimSpace(parts[0])
			if len(parts) == 2 {
				item.PublishedAt = strings.TrimSpace(parts[1])
			}
		}

		items = append(items, item)
		return len(items) < maxNewsItems
	})

	return items
}
