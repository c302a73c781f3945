package folio

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

const defaultFeedLimit = 20

// feedOptions control feed rendering. Limit truncates the supplied page of
// posts; IncludeContent toggles full item bodies.
type feedOptions struct {
	Limit          int
	IncludeContent bool
}

// feedItem is the single logical projection shared by all three feed
// formats. Field semantics: ID doubles as the permalink, Description falls
// back to the title, Published falls back to the creation time — an emitted
// item always has a link, a description, and a date.
type feedItem struct {
	Title       string
	Link        string
	ID          string
	Description string
	Content     string
	Author      string
	Categories  []string
	Published   time.Time
	Image       string
}

// buildFeedItems maps a page of published posts to feed items in the order
// supplied. Callers own the sort.
func buildFeedItems(posts []Post, cfg SiteConfig, opts feedOptions) []feedItem {
	if opts.Limit > 0 && len(posts) > opts.Limit {
		posts = posts[:opts.Limit]
	}
	items := make([]feedItem, 0, len(posts))
	for _, p := range posts {
		author := p.Author
		if author == "" {
			author = cfg.Author
		}
		item := feedItem{
			Title:       p.Title,
			Link:        BuildURL(cfg.URL, "blog", p.Slug),
			ID:          BuildURL(cfg.URL, "blog", p.Slug),
			Description: p.Description(),
			Author:      author,
			Categories:  ParseTags(p.Tags),
			Published:   p.FeedDate(),
			Image:       p.CoverImage,
		}
		if opts.IncludeContent {
			item.Content = p.Content
		}
		items = append(items, item)
	}
	return items
}

// --- RSS 2.0 ---

type rssXML struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	AtomNS    string     `xml:"xmlns:atom,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string      `xml:"title"`
	Link        string      `xml:"link"`
	Description string      `xml:"description"`
	Copyright   string      `xml:"copyright,omitempty"`
	SelfLink    rssSelfLink `xml:"atom:link"`
	Items       []rssItem   `xml:"item"`
}

type rssSelfLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	GUID        string        `xml:"guid"`
	Description string        `xml:"description"`
	Content     string        `xml:"content:encoded,omitempty"`
	Author      string        `xml:"author,omitempty"`
	Categories  []string      `xml:"category,omitempty"`
	PubDate     string        `xml:"pubDate"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int    `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

func (a *App) renderRSS(c echo.Context, items []feedItem) error {
	cfg := a.Config
	out := make([]rssItem, 0, len(items))
	for _, it := range items {
		ri := rssItem{
			Title:       it.Title,
			Link:        it.Link,
			GUID:        it.ID,
			Description: it.Description,
			Content:     it.Content,
			Author:      it.Author,
			Categories:  it.Categories,
			PubDate:     it.Published.Format(time.RFC1123Z),
		}
		if it.Image != "" {
			ri.Enclosure = &rssEnclosure{URL: it.Image, Type: "image/jpeg"}
		}
		out = append(out, ri)
	}
	feed := rssXML{
		Version:   "2.0",
		AtomNS:    "http://www.w3.org/2005/Atom",
		ContentNS: "http://purl.org/rss/1.0/modules/content/",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        cfg.URL,
			Description: cfg.Description,
			Copyright:   cfg.Copyright,
			SelfLink: rssSelfLink{
				Href: BuildURL(cfg.URL, "api", "rss"),
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: out,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

// --- Atom ---

type atomFeed struct {
	XMLName  xml.Name    `xml:"feed"`
	XMLNS    string      `xml:"xmlns,attr"`
	Title    string      `xml:"title"`
	Subtitle string      `xml:"subtitle,omitempty"`
	ID       string      `xml:"id"`
	Updated  string      `xml:"updated"`
	Rights   string      `xml:"rights,omitempty"`
	Links    []atomLink  `xml:"link"`
	Author   *atomAuthor `xml:"author,omitempty"`
	Entries  []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	Title      string         `xml:"title"`
	ID         string         `xml:"id"`
	Links      []atomLink     `xml:"link"`
	Published  string         `xml:"published"`
	Updated    string         `xml:"updated"`
	Summary    string         `xml:"summary"`
	Content    *atomContent   `xml:"content,omitempty"`
	Categories []atomCategory `xml:"category,omitempty"`
}

type atomContent struct {
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

func (a *App) renderAtom(c echo.Context, items []feedItem) error {
	cfg := a.Config
	updated := time.Now()
	if len(items) > 0 {
		updated = items[0].Published
	}

	entries := make([]atomEntry, 0, len(items))
	for _, it := range items {
		entry := atomEntry{
			Title:     it.Title,
			ID:        it.ID,
			Links:     []atomLink{{Href: it.Link, Rel: "alternate"}},
			Published: it.Published.Format(time.RFC3339),
			Updated:   it.Published.Format(time.RFC3339),
			Summary:   it.Description,
		}
		if it.Content != "" {
			entry.Content = &atomContent{Type: "text", Body: it.Content}
		}
		if it.Image != "" {
			entry.Links = append(entry.Links, atomLink{Href: it.Image, Rel: "enclosure", Type: "image/jpeg"})
		}
		for _, cat := range it.Categories {
			entry.Categories = append(entry.Categories, atomCategory{Term: cat})
		}
		entries = append(entries, entry)
	}

	feed := atomFeed{
		XMLNS:    "http://www.w3.org/2005/Atom",
		Title:    cfg.Name,
		Subtitle: cfg.Description,
		ID:       cfg.URL,
		Updated:  updated.Format(time.RFC3339),
		Rights:   cfg.Copyright,
		Links: []atomLink{
			{Href: cfg.URL, Rel: "alternate"},
			{Href: BuildURL(cfg.URL, "api", "rss") + "?format=atom", Rel: "self", Type: "application/atom+xml"},
		},
		Entries: entries,
	}
	if cfg.Author != "" {
		feed.Author = &atomAuthor{Name: cfg.Author}
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/atom+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

// --- JSON Feed 1.1 ---

type jsonFeed struct {
	Version     string         `json:"version"`
	Title       string         `json:"title"`
	HomePageURL string         `json:"home_page_url"`
	FeedURL     string         `json:"feed_url"`
	Description string         `json:"description,omitempty"`
	Authors     []jsonAuthor   `json:"authors,omitempty"`
	Items       []jsonFeedItem `json:"items"`
}

type jsonAuthor struct {
	Name string `json:"name"`
}

type jsonFeedItem struct {
	ID            string       `json:"id"`
	URL           string       `json:"url"`
	Title         string       `json:"title"`
	Summary       string       `json:"summary"`
	ContentText   string       `json:"content_text,omitempty"`
	Image         string       `json:"image,omitempty"`
	DatePublished string       `json:"date_published"`
	Tags          []string     `json:"tags,omitempty"`
	Authors       []jsonAuthor `json:"authors,omitempty"`
}

func (a *App) renderJSONFeed(c echo.Context, items []feedItem) error {
	cfg := a.Config
	out := make([]jsonFeedItem, 0, len(items))
	for _, it := range items {
		ji := jsonFeedItem{
			ID:            it.ID,
			URL:           it.Link,
			Title:         it.Title,
			Summary:       it.Description,
			ContentText:   it.Content,
			Image:         it.Image,
			DatePublished: it.Published.Format(time.RFC3339),
			Tags:          it.Categories,
		}
		if it.Author != "" {
			ji.Authors = []jsonAuthor{{Name: it.Author}}
		}
		out = append(out, ji)
	}
	feed := jsonFeed{
		Version:     "https://jsonfeed.org/version/1.1",
		Title:       cfg.Name,
		HomePageURL: cfg.URL,
		FeedURL:     BuildURL(cfg.URL, "api", "rss") + "?format=json",
		Description: cfg.Description,
		Items:       out,
	}
	if cfg.Author != "" {
		feed.Authors = []jsonAuthor{{Name: cfg.Author}}
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/feed+json; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return json.NewEncoder(c.Response()).Encode(feed)
}

// handleFeed serves /api/rss and /feed.xml. Query parameters: format
// (rss|atom|json), limit, content. An upstream fetch failure propagates to
// the error handler before any bytes are written — never a partial feed.
func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}

	opts := feedOptions{Limit: defaultFeedLimit, IncludeContent: true}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.Limit = n
		}
	}
	if c.QueryParam("content") == "false" {
		opts.IncludeContent = false
	}

	items := buildFeedItems(posts, a.Config, opts)
	switch c.QueryParam("format") {
	case "atom":
		return a.renderAtom(c, items)
	case "json":
		return a.renderJSONFeed(c, items)
	default:
		return a.renderRSS(c, items)
	}
}
