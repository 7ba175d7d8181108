package tools

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pub_models "github.com/baalimago/tutor/pkg/text/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

type WebsiteTextTool pub_models.Specification

var WebsiteText = WebsiteTextTool{
	Name: "website_text",
	Description: "Get the readable text of a reference page, such as a grammar guide or a dictionary entry. " +
		"Markup, scripts and styling are stripped.",
	Inputs: &pub_models.InputSchema{
		Type: "object",
		Properties: map[string]pub_models.ParameterObject{
			"url": {
				Type:        "string",
				Description: "Absolute http(s) URL of the page to read.",
			},
		},
		Required: []string{"url"},
	},
}

type httpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

var websiteTextHTTPClient httpDoer = &http.Client{Timeout: 10 * time.Second}

const maxPageSize = 5 << 20

var (
	skipTags = map[string]bool{
		"script": true, "style": true, "noscript": true, "head": true,
		"iframe": true, "svg": true, "canvas": true, "template": true,
	}
	blockTags = map[string]bool{
		"p": true, "div": true, "li": true, "section": true, "article": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"header": true, "footer": true, "nav": true, "br": true, "ul": true,
		"ol": true, "tr": true, "td": true, "th": true, "dt": true, "dd": true,
	}
)

func (w WebsiteTextTool) Call(input pub_models.Input) (any, error) {
	urlStr, ok := input["url"].(string)
	if !ok {
		return "", fmt.Errorf("url must be a string")
	}
	u, err := url.ParseRequestURI(urlStr)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "tutor/website_text")
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,text/plain;q=0.8")

	resp, err := websiteTextHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	ctype := resp.Header.Get("Content-Type")
	if ctype != "" &&
		!strings.Contains(ctype, "text/html") &&
		!strings.Contains(ctype, "application/xhtml+xml") &&
		!strings.Contains(ctype, "text/plain") {
		return "", fmt.Errorf("unsupported content-type: %s", ctype)
	}

	var r io.Reader = io.LimitReader(resp.Body, maxPageSize)
	if decoded, err := charset.NewReader(r, ctype); err == nil {
		r = decoded
	}
	return extractText(r)
}

// extractText returns the visible text of an html document, one line per
// block element with whitespace collapsed.
func extractText(r io.Reader) (string, error) {
	tokenizer := html.NewTokenizer(r)
	skipDepth := 0
	var text strings.Builder
	newline := func() {
		s := text.String()
		if len(s) > 0 && s[len(s)-1] != '\n' {
			text.WriteByte('\n')
		}
	}

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if errors.Is(tokenizer.Err(), io.EOF) {
				return finalizeText(text.String()), nil
			}
			return "", fmt.Errorf("tokenizer error: %w", tokenizer.Err())
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := strings.ToLower(string(name))
			if skipTags[tag] {
				if tt == html.StartTagToken {
					skipDepth++
				} else if tt == html.EndTagToken && skipDepth > 0 {
					skipDepth--
				}
			}
			if blockTags[tag] {
				newline()
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			fields := bytes.Fields(tokenizer.Text())
			if len(fields) == 0 {
				continue
			}
			text.Write(bytes.Join(fields, []byte(" ")))
			text.WriteByte('\n')
		}
	}
}

func finalizeText(s string) string {
	out := strings.TrimSpace(s)
	if out == "" {
		return ""
	}
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return out + "\n"
}

func (w WebsiteTextTool) Specification() pub_models.Specification {
	return pub_models.Specification(WebsiteText)
}
