package localdump

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"

	"github.com/ai-agile/confluence-tree-dump/confluence"
)

// saveMarkdown renders the page's export view to GitHub-flavoured Markdown
// and writes it beside the raw record as {pageId}-{sanitizedTitle}.md, with
// the same front matter.  Pages without an export view are skipped; the raw
// record is the artifact of record, the Markdown is a convenience.
func (d *TreeDownloader) saveMarkdown(page *confluence.Content) error {
	if page.Body == nil || page.Body.ExportView == nil {
		d.Logger.Debugw("no export view, skipping Markdown", "id", page.ID)
		return nil
	}

	markdown, err := d.convertExportView(page.Body.ExportView.Value)
	if err != nil {
		return err
	}

	header := BuildFrontMatter(page, FormatExportView, time.Now())
	record, err := RenderRecord(header, markdown)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("%s-%s.md", page.ID, SanitizeTitle(page.Title))
	path := filepath.Join(d.OutDir, name)
	if err := writeFileAtomic(path, []byte(record)); err != nil {
		return fmt.Errorf("localdump: couldn't write Markdown for page %s: %w", page.ID, err)
	}

	d.Logger.Debugw("saved Markdown", "id", page.ID, "path", path)
	return nil
}

// convertExportView converts rendered Confluence HTML to Markdown.
// md.NewConverter only accepts a hostname, not a base URI, so relative wiki
// links get their scheme and host patched in via the GetAbsoluteURL hook.
// Adapted from https://github.com/JohannesKaufmann/html-to-markdown/issues/44.
func (d *TreeDownloader) convertExportView(html string) (string, error) {
	opt := &md.Options{
		GetAbsoluteURL: func(selec *goquery.Selection, rawURL string, domain string) string {
			if domain == "" {
				return rawURL
			}

			u, err := url.Parse(rawURL)
			if err != nil {
				// we can't do anything with this url because it is invalid
				return rawURL
			}

			if u.Scheme == "data" {
				// this is a data uri (for example an inline base64 image)
				return rawURL
			}

			if u.Scheme == "" {
				u.Scheme = d.API.BaseURI.Scheme
			}
			if u.Host == "" {
				u.Host = domain
			}

			return u.String()
		},
	}

	converter := md.NewConverter(d.API.BaseURI.Host, true, opt)
	// Github flavoured Markdown knows about tables 👍
	converter.Use(mdplugin.GitHubFlavored())

	markdown, err := converter.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("localdump: failed to convert to Markdown: %w", err)
	}

	return markdown, nil
}
