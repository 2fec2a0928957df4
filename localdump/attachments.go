package localdump

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ai-agile/confluence-tree-dump/confluence"
)

// attachmentWorkers bounds parallel attachment downloads within one page
// visit.  The page traversal itself stays strictly sequential.
const attachmentWorkers = 4

// downloadAttachments fetches every attachment of the given page into the
// output directory, named {pageId}-{sanitizedFilename} so siblings with
// identically named attachments can't collide.  Returns how many were saved.
func (d *TreeDownloader) downloadAttachments(ctx context.Context, page *confluence.Content) (int, error) {
	attachments, err := d.API.GetAttachments(ctx, page.ID)
	if err != nil {
		return 0, fmt.Errorf("localdump: couldn't list attachments of %s: %w", page.ID, err)
	}
	if len(attachments) == 0 {
		return 0, nil
	}

	var saved atomic.Int32

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(attachmentWorkers)

	for _, att := range attachments {
		att := att
		grp.Go(func() error {
			data, err := d.API.DownloadAttachment(gctx, att)
			if err != nil {
				return fmt.Errorf("localdump: attachment '%s' of page %s: %w", att.Title, page.ID, err)
			}

			name := fmt.Sprintf("%s-%s", page.ID, SanitizeTitle(att.Title))
			if err := writeFileAtomic(filepath.Join(d.OutDir, name), data); err != nil {
				return err
			}

			saved.Add(1)
			d.Logger.Debugw("saved attachment", "page", page.ID, "name", name, "bytes", len(data))
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return int(saved.Load()), err
	}
	return int(saved.Load()), nil
}
