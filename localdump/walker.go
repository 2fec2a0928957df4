package localdump

import (
	"context"
	"fmt"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/ai-agile/confluence-tree-dump/confluence"
)

// DefaultMaxDepth bounds the traversal when the caller doesn't choose one.
const DefaultMaxDepth = 5

// TreeDownloader walks a rooted Confluence page tree depth-first and
// persists every visited page into one flat output directory.  One traversal
// per value; the visited set does not survive the call.
type TreeDownloader struct {
	API    *confluence.API
	OutDir string
	Format BodyFormat

	// MaxDepth bounds descent below the root: the root is depth 0 and
	// children are not enumerated at max depth, so 0 downloads the root page
	// only.  Negative means DefaultMaxDepth.
	MaxDepth int

	// FailFast restores the legacy all-or-nothing behaviour: the first page
	// failure aborts the whole traversal.  Off by default, so one transient
	// failure deep in the tree can't sink an otherwise-good bulk download.
	FailFast bool

	SkipUnchanged   bool
	SkipAttachments bool
	WriteMarkdown   bool
	DryRun          bool

	// ShowProgress renders an mpb bar whose total grows as children are
	// discovered.  Off in tests and dry runs.
	ShowProgress bool

	Logger *zap.SugaredLogger

	visited    map[ContentID]bool
	discovered int64
	summary    Summary
	bar        *mpb.Bar
}

// DownloadTree traverses from rootID.  With FailFast unset, per-branch
// failures are collected into the summary and the traversal keeps going;
// the error return is then reserved for precondition and setup problems.
func (d *TreeDownloader) DownloadTree(ctx context.Context, rootID string) (Summary, error) {
	if err := confluence.ValidatePageID(rootID); err != nil {
		return Summary{}, err
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop().Sugar()
	}

	maxDepth := d.MaxDepth
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}

	var progress *mpb.Progress
	if d.ShowProgress {
		progress = mpb.New(mpb.WithWidth(64))
		d.bar = progress.AddBar(0,
			mpb.PrependDecorators(
				decor.Name("pages:", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
			),
			mpb.AppendDecorators(
				decor.CountersNoUnit("(%d/%d) "),
				decor.Spinner([]string{" /", " -", " \\", " |"}),
			),
		)
	}

	d.visited = map[ContentID]bool{}
	d.summary = Summary{}

	// Explicit worklist instead of recursion: no call-stack depth concerns,
	// and the (id, depth) pairs are trivially inspectable in tests.  Children
	// are pushed in reverse so siblings come off the stack in server order.
	stack := []workItem{{id: ContentID(rootID), depth: 0}}
	d.noteDiscovered(1)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return d.summary, fmt.Errorf("localdump: traversal cancelled: %w", context.Cause(ctx))
		}

		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if d.visited[item.id] {
			// Diamond or cycle in malformed data; this branch is done.
			d.noteDone()
			continue
		}
		d.visited[item.id] = true

		children, err := d.visit(ctx, item, maxDepth)
		d.noteDone()
		if err != nil {
			if d.FailFast {
				d.finishBar()
				return d.summary, fmt.Errorf("localdump: aborting traversal at page %s: %w", item.id, err)
			}
			d.Logger.Warnw("branch failed, continuing with siblings", "id", item.id, "error", err)
			d.summary.Failures = append(d.summary.Failures, BranchFailure{ID: item.id, Err: err})
			continue
		}

		d.noteDiscovered(len(children))
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, workItem{id: ContentID(children[i].ID), depth: item.depth + 1})
		}
	}

	d.finishBar()
	if progress != nil {
		progress.Wait()
	}

	ids := maps.Keys(d.visited)
	slices.Sort(ids)
	d.Logger.Debugw("traversal complete", "visited", ids)

	return d.summary, nil
}

// visit fetches, persists and (depth permitting) enumerates children of one
// page.  Returns the children still to walk.
func (d *TreeDownloader) visit(ctx context.Context, item workItem, maxDepth int) ([]confluence.Content, error) {
	page, err := d.API.GetContentByID(ctx, string(item.id), confluence.GetContentQuery{
		Expand: confluence.ExpandAll,
	})
	if err != nil {
		return nil, err
	}

	saved, err := SavePage(page, d.OutDir, d.Format, SaveOptions{
		Retrieved:     time.Now(),
		SkipUnchanged: d.SkipUnchanged,
		DryRun:        d.DryRun,
	})
	if err != nil {
		return nil, err
	}

	d.summary.Visited++
	switch {
	case saved.Skipped:
		d.summary.Skipped++
		d.Logger.Infow("unchanged", "id", saved.ID, "version", saved.Version, "path", saved.Path)
	case saved.DryRun:
		d.Logger.Infow("would save", "id", saved.ID, "title", saved.Title,
			"version", saved.Version, "path", saved.Path)
	default:
		d.summary.Written++
		d.Logger.Infow("saved", "id", saved.ID, "title", saved.Title,
			"version", saved.Version, "path", saved.Path,
			"macros", saved.Macros.StructuredMacro+saved.Macros.Image+saved.Macros.Link)
	}

	if !d.SkipAttachments && !d.DryRun {
		count, err := d.downloadAttachments(ctx, page)
		d.summary.Attachments += count
		if err != nil {
			return nil, err
		}
	}

	if d.WriteMarkdown && !d.DryRun {
		if err := d.saveMarkdown(page); err != nil {
			return nil, err
		}
	}

	if item.depth >= maxDepth {
		// Depth bound reached: persist but don't descend.
		return nil, nil
	}

	return d.API.GetChildPages(ctx, string(item.id))
}

func (d *TreeDownloader) noteDiscovered(n int) {
	d.discovered += int64(n)
	if d.bar != nil {
		d.bar.SetTotal(d.discovered, false)
	}
}

func (d *TreeDownloader) noteDone() {
	if d.bar != nil {
		d.bar.Increment()
	}
}

func (d *TreeDownloader) finishBar() {
	if d.bar != nil {
		d.bar.SetTotal(d.discovered, true)
	}
}
