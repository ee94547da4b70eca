package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/mediacatalog/internal/client/models"
	"github.com/dmitrijs2005/mediacatalog/internal/client/notify"
	"github.com/dmitrijs2005/mediacatalog/internal/client/services"
	"github.com/dmitrijs2005/mediacatalog/internal/client/viewport"
)

const (
	msgCatalogError = "Something went wrong while loading the catalog. Type 'reload' to try again."
	msgReloadFailed = "Reload failed, showing the last loaded catalog"
)

// Home shows the trending carousel followed by the whole catalog.
func (a *App) Home(ctx context.Context) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}

	_, class := a.viewport.Current()
	fmt.Fprintln(a.out, "Trending")
	renderTrending(a.out, a.catalog.View(services.ViewTrending), class, a.config.AssetBaseURL)
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Recommended for you")
	renderItems(a.out, a.catalog.View(services.ViewAll))
	return nil
}

// Show prints one view of the catalog.
func (a *App) Show(ctx context.Context, view services.View) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	items := a.catalog.View(view)
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing here yet")
		return nil
	}
	renderItems(a.out, items)
	return nil
}

// ToggleBookmark flips the bookmark of id and reports the value the server
// confirmed. Failures are shown as an error toast.
func (a *App) ToggleBookmark(ctx context.Context, id string) error {
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}

	bookmarked, err := a.catalog.ToggleBookmark(ctx, id)
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		printlnFn("No item with id", id)
		return err
	case err != nil:
		a.notifier.Notify(notify.Error, "Could not update bookmark, try again")
		return err
	}

	item, _ := a.catalog.Item(id)
	title := id
	if item != nil {
		title = item.Title
	}
	if bookmarked {
		a.notifier.Notify(notify.Success, fmt.Sprintf("Bookmarked %q", title))
	} else {
		a.notifier.Notify(notify.Success, fmt.Sprintf("Removed %q from bookmarks", title))
	}
	return nil
}

// Reload fetches the catalog again.
func (a *App) Reload(ctx context.Context) error {
	if err := a.catalog.Reload(ctx); err != nil {
		if a.catalog.Status() == services.CatalogReady {
			a.notifier.Notify(notify.Error, msgReloadFailed)
		} else {
			fmt.Fprintln(a.out, msgCatalogError)
		}
		return err
	}
	a.notifier.Notify(notify.Info, fmt.Sprintf("Catalog loaded, %d items", len(a.catalog.Items())))
	return nil
}

// Width prints the current viewport class. With an argument it records
// that width instead of measuring the terminal.
func (a *App) Width(ctx context.Context, arg string) error {
	var (
		width int
		class viewport.Class
	)

	if arg != "" {
		px, err := strconv.Atoi(arg)
		if err != nil || px < 0 {
			printlnFn("Usage: width [px]")
			return fmt.Errorf("invalid width %q", arg)
		}
		class = a.viewport.Observe(px)
		width = px
	} else {
		if _, err := a.viewport.Refresh(); err != nil {
			a.logger.Debug(ctx, "terminal width unavailable", "error", err)
		}
		width, class = a.viewport.Current()
	}

	printlnFn(fmt.Sprintf("width %dpx: %s", width, class))
	return nil
}

// ensureLoaded triggers the first load and prints the error view when the
// catalog is not usable.
func (a *App) ensureLoaded(ctx context.Context) error {
	if err := a.catalog.Load(ctx); err != nil {
		fmt.Fprintln(a.out, msgCatalogError)
		return err
	}
	return nil
}

func renderItems(w io.Writer, items []*models.MediaItem) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tCATEGORY\tRATING\tBOOKMARKED")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", it.ID, it.Title, it.Year, it.Category, it.Rating, mark(it.IsBookmarked))
	}
	_ = tw.Flush()
}

func renderTrending(w io.Writer, items []*models.MediaItem, class viewport.Class, assetBase string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tCATEGORY\tBOOKMARKED\tIMAGE")
	for _, it := range items {
		image := ""
		if set := it.Thumbnail.Trending; set != nil {
			image = assetURL(assetBase, class.Pick(set.Small, set.Large))
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n", it.ID, it.Title, it.Year, it.Category, mark(it.IsBookmarked), image)
	}
	_ = tw.Flush()
}

// assetURL resolves a thumbnail path, which may start with "./", against base.
func assetURL(base, path string) string {
	if path == "" {
		return ""
	}
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")
	return strings.TrimSuffix(base, "/") + "/" + path
}

func mark(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
