// Package manualpdf turns a Markdown manual and its screenshots into a
// paginated, print-ready document printed by headless Chrome.
//
// # Quick Start
//
// Create a converter, convert a manual, and close when done:
//
//	conv, err := manualpdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, manualpdf.Input{
//	    Markdown: "## 1. Install\n\nRun the installer.",
//	    Images:   []manualpdf.File{{Name: "01_installer.png", Data: png}},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("manual.pdf", result.PDF, 0644)
//
// # Image Resolution
//
// Image references are matched against the supplied files by base filename,
// so ![Setup](shots/01_setup.png) resolves to the file named 01_setup.png.
// A reference with no matching file renders a visible placeholder and is
// reported in ConvertResult.Unresolved.
//
// When the Markdown contains no image references at all, screenshots are
// linked automatically: a file named 02-01_dialog.png is placed at the end
// of the section headed "### 2.1", a file named 03_menu.png at the end of
// "## 3.", and files that match no section land in a trailing
// "Reference Screenshots" section. Set Input.DisableAutoLink to turn this off.
//
// # Pagination
//
// The rendered manual is split into fixed-size pages. Each break-level
// heading (h2 by default) starts a new page, and in height mode a page is
// also closed once its estimated content height exceeds the page budget.
// A heading is never left alone at the bottom of a page.
//
//	result, err := conv.Convert(ctx, manualpdf.Input{
//	    Markdown:   content,
//	    Page:       &manualpdf.PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.5},
//	    Pagination: &manualpdf.Pagination{Mode: "height", BreakBefore: []int{1, 2}},
//	})
//
// Every page carries the optional logo in its header and "n / total" in its
// footer.
//
// # Sessions
//
// Interactive callers keep a Session, feed it Markdown, screenshots and a
// logo as they arrive, and render snapshots of it:
//
//	s := manualpdf.NewSession()
//	s.SetMarkdown(md)
//	if err := s.AddImages(ctx, files); err != nil {
//	    log.Print(err) // files that decoded are still added
//	}
//	preview, err := conv.Preview(ctx, s.View(), manualpdf.Input{})
//	doc, err := conv.Export(ctx, s.View(), manualpdf.Input{})
//
// # Parallel Processing
//
// A Converter owns one browser and is not safe for concurrent use. For batch
// conversion, use ConverterPool:
//
//	pool := manualpdf.NewConverterPool(manualpdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
package manualpdf
