// Command swipedemo shows a carousel of text pages in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v3"
	"golang.org/x/sync/errgroup"

	"github.com/xqrs/swipeview"
	"github.com/xqrs/swipeview/config"
	"github.com/xqrs/swipeview/help"
	"github.com/xqrs/swipeview/internal/debug"
	"github.com/xqrs/swipeview/keybind"
	"github.com/xqrs/swipeview/layers"
	"github.com/xqrs/swipeview/swiper"
)

const appName = "swipeview_demo"

func main() {
	configPath := flag.String("config", "", "Swiper configuration (.yaml, .yml or .toml)")
	pageCount := flag.Int("pages", 8, "Number of pages")
	eventsPath := flag.String("events", "", "Append swiper events as JSON lines to this file")
	resume := flag.Bool("resume", false, "Start at the page shown when the demo last exited")
	flag.Parse()

	if err := run(*configPath, *pageCount, *eventsPath, *resume); err != nil {
		fmt.Fprintf(os.Stderr, "swipedemo: %v\n", err)
		os.Exit(1)
	}
}

// content is the text of one page.
type content struct {
	heading string
	body    string
}

func loadPage(ctx context.Context, index int) (content, error) {
	// Pages further away take longer, which makes the placeholder visible.
	select {
	case <-time.After(time.Duration(50+25*(index%5)) * time.Millisecond):
	case <-ctx.Done():
		return content{}, ctx.Err()
	}
	body := paragraphs[index%len(paragraphs)]
	return content{heading: fmt.Sprintf("Page %d", index+1), body: body}, nil
}

var paragraphs = []string{
	"Drag with the mouse to move between pages. A quick flick turns the page even when it moved only a little.",
	"Use the arrow keys or h and l. Home and End jump to the first and the last page.",
	"The dots below follow the current page. Click a dot to go there.",
	"With looping enabled the last page is followed by the first one again.",
	"Edit the configuration file while the demo runs and the swiper picks up the change.",
	"Pages are created when they come close to the viewport and dropped again when they leave it.\n\nTheir text is loaded in the background.",
}

// keyMap adds the demo's own bindings to the swiper's.
type keyMap struct {
	swipeview.SwiperKeyMap
	Help keybind.Keybind
	Quit keybind.Keybind
}

func (k keyMap) ShortHelp() []keybind.Keybind {
	return append(k.SwiperKeyMap.ShortHelp(), k.Help, k.Quit)
}

func (k keyMap) FullHelp() [][]keybind.Keybind {
	return append(k.SwiperKeyMap.FullHelp(), []keybind.Keybind{k.Help, k.Quit})
}

// root handles the demo's global keys before passing events to the layers.
type root struct {
	*layers.Layers
	keys keyMap
	help *help.Help
}

func (r *root) InputHandler(event *tcell.EventKey) swipeview.Command {
	switch {
	case keybind.Matches(event, r.keys.Quit):
		return swipeview.QuitCommand{}
	case keybind.Matches(event, r.keys.Help):
		cmd := r.help.InputHandler(event)
		r.SetDockSize("help", r.help.Height())
		return cmd
	}
	return r.Layers.InputHandler(event)
}

func run(configPath string, pageCount int, eventsPath string, resume bool) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	props, err := cfg.Swiper.Props()
	if err != nil {
		return err
	}

	var store *resumeStore
	if resume {
		if store, err = openResumeStore(appName); err != nil {
			debug.Log("demo: resume disabled: %v", err)
		} else if index, ok := store.Index(); ok {
			props.Index = index
		}
	}

	var events *eventLog
	if eventsPath != "" {
		if events, err = openEventLog(eventsPath); err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer events.Close()
	}

	app := swipeview.NewApplication().EnableMouse(true)

	var sw *swipeview.Swiper
	loader := swiper.NewLoader(loadPage, app, func(index int, c content, err error) {
		if err != nil {
			debug.Log("demo: page %d: %v", index, err)
			return
		}
		if p, ok := sw.Page(index); ok {
			p.(*swipeview.TextPage).SetText(c.heading, c.body)
			sw.Remeasure()
		}
	})
	defer loader.Close()

	borders, ok := swipeview.BorderSetByName(cfg.Display.Border)
	if !ok {
		return fmt.Errorf("unknown border %q", cfg.Display.Border)
	}
	sw = swipeview.NewSwiper(pageCount, func(index int) swipeview.Primitive {
		p := swipeview.NewLoadingPage()
		p.SetBorders(swipeview.BordersAll).SetBorderSet(borders).SetBorderPadding(0, 0, 1, 1)
		if c, ok := loader.Get(index); ok {
			p.SetText(c.heading, c.body)
		}
		return p
	})
	sw.SetProps(props).SetPrefetcher(loader)
	sw.SetTitle(cfg.Display.Title)
	applyDisplay(sw, cfg.Display)

	keys := keyMap{
		SwiperKeyMap: sw.KeyMap(),
		Help:         keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", "more")),
		Quit:         keybind.NewKeybind(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", "quit")),
	}
	helpBar := help.New().SetKeyMap(keys)
	status := func(index int) {
		helpBar.SetStatus(fmt.Sprintf("%d/%d", index+1, sw.Count()))
	}
	sw.SetEvents(events.Events(swiper.Events{
		OnChange: func(index int) {
			if err := store.SaveIndex(index); err != nil {
				debug.Log("demo: save index: %v", err)
			}
		},
		OnIndicatorChange: status,
	}))

	r := &root{Layers: layers.New(), keys: keys, help: helpBar}
	r.AddLayer(sw, layers.WithName("swiper"), layers.WithResize(true))
	if cfg.Display.Help {
		r.AddLayer(helpBar, layers.WithName("help"), layers.WithDock(layers.EdgeBottom, 1), layers.WithEnabled(false))
	}
	sw.Bind(app)
	app.SetWindowFunc(sw.SetWindowShown)
	status(sw.CurrentIndex())
	app.SetRoot(r).SetFocus(sw)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	if configPath != "" {
		g.Go(func() error {
			return config.Watch(ctx, configPath, func(cfg *config.Config, err error) {
				if err != nil {
					debug.Log("demo: reload: %v", err)
					return
				}
				props, err := cfg.Swiper.Props()
				if err != nil {
					return
				}
				// Post does not block once the loop has stopped.
				app.Post(func() {
					// An unchanged index keeps the current page.
					sw.SetProps(props)
					applyDisplay(sw, cfg.Display)
				})
			})
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		app.Stop()
		return nil
	})
	g.Go(func() error {
		defer stop()
		return app.Run()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// applyDisplay sets up the indicator and the arrows.
func applyDisplay(sw *swipeview.Swiper, d config.Display) {
	switch strings.ToLower(d.Indicator) {
	case "bar":
		sw.SetIndicator(swipeview.NewProgressBar().SetAxis(sw.Props().Axis))
	case "none", "":
		sw.SetIndicator(nil)
	default:
		sw.SetIndicator(swipeview.NewDotIndicator())
	}
	if d.Arrows {
		sw.SetArrows(swipeview.NewArrows(sw.Props().Axis))
	} else {
		sw.SetArrows(nil, nil)
	}
}
