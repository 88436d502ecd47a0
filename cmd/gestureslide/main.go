package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gestureslide/gestureslide/internal/app"
	"github.com/gestureslide/gestureslide/internal/control"
	"github.com/gestureslide/gestureslide/internal/server"
	"github.com/gestureslide/gestureslide/internal/store"
	"github.com/gestureslide/gestureslide/internal/swipe"
	"github.com/gestureslide/gestureslide/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", -1, "camera device ID (-1 uses the stored setting)")
	pluginDir := flag.String("plugins", "", "plugin directory (defaults to ./plugins)")
	minDistance := flag.Int("min-distance", 0, "swipe distance threshold in pixels (0 uses the stored setting)")
	debounceMs := flag.Int("debounce", 0, "debounce window in milliseconds (0 uses the stored setting)")
	noTray := flag.Bool("no-tray", false, "run without the system tray")
	flag.Parse()

	fmt.Println("GestureSlide - Swipe-Controlled Presentations")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".gestureslide")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "gestureslide.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	settings := st.Settings()

	// Settings persist across runs; flags override them for this run only.
	swipeCfg := swipe.Config{
		MinDistance: settings.GetInt(store.KeyMinDistance, swipe.DefaultConfig().MinDistance),
		Debounce:    time.Duration(settings.GetInt(store.KeyDebounceMs, 2000)) * time.Millisecond,
	}
	if *minDistance > 0 {
		swipeCfg.MinDistance = *minDistance
	}
	if *debounceMs > 0 {
		swipeCfg.Debounce = time.Duration(*debounceMs) * time.Millisecond
	}

	camID := settings.GetInt(store.KeyCameraID, 0)
	if *cameraID >= 0 {
		camID = *cameraID
	}

	plugDir := *pluginDir
	if plugDir == "" {
		plugDir = "plugins"
	}

	a := app.New(app.Config{
		PluginDir:     plugDir,
		CameraID:      camID,
		Swipe:         swipeCfg,
		ControlPlugin: settings.GetString(store.KeyControlPlugin, control.DefaultPluginName),
	})

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start tracking pipeline: %v", err)
	}
	defer a.Stop()

	a.SetEnabled(settings.GetBool(store.KeyEnabled, true))

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Tracker:   a,
		Camera:    a.Camera(),
	})

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *noTray {
		waitForSignal()
		return
	}

	t := tray.New()
	t.SetEnabled(a.IsEnabled())
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		if err := settings.SetBool(store.KeyEnabled, enabled); err != nil {
			log.Printf("Failed to save enabled state: %v", err)
		}
	})
	t.OnSettings(func() {
		log.Printf("Settings available at http://localhost%s", *addr)
	})
	a.OnSwipe(func(event app.SwipeEvent) {
		t.SetLastSwipe(string(event.Direction))
	})

	// Blocks until Quit is selected from the menu.
	t.Run()
}

func waitForSignal() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	fmt.Println("Shutting down")
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.gestureslide/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".gestureslide", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
