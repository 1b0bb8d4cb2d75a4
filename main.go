// Package main provides the entry point for the IMS Viewer application.
package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"ims-viewer/internal/app"
	"ims-viewer/internal/logger"
	"ims-viewer/internal/version"
	"ims-viewer/ui/mainwindow"
	"ims-viewer/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const appTitle = "IMS Viewer"

func main() {
	if lvl := os.Getenv("IMS_VIEWER_LOG"); lvl != "" {
		logger.SetLevel(lvl)
	}
	logger.Infof("starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("io.imsviewer.app")
	fyneApp.Settings().SetTheme(&app.ViewerTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// A session or data file may be given on the command line.
	if len(os.Args) > 1 {
		path := os.Args[1]
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".imsession":
			err = appState.LoadSession(path)
		default:
			err = appState.LoadSpectrum(path)
		}
		if err != nil {
			logger.Errorf("loading %s: %v", path, err)
		}
	}

	setupHotReload(win, appPrefs)

	win.ShowAndRun()
}

// setupHotReload restarts the application when a newer binary appears,
// which keeps development iterations short.
func setupHotReload(win *mainwindow.MainWindow, appPrefs *prefs.Prefs) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		logger.Warnf("hot reload: unable to determine executable path")
		return
	}

	logger.Infof("hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnTick(func() {
		if err := appPrefs.SaveIfChanged(); err != nil {
			logger.Debugf("saving preferences: %v", err)
		}
	})

	reloader.OnNewBinary(func() {
		logger.Infof("hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(yes bool) {
				if !yes {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				if err := appPrefs.Save(); err != nil {
					logger.Warnf("saving preferences: %v", err)
				}
				logger.Infof("hot reload: restarting")
				if err := reloader.Restart(); err != nil {
					logger.Errorf("hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})
	reloader.Start()
}
