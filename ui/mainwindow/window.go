// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"ims-viewer/internal/app"
	"ims-viewer/internal/axis"
	"ims-viewer/internal/ccs"
	"ims-viewer/internal/export"
	"ims-viewer/internal/logger"
	"ims-viewer/internal/spectrum"
	"ims-viewer/internal/version"
	"ims-viewer/internal/viewport"
	"ims-viewer/internal/watcher"
	"ims-viewer/pkg/colorutil"
	"ims-viewer/ui/plotcanvas"
	"ims-viewer/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const reloadDebounce = 300 * time.Millisecond

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	specPane    *plotcanvas.SpectrumPane
	heatmapPane *plotcanvas.HeatmapPane
	vpState     *viewport.State
	ctrl        *viewport.Controller
	statusBar   *widget.Label

	extractItem *fyne.MenuItem
	specWatch   *watcher.FileWatcher
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("IMS Viewer")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupViewport()
	mw.setupUI()
	mw.setupMenus()
	mw.setupKeys()
	mw.setupEventHandlers()
	mw.restoreLastData()

	win.SetOnClosed(func() {
		if mw.specWatch != nil {
			mw.specWatch.Close()
		}
		if err := mw.prefs.Save(); err != nil {
			logger.Warnf("saving preferences: %v", err)
		}
	})

	return mw
}

// setupViewport creates the shared viewport state, the controller, and the
// two linked panes.
func (mw *MainWindow) setupViewport() {
	cfg := viewport.DefaultConfig()
	cfg.WheelEnabled = mw.prefs.Bool(prefs.KeyWheelEnabled, cfg.WheelEnabled)
	cfg.WheelStep = mw.prefs.Float(prefs.KeyWheelStep, cfg.WheelStep)

	mw.vpState = viewport.NewState(viewport.Extents{XMin: 0, XMax: 1, YMin: 0, YMax: 1})
	mw.ctrl = viewport.NewController(mw.vpState, cfg)

	mw.specPane = plotcanvas.NewSpectrumPane()
	mw.specPane.SetController(mw.ctrl)
	mw.vpState.AttachPane(mw.specPane)

	mw.heatmapPane = plotcanvas.NewHeatmapPane()
	mw.heatmapPane.SetController(mw.ctrl)
	mw.heatmapPane.SetColormap(colorutil.ByName(mw.prefs.String(prefs.KeyColormap, "viridis")))
	mw.vpState.AttachPane(mw.heatmapPane)

	mw.ctrl.OnChanged(func(e viewport.Extents) {
		mw.updateExtentsStatus(e)
	})
	mw.ctrl.OnExtract(func(e viewport.Extents) {
		mw.onExtractRegion(e)
	})
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	// Spectrum above heatmap, sharing the toolbar and status bar.
	split := container.NewVSplit(mw.specPane, mw.heatmapPane)
	split.SetOffset(0.55)

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1100, 750))
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.ctrl.ZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.ctrl.ZoomIn()
	})
	resetBtn := widget.NewButton("Reset", func() {
		mw.ctrl.ResetToData()
	})
	extractBtn := widget.NewButton("Extract", func() {
		mw.onToggleExtract()
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		resetBtn,
		widget.NewSeparator(),
		extractBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Spectrum...", mw.onOpenSpectrum),
		fyne.NewMenuItem("Open Heatmap...", mw.onOpenHeatmap),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Session...", mw.onOpenSession),
		fyne.NewMenuItem("Save Session", mw.onSaveSession),
		fyne.NewMenuItem("Save Session As...", mw.onSaveSessionAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Figure...", mw.onExportFigure),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.extractItem = fyne.NewMenuItem("  Extract Mode", mw.onToggleExtract)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.ctrl.ZoomIn() }),
		fyne.NewMenuItem("Zoom Out", func() { mw.ctrl.ZoomOut() }),
		fyne.NewMenuItem("Reset View", func() { mw.ctrl.ResetToData() }),
		fyne.NewMenuItemSeparator(),
		mw.extractItem,
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Fit CCS Calibration...", mw.onFitCalibration),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, viewMenu, toolsMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupKeys wires keyboard modifiers to the zoom axis restriction. Shift
// restricts to the x axis, Control to the y axis; releasing returns to
// free zoom, and Escape clears any stuck state.
func (mw *MainWindow) setupKeys() {
	canv := mw.Canvas()
	if dc, ok := canv.(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			switch ev.Name {
			case desktop.KeyShiftLeft, desktop.KeyShiftRight:
				mw.ctrl.SetAxisRestriction(viewport.AxisX)
			case desktop.KeyControlLeft, desktop.KeyControlRight:
				mw.ctrl.SetAxisRestriction(viewport.AxisY)
			}
		})
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			switch ev.Name {
			case desktop.KeyShiftLeft, desktop.KeyShiftRight,
				desktop.KeyControlLeft, desktop.KeyControlRight:
				mw.ctrl.SetAxisRestriction(viewport.AxisBoth)
			}
		})
	}
	canv.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			mw.ctrl.ResetModifierState()
			mw.setExtractMode(false)
			mw.updateStatus("Interaction state reset")
		}
	})
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventSpectrumLoaded, func(data interface{}) {
		if spec, ok := data.(*spectrum.MassSpectrum); ok {
			mw.showSpectrum(spec)
			mw.updateStatus("Spectrum loaded: " + mw.state.SpectrumPath)
			mw.watchSpectrum(mw.state.SpectrumPath)
		}
	})

	mw.state.On(app.EventHeatmapLoaded, func(data interface{}) {
		if hm, ok := data.(*spectrum.Heatmap); ok {
			mw.heatmapPane.SetHeatmap(hm)
			if mw.specPane.Spectrum() == nil {
				mw.vpState.SetData(hm.DataExtents())
				mw.ctrl.ResetToData()
			}
			mw.heatmapPane.Repaint()
			mw.updateStatus("Heatmap loaded: " + mw.state.HeatmapPath)
		}
	})

	mw.state.On(app.EventSessionLoaded, func(data interface{}) {
		mw.SetTitle("IMS Viewer - " + filepath.Base(mw.state.SessionPath))
		mw.updateStatus("Session loaded: " + mw.state.SessionPath)
	})

	mw.state.On(app.EventCalibrationFit, func(data interface{}) {
		if cal, ok := data.(*ccs.Calibration); ok {
			mw.updateStatus(fmt.Sprintf("CCS calibration: A=%.4f B=%.4f RMSD=%.2f%%",
				cal.A, cal.B, cal.RMSD*100))
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if !strings.HasSuffix(title, "*") {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// showSpectrum installs a spectrum in the pane and resets the shared
// viewport to its extents.
func (mw *MainWindow) showSpectrum(spec *spectrum.MassSpectrum) {
	mw.specPane.SetSpectrum(spec)
	mw.vpState.SetData(spec.DataExtents())
	mw.ctrl.ResetToData()
}

// watchSpectrum reloads the spectrum when the file changes on disk.
func (mw *MainWindow) watchSpectrum(path string) {
	if mw.specWatch != nil {
		mw.specWatch.Close()
		mw.specWatch = nil
	}
	if path == "" {
		return
	}
	w, err := watcher.Watch(path, reloadDebounce, func() {
		logger.Infof("spectrum file changed, reloading: %s", path)
		if err := mw.state.LoadSpectrum(path); err != nil {
			logger.Warnf("reload failed: %v", err)
		}
	})
	if err != nil {
		logger.Warnf("cannot watch %s: %v", path, err)
		return
	}
	mw.specWatch = w
}

// updateExtentsStatus shows the current view window in normalized mass
// units after every committed viewport change.
func (mw *MainWindow) updateExtentsStatus(e viewport.Extents) {
	_, unit, kilo := axis.NormalizeMass(e.XMax)
	xmin, xmax := e.XMin, e.XMax
	if kilo {
		xmin /= 1000
		xmax /= 1000
	}
	mw.updateStatus(fmt.Sprintf("m/z %.2f - %.2f %s  |  y %.3g - %.3g",
		xmin, xmax, unit, e.YMin, e.YMax))
}

// onExtractRegion handles a guarded drag: the box selects a region for
// extraction instead of zooming.
func (mw *MainWindow) onExtractRegion(e viewport.Extents) {
	mw.setExtractMode(false)
	spec := mw.specPane.Spectrum()
	if spec == nil {
		return
	}
	region := spec.Slice(e.XMin, e.XMax)
	if region.Len() == 0 {
		mw.updateStatus("Extraction region contains no peaks")
		return
	}
	bpMZ, bpInt := region.BasePeak()
	mw.updateStatus(fmt.Sprintf("Extracted %d peaks, TIC %.3g, base peak %.4f (%.3g)",
		region.Len(), region.TIC(), bpMZ, bpInt))
}

func (mw *MainWindow) onToggleExtract() {
	mw.setExtractMode(!mw.ctrl.Guard())
}

func (mw *MainWindow) setExtractMode(on bool) {
	mw.ctrl.SetGuard(on)
	if on {
		mw.extractItem.Label = "✓ Extract Mode"
		mw.updateStatus("Extract mode: drag a region to extract")
	} else {
		mw.extractItem.Label = "  Extract Mode"
	}
	mw.Window.MainMenu().Refresh()
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir, "")
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
}

// restoreLastData loads the previously opened spectrum and heatmap.
func (mw *MainWindow) restoreLastData() {
	if path := mw.prefs.String(prefs.KeyLastSpectrum, ""); path != "" {
		if err := mw.state.LoadSpectrum(path); err != nil {
			logger.Warnf("restoring last spectrum: %v", err)
		}
	}
	if path := mw.prefs.String(prefs.KeyLastHeatmap, ""); path != "" {
		if err := mw.state.LoadHeatmap(path); err != nil {
			logger.Warnf("restoring last heatmap: %v", err)
		}
	}
}

func (mw *MainWindow) onOpenSpectrum() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		if loadErr := mw.state.LoadSpectrum(path); loadErr != nil {
			dialog.ShowError(loadErr, mw.Window)
			return
		}
		mw.saveLastDir(path)
		mw.prefs.SetString(prefs.KeyLastSpectrum, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".mzML", ".mzml", ".txt", ".csv", ".tab", ".dat"}))
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenHeatmap() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		if loadErr := mw.state.LoadHeatmap(path); loadErr != nil {
			dialog.ShowError(loadErr, mw.Window)
			return
		}
		mw.saveLastDir(path)
		mw.prefs.SetString(prefs.KeyLastHeatmap, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".txt", ".csv", ".tab", ".dat"}))
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenSession() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		if loadErr := mw.state.LoadSession(path); loadErr != nil {
			dialog.ShowError(loadErr, mw.Window)
			return
		}
		mw.saveLastDir(path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".imsession"}))
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveSession() {
	if mw.state.SessionPath == "" {
		mw.onSaveSessionAs()
		return
	}
	if err := mw.state.SaveSession(mw.state.SessionPath); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateStatus("Session saved: " + mw.state.SessionPath)
}

func (mw *MainWindow) onSaveSessionAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if !strings.HasSuffix(path, ".imsession") {
			path += ".imsession"
		}
		if saveErr := mw.state.SaveSession(path); saveErr != nil {
			dialog.ShowError(saveErr, mw.Window)
			return
		}
		mw.saveLastDir(path)
		mw.SetTitle("IMS Viewer - " + filepath.Base(path))
		mw.updateStatus("Session saved: " + path)
	}, mw.Window)
	fd.SetFileName("untitled.imsession")
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) onExportFigure() {
	spec := mw.specPane.Spectrum()
	if spec == nil {
		dialog.ShowInformation("Export Figure", "Load a spectrum first.", mw.Window)
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if !strings.HasSuffix(strings.ToLower(path), ".png") {
			path += ".png"
		}
		opts := export.DefaultFigureOptions()
		opts.Width = int(mw.prefs.Float(prefs.KeyExportWidth, float64(opts.Width)))
		opts.Height = int(mw.prefs.Float(prefs.KeyExportHeight, float64(opts.Height)))
		if expErr := export.SaveSpectrumPNG(path, spec, mw.vpState.Current(), opts); expErr != nil {
			dialog.ShowError(expErr, mw.Window)
			return
		}
		mw.saveLastDir(path)
		mw.updateStatus("Figure exported: " + path)
	}, mw.Window)
	fd.SetFileName("spectrum.png")
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) onFitCalibration() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		edc := mw.prefs.Float(prefs.KeyEDCCoefficient, 1.35)
		if fitErr := mw.state.FitCalibration(path, edc); fitErr != nil {
			dialog.ShowError(fitErr, mw.Window)
			return
		}
		mw.saveLastDir(path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".yaml", ".yml"}))
	if dir := mw.getLastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About IMS Viewer",
		fmt.Sprintf("IMS Viewer %s\n\nIon mobility and mass spectrometry data viewer.\n\n%s",
			version.Version, version.BuildInfo()),
		mw.Window)
}
